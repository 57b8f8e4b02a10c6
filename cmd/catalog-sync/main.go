// Command catalog-sync reconciles the Shopify catalog into the local
// database from the command line.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	opts := &rootOptions{}
	err := newRootCmd(opts, defaultEnvironment).ExecuteContext(ctx)
	stop()

	if err != nil {
		printError(os.Stderr, err, opts.verbose)
		os.Exit(1)
	}
}
