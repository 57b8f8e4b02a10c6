package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"catalog-sync/internal/config"
	"catalog-sync/internal/database"
	"catalog-sync/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	verbose bool
	quiet   bool
}

// environment is what a command needs to run: configuration, a logger and
// product storage. close releases the storage.
type environment struct {
	cfg    *config.Config
	logger zerolog.Logger
	repo   repository.ProductRepository
	close  func()
}

// environmentFunc builds the environment for a command.
type environmentFunc func(ctx context.Context, opts *rootOptions, stderr io.Writer) (*environment, error)

func newRootCmd(opts *rootOptions, env environmentFunc) *cobra.Command {
	root := &cobra.Command{
		Use:   "catalog-sync",
		Short: "Synchronise the Shopify product catalog into the local database",
		Long: `catalog-sync pages through the Shopify Admin products endpoint and upserts
every product into PostgreSQL keyed by its Shopify id.

Configuration is read from the environment and an optional .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.verbose && opts.quiet {
				return errors.New("--verbose and --quiet cannot be used together")
			}
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output and print the full error chain on failure")
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Print nothing except errors")

	root.AddCommand(
		newSyncCmd(opts, env),
		newReplayCmd(opts, env),
		newClearCmd(opts, env),
	)

	return root
}

// defaultEnvironment loads configuration and connects to PostgreSQL.
func defaultEnvironment(ctx context.Context, opts *rootOptions, stderr io.Writer) (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := commandLogger(cfg.Logger, opts, stderr)

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := database.EnsureSchema(ctx, pool, logger); err != nil {
		pool.Close()
		return nil, err
	}

	return &environment{
		cfg:    cfg,
		logger: logger,
		repo:   repository.NewProductRepository(pool, logger),
		close:  closePool(pool),
	}, nil
}

func closePool(pool *pgxpool.Pool) func() {
	return func() { pool.Close() }
}

// commandLogger writes logs to stderr so stdout carries only command output.
// --verbose forces debug level and --quiet silences logging entirely.
func commandLogger(cfg config.LoggerConfig, opts *rootOptions, stderr io.Writer) zerolog.Logger {
	switch {
	case opts.quiet:
		return zerolog.Nop()
	case opts.verbose:
		cfg.Level = "debug"
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return config.NewLoggerTo(cfg, stderr)
}

// printError prints err. With verbose set, every wrapped cause is listed,
// outermost first.
func printError(w io.Writer, err error, verbose bool) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if !verbose {
		return
	}

	depth := 0
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		depth++
		fmt.Fprintf(w, "  %d: %T: %v\n", depth, cause, cause)
	}
}
