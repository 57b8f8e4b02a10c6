package main

import (
	"errors"
	"fmt"

	"catalog-sync/internal/service"

	"github.com/spf13/cobra"
)

func newClearCmd(opts *rootOptions, env environmentFunc) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every local product",
		Long: `Delete every product from the local database. Shopify is not touched.
The command refuses to run without --yes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to delete all products without --yes")
			}

			ctx := cmd.Context()

			e, err := env(ctx, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.close()

			cleared, err := service.NewProductService(e.repo, e.logger).Clear(ctx)
			if err != nil {
				return err
			}

			if !opts.quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d products\n", cleared)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion of all local products")

	return cmd
}
