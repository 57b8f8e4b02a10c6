package main

import (
	"context"
	"fmt"
	"io"

	"catalog-sync/internal/config"
	"catalog-sync/internal/model"
	"catalog-sync/internal/service"
	"catalog-sync/internal/shopify"
	"catalog-sync/internal/snapshot"

	"github.com/spf13/cobra"
)

func newSyncCmd(opts *rootOptions, env environmentFunc) *cobra.Command {
	var pageSize int

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch every Shopify product and upsert it locally",
		Long: `Fetch the full Shopify catalog page by page and upsert each product by its
Shopify id. Products without an id, and products the database rejects, are
counted as skipped.

Examples:
  # Sync with the configured page size
  catalog-sync sync

  # Smaller pages, full error chain on failure
  catalog-sync sync --page-size 50 --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			e, err := env(ctx, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.close()

			syncCfg := e.cfg.Sync
			if cmd.Flags().Changed("page-size") {
				syncCfg.PageSize = pageSize
			}
			if syncCfg.PageSize < 1 || syncCfg.PageSize > config.MaxSyncPageSize {
				return fmt.Errorf("page size must be between 1 and %d", config.MaxSyncPageSize)
			}

			client, err := shopify.NewClient(e.cfg.Shopify, nil, e.logger)
			if err != nil {
				return fmt.Errorf("failed to initialize shopify client: %w", err)
			}

			archive := snapshot.FromConfig(ctx, e.cfg.Snapshot, e.logger)
			svc := service.NewSyncService(client, e.repo, archive, syncCfg, e.logger)

			return runSync(ctx, svc, cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().IntVar(&pageSize, "page-size", config.MaxSyncPageSize, "Products requested per Shopify page (1-250)")

	return cmd
}

// runSync runs one sync and prints its summary unless quiet.
func runSync(ctx context.Context, svc service.SyncService, out io.Writer, opts *rootOptions) error {
	result, err := svc.Sync(ctx)
	if err != nil {
		return err
	}

	if !opts.quiet {
		printSummary(out, result, opts.verbose)
	}
	return nil
}

// printSummary prints the counts of a finished sync.
func printSummary(w io.Writer, result *model.SyncResult, verbose bool) {
	fmt.Fprintf(w, "Synced: %d  Skipped: %d  Total: %d\n", result.Synced, result.Skipped, result.Total)
	if !verbose {
		return
	}

	fmt.Fprintf(w, "Run:      %s\n", result.RunID)
	fmt.Fprintf(w, "Source:   %s\n", result.Source)
	fmt.Fprintf(w, "Pages:    %d\n", result.Pages)
	fmt.Fprintf(w, "Duration: %dms\n", result.DurationMS)
	if result.Snapshot != "" {
		fmt.Fprintf(w, "Snapshot: %s\n", result.Snapshot)
	}
}
