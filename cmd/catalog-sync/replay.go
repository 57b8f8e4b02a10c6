package main

import (
	"errors"

	"catalog-sync/internal/service"
	"catalog-sync/internal/snapshot"

	"github.com/spf13/cobra"
)

func newReplayCmd(opts *rootOptions, env environmentFunc) *cobra.Command {
	var snapshotPath string

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Reconcile an archived snapshot instead of fetching from Shopify",
		Long: `Reconcile the products stored in a snapshot written by an earlier sync.
Shopify is not contacted. A local path is read directly; an s3:// location
is read from the configured snapshot bucket.

Examples:
  catalog-sync replay --snapshot data/snapshots/products-20240101T000000Z-<run>.jsonl.gz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if snapshotPath == "" {
				return errors.New("--snapshot is required")
			}

			ctx := cmd.Context()

			e, err := env(ctx, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.close()

			snapshotCfg := e.cfg.Snapshot
			snapshotCfg.Enabled = true

			source := &snapshot.Source{
				Archive: snapshot.FromConfig(ctx, snapshotCfg, e.logger),
				Key:     snapshotPath,
			}
			svc := service.NewSyncService(source, e.repo, nil, e.cfg.Sync, e.logger)

			return runSync(ctx, svc, cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Path or s3:// location of the snapshot to replay")

	return cmd
}
