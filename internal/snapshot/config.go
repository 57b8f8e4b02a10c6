package snapshot

import (
	"context"
	"strings"

	"catalog-sync/internal/config"

	"github.com/rs/zerolog"
)

// FromConfig builds the archive described by cfg. It returns nil when
// archiving is disabled. With an S3 bucket configured, snapshots go to S3 and
// fall back to the local directory; a failing S3 setup degrades to local only.
func FromConfig(ctx context.Context, cfg config.SnapshotConfig, logger zerolog.Logger) Archive {
	if !cfg.Enabled {
		logger.Debug().Msg("snapshot archiving disabled")
		return nil
	}

	local := NewFileArchive(cfg.Dir, logger)
	if strings.TrimSpace(cfg.S3Bucket) == "" {
		logger.Info().Str("dir", cfg.Dir).Msg("archiving snapshots to local file system")
		return local
	}

	remote, err := NewS3Archive(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3Prefix, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 archive, falling back to local file system only")
		return local
	}

	return NewFallbackArchive(remote, local, logger)
}
