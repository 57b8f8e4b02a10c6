package snapshot

import (
	"context"

	"catalog-sync/internal/shopify"

	"github.com/rs/zerolog"
)

// fallbackArchive tries a primary archive first and falls back to a secondary.
type fallbackArchive struct {
	primary   Archive
	secondary Archive
	logger    zerolog.Logger
}

// NewFallbackArchive creates an archive that prefers primary (usually S3) and
// uses secondary (usually the local file system) when primary fails or is nil.
func NewFallbackArchive(primary, secondary Archive, logger zerolog.Logger) Archive {
	return &fallbackArchive{
		primary:   primary,
		secondary: secondary,
		logger:    logger.With().Str("component", "fallback-archive").Logger(),
	}
}

func (a *fallbackArchive) Save(ctx context.Context, key string, products []shopify.Product) (string, error) {
	if a.primary != nil {
		location, err := a.primary.Save(ctx, key, products)
		if err == nil {
			return location, nil
		}
		a.logger.Warn().Err(err).Str("key", key).Msg("primary archive save failed, falling back")
	}
	return a.secondary.Save(ctx, key, products)
}

func (a *fallbackArchive) Load(ctx context.Context, key string) ([]shopify.Product, error) {
	if a.primary != nil {
		products, err := a.primary.Load(ctx, key)
		if err == nil {
			return products, nil
		}
		a.logger.Warn().Err(err).Str("key", key).Msg("primary archive load failed, falling back")
	}
	return a.secondary.Load(ctx, key)
}
