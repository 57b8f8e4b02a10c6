package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"catalog-sync/internal/shopify"

	"github.com/rs/zerolog"
)

// fileArchive implements Archive on the local file system.
type fileArchive struct {
	dir    string
	logger zerolog.Logger
}

// NewFileArchive creates an archive that stores snapshots under dir.
func NewFileArchive(dir string, logger zerolog.Logger) Archive {
	return &fileArchive{
		dir:    dir,
		logger: logger.With().Str("component", "file-archive").Logger(),
	}
}

// Save writes the snapshot to a temporary file and renames it into place.
func (a *fileArchive) Save(ctx context.Context, key string, products []shopify.Product) (string, error) {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		a.logger.Error().Err(err).Str("dir", a.dir).Msg("failed to create snapshot directory")
		return "", fmt.Errorf("failed to create snapshot directory %s: %w", a.dir, err)
	}

	path := filepath.Join(a.dir, key)
	tmp, err := os.CreateTemp(a.dir, ".snapshot-*")
	if err != nil {
		return "", fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, products); err != nil {
		tmp.Close()
		a.logger.Error().Err(err).Str("file", path).Msg("failed to write snapshot")
		return "", fmt.Errorf("failed to write snapshot %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close snapshot file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to move snapshot into place: %w", err)
	}

	a.logger.Info().
		Str("file", path).
		Int("products", len(products)).
		Msg("snapshot saved")

	return path, nil
}

// Load reads a snapshot. key may be a path to an existing file or a name
// relative to the archive directory.
func (a *fileArchive) Load(ctx context.Context, key string) ([]shopify.Product, error) {
	path := key
	if _, err := os.Stat(path); err != nil {
		path = filepath.Join(a.dir, key)
	}

	file, err := os.Open(path)
	if err != nil {
		a.logger.Error().Err(err).Str("file", path).Msg("failed to open snapshot")
		return nil, fmt.Errorf("failed to open snapshot %s: %w", path, err)
	}
	defer file.Close()

	products, err := Decode(ctx, file)
	if err != nil {
		a.logger.Error().Err(err).Str("file", path).Msg("failed to read snapshot")
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	a.logger.Info().
		Str("file", path).
		Int("products", len(products)).
		Msg("snapshot loaded")

	return products, nil
}
