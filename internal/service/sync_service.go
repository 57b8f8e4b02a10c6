package service

import (
	"context"
	"fmt"
	"time"

	"catalog-sync/internal/config"
	"catalog-sync/internal/metrics"
	"catalog-sync/internal/model"
	"catalog-sync/internal/repository"
	"catalog-sync/internal/shopify"
	"catalog-sync/internal/snapshot"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const unknownSource = "unknown"

// syncService implements SyncService.
type syncService struct {
	fetcher CatalogFetcher
	repo    repository.ProductRepository
	archive snapshot.Archive
	cfg     config.SyncConfig
	logger  zerolog.Logger
}

// NewSyncService creates a new sync service. archive may be nil, in which
// case fetched records are not archived.
func NewSyncService(
	fetcher CatalogFetcher,
	repo repository.ProductRepository,
	archive snapshot.Archive,
	cfg config.SyncConfig,
	logger zerolog.Logger,
) SyncService {
	return &syncService{
		fetcher: fetcher,
		repo:    repo,
		archive: archive,
		cfg:     cfg,
		logger:  logger.With().Str("service", "sync").Logger(),
	}
}

// Sync fetches the full remote catalog, then normalises and upserts each
// record in fetch order. Records without an external id and records the
// repository rejects are counted as skipped. Cancellation aborts the run.
func (s *syncService) Sync(ctx context.Context) (*model.SyncResult, error) {
	if timeout := s.cfg.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	runID := uuid.New()
	logger := s.logger.With().Str("run_id", runID.String()).Logger()

	logger.Info().Int("page_size", s.cfg.PageSize).Msg("starting product sync")

	fetched, err := s.fetcher.FetchAll(ctx, s.cfg.PageSize)
	if err != nil {
		metrics.RecordSyncRun(unknownSource, 0, 0, time.Since(start), err)
		logger.Error().Err(err).Msg("failed to fetch remote products")
		return nil, fmt.Errorf("failed to fetch remote products: %w", err)
	}

	result := &model.SyncResult{
		RunID:  runID,
		Pages:  fetched.Pages,
		Source: fetched.Source,
	}
	if result.Source == "" {
		result.Source = unknownSource
	}

	if s.archive != nil && result.Source != model.SyncSourceSnapshot {
		key := snapshot.Key(runID, start)
		location, err := s.archive.Save(ctx, key, fetched.Products)
		if err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("failed to archive fetched products")
		} else {
			result.Snapshot = location
		}
	}

	for i, record := range fetched.Products {
		if err := ctx.Err(); err != nil {
			return nil, s.abort(logger, result, start, i, len(fetched.Products), err)
		}

		externalID, fields, ok := Normalize(record)
		if !ok {
			result.Skipped++
			logger.Warn().Int("index", i).Str("title", record.Title.String()).Msg("skipping product without id")
			continue
		}

		if _, err := s.repo.UpsertByExternalID(ctx, externalID, fields); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, s.abort(logger, result, start, i, len(fetched.Products), ctxErr)
			}
			result.Skipped++
			logger.Error().Err(err).Str("external_id", externalID).Msg("failed to store product, skipping")
			continue
		}
		result.Synced++
	}

	result.Total = result.Synced + result.Skipped
	elapsed := time.Since(start)
	result.DurationMS = elapsed.Milliseconds()

	metrics.RecordSyncRun(result.Source, result.Synced, result.Skipped, elapsed, nil)

	logger.Info().
		Int("synced", result.Synced).
		Int("skipped", result.Skipped).
		Int("total", result.Total).
		Int("pages", result.Pages).
		Str("source", result.Source).
		Dur("duration", elapsed).
		Msg("product sync completed")

	return result, nil
}

// abort records a run cut short by cancellation and wraps the context error.
func (s *syncService) abort(logger zerolog.Logger, result *model.SyncResult, start time.Time, done, total int, err error) error {
	metrics.RecordSyncRun(result.Source, result.Synced, result.Skipped, time.Since(start), err)
	logger.Warn().Err(err).
		Int("processed", done).
		Int("total", total).
		Msg("product sync aborted")
	return fmt.Errorf("sync aborted after %d of %d products: %w", done, total, err)
}

var _ CatalogFetcher = (*shopify.Client)(nil)
