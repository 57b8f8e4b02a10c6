package service

import (
	"context"
	"fmt"
	"math"

	"catalog-sync/internal/model"
	"catalog-sync/internal/repository"

	"github.com/rs/zerolog"
)

const (
	// DefaultPerPage is used when a caller does not ask for a page size.
	DefaultPerPage = 10

	// MaxPerPage is the largest page of local products served at once.
	MaxPerPage = 100
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List returns one page of products, oldest first. perPage is clamped to
// [1, MaxPerPage] and page < 1 means 1.
func (s *productService) List(ctx context.Context, page, perPage int) (*model.ProductPage, error) {
	if perPage < 1 {
		perPage = 1
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	if page < 1 {
		page = 1
	}

	total, err := s.productRepo.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count products")
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	// Pages whose offset does not fit in an int lie past any stored row.
	if page-1 > math.MaxInt/perPage {
		return &model.ProductPage{
			Products:   []model.Product{},
			Total:      total,
			Page:       page,
			PerPage:    perPage,
			TotalPages: (total + perPage - 1) / perPage,
		}, nil
	}

	offset := (page - 1) * perPage
	products, err := s.productRepo.List(ctx, perPage, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("page", page).
			Int("per_page", perPage).
			Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int("page", page).
		Int("per_page", perPage).
		Msg("retrieved products")

	return &model.ProductPage{
		Products:   products,
		Count:      len(products),
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: (total + perPage - 1) / perPage,
	}, nil
}

// Clear removes every stored product.
func (s *productService) Clear(ctx context.Context) (int64, error) {
	cleared, err := s.productRepo.DeleteAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to clear products")
		return 0, fmt.Errorf("failed to clear products: %w", err)
	}

	s.logger.Info().Int64("cleared", cleared).Msg("cleared all products")

	return cleared, nil
}
