package repository

import (
	"context"

	"catalog-sync/internal/model"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves products with pagination support, oldest first.
	List(ctx context.Context, limit, offset int) ([]model.Product, error)

	// Count returns the number of stored products.
	Count(ctx context.Context) (int, error)

	// GetByExternalID retrieves a product by its remote identifier.
	// Returns nil, nil when no product matches.
	GetByExternalID(ctx context.Context, externalID string) (*model.Product, error)

	// UpsertByExternalID inserts a product or, when one with the same external
	// identifier exists, overwrites its title, price and stock.
	UpsertByExternalID(ctx context.Context, externalID string, fields model.ProductFields) (*model.Product, error)

	// DeleteAll removes every product and returns the number of rows removed.
	DeleteAll(ctx context.Context) (int64, error)
}
