package service

import (
	"context"

	"catalog-sync/internal/model"
	"catalog-sync/internal/shopify"
)

// CatalogFetcher returns every record of a remote catalog in page order.
// shopify.Client fetches live; snapshot.Source replays an archived fetch.
type CatalogFetcher interface {
	FetchAll(ctx context.Context, pageSize int) (*shopify.FetchResult, error)
}

// SyncService reconciles the remote catalog into local storage.
type SyncService interface {
	// Sync fetches every remote product and upserts it by external id.
	Sync(ctx context.Context) (*model.SyncResult, error)
}

// ProductService defines read and maintenance operations on local products.
type ProductService interface {
	// List returns one page of stored products.
	List(ctx context.Context, page, perPage int) (*model.ProductPage, error)

	// Clear removes every stored product and returns how many were removed.
	Clear(ctx context.Context) (int64, error)
}
