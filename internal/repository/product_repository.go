package repository

import (
	"context"
	"errors"
	"fmt"

	"catalog-sync/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const productColumns = `id, external_id, title, price, stock, created_at, updated_at`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// List retrieves products with pagination support.
func (r *productRepository) List(ctx context.Context, limit, offset int) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at, external_id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Count returns the number of stored products.
func (r *productRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// GetByExternalID retrieves a product by its remote identifier.
func (r *productRepository) GetByExternalID(ctx context.Context, externalID string) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE external_id = $1
	`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, externalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("external_id", externalID).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("external_id", externalID).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

// UpsertByExternalID inserts or updates a product keyed by external_id.
// The unique index on external_id guarantees a single row per remote product
// even when two syncs race; the last committed write wins.
func (r *productRepository) UpsertByExternalID(ctx context.Context, externalID string, fields model.ProductFields) (*model.Product, error) {
	query := `
		INSERT INTO products (id, external_id, title, price, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (external_id)
		DO UPDATE SET
			title = EXCLUDED.title,
			price = EXCLUDED.price,
			stock = EXCLUDED.stock,
			updated_at = NOW()
		RETURNING ` + productColumns

	p, err := scanProduct(r.pool.QueryRow(ctx, query,
		uuid.New(),
		externalID,
		fields.Title,
		fields.Price,
		fields.Stock,
	))
	if err != nil {
		r.logger.Error().Err(err).Str("external_id", externalID).Msg("failed to upsert product")
		return nil, fmt.Errorf("failed to upsert product %s: %w", externalID, err)
	}

	return p, nil
}

// DeleteAll removes every product.
func (r *productRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to delete products")
		return 0, fmt.Errorf("failed to delete products: %w", err)
	}

	r.logger.Info().Int64("deleted", tag.RowsAffected()).Msg("deleted all products")

	return tag.RowsAffected(), nil
}

// scanProduct scans a row selected with productColumns.
func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.ExternalID, &p.Title, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
