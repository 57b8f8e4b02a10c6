package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UntitledProduct is stored when the remote record carries no title.
const UntitledProduct = "Untitled Product"

// Product represents a catalog product synchronised from the remote shop.
type Product struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	ExternalID string          `json:"externalId" db:"external_id"`
	Title      string          `json:"title" db:"title"`
	Price      decimal.Decimal `json:"price" db:"price"`
	Stock      int             `json:"stock" db:"stock"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time       `json:"updatedAt" db:"updated_at"`
}

// ProductFields holds the values written on every upsert of a product.
type ProductFields struct {
	Title string
	Price decimal.Decimal
	Stock int
}

// ProductPage is a page of local products.
type ProductPage struct {
	Products   []Product `json:"products"`
	Count      int       `json:"count"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	PerPage    int       `json:"perPage"`
	TotalPages int       `json:"totalPages"`
}

// ClearResponse is returned after all local products are removed.
type ClearResponse struct {
	Message string `json:"message"`
	Cleared int64  `json:"cleared"`
}
