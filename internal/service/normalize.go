package service

import (
	"math"
	"strings"

	"catalog-sync/internal/model"
	"catalog-sync/internal/shopify"

	"github.com/shopspring/decimal"
)

// Normalize maps a remote product onto the fields stored locally. ok is false
// when the record has no usable external id and must be skipped.
func Normalize(p shopify.Product) (externalID string, fields model.ProductFields, ok bool) {
	if p.ID.IsZero() {
		return "", model.ProductFields{}, false
	}
	externalID = p.ID.String()

	fields.Title = strings.TrimSpace(p.Title.String())
	if fields.Title == "" {
		fields.Title = model.UntitledProduct
	}

	fields.Price = decimal.Zero
	if v, found := p.FirstVariant(); found {
		fields.Price = parsePrice(v.Price)
		fields.Stock = parseStock(v.InventoryQuantity)
	}

	return externalID, fields, true
}

// parsePrice returns 0 for anything that is not a decimal number.
func parsePrice(v shopify.Value) decimal.Decimal {
	s := v.String()
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// maxStock is the largest quantity the stock column can hold.
var maxStock = decimal.NewFromInt(math.MaxInt32)

// parseStock truncates fractional quantities, floors negatives at zero and
// caps quantities above the column range at math.MaxInt32.
func parseStock(v shopify.Value) int {
	s := v.String()
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return 0
	}
	if d.GreaterThan(maxStock) {
		return math.MaxInt32
	}
	return int(d.IntPart())
}
