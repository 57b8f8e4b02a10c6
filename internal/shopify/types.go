package shopify

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a product record as returned by the Shopify products endpoint.
// Only the fields needed for reconciliation are decoded.
type Product struct {
	ID       Value    `json:"id"`
	Title    Value    `json:"title"`
	Variants Variants `json:"variants,omitempty"`
}

// Variant is a product variant. Only the first variant of a product is used.
type Variant struct {
	Price             Value `json:"price"`
	InventoryQuantity Value `json:"inventory_quantity"`
}

// Variants decodes leniently: a value that is not an array decodes to no
// variants and array elements that are not objects are dropped.
type Variants []Variant

// UnmarshalJSON implements json.Unmarshaler.
func (vs *Variants) UnmarshalJSON(data []byte) error {
	*vs = nil

	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil
	}

	for _, elem := range elems {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 || elem[0] != '{' {
			continue
		}
		var v Variant
		if err := json.Unmarshal(elem, &v); err != nil {
			continue
		}
		*vs = append(*vs, v)
	}
	return nil
}

// Value is a loosely typed JSON scalar. Shopify sends ids as numbers, prices
// as strings and quantities as numbers, but older API versions and proxies
// mix these freely. Strings are kept verbatim and numbers keep their literal
// text. null, booleans, objects and arrays decode to the empty Value.
type Value string

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*v = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = Value(n.String())
	default:
		*v = ""
	}
	return nil
}

// MarshalJSON implements json.Marshaler. The empty Value encodes as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if v == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(v))
}

// String returns the value with surrounding whitespace removed.
func (v Value) String() string {
	return strings.TrimSpace(string(v))
}

// IsZero reports whether the value is blank or parses as a numeric zero.
func (v Value) IsZero() bool {
	s := v.String()
	if s == "" {
		return true
	}
	d, err := decimal.NewFromString(s)
	return err == nil && d.IsZero()
}

// FirstVariant returns the first variant of the product, if any.
func (p Product) FirstVariant() (Variant, bool) {
	if len(p.Variants) == 0 {
		return Variant{}, false
	}
	return p.Variants[0], true
}

// Page is a single page of products with the cursor of the following page.
type Page struct {
	Products   []Product
	NextCursor string
}

// FetchResult holds every product returned by a complete paginated fetch.
type FetchResult struct {
	Products []Product
	Pages    int
	Source   string
}
