package shopify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextCursor(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		expected string
	}{
		{
			name:     "No header",
			headers:  nil,
			expected: "",
		},
		{
			name:     "Next only",
			headers:  []string{`<https://acme.myshopify.com/admin/api/2024-01/products.json?limit=50&page_info=abc123>; rel="next"`},
			expected: "abc123",
		},
		{
			name: "Previous and next",
			headers: []string{
				`<https://acme.myshopify.com/admin/api/2024-01/products.json?limit=50&page_info=prev1>; rel="previous", ` +
					`<https://acme.myshopify.com/admin/api/2024-01/products.json?limit=50&page_info=next2>; rel="next"`,
			},
			expected: "next2",
		},
		{
			name:     "Previous only means last page",
			headers:  []string{`<https://acme.myshopify.com/admin/api/2024-01/products.json?page_info=prev1>; rel="previous"`},
			expected: "",
		},
		{
			name:     "Unquoted and upper case rel",
			headers:  []string{`<https://acme.myshopify.com/products.json?page_info=xyz>; REL=next`},
			expected: "xyz",
		},
		{
			name:     "Multiple relation types",
			headers:  []string{`<https://acme.myshopify.com/products.json?page_info=multi>; rel="last next"`},
			expected: "multi",
		},
		{
			name: "Split across header lines",
			headers: []string{
				`<https://acme.myshopify.com/products.json?page_info=p>; rel="previous"`,
				`<https://acme.myshopify.com/products.json?page_info=n>; rel="next"`,
			},
			expected: "n",
		},
		{
			name:     "Next without page_info",
			headers:  []string{`<https://acme.myshopify.com/products.json?limit=50>; rel="next"`},
			expected: "",
		},
		{
			name:     "Encoded cursor",
			headers:  []string{`<https://acme.myshopify.com/products.json?page_info=eyJsYXN0X2lkIjo0fQ%3D%3D>; rel="next"`},
			expected: "eyJsYXN0X2lkIjo0fQ==",
		},
		{
			name:     "Garbage",
			headers:  []string{`not a link header`},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextCursor(tt.headers))
		})
	}
}
