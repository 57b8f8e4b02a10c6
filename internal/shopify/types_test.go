package shopify

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Value
	}{
		{name: "String", input: `"99.99"`, expected: "99.99"},
		{name: "Integer", input: `15`, expected: "15"},
		{name: "Large id keeps precision", input: `8123456789012345678`, expected: "8123456789012345678"},
		{name: "Decimal number", input: `10.5`, expected: "10.5"},
		{name: "Negative number", input: `-3`, expected: "-3"},
		{name: "Null", input: `null`, expected: ""},
		{name: "Boolean", input: `true`, expected: ""},
		{name: "Object", input: `{"amount":"1.00"}`, expected: ""},
		{name: "Array", input: `[1,2]`, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value
			require.NoError(t, json.Unmarshal([]byte(tt.input), &v))
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestValue_IsZero(t *testing.T) {
	assert.True(t, Value("").IsZero())
	assert.True(t, Value("   ").IsZero())
	assert.True(t, Value("0").IsZero())
	assert.True(t, Value("0.0").IsZero())
	assert.True(t, Value("0e0").IsZero())
	assert.True(t, Value("-0").IsZero())
	assert.False(t, Value("10").IsZero())
	assert.False(t, Value("100").IsZero())
	assert.False(t, Value("abc").IsZero())
	assert.False(t, Value("0x").IsZero())
	assert.False(t, Value("1e-3").IsZero())
	assert.False(t, Value("gid://shopify/Product/1").IsZero())
}

func TestProduct_RoundTrip(t *testing.T) {
	input := `{"id":632910392,"title":"IPod Nano","body_html":"<p>ignored</p>","variants":[{"price":"199.00","inventory_quantity":10},{"price":"1.00","inventory_quantity":1}]}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(input), &p))
	assert.Equal(t, Value("632910392"), p.ID)
	assert.Equal(t, "IPod Nano", p.Title.String())

	v, ok := p.FirstVariant()
	require.True(t, ok)
	assert.Equal(t, Value("199.00"), v.Price)
	assert.Equal(t, Value("10"), v.InventoryQuantity)

	encoded, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded Product
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, p, decoded)
}

func TestProduct_FirstVariant_None(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","variants":[]}`), &p))

	_, ok := p.FirstVariant()
	assert.False(t, ok)
}

func TestVariants_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Variants
	}{
		{name: "Array", input: `[{"price":"1.00","inventory_quantity":2}]`, expected: Variants{{Price: "1.00", InventoryQuantity: "2"}}},
		{name: "Empty array", input: `[]`, expected: nil},
		{name: "Object", input: `{"price":"1.00"}`, expected: nil},
		{name: "String", input: `"x"`, expected: nil},
		{name: "Null", input: `null`, expected: nil},
		{name: "Scalar elements dropped", input: `[1,"x",null,{"price":"2"}]`, expected: Variants{{Price: "2"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var vs Variants
			require.NoError(t, json.Unmarshal([]byte(tt.input), &vs))
			assert.Equal(t, tt.expected, vs)
		})
	}
}
