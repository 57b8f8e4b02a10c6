//go:build ignore

// generate_sample_snapshot writes a small snapshot for trying out
// `catalog-sync replay` without Shopify credentials:
//
//	go run scripts/generate_sample_snapshot.go
//	catalog-sync replay --snapshot data/snapshots/sample.jsonl.gz
package main

import (
	"log"
	"os"
	"path/filepath"

	"catalog-sync/internal/shopify"
	"catalog-sync/internal/snapshot"
)

func main() {
	dataDir := "data/snapshots"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	// Covers the normalisation cases: a complete record, a missing title,
	// no variants, fractional and negative stock, and a record without id.
	products := []shopify.Product{
		{ID: "632910392", Title: "IPod Nano - 8GB", Variants: []shopify.Variant{{Price: "199.00", InventoryQuantity: "10"}}},
		{ID: "921728736", Title: "IPod Touch 8GB", Variants: []shopify.Variant{{Price: "199.00", InventoryQuantity: "13"}, {Price: "209.00", InventoryQuantity: "2"}}},
		{ID: "1071559582", Variants: []shopify.Variant{{Price: "24.99", InventoryQuantity: "4"}}},
		{ID: "1071559583", Title: "Gift Card"},
		{ID: "1071559584", Title: "Sticker Pack", Variants: []shopify.Variant{{Price: "3.50", InventoryQuantity: "7.5"}}},
		{ID: "1071559585", Title: "Backordered Tee", Variants: []shopify.Variant{{Price: "18.00", InventoryQuantity: "-3"}}},
		{Title: "Draft without id", Variants: []shopify.Variant{{Price: "1.00", InventoryQuantity: "1"}}},
	}

	path := filepath.Join(dataDir, "sample.jsonl.gz")
	file, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", path, err)
	}
	defer file.Close()

	if err := snapshot.Encode(file, products); err != nil {
		log.Fatalf("Failed to write %s: %v", path, err)
	}

	log.Printf("Created %s with %d products", path, len(products))
}
