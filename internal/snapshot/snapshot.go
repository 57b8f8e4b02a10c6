// Package snapshot archives the raw records of a catalog fetch as gzipped
// JSON lines so a sync can be inspected or replayed later.
package snapshot

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"catalog-sync/internal/model"
	"catalog-sync/internal/shopify"

	"github.com/google/uuid"
)

// Archive stores and retrieves fetched product snapshots.
type Archive interface {
	// Save writes products under key and returns where they were stored.
	Save(ctx context.Context, key string, products []shopify.Product) (string, error)

	// Load reads the products stored under key.
	Load(ctx context.Context, key string) ([]shopify.Product, error)
}

const keyTimeLayout = "20060102T150405Z"

// Key returns the archive key for a sync run started at t.
func Key(runID uuid.UUID, t time.Time) string {
	return fmt.Sprintf("products-%s-%s.jsonl.gz", t.UTC().Format(keyTimeLayout), runID)
}

// Encode writes products to w as gzipped JSON lines.
func Encode(w io.Writer, products []shopify.Product) error {
	gzipWriter := gzip.NewWriter(w)
	encoder := json.NewEncoder(gzipWriter)

	for i, p := range products {
		if err := encoder.Encode(p); err != nil {
			gzipWriter.Close()
			return fmt.Errorf("failed to encode product %d: %w", i, err)
		}
	}

	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("failed to flush gzip stream: %w", err)
	}
	return nil
}

// Decode reads gzipped JSON lines written by Encode. Blank lines are ignored.
func Decode(ctx context.Context, r io.Reader) ([]shopify.Product, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), 8*1024*1024)

	products := []shopify.Product{}
	line := 0
	for scanner.Scan() {
		line++
		if line%10_000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var p shopify.Product
		if err := json.Unmarshal([]byte(text), &p); err != nil {
			return nil, fmt.Errorf("failed to decode line %d: %w", line, err)
		}
		products = append(products, p)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	return products, nil
}

// Source replays an archived snapshot as if it had just been fetched.
type Source struct {
	Archive Archive
	Key     string
}

// FetchAll loads the snapshot. pageSize is ignored; a snapshot is one page.
func (s *Source) FetchAll(ctx context.Context, pageSize int) (*shopify.FetchResult, error) {
	products, err := s.Archive.Load(ctx, s.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", s.Key, err)
	}

	return &shopify.FetchResult{
		Products: products,
		Pages:    1,
		Source:   model.SyncSourceSnapshot,
	}, nil
}
