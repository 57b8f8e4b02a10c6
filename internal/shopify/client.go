package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"catalog-sync/internal/config"
	"catalog-sync/internal/metrics"

	"github.com/rs/zerolog"
)

const (
	// MaxPageSize is the largest limit the products endpoint accepts.
	MaxPageSize = 250

	// SourceName identifies products fetched live from Shopify.
	SourceName = "shopify"

	accessTokenHeader = "X-Shopify-Access-Token"
	maxBodyBytes      = 32 << 20
	maxErrorBodyBytes = 512
)

// Client fetches products from the Shopify Admin REST API.
type Client struct {
	endpoint    string
	accessToken string
	http        *http.Client
	logger      zerolog.Logger
}

// NewClient creates a Shopify client. Both the shop domain and the access
// token are required; a missing value is reported here rather than on the
// first request. A nil httpClient is replaced by one using cfg's timeout.
func NewClient(cfg config.ShopifyConfig, httpClient *http.Client, logger zerolog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.ShopDomain) == "" {
		return nil, fmt.Errorf("%w: shop domain is required", ErrMissingCredentials)
	}
	if strings.TrimSpace(cfg.AccessToken) == "" {
		return nil, fmt.Errorf("%w: access token is required", ErrMissingCredentials)
	}

	if httpClient == nil {
		timeout := cfg.Timeout()
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	endpoint := productsEndpoint(cfg)

	logger = logger.With().Str("component", "shopify-client").Logger()
	logger.Debug().Str("endpoint", endpoint).Msg("shopify client initialised")

	return &Client{
		endpoint:    endpoint,
		accessToken: cfg.AccessToken,
		http:        httpClient,
		logger:      logger,
	}, nil
}

// productsEndpoint builds the products.json URL for the configured shop.
func productsEndpoint(cfg config.ShopifyConfig) string {
	version := strings.TrimSpace(cfg.APIVersion)
	if version == "" {
		version = config.DefaultShopifyAPIVersion
	}

	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		host := strings.TrimSpace(cfg.ShopDomain)
		host = strings.TrimPrefix(host, "https://")
		host = strings.TrimPrefix(host, "http://")
		host = strings.TrimRight(host, "/")
		if !strings.Contains(host, ".") {
			host += ".myshopify.com"
		}
		base = "https://" + host
	}

	return fmt.Sprintf("%s/admin/api/%s/products.json", base, version)
}

// ClampPageSize bounds a requested page size to [1, MaxPageSize].
func ClampPageSize(pageSize int) int {
	if pageSize < 1 {
		return 1
	}
	if pageSize > MaxPageSize {
		return MaxPageSize
	}
	return pageSize
}

// FetchPage fetches one page of products. An empty cursor requests the first
// page. The returned NextCursor is empty on the last page.
func (c *Client) FetchPage(ctx context.Context, cursor string, pageSize int) (*Page, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(ClampPageSize(pageSize)))
	if cursor != "" {
		query.Set("page_info", cursor)
	}
	target := c.endpoint + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create shopify request: %w", err)
	}
	req.Header.Set(accessTokenHeader, c.accessToken)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordRemoteRequest(0, time.Since(start))
		c.logger.Error().Err(err).Str("cursor", cursor).Msg("shopify request failed")
		return nil, &TransportError{URL: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	elapsed := time.Since(start)
	metrics.RecordRemoteRequest(resp.StatusCode, elapsed)
	if err != nil {
		c.logger.Error().Err(err).Str("cursor", cursor).Msg("failed to read shopify response")
		return nil, &TransportError{URL: c.endpoint, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("cursor", cursor).
			Dur("latency", elapsed).
			Msg("shopify returned error status")
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(body, maxErrorBodyBytes)}
	}

	products, err := decodeProducts(body)
	if err != nil {
		c.logger.Warn().Err(err).Str("cursor", cursor).Msg("failed to decode shopify response")
		return nil, err
	}

	page := &Page{
		Products:   products,
		NextCursor: NextCursor(resp.Header.Values("Link")),
	}

	c.logger.Debug().
		Int("count", len(products)).
		Bool("has_next", page.NextCursor != "").
		Dur("latency", elapsed).
		Msg("fetched shopify product page")

	return page, nil
}

// FetchAll follows the cursor chain from the first page until the last and
// returns every product in page order. Any failure aborts the whole fetch.
func (c *Client) FetchAll(ctx context.Context, pageSize int) (*FetchResult, error) {
	result := &FetchResult{Products: []Product{}, Source: SourceName}
	seen := make(map[string]struct{})
	cursor := ""

	for {
		page, err := c.FetchPage(ctx, cursor, pageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch page %d: %w", result.Pages+1, err)
		}
		result.Pages++
		result.Products = append(result.Products, page.Products...)

		if page.NextCursor == "" {
			break
		}
		if _, repeated := seen[page.NextCursor]; repeated {
			c.logger.Error().Str("cursor", page.NextCursor).Int("page", result.Pages).Msg("pagination cursor repeated")
			return nil, fmt.Errorf("%w after page %d", ErrRepeatedCursor, result.Pages)
		}
		seen[page.NextCursor] = struct{}{}
		cursor = page.NextCursor
	}

	c.logger.Info().
		Int("products", len(result.Products)).
		Int("pages", result.Pages).
		Msg("fetched shopify catalog")

	return result, nil
}

// decodeProducts decodes a products page body. The body must be a JSON
// object whose "products" member is an array. Records are decoded one by one.
func decodeProducts(body []byte) ([]Product, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &DecodeError{Err: err}
	}

	raw, ok := envelope["products"]
	if !ok {
		return nil, &DecodeError{Err: errors.New(`missing "products" key`)}
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, &DecodeError{Err: errors.New(`"products" is not an array`)}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, &DecodeError{Err: err}
	}

	// A record that is not an object decodes to an empty Product, which has
	// no id and is skipped downstream instead of failing the page.
	products := make([]Product, len(elems))
	for i, elem := range elems {
		_ = json.Unmarshal(elem, &products[i])
	}

	return products, nil
}

// truncate returns at most n bytes of b as a string.
func truncate(b []byte, n int) string {
	s := strings.TrimSpace(string(b))
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
