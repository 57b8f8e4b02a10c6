package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"catalog-sync/internal/config"
	"catalog-sync/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	Config    config.DatabaseConfig
}

// SetupTestDB creates a PostgreSQL test container, connects through
// database.NewPool and applies the schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	logger := zerolog.Nop()
	pool, err := database.NewPool(ctx, dbConfig, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := database.EnsureSchema(ctx, pool, logger); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		Config:    dbConfig,
	}
}

// CleanupDB removes every product.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), "DELETE FROM products"); err != nil {
		t.Logf("failed to clean products: %v", err)
	}
}

// FakeShop serves canned pages of the Shopify products endpoint. Page i is
// served for page_info "p<i>" (the first page for no page_info) and links
// to page i+1 when one exists.
type FakeShop struct {
	Server *httptest.Server

	mu       sync.Mutex
	pages    []string
	status   int
	requests int
	tokens   []string
}

// NewFakeShop starts a fake shop serving the given JSON page bodies.
func NewFakeShop(t *testing.T, pages ...string) *FakeShop {
	t.Helper()

	shop := &FakeShop{pages: pages}
	shop.Server = httptest.NewServer(http.HandlerFunc(shop.serve))
	t.Cleanup(shop.Server.Close)

	return shop
}

// SetPages replaces the served pages.
func (s *FakeShop) SetPages(pages ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages = pages
}

// FailWith makes every request answer with status. Zero restores normal pages.
func (s *FakeShop) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// Requests returns the number of requests served.
func (s *FakeShop) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// Tokens returns the access tokens seen, in request order.
func (s *FakeShop) Tokens() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.tokens...)
}

// Config returns a Shopify configuration pointing at the fake shop.
func (s *FakeShop) Config() config.ShopifyConfig {
	return config.ShopifyConfig{
		ShopDomain:     "acme",
		AccessToken:    "shpat_integration",
		APIVersion:     config.DefaultShopifyAPIVersion,
		TimeoutSeconds: 5,
		BaseURL:        s.Server.URL,
	}
}

func (s *FakeShop) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests++
	s.tokens = append(s.tokens, r.Header.Get("X-Shopify-Access-Token"))

	if s.status != 0 {
		http.Error(w, `{"errors":"unavailable"}`, s.status)
		return
	}

	index := 0
	if cursor := r.URL.Query().Get("page_info"); cursor != "" {
		if _, err := fmt.Sscanf(cursor, "p%d", &index); err != nil || index < 1 || index >= len(s.pages) {
			http.Error(w, `{"errors":"invalid page_info"}`, http.StatusBadRequest)
			return
		}
	}

	if index+1 < len(s.pages) {
		w.Header().Set("Link", fmt.Sprintf(`<%s%s?limit=%s&page_info=p%d>; rel="next"`,
			s.Server.URL, r.URL.Path, r.URL.Query().Get("limit"), index+1))
	}

	w.Header().Set("Content-Type", "application/json")
	body := `{"products":[]}`
	if len(s.pages) > 0 {
		body = s.pages[index]
	}
	fmt.Fprint(w, body)
}
