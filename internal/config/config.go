package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultShopifyAPIVersion is used when SHOPIFY_API_VERSION is not set.
const DefaultShopifyAPIVersion = "2024-01"

// MaxSyncPageSize is the largest page the Shopify products endpoint accepts.
const MaxSyncPageSize = 250

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Shopify  ShopifyConfig
	Sync     SyncConfig
	Snapshot SnapshotConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration.
// An empty APIKey disables API key checks.
type AuthConfig struct {
	APIKey string
}

// CORSConfig holds the list of origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string
}

// ShopifyConfig holds the credentials and endpoint settings of the remote catalog.
type ShopifyConfig struct {
	ShopDomain     string
	AccessToken    string
	APIVersion     string
	TimeoutSeconds int

	// BaseURL overrides the products endpoint root (scheme + host). Used by tests.
	BaseURL string
}

// SyncConfig holds reconciliation settings.
type SyncConfig struct {
	PageSize       int
	TimeoutSeconds int
}

// SnapshotConfig holds settings for archiving raw fetched products.
type SnapshotConfig struct {
	Enabled  bool
	Dir      string
	S3Bucket string
	S3Region string
	S3Prefix string
}

// Load loads configuration from environment variables.
// A .env file in the working directory is read first when present;
// variables already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "catalog"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Shopify: ShopifyConfig{
			ShopDomain:     getEnv("SHOPIFY_SHOP_DOMAIN", ""),
			AccessToken:    getEnv("SHOPIFY_ACCESS_TOKEN", ""),
			APIVersion:     getEnv("SHOPIFY_API_VERSION", DefaultShopifyAPIVersion),
			TimeoutSeconds: getEnvAsInt("SHOPIFY_TIMEOUT_SECONDS", 30),
			BaseURL:        getEnv("SHOPIFY_BASE_URL", ""),
		},
		Sync: SyncConfig{
			PageSize:       getEnvAsInt("SYNC_PAGE_SIZE", MaxSyncPageSize),
			TimeoutSeconds: getEnvAsInt("SYNC_TIMEOUT_SECONDS", 300),
		},
		Snapshot: SnapshotConfig{
			Enabled:  getEnvAsBool("SNAPSHOT_ENABLED", false),
			Dir:      getEnv("SNAPSHOT_DIR", "data/snapshots"),
			S3Bucket: getEnv("SNAPSHOT_S3_BUCKET", ""),
			S3Region: getEnv("SNAPSHOT_S3_REGION", "us-east-1"),
			S3Prefix: getEnv("SNAPSHOT_S3_PREFIX", "snapshots/"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
// Shopify credentials are checked by the Shopify client when it is constructed.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Shopify.TimeoutSeconds < 1 {
		return fmt.Errorf("shopify timeout must be at least 1 second")
	}

	if c.Sync.PageSize < 1 || c.Sync.PageSize > MaxSyncPageSize {
		return fmt.Errorf("invalid sync page size: %d (must be between 1 and %d)", c.Sync.PageSize, MaxSyncPageSize)
	}

	if c.Sync.TimeoutSeconds < 1 {
		return fmt.Errorf("sync timeout must be at least 1 second")
	}

	if c.Snapshot.Enabled && c.Snapshot.S3Bucket == "" && c.Snapshot.Dir == "" {
		return fmt.Errorf("snapshot directory or S3 bucket is required when snapshots are enabled")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Timeout returns the HTTP timeout for calls to Shopify.
func (c *ShopifyConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Timeout returns the upper bound for a single sync run.
func (c *SyncConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsList retrieves a comma separated environment variable or returns a default value.
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
