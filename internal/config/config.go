package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Mongo      MongoConfig
	Redis      RedisConfig
	Payment    PaymentConfig
	Storefront StorefrontConfig
	Logger     LoggerConfig
	Auth       AuthConfig
	S3         S3Config
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds configuration for the PostgreSQL order ledger.
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

// MongoConfig holds configuration for the cart document store.
type MongoConfig struct {
	URI      string
	Database string
}

// RedisConfig holds configuration for the webhook in-flight lock.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	LockTTL  time.Duration
}

// PaymentConfig holds payment provider configuration.
type PaymentConfig struct {
	SecretKey          string
	WebhookSecret      string
	Currency           string
	Timeout            time.Duration
	BreakerMaxFailures int
	BreakerOpenTimeout time.Duration
}

// StorefrontConfig holds the public storefront settings.
type StorefrontConfig struct {
	PublicURL   string
	OfferIDs    []string
	CatalogFile string
	OwnerID     string
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration for the admin API.
type AuthConfig struct {
	APIKey string
}

// S3Config holds AWS S3 configuration for the offer catalog.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "catalog/")
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 3000),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "checkout"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "checkout"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			LockTTL:  getEnvAsDuration("WEBHOOK_LOCK_TTL", 30*time.Second),
		},
		Payment: PaymentConfig{
			SecretKey:          getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret:      getEnv("STRIPE_WEBHOOK_SECRET", ""),
			Currency:           strings.ToLower(getEnv("PAYMENT_CURRENCY", "usd")),
			Timeout:            getEnvAsDuration("PAYMENT_TIMEOUT", 10*time.Second),
			BreakerMaxFailures: getEnvAsInt("BREAKER_MAX_FAILURES", 5),
			BreakerOpenTimeout: getEnvAsDuration("BREAKER_OPEN_TIMEOUT", 30*time.Second),
		},
		Storefront: StorefrontConfig{
			PublicURL:   strings.TrimRight(getEnv("PUBLIC_URL", ""), "/"),
			OfferIDs:    getEnvList("PRODUCT_ID_1", "PRODUCT_ID_2"),
			CatalogFile: getEnv("CATALOG_FILE", ""),
			OwnerID:     getEnv("CART_OWNER_ID", "default_user"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		S3: S3Config{
			Enabled: getEnvAsBool("S3_ENABLED", false),
			Bucket:  getEnv("S3_BUCKET", ""),
			Region:  getEnv("S3_REGION", "us-east-1"),
			Prefix:  getEnv("S3_PREFIX", "catalog/"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
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

	if c.Mongo.URI == "" {
		return fmt.Errorf("mongo URI is required")
	}

	if c.Mongo.Database == "" {
		return fmt.Errorf("mongo database is required")
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis address is required when redis is enabled")
	}

	if c.Payment.SecretKey == "" {
		return fmt.Errorf("stripe secret key is required")
	}

	if c.Payment.WebhookSecret == "" {
		return fmt.Errorf("stripe webhook secret is required")
	}

	if len(c.Payment.Currency) != 3 {
		return fmt.Errorf("invalid payment currency: %q (must be an ISO 4217 code)", c.Payment.Currency)
	}

	if c.Payment.Timeout <= 0 {
		return fmt.Errorf("payment timeout must be positive")
	}

	if c.Payment.BreakerMaxFailures < 1 {
		return fmt.Errorf("breaker max failures must be at least 1")
	}

	if c.Storefront.PublicURL == "" {
		return fmt.Errorf("public URL is required")
	}

	if c.Storefront.CatalogFile == "" && len(c.Storefront.OfferIDs) == 0 {
		return fmt.Errorf("either a catalog file or PRODUCT_ID_1/PRODUCT_ID_2 is required")
	}

	if c.Storefront.OwnerID == "" {
		return fmt.Errorf("cart owner ID is required")
	}

	if c.Auth.APIKey == "" {
		return fmt.Errorf("API key is required")
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

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
		if c.Storefront.CatalogFile == "" {
			return fmt.Errorf("catalog file is required when S3 is enabled")
		}
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

// SuccessURL returns the redirect target after a paid checkout.
// {CHECKOUT_SESSION_ID} is substituted by the payment provider.
func (c *StorefrontConfig) SuccessURL() string {
	return c.PublicURL + "/success?session_id={CHECKOUT_SESSION_ID}"
}

// CancelURL returns the redirect target after an abandoned checkout.
func (c *StorefrontConfig) CancelURL() string {
	return c.PublicURL + "/cancel"
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

// getEnvAsDuration retrieves an environment variable as a time.Duration or returns a default value.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvList collects the non-empty values of the given keys, in order.
func getEnvList(keys ...string) []string {
	var values []string
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			values = append(values, value)
		}
	}
	return values
}
