package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Storage backends accepted by STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerPort   string        `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"60s"`
	IdleTimeout  time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"120s"`
	AdminDir     string        `envconfig:"ADMIN_STATIC_DIR"`

	// Storage configuration
	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"memory"`
	SQLitePath     string `envconfig:"SQLITE_PATH" default:"./modblog.db"`
	SeedOnStart    bool   `envconfig:"SEED_ON_START" default:"true"`

	// Database configuration, used by the postgres backend only
	DBHost              string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort              int           `envconfig:"DB_PORT" default:"5432"`
	DBUser              string        `envconfig:"DB_USER" default:"postgres"`
	DBPassword          string        `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName              string        `envconfig:"DB_NAME" default:"modblog"`
	DBSSLMode           string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns          int32         `envconfig:"DB_MAX_CONNS" default:"10"`
	DBMinConns          int32         `envconfig:"DB_MIN_CONNS" default:"2"`
	DBMaxConnLifetime   time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"1h"`
	DBMaxConnIdleTime   time.Duration `envconfig:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
	DBHealthCheckPeriod time.Duration `envconfig:"DB_HEALTH_CHECK_PERIOD" default:"1m"`
	DBAutoMigrate       bool          `envconfig:"DB_AUTO_MIGRATE" default:"true"`
	MigrationsPath      string        `envconfig:"MIGRATIONS_PATH" default:"./migrations"`

	// Auth configuration
	AuthSecret         string        `envconfig:"AUTH_SECRET"`
	AuthTokenTTL       time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"24h"`
	CookieSecure       bool          `envconfig:"COOKIE_SECURE" default:"false"`
	CORSAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	LoginRateLimit     int           `envconfig:"LOGIN_RATE_LIMIT" default:"10"`
	LoginRateWindow    time.Duration `envconfig:"LOGIN_RATE_WINDOW" default:"1m"`
	// TrustedProxies lists the IPs or CIDRs allowed to set X-Forwarded-For.
	// Empty means the peer address is always the client address.
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`

	// Backup configuration
	BackupEnabled   bool   `envconfig:"BACKUP_ENABLED" default:"false"`
	BackupSchedule  string `envconfig:"BACKUP_SCHEDULE" default:"0 3 * * *"`
	BackupBucket    string `envconfig:"BACKUP_BUCKET"`
	BackupEndpoint  string `envconfig:"BACKUP_ENDPOINT"`
	BackupRegion    string `envconfig:"BACKUP_REGION" default:"us-east-1"`
	BackupAccessKey string `envconfig:"BACKUP_ACCESS_KEY"`
	BackupSecretKey string `envconfig:"BACKUP_SECRET_KEY"`
	BackupKeep      int    `envconfig:"BACKUP_KEEP" default:"7"`
	BackupPrefix    string `envconfig:"BACKUP_PREFIX" default:"modblog/"`

	// Logging configuration
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))
	cfg.SQLitePath = strings.TrimSpace(cfg.SQLitePath)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate validates the configuration.
func (c *Config) validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	switch c.StorageBackend {
	case BackendMemory:
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite backend")
		}
	case BackendPostgres:
		if c.DBHost == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.DBUser == "" {
			return fmt.Errorf("DB_USER is required")
		}
		if c.DBName == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of memory, sqlite, postgres (got %q)", c.StorageBackend)
	}

	if c.AuthTokenTTL <= 0 {
		return fmt.Errorf("AUTH_TOKEN_TTL must be positive")
	}
	if c.LoginRateLimit < 1 {
		return fmt.Errorf("LOGIN_RATE_LIMIT must be at least 1")
	}
	for _, proxy := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(proxy); err != nil && net.ParseIP(proxy) == nil {
			return fmt.Errorf("TRUSTED_PROXIES entry %q is not an IP or CIDR", proxy)
		}
	}

	if c.BackupEnabled {
		if c.BackupBucket == "" {
			return fmt.Errorf("BACKUP_BUCKET is required when BACKUP_ENABLED is set")
		}
		if c.BackupKeep < 1 {
			return fmt.Errorf("BACKUP_KEEP must be at least 1")
		}
	}
	return nil
}

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// BackupConfigured reports whether enough settings exist to reach a bucket.
func (c *Config) BackupConfigured() bool {
	return c.BackupBucket != ""
}
