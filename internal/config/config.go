package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends
const (
	BackendGCS    = "gcs"
	BackendRedis  = "redis"
	BackendSQL    = "sql"
	BackendMemory = "memory"
)

// Config holds all configuration values
type Config struct {
	Server      ServerConfig
	Store       StoreConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Retry       RetryConfig
	Consistency ConsistencyConfig
	Security    SecurityConfig
	Reconcile   ReconcileConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// StoreConfig selects and configures the object store backend
type StoreConfig struct {
	Backend         string
	Bucket          string
	CredentialsFile string
	// ProjectID, when set, lets the gcs backend create a missing bucket.
	ProjectID       string
	KeyPrefix       string
	ListConcurrency int
}

// DatabaseConfig holds database configuration for the sql backend
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	Path     string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	if c.Driver == "sqlite" {
		return c.Path
	}
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
	LockTTL  time.Duration
	// LockEnabled turns on the SETNX guard around account registration.
	LockEnabled bool
}

// RetryConfig controls retries of transient store failures
type RetryConfig struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// ConsistencyConfig bounds polling for list-after-write visibility
type ConsistencyConfig struct {
	ListAttempts int
	ListInterval time.Duration
}

// SecurityConfig holds credential settings
type SecurityConfig struct {
	BcryptCost int
	AdminToken string
	// OperatorTokenSecret signs short-lived operator JWTs for the admin API.
	OperatorTokenSecret string
	OperatorTokenTTL    time.Duration
}

// ReconcileConfig controls the periodic reconcile job
type ReconcileConfig struct {
	Enabled  bool
	Interval time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Store: StoreConfig{
			Backend:         strings.ToLower(getEnv("STORE_BACKEND", BackendGCS)),
			Bucket:          getEnv("STORAGE_BUCKET", "national-4h-gis-team-data"),
			CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
			ProjectID:       getEnv("GOOGLE_CLOUD_PROJECT", ""),
			KeyPrefix:       getEnv("STORE_KEY_PREFIX", ""),
			ListConcurrency: getEnvAsInt("STORE_LIST_CONCURRENCY", 8),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "gisteam"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("DB_PATH", "gisteam.db"),
		},
		Redis: RedisConfig{
			URL:         getEnv("REDIS_URL", "redis://localhost:6379"),
			Password:    getEnv("REDIS_PASSWORD", ""),
			LockTTL:     getEnvAsDuration("REDIS_LOCK_TTL", 10*time.Second),
			LockEnabled: getEnvAsBool("REDIS_LOCK_ENABLED", false),
		},
		Retry: RetryConfig{
			MaxAttempts:     getEnvAsInt("STORE_RETRY_ATTEMPTS", 3),
			InitialInterval: getEnvAsDuration("STORE_RETRY_INITIAL_INTERVAL", 100*time.Millisecond),
			MaxInterval:     getEnvAsDuration("STORE_RETRY_MAX_INTERVAL", 2*time.Second),
		},
		Consistency: ConsistencyConfig{
			ListAttempts: getEnvAsInt("LIST_CONSISTENCY_ATTEMPTS", 5),
			ListInterval: getEnvAsDuration("LIST_CONSISTENCY_INTERVAL", 200*time.Millisecond),
		},
		Security: SecurityConfig{
			BcryptCost:          getEnvAsInt("BCRYPT_COST", 12),
			AdminToken:          getEnv("ADMIN_TOKEN", ""),
			OperatorTokenSecret: getEnv("OPERATOR_TOKEN_SECRET", ""),
			OperatorTokenTTL:    getEnvAsDuration("OPERATOR_TOKEN_TTL", time.Hour),
		},
		Reconcile: ReconcileConfig{
			Enabled:  getEnvAsBool("RECONCILE_ENABLED", false),
			Interval: getEnvAsDuration("RECONCILE_INTERVAL", time.Hour),
		},
	}
}

// Validate checks values that would otherwise fail deep inside a backend
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendGCS:
		if c.Store.Bucket == "" {
			return fmt.Errorf("STORAGE_BUCKET is required for the %s backend", BackendGCS)
		}
	case BackendSQL:
		if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
			return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
		}
	case BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unsupported STORE_BACKEND %q", c.Store.Backend)
	}
	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.Security.BcryptCost)
	}
	if c.Store.ListConcurrency < 1 {
		return fmt.Errorf("STORE_LIST_CONCURRENCY must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
