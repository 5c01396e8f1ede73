package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Snapshot backends
const (
	SnapshotBackendRedis    = "redis"
	SnapshotBackendPostgres = "postgres"
	SnapshotBackendMemory   = "memory"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Snapshot SnapshotConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Security SecurityConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Env             string
	LogLevel        string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the lib/pq keyword/value connection string
func (c DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration. An empty URL disables sessions
// and idempotency keys.
type RedisConfig struct {
	URL      string
	PASSWORD string
}

// SnapshotConfig selects where collections are mirrored
type SnapshotConfig struct {
	Backend            string
	KeyPrefix          string
	CheckpointInterval time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	Issuer        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// AdminConfig holds the admin console credentials
type AdminConfig struct {
	ID       string
	Email    string
	Password string
}

// SecurityConfig holds hashing and encryption settings
type SecurityConfig struct {
	SessionEncryptionKey string
	SessionTTL           time.Duration
	BcryptCost           int
	IdempotencyTTL       time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Env:             getEnv("SERVER_ENV", "development"),
			LogLevel:        getEnv("LOG_LEVEL", ""),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
			AllowedOrigins:  getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "brixium"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			PASSWORD: getEnv("REDIS_PASSWORD", ""),
		},
		Snapshot: SnapshotConfig{
			Backend:            strings.ToLower(getEnv("SNAPSHOT_BACKEND", SnapshotBackendRedis)),
			KeyPrefix:          getEnv("SNAPSHOT_KEY_PREFIX", "brixium:snapshot:"),
			CheckpointInterval: getEnvAsDuration("SNAPSHOT_CHECKPOINT_INTERVAL", 30*time.Second),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			Issuer:        getEnv("JWT_ISSUER", "brixium"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Admin: AdminConfig{
			ID:       getEnv("ADMIN_ID", "admin-001"),
			Email:    getEnv("ADMIN_EMAIL", "brixiumglobalbank@gmail.com"),
			Password: getEnv("ADMIN_PASSWORD", "ogonna1@1"),
		},
		Security: SecurityConfig{
			SessionEncryptionKey: getEnv("SESSION_ENCRYPTION_KEY", "0000000000000000000000000000000000000000000000000000000000000000"), // 32-bytes hex string
			SessionTTL:           getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			BcryptCost:           getEnvAsInt("BCRYPT_COST", 12),
			IdempotencyTTL:       getEnvAsDuration("IDEMPOTENCY_TTL", 24*time.Hour),
		},
	}
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

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
