package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env         string
	ServerPort  string
	DBDriver    string
	MySQLDSN    string
	SQLitePath  string
	ResetDB     bool
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	JWTSecret   string
	SwaggerHost string
	LogLevel    string
	SeedFile    string

	// AccessTokenTTL is the lifetime of issued access tokens.
	AccessTokenTTL time.Duration
	// RefreshTokenTTL is the lifetime of refresh records created at login.
	RefreshTokenTTL time.Duration
	// BcryptCost is the work factor used for password hashes.
	BcryptCost int
	// AtomicCheckout wraps cart clearing and order persistence in one transaction.
	AtomicCheckout bool
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	cfg := &Config{
		Env:             getEnv("APP_ENV", "development"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		DBDriver:        strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		MySQLDSN:        getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/storefront?charset=utf8mb4&parseTime=True&loc=UTC"),
		SQLitePath:      getEnv("SQLITE_PATH", "storefront.db"),
		ResetDB:         getEnvBool("RESET_DB", false),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RedisPass:       os.Getenv("REDIS_PASSWORD"),
		JWTSecret:       getEnv("JWT_SECRET", "change-me"),
		SwaggerHost:     os.Getenv("SWAGGER_HOST"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		SeedFile:        os.Getenv("SEED_FILE"),
		AccessTokenTTL:  time.Duration(getEnvInt("JWT_EXPIRATION_MINUTES", 15)) * time.Minute,
		RefreshTokenTTL: getEnvDuration("REFRESH_TOKEN_TTL", 30*24*time.Hour),
		BcryptCost:      getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
		AtomicCheckout:  getEnvBool("ATOMIC_CHECKOUT", false),
	}

	// Test suites hash a lot of passwords; keep them fast.
	if cfg.IsTest() {
		cfg.BcryptCost = bcrypt.MinCost
	}
	return cfg
}

// IsTest reports whether the process runs under APP_ENV=test.
func (c *Config) IsTest() bool {
	return c.Env == "test"
}

// IsProduction reports whether the process runs under APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
