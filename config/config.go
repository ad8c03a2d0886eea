package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort     string
	ServerHost     string
	AllowedOrigins []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Directory holding the *.up.sql files applied at startup
	MigrationsDir string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// LLM configuration
	LLMAPIKey         string
	LLMBaseURL        string
	LLMModel          string
	LLMExtractor      string
	LLMValidateOutput bool

	// Rate limiting for recipe generation
	GenerateRateLimit  int
	GenerateRateWindow time.Duration

	// Object storage
	S3Bucket        string
	S3Region        string
	S3PublicBaseURL string

	// Logging
	LogLevel  string
	LogFormat string
}

const (
	defaultLLMModel     = "gpt-4o-mini"
	defaultLLMExtractor = "greedy"
)

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI:
		if err := loadCIConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load CI configuration: %w", err)
		}
	case Development, Test:
		loadDevConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	loadCommon(cfg, env)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig loads configuration for CI environment using ONLY environment variables
func loadCIConfig(cfg *Config) error {
	cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	if cfg.DBPassword == "" {
		return fmt.Errorf("TEST_DB_PASSWORD environment variable is required in CI environment")
	}
	cfg.JWTSecret = os.Getenv("TEST_JWT_SECRET")
	cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
	cfg.RedisURL = os.Getenv("TEST_REDIS_URL")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.LLMAPIKey = os.Getenv("LLM_API_KEY")
	return nil
}

// loadDevConfig reads secrets when present and falls back to plain environment variables
func loadDevConfig(cfg *Config) {
	cfg.DBUser = secretOrEnv("db_user", "DB_USER")
	cfg.DBPassword = secretOrEnv("db_password", "DB_PASSWORD")
	cfg.JWTSecret = secretOrEnv("jwt_secret", "JWT_SECRET")
	cfg.RedisPassword = secretOrEnv("redis_password", "REDIS_PASSWORD")
	cfg.RedisURL = secretOrEnv("redis_url", "REDIS_URL")
	cfg.LLMAPIKey = secretOrEnv("llm_api_key", "LLM_API_KEY")
}

// loadProdConfig loads sensitive configuration using ONLY Docker secrets
func loadProdConfig(cfg *Config) {
	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.RedisURL = readSecret("redis_url")
	cfg.LLMAPIKey = readSecret("llm_api_key")
}

// loadCommon loads the non-sensitive settings shared by every environment
func loadCommon(cfg *Config, env Environment) {
	cfg.ServerPort = getEnv("SERVER_PORT", "8080")
	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.AllowedOrigins = splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"))

	cfg.DBDriver = getEnv("DB_DRIVER", "postgres")
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.SQLitePath = getEnv("SQLITE_PATH", "recipes.db")
	cfg.MigrationsDir = getEnv("MIGRATIONS_DIR", "migrations")

	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisDB = getEnvInt("REDIS_DB", 0)

	cfg.LLMBaseURL = os.Getenv("LLM_BASE_URL")
	cfg.LLMModel = getEnv("LLM_MODEL", defaultLLMModel)
	cfg.LLMExtractor = getEnv("LLM_EXTRACTOR", defaultLLMExtractor)
	cfg.LLMValidateOutput = getEnvBool("LLM_VALIDATE_OUTPUT", false)

	cfg.GenerateRateLimit = getEnvInt("RATE_LIMIT_GENERATE", 20)
	cfg.GenerateRateWindow = getEnvDuration("RATE_LIMIT_WINDOW", time.Hour)

	cfg.S3Bucket = os.Getenv("S3_BUCKET_NAME")
	cfg.S3Region = os.Getenv("AWS_REGION")
	cfg.S3PublicBaseURL = os.Getenv("S3_PUBLIC_BASE_URL")

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	defaultFormat := "console"
	if env == Production {
		defaultFormat = "json"
	}
	cfg.LogFormat = getEnv("LOG_FORMAT", defaultFormat)
}

// DSN returns the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// RedisEnabled reports whether a Redis endpoint has been configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func secretOrEnv(secret, envVar string) string {
	if v := readSecret(secret); v != "" {
		return v
	}
	return os.Getenv(envVar)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
