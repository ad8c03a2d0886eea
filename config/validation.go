package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()

	var errs []string
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg}.Error())
	}

	if cfg.JWTSecret == "" {
		add("JWT_SECRET", "is required")
	}
	if cfg.LLMAPIKey == "" {
		add("LLM_API_KEY", "is required")
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBHost == "" {
			add("DB_HOST", "is required for the postgres driver")
		}
		if cfg.DBName == "" {
			add("DB_NAME", "is required for the postgres driver")
		}
		if cfg.DBPassword == "" {
			add("DB_PASSWORD", "is required for the postgres driver")
		}
	case "sqlite":
		if env == Production {
			add("DB_DRIVER", "sqlite is not allowed in production")
		}
	default:
		add("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	switch cfg.LLMExtractor {
	case "greedy", "balanced":
	default:
		add("LLM_EXTRACTOR", fmt.Sprintf("must be greedy or balanced, got %q", cfg.LLMExtractor))
	}

	if cfg.GenerateRateLimit < 1 {
		add("RATE_LIMIT_GENERATE", fmt.Sprintf("must be at least 1, got %d", cfg.GenerateRateLimit))
	}
	if cfg.GenerateRateWindow <= 0 {
		add("RATE_LIMIT_WINDOW", "must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
