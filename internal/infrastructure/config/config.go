package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/bibbank/sct34/pkg/observability"
)

// Config holds the generator configuration loaded from environment variables.
type Config struct {
	Strict              bool
	OutputDir           string
	ExecutionOffsetDays int
	MetricsFile         string
	JournalFile         string
	LogLevel            string
	LogFormat           string
}

// Logging returns the logger settings.
func (c Config) Logging() observability.LogConfig {
	return observability.LogConfig{Level: c.LogLevel, Format: c.LogFormat}
}

// Validate checks values that have no sensible fallback.
func (c Config) Validate() error {
	if c.ExecutionOffsetDays < 0 {
		return fmt.Errorf("SCT34_EXECUTION_OFFSET_DAYS must not be negative, got %d", c.ExecutionOffsetDays)
	}
	if c.OutputDir == "" {
		return errors.New("SCT34_OUTPUT_DIR must not be empty")
	}
	return nil
}

// Load reads configuration from environment variables with defaults. A .env file is
// loaded first: envFile when given, which must exist, otherwise ./.env if present.
// Variables already set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("failed to load env file: %w", err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Config{
		Strict:              getEnvBool("SCT34_STRICT", true),
		OutputDir:           getEnv("SCT34_OUTPUT_DIR", "."),
		ExecutionOffsetDays: getEnvInt("SCT34_EXECUTION_OFFSET_DAYS", 3),
		MetricsFile:         getEnv("SCT34_METRICS_FILE", ""),
		JournalFile:         getEnv("SCT34_JOURNAL_FILE", ""),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "text"),
	}
	return cfg, cfg.Validate()
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
