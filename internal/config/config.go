// Package config loads pipeline settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Source collection
	SourcesConfigPath string
	RequestTimeout    time.Duration
	RetryAttempts     int
	RetryDelay        time.Duration
	PolitenessDelay   time.Duration // minimum spacing between requests to one host
	MaxRequestsPerRun int           // 0 = unlimited

	// Aggregation thresholds
	MinItems          int     // hard floor: fewer deduplicated items aborts the run
	MinFreshnessRatio float64 // soft floor: below this only warns
	MaxTrends         int     // cap on the published ranked list

	// Output artifact
	OutputPath string

	// Keyword history
	HistoryFilePath   string
	DatabaseURL       string // when set, history lives in Postgres instead of the file
	HistoryWindowDays int

	// Optional digest delivery
	TelegramToken  string
	TelegramChatID string

	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		SourcesConfigPath: getEnvOrDefault("SOURCES_CONFIG_PATH", "configs/sources.yaml"),
		RequestTimeout:    getEnvDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		RetryAttempts:     getEnvIntOrDefault("RETRY_ATTEMPTS", 3),
		RetryDelay:        getEnvDurationOrDefault("RETRY_DELAY", 5*time.Second),
		PolitenessDelay:   getEnvDurationOrDefault("POLITENESS_DELAY", 2*time.Second),
		MaxRequestsPerRun: getEnvIntOrDefault("MAX_REQUESTS_PER_RUN", 200),

		MinItems:          getEnvIntOrDefault("MIN_ITEMS", 5),
		MinFreshnessRatio: getEnvFloatOrDefault("MIN_FRESHNESS_RATIO", 0.3),
		MaxTrends:         getEnvIntOrDefault("MAX_TRENDS", 50),

		OutputPath: getEnvOrDefault("OUTPUT_PATH", "data/trends.json"),

		HistoryFilePath:   getEnvOrDefault("HISTORY_FILE_PATH", "data/keyword_history.json"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		HistoryWindowDays: getEnvIntOrDefault("HISTORY_WINDOW_DAYS", 30),

		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		TelegramChatID: os.Getenv("TELEGRAM_CHAT_ID"),
	}

	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.SourcesConfigPath == "" {
		return fmt.Errorf("SOURCES_CONFIG_PATH is required")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("OUTPUT_PATH is required")
	}
	if c.MinItems < 0 {
		return fmt.Errorf("MIN_ITEMS must not be negative")
	}
	if c.MinFreshnessRatio < 0 || c.MinFreshnessRatio > 1 {
		return fmt.Errorf("MIN_FRESHNESS_RATIO must be between 0 and 1")
	}
	if c.HistoryWindowDays <= 0 {
		return fmt.Errorf("HISTORY_WINDOW_DAYS must be positive")
	}
	if c.TelegramToken != "" && c.TelegramChatID == "" {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
