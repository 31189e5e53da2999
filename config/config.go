package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DateLayout is the layout used for STOCK_START / STOCK_END
const DateLayout = "2006-01-02"

// Config holds application configuration
type Config struct {
	HTTPPort int
	LogLevel string

	// Stock data configuration
	Stock StockConfig

	// Redis configuration
	Redis RedisConfig

	// Database configuration
	Database DatabaseConfig

	// LLM configuration
	LLM LLMConfig

	// Cached answers expire after this duration
	QACacheTTL time.Duration
}

// StockConfig holds the fixed symbol, date range and local cache location
type StockConfig struct {
	Symbol       string
	Start        time.Time
	End          time.Time // exclusive
	CacheFile    string
	YahooBaseURL string
	Timeout      time.Duration
	ProxyURL     string
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Name     string
	User     string
	Password string
}

// LLMConfig holds LLM service configuration
type LLMConfig struct {
	Enabled  bool
	Endpoint string
	APIKey   string
	Model    string
}

// LoadFromEnv loads configuration from environment variables.
// A .env file in the working directory is loaded first when present.
func LoadFromEnv() (*Config, error) {
	// Missing .env is fine, plain environment variables are used instead
	_ = godotenv.Load()

	start, err := getEnvDate("STOCK_START", "2020-01-01")
	if err != nil {
		return nil, err
	}
	end, err := getEnvDate("STOCK_END", "2024-12-31")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPPort: getEnvInt("HTTP_PORT", 8080),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),

		Stock: StockConfig{
			Symbol:       strings.ToUpper(getEnvOrDefault("STOCK_SYMBOL", "FCNCA")),
			Start:        start,
			End:          end,
			CacheFile:    getEnvOrDefault("STOCK_CACHE_FILE", "fcnca_stock_data.csv"),
			YahooBaseURL: strings.TrimRight(getEnvOrDefault("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"), "/"),
			Timeout:      time.Duration(getEnvInt("YAHOO_TIMEOUT_SECONDS", 30)) * time.Second,
			ProxyURL:     getEnvOrDefault("HTTP_PROXY_URL", ""),
		},

		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
		},

		Database: DatabaseConfig{
			Enabled:  getEnvBool("DB_ENABLED", false),
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			Name:     getEnvOrDefault("DB_NAME", "bank_dashboard"),
			User:     getEnvOrDefault("DB_USER", "dashboard"),
			Password: getEnvOrDefault("DB_PASSWORD", "dashboard"),
		},

		LLM: LLMConfig{
			Enabled:  getEnvBool("LLM_ENABLED", false),
			Endpoint: strings.TrimRight(getEnvOrDefault("LLM_ENDPOINT", "https://api.openai.com/v1"), "/"),
			APIKey:   getEnvOrDefault("LLM_API_KEY", ""),
			Model:    getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
		},

		QACacheTTL: time.Duration(getEnvInt("QA_CACHE_TTL_HOURS", 24)) * time.Hour,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getEnvInt gets environment variable as int or returns default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var intValue int
	if _, err := fmt.Sscanf(value, "%d", &intValue); err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvBool accepts "true"/"1" as true, anything else non-empty as false
func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1"
}

func getEnvDate(key, defaultValue string) (time.Time, error) {
	value := getEnvOrDefault(key, defaultValue)
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return t, nil
}

// getEnvOrDefault gets environment variable or returns default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
