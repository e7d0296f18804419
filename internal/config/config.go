package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	HTTPAddr string

	// DatabaseURL is optional; without it the vendors DB fallback is disabled.
	DatabaseURL string

	CatalogDir string

	EmbeddingAPIURL  string
	EmbeddingAPIKey  string
	EmbeddingTimeout time.Duration

	GroqAPIKey  string
	GroqBaseURL string
	GroqModel   string

	VendorWebhookURL string

	RedisAddr     string
	RedisPassword string

	MaterialRatesPath string
	DefaultTopVendors int

	CORSAllowAll bool
	CORSOrigins  []string

	RateLimitPerMinute int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		CatalogDir:         getEnv("CATALOG_DIR", "./data/catalog"),
		EmbeddingAPIURL:    getEnv("EMBEDDING_API_URL", ""),
		EmbeddingAPIKey:    getEnv("EMBEDDING_API_KEY", ""),
		EmbeddingTimeout:   mustDuration(getEnv("EMBEDDING_TIMEOUT", "30s")),
		GroqAPIKey:         getEnv("GROQ_API_KEY", ""),
		GroqBaseURL:        getEnv("GROQ_BASE_URL", ""),
		GroqModel:          getEnv("GROQ_MODEL", ""),
		VendorWebhookURL:   getEnv("VENDOR_WEBHOOK_URL", ""),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		MaterialRatesPath:  getEnv("MATERIAL_RATES_PATH", ""),
		DefaultTopVendors:  mustInt(getEnv("DEFAULT_TOP_VENDORS", "5")),
		CORSAllowAll:       corsAllowAll,
		CORSOrigins:        corsOrigins,
		RateLimitPerMinute: mustInt(getEnv("RATE_LIMIT_PER_MINUTE", "60")),
	}

	if cfg.EmbeddingAPIURL == "" {
		return nil, fmt.Errorf("EMBEDDING_API_URL is required")
	}
	if cfg.DefaultTopVendors <= 0 {
		cfg.DefaultTopVendors = 5
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
