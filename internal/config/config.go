package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port string
	Env  string

	// Remote messages API
	MessagesAPIURL   string
	MessagesPageSize int

	// Cache
	CacheTTL time.Duration

	// Context assembly
	ContextCharBudget int

	// Generation
	OpenAIAPIKey string
	OpenAIModel  string

	// Rate limiting
	RateLimitWhitelist []string // IPs or CIDRs exempt from rate limiting
}

const (
	defaultMessagesAPIURL = "https://november7-730026606190.europe-west1.run.app/messages"
	defaultPageSize       = 100
	defaultCacheTTL       = 300 * time.Second
	defaultContextBudget  = 100000
	defaultOpenAIModel    = "gpt-4o-mini"
)

// Load reads configuration from environment variables.
// In development, it loads from .env file if present.
// In production, it panics on missing required variables.
func Load() *Config {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("ENV", "development"),
		MessagesAPIURL:    getEnv("MESSAGES_API_URL", defaultMessagesAPIURL),
		MessagesPageSize:  getEnvInt("MESSAGES_PAGE_SIZE", defaultPageSize),
		CacheTTL:          time.Duration(getEnvInt("CACHE_TTL_SECONDS", int(defaultCacheTTL/time.Second))) * time.Second,
		ContextCharBudget: getEnvInt("CONTEXT_CHAR_BUDGET", defaultContextBudget),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:       getEnv("OPENAI_MODEL", defaultOpenAIModel),
	}

	// Parse whitelist (comma-separated IPs or CIDRs)
	if whitelist := os.Getenv("RATE_LIMIT_WHITELIST"); whitelist != "" {
		for _, entry := range strings.Split(whitelist, ",") {
			entry = strings.TrimSpace(entry)
			if entry != "" {
				cfg.RateLimitWhitelist = append(cfg.RateLimitWhitelist, entry)
			}
		}
	}

	// In production, require the OpenAI key; without it every answer would be
	// the fallback string.
	if cfg.Env == "production" && cfg.OpenAIAPIKey == "" {
		panic("OPENAI_API_KEY is required in production")
	}

	return cfg
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
