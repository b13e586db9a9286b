package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("MESSAGES_API_URL", "")
	t.Setenv("MESSAGES_PAGE_SIZE", "")
	t.Setenv("CACHE_TTL_SECONDS", "")
	t.Setenv("CONTEXT_CHAR_BUDGET", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("RATE_LIMIT_WHITELIST", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if !cfg.IsDevelopment() {
		t.Fatal("expected development mode by default")
	}
	if cfg.MessagesPageSize != 100 {
		t.Fatalf("expected default page size 100, got %d", cfg.MessagesPageSize)
	}
	if cfg.CacheTTL != 300*time.Second {
		t.Fatalf("expected 300s TTL, got %v", cfg.CacheTTL)
	}
	if cfg.ContextCharBudget != 100000 {
		t.Fatalf("expected 100000 budget, got %d", cfg.ContextCharBudget)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Fatalf("expected default model, got %s", cfg.OpenAIModel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("MESSAGES_PAGE_SIZE", "250")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 192.168.0.0/16 ,")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Fatalf("expected 60s TTL, got %v", cfg.CacheTTL)
	}
	if cfg.MessagesPageSize != 250 {
		t.Fatalf("expected page size 250, got %d", cfg.MessagesPageSize)
	}
	if len(cfg.RateLimitWhitelist) != 2 {
		t.Fatalf("expected 2 whitelist entries, got %v", cfg.RateLimitWhitelist)
	}
}

func TestLoadIgnoresInvalidInts(t *testing.T) {
	t.Setenv("CACHE_TTL_SECONDS", "not-a-number")
	t.Setenv("MESSAGES_PAGE_SIZE", "-5")

	cfg := Load()
	if cfg.CacheTTL != 300*time.Second {
		t.Fatalf("expected default TTL for invalid value, got %v", cfg.CacheTTL)
	}
	if cfg.MessagesPageSize != 100 {
		t.Fatalf("expected default page size for negative value, got %d", cfg.MessagesPageSize)
	}
}

func TestLoadProductionRequiresKey(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("OPENAI_API_KEY", "")

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when OPENAI_API_KEY missing in production")
		}
	}()
	Load()
}
