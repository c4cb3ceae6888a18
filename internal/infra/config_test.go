package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("REPLICATE_API_TOKEN", "test-token")
	t.Setenv("PORT", "")
	t.Setenv("BASE_URL", "")
	t.Setenv("SESSION_TTL_SECONDS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8000" {
		t.Fatalf("BaseURL mismatch: got %q", cfg.BaseURL)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("SessionTTL mismatch: got %v", cfg.SessionTTL)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Fatalf("AllowedOrigins mismatch: %#v", cfg.AllowedOrigins)
	}
}

func TestLoadConfigTrimsBaseURL(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("REPLICATE_API_TOKEN", "test-token")
	t.Setenv("BASE_URL", "https://fitted.example.com/")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.BaseURL != "https://fitted.example.com" {
		t.Fatalf("BaseURL mismatch: got %q", cfg.BaseURL)
	}
}

func TestLoadConfigRequiresBackendCredentials(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("REPLICATE_API_TOKEN", "test-token")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when GEMINI_API_KEY is missing")
	}

	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("REPLICATE_API_TOKEN", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when REPLICATE_API_TOKEN is missing")
	}
}
