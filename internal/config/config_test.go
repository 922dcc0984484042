package config

import (
	"testing"
	"time"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail without DATABASE_URL")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/promptelo")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if cfg.RateLimitRequests != 60 {
		t.Errorf("RateLimitRequests = %d, want 60", cfg.RateLimitRequests)
	}
	if cfg.RateLimitWindow != 60*time.Second {
		t.Errorf("RateLimitWindow = %v, want 60s", cfg.RateLimitWindow)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/promptelo")
	t.Setenv("PORT", "9000")
	t.Setenv("RATE_LIMIT_REQUESTS", "10")
	t.Setenv("RATE_LIMIT_WINDOW", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.RateLimitRequests != 10 {
		t.Errorf("RateLimitRequests = %d, want 10", cfg.RateLimitRequests)
	}
	if cfg.RateLimitWindow != 5*time.Second {
		t.Errorf("RateLimitWindow = %v, want 5s", cfg.RateLimitWindow)
	}
}

func TestLoadRejectsNonPositiveRateLimit(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/promptelo")
	t.Setenv("RATE_LIMIT_REQUESTS", "0")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject a zero request budget")
	}
}

func TestClientConfigEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PROMPTELO_SERVER_URL", "http://localhost:8000")
	t.Setenv("PROMPTELO_USER_ID", "anon-test")

	cfg := LoadClient()

	if cfg.ServerURL != "http://localhost:8000" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.UserID != "anon-test" {
		t.Errorf("UserID = %q", cfg.UserID)
	}
	if cfg.RequestTimeout() != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout())
	}
}

func TestClientConfigRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	saved := ClientConfig{
		ServerURL:     "http://example.com",
		UserID:        "anon-abc123",
		Timeout:       2.5,
		SetupComplete: true,
	}
	if err := SaveClient(saved); err != nil {
		t.Fatalf("SaveClient() error = %v", err)
	}

	got := LoadClient()
	if got.ServerURL != saved.ServerURL || got.UserID != saved.UserID || !got.SetupComplete {
		t.Errorf("LoadClient() = %+v, want %+v", got, saved)
	}
}
