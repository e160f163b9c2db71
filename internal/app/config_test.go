package app_test

import (
	"testing"
	"time"

	"github.com/clubhub/clubhub/internal/app"
	_ "github.com/clubhub/clubhub/testing"
)

func setIdentityEnv(t *testing.T) {
	t.Helper()
	t.Setenv("IDENTITY_URL", "http://identity.test.local")
	t.Setenv("IDENTITY_API_KEY", "test-key")
}

func TestLoadConfigDefaults(t *testing.T) {
	setIdentityEnv(t)

	cfg, err := app.LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.RateLimitWindow != time.Minute {
		t.Fatalf("expected 60s window, got %s", cfg.RateLimitWindow)
	}
	if cfg.RateLimitMax != 100 {
		t.Fatalf("expected ceiling 100, got %d", cfg.RateLimitMax)
	}
	if cfg.PGMaxConns != 8 {
		t.Fatalf("expected 8 max conns, got %d", cfg.PGMaxConns)
	}
	if cfg.RedisDB != 0 {
		t.Fatalf("expected redis db 0, got %d", cfg.RedisDB)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected log level info, got %q", cfg.LogLevel)
	}
}

func TestLoadConfigRejectsZeroRateLimitWindow(t *testing.T) {
	// A zero window must fail at load time; letting it through would
	// panic the limiter's sweep ticker at startup.
	setIdentityEnv(t)
	t.Setenv("RATE_LIMIT_WINDOW", "0s")

	if _, err := app.LoadConfig(); err == nil {
		t.Fatal("expected error for zero rate limit window")
	}
}

func TestLoadConfigRejectsNonPositiveRateLimitMax(t *testing.T) {
	setIdentityEnv(t)
	t.Setenv("RATE_LIMIT_MAX", "0")

	if _, err := app.LoadConfig(); err == nil {
		t.Fatal("expected error for zero rate limit ceiling")
	}
}

func TestLoadConfigRequiresIdentitySettings(t *testing.T) {
	t.Setenv("IDENTITY_URL", "")
	t.Setenv("IDENTITY_API_KEY", "test-key")

	if _, err := app.LoadConfig(); err == nil {
		t.Fatal("expected error for missing identity url")
	}
}
