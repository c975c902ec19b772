package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("DATA_DIR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.DataDir != "data" {
		t.Errorf("Expected DataDir to be data, got %s", cfg.DataDir)
	}

	if cfg.HTTP.RequestDelay != 100*time.Millisecond {
		t.Errorf("Expected RequestDelay to be 100ms, got %v", cfg.HTTP.RequestDelay)
	}

	if cfg.HTTP.Workers != 1 {
		t.Errorf("Expected Workers to be 1, got %d", cfg.HTTP.Workers)
	}

	if cfg.Redis.Enabled {
		t.Error("Expected Redis to be disabled by default")
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("DATA_DIR", "/tmp/vct")
	t.Setenv("CURRENT_YEAR", "2024")
	t.Setenv("FETCH_WORKERS", "4")
	t.Setenv("REQUEST_DELAY", "250ms")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("VLR_AGENT_TABLE_SELECTOR", "table.mod-agents")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}
	if cfg.DataDir != "/tmp/vct" {
		t.Errorf("Expected DataDir to be /tmp/vct, got %s", cfg.DataDir)
	}
	if cfg.CurrentYear != 2024 {
		t.Errorf("Expected CurrentYear to be 2024, got %d", cfg.CurrentYear)
	}
	if cfg.HTTP.Workers != 4 {
		t.Errorf("Expected Workers to be 4, got %d", cfg.HTTP.Workers)
	}
	if cfg.HTTP.RequestDelay != 250*time.Millisecond {
		t.Errorf("Expected RequestDelay to be 250ms, got %v", cfg.HTTP.RequestDelay)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("Expected LogLevel to be warn, got %s", cfg.LogLevel)
	}
	if cfg.VLR.AgentTableSelector != "table.mod-agents" {
		t.Errorf("Expected AgentTableSelector override, got %q", cfg.VLR.AgentTableSelector)
	}
	if cfg.VLR.TeamLinkSelector != "" {
		t.Errorf("Expected TeamLinkSelector to stay empty, got %q", cfg.VLR.TeamLinkSelector)
	}
}

func TestValidateInvalidEnv(t *testing.T) {
	t.Setenv("ENV", "invalid")

	if _, err := Load(); err == nil {
		t.Error("Expected error when ENV is invalid, got nil")
	}
}

func TestValidateInvalidYear(t *testing.T) {
	t.Setenv("CURRENT_YEAR", "1999")

	if _, err := Load(); err == nil {
		t.Error("Expected error when CURRENT_YEAR is out of range, got nil")
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Setenv("FETCH_WORKERS", "0")

	if _, err := Load(); err == nil {
		t.Error("Expected error when FETCH_WORKERS is 0, got nil")
	}
}

func TestYear(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	cfg := &Config{}
	if got := cfg.Year(now); got != 2025 {
		t.Errorf("Year() = %d, want 2025", got)
	}

	cfg.CurrentYear = 2023
	if got := cfg.Year(now); got != 2023 {
		t.Errorf("Year() = %d, want 2023", got)
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "2h")

	duration := getEnvAsDuration("TEST_DURATION", "1h")
	if duration != 2*time.Hour {
		t.Errorf("Expected duration to be %v, got %v", 2*time.Hour, duration)
	}

	t.Setenv("TEST_DURATION", "garbage")
	if got := getEnvAsDuration("TEST_DURATION", "1h"); got != time.Hour {
		t.Errorf("Expected fallback duration 1h, got %v", got)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("TEST_INT", "100")

	if value := getEnvAsInt("TEST_INT", 50); value != 100 {
		t.Errorf("Expected value to be 100, got %d", value)
	}
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")

	if value := getEnvAsBool("TEST_BOOL", false); value != true {
		t.Errorf("Expected value to be true, got %v", value)
	}
}
