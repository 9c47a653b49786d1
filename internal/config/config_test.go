package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaultsForDevProfile(t *testing.T) {
	lookup := mapLookup(map[string]string{})
	cfg, err := Load("querydeck-api", lookup)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Profile != ProfileDev {
		t.Fatalf("Profile = %q, want %q", cfg.Profile, ProfileDev)
	}
	if cfg.HTTP.Address != ":8080" {
		t.Fatalf("HTTP.Address = %q", cfg.HTTP.Address)
	}
	if cfg.Observability.LogLevel != slog.LevelDebug {
		t.Fatalf("LogLevel = %v", cfg.Observability.LogLevel)
	}
	if cfg.Store.DSN != "" {
		t.Fatalf("Store.DSN should default to empty, got %q", cfg.Store.DSN)
	}
	if cfg.Store.MaxOpenConns != 20 {
		t.Fatalf("Store.MaxOpenConns = %d", cfg.Store.MaxOpenConns)
	}
	if len(cfg.HTTP.AllowedOrigins) != 1 {
		t.Fatalf("AllowedOrigins = %v", cfg.HTTP.AllowedOrigins)
	}
	if cfg.AI.APIKey != "" {
		t.Fatalf("AI.APIKey should default to empty, got %q", cfg.AI.APIKey)
	}
	if cfg.AI.Model != "gemini-1.5-flash" {
		t.Fatalf("AI.Model = %q", cfg.AI.Model)
	}
	if cfg.AI.Timeout != 15*time.Second {
		t.Fatalf("AI.Timeout = %v", cfg.AI.Timeout)
	}
}

func TestLoadProdProfileDefaults(t *testing.T) {
	lookup := mapLookup(map[string]string{"QUERYDECK_PROFILE": "prod"})
	cfg, err := Load("querydeck-api", lookup)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Profile != ProfileProd {
		t.Fatalf("Profile = %q, want %q", cfg.Profile, ProfileProd)
	}
	if cfg.Observability.LogLevel != slog.LevelInfo {
		t.Fatalf("LogLevel = %v", cfg.Observability.LogLevel)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	lookup := mapLookup(map[string]string{
		"QUERYDECK_PROFILE":              "test",
		"QUERYDECK_HTTP_ADDR":            ":9999",
		"QUERYDECK_HTTP_READ_TIMEOUT":    "2s",
		"QUERYDECK_HTTP_ALLOWED_ORIGINS": "https://a.example.com, https://b.example.com",
		"QUERYDECK_STORE_DSN":            "postgres://example",
		"QUERYDECK_STORE_MAX_OPEN_CONNS": "42",
		"QUERYDECK_AI_API_KEY":           "key-1",
		"QUERYDECK_AI_MODEL":             "gemini-2.0-flash",
		"QUERYDECK_AI_TIMEOUT":           "30s",
		"QUERYDECK_LOG_LEVEL":            "error",
		"QUERYDECK_LOG_JSON":             "false",
		"QUERYDECK_SERVICE_NAME":         "querydeck-custom",
	})
	cfg, err := Load("querydeck-api", lookup)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Profile != ProfileTest {
		t.Fatalf("Profile = %q", cfg.Profile)
	}
	if cfg.Service.Name != "querydeck-custom" {
		t.Fatalf("Service.Name = %q", cfg.Service.Name)
	}
	if cfg.HTTP.Address != ":9999" {
		t.Fatalf("HTTP.Address = %q", cfg.HTTP.Address)
	}
	if cfg.HTTP.ReadTimeout != 2*time.Second {
		t.Fatalf("HTTP.ReadTimeout = %v", cfg.HTTP.ReadTimeout)
	}
	if len(cfg.HTTP.AllowedOrigins) != 2 || cfg.HTTP.AllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("AllowedOrigins = %v", cfg.HTTP.AllowedOrigins)
	}
	if cfg.Store.DSN != "postgres://example" {
		t.Fatalf("Store.DSN = %q", cfg.Store.DSN)
	}
	if cfg.Store.MaxOpenConns != 42 {
		t.Fatalf("Store.MaxOpenConns = %d", cfg.Store.MaxOpenConns)
	}
	if cfg.AI.APIKey != "key-1" {
		t.Fatalf("AI.APIKey = %q", cfg.AI.APIKey)
	}
	if cfg.AI.Model != "gemini-2.0-flash" {
		t.Fatalf("AI.Model = %q", cfg.AI.Model)
	}
	if cfg.Observability.LogLevel != slog.LevelError {
		t.Fatalf("LogLevel = %v", cfg.Observability.LogLevel)
	}
	if cfg.Observability.LogJSON {
		t.Fatal("LogJSON should be false")
	}
}

func TestLoadRejectsInvalidProfile(t *testing.T) {
	lookup := mapLookup(map[string]string{"QUERYDECK_PROFILE": "staging"})
	if _, err := Load("querydeck-api", lookup); err == nil {
		t.Fatal("expected error for invalid profile")
	}
}

func TestLoadRejectsInvalidDuration(t *testing.T) {
	lookup := mapLookup(map[string]string{"QUERYDECK_AI_TIMEOUT": "soon"})
	if _, err := Load("querydeck-api", lookup); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	lookup := mapLookup(map[string]string{"QUERYDECK_LOG_LEVEL": "verbose"})
	if _, err := Load("querydeck-api", lookup); err == nil {
		t.Fatal("expected error for invalid log level")
	}
}

func mapLookup(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}
