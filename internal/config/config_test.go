package config

import (
	"os"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"SERVER_ADDR", "SERVER_PORT",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"MAX_REQUEST_BODY_SIZE",
		"RATE_LIMIT_ENABLED", "RATE_LIMIT_AUTH_REQUESTS", "RATE_LIMIT_AUTH_WINDOW_MINUTES",
		"SECURITY_HEADERS_ENABLED", "SECURITY_CSP", "SECURITY_HSTS_MAX_AGE",
		"SECURITY_FRAME_OPTIONS", "SECURITY_CONTENT_TYPE_OPTIONS", "SECURITY_REFERRER_POLICY",
		"SEED_DEMO_ACCOUNT",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ServerAddr != "0.0.0.0" {
		t.Errorf("ServerAddr = %q, want %q", cfg.ServerAddr, "0.0.0.0")
	}
	if cfg.ServerPort != 5501 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 5501)
	}
	if cfg.DBHost != "localhost" {
		t.Errorf("DBHost = %q, want %q", cfg.DBHost, "localhost")
	}
	if cfg.DBPort != 5432 {
		t.Errorf("DBPort = %d, want %d", cfg.DBPort, 5432)
	}
	if cfg.DBSSLMode != "disable" {
		t.Errorf("DBSSLMode = %q, want %q", cfg.DBSSLMode, "disable")
	}
	if cfg.MaxRequestBodySize != 64*1024 {
		t.Errorf("MaxRequestBodySize = %d, want %d", cfg.MaxRequestBodySize, 64*1024)
	}
	if !cfg.RateLimit.Enabled {
		t.Error("RateLimit should be enabled by default")
	}
	if !cfg.SecurityHeaders.Enabled {
		t.Error("SecurityHeaders should be enabled by default")
	}
	if cfg.SecurityHeaders.ContentTypeOptions != "nosniff" {
		t.Errorf("ContentTypeOptions = %q, want %q", cfg.SecurityHeaders.ContentTypeOptions, "nosniff")
	}
	if cfg.SecurityHeaders.HSTSMaxAge != 0 {
		t.Errorf("HSTSMaxAge = %d, want 0", cfg.SecurityHeaders.HSTSMaxAge)
	}
	if cfg.SeedDemoAccount {
		t.Error("SeedDemoAccount should be disabled by default")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("DB_HOST", "db.example.com")
	os.Setenv("RATE_LIMIT_ENABLED", "false")
	os.Setenv("SEED_DEMO_ACCOUNT", "true")
	defer clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ServerPort != 9090 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 9090)
	}
	if cfg.DBHost != "db.example.com" {
		t.Errorf("DBHost = %q, want %q", cfg.DBHost, "db.example.com")
	}
	if cfg.RateLimit.Enabled {
		t.Error("RateLimit should be disabled")
	}
	if !cfg.SeedDemoAccount {
		t.Error("SeedDemoAccount should be enabled")
	}
}

func TestLoad_IgnoresMalformedValues(t *testing.T) {
	clearEnv(t)
	os.Setenv("SERVER_PORT", "not-a-number")
	os.Setenv("RATE_LIMIT_ENABLED", "maybe")
	defer clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ServerPort != 5501 {
		t.Errorf("ServerPort = %d, want default %d", cfg.ServerPort, 5501)
	}
	if !cfg.RateLimit.Enabled {
		t.Error("RateLimit should fall back to the default")
	}
}
