// Package config loads application configuration from environment variables.
package config

import (
	"os"
	"strconv"
)

// Config holds application configuration.
type Config struct {
	// Server
	ServerAddr string
	ServerPort int

	// Database
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Request handling
	MaxRequestBodySize int64
	RateLimit          RateLimitConfig
	SecurityHeaders    SecurityHeadersConfig

	// SeedDemoAccount creates the demo account at startup when the accounts
	// table is empty.
	SeedDemoAccount bool
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	Enabled               bool
	AuthRequestsPerWindow int
	AuthWindowMinutes     int
}

// SecurityHeadersConfig holds security response header configuration.
// Empty values leave the corresponding header unset.
type SecurityHeadersConfig struct {
	Enabled            bool
	CSP                string
	HSTSMaxAge         int
	FrameOptions       string
	ContentTypeOptions string
	ReferrerPolicy     string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		// Server defaults (port matches the original demo deployment)
		ServerAddr: getEnv("SERVER_ADDR", "0.0.0.0"),
		ServerPort: getEnvInt("SERVER_PORT", 5501),

		// Database defaults
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnvInt("DB_PORT", 5432),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "authd"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		MaxRequestBodySize: getEnvInt64("MAX_REQUEST_BODY_SIZE", 64*1024),
		RateLimit: RateLimitConfig{
			Enabled:               getEnvBool("RATE_LIMIT_ENABLED", true),
			AuthRequestsPerWindow: getEnvInt("RATE_LIMIT_AUTH_REQUESTS", 30),
			AuthWindowMinutes:     getEnvInt("RATE_LIMIT_AUTH_WINDOW_MINUTES", 1),
		},
		SecurityHeaders: SecurityHeadersConfig{
			Enabled: getEnvBool("SECURITY_HEADERS_ENABLED", true),
			// JSON-only API; scripts and framing have no legitimate use.
			CSP:                getEnv("SECURITY_CSP", "default-src 'none'"),
			HSTSMaxAge:         getEnvInt("SECURITY_HSTS_MAX_AGE", 0),
			FrameOptions:       getEnv("SECURITY_FRAME_OPTIONS", "DENY"),
			ContentTypeOptions: getEnv("SECURITY_CONTENT_TYPE_OPTIONS", "nosniff"),
			ReferrerPolicy:     getEnv("SECURITY_REFERRER_POLICY", "no-referrer"),
		},

		SeedDemoAccount: getEnvBool("SEED_DEMO_ACCOUNT", false),
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
