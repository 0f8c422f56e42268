// Package config loads application configuration from environment
// variables with sensible defaults.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr    string
	BaseURL       string
	SessionSecret string

	// Socrata open-data API
	SocrataDomain        string
	SocrataDatasetID     string // radicados dataset
	SocrataSuitDatasetID string // SUIT procedures dataset
	SocrataAppToken      string
	SocrataTimeout       time.Duration

	// Response cache
	CacheTTL time.Duration
	RedisURL string // optional; in-process cache when empty

	// Reports
	ReportsBackend string // "file" or "postgres"
	ReportsFile    string
	DatabaseURL    string

	// OIDC (protects the reports admin page; disabled when unset)
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	// Email notification on report submission (disabled when unset)
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	ReportNotifyAddress string

	// CORS
	CORSOrigins string // comma-separated allowed origins
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Env:        getEnv("ENV", "development"),
		ServerAddr:    getEnv("SERVER_ADDR", ":8000"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:8000"),
		SessionSecret: getEnv("SESSION_SECRET", "dev-session-secret"),

		SocrataDomain:        getEnv("SOCRATA_DOMAIN", "www.datos.gov.co"),
		SocrataDatasetID:     getEnv("SOCRATA_DATASET_ID", "48fq-mxnm"),
		SocrataSuitDatasetID: getEnv("SOCRATA_SUIT_DATASET_ID", "ps9s-w5hr"),
		SocrataAppToken:      getEnv("SOCRATA_APP_TOKEN", ""),
		SocrataTimeout:       getDuration("SOCRATA_TIMEOUT", 30*time.Second),

		CacheTTL: getDuration("CACHE_TTL", 5*time.Minute),
		RedisURL: getEnv("REDIS_URL", ""),

		ReportsBackend: getEnv("REPORTS_BACKEND", "file"),
		ReportsFile:    getEnv("REPORTS_FILE", "reports/reportes.json"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),

		OIDCIssuer:       getEnv("OIDC_ISSUER", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:  getEnv("OIDC_REDIRECT_URL", "http://localhost:8000/auth/callback"),

		SMTPHost:            getEnv("SMTP_HOST", ""),
		SMTPPort:            getInt("SMTP_PORT", 587),
		SMTPUser:            getEnv("SMTP_USER", ""),
		SMTPPassword:        getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:            getEnv("SMTP_FROM", ""),
		ReportNotifyAddress: getEnv("REPORT_NOTIFY_ADDRESS", ""),

		CORSOrigins: getEnv("CORS_ORIGINS", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsAuthEnabled returns true when OIDC is fully configured.
func (c *Config) IsAuthEnabled() bool {
	return c.OIDCIssuer != "" && c.OIDCClientID != ""
}

// IsEmailEnabled returns true when SMTP and a notify address are configured.
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != "" && c.ReportNotifyAddress != ""
}
