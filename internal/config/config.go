package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreBackendSQL  = "sql"
	StoreBackendFile = "file"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppURL  string
	Port    string

	// Timezone used to decide which entries count as "today"
	Timezone string

	// Store backend: "sql" (default) or "file" (one JSON file per key in DataDir)
	StoreBackend string
	DataDir      string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// HTTP
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Email (daily digest)
	EmailFrom    string
	ResendAPIKey string
	DigestEmail  string

	// Observability (optional)
	SentryDSN string

	// Backups (S3-compatible: MinIO, AWS S3, Cloudflare R2, etc.)
	// Empty S3Bucket keeps backups on the local filesystem under BackupDir.
	BackupDir       string
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string        // Optional: for S3-compatible services
	S3UsePathStyle  bool          // Required by MinIO and some S3-compatible services
	S3PresignExpiry time.Duration // Expiry for backup download links
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	dataDir := envString("DATA_DIR", "./data")

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Screen Time"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:  envString("APP_URL", "http://localhost:8090"),
		Port:    envString("PORT", "8090"),

		Timezone: envString("TIMEZONE", "Local"),

		// Store
		StoreBackend: envString("STORE_BACKEND", StoreBackendSQL),
		DataDir:      dataDir,

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", filepath.Join(dataDir, "screentime.db")+"?_pragma=journal_mode(WAL)"),

		// HTTP
		ReadTimeout:     envDuration("HTTP_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    envDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
		ShutdownTimeout: envDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),

		// Email (RESEND_API_KEY optional in development)
		EmailFrom:    envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),
		DigestEmail:  envString("DIGEST_EMAIL", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Backups
		BackupDir:       envString("BACKUP_DIR", filepath.Join(dataDir, "backups")),
		S3Region:        envString("S3_REGION", "us-east-1"),
		S3Bucket:        envString("S3_BUCKET", ""),
		S3AccessKey:     envString("S3_ACCESS_KEY", ""),
		S3SecretKey:     envString("S3_SECRET_KEY", ""),
		S3Endpoint:      envString("S3_ENDPOINT", ""),
		S3UsePathStyle:  envBool("S3_USE_PATH_STYLE", envString("S3_ENDPOINT", "") != ""),
		S3PresignExpiry: envDuration("S3_PRESIGN_EXPIRY", 1*time.Hour),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures the digest can actually be delivered when one is configured.
func validateProduction(cfg *Config) {
	if cfg.DigestEmail != "" && cfg.ResendAPIKey == "" {
		slog.Error("production digest requires RESEND_API_KEY",
			"hint", "unset DIGEST_EMAIL or set APP_ENV=development to log digests instead")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Location resolves Timezone, falling back to the server's local zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		slog.Warn("config invalid timezone, using local", "timezone", c.Timezone, "error", err)
		return time.Local
	}
	return loc
}

// UsesS3 reports whether backups go to an S3-compatible bucket.
func (c *Config) UsesS3() bool {
	return c.S3Bucket != ""
}

// Sanitized returns a copy of the config with only public/safe fields.
// All secrets, credentials, and sensitive data are excluded.
// Safe to expose in ctx and templates.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:      c.AppName,
		AppEnv:       c.AppEnv,
		AppURL:       c.AppURL,
		Port:         c.Port,
		Timezone:     c.Timezone,
		StoreBackend: c.StoreBackend,

		S3Endpoint: c.S3Endpoint,
	}
}
