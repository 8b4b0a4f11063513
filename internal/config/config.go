package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName     string
	AppEnv      string
	Port        string
	ContentPath string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret        string
	JWTExpiry        time.Duration
	AuthPasswordHash string

	// Email / reminders
	EmailFrom          string
	ResendAPIKey       string
	ReminderEmail      string
	ReminderWindowDays int
	ReminderInterval   time.Duration

	// Observability (optional)
	SentryDSN string

	// Backup storage (S3-compatible: MinIO, AWS S3, Cloudflare R2, etc.)
	// Optional: leave S3_BUCKET empty to disable cloud backups.
	S3Region     string
	S3Bucket     string
	S3AccessKey  string
	S3SecretKey  string
	S3Endpoint   string
	BackupPrefix string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:     envString("APP_NAME", "LifeTrack"),
		AppEnv:      envRequired("APP_ENV"), // Required: 'development' or 'production'
		Port:        envString("PORT", "8090"),
		ContentPath: envString("CONTENT_PATH", "content"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/lifetrack.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret:        envRequired("JWT_SECRET"),
		JWTExpiry:        envDuration("JWT_EXPIRY", 720*time.Hour), // 30 days, mobile clients stay signed in
		AuthPasswordHash: envRequired("AUTH_PASSWORD_HASH"),        // bcrypt hash of the device password

		// Email / reminders (RESEND_API_KEY optional in development)
		EmailFrom:          envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey:       envString("RESEND_API_KEY", ""),
		ReminderEmail:      envString("REMINDER_EMAIL", ""),
		ReminderWindowDays: envInt("REMINDER_WINDOW_DAYS", 3),
		ReminderInterval:   envDuration("REMINDER_INTERVAL", 24*time.Hour),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Backup storage
		S3Region:     envString("S3_REGION", ""),
		S3Bucket:     envString("S3_BUCKET", ""),
		S3AccessKey:  envString("S3_ACCESS_KEY", ""),
		S3SecretKey:  envString("S3_SECRET_KEY", ""),
		S3Endpoint:   envString("S3_ENDPOINT", ""),
		BackupPrefix: envString("BACKUP_PREFIX", "backups"),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures services that silently degrade in development are
// configured for production deployments.
func validateProduction(cfg *Config) {
	if cfg.ReminderEmail != "" && cfg.ResendAPIKey == "" {
		slog.Error("production reminders require RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
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

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
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

func (c *Config) BackupEnabled() bool {
	return c.S3Bucket != ""
}
