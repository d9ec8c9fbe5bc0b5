package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

type Config struct {
	// Application
	AppName     string
	AppEnv      string
	AppURL      string
	Port        string
	ContentPath string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret string
	JWTExpiry time.Duration

	// Email
	EmailFrom    string
	ResendAPIKey string

	// Observability (optional)
	SentryDSN string

	// Caching
	CacheEnabled bool
	RedisURL     string        // Empty: in-process page cache
	CacheTTL     time.Duration // Lifetime of cached GET responses
	StaticMaxAge time.Duration // Cache-Control max-age for /assets

	// Storage
	StorageDriver          string // "local" or "s3"
	StoragePath            string // Root directory for the local driver
	S3Region               string
	S3Bucket               string
	S3AccessKey            string
	S3SecretKey            string
	S3Endpoint             string        // Optional: for S3-compatible services (MinIO, DO Spaces, R2, etc.)
	S3PresignExpiryPublic  time.Duration // Expiry for public files (avatars) - default: 7 days
	S3PresignExpiryPrivate time.Duration // Expiry for private files - default: 1 hour

	// Images
	AvatarSize    int
	AvatarQuality int

	// Jobs
	ChallengeSweepSchedule string
}

// Load reads the configuration from the environment and an optional .env
// file. Malformed optional values fall back to their defaults with a
// warning; missing required values are returned as one joined error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	var e env
	cfg := &Config{
		AppName:     e.str("APP_NAME", "Habitkit"),
		AppEnv:      e.required("APP_ENV"), // development or production
		AppURL:      e.required("APP_URL"), // base URL for email links
		Port:        e.str("PORT", "8090"),
		ContentPath: e.str("CONTENT_PATH", "content"),

		DBDriver:     e.str("DB_DRIVER", "sqlite"),
		DBConnection: e.str("DB_CONNECTION", "./data/habitkit.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		JWTSecret: e.required("JWT_SECRET"),
		JWTExpiry: parse(&e, "JWT_EXPIRY", 7*24*time.Hour, time.ParseDuration),

		EmailFrom:    e.str("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey: e.str("RESEND_API_KEY", ""),

		SentryDSN: e.str("SENTRY_DSN", ""),

		CacheEnabled: parse(&e, "CACHE_ENABLED", true, strconv.ParseBool),
		RedisURL:     e.str("REDIS_URL", ""),
		CacheTTL:     parse(&e, "CACHE_TTL", 5*time.Minute, time.ParseDuration),
		StaticMaxAge: parse(&e, "STATIC_MAX_AGE", 30*24*time.Hour, time.ParseDuration),

		StorageDriver:          e.str("STORAGE_DRIVER", StorageLocal),
		StoragePath:            e.str("STORAGE_PATH", "./data/uploads"),
		S3Region:               e.str("S3_REGION", ""),
		S3Bucket:               e.str("S3_BUCKET", ""),
		S3AccessKey:            e.str("S3_ACCESS_KEY", ""),
		S3SecretKey:            e.str("S3_SECRET_KEY", ""),
		S3Endpoint:             e.str("S3_ENDPOINT", ""),
		S3PresignExpiryPublic:  parse(&e, "S3_PRESIGN_EXPIRY_PUBLIC", 7*24*time.Hour, time.ParseDuration),
		S3PresignExpiryPrivate: parse(&e, "S3_PRESIGN_EXPIRY_PRIVATE", time.Hour, time.ParseDuration),

		AvatarSize:    parse(&e, "AVATAR_SIZE", 256, strconv.Atoi),
		AvatarQuality: parse(&e, "AVATAR_QUALITY", 85, strconv.Atoi),

		ChallengeSweepSchedule: e.str("CHALLENGE_SWEEP_SCHEDULE", "@hourly"),
	}

	if cfg.StorageDriver == StorageS3 {
		if missing := cfg.MissingS3Settings(); len(missing) > 0 {
			e.errs = append(e.errs, fmt.Errorf("STORAGE_DRIVER=s3 requires %s", strings.Join(missing, ", ")))
		}
	}
	// development falls back to logging emails instead of sending them
	if cfg.IsProduction() && cfg.ResendAPIKey == "" {
		e.errs = append(e.errs, errors.New("production requires RESEND_API_KEY"))
	}

	if err := errors.Join(e.errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MissingS3Settings lists the env keys the s3 storage driver needs but are unset.
func (c *Config) MissingS3Settings() []string {
	var missing []string
	for _, kv := range [][2]string{
		{"S3_REGION", c.S3Region},
		{"S3_BUCKET", c.S3Bucket},
		{"S3_ACCESS_KEY", c.S3AccessKey},
		{"S3_SECRET_KEY", c.S3SecretKey},
	} {
		if kv[1] == "" {
			missing = append(missing, kv[0])
		}
	}
	return missing
}

// env reads variables and collects the errors of required ones.
type env struct {
	errs []error
}

func (e *env) str(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (e *env) required(key string) string {
	v := os.Getenv(key)
	if v == "" {
		e.errs = append(e.errs, fmt.Errorf("%s is required", key))
	}
	return v
}

func parse[T any](e *env, key string, def T, fn func(string) (T, error)) T {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	v, err := fn(raw)
	if err != nil {
		slog.Warn("invalid config value, using default", "key", key, "value", raw, "default", def)
		return def
	}
	return v
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// UseRedis reports whether the page cache is backed by Redis.
func (c *Config) UseRedis() bool {
	return c.RedisURL != ""
}

// Sanitized returns a copy of the config with only public/safe fields.
// Secrets and credentials are excluded; the copy is what goes into the request context.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:       c.AppName,
		AppEnv:        c.AppEnv,
		AppURL:        c.AppURL,
		Port:          c.Port,
		EmailFrom:     c.EmailFrom,
		CacheEnabled:  c.CacheEnabled,
		CacheTTL:      c.CacheTTL,
		StaticMaxAge:  c.StaticMaxAge,
		StorageDriver: c.StorageDriver,
		S3Endpoint:    c.S3Endpoint,
		AvatarSize:    c.AvatarSize,
	}
}
