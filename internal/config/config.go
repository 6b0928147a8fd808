// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/cardforge/pkg/logger"
	"github.com/dmitrymomot/cardforge/pkg/mailer"
	"github.com/dmitrymomot/cardforge/pkg/mailer/resend"
)

// Config is the full application configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `env:"ADDR" envDefault:":8080"`

	// StaticDir serves the frontend when non-empty.
	StaticDir string `env:"STATIC_DIR" envDefault:"./public"`

	// CORSOrigins restricts browser origins; empty allows all.
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	// RequestTimeout bounds request handling.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`

	// Storage selects and configures the file backend.
	Storage StorageConfig

	// Session controls the in-process session store.
	Session SessionConfig

	// Upload bounds incoming files.
	Upload UploadConfig

	// Render configures the compositing pipeline.
	Render RenderConfig

	// Contact configures the contact form relay.
	Contact ContactConfig

	// Logger configures logging and Sentry.
	Logger logger.Config

	// Mailer configures contact relay templating.
	Mailer mailer.Config

	// Resend configures the email provider.
	Resend resend.Config
}

// StorageConfig selects the file backend.
type StorageConfig struct {
	// Driver is "local" or "s3".
	Driver string `env:"STORAGE_DRIVER" envDefault:"local"`

	// Dir is the base directory for the local driver.
	Dir string `env:"STORAGE_DIR" envDefault:"./data"`

	// S3 settings, used when Driver is "s3".
	Bucket    string `env:"S3_BUCKET"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`
	Endpoint  string `env:"S3_ENDPOINT"`
	Region    string `env:"S3_REGION"`
	PathStyle bool   `env:"S3_PATH_STYLE"`
}

// SessionConfig controls session lifetime and caps.
type SessionConfig struct {
	TTL             time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	MaxSessions     int           `env:"SESSION_MAX" envDefault:"1000"`
	CleanupSchedule string        `env:"SESSION_CLEANUP_SCHEDULE" envDefault:"@every 10m"`
}

// UploadConfig bounds incoming files.
type UploadConfig struct {
	// MaxModelBytes caps model image uploads (default 10 MiB).
	MaxModelBytes int64 `env:"UPLOAD_MAX_MODEL_BYTES" envDefault:"10485760"`

	// MaxListBytes caps guest list uploads (default 2 MiB).
	MaxListBytes int64 `env:"UPLOAD_MAX_LIST_BYTES" envDefault:"2097152"`
}

// RenderConfig configures the compositing pipeline.
type RenderConfig struct {
	// FontPath points at a TTF file; empty uses the built-in face.
	FontPath string `env:"RENDER_FONT_PATH"`

	// Concurrency bounds the batch worker pool.
	Concurrency int `env:"RENDER_CONCURRENCY" envDefault:"4"`

	// MaxRecords caps batch size per session.
	MaxRecords int `env:"RENDER_MAX_RECORDS" envDefault:"500"`
}

// ContactConfig configures the contact form.
type ContactConfig struct {
	// RedisURL enables the shared rate limiter when set.
	RedisURL string `env:"REDIS_URL"`

	// RateLimit is the number of messages per window per client.
	RateLimit int `env:"CONTACT_RATE_LIMIT" envDefault:"5"`

	// RateWindow is the limiter window.
	RateWindow time.Duration `env:"CONTACT_RATE_WINDOW" envDefault:"1h"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	return &cfg, nil
}
