package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

// minSigningSecretLen guards against trivially brute-forceable HMAC
// keys. There is intentionally no built-in fallback secret; the
// server refuses to start without one.
const minSigningSecretLen = 32

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Auth     AuthConfig     `yaml:"auth"`
	Identity IdentityConfig `yaml:"identity"`
	Store    StoreConfig    `yaml:"store"`
	Uploads  UploadConfig   `yaml:"uploads"`
	Audit    AuditConfig    `yaml:"audit"`
}

type ServerConfig struct {
	// Addr is the listen address, e.g. ":5000".
	Addr string `yaml:"addr"`

	// AllowedOrigins are the browser origins permitted by CORS,
	// e.g. the SPA dev server.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type AuthConfig struct {
	// SigningSecret is the HMAC key for session tokens. Required.
	SigningSecret string `yaml:"signing_secret"`

	// SessionTTL is the fixed token validity window. Defaults to 24h.
	SessionTTL time.Duration `yaml:"session_ttl"`

	// AdminEmail and AdminPasswordHash are the single built-in
	// administrator credential pair. The hash is a bcrypt hash, never
	// a plaintext password.
	AdminEmail        string `yaml:"admin_email"`
	AdminPasswordHash string `yaml:"admin_password_hash"`

	// UpstreamTimeout bounds each call to the identity provider and
	// the data store. Defaults to 10s.
	UpstreamTimeout time.Duration `yaml:"upstream_timeout"`
}

// IdentityConfig selects and configures the identity provider.
type IdentityConfig struct {
	// Type is the provider type, e.g. "supabase" or "local".
	Type   string         `yaml:"type"`
	Config map[string]any `yaml:",inline"` // capture remaining fields
}

type StoreConfig struct {
	// Type is "postgres" or "memory".
	Type string `yaml:"type"`

	// DSN is the Postgres connection string. May also be supplied via
	// REMAYA_DATABASE_URL.
	DSN string `yaml:"dsn"`
}

type UploadConfig struct {
	// Dir is the local directory uploaded images are written to.
	Dir string `yaml:"dir"`

	// BaseURL is the public prefix uploaded files are served under.
	BaseURL string `yaml:"base_url"`

	// MaxBytes caps a single upload. Defaults to 5 MiB.
	MaxBytes int64 `yaml:"max_bytes"`
}

// AuditConfig holds configuration for the auth audit log.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Type    string `yaml:"type"` // e.g. "file", "memory"
	Path    string `yaml:"path"`
}

// Load reads and parses the configuration file at the given path.
// It returns a Config struct or an error if loading/parsing/validation fails.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		c.Server.Addr = ":5000"
	}

	if c.Auth.SigningSecret == "" {
		return fmt.Errorf("auth.signing_secret is required; refusing to fall back to a built-in key")
	}
	if len(c.Auth.SigningSecret) < minSigningSecretLen {
		return fmt.Errorf("auth.signing_secret must be at least %d bytes", minSigningSecretLen)
	}
	if c.Auth.SessionTTL == 0 {
		c.Auth.SessionTTL = 24 * time.Hour
	}
	if c.Auth.SessionTTL < 0 {
		return fmt.Errorf("auth.session_ttl must be positive")
	}
	if c.Auth.UpstreamTimeout == 0 {
		c.Auth.UpstreamTimeout = 10 * time.Second
	}
	if c.Auth.AdminEmail == "" {
		return fmt.Errorf("auth.admin_email is required")
	}
	if c.Auth.AdminPasswordHash == "" {
		return fmt.Errorf("auth.admin_password_hash is required (bcrypt hash, not a plaintext password)")
	}

	switch c.Identity.Type {
	case "supabase", "local":
	case "":
		return fmt.Errorf("identity.type is required")
	default:
		return fmt.Errorf("unknown identity.type %q", c.Identity.Type)
	}

	switch c.Store.Type {
	case "postgres":
		if c.Store.DSN == "" && os.Getenv("REMAYA_DATABASE_URL") == "" {
			return fmt.Errorf("store.dsn is required for the postgres store")
		}
	case "memory":
	case "":
		return fmt.Errorf("store.type is required")
	default:
		return fmt.Errorf("unknown store.type %q", c.Store.Type)
	}

	if c.Uploads.Dir == "" {
		c.Uploads.Dir = "uploads"
	}
	if c.Uploads.BaseURL == "" {
		c.Uploads.BaseURL = "/uploads"
	}
	if c.Uploads.MaxBytes == 0 {
		c.Uploads.MaxBytes = 5 << 20
	}

	if c.Audit.Enabled {
		switch c.Audit.Type {
		case "memory":
		case "file":
			if c.Audit.Path == "" {
				return fmt.Errorf("audit.path is required for the file auditor")
			}
		default:
			return fmt.Errorf("unknown audit.type %q", c.Audit.Type)
		}
	}

	return nil
}
