package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Auth: AuthConfig{
			SigningSecret:     strings.Repeat("s", 32),
			AdminEmail:        "admin@remaya.org",
			AdminPasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		},
		Identity: IdentityConfig{Type: "local"},
		Store:    StoreConfig{Type: "memory"},
	}
}

func TestValidate_Defaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Auth.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want 24h default", cfg.Auth.SessionTTL)
	}
	if cfg.Server.Addr != ":5000" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Uploads.Dir != "uploads" || cfg.Uploads.BaseURL != "/uploads" {
		t.Errorf("upload defaults = %+v", cfg.Uploads)
	}
}

func TestValidate_SigningSecretRequired(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.SigningSecret = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("missing signing secret accepted; a fallback default would be a critical vulnerability")
	}

	cfg.Auth.SigningSecret = "short"
	if err := cfg.Validate(); err == nil {
		t.Fatal("short signing secret accepted")
	}
}

func TestValidate_AdminCredentialsRequired(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.AdminEmail = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("missing admin email accepted")
	}

	cfg = validConfig()
	cfg.Auth.AdminPasswordHash = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("missing admin password hash accepted")
	}
}

func TestValidate_UnknownTypes(t *testing.T) {
	cfg := validConfig()
	cfg.Identity.Type = "ldap"
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown identity type accepted")
	}

	cfg = validConfig()
	cfg.Store.Type = "mongo"
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown store type accepted")
	}

	cfg = validConfig()
	cfg.Store.Type = "postgres"
	cfg.Store.DSN = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("postgres store without dsn accepted")
	}
}
