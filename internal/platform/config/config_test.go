package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		DocstoreDriver:     DriverMemory,
		Environment:        "development",
		MaxBodyBytes:       1 << 20,
		RateLimitPerMinute: 60,
		JobQueueSize:       16,
		TokenTTL:           time.Hour,
		SessionTTL:         time.Hour,
		Timezone:           "UTC",
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "memory ok", mutate: func(*Config) {}},
		{name: "postgres without url", mutate: func(c *Config) { c.DocstoreDriver = DriverPostgres }, wantErr: "DATABASE_URL"},
		{name: "mongo without uri", mutate: func(c *Config) { c.DocstoreDriver = DriverMongo }, wantErr: "MONGO_URI"},
		{name: "unknown driver", mutate: func(c *Config) { c.DocstoreDriver = "sqlite" }, wantErr: "DOCSTORE_DRIVER"},
		{name: "production without secret", mutate: func(c *Config) {
			c.Environment = "production"
			c.DocstoreDriver = DriverPostgres
			c.DatabaseURL = "postgres://localhost/staffsync"
		}, wantErr: "JWT_SECRET"},
		{name: "production on memory", mutate: func(c *Config) {
			c.Environment = "production"
			c.JWTSecret = "secret"
		}, wantErr: "memory"},
		{name: "small body limit", mutate: func(c *Config) { c.MaxBodyBytes = 10 }, wantErr: "MAX_BODY_BYTES"},
		{name: "email without host", mutate: func(c *Config) { c.EmailEnabled = true }, wantErr: "SMTP_HOST"},
		{name: "bad timezone", mutate: func(c *Config) { c.Timezone = "Mars/Olympus" }, wantErr: "APP_TIMEZONE"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid config, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DOCSTORE_DRIVER", "")
	t.Setenv("EMAIL_FROM", "")
	t.Setenv("APP_BASE_URL", "https://staffsync.example.com/")

	cfg := Load()
	if cfg.DocstoreDriver != DriverMemory {
		t.Fatalf("expected memory driver, got %q", cfg.DocstoreDriver)
	}
	if cfg.EmailFrom != "onboarding@resend.dev" {
		t.Fatalf("unexpected sender %q", cfg.EmailFrom)
	}
	if cfg.AppBaseURL != "https://staffsync.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.AppBaseURL)
	}
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := Config{Timezone: "Nowhere/Invalid"}
	if cfg.Location() != time.UTC {
		t.Fatal("expected UTC fallback")
	}
}
