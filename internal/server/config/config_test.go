// Package config defines the server configuration structure.
package config

import (
	"errors"
	"testing"
	"time"

	"github.com/transgate/transgate-go/internal/core/domain"
)

// validConfig returns a Default() config with the required secret set.
func validConfig() *ServerConfig {
	cfg := Default()
	cfg.Security.Secret = "test-signing-secret"
	return cfg
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.HTTP.Addr != DefaultHTTPAddr {
		t.Errorf("HTTP.Addr = %q, want %q", cfg.Server.HTTP.Addr, DefaultHTTPAddr)
	}
	if cfg.Security.Secret != "" {
		t.Error("Secret must have no default")
	}
	if cfg.Session.SweepInterval != DefaultSweepInterval {
		t.Errorf("SweepInterval = %v, want %v", cfg.Session.SweepInterval, DefaultSweepInterval)
	}
	if cfg.Session.DefaultTokenTTL != DefaultTokenTTL {
		t.Errorf("DefaultTokenTTL = %v, want %v", cfg.Session.DefaultTokenTTL, DefaultTokenTTL)
	}
	if !cfg.RateLimit.Enabled {
		t.Error("rate limiting should be enabled by default")
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, DefaultLogFormat)
	}
}

func TestVerifyValid(t *testing.T) {
	if err := Verify(validConfig()); err != nil {
		t.Errorf("Verify failed for valid config: %v", err)
	}
}

func TestVerifyMissingSecret(t *testing.T) {
	cfg := Default()

	err := Verify(cfg)
	if !errors.Is(err, domain.ErrConfigSecretMissing) {
		t.Errorf("Verify error = %v; want ErrConfigSecretMissing", err)
	}
}

func TestVerifyRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ServerConfig)
	}{
		{
			name:   "missing http addr",
			mutate: func(c *ServerConfig) { c.Server.HTTP.Addr = "" },
		},
		{
			name:   "tls cert without key",
			mutate: func(c *ServerConfig) { c.Server.HTTP.TLSCertFile = "/tmp/cert.pem" },
		},
		{
			name:   "zero sweep interval",
			mutate: func(c *ServerConfig) { c.Session.SweepInterval = 0 },
		},
		{
			name:   "negative token ttl",
			mutate: func(c *ServerConfig) { c.Session.DefaultTokenTTL = -time.Hour },
		},
		{
			name:   "relative upstream url",
			mutate: func(c *ServerConfig) { c.Upstream.URL = "/translate" },
		},
		{
			name: "upstream without timeout",
			mutate: func(c *ServerConfig) {
				c.Upstream.URL = "http://localhost:9000"
				c.Upstream.Timeout = 0
			},
		},
		{
			name:   "rate limit zero rps",
			mutate: func(c *ServerConfig) { c.RateLimit.RPS = 0 },
		},
		{
			name:   "rate limit zero burst",
			mutate: func(c *ServerConfig) { c.RateLimit.Burst = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Verify(cfg)
			if !domain.IsDomainError(err, "TG-CONF-5002") {
				t.Errorf("Verify error = %v; want TG-CONF-5002", err)
			}
		})
	}
}

func TestVerifyUpstreamOptional(t *testing.T) {
	cfg := validConfig()
	cfg.Upstream.URL = ""
	cfg.Upstream.Timeout = 0

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify failed with unset upstream: %v", err)
	}
}

func TestVerifyRateLimitDisabled(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.Enabled = false
	cfg.RateLimit.RPS = 0
	cfg.RateLimit.Burst = 0

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify failed with disabled rate limit: %v", err)
	}
}

func TestSanitize(t *testing.T) {
	cfg := &ServerConfig{
		Security: SecuritySection{Secret: "super-secret-key-1234567890"},
	}

	sanitized := Sanitize(cfg)

	if cfg.Security.Secret != "super-secret-key-1234567890" {
		t.Error("Sanitize mutated the original config")
	}
	if sanitized.Security.Secret == cfg.Security.Secret {
		t.Error("Sanitize did not mask the secret")
	}
	if got := sanitized.Security.Secret; got[:2] != "su" {
		t.Errorf("masked secret = %q; want prefix preserved", got)
	}
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ab", "****"},
		{"abcd", "****"},
		{"abcdef", "ab**ef"},
	}

	for _, tt := range tests {
		if got := maskSecret(tt.in); got != tt.want {
			t.Errorf("maskSecret(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
