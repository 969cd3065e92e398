// Package config defines the server configuration structure.
package config

import "time"

// ServerConfig is the root configuration for transgate-server.
type ServerConfig struct {
	Server    ServerSection    `koanf:"server"`
	Security  SecuritySection  `koanf:"security"`
	Session   SessionSection   `koanf:"session"`
	Upstream  UpstreamSection  `koanf:"upstream"`
	RateLimit RateLimitSection `koanf:"ratelimit"`
	Log       LogSection       `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	HTTP HTTPConfig `koanf:"http"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr            string        `koanf:"addr"`
	TLSCertFile     string        `koanf:"tls_cert_file"`
	TLSKeyFile      string        `koanf:"tls_key_file"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// SecuritySection configures security settings.
type SecuritySection struct {
	// Secret is the shared signing secret for activation tokens.
	// Required; the server refuses to start without it. The value is
	// read once at startup and never reloaded.
	Secret string `koanf:"secret"`
}

// SessionSection configures the session registry.
type SessionSection struct {
	// SweepInterval is the period between background sweeps of
	// expired sessions.
	SweepInterval time.Duration `koanf:"sweep_interval"`

	// DefaultTokenTTL is the validity window for minted tokens when
	// the issue request carries no explicit TTL.
	DefaultTokenTTL time.Duration `koanf:"default_token_ttl"`
}

// UpstreamSection configures the translation upstream.
type UpstreamSection struct {
	// URL is the base URL of the translation backend.
	URL string `koanf:"url"`

	// Timeout bounds each upstream request.
	Timeout time.Duration `koanf:"timeout"`

	// CAFile is an optional PEM bundle of extra root certificates
	// trusted when talking to the upstream over TLS.
	CAFile string `koanf:"ca_file"`
}

// RateLimitSection configures per-client request throttling.
type RateLimitSection struct {
	Enabled bool `koanf:"enabled"`

	// RPS is the sustained requests-per-second budget per client IP.
	RPS float64 `koanf:"rps"`

	// Burst is the instantaneous burst allowance per client IP.
	Burst int `koanf:"burst"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
