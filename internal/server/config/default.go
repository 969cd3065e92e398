// Package config defines the server configuration structure.
package config

import "time"

// Default configuration values.
const (
	DefaultHTTPAddr        = "127.0.0.1:6080"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 15 * time.Second

	DefaultSweepInterval   = time.Hour
	DefaultTokenTTL        = 24 * time.Hour
	DefaultUpstreamTimeout = 10 * time.Second

	DefaultRateLimitRPS   = 20.0
	DefaultRateLimitBurst = 40

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
// The signing secret has no default; it must be provided.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr:            DefaultHTTPAddr,
				ReadTimeout:     DefaultReadTimeout,
				WriteTimeout:    DefaultWriteTimeout,
				ShutdownTimeout: DefaultShutdownTimeout,
			},
		},
		Session: SessionSection{
			SweepInterval:   DefaultSweepInterval,
			DefaultTokenTTL: DefaultTokenTTL,
		},
		Upstream: UpstreamSection{
			Timeout: DefaultUpstreamTimeout,
		},
		RateLimit: RateLimitSection{
			Enabled: true,
			RPS:     DefaultRateLimitRPS,
			Burst:   DefaultRateLimitBurst,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
