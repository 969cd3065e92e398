// Package config defines the server configuration structure.
package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/transgate/transgate-go/internal/core/domain"
)

// Verify validates the configuration. A missing signing secret is
// reported as ErrConfigSecretMissing and must abort startup.
func Verify(cfg *ServerConfig) error {
	if err := verifySecurity(&cfg.Security); err != nil {
		return err
	}
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifySession(&cfg.Session); err != nil {
		return err
	}
	if err := verifyUpstream(&cfg.Upstream); err != nil {
		return err
	}
	if err := verifyRateLimit(&cfg.RateLimit); err != nil {
		return err
	}
	return nil
}

func verifySecurity(cfg *SecuritySection) error {
	if cfg.Secret == "" {
		return domain.ErrConfigSecretMissing
	}
	return nil
}

func verifyServer(cfg *ServerSection) error {
	if cfg.HTTP.Addr == "" {
		return domain.ErrConfigInvalid.WithDetails("server.http.addr is required")
	}

	// TLS is all-or-nothing.
	cert, key := cfg.HTTP.TLSCertFile, cfg.HTTP.TLSKeyFile
	if (cert == "") != (key == "") {
		return domain.ErrConfigInvalid.WithDetails("server.http.tls_cert_file and tls_key_file must be set together")
	}
	for _, path := range []string{cert, key} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			return domain.ErrConfigInvalid.WithDetails(fmt.Sprintf("tls file %s: %v", path, err))
		}
	}

	return nil
}

func verifySession(cfg *SessionSection) error {
	if cfg.SweepInterval <= 0 {
		return domain.ErrConfigInvalid.WithDetails("session.sweep_interval must be positive")
	}
	if cfg.DefaultTokenTTL <= 0 {
		return domain.ErrConfigInvalid.WithDetails("session.default_token_ttl must be positive")
	}
	return nil
}

func verifyUpstream(cfg *UpstreamSection) error {
	if cfg.URL == "" {
		// Translation proxying is optional; the endpoint reports
		// upstream unavailable when unset.
		return nil
	}

	u, err := url.Parse(cfg.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return domain.ErrConfigInvalid.WithDetails("upstream.url must be an absolute URL")
	}
	if cfg.Timeout <= 0 {
		return domain.ErrConfigInvalid.WithDetails("upstream.timeout must be positive")
	}
	if cfg.CAFile != "" {
		if _, err := os.Stat(cfg.CAFile); err != nil {
			return domain.ErrConfigInvalid.WithDetails("upstream.ca_file not readable: " + cfg.CAFile)
		}
	}
	return nil
}

func verifyRateLimit(cfg *RateLimitSection) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.RPS <= 0 {
		return domain.ErrConfigInvalid.WithDetails("ratelimit.rps must be positive")
	}
	if cfg.Burst < 1 {
		return domain.ErrConfigInvalid.WithDetails("ratelimit.burst must be at least 1")
	}
	return nil
}
