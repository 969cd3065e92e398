package tlsroots

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

// ErrNoCertsFound is returned when PEM input contains no certificate
// blocks.
var ErrNoCertsFound = errors.New("tlsroots: no certificates found in PEM data")

// Pool is a set of trusted root certificates.
type Pool struct {
	roots *x509.CertPool
}

// NewPool starts from the system trust store, or from an empty pool on
// platforms without one.
func NewPool() (*Pool, error) {
	roots, err := x509.SystemCertPool()
	if err != nil {
		roots = x509.NewCertPool()
	}
	return &Pool{roots: roots}, nil
}

// NewEmptyPool starts without system roots, trusting only what is
// added explicitly.
func NewEmptyPool() *Pool {
	return &Pool{roots: x509.NewCertPool()}
}

// AddCertFile trusts every certificate in the PEM file at path.
func (p *Pool) AddCertFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("tlsroots: read %s: %w", path, err)
	}
	if err := p.AddCertPEM(data); err != nil {
		return fmt.Errorf("tlsroots: %s: %w", path, err)
	}
	return nil
}

// AddCertPEM trusts every CERTIFICATE block in data. Non-certificate
// blocks are skipped; data with no certificates at all is an error.
func (p *Pool) AddCertPEM(data []byte) error {
	added := 0
	for {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return fmt.Errorf("tlsroots: parse certificate: %w", err)
		}
		p.roots.AddCert(cert)
		added++
	}
	if added == 0 {
		return ErrNoCertsFound
	}
	return nil
}

// Roots exposes the underlying x509 pool.
func (p *Pool) Roots() *x509.CertPool {
	return p.roots
}

// TLSConfig returns a client TLS config verifying peers against this
// pool.
func (p *Pool) TLSConfig() *tls.Config {
	return &tls.Config{
		RootCAs:    p.roots,
		MinVersion: tls.VersionTLS12,
	}
}
