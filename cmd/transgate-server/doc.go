// Package main provides the entry point for transgate-server.
//
// The server is the core TransGate service that provides:
//
//   - HTTP/HTTPS API for token activation and session lookup
//   - Gated proxying of translation requests to the upstream backend
//   - Admin API for minting tokens and sweeping expired sessions
//   - Prometheus metrics on /metrics
//
// Usage:
//
//	transgate-server [flags]
//	transgate-server --config /path/to/config.yaml
//
// The server loads configuration, initializes infrastructure components,
// and starts the HTTP listener.
package main
