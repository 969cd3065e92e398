// Package httpserver provides the HTTP/HTTPS server for TransGate.
//
// It uses the Go standard library net/http for routing, wrapping the
// handlers with middleware for request IDs, panic recovery, logging,
// rate limiting and security headers.
package httpserver
