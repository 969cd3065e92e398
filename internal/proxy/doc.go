// Package proxy provides the HTTP client for the translation upstream.
//
// The gateway forwards translation requests here only after the
// caller's session has been verified; the client itself performs no
// authorization.
package proxy
