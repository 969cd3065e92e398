// Package handler provides HTTP request handlers for TransGate.
//
// This package implements the HTTP API endpoints for token activation,
// gated translation, session lookup and administrative operations.
package handler
