// Package domain defines the core domain models for TransGate.
//
// Domain models are pure value objects and entities without any
// IO dependencies or framework coupling. This package contains:
//
//   - Session: Activated session entity with expiry handling
//   - Errors: Domain-specific error definitions
package domain
