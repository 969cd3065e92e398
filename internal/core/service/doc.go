// Package service provides domain services for TransGate.
//
// Domain services contain pure business logic and orchestrate operations
// on domain models. They define interfaces for storage dependencies,
// allowing for dependency injection and testability.
//
// This package contains:
//
//   - ActivationService: Token verification and session activation
//   - IssuerService: Signed activation token minting
//   - Sweeper: Periodic removal of expired sessions
//
// Services are stateless and thread-safe. Clocks are injectable so
// expiry behavior is deterministic under test.
package service
