package domain

import (
	"strings"
	"time"
)

// Session constraints.
const (
	MaxIdentifierLength = 128
	MaxPlanLength       = 64
)

// Session represents an activated token session.
type Session struct {
	// Identifier is the subject the session belongs to.
	Identifier string `json:"identifier"`

	// Plan is the subscription tier carried by the activating token.
	Plan string `json:"plan"`

	// ActivatedAt is the activation timestamp (Unix milliseconds).
	ActivatedAt int64 `json:"activated_at"`

	// ExpiresAt is the absolute expiration timestamp (Unix milliseconds),
	// inherited from the activating token.
	ExpiresAt int64 `json:"expires_at"`
}

// NewSession creates a Session activated at the given instant.
func NewSession(identifier, plan string, expiresAt, activatedAt time.Time) *Session {
	return &Session{
		Identifier:  identifier,
		Plan:        plan,
		ActivatedAt: activatedAt.UnixMilli(),
		ExpiresAt:   expiresAt.UnixMilli(),
	}
}

// IsExpiredAt returns true if the session has expired at the given instant.
// A session whose expiry equals the instant is expired.
func (s *Session) IsExpiredAt(now time.Time) bool {
	return s.ExpiresAt <= now.UnixMilli()
}

// TTLDuration returns the remaining time-to-live at the given instant.
// Returns 0 if expired.
func (s *Session) TTLDuration(now time.Time) time.Duration {
	remaining := s.ExpiresAt - now.UnixMilli()
	if remaining < 0 {
		return 0
	}
	return time.Duration(remaining) * time.Millisecond
}

// Validate validates the session fields against constraints.
// Returns a DomainError with code TG-SESS-4001 if validation fails.
func (s *Session) Validate() error {
	var violations []string

	if s.Identifier == "" {
		violations = append(violations, "identifier is required")
	}
	if len(s.Identifier) > MaxIdentifierLength {
		violations = append(violations, "identifier exceeds 128 characters")
	}
	if len(s.Plan) > MaxPlanLength {
		violations = append(violations, "plan exceeds 64 characters")
	}
	if s.ExpiresAt == 0 {
		violations = append(violations, "expires_at is required")
	}

	if len(violations) > 0 {
		return ErrSessionValidation.WithDetails(strings.Join(violations, "; "))
	}

	return nil
}

// Clone creates a copy of the session.
func (s *Session) Clone() *Session {
	clone := *s
	return &clone
}

// ActivatedAtTime returns ActivatedAt as time.Time.
func (s *Session) ActivatedAtTime() time.Time {
	return time.UnixMilli(s.ActivatedAt)
}

// ExpiresAtTime returns ExpiresAt as time.Time.
func (s *Session) ExpiresAtTime() time.Time {
	return time.UnixMilli(s.ExpiresAt)
}
