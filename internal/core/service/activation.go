package service

import (
	"context"
	"time"

	"github.com/transgate/transgate-go/internal/core/domain"
	"github.com/transgate/transgate-go/pkg/token"
)

// SessionRepository defines the storage interface for session operations.
type SessionRepository interface {
	// Upsert stores a session, replacing any existing session under the
	// same identifier.
	Upsert(ctx context.Context, session *domain.Session) error

	// Get retrieves a session by identifier without expiry side effects.
	Get(ctx context.Context, identifier string) (*domain.Session, error)

	// CheckActive reports whether the identifier has a live session at
	// the given instant, removing it lazily when expired.
	CheckActive(ctx context.Context, identifier string, now time.Time) (bool, error)

	// Delete removes a session by identifier.
	Delete(ctx context.Context, identifier string) error

	// DeleteExpired removes all sessions expired at the given instant
	// and returns the count.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)

	// Count returns the total number of stored sessions.
	Count() int
}

// Metrics receives counters from the activation path. Implementations
// must be safe for concurrent use.
type Metrics interface {
	// RecordActivation records an activation attempt with its outcome
	// label ("accepted" or a rejection reason).
	RecordActivation(outcome string)

	// SetActiveSessions records the current registry size.
	SetActiveSessions(n int)

	// RecordSweep records the number of sessions removed by a sweep.
	RecordSweep(removed int)
}

// nopMetrics discards all observations.
type nopMetrics struct{}

func (nopMetrics) RecordActivation(string) {}
func (nopMetrics) SetActiveSessions(int)   {}
func (nopMetrics) RecordSweep(int)         {}

// OutcomeAccepted is the metric label for successful activations.
const OutcomeAccepted = "accepted"

// ActivationService verifies activation tokens and manages the session
// registry derived from them.
type ActivationService struct {
	repo    SessionRepository
	secret  []byte
	metrics Metrics
	now     func() time.Time
}

// ActivationOption configures the ActivationService.
type ActivationOption func(*ActivationService)

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) ActivationOption {
	return func(s *ActivationService) {
		s.now = now
	}
}

// WithMetrics attaches a metrics sink.
func WithMetrics(m Metrics) ActivationOption {
	return func(s *ActivationService) {
		s.metrics = m
	}
}

// NewActivationService creates a new ActivationService. The secret must
// be non-empty; configuration validation enforces this before startup.
func NewActivationService(repo SessionRepository, secret []byte, opts ...ActivationOption) *ActivationService {
	s := &ActivationService{
		repo:    repo,
		secret:  secret,
		metrics: nopMetrics{},
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ActivateRequest contains parameters for token activation.
type ActivateRequest struct {
	Token string // Required, the encoded activation token
}

// ActivateResponse contains the result of a successful activation.
type ActivateResponse struct {
	Identifier string // Subject the session belongs to
	Plan       string // Subscription tier from the token
	ExpiresAt  int64  // Session expiry (Unix milliseconds)
}

// Activate verifies the token and registers a session for its subject.
// An existing session under the same identifier is replaced
// unconditionally, even when the replacement expires sooner.
func (s *ActivationService) Activate(ctx context.Context, req *ActivateRequest) (*ActivateResponse, error) {
	if req.Token == "" {
		return nil, domain.ErrBadRequest.WithDetails("token is required")
	}

	// 1. Verify the token against the shared secret
	now := s.now()
	result := token.VerifyAt(req.Token, s.secret, now)
	if !result.Valid {
		s.metrics.RecordActivation(result.Reason.String())
		return nil, verificationError(result.Reason)
	}

	// 2. Register the session (last write wins)
	session := domain.NewSession(result.Claims.Identifier, result.Claims.Plan, result.Claims.Expiry, now)
	if err := s.repo.Upsert(ctx, session); err != nil {
		s.metrics.RecordActivation("storage_error")
		return nil, domain.ErrInternalServer.WithCause(err)
	}

	s.metrics.RecordActivation(OutcomeAccepted)
	s.metrics.SetActiveSessions(s.repo.Count())

	return &ActivateResponse{
		Identifier: session.Identifier,
		Plan:       session.Plan,
		ExpiresAt:  session.ExpiresAt,
	}, nil
}

// verificationError maps a rejection reason onto the domain error
// taxonomy. The reason survives in the details for internal logging;
// handlers collapse it before responding.
func verificationError(reason token.Reason) error {
	if reason == token.ReasonExpired {
		return domain.ErrTokenExpired.WithDetails(reason.String())
	}
	return domain.ErrTokenInvalid.WithDetails(reason.String())
}

// IsActive reports whether the identifier currently has a live session.
// Expired sessions encountered here are removed lazily.
func (s *ActivationService) IsActive(ctx context.Context, identifier string) (bool, error) {
	if identifier == "" {
		return false, domain.ErrBadRequest.WithDetails("identifier is required")
	}

	active, err := s.repo.CheckActive(ctx, identifier, s.now())
	if err != nil {
		return false, domain.ErrInternalServer.WithCause(err)
	}
	return active, nil
}

// GetSessionResponse describes a registered session.
type GetSessionResponse struct {
	Identifier  string
	Plan        string
	ActivatedAt int64
	ExpiresAt   int64
	Expired     bool // True when the session exists but has lapsed
}

// GetSession returns the session registered for the identifier, if any.
// Unlike IsActive it does not remove expired sessions; the Expired flag
// reports their state instead.
func (s *ActivationService) GetSession(ctx context.Context, identifier string) (*GetSessionResponse, error) {
	if identifier == "" {
		return nil, domain.ErrBadRequest.WithDetails("identifier is required")
	}

	session, err := s.repo.Get(ctx, identifier)
	if err != nil {
		return nil, err
	}

	return &GetSessionResponse{
		Identifier:  session.Identifier,
		Plan:        session.Plan,
		ActivatedAt: session.ActivatedAt,
		ExpiresAt:   session.ExpiresAt,
		Expired:     session.IsExpiredAt(s.now()),
	}, nil
}

// Deactivate removes the session for the identifier. Removing an absent
// session succeeds (idempotent).
func (s *ActivationService) Deactivate(ctx context.Context, identifier string) error {
	if identifier == "" {
		return domain.ErrBadRequest.WithDetails("identifier is required")
	}

	if err := s.repo.Delete(ctx, identifier); err != nil {
		if domain.IsDomainError(err, "TG-SESS-4040") {
			return nil
		}
		return domain.ErrInternalServer.WithCause(err)
	}
	return nil
}

// SweepExpired removes all expired sessions and returns the count.
// Called periodically by the Sweeper and exposed through the admin API.
func (s *ActivationService) SweepExpired(ctx context.Context) (int, error) {
	removed, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, domain.ErrInternalServer.WithCause(err)
	}

	s.metrics.RecordSweep(removed)
	s.metrics.SetActiveSessions(s.repo.Count())

	return removed, nil
}

// SessionCount returns the current number of registered sessions,
// expired ones included until they are swept.
func (s *ActivationService) SessionCount() int {
	return s.repo.Count()
}
