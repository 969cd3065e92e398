package service

import (
	"context"
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/transgate/transgate-go/internal/core/domain"
	"github.com/transgate/transgate-go/pkg/token"
)

// DefaultTokenTTL is the validity window applied when an issue request
// carries no explicit TTL.
const DefaultTokenTTL = 24 * time.Hour

// IssuerService mints signed activation tokens.
type IssuerService struct {
	secret     []byte
	defaultTTL time.Duration
	now        func() time.Time
}

// IssuerOption configures the IssuerService.
type IssuerOption func(*IssuerService)

// WithIssuerClock overrides the time source. Used in tests.
func WithIssuerClock(now func() time.Time) IssuerOption {
	return func(s *IssuerService) {
		s.now = now
	}
}

// WithDefaultTTL overrides the TTL applied to issue requests that
// carry none.
func WithDefaultTTL(ttl time.Duration) IssuerOption {
	return func(s *IssuerService) {
		if ttl > 0 {
			s.defaultTTL = ttl
		}
	}
}

// NewIssuerService creates a new IssuerService.
func NewIssuerService(secret []byte, opts ...IssuerOption) *IssuerService {
	s := &IssuerService{
		secret:     secret,
		defaultTTL: DefaultTokenTTL,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// IssueRequest contains parameters for token issuance.
type IssueRequest struct {
	Identifier string        // Required
	Plan       string        // Optional subscription tier
	TTL        time.Duration // Optional, defaults to DefaultTokenTTL
}

// IssueResponse contains a freshly minted token.
type IssueResponse struct {
	Token     string // The encoded, signed token
	Nonce     string // The uniqueness nonce embedded in the token
	ExpiresAt int64  // Token expiry (Unix milliseconds)
}

// Issue mints a signed activation token for the identifier.
func (s *IssuerService) Issue(_ context.Context, req *IssueRequest) (*IssueResponse, error) {
	// 1. Validate input
	if req.Identifier == "" {
		return nil, domain.ErrBadRequest.WithDetails("identifier is required")
	}
	if req.TTL < 0 {
		return nil, domain.ErrBadRequest.WithDetails("ttl must not be negative")
	}

	ttl := req.TTL
	if ttl == 0 {
		ttl = s.defaultTTL
	}

	// 2. Generate the nonce
	now := s.now()
	nonce, err := generateNonce(now)
	if err != nil {
		return nil, domain.ErrInternalServer.WithCause(err)
	}

	// 3. Encode and sign
	claims := token.Claims{
		Identifier: req.Identifier,
		Expiry:     now.Add(ttl),
		Plan:       req.Plan,
		Nonce:      nonce,
	}
	encoded, err := token.Encode(claims, s.secret)
	if err != nil {
		return nil, domain.ErrTokenClaims.WithCause(err)
	}

	return &IssueResponse{
		Token:     encoded,
		Nonce:     nonce,
		ExpiresAt: claims.Expiry.UnixMilli(),
	}, nil
}

// generateNonce produces a lowercase ULID for token uniqueness.
func generateNonce(now time.Time) (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(now), entropy)
	if err != nil {
		return "", err
	}
	return strings.ToLower(id.String()), nil
}
