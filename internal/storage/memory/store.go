package memory

import (
	"context"
	"time"

	"github.com/transgate/transgate-go/internal/core/domain"
	"github.com/transgate/transgate-go/pkg/cmap"
)

// Store provides in-memory session storage keyed by identifier.
type Store struct {
	sessions *cmap.Map[string, *domain.Session]
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		sessions: cmap.New[string, *domain.Session](),
	}
}

// Upsert stores a session, unconditionally replacing any existing
// session under the same identifier.
func (s *Store) Upsert(_ context.Context, session *domain.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	// Clone to prevent external modification
	s.sessions.Set(session.Identifier, session.Clone())

	return nil
}

// Get retrieves a session by identifier without expiry side effects.
// Expired sessions are still returned; callers decide how to treat them.
func (s *Store) Get(_ context.Context, identifier string) (*domain.Session, error) {
	session, ok := s.sessions.Get(identifier)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	return session.Clone(), nil
}

// CheckActive reports whether the identifier has a live session at the
// given instant. An expired session found during the check is removed
// atomically before reporting false.
func (s *Store) CheckActive(_ context.Context, identifier string, now time.Time) (bool, error) {
	session, ok := s.sessions.Get(identifier)
	if !ok {
		return false, nil
	}

	if !session.IsExpiredAt(now) {
		return true, nil
	}

	// Lazy removal. The predicate re-checks under the shard lock so a
	// concurrent re-activation with a fresh expiry is never discarded.
	s.sessions.DeleteIf(identifier, func(current *domain.Session) bool {
		return current.IsExpiredAt(now)
	})

	return false, nil
}

// Delete removes a session by identifier.
func (s *Store) Delete(_ context.Context, identifier string) error {
	if _, ok := s.sessions.Pop(identifier); !ok {
		return domain.ErrSessionNotFound
	}
	return nil
}

// DeleteExpired removes all sessions expired at the given instant and
// returns the count.
func (s *Store) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	var candidates []string

	s.sessions.Range(func(id string, session *domain.Session) bool {
		if session.IsExpiredAt(now) {
			candidates = append(candidates, id)
		}
		return true
	})

	removed := 0
	for _, id := range candidates {
		// Re-check under the shard lock; the session may have been
		// replaced since the scan.
		if _, deleted := s.sessions.DeleteIf(id, func(current *domain.Session) bool {
			return current.IsExpiredAt(now)
		}); deleted {
			removed++
		}
	}

	return removed, nil
}

// Count returns the total number of stored sessions, expired included.
func (s *Store) Count() int {
	return s.sessions.Count()
}

// All returns clones of all stored sessions.
func (s *Store) All() []*domain.Session {
	sessions := make([]*domain.Session, 0, s.sessions.Count())
	s.sessions.Range(func(_ string, session *domain.Session) bool {
		sessions = append(sessions, session.Clone())
		return true
	})
	return sessions
}
