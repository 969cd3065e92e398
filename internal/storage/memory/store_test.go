package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/transgate/transgate-go/internal/core/domain"
)

func testSession(identifier string, expiresAt time.Time) *domain.Session {
	return domain.NewSession(identifier, "pro", expiresAt, expiresAt.Add(-time.Hour))
}

func TestUpsertAndGet(t *testing.T) {
	store := New()
	ctx := context.Background()
	now := time.Now()

	session := testSession("user-1", now.Add(time.Hour))
	if err := store.Upsert(ctx, session); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, err := store.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Identifier != "user-1" || got.Plan != "pro" {
		t.Errorf("Get returned %+v", got)
	}

	// Returned session is a clone.
	got.Plan = "free"
	again, _ := store.Get(ctx, "user-1")
	if again.Plan != "pro" {
		t.Error("mutating returned session affected the store")
	}
}

func TestUpsertReplacesExisting(t *testing.T) {
	store := New()
	ctx := context.Background()
	now := time.Now()

	first := testSession("user-1", now.Add(time.Minute))
	second := domain.NewSession("user-1", "enterprise", now.Add(time.Hour), now)

	if err := store.Upsert(ctx, first); err != nil {
		t.Fatalf("first Upsert failed: %v", err)
	}
	if err := store.Upsert(ctx, second); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	got, err := store.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Plan != "enterprise" {
		t.Errorf("Plan = %q; want %q", got.Plan, "enterprise")
	}
	if got.ExpiresAt != second.ExpiresAt {
		t.Errorf("ExpiresAt = %d; want %d", got.ExpiresAt, second.ExpiresAt)
	}
	if store.Count() != 1 {
		t.Errorf("Count = %d; want 1", store.Count())
	}
}

func TestUpsertValidation(t *testing.T) {
	store := New()
	ctx := context.Background()

	err := store.Upsert(ctx, &domain.Session{Plan: "pro"})
	if !domain.IsDomainError(err, "TG-SESS-4001") {
		t.Errorf("Upsert error = %v; want TG-SESS-4001", err)
	}
}

func TestGetNotFound(t *testing.T) {
	store := New()

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("Get error = %v; want ErrSessionNotFound", err)
	}
}

func TestGetDoesNotRemoveExpired(t *testing.T) {
	store := New()
	ctx := context.Background()
	now := time.Now()

	store.Upsert(ctx, testSession("user-1", now.Add(-time.Minute)))

	got, err := store.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !got.IsExpiredAt(now) {
		t.Error("expected expired session")
	}
	if store.Count() != 1 {
		t.Error("Get removed the expired session")
	}
}

func TestCheckActive(t *testing.T) {
	store := New()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	store.Upsert(ctx, testSession("user-1", now.Add(time.Hour)))

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"before expiry", now, true},
		{"one second before expiry", now.Add(time.Hour - time.Second), true},
		{"exactly at expiry", now.Add(time.Hour), false},
		{"after expiry", now.Add(2 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Refresh: expired checks below remove the session.
			store.Upsert(ctx, testSession("user-1", now.Add(time.Hour)))

			got, err := store.CheckActive(ctx, "user-1", tt.at)
			if err != nil {
				t.Fatalf("CheckActive failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("CheckActive at %v = %v; want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestCheckActiveLazyRemoval(t *testing.T) {
	store := New()
	ctx := context.Background()
	now := time.Now()

	store.Upsert(ctx, testSession("user-1", now.Add(-time.Minute)))

	active, err := store.CheckActive(ctx, "user-1", now)
	if err != nil {
		t.Fatalf("CheckActive failed: %v", err)
	}
	if active {
		t.Error("expired session reported active")
	}
	if store.Count() != 0 {
		t.Error("expired session not removed after CheckActive")
	}
}

func TestCheckActiveUnknownIdentifier(t *testing.T) {
	store := New()

	active, err := store.CheckActive(context.Background(), "missing", time.Now())
	if err != nil {
		t.Fatalf("CheckActive failed: %v", err)
	}
	if active {
		t.Error("unknown identifier reported active")
	}
}

func TestDelete(t *testing.T) {
	store := New()
	ctx := context.Background()

	store.Upsert(ctx, testSession("user-1", time.Now().Add(time.Hour)))

	if err := store.Delete(ctx, "user-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, "user-1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("second Delete error = %v; want ErrSessionNotFound", err)
	}
}

func TestDeleteExpired(t *testing.T) {
	store := New()
	ctx := context.Background()
	now := time.Now()

	store.Upsert(ctx, testSession("expired-1", now.Add(-time.Hour)))
	store.Upsert(ctx, testSession("expired-2", now.Add(-time.Minute)))
	store.Upsert(ctx, testSession("live-1", now.Add(time.Hour)))

	removed, err := store.DeleteExpired(ctx, now)
	if err != nil {
		t.Fatalf("DeleteExpired failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("DeleteExpired removed %d; want 2", removed)
	}
	if store.Count() != 1 {
		t.Errorf("Count = %d; want 1", store.Count())
	}
	if _, err := store.Get(ctx, "live-1"); err != nil {
		t.Errorf("live session missing after sweep: %v", err)
	}
}

func TestDeleteExpiredEmpty(t *testing.T) {
	store := New()

	removed, err := store.DeleteExpired(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("DeleteExpired failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("DeleteExpired removed %d; want 0", removed)
	}
}

func TestAll(t *testing.T) {
	store := New()
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < 5; i++ {
		store.Upsert(ctx, testSession(fmt.Sprintf("user-%d", i), now.Add(time.Hour)))
	}

	all := store.All()
	if len(all) != 5 {
		t.Errorf("All returned %d sessions; want 5", len(all))
	}
}

func TestConcurrentActivation(t *testing.T) {
	store := New()
	ctx := context.Background()
	now := time.Now()

	var wg sync.WaitGroup
	const workers = 8
	const perWorker = 100

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id := fmt.Sprintf("user-%d", i%20)
				store.Upsert(ctx, testSession(id, now.Add(time.Hour)))
				store.CheckActive(ctx, id, now)
				store.Get(ctx, id)
			}
		}(w)
	}
	wg.Wait()

	if got := store.Count(); got != 20 {
		t.Errorf("Count = %d; want 20", got)
	}
}
