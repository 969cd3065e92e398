package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/transgate/transgate-go/internal/storage/memory"
	"github.com/transgate/transgate-go/internal/telemetry/logger"
)

func testLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error", Format: "json", Output: io.Discard})
	if err != nil {
		t.Fatalf("logger.New failed: %v", err)
	}
	return log
}

func TestSweeperRemovesExpired(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	svc := NewActivationService(memory.New(), testSecret, WithClock(clock.Now))
	ctx := context.Background()

	tok := mintToken(t, "user-1", "pro", clock.Now().Add(time.Minute))
	if _, err := svc.Activate(ctx, &ActivateRequest{Token: tok}); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}

	clock.Advance(2 * time.Minute)

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	sweeper := NewSweeper(svc, 10*time.Millisecond, testLogger(t))
	go func() {
		sweeper.Run(runCtx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for svc.SessionCount() > 0 {
		select {
		case <-deadline:
			t.Fatal("sweeper did not remove the expired session in time")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on context cancel")
	}
}

func TestNewSweeperDefaultInterval(t *testing.T) {
	svc := NewActivationService(memory.New(), testSecret)

	sweeper := NewSweeper(svc, 0, testLogger(t))
	if sweeper.interval != DefaultSweepInterval {
		t.Errorf("interval = %v; want %v", sweeper.interval, DefaultSweepInterval)
	}
}
