package service

import (
	"context"
	"time"

	"github.com/transgate/transgate-go/internal/telemetry/logger"
)

// DefaultSweepInterval is the default period between registry sweeps.
const DefaultSweepInterval = time.Hour

// Sweeper periodically removes expired sessions from the registry.
// Lazy removal on activity checks already keeps reads correct; the
// sweeper bounds memory held by sessions nobody asks about.
type Sweeper struct {
	svc      *ActivationService
	interval time.Duration
	log      logger.Logger
}

// NewSweeper creates a Sweeper. A non-positive interval falls back to
// the default.
func NewSweeper(svc *ActivationService, interval time.Duration, log logger.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		svc:      svc,
		interval: interval,
		log:      log,
	}
}

// Run sweeps on every tick until the context is canceled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("sweeper started", "interval", s.interval.String())

	for {
		select {
		case <-ctx.Done():
			s.log.Info("sweeper stopped")
			return
		case <-ticker.C:
			removed, err := s.svc.SweepExpired(ctx)
			if err != nil {
				s.log.Error("sweep failed", "error", err)
				continue
			}
			if removed > 0 {
				s.log.Info("sweep completed", "removed", removed, "remaining", s.svc.SessionCount())
			}
		}
	}
}
