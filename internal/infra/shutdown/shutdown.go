package shutdown

import (
	"context"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"
	"time"
)

// Hook releases one resource during shutdown. The context carries the
// overall shutdown deadline.
type Hook func(context.Context) error

// Handler collects hooks and runs them once a termination signal
// arrives.
type Handler struct {
	timeout time.Duration
	done    chan struct{}

	mu    sync.Mutex
	hooks []Hook
}

// NewHandler creates a Handler whose hooks share the given deadline.
func NewHandler(timeout time.Duration) *Handler {
	return &Handler{
		timeout: timeout,
		done:    make(chan struct{}),
	}
}

// OnShutdown registers a hook. Hooks run in reverse registration
// order, so dependents registered later are torn down first.
func (h *Handler) OnShutdown(hook Hook) {
	h.mu.Lock()
	h.hooks = append(h.hooks, hook)
	h.mu.Unlock()
}

// Wait blocks until SIGINT or SIGTERM, then runs every hook and
// returns the last hook error, if any.
func (h *Handler) Wait() error {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	h.mu.Lock()
	hooks := slices.Clone(h.hooks)
	h.mu.Unlock()

	var lastErr error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil {
			lastErr = err
		}
	}

	close(h.done)
	return lastErr
}

// Done closes once all hooks have run.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}
