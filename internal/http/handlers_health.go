package httpx

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// HealthChecker reports the health of one dependency.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthCheckerFunc adapts a function to the HealthChecker interface.
type HealthCheckerFunc func(ctx context.Context) error

// Health implements the HealthChecker interface.
func (f HealthCheckerFunc) Health(ctx context.Context) error {
	return f(ctx)
}

const healthCheckTimeout = 5 * time.Second

// HealthHandlers provides the liveness endpoint.
type HealthHandlers struct {
	// Checks maps a dependency name to its checker.
	Checks map[string]HealthChecker
}

// Health handles liveness probes. Dependencies are checked concurrently;
// any failure yields 503 with per-dependency status.
func (h *HealthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	var mu sync.Mutex
	status := make(map[string]string, len(h.Checks))

	g, gctx := errgroup.WithContext(ctx)
	for name, check := range h.Checks {
		g.Go(func() error {
			err := check.Health(gctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				status[name] = err.Error()
				return err
			}
			status[name] = "ok"
			return nil
		})
	}

	code := http.StatusOK
	if err := g.Wait(); err != nil {
		code = http.StatusServiceUnavailable
	}

	WriteJSON(w, code, status)
}
