package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const HEALTHCHECK_INTERVAL = 15 * time.Second

// HealthChecker is implemented by classifier backends that can be probed.
type HealthChecker interface {
	HealthCheck(ctx context.Context) bool
}

// MonitorClassifierHealth probes checker on every tick and stores the result
// in healthy until ctx is cancelled.
func MonitorClassifierHealth(ctx context.Context, checker HealthChecker, healthy *atomic.Bool, interval time.Duration) {
	if interval <= 0 {
		interval = HEALTHCHECK_INTERVAL
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probe(ctx, checker, healthy)
		}
	}
}

func probe(ctx context.Context, checker HealthChecker, healthy *atomic.Bool) {
	isHealthy := checker.HealthCheck(ctx)
	wasHealthy := healthy.Swap(isHealthy)

	switch {
	case !isHealthy && wasHealthy:
		slog.Warn("[HealthCheck] Emotion classifier is unhealthy")
	case isHealthy && !wasHealthy:
		slog.Info("[HealthCheck] Emotion classifier recovered")
	}
}
