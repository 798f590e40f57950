package monitoring

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubChecker struct {
	healthy atomic.Bool
	calls   atomic.Int32
}

func (s *stubChecker) HealthCheck(context.Context) bool {
	s.calls.Add(1)
	return s.healthy.Load()
}

func TestProbeStoresResult(t *testing.T) {
	checker := &stubChecker{}
	healthy := &atomic.Bool{}
	healthy.Store(true)

	probe(context.Background(), checker, healthy)
	assert.False(t, healthy.Load())

	checker.healthy.Store(true)
	probe(context.Background(), checker, healthy)
	assert.True(t, healthy.Load())
}

func TestMonitorClassifierHealthStopsOnCancel(t *testing.T) {
	checker := &stubChecker{}
	healthy := &atomic.Bool{}
	healthy.Store(true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		MonitorClassifierHealth(ctx, checker, healthy, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return checker.calls.Load() > 0 }, time.Second, 5*time.Millisecond)
	assert.False(t, healthy.Load())

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after cancel")
	}
}
