package processing

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/spacesedan/moodlens/config"
	"github.com/spacesedan/moodlens/internal/analysis"
	"github.com/spacesedan/moodlens/internal/clients"
	"github.com/spacesedan/moodlens/internal/monitoring"
	"github.com/spacesedan/moodlens/internal/sentiment"
)

// Runtime owns the long-lived pieces every entry point needs: the scoring
// policy, the classifier handle and its health flag, and the analyzer.
type Runtime struct {
	Analyzer   *analysis.Analyzer
	Classifier *clients.ClassifierHandle
	Healthy    *atomic.Bool
	settings   config.Settings
}

// LoadPolicy returns the built-in policy unless path names a YAML override.
func LoadPolicy(path string) (*analysis.Policy, error) {
	if path == "" {
		return analysis.DefaultPolicy(), nil
	}
	policy, err := analysis.LoadPolicyFile(path)
	if err != nil {
		return nil, fmt.Errorf("[Runtime] failed to load scoring policy: %w", err)
	}
	slog.Info("[Runtime] Loaded scoring policy", slog.String("path", path))
	return policy, nil
}

// NewRuntime wires the analyzer from settings. Only an unreadable policy is
// fatal; a classifier that can't start leaves the service on the neutral
// profile.
func NewRuntime(s config.Settings) (*Runtime, error) {
	policy, err := LoadPolicy(s.ScoringPolicyPath)
	if err != nil {
		return nil, err
	}
	return newRuntime(s, policy, clients.NewClassifierHandle(s), sentiment.NewVaderAnalyzer()), nil
}

func newRuntime(s config.Settings, policy *analysis.Policy, handle *clients.ClassifierHandle, analyzer analysis.SentimentAnalyzer) *Runtime {
	healthy := &atomic.Bool{}
	healthy.Store(true)

	emotions := analysis.NewEmotionAdapter(handle.Classifier, handle.InitErr, policy, s.ClassifierTimeout,
		analysis.WithHealthFlag(healthy))
	polarity := analysis.NewPolarityAdapter(analyzer, s.SentimentTimeout, s.SentimentFallback)

	return &Runtime{
		Analyzer:   analysis.NewAnalyzer(policy, emotions, polarity),
		Classifier: handle,
		Healthy:    healthy,
		settings:   s,
	}
}

// StartHealthMonitor probes the classifier in the background when the backend
// supports it. It returns immediately.
func (r *Runtime) StartHealthMonitor(ctx context.Context) {
	if r.Classifier.Health == nil {
		return
	}
	go monitoring.MonitorClassifierHealth(ctx, r.Classifier.Health, r.Healthy, r.settings.HealthcheckPeriod)
}

func (r *Runtime) Close() {
	r.Classifier.Close()
}
