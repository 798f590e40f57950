package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"sync/atomic"
	"time"

	"github.com/spacesedan/moodlens/internal/models"
	"github.com/spacesedan/moodlens/internal/monitoring"
)

const neutralLabel = "neutral"

// EmotionClassifier is the black-box text-emotion model. Scores are
// probabilities in [0, 1], returned in the model's label order.
type EmotionClassifier interface {
	Classify(ctx context.Context, text string, maxLen int) ([]models.EmotionScore, error)
}

// EmotionAdapter turns text into an EmotionProfile. It never fails: any
// classifier problem degrades to the neutral profile.
type EmotionAdapter struct {
	classifier EmotionClassifier
	initErr    error
	policy     *Policy
	timeout    time.Duration
	healthy    *atomic.Bool
}

type EmotionAdapterOption func(*EmotionAdapter)

// WithHealthFlag skips the classifier while healthy reports false.
func WithHealthFlag(healthy *atomic.Bool) EmotionAdapterOption {
	return func(a *EmotionAdapter) {
		a.healthy = healthy
	}
}

// NewEmotionAdapter keeps initErr so a classifier that failed to start is
// reported once per request as a fallback instead of crashing the process.
func NewEmotionAdapter(classifier EmotionClassifier, initErr error, policy *Policy, timeout time.Duration, opts ...EmotionAdapterOption) *EmotionAdapter {
	a := &EmotionAdapter{
		classifier: classifier,
		initErr:    initErr,
		policy:     policy,
		timeout:    timeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Profile classifies text. normalized must be NormalizeText(text).
func (a *EmotionAdapter) Profile(ctx context.Context, text, normalized string) models.EmotionProfile {
	if containsAny(normalized, a.policy.Override.Triggers) {
		return models.EmotionProfile{
			Dominant:    a.policy.Override.Dominant,
			AllEmotions: maps.Clone(a.policy.Override.Profile),
		}
	}

	scores, err := a.classify(ctx, truncateRunes(text, a.policy.ClassifierMaxLength))
	if err != nil {
		reason := "error"
		if errors.Is(err, context.DeadlineExceeded) {
			reason = "timeout"
		}
		monitoring.ClassifierFallbacks.WithLabelValues(reason).Inc()
		slog.Warn("[EmotionAdapter] Classifier unavailable, using neutral profile",
			slog.String("reason", reason),
			slog.String("error", err.Error()))
		return neutralProfile()
	}

	return profileFromScores(scores)
}

func (a *EmotionAdapter) classify(ctx context.Context, text string) ([]models.EmotionScore, error) {
	switch {
	case a.initErr != nil:
		return nil, fmt.Errorf("%w: %w", ErrClassifierUnavailable, a.initErr)
	case a.classifier == nil:
		return nil, fmt.Errorf("%w: no classifier configured", ErrClassifierUnavailable)
	case a.healthy != nil && !a.healthy.Load():
		return nil, fmt.Errorf("%w: health check failing", ErrClassifierUnavailable)
	}

	start := time.Now()
	scores, err := callWithTimeout(ctx, a.timeout, func(ctx context.Context) ([]models.EmotionScore, error) {
		return a.classifier.Classify(ctx, text, a.policy.ClassifierMaxLength)
	})
	monitoring.ClassifierLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClassifierUnavailable, err)
	}
	if len(scores) == 0 {
		return nil, fmt.Errorf("%w: empty classifier output", ErrClassifierUnavailable)
	}
	for _, s := range scores {
		if math.IsNaN(s.Score) || math.IsInf(s.Score, 0) {
			return nil, fmt.Errorf("%w: non-finite score for %q", ErrClassifierUnavailable, s.Label)
		}
	}

	return scores, nil
}

// profileFromScores converts probabilities to percentages. The dominant label
// is the first one, in classifier order, holding the greatest score.
func profileFromScores(scores []models.EmotionScore) models.EmotionProfile {
	profile := models.EmotionProfile{
		AllEmotions: make(map[string]float64, len(scores)),
	}

	best := math.Inf(-1)
	for _, s := range scores {
		pct := round1(clamp(s.Score*100, 0, math.MaxFloat64))
		profile.AllEmotions[s.Label] = pct
		if pct > best {
			best = pct
			profile.Dominant = s.Label
		}
	}

	return profile
}

func neutralProfile() models.EmotionProfile {
	return models.EmotionProfile{
		Dominant:    neutralLabel,
		AllEmotions: map[string]float64{neutralLabel: 100.0},
	}
}

func truncateRunes(text string, n int) string {
	if n <= 0 {
		return text
	}
	count := 0
	for i := range text {
		if count == n {
			return text[:i]
		}
		count++
	}
	return text
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
