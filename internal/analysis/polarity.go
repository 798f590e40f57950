package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/spacesedan/moodlens/internal/monitoring"
)

// SentimentAnalyzer is the black-box polarity function. Results are expected
// in [-1, 1].
type SentimentAnalyzer interface {
	Polarity(ctx context.Context, text string) (float64, error)
}

type PolarityAdapter struct {
	analyzer        SentimentAnalyzer
	timeout         time.Duration
	fallbackNeutral bool
}

// NewPolarityAdapter wraps analyzer with a deadline. With fallbackNeutral set,
// a failed call yields polarity 0 instead of ErrSentimentUnavailable.
func NewPolarityAdapter(analyzer SentimentAnalyzer, timeout time.Duration, fallbackNeutral bool) *PolarityAdapter {
	return &PolarityAdapter{
		analyzer:        analyzer,
		timeout:         timeout,
		fallbackNeutral: fallbackNeutral,
	}
}

func (p *PolarityAdapter) Polarity(ctx context.Context, text string) (float64, error) {
	if p.analyzer == nil {
		return p.fail(fmt.Errorf("no sentiment analyzer configured"))
	}

	polarity, err := callWithTimeout(ctx, p.timeout, func(ctx context.Context) (float64, error) {
		return p.analyzer.Polarity(ctx, text)
	})
	if err != nil {
		return p.fail(err)
	}
	if math.IsNaN(polarity) || math.IsInf(polarity, 0) {
		return p.fail(fmt.Errorf("non-finite polarity %v", polarity))
	}

	return clamp(polarity, -1, 1), nil
}

func (p *PolarityAdapter) fail(err error) (float64, error) {
	monitoring.SentimentFailures.Inc()
	if p.fallbackNeutral {
		slog.Warn("[PolarityAdapter] Sentiment call failed, using neutral polarity",
			slog.String("error", err.Error()))
		return 0, nil
	}
	return 0, fmt.Errorf("%w: %w", ErrSentimentUnavailable, err)
}
