package analysis

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/spacesedan/moodlens/internal/models"
)

type stubClassifier struct {
	scores []models.EmotionScore
	err    error
	delay  time.Duration
	calls  atomic.Int32
	seen   atomic.Value
}

func (s *stubClassifier) Classify(ctx context.Context, text string, maxLen int) ([]models.EmotionScore, error) {
	s.calls.Add(1)
	s.seen.Store(text)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.scores, s.err
}

type stubSentiment struct {
	polarity float64
	err      error
	delay    time.Duration
}

func (s *stubSentiment) Polarity(ctx context.Context, text string) (float64, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.polarity, s.err
}

func newTestAnalyzer(classifier EmotionClassifier, polarity float64) *Analyzer {
	policy := DefaultPolicy()
	return NewAnalyzer(
		policy,
		NewEmotionAdapter(classifier, nil, policy, time.Second),
		NewPolarityAdapter(&stubSentiment{polarity: polarity}, time.Second, false),
	)
}

func neutralEmotion() models.EmotionProfile {
	return models.EmotionProfile{Dominant: "neutral", AllEmotions: map[string]float64{"neutral": 100}}
}
