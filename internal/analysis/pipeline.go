package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spacesedan/moodlens/internal/models"
	"github.com/spacesedan/moodlens/internal/monitoring"
)

// Analyzer runs the affect-scoring pipeline. It is safe for concurrent use;
// every call builds its own intermediate values.
type Analyzer struct {
	policy   *Policy
	emotions *EmotionAdapter
	polarity *PolarityAdapter
}

func NewAnalyzer(policy *Policy, emotions *EmotionAdapter, polarity *PolarityAdapter) *Analyzer {
	return &Analyzer{
		policy:   policy,
		emotions: emotions,
		polarity: polarity,
	}
}

func (a *Analyzer) Policy() *Policy {
	return a.policy
}

// Analyze scores text. On error the returned result is the zero value.
func (a *Analyzer) Analyze(ctx context.Context, text string) (models.AnalysisResult, error) {
	start := time.Now()

	result, err := a.analyze(ctx, text)
	monitoring.AnalysisDuration.Observe(time.Since(start).Seconds())
	monitoring.AnalysesTotal.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		return models.AnalysisResult{}, err
	}

	monitoring.MoodLevels.WithLabelValues(result.Mood.Level).Inc()
	monitoring.StressLevels.WithLabelValues(result.Stress.Level).Inc()

	slog.Debug("[Analyzer] Analysis complete",
		slog.Int("text_length", len(result.Text)),
		slog.String("mood_level", result.Mood.Level),
		slog.Int("mood_score", result.Mood.Score),
		slog.String("stress_level", result.Stress.Level),
		slog.Int("stress_score", result.Stress.Score),
		slog.String("dominant_emotion", result.Emotion.Dominant),
		slog.Duration("elapsed", time.Since(start)))

	return result, nil
}

func (a *Analyzer) analyze(ctx context.Context, text string) (models.AnalysisResult, error) {
	text = strings.TrimSpace(text)
	if err := a.ValidateInput(text); err != nil {
		return models.AnalysisResult{}, err
	}

	normalized := NormalizeText(text)
	profile := a.emotions.Profile(ctx, text, normalized)

	polarity, err := a.polarity.Polarity(ctx, text)
	if err != nil {
		return models.AnalysisResult{}, err
	}

	mood := ScoreMood(a.policy, normalized, profile, polarity)
	stress := ScoreStress(a.policy, normalized, profile, polarity)

	return models.AnalysisResult{
		Text:   text,
		Mood:   mood,
		Stress: stress,
		Emotion: models.EmotionProfile{
			Dominant:    profile.Dominant,
			AllEmotions: RefineFeelings(a.policy, profile, normalized),
		},
		Recommendations: Recommend(a.policy, mood, stress),
	}, nil
}

// ValidateInput rejects empty text and text shorter than the policy minimum.
// Length is measured in characters after trimming.
func (a *Analyzer) ValidateInput(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	if n := utf8.RuneCountInString(text); n < a.policy.MinInputLength {
		return fmt.Errorf("%w: text must be at least %d characters", ErrInvalidInput, a.policy.MinInputLength)
	}
	return nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrSentimentUnavailable):
		return "sentiment_unavailable"
	default:
		return "internal_error"
	}
}
