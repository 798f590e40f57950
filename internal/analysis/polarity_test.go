package analysis

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolarityPassesThrough(t *testing.T) {
	p := NewPolarityAdapter(&stubSentiment{polarity: -0.3}, time.Second, false)
	got, err := p.Polarity(context.Background(), "meh")
	require.NoError(t, err)
	assert.Equal(t, -0.3, got)
}

func TestPolarityIsClamped(t *testing.T) {
	p := NewPolarityAdapter(&stubSentiment{polarity: 1.7}, time.Second, false)
	got, err := p.Polarity(context.Background(), "great")
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
}

func TestPolarityFailurePropagates(t *testing.T) {
	tests := []struct {
		name    string
		adapter *PolarityAdapter
	}{
		{"error", NewPolarityAdapter(&stubSentiment{err: errors.New("down")}, time.Second, false)},
		{"timeout", NewPolarityAdapter(&stubSentiment{delay: 200 * time.Millisecond}, 10*time.Millisecond, false)},
		{"nil analyzer", NewPolarityAdapter(nil, time.Second, false)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.adapter.Polarity(context.Background(), "some text here")
			assert.ErrorIs(t, err, ErrSentimentUnavailable)
		})
	}
}

func TestPolarityNeutralFallback(t *testing.T) {
	p := NewPolarityAdapter(&stubSentiment{err: errors.New("down")}, time.Second, true)
	got, err := p.Polarity(context.Background(), "some text here")
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestPolarityRejectsNonFiniteValues(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := NewPolarityAdapter(&stubSentiment{polarity: v}, time.Second, false).Polarity(context.Background(), "meh")
		assert.ErrorIs(t, err, ErrSentimentUnavailable)

		got, err := NewPolarityAdapter(&stubSentiment{polarity: v}, time.Second, true).Polarity(context.Background(), "meh")
		require.NoError(t, err)
		assert.Equal(t, 0.0, got)
	}
}

func TestAnalyzeNaNPolarityNeverReachesScores(t *testing.T) {
	policy := DefaultPolicy()
	a := NewAnalyzer(policy,
		NewEmotionAdapter(nil, nil, policy, time.Second),
		NewPolarityAdapter(&stubSentiment{polarity: math.NaN()}, time.Second, false))

	_, err := a.Analyze(context.Background(), "just a normal day at work")
	assert.ErrorIs(t, err, ErrSentimentUnavailable)
}
