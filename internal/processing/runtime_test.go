package processing

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spacesedan/moodlens/config"
	"github.com/spacesedan/moodlens/internal/analysis"
	"github.com/spacesedan/moodlens/internal/clients"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type zeroSentiment struct{}

func (zeroSentiment) Polarity(context.Context, string) (float64, error) { return 0, nil }

func TestLoadPolicyDefaults(t *testing.T) {
	policy, err := LoadPolicy("")
	require.NoError(t, err)
	assert.Equal(t, analysis.DefaultPolicy(), policy)
}

func TestLoadPolicyFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("min_input_length: 3\n"), 0o600))

	policy, err := LoadPolicy(path)
	require.NoError(t, err)
	assert.Equal(t, 3, policy.MinInputLength)

	_, err = LoadPolicy(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRuntimeWithoutClassifierUsesNeutralProfile(t *testing.T) {
	s := config.Settings{
		ClassifierBackend: config.ClassifierBackendNone,
		ClassifierTimeout: time.Second,
		SentimentTimeout:  time.Second,
	}
	rt := newRuntime(s, analysis.DefaultPolicy(), clients.NewClassifierHandle(s), zeroSentiment{})
	defer rt.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rt.StartHealthMonitor(ctx)

	assert.True(t, rt.Healthy.Load())

	result, err := rt.Analyzer.Analyze(ctx, "Today was an ordinary day at the office")
	require.NoError(t, err)
	assert.Equal(t, "neutral", result.Emotion.Dominant)
	assert.Equal(t, map[string]float64{"neutral": 100}, result.Emotion.AllEmotions)
}
