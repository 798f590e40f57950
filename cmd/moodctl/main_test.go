package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spacesedan/moodlens/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runMoodctl(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := runMoodctl(t, "", "--backend", "none", "analyze", "I", "feel", "hopeless", "and", "empty")
	require.NoError(t, err)

	var result models.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "I feel hopeless and empty", result.Text)
	assert.Equal(t, "neutral", result.Emotion.Dominant)
	assert.NotEmpty(t, result.Recommendations)
}

func TestAnalyzeCommandReadsStdin(t *testing.T) {
	out, err := runMoodctl(t, "  Work has been busy but manageable lately \n", "--backend", "none", "analyze")
	require.NoError(t, err)

	var result models.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "Work has been busy but manageable lately", result.Text)
}

func TestAnalyzeCommandRejectsShortText(t *testing.T) {
	_, err := runMoodctl(t, "", "--backend", "none", "analyze", "meh")
	assert.ErrorContains(t, err, "invalid input")
}

func TestPolicyCommand(t *testing.T) {
	out, err := runMoodctl(t, "", "policy")
	require.NoError(t, err)
	assert.Contains(t, out, "min_input_length: 10")
	assert.Contains(t, out, "GREAT MOOD")
}
