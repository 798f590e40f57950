package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"I can't sleep", "i cant sleep"},
		{"I can’t   go on!!", "i cant go on"},
		{"Fed-up,\nreally.", "fed up really"},
		{"  ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeText(tt.in), "input %q", tt.in)
	}
}

func TestCountMatches(t *testing.T) {
	text := NormalizeText("I feel hopeless and empty, I can't go on")
	assert.Equal(t, 3, CountMatches(text, []string{"hopeless", "empty", "cant go on", "numb"}))
	assert.Equal(t, 0, CountMatches(text, nil))
	assert.Equal(t, 0, CountMatches(text, []string{""}))
}

func TestScanMoodLexicon(t *testing.T) {
	policy := DefaultPolicy()
	tally := Scan(NormalizeText("I feel hopeless and empty, I can't go on"), policy.Mood.Lexicon)
	assert.Equal(t, KeywordTally{High: 0, Medium: 3, Low: 0}, tally)
	assert.Equal(t, 120.0, tally.Weighted(policy.Mood.Weights))
}

func TestScanStressLexicon(t *testing.T) {
	policy := DefaultPolicy()
	tally := Scan(NormalizeText("I'm so overwhelmed with the amount of work"), policy.Stress.Lexicon)
	assert.Equal(t, KeywordTally{High: 1, Medium: 1, Low: 0}, tally)
	assert.Equal(t, 95.0, tally.Weighted(policy.Stress.Weights))
}

func TestDistinctMatchesCountsSharedPhraseOnce(t *testing.T) {
	n := distinctMatches("under pressure", []string{"pressure"}, []string{"pressure", "tense"})
	assert.Equal(t, 1, n)
}
