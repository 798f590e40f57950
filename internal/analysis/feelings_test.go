package analysis

import (
	"testing"

	"github.com/spacesedan/moodlens/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRefineFeelings(t *testing.T) {
	sadness := models.EmotionProfile{
		Dominant:    "sadness",
		AllEmotions: map[string]float64{"sadness": 60, "joy": 10, "neutral": 30},
	}
	anger := models.EmotionProfile{
		Dominant:    "anger",
		AllEmotions: map[string]float64{"anger": 40, "fear": 20, "surprise": 5},
	}

	tests := []struct {
		name    string
		profile models.EmotionProfile
		text    string
		want    map[string]float64
	}{
		{"lonely", sadness, "I feel so lonely", map[string]float64{"lonely": 54, "neutral": 30}},
		{"disappointed", sadness, "I'm fed up with it", map[string]float64{"disappointed": 54, "neutral": 30}},
		{"despair", sadness, "everything is grey", map[string]float64{"despair": 42, "neutral": 30}},
		{"frustrated", anger, "my roommate keeps annoying me", map[string]float64{"frustrated": 38, "surprise": 5}},
		{"mad", anger, "this is unfair", map[string]float64{"mad": 32, "surprise": 5}},
	}

	policy := DefaultPolicy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RefineFeelings(policy, tt.profile, NormalizeText(tt.text))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRefineFeelingsDropsBaseKeysForOtherDominants(t *testing.T) {
	profile := models.EmotionProfile{
		Dominant:    "neutral",
		AllEmotions: map[string]float64{"neutral": 70, "joy": 20, "fear": 10},
	}

	got := RefineFeelings(DefaultPolicy(), profile, "just a normal day")
	assert.Equal(t, map[string]float64{"neutral": 70}, got)
}

func TestRefineFeelingsCanKeepBaseKeys(t *testing.T) {
	policy := DefaultPolicy()
	policy.Feelings.DropBaseEmotions = false
	profile := models.EmotionProfile{
		Dominant:    "joy",
		AllEmotions: map[string]float64{"joy": 80, "neutral": 20},
	}

	got := RefineFeelings(policy, profile, "im excited for the trip")
	assert.Equal(t, map[string]float64{"joy": 80, "neutral": 20, "optimistic": 76}, got)
}

func TestRefineFeelingsLeavesInputUntouched(t *testing.T) {
	profile := models.EmotionProfile{
		Dominant:    "fear",
		AllEmotions: map[string]float64{"fear": 50, "neutral": 50},
	}

	RefineFeelings(DefaultPolicy(), profile, "im scared of the dark")
	assert.Equal(t, map[string]float64{"fear": 50, "neutral": 50}, profile.AllEmotions)
}
