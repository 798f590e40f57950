package analysis

import (
	"math"

	"github.com/spacesedan/moodlens/internal/models"
)

// ScoreMood rates mood from 0 (very low) to 100 (great). Keyword hits,
// negative polarity, negative emotions, a mostly-neutral profile and any
// stress phrase all push the rating down.
func ScoreMood(policy *Policy, normalized string, emotion models.EmotionProfile, polarity float64) models.MoodAssessment {
	mp := policy.Mood

	keywordScore := Scan(normalized, mp.Lexicon).Weighted(mp.Weights)

	e := emotion.AllEmotions
	negativeEmotion := e["sadness"]*mp.SadnessWeight + e["anger"]*mp.AngerWeight + e["fear"]*mp.FearWeight

	rawLowMood := keywordScore*mp.KeywordFactor + (1-polarity)*mp.PolarityFactor + negativeEmotion*mp.EmotionFactor

	if neutral := e[neutralLabel]; neutral > mp.NeutralThreshold && polarity < mp.NeutralPolarityCeiling {
		rawLowMood += neutral * mp.NeutralFactor
	}

	stressKeys := distinctMatches(normalized, policy.Stress.Lexicon.High, policy.Stress.Lexicon.Medium)
	rawLowMood += float64(stressKeys) * mp.StressKeywordPenalty

	lowMood := clamp(rawLowMood/mp.Divisor, 0, 100)
	score := scoreInt(100 - lowMood)
	band := bandFor(mp.Bands, score)

	return models.MoodAssessment{
		Level:       band.Level,
		Score:       score,
		Explanation: band.Explanation,
		LabelClass:  band.Class,
	}
}

// scoreInt rounds to the nearest integer inside [0, 100].
func scoreInt(v float64) int {
	return int(math.Round(clamp(v, 0, 100)))
}

func bandFor(bands []Band, score int) Band {
	for _, b := range bands {
		if float64(score) >= b.Min {
			return b
		}
	}
	return bands[len(bands)-1]
}
