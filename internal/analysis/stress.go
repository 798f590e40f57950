package analysis

import "github.com/spacesedan/moodlens/internal/models"

// ScoreStress rates stress from 0 (calm) to 100 (high stress).
func ScoreStress(policy *Policy, normalized string, emotion models.EmotionProfile, polarity float64) models.StressAssessment {
	sp := policy.Stress

	keywordScore := Scan(normalized, sp.Lexicon).Weighted(sp.Weights)

	e := emotion.AllEmotions
	penalty := (1 - polarity) * sp.PolarityPenalty
	rawStress := keywordScore +
		e["fear"]*sp.FearWeight +
		e["anger"]*sp.AngerWeight +
		e["surprise"]*sp.SurpriseWeight +
		penalty

	score := scoreInt(rawStress / sp.Divisor)
	band := bandFor(sp.Bands, score)

	return models.StressAssessment{
		Level:       band.Level,
		Score:       score,
		Explanation: band.Explanation,
	}
}
