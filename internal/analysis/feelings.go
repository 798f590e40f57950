package analysis

import (
	"maps"

	"github.com/spacesedan/moodlens/internal/models"
)

// RefineFeelings derives the display feeling cloud from a profile. The
// dominant emotion gets one secondary label picked by the first branch whose
// triggers appear in the text. When DropBaseEmotions is set the base keys are
// removed afterwards whether or not they were dominant. The input profile is
// left untouched.
func RefineFeelings(policy *Policy, profile models.EmotionProfile, normalized string) map[string]float64 {
	feelings := maps.Clone(profile.AllEmotions)
	if feelings == nil {
		feelings = make(map[string]float64)
	}

	for _, rule := range policy.Feelings.Rules {
		if rule.Emotion != profile.Dominant {
			continue
		}
		base := profile.AllEmotions[rule.Emotion]
		for _, branch := range rule.Branches {
			if len(branch.Triggers) == 0 || containsAny(normalized, branch.Triggers) {
				feelings[branch.Label] = round1(base * branch.Factor)
				break
			}
		}
		break
	}

	if policy.Feelings.DropBaseEmotions {
		for _, key := range policy.Feelings.BaseEmotions {
			delete(feelings, key)
		}
	}

	return feelings
}
