package analysis

import "github.com/spacesedan/moodlens/internal/models"

// Recommend walks the rule table in priority order. Guards are independent;
// the check-in message is used only when nothing else fired. The result holds
// no duplicates and at most Limit entries.
func Recommend(policy *Policy, mood models.MoodAssessment, stress models.StressAssessment) []string {
	rp := policy.Recommendations
	m, s := mood.Score, stress.Score

	var recs []string
	if m <= rp.CrisisMoodMax {
		recs = append(recs, rp.Messages.Crisis)
	}
	if s >= rp.GroundingStressMin {
		recs = append(recs, rp.Messages.Grounding)
	}
	if s >= rp.WorkloadStressMin && m >= rp.WorkloadMoodMin && m < rp.WorkloadMoodMax {
		recs = append(recs, rp.Messages.Workload)
	}
	if m > rp.TalkMoodMin && m <= rp.TalkMoodMax {
		recs = append(recs, rp.Messages.Talk)
	}
	if s >= rp.WalkStressMin && s < rp.WalkStressMax {
		recs = append(recs, rp.Messages.Walk)
	}
	if m >= rp.PositiveMoodMin && s < rp.PositiveStressMax {
		recs = append(recs, rp.Messages.Positive)
	}
	if len(recs) == 0 {
		recs = append(recs, rp.Messages.CheckIn)
	}

	return dedupeAndCap(recs, rp.Limit)
}

func dedupeAndCap(recs []string, limit int) []string {
	limit = min(max(limit, 0), MaxRecommendations)
	seen := make(map[string]struct{}, len(recs))
	out := make([]string, 0, limit)
	for _, r := range recs {
		if len(out) == limit {
			break
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
