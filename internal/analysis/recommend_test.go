package analysis

import (
	"testing"

	"github.com/spacesedan/moodlens/internal/models"
	"github.com/stretchr/testify/assert"
)

func recommendFor(policy *Policy, mood, stress int) []string {
	return Recommend(policy, models.MoodAssessment{Score: mood}, models.StressAssessment{Score: stress})
}

func TestRecommend(t *testing.T) {
	policy := DefaultPolicy()
	msg := policy.Recommendations.Messages

	tests := []struct {
		name   string
		mood   int
		stress int
		want   []string
	}{
		{"crisis and grounding", 10, 75, []string{msg.Crisis, msg.Grounding}},
		{"crisis boundary", 15, 0, []string{msg.Crisis}},
		{"talk boundary", 16, 0, []string{msg.Talk}},
		{"talk and walk", 30, 45, []string{msg.Talk, msg.Walk}},
		{"workload and walk", 45, 60, []string{msg.Workload, msg.Walk}},
		{"grounding and workload", 50, 70, []string{msg.Grounding, msg.Workload}},
		{"positive", 80, 20, []string{msg.Positive}},
		{"check in", 50, 20, []string{msg.CheckIn}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recommendFor(policy, tt.mood, tt.stress))
		})
	}
}

func TestRecommendDedupesAndCaps(t *testing.T) {
	policy := DefaultPolicy()
	rp := &policy.Recommendations
	rp.CrisisMoodMax = 100
	rp.TalkMoodMin = -1
	rp.TalkMoodMax = 100
	rp.PositiveMoodMin = 0
	rp.PositiveStressMax = 100
	rp.GroundingStressMin = 0
	rp.Messages.Grounding = rp.Messages.Crisis

	got := recommendFor(policy, 50, 50)

	assert.Equal(t, []string{rp.Messages.Crisis, rp.Messages.Workload, rp.Messages.Talk}, got)
}

func TestRecommendInvariants(t *testing.T) {
	policy := DefaultPolicy()
	for mood := 0; mood <= 100; mood += 5 {
		for stress := 0; stress <= 100; stress += 5 {
			recs := recommendFor(policy, mood, stress)
			assert.NotEmpty(t, recs)
			assert.LessOrEqual(t, len(recs), 3)

			seen := map[string]bool{}
			for _, r := range recs {
				assert.False(t, seen[r], "duplicate %q at mood=%d stress=%d", r, mood, stress)
				seen[r] = true
			}
		}
	}
}

func TestRecommendNeverExceedsThree(t *testing.T) {
	policy := DefaultPolicy()
	rp := &policy.Recommendations
	rp.Limit = 5
	rp.CrisisMoodMax = 100
	rp.TalkMoodMin = -1
	rp.TalkMoodMax = 100
	rp.PositiveMoodMin = 0
	rp.PositiveStressMax = 100
	rp.GroundingStressMin = 0

	got := recommendFor(policy, 50, 50)

	assert.Len(t, got, MaxRecommendations)
}
