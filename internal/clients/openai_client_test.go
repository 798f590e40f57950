package clients

import (
	"testing"

	"github.com/spacesedan/moodlens/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOpenAIEmotionsUsesCanonicalOrder(t *testing.T) {
	content := "```json\n" + `{"emotions":[{"label":"Sadness","score":0.6},{"label":"joy","score":0.1},{"label":"anger","score":1.4},{"label":"boredom","score":0.2}]}` + "\n```"

	scores, err := parseOpenAIEmotions(content)
	require.NoError(t, err)
	assert.Equal(t, []models.EmotionScore{
		{Label: "anger", Score: 1},
		{Label: "joy", Score: 0.1},
		{Label: "sadness", Score: 0.6},
	}, scores)
}

func TestParseOpenAIEmotionsRejectsGarbage(t *testing.T) {
	_, err := parseOpenAIEmotions("I think the user is sad")
	assert.Error(t, err)

	_, err = parseOpenAIEmotions(`{"emotions":[{"label":"boredom","score":1}]}`)
	assert.Error(t, err)
}

func TestNewOpenAIClassifierRequiresKey(t *testing.T) {
	_, err := NewOpenAIClassifier("", "gpt-4o-mini", 0)
	assert.Error(t, err)
}
