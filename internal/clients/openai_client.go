package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/spacesedan/moodlens/internal/models"
)

const openAIEmotionPrompt = `Classify the emotion expressed in the user's message.
Return a probability for **every** one of these labels: anger, disgust, fear, joy, neutral, sadness, surprise.
Probabilities are numbers between 0 and 1 and should sum to roughly 1.

### **STRICT OUTPUT FORMAT**
You MUST return only **valid JSON**, formatted exactly as follows:
{
  "emotions": [
    {"label": "XXX", "score": 0.0}
  ]
}

- **No Markdown formatting** (no triple backticks, no explanations).
- **No extra text before or after the JSON output**.
`

// OpenAIClassifier asks a chat model for an emotion distribution. Labels are
// returned in a fixed order so ties resolve the same way every time.
type OpenAIClassifier struct {
	Client *openai.Client
	model  string
}

func NewOpenAIClassifier(apiKey, model string, timeout time.Duration) (*OpenAIClassifier, error) {
	if apiKey == "" {
		return nil, errors.New("[OpenAIClassifier] missing OPENAI_API_KEY")
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
	)
	slog.Info("[OpenAIClassifier] OpenAI client initialized",
		slog.String("model", model),
		slog.Duration("timeout", timeout))

	return &OpenAIClassifier{Client: client, model: model}, nil
}

func (o *OpenAIClassifier) Classify(ctx context.Context, text string, maxLen int) ([]models.EmotionScore, error) {
	chatCompletion, err := o.Client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(openAIEmotionPrompt),
			openai.UserMessage(text),
		}),
		Model:       openai.F(openai.ChatModel(o.model)),
		Temperature: openai.Float(0),
	})
	if err != nil {
		return nil, fmt.Errorf("[OpenAIClassifier] completion failed: %w", err)
	}

	if len(chatCompletion.Choices) == 0 || strings.TrimSpace(chatCompletion.Choices[0].Message.Content) == "" {
		return nil, errors.New("[OpenAIClassifier] empty response")
	}

	return parseOpenAIEmotions(chatCompletion.Choices[0].Message.Content)
}

func parseOpenAIEmotions(content string) ([]models.EmotionScore, error) {
	var resp models.OpenAIEmotionResponse
	if err := json.Unmarshal([]byte(cleanOpenAIResponse(content)), &resp); err != nil {
		return nil, fmt.Errorf("[OpenAIClassifier] failed to parse response: %w", err)
	}

	byLabel := make(map[string]float64, len(resp.Emotions))
	for _, e := range resp.Emotions {
		byLabel[strings.ToLower(strings.TrimSpace(e.Label))] = min(max(e.Score, 0), 1)
	}

	scores := make([]models.EmotionScore, 0, len(emotionLabels))
	for _, label := range emotionLabels {
		if score, ok := byLabel[label]; ok {
			scores = append(scores, models.EmotionScore{Label: label, Score: score})
		}
	}
	if len(scores) == 0 {
		return nil, errors.New("[OpenAIClassifier] response contained no known labels")
	}
	return scores, nil
}

// cleanOpenAIResponse strips markdown code fences the model sometimes adds
// despite the prompt.
func cleanOpenAIResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
