package models

type OpenAIEmotionResponse struct {
	Emotions []EmotionScore `json:"emotions"`
}
