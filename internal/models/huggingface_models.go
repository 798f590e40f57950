package models

type EmotionClassificationRequest struct {
	Inputs string `json:"inputs"`
}

// EmotionClassificationResponse mirrors the text-classification output of the
// inference space when all scores are requested.
type EmotionClassificationResponse []EmotionScore
