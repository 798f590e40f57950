package models

// EmotionScore is one label emitted by an emotion classifier. Score is a
// probability in [0, 1].
type EmotionScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type EmotionProfile struct {
	Dominant    string             `json:"dominant"`
	AllEmotions map[string]float64 `json:"all_emotions"`
}

type MoodAssessment struct {
	Level       string `json:"level"`
	Score       int    `json:"score"`
	Explanation string `json:"explanation"`
	LabelClass  string `json:"label_class"`
}

type StressAssessment struct {
	Level       string `json:"level"`
	Score       int    `json:"score"`
	Explanation string `json:"explanation"`
}

// AnalysisResult is the only value handed back across the service boundary.
type AnalysisResult struct {
	Text            string           `json:"text"`
	Mood            MoodAssessment   `json:"mood"`
	Stress          StressAssessment `json:"stress"`
	Emotion         EmotionProfile   `json:"emotion"`
	Recommendations []string         `json:"recommendations"`
}

type AnalyzeRequest struct {
	Text string `json:"text"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}
