package models

type AnalysisRequestMessage struct {
	RequestID string `json:"request_id"`
	Text      string `json:"text"`
}

type AnalysisResultMessage struct {
	RequestID string          `json:"request_id"`
	Result    *AnalysisResult `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
}
