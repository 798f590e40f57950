package clients

import (
	"fmt"
	"log/slog"

	"github.com/spacesedan/moodlens/config"
	"github.com/spacesedan/moodlens/internal/analysis"
	"github.com/spacesedan/moodlens/internal/monitoring"
)

// ClassifierHandle is the process-wide emotion classifier. InitErr captures
// a failed start so callers degrade to the neutral profile instead of
// refusing to boot.
type ClassifierHandle struct {
	Classifier analysis.EmotionClassifier
	Health     monitoring.HealthChecker
	InitErr    error
	closeFn    func() error
}

func (h *ClassifierHandle) Close() {
	if h.closeFn == nil {
		return
	}
	if err := h.closeFn(); err != nil {
		slog.Warn("[Classifier] Failed to release classifier",
			slog.String("error", err.Error()))
	}
}

func NewClassifierHandle(s config.Settings) *ClassifierHandle {
	handle := &ClassifierHandle{}

	switch s.ClassifierBackend {
	case config.ClassifierBackendHuggingFace:
		hf := NewHuggingFaceClient(s.HFEmotionEndpoint, s.HFHealthEndpoint, s.ClassifierTimeout)
		handle.Classifier = hf
		handle.Health = hf
	case config.ClassifierBackendHugot:
		hc, err := NewHugotClassifier(s.HugotModelDir, s.HugotModelName)
		if err != nil {
			handle.InitErr = err
			break
		}
		handle.Classifier = hc
		handle.closeFn = hc.Close
	case config.ClassifierBackendOpenAI:
		oc, err := NewOpenAIClassifier(s.OpenAIAPIKey, s.OpenAIModel, s.ClassifierTimeout)
		if err != nil {
			handle.InitErr = err
			break
		}
		handle.Classifier = oc
	case config.ClassifierBackendNone:
	default:
		handle.InitErr = fmt.Errorf("unknown classifier backend %q", s.ClassifierBackend)
	}

	if handle.InitErr != nil {
		slog.Error("[Classifier] Emotion classifier unavailable, every request will use the neutral profile",
			slog.String("backend", s.ClassifierBackend),
			slog.String("error", handle.InitErr.Error()))
	} else {
		slog.Info("[Classifier] Emotion classifier ready",
			slog.String("backend", s.ClassifierBackend))
	}

	return handle
}
