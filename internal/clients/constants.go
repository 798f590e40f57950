package clients

import "time"

const (
	MAX_RETRIES     = 3
	INITIAL_BACKOFF = 250 * time.Millisecond
	MAX_BACKOFF     = 2 * time.Second
	USER_AGENT      = "moodlens-client/1.0 (+https://github.com/spacesedan/moodlens)"
)

// emotionLabels is the label set of the emotion model, in the order the
// model card lists them. Backends that don't return an order use this one.
var emotionLabels = []string{"anger", "disgust", "fear", "joy", "neutral", "sadness", "surprise"}
