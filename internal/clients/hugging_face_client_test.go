package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spacesedan/moodlens/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHuggingFaceClassifyFlatResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.EmotionClassificationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "I had a great day", req.Inputs)
		w.Write([]byte(`[{"label":"joy","score":0.9},{"label":"neutral","score":0.1}]`))
	}))
	defer srv.Close()

	hf := NewHuggingFaceClient(srv.URL, "", time.Second)
	scores, err := hf.Classify(context.Background(), "I had a great day", 1000)
	require.NoError(t, err)
	assert.Equal(t, []models.EmotionScore{{Label: "joy", Score: 0.9}, {Label: "neutral", Score: 0.1}}, scores)
}

func TestHuggingFaceClassifyNestedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[[{"label":"sadness","score":0.7},{"label":"fear","score":0.3}]]`))
	}))
	defer srv.Close()

	scores, err := NewHuggingFaceClient(srv.URL, "", time.Second).Classify(context.Background(), "text", 1000)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, "sadness", scores[0].Label)
}

func TestHuggingFaceClassifyRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[{"label":"neutral","score":1}]`))
	}))
	defer srv.Close()

	scores, err := NewHuggingFaceClient(srv.URL, "", time.Second).Classify(context.Background(), "text", 1000)
	require.NoError(t, err)
	assert.Len(t, scores, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHuggingFaceClassifyClientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	_, err := NewHuggingFaceClient(srv.URL, "", time.Second).Classify(context.Background(), "text", 1000)
	assert.Error(t, err)
}

func TestHuggingFaceClassifyStopsOnCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewHuggingFaceClient(srv.URL, "", time.Second).Classify(ctx, "text", 1000)
	assert.Error(t, err)
}

func TestHuggingFaceHealthCheck(t *testing.T) {
	var healthy atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	hf := NewHuggingFaceClient("", srv.URL, time.Second)
	assert.False(t, hf.HealthCheck(context.Background()))

	healthy.Store(true)
	assert.True(t, hf.HealthCheck(context.Background()))

	assert.True(t, NewHuggingFaceClient("", "", time.Second).HealthCheck(context.Background()))
}
