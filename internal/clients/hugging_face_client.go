package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/spacesedan/moodlens/internal/models"
)

// HuggingFaceClient calls a hosted emotion classification space.
type HuggingFaceClient struct {
	Client         *http.Client
	endpoint       string
	healthEndpoint string
}

func NewHuggingFaceClient(endpoint, healthEndpoint string, timeout time.Duration) *HuggingFaceClient {
	slog.Info("[HuggingFaceClient] Initializing Client",
		slog.String("endpoint", endpoint),
		slog.Duration("timeout", timeout))

	return &HuggingFaceClient{
		Client:         &http.Client{Timeout: timeout},
		endpoint:       endpoint,
		healthEndpoint: healthEndpoint,
	}
}

func (h *HuggingFaceClient) DoWithRetry(ctx context.Context, build func() (*http.Request, error)) (*http.Response, error) {
	var resp *http.Response
	var err error
	backoff := INITIAL_BACKOFF

	for attempt := 0; attempt < MAX_RETRIES; attempt++ {
		var req *http.Request
		req, err = build()
		if err != nil {
			return nil, err
		}

		resp, err = h.Client.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		if resp != nil {
			resp.Body.Close()
			if err == nil {
				err = fmt.Errorf("status code %d", resp.StatusCode)
			}
		}

		slog.Warn("[HuggingFaceClient] Request failed, will retry",
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, MAX_BACKOFF)
	}

	return nil, err
}

// Classify implements the emotion classifier contract against the space.
func (h *HuggingFaceClient) Classify(ctx context.Context, text string, maxLen int) ([]models.EmotionScore, error) {
	start := time.Now()

	scores, err := h.postJSON(ctx, h.endpoint, models.EmotionClassificationRequest{Inputs: text})
	if err != nil {
		slog.Error("[HuggingFaceClient] Emotion classification request failed",
			slog.Duration("elapsed", time.Since(start)))
		return nil, err
	}

	slog.Debug("[HuggingFaceClient] Emotion classification request successful",
		slog.Int("labels", len(scores)),
		slog.Duration("elapsed", time.Since(start)))
	return scores, nil
}

func (h *HuggingFaceClient) HealthCheck(ctx context.Context) bool {
	if h.healthEndpoint == "" {
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.healthEndpoint, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := h.Client.Do(req)
	if err != nil {
		slog.Warn("[HuggingFaceClient] Health check failed",
			slog.String("error", err.Error()))
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// helper function for posting data to the classification space
func (h *HuggingFaceClient) postJSON(ctx context.Context, endpoint string, input interface{}) ([]models.EmotionScore, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input: %w", err)
	}

	resp, err := h.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", USER_AGENT)
		return req, nil
	})
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed request after retries",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("request failed after retries: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		slog.Error("[HuggingFaceClient] Unexpected status",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
			getPreview(respBody))
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	scores, err := decodeEmotionScores(respBody)
	if err != nil {
		slog.Error("[HuggingFaceClient] Failed to unmarshal response",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()),
			getPreview(respBody),
			slog.Int("raw_response_length", len(respBody)))
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return scores, nil
}

// decodeEmotionScores accepts both the flat label list and the nested
// one-list-per-input shape the inference API returns for single inputs.
func decodeEmotionScores(body []byte) ([]models.EmotionScore, error) {
	var flat models.EmotionClassificationResponse
	flatErr := json.Unmarshal(body, &flat)
	if flatErr == nil {
		return flat, nil
	}

	var nested []models.EmotionClassificationResponse
	if err := json.Unmarshal(body, &nested); err != nil {
		return nil, errors.Join(flatErr, err)
	}
	if len(nested) == 0 {
		return nil, nil
	}
	return nested[0], nil
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}
