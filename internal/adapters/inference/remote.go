// Package inference provides mood inference adapters. The remote client
// sends the photo to a hosted image classification model and maps the top
// label to a mood; the local client is a deterministic offline stand-in.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/emotionplay/emotionplay-server/internal/core/domain"
)

const (
	defaultBaseURL = "https://api-inference.huggingface.co"
	defaultModelID = "microsoft/resnet-50"

	// Hosted models answer 503 while loading; one retry after a short wait
	// covers the warm-up window.
	warmupDelay    = time.Second
	requestTimeout = 45 * time.Second
)

// ErrInvalidImage indicates the input bytes cannot be classified.
var ErrInvalidImage = errors.New("inference: invalid image data")

type prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// RemoteClient classifies photos via the hosted inference API.
type RemoteClient struct {
	baseURL    string
	modelID    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewRemoteClient(baseURL, modelID, apiKey string, logger *slog.Logger) *RemoteClient {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if modelID == "" {
		modelID = defaultModelID
	}
	return &RemoteClient{
		baseURL: baseURL,
		modelID: modelID,
		apiKey:  strings.TrimSpace(apiKey),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger: logger,
	}
}

// Infer posts the raw image bytes to the model and maps the highest-scoring
// label to a mood. An unparseable success body degrades to (calm, 0.5)
// rather than failing the session.
func (c *RemoteClient) Infer(ctx context.Context, image []byte) (domain.Mood, float64, error) {
	if len(image) == 0 {
		return "", 0, ErrInvalidImage
	}

	body, err := c.fetchWithWarmupRetry(ctx, image)
	if err != nil {
		return "", 0, err
	}

	var preds []prediction
	if jsonErr := json.Unmarshal(body, &preds); jsonErr != nil || len(preds) == 0 {
		c.logger.Warn("unexpected inference body, defaulting to calm", "body", truncate(string(body), 200))
		return domain.MoodCalm, 0.5, nil
	}

	best := preds[0]
	for _, p := range preds[1:] {
		if p.Score > best.Score {
			best = p
		}
	}

	mood, confidence := mapLabelToMood(best.Label, best.Score)
	return mood, confidence, nil
}

// fetchWithWarmupRetry posts the image, retrying exactly once after a 503.
func (c *RemoteClient) fetchWithWarmupRetry(ctx context.Context, image []byte) ([]byte, error) {
	body, status, err := c.post(ctx, image)
	if err != nil {
		return nil, err
	}
	if status == http.StatusServiceUnavailable {
		c.logger.Info("inference model warming, retrying once", "delay", warmupDelay)
		if err := sleepWithContext(ctx, warmupDelay); err != nil {
			return nil, err
		}
		body, status, err = c.post(ctx, image)
		if err != nil {
			return nil, err
		}
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("inference: http %d: %s", status, truncate(string(body), 200))
	}
	return body, nil
}

func (c *RemoteClient) post(ctx context.Context, image []byte) ([]byte, int, error) {
	url := fmt.Sprintf("%s/models/%s", c.baseURL, c.modelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(image))
	if err != nil {
		return nil, 0, fmt.Errorf("inference: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("inference: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("inference: read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

// mapLabelToMood keyword-matches a classifier label onto the mood set. The
// mapping is heuristic; anger is softened toward energetic with reduced
// confidence.
func mapLabelToMood(raw string, score float64) (domain.Mood, float64) {
	l := strings.ToLower(raw)
	switch {
	case containsAny(l, "smile", "joy", "happy"):
		return domain.MoodHappy, score
	case containsAny(l, "sad", "sorrow"):
		return domain.MoodSad, score
	case containsAny(l, "angry", "anger", "mad"):
		return domain.MoodEnergetic, max(0.3, score*0.7)
	case containsAny(l, "surprise", "excite"):
		return domain.MoodEnergetic, score
	default:
		return domain.MoodCalm, score
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func sleepWithContext(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("inference: request canceled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
