package ports

import (
	"context"

	"github.com/emotionplay/emotionplay-server/internal/core/domain"
)

// MoodInferencer classifies a photo into a mood with a 0..1 confidence.
// Implementations are interchangeable (remote model, deterministic local).
type MoodInferencer interface {
	Infer(ctx context.Context, image []byte) (domain.Mood, float64, error)
}
