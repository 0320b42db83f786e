package inference

import (
	"context"
	"hash/fnv"
	"math/rand"

	"github.com/emotionplay/emotionplay-server/internal/core/domain"
)

// LocalClient is a deterministic offline inferencer for keyless and
// development setups: the same photo always yields the same mood.
type LocalClient struct{}

func NewLocalClient() *LocalClient {
	return &LocalClient{}
}

func (c *LocalClient) Infer(_ context.Context, image []byte) (domain.Mood, float64, error) {
	if len(image) == 0 {
		return "", 0, ErrInvalidImage
	}

	hasher := fnv.New32a()
	_, _ = hasher.Write(image)
	// #nosec G404 -- deterministic RNG for reproducible dev output, not security-sensitive
	rng := rand.New(rand.NewSource(int64(hasher.Sum32())))

	mood := domain.Moods[rng.Intn(len(domain.Moods))]
	confidence := 0.5 + rng.Float64()*0.4
	return mood, confidence, nil
}
