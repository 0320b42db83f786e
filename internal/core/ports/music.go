package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/emotionplay/emotionplay-server/internal/core/domain"
)

// ErrRateLimited indicates the music provider responded with HTTP 429. No
// automatic retry is performed; callers present a retry-later message.
var ErrRateLimited = errors.New("rate limited")

// ErrNoRecommendations indicates the provider returned an empty track list.
var ErrNoRecommendations = errors.New("no recommendations returned")

// StatusError carries the status code and response body of a music provider
// response outside 200-299.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("spotify http %d: %s", e.Status, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrRateLimited && e.Status == 429
}

// RecommendOptions biases a recommendation request. Genres win when present;
// otherwise artist/track seeds are resolved best-effort, and the mood's
// default genres serve as the last resort.
type RecommendOptions struct {
	Genres      []string
	SeedArtists []string
	SeedTracks  []string // "Title – Artist" labels
	Limit       int
}

// MusicProvider is the streaming service surface the orchestrator needs.
type MusicProvider interface {
	RecommendTrackURIs(ctx context.Context, mood domain.Mood, opts RecommendOptions) ([]string, error)
	CreatePlaylist(ctx context.Context, name, description string, public bool) (domain.Playlist, error)
	AddTracks(ctx context.Context, playlistID string, uris []string) error
	PlaylistCoverURL(ctx context.Context, playlistID string) (string, error)
}
