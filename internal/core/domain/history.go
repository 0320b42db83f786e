package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("domain: not found")

// HistoryItem records one completed photo-to-playlist session. Owned
// exclusively by the local history store.
type HistoryItem struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Mood         Mood      `json:"mood"`
	PlaylistName string    `json:"playlist_name"`
	Image        []byte    `json:"-"`
	PlaylistURL  string    `json:"playlist_url,omitempty"`
	CoverURL     string    `json:"cover_url,omitempty"`
	Confidence   *float64  `json:"confidence,omitempty"`
}

// NewHistoryItem builds a history item for a freshly created playlist.
func NewHistoryItem(mood Mood, playlistName string, image []byte, playlistURL string, confidence float64) HistoryItem {
	conf := confidence
	return HistoryItem{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		Mood:         mood,
		PlaylistName: playlistName,
		Image:        image,
		PlaylistURL:  playlistURL,
		Confidence:   &conf,
	}
}
