package ports

import (
	"context"

	"github.com/emotionplay/emotionplay-server/internal/core/domain"
)

// HistoryRepository owns the ordered list of past sessions.
type HistoryRepository interface {
	Add(ctx context.Context, item domain.HistoryItem) error
	List(ctx context.Context) ([]domain.HistoryItem, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	UpdateCoverURL(ctx context.Context, id, coverURL string) error
}

// JournalRepository stores mood entries and derives recommendation seeds
// from the most recent ones.
type JournalRepository interface {
	AddEntry(ctx context.Context, entry domain.MoodEntry) error
	Entries(ctx context.Context) ([]domain.MoodEntry, error)
	RecentSeedArtists(ctx context.Context, limit int) ([]string, error)
	RecentSeedTracks(ctx context.Context, limit int) ([]string, error)
}

// PreferencesRepository persists the user's preferred genre set.
type PreferencesRepository interface {
	PreferredGenres(ctx context.Context) ([]string, error)
	SetPreferredGenres(ctx context.Context, genres []string) error
}
