package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emotionplay/emotionplay-server/internal/adapters/sqlite"
	"github.com/emotionplay/emotionplay-server/internal/core/domain"
)

func newTestAdapter(t *testing.T) *sqlite.Adapter {
	t.Helper()
	adapter, err := sqlite.NewAdapter(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = adapter.Close() })
	return adapter
}

func TestHistoryLifecycle(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(t)

	older := domain.NewHistoryItem(domain.MoodSad, "Old Mix", []byte{1}, "https://p/old", 0.4)
	older.CreatedAt = time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	newer := domain.NewHistoryItem(domain.MoodHappy, "New Mix", []byte{2}, "https://p/new", 0.9)
	newer.CreatedAt = time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, adapter.Add(ctx, older))
	require.NoError(t, adapter.Add(ctx, newer))

	items, err := adapter.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "New Mix", items[0].PlaylistName, "list must be newest first")
	assert.Equal(t, "Old Mix", items[1].PlaylistName)
	assert.Equal(t, domain.MoodHappy, items[0].Mood)
	require.NotNil(t, items[0].Confidence)
	assert.InDelta(t, 0.9, *items[0].Confidence, 1e-9)

	require.NoError(t, adapter.Rename(ctx, older.ID, "Renamed"))
	require.NoError(t, adapter.UpdateCoverURL(ctx, older.ID, "https://img/cover"))

	items, err = adapter.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", items[1].PlaylistName)
	assert.Equal(t, "https://img/cover", items[1].CoverURL)

	require.NoError(t, adapter.Delete(ctx, newer.ID))
	items, err = adapter.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, adapter.Clear(ctx))
	items, err = adapter.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestHistory_UnknownIDs(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(t)

	assert.ErrorIs(t, adapter.Rename(ctx, "missing", "x"), domain.ErrNotFound)
	assert.ErrorIs(t, adapter.Delete(ctx, "missing"), domain.ErrNotFound)
	assert.ErrorIs(t, adapter.UpdateCoverURL(ctx, "missing", "url"), domain.ErrNotFound)
}

func TestPreferredGenres_SeededDefaults(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(t)

	genres, err := adapter.PreferredGenres(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"pop", "hip-hop", "rock"}, genres)

	require.NoError(t, adapter.SetPreferredGenres(ctx, []string{"jazz", "soul"}))
	genres, err = adapter.PreferredGenres(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"jazz", "soul"}, genres)
}

func TestJournal_EntriesAndSeeds(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	songs := []domain.Song{
		{Title: "Song A", Artist: "Artist One"},
		{Title: "Song B", Artist: "Artist Two"},
		{Title: "Song C", Artist: "Artist One"}, // repeat artist
	}
	for i, song := range songs {
		entry := domain.NewMoodEntry(base.Add(time.Duration(i)*time.Hour), domain.MoodCalm, song, "")
		require.NoError(t, adapter.AddEntry(ctx, entry))
	}

	entries, err := adapter.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Song C", entries[0].Song.Title, "entries must be newest first")

	artists, err := adapter.RecentSeedArtists(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"Artist One", "Artist Two"}, artists, "artists deduped, newest first")

	artists, err = adapter.RecentSeedArtists(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Artist One"}, artists)

	tracks, err := adapter.RecentSeedTracks(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Song C – Artist One", "Song B – Artist Two"}, tracks)
}
