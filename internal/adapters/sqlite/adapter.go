// Package sqlite provides the SQLite-backed implementation of the history,
// journal, and preferences repository ports.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3" // driver

	"github.com/emotionplay/emotionplay-server/internal/core/domain"
	"github.com/emotionplay/emotionplay-server/internal/core/ports"
)

// Adapter implements the repository ports over one SQLite database.
type Adapter struct {
	db *sql.DB
}

var (
	_ ports.HistoryRepository     = (*Adapter)(nil)
	_ ports.JournalRepository     = (*Adapter)(nil)
	_ ports.PreferencesRepository = (*Adapter)(nil)
)

// NewAdapter opens the database and runs the schema migration.
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}
	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return adapter, nil
}

// Close ensures the DB connection is closed gracefully.
func (a *Adapter) Close() error {
	return a.db.Close()
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS history (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		mood TEXT NOT NULL,
		playlist_name TEXT NOT NULL,
		image BLOB,
		playlist_url TEXT,
		cover_url TEXT,
		confidence REAL
	);

	CREATE TABLE IF NOT EXISTS journal (
		id TEXT PRIMARY KEY,
		entry_date DATETIME NOT NULL,
		mood TEXT NOT NULL,
		song_title TEXT NOT NULL,
		song_artist TEXT NOT NULL,
		notes TEXT
	);

	CREATE TABLE IF NOT EXISTS preferences (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}

	// Seed default preferred genres on first run.
	_, err := a.db.Exec(
		`INSERT INTO preferences (name, value) VALUES ('preferred_genres', 'pop,hip-hop,rock')
		 ON CONFLICT(name) DO NOTHING`)
	return err
}

// --- History ---

func (a *Adapter) Add(ctx context.Context, item domain.HistoryItem) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO history (id, created_at, mood, playlist_name, image, playlist_url, cover_url, confidence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.CreatedAt,
		string(item.Mood),
		item.PlaylistName,
		item.Image,
		nullString(item.PlaylistURL),
		nullString(item.CoverURL),
		nullFloat(item.Confidence),
	)
	if err != nil {
		return fmt.Errorf("failed to save history item: %w", err)
	}
	return nil
}

// List returns history items newest-first.
func (a *Adapter) List(ctx context.Context) ([]domain.HistoryItem, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, created_at, mood, playlist_name, image, playlist_url, cover_url, confidence
		FROM history
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	items := []domain.HistoryItem{}
	for rows.Next() {
		var item domain.HistoryItem
		var mood string
		var playlistURL, coverURL sql.NullString
		var confidence sql.NullFloat64
		if err := rows.Scan(
			&item.ID,
			&item.CreatedAt,
			&mood,
			&item.PlaylistName,
			&item.Image,
			&playlistURL,
			&coverURL,
			&confidence,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history item: %w", err)
		}
		item.Mood = domain.Mood(mood)
		if playlistURL.Valid {
			item.PlaylistURL = playlistURL.String
		}
		if coverURL.Valid {
			item.CoverURL = coverURL.String
		}
		if confidence.Valid {
			c := confidence.Float64
			item.Confidence = &c
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}
	return items, nil
}

func (a *Adapter) Rename(ctx context.Context, id, name string) error {
	res, err := a.db.ExecContext(ctx, "UPDATE history SET playlist_name = ? WHERE id = ?", name, id)
	if err != nil {
		return fmt.Errorf("failed to rename history item: %w", err)
	}
	return requireRow(res)
}

func (a *Adapter) Delete(ctx context.Context, id string) error {
	res, err := a.db.ExecContext(ctx, "DELETE FROM history WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete history item: %w", err)
	}
	return requireRow(res)
}

func (a *Adapter) Clear(ctx context.Context) error {
	if _, err := a.db.ExecContext(ctx, "DELETE FROM history"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func (a *Adapter) UpdateCoverURL(ctx context.Context, id, coverURL string) error {
	res, err := a.db.ExecContext(ctx, "UPDATE history SET cover_url = ? WHERE id = ?", coverURL, id)
	if err != nil {
		return fmt.Errorf("failed to update cover url: %w", err)
	}
	return requireRow(res)
}

// --- Journal ---

func (a *Adapter) AddEntry(ctx context.Context, entry domain.MoodEntry) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO journal (id, entry_date, mood, song_title, song_artist, notes)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.EntryDate,
		string(entry.Mood),
		entry.Song.Title,
		entry.Song.Artist,
		nullString(entry.Notes),
	)
	if err != nil {
		return fmt.Errorf("failed to save journal entry: %w", err)
	}
	return nil
}

func (a *Adapter) Entries(ctx context.Context) ([]domain.MoodEntry, error) {
	return a.queryEntries(ctx, `
		SELECT id, entry_date, mood, song_title, song_artist, notes
		FROM journal
		ORDER BY entry_date DESC`)
}

// RecentSeedArtists returns unique artists from the last ten entries.
func (a *Adapter) RecentSeedArtists(ctx context.Context, limit int) ([]string, error) {
	entries, err := a.recentEntries(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var artists []string
	for _, e := range entries {
		if _, ok := seen[e.Song.Artist]; ok {
			continue
		}
		seen[e.Song.Artist] = struct{}{}
		artists = append(artists, e.Song.Artist)
		if len(artists) >= limit {
			break
		}
	}
	return artists, nil
}

// RecentSeedTracks returns "Title – Artist" labels from the last ten entries.
func (a *Adapter) RecentSeedTracks(ctx context.Context, limit int) ([]string, error) {
	entries, err := a.recentEntries(ctx)
	if err != nil {
		return nil, err
	}

	var labels []string
	for _, e := range entries {
		labels = append(labels, e.Song.Label())
		if len(labels) >= limit {
			break
		}
	}
	return labels, nil
}

func (a *Adapter) recentEntries(ctx context.Context) ([]domain.MoodEntry, error) {
	return a.queryEntries(ctx, `
		SELECT id, entry_date, mood, song_title, song_artist, notes
		FROM journal
		ORDER BY entry_date DESC
		LIMIT 10`)
}

func (a *Adapter) queryEntries(ctx context.Context, query string) ([]domain.MoodEntry, error) {
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.MoodEntry{}
	for rows.Next() {
		var entry domain.MoodEntry
		var mood string
		var notes sql.NullString
		if err := rows.Scan(
			&entry.ID,
			&entry.EntryDate,
			&mood,
			&entry.Song.Title,
			&entry.Song.Artist,
			&notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entry.Mood = domain.Mood(mood)
		if notes.Valid {
			entry.Notes = notes.String
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal entries: %w", err)
	}
	return entries, nil
}

// --- Preferences ---

func (a *Adapter) PreferredGenres(ctx context.Context) ([]string, error) {
	row := a.db.QueryRowContext(ctx, "SELECT value FROM preferences WHERE name = 'preferred_genres'")
	var value string
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to load preferred genres: %w", err)
	}
	if strings.TrimSpace(value) == "" {
		return []string{}, nil
	}
	return strings.Split(value, ","), nil
}

func (a *Adapter) SetPreferredGenres(ctx context.Context, genres []string) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO preferences (name, value) VALUES ('preferred_genres', ?)
		ON CONFLICT(name) DO UPDATE SET value=excluded.value`,
		strings.Join(genres, ","),
	)
	if err != nil {
		return fmt.Errorf("failed to save preferred genres: %w", err)
	}
	return nil
}

// --- helpers ---

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
