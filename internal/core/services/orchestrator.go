// Package services holds the core orchestration logic: one sequential
// pipeline from photo to mood-matched playlist.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/emotionplay/emotionplay-server/internal/core/domain"
	"github.com/emotionplay/emotionplay-server/internal/core/ports"
)

// ErrNoPhoto indicates a session was started without an image.
var ErrNoPhoto = errors.New("no photo selected")

const defaultTrackLimit = 20

// CoverQueue schedules a background cover-art fetch for a history item.
type CoverQueue interface {
	Submit(historyID, playlistID string)
}

// Orchestrator sequences mood inference, recommendation, playlist creation,
// and history recording. All steps run sequentially; a failure aborts the
// remaining steps and already-created playlists are left as-is.
type Orchestrator struct {
	music      ports.MusicProvider
	inferencer ports.MoodInferencer
	tokens     ports.TokenProvider
	history    ports.HistoryRepository
	journal    ports.JournalRepository
	prefs      ports.PreferencesRepository
	covers     CoverQueue
	logger     *slog.Logger
	trackLimit int
	now        func() time.Time
}

func NewOrchestrator(
	music ports.MusicProvider,
	inferencer ports.MoodInferencer,
	tokens ports.TokenProvider,
	history ports.HistoryRepository,
	journal ports.JournalRepository,
	prefs ports.PreferencesRepository,
	covers CoverQueue,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		music:      music,
		inferencer: inferencer,
		tokens:     tokens,
		history:    history,
		journal:    journal,
		prefs:      prefs,
		covers:     covers,
		logger:     logger,
		trackLimit: defaultTrackLimit,
		now:        time.Now,
	}
}

// SetTrackLimit overrides the default number of tracks requested per playlist.
// Values outside [1, 100] are ignored.
func (o *Orchestrator) SetTrackLimit(limit int) {
	if limit >= 1 && limit <= 100 {
		o.trackLimit = limit
	}
}

// SessionResult is what a completed pipeline hands back to the caller.
type SessionResult struct {
	Mood       domain.Mood     `json:"mood"`
	Confidence float64         `json:"confidence"`
	Playlist   domain.Playlist `json:"playlist"`
	TrackCount int             `json:"track_count"`
	HistoryID  string          `json:"history_id,omitempty"`
}

// AnalyzeAndCreate runs the photo flow: infer mood, recommend tracks seeded
// by the user's preferred genres (mood defaults otherwise), create a private
// playlist, add the tracks, and record the session in history.
func (o *Orchestrator) AnalyzeAndCreate(ctx context.Context, image []byte) (SessionResult, error) {
	if len(image) == 0 {
		return SessionResult{}, fmt.Errorf("service: %w", ErrNoPhoto)
	}
	if !o.tokens.IsAuthorized() {
		return SessionResult{}, fmt.Errorf("service: %w", ports.ErrNotAuthenticated)
	}

	mood, confidence, err := o.inferencer.Infer(ctx, image)
	if err != nil {
		return SessionResult{}, fmt.Errorf("service: mood inference: %w", err)
	}

	genres, err := o.prefs.PreferredGenres(ctx)
	if err != nil {
		// Preferences are a nicety; the mood defaults cover their absence.
		o.logger.Warn("failed to load preferred genres", "error", err)
		genres = nil
	}

	uris, err := o.music.RecommendTrackURIs(ctx, mood, ports.RecommendOptions{
		Genres: genres,
		Limit:  o.trackLimit,
	})
	if err != nil {
		return SessionResult{}, fmt.Errorf("service: recommendations: %w", err)
	}

	name := "EmotionPlay • " + mood.Title()
	description := fmt.Sprintf("Auto-created from your photo mood: %s", mood)
	playlist, err := o.music.CreatePlaylist(ctx, name, description, false)
	if err != nil {
		return SessionResult{}, fmt.Errorf("service: create playlist: %w", err)
	}

	if len(uris) > 0 {
		if err := o.music.AddTracks(ctx, playlist.ID, uris); err != nil {
			// No rollback: the empty playlist stays.
			return SessionResult{}, fmt.Errorf("service: add tracks: %w", err)
		}
	}

	item := domain.NewHistoryItem(mood, name, image, playlist.URL, confidence)
	if err := o.history.Add(ctx, item); err != nil {
		return SessionResult{}, fmt.Errorf("service: record history: %w", err)
	}

	if o.covers != nil {
		o.covers.Submit(item.ID, playlist.ID)
	}

	return SessionResult{
		Mood:       mood,
		Confidence: confidence,
		Playlist:   playlist,
		TrackCount: len(uris),
		HistoryID:  item.ID,
	}, nil
}

// CreateMoodMix runs the journal flow: recommendations seeded by the user's
// recent journal artists and tracks for an explicitly chosen mood. Unlike
// the photo flow, an empty recommendation list fails the mix.
func (o *Orchestrator) CreateMoodMix(ctx context.Context, mood domain.Mood, limit int) (SessionResult, error) {
	if !o.tokens.IsAuthorized() {
		return SessionResult{}, fmt.Errorf("service: %w", ports.ErrNotAuthenticated)
	}
	if limit < 1 {
		limit = o.trackLimit
	}

	seedArtists, err := o.journal.RecentSeedArtists(ctx, 5)
	if err != nil {
		o.logger.Warn("failed to load journal artists", "error", err)
		seedArtists = nil
	}
	seedTracks, err := o.journal.RecentSeedTracks(ctx, 5)
	if err != nil {
		o.logger.Warn("failed to load journal tracks", "error", err)
		seedTracks = nil
	}

	uris, err := o.music.RecommendTrackURIs(ctx, mood, ports.RecommendOptions{
		SeedArtists: seedArtists,
		SeedTracks:  seedTracks,
		Limit:       limit,
	})
	if err != nil {
		return SessionResult{}, fmt.Errorf("service: recommendations: %w", err)
	}
	if len(uris) == 0 {
		return SessionResult{}, fmt.Errorf("service: %w", ports.ErrNoRecommendations)
	}

	name := fmt.Sprintf("Emotion Play – %s %s", mood.Title(), o.now().Format("Jan 2, 2006"))
	description := "A personalized mix based on your recent listens and mood."
	playlist, err := o.music.CreatePlaylist(ctx, name, description, false)
	if err != nil {
		return SessionResult{}, fmt.Errorf("service: create playlist: %w", err)
	}

	if err := o.music.AddTracks(ctx, playlist.ID, uris); err != nil {
		return SessionResult{}, fmt.Errorf("service: add tracks: %w", err)
	}

	return SessionResult{
		Mood:       mood,
		Playlist:   playlist,
		TrackCount: len(uris),
	}, nil
}

// UserMessage reduces any pipeline failure to one short user-facing line.
// The underlying cause is for logs, not users.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoPhoto):
		return "Please select a photo first."
	case errors.Is(err, ports.ErrRateLimited):
		return "Rate limited. Please wait a moment and try again."
	case errors.Is(err, ports.ErrAuthenticationRequired), errors.Is(err, ports.ErrNotAuthenticated):
		return "Please connect Spotify to create a playlist."
	case errors.Is(err, ports.ErrAuthorizationCancelled):
		return "Spotify login was cancelled."
	case errors.Is(err, ports.ErrNoRecommendations):
		return "Couldn't find tracks for this mood. Please try again."
	default:
		return "Couldn't create your mix. Please try again."
	}
}
