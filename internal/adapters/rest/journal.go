package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/emotionplay/emotionplay-server/internal/core/domain"
)

// ListJournal handles GET /journal.
func (h *Handler) ListJournal(w http.ResponseWriter, r *http.Request) {
	entries, err := h.journal.Entries(r.Context())
	if err != nil {
		h.logger.Error("failed to list journal", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load journal")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

type addEntryRequest struct {
	Mood       string `json:"mood"`
	SongTitle  string `json:"song_title"`
	SongArtist string `json:"song_artist"`
	Notes      string `json:"notes"`
}

// AddJournalEntry handles POST /journal.
func (h *Handler) AddJournalEntry(w http.ResponseWriter, r *http.Request) {
	var req addEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mood, err := domain.ParseMood(req.Mood)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown mood")
		return
	}
	if req.SongTitle == "" || req.SongArtist == "" {
		writeError(w, http.StatusBadRequest, "song title and artist are required")
		return
	}

	entry := domain.NewMoodEntry(time.Now().UTC(), mood, domain.Song{
		Title:  req.SongTitle,
		Artist: req.SongArtist,
	}, req.Notes)

	if err := h.journal.AddEntry(r.Context(), entry); err != nil {
		h.logger.Error("failed to save journal entry", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save journal entry")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

type genresPayload struct {
	Genres []string `json:"genres"`
}

// GetGenres handles GET /preferences/genres.
func (h *Handler) GetGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.prefs.PreferredGenres(r.Context())
	if err != nil {
		h.logger.Error("failed to load preferred genres", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load preferences")
		return
	}
	writeJSON(w, http.StatusOK, genresPayload{Genres: genres})
}

// PutGenres handles PUT /preferences/genres.
func (h *Handler) PutGenres(w http.ResponseWriter, r *http.Request) {
	var req genresPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.prefs.SetPreferredGenres(r.Context(), req.Genres); err != nil {
		h.logger.Error("failed to save preferred genres", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save preferences")
		return
	}
	writeJSON(w, http.StatusOK, req)
}
