package rest

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/emotionplay/emotionplay-server/internal/core/domain"
)

// maxPhotoBytes caps uploaded photo size at 10 MB.
const maxPhotoBytes = 10 << 20

// CreateSession handles POST /sessions. The request body is the raw photo
// bytes; the response is the full pipeline result.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	image, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPhotoBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "photo too large")
		return
	}

	result, err := h.svc.AnalyzeAndCreate(r.Context(), image)
	if err != nil {
		h.writePipelineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

type createMixRequest struct {
	Mood  string `json:"mood"`
	Limit int    `json:"limit"`
}

// CreateMix handles POST /mixes: a journal-seeded mix for a chosen mood.
func (h *Handler) CreateMix(w http.ResponseWriter, r *http.Request) {
	var req createMixRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mood, err := domain.ParseMood(req.Mood)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown mood")
		return
	}

	result, err := h.svc.CreateMoodMix(r.Context(), mood, req.Limit)
	if err != nil {
		h.writePipelineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}
