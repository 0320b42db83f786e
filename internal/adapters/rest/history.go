package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/emotionplay/emotionplay-server/internal/core/domain"
)

// ListHistory handles GET /history, newest first.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	items, err := h.history.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list history", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type renameHistoryRequest struct {
	Name string `json:"name"`
}

// RenameHistory handles PATCH /history/{id}.
func (h *Handler) RenameHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req renameHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := h.history.Rename(r.Context(), id, req.Name); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "history item not found")
			return
		}
		h.logger.Error("failed to rename history item", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to rename history item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteHistory handles DELETE /history/{id}.
func (h *Handler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.history.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "history item not found")
			return
		}
		h.logger.Error("failed to delete history item", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete history item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearHistory handles DELETE /history.
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.history.Clear(r.Context()); err != nil {
		h.logger.Error("failed to clear history", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear history")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
