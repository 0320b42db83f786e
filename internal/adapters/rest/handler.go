// Package rest exposes the orchestrator and local stores over HTTP.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/emotionplay/emotionplay-server/internal/core/domain"
	"github.com/emotionplay/emotionplay-server/internal/core/ports"
	"github.com/emotionplay/emotionplay-server/internal/core/services"
)

// Handler manages the HTTP interface for the application.
type Handler struct {
	svc        *services.Orchestrator
	authorizer ports.Authorizer
	tokens     ports.TokenProvider
	history    ports.HistoryRepository
	journal    ports.JournalRepository
	prefs      ports.PreferencesRepository
	logger     *slog.Logger
	router     *http.ServeMux
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(
	svc *services.Orchestrator,
	authorizer ports.Authorizer,
	tokens ports.TokenProvider,
	history ports.HistoryRepository,
	journal ports.JournalRepository,
	prefs ports.PreferencesRepository,
	logger *slog.Logger,
) *Handler {
	h := &Handler{
		svc:        svc,
		authorizer: authorizer,
		tokens:     tokens,
		history:    history,
		journal:    journal,
		prefs:      prefs,
		logger:     logger,
		router:     http.NewServeMux(),
	}
	h.routes()
	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.router.HandleFunc("GET /health", h.HealthCheck)

	h.router.HandleFunc("POST /auth/connect", h.Connect)
	h.router.HandleFunc("GET /auth/status", h.AuthStatus)
	h.router.HandleFunc("POST /auth/disconnect", h.Disconnect)

	h.router.HandleFunc("POST /sessions", h.CreateSession)
	h.router.HandleFunc("POST /mixes", h.CreateMix)

	h.router.HandleFunc("GET /history", h.ListHistory)
	h.router.HandleFunc("PATCH /history/{id}", h.RenameHistory)
	h.router.HandleFunc("DELETE /history/{id}", h.DeleteHistory)
	h.router.HandleFunc("DELETE /history", h.ClearHistory)

	h.router.HandleFunc("GET /preferences/genres", h.GetGenres)
	h.router.HandleFunc("PUT /preferences/genres", h.PutGenres)

	h.router.HandleFunc("GET /journal", h.ListJournal)
	h.router.HandleFunc("POST /journal", h.AddJournalEntry)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writePipelineError renders one short user-facing message and logs the
// underlying cause for diagnostics.
func (h *Handler) writePipelineError(w http.ResponseWriter, err error) {
	h.logger.Error("pipeline failed", "error", err)
	writeError(w, statusFor(err), services.UserMessage(err))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNoPhoto):
		return http.StatusBadRequest
	case errors.Is(err, ports.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ports.ErrNotAuthenticated),
		errors.Is(err, ports.ErrAuthenticationRequired),
		errors.Is(err, ports.ErrAuthorizationCancelled):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ports.ErrNoRecommendations):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
