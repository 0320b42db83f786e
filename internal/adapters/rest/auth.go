package rest

import (
	"net/http"

	"github.com/emotionplay/emotionplay-server/internal/core/services"
)

type authStatusResponse struct {
	Authorized bool `json:"authorized"`
}

// Connect handles POST /auth/connect. It runs the full interactive PKCE
// flow and blocks until the user completes or cancels the session.
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	if err := h.authorizer.Authorize(r.Context()); err != nil {
		h.logger.Error("authorization failed", "error", err)
		writeError(w, statusFor(err), services.UserMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, authStatusResponse{Authorized: h.tokens.IsAuthorized()})
}

// AuthStatus handles GET /auth/status.
func (h *Handler) AuthStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, authStatusResponse{Authorized: h.tokens.IsAuthorized()})
}

// Disconnect handles POST /auth/disconnect.
func (h *Handler) Disconnect(w http.ResponseWriter, r *http.Request) {
	h.authorizer.Disconnect()
	writeJSON(w, http.StatusOK, authStatusResponse{Authorized: false})
}
