package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"

	"github.com/emotionplay/emotionplay-server/internal/core/ports"
)

type callbackResult struct {
	code string
	err  error
}

// LoopbackSession completes the code grant by listening on the redirect
// URI's host for the provider's callback. The listener lives only for the
// duration of one Authenticate call, with ephemeral state, so nothing from a
// prior session can leak in.
type LoopbackSession struct {
	redirectURL string
	logger      *slog.Logger

	// OpenURL presents the authorization URL to the user. Defaults to
	// logging the URL for the user to open manually.
	OpenURL func(url string) error
}

var _ CodeGrantSession = (*LoopbackSession)(nil)

func NewLoopbackSession(redirectURL string, logger *slog.Logger) *LoopbackSession {
	return &LoopbackSession{redirectURL: redirectURL, logger: logger}
}

// Authenticate serves the redirect endpoint, hands the user the
// authorization URL, and waits for the callback carrying the code. A
// cancelled context, a provider error parameter, a missing code, or a state
// mismatch all fail the session.
func (s *LoopbackSession) Authenticate(ctx context.Context, authURL, state string) (string, error) {
	redirect, err := url.Parse(s.redirectURL)
	if err != nil {
		return "", fmt.Errorf("invalid redirect url: %w", err)
	}

	ln, err := net.Listen("tcp", redirect.Host)
	if err != nil {
		return "", fmt.Errorf("open callback listener: %w", err)
	}

	results := make(chan callbackResult, 1)
	mux := http.NewServeMux()
	mux.HandleFunc(redirect.Path, func(w http.ResponseWriter, r *http.Request) {
		res := parseCallback(r, state)
		if res.err != nil {
			http.Error(w, "Authorization failed. You can close this window.", http.StatusBadRequest)
		} else {
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, `<html><body><p>Spotify login successful. You can close this window.</p></body></html>`)
		}
		select {
		case results <- res:
		default:
		}
	})

	srv := &http.Server{Handler: mux}
	go func() {
		if serveErr := srv.Serve(ln); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			select {
			case results <- callbackResult{err: serveErr}:
			default:
			}
		}
	}()
	defer srv.Close()

	if err := s.presentURL(authURL); err != nil {
		return "", fmt.Errorf("present authorization url: %w", err)
	}

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", ports.ErrAuthorizationCancelled, ctx.Err())
	case res := <-results:
		if res.err != nil {
			return "", res.err
		}
		return res.code, nil
	}
}

func (s *LoopbackSession) presentURL(authURL string) error {
	if s.OpenURL != nil {
		return s.OpenURL(authURL)
	}
	s.logger.Info("open this URL to connect Spotify", "url", authURL)
	return nil
}

func parseCallback(r *http.Request, wantState string) callbackResult {
	query := r.URL.Query()

	if e := query.Get("error"); e != "" {
		if e == "access_denied" {
			return callbackResult{err: fmt.Errorf("%w: user denied access", ports.ErrAuthorizationCancelled)}
		}
		return callbackResult{err: fmt.Errorf("authorization error: %s", e)}
	}
	if got := query.Get("state"); got != wantState {
		return callbackResult{err: errors.New("state mismatch in callback")}
	}
	code := query.Get("code")
	if code == "" {
		return callbackResult{err: errors.New("callback missing code parameter")}
	}
	return callbackResult{code: code}
}
