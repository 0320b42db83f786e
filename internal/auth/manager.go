package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"github.com/emotionplay/emotionplay-server/internal/core/ports"
)

// CodeGrantSession runs the user-interactive part of the authorization flow.
// It presents authURL to the user and resolves to the authorization code
// delivered by the redirect, or a typed cancellation/error.
type CodeGrantSession interface {
	Authenticate(ctx context.Context, authURL, state string) (code string, err error)
}

// Config carries the provider endpoints and client registration.
type Config struct {
	ClientID    string
	AuthURL     string
	TokenURL    string
	RedirectURL string
	Scopes      []string
}

// Manager owns the token pair and expiry. State is replaced only on a
// successful exchange or refresh; a failed refresh leaves it untouched.
type Manager struct {
	cfg     oauth2.Config
	session CodeGrantSession
	logger  *slog.Logger
	now     func() time.Time

	mu           sync.Mutex
	state        TokenState
	onDisconnect []func()

	refreshGroup singleflight.Group
}

var (
	_ ports.TokenProvider = (*Manager)(nil)
	_ ports.Authorizer    = (*Manager)(nil)
)

func NewManager(cfg Config, session CodeGrantSession, logger *slog.Logger) *Manager {
	return &Manager{
		cfg: oauth2.Config{
			ClientID:    cfg.ClientID,
			RedirectURL: cfg.RedirectURL,
			Scopes:      cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
				// Public PKCE client: client_id travels in the form body.
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		session: session,
		logger:  logger,
		now:     time.Now,
	}
}

// OnDisconnect registers a hook run whenever Disconnect clears the token
// state, e.g. to drop a cached provider user ID.
func (m *Manager) OnDisconnect(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onDisconnect = append(m.onDisconnect, fn)
}

// Authorize runs the full PKCE authorization-code flow: verifier/challenge
// pair, interactive session, then code exchange at the token endpoint.
func (m *Manager) Authorize(ctx context.Context) error {
	verifier := GenerateVerifier()
	challenge := CodeChallenge(verifier)
	state := randomState()

	authURL := m.cfg.AuthCodeURL(state,
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
		oauth2.SetAuthURLParam("code_challenge", challenge),
	)

	code, err := m.session.Authenticate(ctx, authURL, state)
	if err != nil {
		return fmt.Errorf("auth: authorization session: %w", err)
	}

	tok, err := m.cfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return fmt.Errorf("auth: code exchange: %w", err)
	}

	m.mu.Lock()
	m.state = next(m.state, tok)
	m.mu.Unlock()

	m.logger.Info("spotify authorized", "expiry", tok.Expiry)
	return nil
}

// EnsureFreshToken returns the cached access token while its expiry is more
// than 60 seconds away, refreshing it otherwise. Concurrent callers share a
// single refresh request.
func (m *Manager) EnsureFreshToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	snap := m.state
	m.mu.Unlock()

	if snap.Valid(m.now()) {
		return snap.AccessToken, nil
	}
	if snap.RefreshToken == "" {
		return "", fmt.Errorf("auth: %w", ports.ErrAuthenticationRequired)
	}

	token, err, _ := m.refreshGroup.Do("refresh", func() (any, error) {
		return m.refresh(ctx, snap)
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}

func (m *Manager) refresh(ctx context.Context, prev TokenState) (string, error) {
	// Another caller may have refreshed between our snapshot and the
	// singleflight slot; re-check before hitting the network.
	m.mu.Lock()
	if m.state.Valid(m.now()) {
		access := m.state.AccessToken
		m.mu.Unlock()
		return access, nil
	}
	m.mu.Unlock()

	src := m.cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: prev.RefreshToken})
	tok, err := src.Token()
	if err != nil {
		return "", fmt.Errorf("auth: token refresh: %w", err)
	}

	m.mu.Lock()
	m.state = next(m.state, tok)
	m.mu.Unlock()

	m.logger.Info("spotify token refreshed", "expiry", tok.Expiry)
	return tok.AccessToken, nil
}

// IsAuthorized reports whether a token is held and comfortably unexpired.
func (m *Manager) IsAuthorized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Valid(m.now())
}

// Disconnect drops all token state and runs registered hooks.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	m.state = TokenState{}
	hooks := m.onDisconnect
	m.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	m.logger.Info("spotify disconnected")
}
