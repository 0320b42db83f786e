package ports

import (
	"context"
	"errors"
)

// ErrNotAuthenticated indicates no usable access token is held.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrAuthenticationRequired indicates the token expired and no refresh token
// is available, so only a new interactive authorization can recover.
var ErrAuthenticationRequired = errors.New("authentication required")

// ErrAuthorizationCancelled indicates the user dismissed or aborted the
// interactive authorization session.
var ErrAuthorizationCancelled = errors.New("authorization cancelled")

// TokenProvider yields a currently valid access token, refreshing if needed.
type TokenProvider interface {
	// EnsureFreshToken returns an access token whose expiry is comfortably in
	// the future, performing a refresh-token grant when necessary.
	EnsureFreshToken(ctx context.Context) (string, error)
	// IsAuthorized reports whether a usable token is currently held.
	IsAuthorized() bool
}

// Authorizer runs the interactive authorization flow and tears it down.
type Authorizer interface {
	Authorize(ctx context.Context) error
	Disconnect()
}
