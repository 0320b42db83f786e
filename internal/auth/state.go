package auth

import (
	"time"

	"golang.org/x/oauth2"
)

// freshnessMargin is how far in the future a token's expiry must be for the
// token to count as usable without a refresh.
const freshnessMargin = 60 * time.Second

// TokenState is the access/refresh token pair plus absolute expiry. The
// zero value is the unauthenticated state.
type TokenState struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// Valid reports whether the access token is present and its expiry is more
// than the safety margin away from now.
func (s TokenState) Valid(now time.Time) bool {
	return s.AccessToken != "" && s.Expiry.After(now.Add(freshnessMargin))
}

// next merges a successful grant into the prior state. A grant that omits a
// refresh token carries the previous one forward; everything else is
// replaced wholesale, never partially.
func next(prev TokenState, tok *oauth2.Token) TokenState {
	st := TokenState{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry,
	}
	if st.RefreshToken == "" {
		st.RefreshToken = prev.RefreshToken
	}
	return st
}
