// Package auth owns the OAuth PKCE flow and the access/refresh token
// lifecycle for the music provider.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// RFC 7636 unreserved character set.
const verifierCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-._~"

const (
	verifierLength    = 64
	minVerifierLength = 43
	maxVerifierLength = 128
)

// GenerateVerifier produces a random PKCE code verifier of length 64 drawn
// from the unreserved set. Results shorter than 43 are padded, longer than
// 128 trimmed, so the RFC bounds always hold.
func GenerateVerifier() string {
	buf := make([]byte, verifierLength)
	// crypto/rand.Read never returns an error; it aborts on a broken source.
	_, _ = rand.Read(buf)

	out := make([]byte, verifierLength)
	for i, b := range buf {
		out[i] = verifierCharset[int(b)%len(verifierCharset)]
	}

	verifier := string(out)
	if len(verifier) < minVerifierLength {
		verifier += strings.Repeat("a", minVerifierLength-len(verifier))
	}
	if len(verifier) > maxVerifierLength {
		verifier = verifier[:maxVerifierLength]
	}
	return verifier
}

// CodeChallenge derives the S256 code challenge: SHA-256 over the verifier's
// UTF-8 bytes, base64url-encoded without padding.
func CodeChallenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// randomState produces an opaque state parameter binding the callback to
// this authorization attempt.
func randomState() string {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return base64.RawURLEncoding.EncodeToString(buf)[:32]
}
