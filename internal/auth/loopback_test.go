package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emotionplay/emotionplay-server/internal/core/ports"
)

func TestParseCallback(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		wantCode string
		wantErr  error
		errOnly  bool
	}{
		{
			name:     "valid callback",
			target:   "/callback?code=abc&state=s1",
			wantCode: "abc",
		},
		{
			name:    "user denied access",
			target:  "/callback?error=access_denied&state=s1",
			wantErr: ports.ErrAuthorizationCancelled,
		},
		{
			name:    "provider error",
			target:  "/callback?error=server_error&state=s1",
			errOnly: true,
		},
		{
			name:    "state mismatch",
			target:  "/callback?code=abc&state=wrong",
			errOnly: true,
		},
		{
			name:    "missing code",
			target:  "/callback?state=s1",
			errOnly: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.target, nil)
			res := parseCallback(req, "s1")

			switch {
			case tc.wantErr != nil:
				require.ErrorIs(t, res.err, tc.wantErr)
			case tc.errOnly:
				require.Error(t, res.err)
			default:
				require.NoError(t, res.err)
				assert.Equal(t, tc.wantCode, res.code)
			}
		})
	}
}
