package transport

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farewell-protocol/farewell-claimer/internal/oauth"
)

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token(context.Context) (string, error) {
	return s.token, s.err
}

func TestBuildAuthPlain(t *testing.T) {
	cfg := Config{Email: "me@example.com", Password: "secret"}

	auth, err := buildAuth(context.Background(), cfg, nil)
	require.NoError(t, err)

	mech, ir, err := auth.Start(nil)
	require.NoError(t, err)
	assert.Equal(t, "PLAIN", mech)
	assert.Equal(t, "\x00me@example.com\x00secret", string(ir))
}

func TestBuildAuthPlainIgnoresTokenSource(t *testing.T) {
	cfg := Config{Email: "me@example.com", Password: "secret"}

	auth, err := buildAuth(context.Background(), cfg, oauth.Unavailable{})
	require.NoError(t, err)

	mech, _, err := auth.Start(nil)
	require.NoError(t, err)
	assert.Equal(t, "PLAIN", mech)
}

func TestBuildAuthXOAuth2(t *testing.T) {
	cfg := Config{Email: "me@example.com", UseOAuth: true}

	auth, err := buildAuth(context.Background(), cfg, staticTokens{token: "tok123"})
	require.NoError(t, err)

	mech, ir, err := auth.Start(nil)
	require.NoError(t, err)
	assert.Equal(t, "XOAUTH2", mech)
	assert.Equal(t, "user=me@example.com\x01auth=Bearer tok123\x01\x01", string(ir))
}

func TestXOAuth2ErrorChallenge(t *testing.T) {
	cfg := Config{Email: "me@example.com", UseOAuth: true}

	auth, err := buildAuth(context.Background(), cfg, staticTokens{token: "tok123"})
	require.NoError(t, err)

	_, _, err = auth.Start(nil)
	require.NoError(t, err)

	// First challenge gets an empty response so the server can report
	// the real failure; a second challenge is a protocol error.
	resp, err := auth.Next([]byte(`eyJzdGF0dXMiOiI0MDEifQ==`), true)
	require.NoError(t, err)
	assert.Empty(t, resp)
	assert.NotNil(t, resp)

	_, err = auth.Next([]byte("again"), true)
	assert.Error(t, err)
}

func TestBuildAuthOAuthWithoutTokenSource(t *testing.T) {
	cfg := Config{Email: "me@example.com", UseOAuth: true}

	_, err := buildAuth(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestBuildAuthOAuthUnavailable(t *testing.T) {
	cfg := Config{Email: "me@example.com", UseOAuth: true}

	_, err := buildAuth(context.Background(), cfg, oauth.Unavailable{})
	require.Error(t, err)
	assert.ErrorIs(t, err, oauth.ErrUnavailable)
}

func TestBuildAuthTokenError(t *testing.T) {
	cfg := Config{Email: "me@example.com", UseOAuth: true}

	_, err := buildAuth(context.Background(), cfg, staticTokens{err: assert.AnError})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSASLAuthNextDone(t *testing.T) {
	cfg := Config{Email: "me@example.com", Password: "secret"}
	auth, err := buildAuth(context.Background(), cfg, nil)
	require.NoError(t, err)

	resp, err := auth.Next(nil, false)
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestConfigAddr(t *testing.T) {
	cfg := Config{Host: "smtp.example.com", Port: 587}
	assert.Equal(t, "smtp.example.com:587", cfg.Addr())
}

func TestIsAuthError(t *testing.T) {
	err := &AuthError{Message: "535 bad credentials"}
	assert.True(t, IsAuthError(err))
	assert.True(t, strings.Contains(err.Error(), "535"))
	assert.False(t, IsAuthError(assert.AnError))
}
