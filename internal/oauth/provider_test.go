package oauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farewell-protocol/farewell-claimer/internal/transport"
)

// Both provider variants must be usable as the transport token source.
var (
	_ transport.TokenSource = Unavailable{}
	_ transport.TokenSource = (*Provider)(nil)
)

func TestParseClientFileInstalled(t *testing.T) {
	cfg, err := parseClientFile([]byte(`{
		"installed": {
			"client_id": "id123",
			"client_secret": "secret",
			"auth_uri": "https://accounts.google.com/o/oauth2/auth",
			"token_uri": "https://oauth2.googleapis.com/token"
		}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "id123", cfg.ClientID)
	assert.Equal(t, "secret", cfg.ClientSecret)
	assert.Equal(t, "https://accounts.google.com/o/oauth2/auth", cfg.Endpoint.AuthURL)
	assert.Equal(t, "https://oauth2.googleapis.com/token", cfg.Endpoint.TokenURL)
}

func TestParseClientFileWebFallback(t *testing.T) {
	cfg, err := parseClientFile([]byte(`{
		"web": {"client_id": "web-id", "token_uri": "https://example.com/token"}
	}`))
	require.NoError(t, err)
	assert.Equal(t, "web-id", cfg.ClientID)
}

func TestParseClientFileInvalid(t *testing.T) {
	_, err := parseClientFile([]byte(`{}`))
	assert.Error(t, err)

	_, err = parseClientFile([]byte(`not json`))
	assert.Error(t, err)

	_, err = parseClientFile([]byte(`{"installed": {}}`))
	assert.Error(t, err, "empty client_id is rejected")
}

func TestLoadProviderMissingFile(t *testing.T) {
	_, err := LoadProvider("/nonexistent/credentials.json", "me@example.com")
	assert.Error(t, err)
}

func TestUnavailable(t *testing.T) {
	var p Unavailable

	_, err := p.Token(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Empty(t, p.Identity())
}
