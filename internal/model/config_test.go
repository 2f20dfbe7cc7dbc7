package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.False(t, cfg.HasTransport())
	assert.True(t, cfg.Sentbox.TLS, "sentbox TLS defaults to on")
	assert.False(t, cfg.Sentbox.Enabled)
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	original := &Config{
		Transport: TransportSettings{
			Provider:    "gmail",
			Host:        "smtp.gmail.com",
			Port:        587,
			UseTLS:      true,
			Email:       "me@gmail.com",
			DisplayName: "Me",
		},
		Sentbox: SentboxSettings{
			Enabled: true,
			Host:    "imap.gmail.com",
			Port:    "993",
			TLS:     true,
		},
		OAuthClientFile: "/tmp/credentials.json",
	}
	require.NoError(t, SaveConfig(path, original))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, original, loaded)
	assert.True(t, loaded.HasTransport())
}

func TestSaveConfigCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "config.yaml")

	require.NoError(t, SaveConfig(path, &Config{}))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.HasTransport())
}

func TestHasTransport(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.HasTransport())

	cfg.Transport.Host = "smtp.example.com"
	assert.False(t, cfg.HasTransport(), "host alone is not enough")

	cfg.Transport.Email = "me@example.com"
	assert.True(t, cfg.HasTransport())
}
