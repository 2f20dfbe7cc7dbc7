package preset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByKey(t *testing.T) {
	p, ok := ByKey(KeyGmail)
	require.True(t, ok)
	assert.Equal(t, "smtp.gmail.com", p.Host)
	assert.Equal(t, 587, p.Port)
	assert.True(t, p.UseTLS)
	assert.False(t, p.UseOAuth)

	_, ok = ByKey("unknown")
	assert.False(t, ok)
}

func TestGmailOAuthPreset(t *testing.T) {
	p, ok := ByKey(KeyGmailOAuth)
	require.True(t, ok)
	assert.True(t, p.UseOAuth)
	assert.Equal(t, "smtp.gmail.com", p.Host)
}

func TestTableShape(t *testing.T) {
	keys := make(map[string]bool)
	for _, p := range Presets {
		assert.False(t, keys[p.Key], "duplicate key %q", p.Key)
		keys[p.Key] = true

		assert.NotEmpty(t, p.Label)
		if p.Key == KeyManual {
			continue
		}
		assert.NotEmpty(t, p.Host, "preset %q needs a host", p.Key)
		assert.NotZero(t, p.Port, "preset %q needs a port", p.Key)
		assert.True(t, p.UseTLS || p.UseSSL, "preset %q needs a TLS mode", p.Key)
	}

	last := Presets[len(Presets)-1]
	assert.Equal(t, KeyManual, last.Key, "manual entry stays last in the prompt")
}
