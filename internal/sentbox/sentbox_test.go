package sentbox

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, tls := range []bool{true, false} {
		cfg := Config{
			Host:     "imap.example.com",
			Port:     "993",
			Username: "me@example.com",
			TLS:      tls,
		}

		err := Append(ctx, cfg, []byte("raw"), slog.New(slog.DiscardHandler))
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled,
			"a cancelled context must abort the dial (tls=%v)", tls)
	}
}
