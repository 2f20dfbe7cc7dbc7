package claimer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farewell-protocol/farewell-claimer/internal/artifact"
	"github.com/farewell-protocol/farewell-claimer/internal/model"
)

// fakeSender records sent messages and fails for addresses in failFor.
type fakeSender struct {
	sent    []string
	failFor map[string]bool
}

func (f *fakeSender) Send(from, to string, raw []byte) error {
	if f.failFor[to] {
		return fmt.Errorf("550 mailbox unavailable")
	}
	f.sent = append(f.sent, to)
	return nil
}

func newTestRunContext(t *testing.T, sender *fakeSender, recipients []string) runContext {
	t.Helper()

	return runContext{
		sender: sender,
		store:  artifact.NewStore(t.TempDir()),
		info: &model.MessageInfo{
			Recipients:  recipients,
			ContentHash: "0x1234",
			Body:        "Goodbye.",
			Subject:     model.DefaultSubject,
		},
		senderAddr: "sender@example.com",
		senderName: "Sender",
		logger:     slog.New(slog.DiscardHandler),
	}
}

func TestProcessRecipientsAllSucceed(t *testing.T) {
	sender := &fakeSender{}
	rc := newTestRunContext(t, sender, []string{"a@x.com", "b@x.com"})

	outcomes, err := processRecipients(context.Background(), rc)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	for _, o := range outcomes {
		assert.NoError(t, o.Err)
		assert.FileExists(t, o.EMLPath)
		assert.FileExists(t, o.ProofPath)
	}
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, sender.sent)
}

func TestProcessRecipientsFailureDoesNotBlock(t *testing.T) {
	sender := &fakeSender{failFor: map[string]bool{"a@x.com": true}}
	rc := newTestRunContext(t, sender, []string{"a@x.com", "b@x.com"})

	outcomes, err := processRecipients(context.Background(), rc)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	assert.Error(t, outcomes[0].Err)
	assert.Empty(t, outcomes[0].EMLPath)
	assert.Empty(t, outcomes[0].ProofPath)

	assert.NoError(t, outcomes[1].Err)
	assert.FileExists(t, outcomes[1].EMLPath)

	// Only the successful recipient leaves artifacts behind.
	entries, err := os.ReadDir(rc.store.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), "a_at_x.com")
	}
}

func TestProcessRecipientsSentCopy(t *testing.T) {
	sender := &fakeSender{failFor: map[string]bool{"a@x.com": true}}
	rc := newTestRunContext(t, sender, []string{"a@x.com", "b@x.com"})

	var copies int
	rc.sentCopy = func(raw []byte) {
		copies++
		assert.NotEmpty(t, raw)
	}

	_, err := processRecipients(context.Background(), rc)
	require.NoError(t, err)
	assert.Equal(t, 1, copies, "failed sends are not copied to the sent mailbox")
}

func TestProcessRecipientsCancelled(t *testing.T) {
	sender := &fakeSender{}
	rc := newTestRunContext(t, sender, []string{"a@x.com", "b@x.com"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes, err := processRecipients(ctx, rc)
	require.NoError(t, err)
	assert.Empty(t, outcomes)
	assert.Empty(t, sender.sent)
}

func TestProcessRecipientsEMLMatchesRender(t *testing.T) {
	sender := &fakeSender{}
	rc := newTestRunContext(t, sender, []string{"a@x.com"})

	outcomes, err := processRecipients(context.Background(), rc)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	data, err := os.ReadFile(outcomes[0].EMLPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "0x1234")
	assert.Equal(t, "recipient_1_a_at_x.com.eml", filepath.Base(outcomes[0].EMLPath))
}

func TestWrapAbort(t *testing.T) {
	assert.ErrorIs(t, wrapAbort(context.Canceled), ErrInterrupted)
	assert.Equal(t, assert.AnError, wrapAbort(assert.AnError))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "0x1234...", truncate("0x123456789", 6))
}
