package claimer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/farewell-protocol/farewell-claimer/internal/artifact"
	"github.com/farewell-protocol/farewell-claimer/internal/compose"
	"github.com/farewell-protocol/farewell-claimer/internal/model"
	"github.com/farewell-protocol/farewell-claimer/internal/proof"
	"github.com/farewell-protocol/farewell-claimer/internal/ui"
)

// runContext bundles the collaborators of the per-recipient loop.
type runContext struct {
	sender     Sender
	store      *artifact.Store
	info       *model.MessageInfo
	senderAddr string
	senderName string
	pause      time.Duration

	// sentCopy, when non-nil, receives the raw message after a
	// successful send (warning-only sent-mailbox copy).
	sentCopy func(raw []byte)

	logger *slog.Logger
}

// processRecipients runs compose → send → write .eml → build proof →
// write JSON for each recipient in order. A send failure is recorded and
// the loop continues; a filesystem failure aborts the run. Context
// cancellation stops before the next recipient.
func processRecipients(ctx context.Context, rc runContext) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(rc.info.Recipients))

	for i, recipient := range rc.info.Recipients {
		if ctx.Err() != nil {
			break
		}

		fmt.Printf("\n[%d/%d] Processing: %s\n", i+1, len(rc.info.Recipients), recipient)

		msg, err := compose.New(compose.Request{
			SenderAddr:    rc.senderAddr,
			SenderName:    rc.senderName,
			RecipientAddr: recipient,
			Subject:       rc.info.Subject,
			Body:          rc.info.Body,
			ContentHash:   rc.info.ContentHash,
		})
		if err != nil {
			return outcomes, fmt.Errorf("composing message for %s: %w", recipient, err)
		}
		raw, err := msg.Render()
		if err != nil {
			return outcomes, fmt.Errorf("rendering message for %s: %w", recipient, err)
		}

		ui.Infof("Sending email to %s...", recipient)
		if err := rc.sender.Send(rc.senderAddr, recipient, raw); err != nil {
			ui.Errorf("Failed to send: %v", err)
			rc.logger.Debug("send failed",
				slog.String("recipient", recipient), slog.Any("error", err))
			outcomes = append(outcomes, Outcome{Recipient: recipient, Err: err})
			continue
		}
		ui.Successf("Email sent!")

		if rc.sentCopy != nil {
			rc.sentCopy(raw)
		}

		emlPath, err := rc.store.WriteRawMessage(i+1, recipient, raw)
		if err != nil {
			return outcomes, err
		}
		ui.Successf("Saved .eml: %s", emlPath)

		ui.Infof("Generating proof...")
		rec := proof.Build(raw, recipient, rc.info.ContentHash)
		proofPath, err := rc.store.WriteProof(i+1, recipient, rec)
		if err != nil {
			return outcomes, err
		}
		ui.Successf("Saved proof: %s", proofPath)

		outcomes = append(outcomes, Outcome{
			Recipient: recipient,
			EMLPath:   emlPath,
			ProofPath: proofPath,
		})

		if i < len(rc.info.Recipients)-1 {
			pause(ctx, rc.pause)
		}
	}

	return outcomes, nil
}

// pause sleeps for d unless the context is cancelled first.
func pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
