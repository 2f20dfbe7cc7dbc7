// Package claimer drives the single interactive run: transport setup,
// message collection, the per-recipient send loop, and the final report.
package claimer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/farewell-protocol/farewell-claimer/internal/artifact"
	"github.com/farewell-protocol/farewell-claimer/internal/model"
	"github.com/farewell-protocol/farewell-claimer/internal/sentbox"
	"github.com/farewell-protocol/farewell-claimer/internal/transport"
	"github.com/farewell-protocol/farewell-claimer/internal/ui"
)

// ErrInterrupted signals that the operator cancelled the run; the caller
// should exit cleanly with status zero.
var ErrInterrupted = errors.New("interrupted by user")

// sendPause spaces out consecutive sends to stay clear of provider rate
// limits.
const sendPause = time.Second

// Options configures a run.
type Options struct {
	// MessageFile, when set, is loaded instead of prompting for the
	// message data.
	MessageFile string

	// ConfigPath overrides the default claimer config location.
	ConfigPath string

	// OutputDir is the directory under which the per-run artifact
	// directory is created.
	OutputDir string

	Logger *slog.Logger
}

// Outcome records the result for one recipient.
type Outcome struct {
	Recipient string
	Err       error
	EMLPath   string
	ProofPath string
}

// Sender transmits one raw message to one recipient. Satisfied by
// *transport.Session.
type Sender interface {
	Send(from, to string, raw []byte) error
}

// Run executes the full interactive flow.
func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ui.Banner()

	var info *model.MessageInfo
	if opts.MessageFile != "" {
		ui.Section("Loading Message Data")
		loaded, err := model.LoadMessageFile(opts.MessageFile)
		if err != nil {
			return err
		}
		info = loaded
		ui.Successf("Loaded message data from: %s", opts.MessageFile)
		ui.Infof("Recipients: %d", len(info.Recipients))
		ui.Infof("Content hash: %s", truncate(info.ContentHash, 20))
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = model.DefaultConfigPath()
	}
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	tcfg, tokens, err := setupTransport(ctx, cfg, configPath, logger)
	if err != nil {
		return wrapAbort(err)
	}

	if info == nil {
		info, err = promptMessageInfo()
		if err != nil {
			return wrapAbort(err)
		}
	}
	if len(info.Recipients) == 0 {
		return errors.New("no recipients specified")
	}

	printSummary(tcfg, info)
	proceed, err := ui.Confirm("Proceed with sending?", true)
	if err != nil {
		return wrapAbort(err)
	}
	if !proceed {
		ui.Infof("Aborted by user.")
		return nil
	}

	ui.Section("Sending Emails & Generating Proofs")

	store := artifact.NewStore(opts.OutputDir)

	var session *transport.Session
	dialErr := ui.Spin("Connecting to mail server...", func() error {
		var err error
		session, err = transport.Dial(ctx, tcfg, tokens, logger)
		return err
	})
	if dialErr != nil {
		return fmt.Errorf("opening mail session: %w", dialErr)
	}

	rc := runContext{
		sender:     session,
		store:      store,
		info:       info,
		senderAddr: tcfg.Email,
		senderName: senderName(tcfg),
		pause:      sendPause,
		sentCopy:   sentCopier(ctx, cfg, tcfg, logger),
		logger:     logger,
	}
	outcomes, procErr := processRecipients(ctx, rc)

	if err := session.Close(); err != nil {
		logger.Debug("closing mail session", slog.Any("error", err))
	}

	report(outcomes, store.Dir())

	if procErr != nil {
		return procErr
	}
	if ctx.Err() != nil {
		return ErrInterrupted
	}

	printNextSteps()
	return nil
}

// sentCopier returns the warning-only sent-mailbox callback, or nil when
// the feature is off or unsupported for the transport.
func sentCopier(ctx context.Context, cfg *model.Config, tcfg transport.Config, logger *slog.Logger) func([]byte) {
	if !cfg.Sentbox.Enabled {
		return nil
	}
	if tcfg.UseOAuth {
		ui.Warnf("Sent-mailbox copy is not supported with OAuth transport; skipping.")
		return nil
	}

	sbCfg := sentbox.Config{
		Host:     cfg.Sentbox.Host,
		Port:     cfg.Sentbox.Port,
		Username: tcfg.Email,
		Password: tcfg.Password,
		TLS:      cfg.Sentbox.TLS,
	}
	return func(raw []byte) {
		if err := sentbox.Append(ctx, sbCfg, raw, logger); err != nil {
			ui.Warnf("Could not copy to Sent mailbox: %v", err)
		}
	}
}

func senderName(tcfg transport.Config) string {
	if tcfg.DisplayName != "" {
		return tcfg.DisplayName
	}
	return tcfg.Email
}

// wrapAbort maps a cancelled prompt to ErrInterrupted.
func wrapAbort(err error) error {
	if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
		return ErrInterrupted
	}
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
