// Package sentbox copies sent messages into the account's Sent mailbox
// over IMAP. SMTP submission does not store a copy, so without this the
// operator's mail client never shows what was sent.
package sentbox

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/emersion/go-imap/v2/imapclient"
)

// dialTimeout bounds connection establishment and the TLS handshake.
const dialTimeout = 30 * time.Second

// Config holds the IMAP settings for the sent-mailbox copy.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string

	// TLS selects implicit TLS; otherwise the connection upgrades with
	// STARTTLS.
	TLS bool
}

// sentFolders are the mailbox names tried in order. Providers disagree on
// the name of the Sent folder.
var sentFolders = []string{
	"Sent", "[Gmail]/Sent Mail", "Sent Items", "Sent Messages", "INBOX.Sent",
}

// Append connects to the IMAP server and appends the raw message to the
// first Sent mailbox that accepts it. Cancelling the context aborts the
// dial.
func Append(ctx context.Context, cfg Config, raw []byte, logger *slog.Logger) error {
	client, err := dial(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Logout().Wait() }()

	if err := client.Login(cfg.Username, cfg.Password).Wait(); err != nil {
		return fmt.Errorf("IMAP login for %s: %w", cfg.Username, err)
	}

	var lastErr error
	for _, folder := range sentFolders {
		if err := appendTo(client, folder, raw); err != nil {
			logger.Debug("sent-mailbox append failed",
				slog.String("mailbox", folder), slog.Any("error", err))
			lastErr = err
			continue
		}
		logger.Debug("copied to sent mailbox", slog.String("mailbox", folder))
		return nil
	}

	return fmt.Errorf("no sent mailbox accepted the message: %w", lastErr)
}

func dial(ctx context.Context, cfg Config) (*imapclient.Client, error) {
	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	dialer := &net.Dialer{Timeout: dialTimeout}
	tlsConfig := &tls.Config{ServerName: cfg.Host}

	if cfg.TLS {
		tlsDialer := &tls.Dialer{NetDialer: dialer, Config: tlsConfig}
		conn, err := tlsDialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("connecting to IMAP %s: %w", addr, err)
		}
		return imapclient.New(conn, nil), nil
	}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connecting to IMAP %s: %w", addr, err)
	}
	client, err := imapclient.NewStartTLS(conn, &imapclient.Options{TLSConfig: tlsConfig})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("IMAP STARTTLS: %w", err)
	}
	return client, nil
}

func appendTo(client *imapclient.Client, mailbox string, raw []byte) error {
	cmd := client.Append(mailbox, int64(len(raw)), nil)
	if _, err := cmd.Write(raw); err != nil {
		_ = cmd.Close()
		return fmt.Errorf("writing message: %w", err)
	}
	if err := cmd.Close(); err != nil {
		return fmt.Errorf("closing append: %w", err)
	}
	if _, err := cmd.Wait(); err != nil {
		return fmt.Errorf("appending to %s: %w", mailbox, err)
	}
	return nil
}
