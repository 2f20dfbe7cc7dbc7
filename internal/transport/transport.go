// Package transport manages the outbound SMTP session: one authenticated
// connection per run, reused for every recipient, then closed with QUIT.
package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"time"
)

// dialTimeout bounds connection establishment and, via the dialer, the
// initial TLS handshake.
const dialTimeout = 30 * time.Second

// Config holds everything needed to open an authenticated SMTP session.
type Config struct {
	Host string
	Port int

	// UseTLS upgrades the session with STARTTLS after the greeting;
	// UseSSL dials with implicit TLS instead. At most one is set.
	UseTLS bool
	UseSSL bool

	// Email is the account address, used both as the SASL identity and
	// as the envelope sender.
	Email    string
	Password string

	// DisplayName is the From header display name.
	DisplayName string

	// UseOAuth authenticates with XOAUTH2 using a token from the
	// TokenSource passed to Dial instead of Password.
	UseOAuth bool
}

// Addr returns the host:port dial address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// AuthError indicates the server rejected the credentials, as opposed to
// connection-level failures.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return "authentication failed: " + e.Message
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// TokenSource yields an access token for XOAUTH2 authentication.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Session is an open, authenticated SMTP connection.
type Session struct {
	client *smtp.Client
	logger *slog.Logger
}

// Dial opens a connection per the config, authenticates, and returns the
// session. tokens is only consulted when cfg.UseOAuth is set.
func Dial(ctx context.Context, cfg Config, tokens TokenSource, logger *slog.Logger) (*Session, error) {
	addr := cfg.Addr()
	logger = logger.With(slog.String("server", addr))

	dialer := &net.Dialer{Timeout: dialTimeout}

	var conn net.Conn
	var err error
	if cfg.UseSSL {
		logger.Debug("dialing with implicit TLS")
		tlsDialer := &tls.Dialer{
			NetDialer: dialer,
			Config:    &tls.Config{ServerName: cfg.Host},
		}
		conn, err = tlsDialer.DialContext(ctx, "tcp", addr)
	} else {
		logger.Debug("dialing")
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating SMTP client: %w", err)
	}

	if cfg.UseTLS && !cfg.UseSSL {
		logger.Debug("starttls")
		if ok, _ := client.Extension("STARTTLS"); !ok {
			client.Close()
			return nil, fmt.Errorf("server %s does not support STARTTLS", addr)
		}
		if err := client.StartTLS(&tls.Config{ServerName: cfg.Host}); err != nil {
			client.Close()
			return nil, fmt.Errorf("SMTP STARTTLS: %w", err)
		}
	}

	auth, err := buildAuth(ctx, cfg, tokens)
	if err != nil {
		client.Close()
		return nil, err
	}

	logger.Debug("authenticating", slog.String("user", cfg.Email))
	if err := client.Auth(auth); err != nil {
		client.Close()
		return nil, &AuthError{Message: err.Error()}
	}

	return &Session{client: client, logger: logger}, nil
}

// Check dials, authenticates, and closes again: a connection test run
// before the send loop starts.
func Check(ctx context.Context, cfg Config, tokens TokenSource, logger *slog.Logger) error {
	session, err := Dial(ctx, cfg, tokens, logger)
	if err != nil {
		return err
	}
	return session.Close()
}

// Send transmits one raw message to one recipient over the open session.
func (s *Session) Send(from, to string, raw []byte) error {
	s.logger.Debug("mail from", slog.String("sender", from))
	if err := s.client.Mail(from); err != nil {
		return fmt.Errorf("SMTP MAIL FROM: %w", err)
	}

	s.logger.Debug("rcpt to", slog.String("recipient", to))
	if err := s.client.Rcpt(to); err != nil {
		return fmt.Errorf("SMTP RCPT TO: %w", err)
	}

	s.logger.Debug("data", slog.Int("bytes", len(raw)))
	w, err := s.client.Data()
	if err != nil {
		return fmt.Errorf("SMTP DATA: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		w.Close()
		return fmt.Errorf("writing message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing message body: %w", err)
	}

	return nil
}

// Close terminates the session with QUIT.
func (s *Session) Close() error {
	s.logger.Debug("quit")
	return s.client.Quit()
}
