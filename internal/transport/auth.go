package transport

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/emersion/go-sasl"
)

// buildAuth selects the SASL mechanism for the session: XOAUTH2 with a
// freshly minted token when OAuth is configured, PLAIN otherwise.
func buildAuth(ctx context.Context, cfg Config, tokens TokenSource) (smtp.Auth, error) {
	if cfg.UseOAuth {
		if tokens == nil {
			return nil, fmt.Errorf("OAuth transport configured without a token source")
		}
		token, err := tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("obtaining access token: %w", err)
		}
		return newSASLAuth(newXOAuth2Client(cfg.Email, token)), nil
	}

	return newSASLAuth(sasl.NewPlainClient("", cfg.Email, cfg.Password)), nil
}

// xoauth2Client implements the SASL XOAUTH2 mechanism Gmail and Outlook
// SMTP expect. go-sasl ships OAUTHBEARER but not XOAUTH2, so the initial
// response is assembled here.
type xoauth2Client struct {
	username string
	token    string
	done     bool
}

func newXOAuth2Client(username, token string) sasl.Client {
	return &xoauth2Client{username: username, token: token}
}

func (c *xoauth2Client) Start() (string, []byte, error) {
	ir := []byte("user=" + c.username + "\x01auth=Bearer " + c.token + "\x01\x01")
	return "XOAUTH2", ir, nil
}

// Next handles the XOAUTH2 error challenge: the server sends a base64
// JSON blob and expects one empty response before it fails the exchange.
func (c *xoauth2Client) Next(challenge []byte) ([]byte, error) {
	if c.done {
		return nil, fmt.Errorf("unexpected XOAUTH2 challenge: %q", challenge)
	}
	c.done = true
	return []byte{}, nil
}

// saslAuth adapts a go-sasl client to the net/smtp Auth interface.
type saslAuth struct {
	client sasl.Client
}

func newSASLAuth(client sasl.Client) smtp.Auth {
	return &saslAuth{client: client}
}

func (a *saslAuth) Start(_ *smtp.ServerInfo) (string, []byte, error) {
	return a.client.Start()
}

func (a *saslAuth) Next(challenge []byte, more bool) ([]byte, error) {
	if !more {
		return nil, nil
	}
	return a.client.Next(challenge)
}
