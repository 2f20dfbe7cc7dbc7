// Package oauth supplies short-lived transport credentials for XOAUTH2
// authentication. It is an optional capability: when no OAuth client
// configuration is available, the Unavailable provider takes its place.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"

	"github.com/farewell-protocol/farewell-claimer/internal/credential"
)

// ErrUnavailable is returned by the no-op provider.
var ErrUnavailable = errors.New("oauth: no client configuration available")

// ErrNoToken indicates that no refresh token has been stored yet and the
// interactive authorization flow must run first.
var ErrNoToken = errors.New("oauth: no cached token; authorization required")

// scopes requested during authorization. Full mail scope is what XOAUTH2
// against smtp.gmail.com requires.
var scopes = []string{"https://mail.google.com/"}

// TokenProvider yields short-lived access tokens for transport
// authentication.
type TokenProvider interface {
	// Token returns a currently valid access token.
	Token(ctx context.Context) (string, error)

	// Identity returns the account the tokens belong to.
	Identity() string
}

// Unavailable is the no-op provider used when OAuth is not configured.
// Its Token always fails with ErrUnavailable.
type Unavailable struct{}

func (Unavailable) Token(context.Context) (string, error) { return "", ErrUnavailable }
func (Unavailable) Identity() string                      { return "" }

// clientFile mirrors the OAuth client configuration JSON downloaded from
// the provider console ("installed" for desktop apps).
type clientFile struct {
	Installed *clientSection `json:"installed"`
	Web       *clientSection `json:"web"`
}

type clientSection struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	AuthURI      string `json:"auth_uri"`
	TokenURI     string `json:"token_uri"`
}

// Provider implements TokenProvider backed by an OAuth client
// configuration file, with the refresh token cached in the system keyring.
type Provider struct {
	config *oauth2.Config
	email  string
}

// LoadProvider reads the client configuration file and returns a provider
// for the given account address.
func LoadProvider(clientFilePath, email string) (*Provider, error) {
	data, err := os.ReadFile(clientFilePath)
	if err != nil {
		return nil, fmt.Errorf("reading OAuth client file %s: %w", clientFilePath, err)
	}

	cfg, err := parseClientFile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", clientFilePath, err)
	}
	cfg.Scopes = scopes
	// Out-of-band flow: the user pastes the authorization code into the
	// terminal. No local HTTP listener.
	cfg.RedirectURL = "urn:ietf:wg:oauth:2.0:oob"

	return &Provider{config: cfg, email: email}, nil
}

// parseClientFile extracts the OAuth endpoints and client credentials
// from the downloaded configuration JSON.
func parseClientFile(data []byte) (*oauth2.Config, error) {
	var f clientFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing OAuth client file: %w", err)
	}

	section := f.Installed
	if section == nil {
		section = f.Web
	}
	if section == nil || section.ClientID == "" {
		return nil, errors.New("OAuth client file has no 'installed' or 'web' section")
	}

	return &oauth2.Config{
		ClientID:     section.ClientID,
		ClientSecret: section.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  section.AuthURI,
			TokenURL: section.TokenURI,
		},
	}, nil
}

// Identity returns the account address the provider was created for.
func (p *Provider) Identity() string {
	return p.email
}

// AuthCodeURL returns the URL the user must visit to authorize the
// claimer.
func (p *Provider) AuthCodeURL() string {
	return p.config.AuthCodeURL("state", oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for tokens and stores the refresh
// token in the keyring.
func (p *Provider) Exchange(ctx context.Context, code string) error {
	tok, err := p.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchanging authorization code: %w", err)
	}
	if tok.RefreshToken == "" {
		return errors.New("authorization response carried no refresh token")
	}
	if err := credential.Set(credential.RefreshTokenKey(p.email), tok.RefreshToken); err != nil {
		return err
	}
	return nil
}

// HasToken reports whether a refresh token is already cached for the
// account.
func (p *Provider) HasToken() bool {
	_, err := credential.Get(credential.RefreshTokenKey(p.email))
	return err == nil
}

// Token mints an access token from the cached refresh token. ErrNoToken
// is returned when the authorization flow has not run yet.
func (p *Provider) Token(ctx context.Context) (string, error) {
	refresh, err := credential.Get(credential.RefreshTokenKey(p.email))
	if err != nil {
		return "", ErrNoToken
	}

	source := p.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refresh})
	tok, err := source.Token()
	if err != nil {
		return "", fmt.Errorf("refreshing access token: %w", err)
	}

	// Providers occasionally rotate the refresh token; keep the cache
	// current.
	if tok.RefreshToken != "" && tok.RefreshToken != refresh {
		_ = credential.Set(credential.RefreshTokenKey(p.email), tok.RefreshToken)
	}

	return tok.AccessToken, nil
}
