package claimer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/farewell-protocol/farewell-claimer/internal/credential"
	"github.com/farewell-protocol/farewell-claimer/internal/model"
	"github.com/farewell-protocol/farewell-claimer/internal/oauth"
	"github.com/farewell-protocol/farewell-claimer/internal/preset"
	"github.com/farewell-protocol/farewell-claimer/internal/transport"
	"github.com/farewell-protocol/farewell-claimer/internal/ui"
)

// setupTransport collects and verifies the mail-transport configuration.
// A failed connection test is re-prompted once before giving up. Working
// settings are cached in the claimer config file (never the password).
func setupTransport(
	ctx context.Context,
	cfg *model.Config,
	configPath string,
	logger *slog.Logger,
) (transport.Config, transport.TokenSource, error) {
	ui.Section("SMTP Configuration")

	for attempt := 0; ; attempt++ {
		tcfg, tokens, providerKey, err := promptTransport(ctx, cfg)
		if err != nil {
			return transport.Config{}, nil, err
		}

		checkErr := ui.Spin("Testing connection...", func() error {
			return transport.Check(ctx, tcfg, tokens, logger)
		})
		if checkErr == nil {
			ui.Successf("Connection successful!")
			rememberTransport(cfg, tcfg, providerKey, configPath)
			return tcfg, tokens, nil
		}

		ui.Errorf("Connection failed: %v", checkErr)
		if transport.IsAuthError(checkErr) {
			ui.Infof("For Gmail/Outlook, you may need to use an App Password.")
		}
		if attempt >= 1 {
			return transport.Config{}, nil,
				fmt.Errorf("could not connect to the mail server: %w", checkErr)
		}

		retry, err := ui.Confirm("Connection failed. Try again?", true)
		if err != nil {
			return transport.Config{}, nil, err
		}
		if !retry {
			return transport.Config{}, nil, errors.New("transport setup aborted")
		}
	}
}

// rememberTransport caches working settings for the next run.
func rememberTransport(cfg *model.Config, tcfg transport.Config, providerKey, configPath string) {
	cfg.Transport = model.TransportSettings{
		Provider:    providerKey,
		Host:        tcfg.Host,
		Port:        tcfg.Port,
		UseTLS:      tcfg.UseTLS,
		UseSSL:      tcfg.UseSSL,
		Email:       tcfg.Email,
		DisplayName: tcfg.DisplayName,
		UseOAuth:    tcfg.UseOAuth,
	}
	if err := model.SaveConfig(configPath, cfg); err != nil {
		ui.Warnf("Could not save settings: %v", err)
	}
}

// promptTransport builds a transport config from cached settings, a
// provider preset, or manual entry.
func promptTransport(ctx context.Context, cfg *model.Config) (transport.Config, transport.TokenSource, string, error) {
	if cfg.HasTransport() {
		useSaved, err := ui.Confirm(
			fmt.Sprintf("Use saved settings for %s (%s)?", cfg.Transport.Email, cfg.Transport.Host),
			true,
		)
		if err != nil {
			return transport.Config{}, nil, "", err
		}
		if useSaved {
			return fromSavedSettings(ctx, cfg)
		}
	}

	options := make([]ui.Option, len(preset.Presets))
	for i, p := range preset.Presets {
		options[i] = ui.Option{Label: p.Label, Value: p.Key}
	}
	key, err := ui.Select("Select your email provider", "", options)
	if err != nil {
		return transport.Config{}, nil, "", err
	}

	p, ok := preset.ByKey(key)
	if !ok {
		return transport.Config{}, nil, "", fmt.Errorf("unknown provider preset %q", key)
	}
	if p.Key == preset.KeyManual {
		return promptManual(ctx)
	}

	ui.Infof("Server: %s:%d", p.Host, p.Port)
	if p.Note != "" {
		ui.Warnf("%s", p.Note)
	}
	if p.HelpURL != "" {
		ui.Infof("Help: %s", p.HelpURL)
	}

	tcfg := transport.Config{
		Host:     p.Host,
		Port:     p.Port,
		UseTLS:   p.UseTLS,
		UseSSL:   p.UseSSL,
		UseOAuth: p.UseOAuth,
	}

	tcfg.Email, err = ui.Input("Your email address", "", "", true)
	if err != nil {
		return transport.Config{}, nil, "", err
	}

	var tokens transport.TokenSource = oauth.Unavailable{}
	if p.UseOAuth {
		tokens, err = setupOAuth(ctx, cfg, tcfg.Email)
	} else {
		tcfg.Password, err = obtainPassword(tcfg.Email)
	}
	if err != nil {
		return transport.Config{}, nil, "", err
	}

	tcfg.DisplayName, err = ui.Input("Display name (optional)", "", localPart(tcfg.Email), false)
	if err != nil {
		return transport.Config{}, nil, "", err
	}

	return tcfg, tokens, p.Key, nil
}

// fromSavedSettings rebuilds the transport config cached in a previous
// run, re-resolving the secret from the keyring or prompts.
func fromSavedSettings(ctx context.Context, cfg *model.Config) (transport.Config, transport.TokenSource, string, error) {
	s := cfg.Transport
	tcfg := transport.Config{
		Host:        s.Host,
		Port:        s.Port,
		UseTLS:      s.UseTLS,
		UseSSL:      s.UseSSL,
		Email:       s.Email,
		DisplayName: s.DisplayName,
		UseOAuth:    s.UseOAuth,
	}

	var tokens transport.TokenSource = oauth.Unavailable{}
	var err error
	if s.UseOAuth {
		tokens, err = setupOAuth(ctx, cfg, s.Email)
	} else {
		tcfg.Password, err = obtainPassword(s.Email)
	}
	if err != nil {
		return transport.Config{}, nil, "", err
	}

	return tcfg, tokens, s.Provider, nil
}

// promptManual collects a fully manual SMTP configuration.
func promptManual(ctx context.Context) (transport.Config, transport.TokenSource, string, error) {
	ui.Section("Manual SMTP Configuration")

	var tcfg transport.Config
	var err error

	tcfg.Host, err = ui.Input("SMTP server hostname", "", "", true)
	if err != nil {
		return transport.Config{}, nil, "", err
	}

	portStr, err := ui.Input("SMTP port", "", "587", true)
	if err != nil {
		return transport.Config{}, nil, "", err
	}
	tcfg.Port, err = strconv.Atoi(portStr)
	if err != nil {
		return transport.Config{}, nil, "", fmt.Errorf("invalid SMTP port %q: %w", portStr, err)
	}

	tcfg.UseTLS, err = ui.Confirm("Use STARTTLS?", true)
	if err != nil {
		return transport.Config{}, nil, "", err
	}
	if !tcfg.UseTLS {
		tcfg.UseSSL, err = ui.Confirm("Use implicit SSL/TLS?", false)
		if err != nil {
			return transport.Config{}, nil, "", err
		}
	}

	tcfg.Email, err = ui.Input("Your email address", "", "", true)
	if err != nil {
		return transport.Config{}, nil, "", err
	}

	tcfg.Password, err = obtainPassword(tcfg.Email)
	if err != nil {
		return transport.Config{}, nil, "", err
	}

	tcfg.DisplayName, err = ui.Input("Display name (optional)", "", localPart(tcfg.Email), false)
	if err != nil {
		return transport.Config{}, nil, "", err
	}

	return tcfg, oauth.Unavailable{}, preset.KeyManual, nil
}

// obtainPassword resolves the account password, preferring the system
// keyring over a fresh prompt.
func obtainPassword(email string) (string, error) {
	if saved, err := credential.Get(credential.PasswordKey(email)); err == nil {
		useSaved, err := ui.Confirm(
			fmt.Sprintf("Use the password saved in your keyring for %s?", email),
			true,
		)
		if err != nil {
			return "", err
		}
		if useSaved {
			return saved, nil
		}
	}

	password, err := ui.Password("Your password (or app password)", "")
	if err != nil {
		return "", err
	}

	save, err := ui.Confirm("Save the password to your system keyring?", true)
	if err != nil {
		return "", err
	}
	if save {
		if err := credential.Set(credential.PasswordKey(email), password); err != nil {
			ui.Warnf("Could not save password: %v", err)
		}
	}

	return password, nil
}

// setupOAuth loads the OAuth provider and runs the authorization-code
// flow when no refresh token is cached yet.
func setupOAuth(ctx context.Context, cfg *model.Config, email string) (transport.TokenSource, error) {
	if cfg.OAuthClientFile == "" {
		path, err := ui.Input(
			"OAuth client file",
			"Path to the OAuth client configuration JSON (Desktop app credentials)",
			"credentials.json",
			true,
		)
		if err != nil {
			return nil, err
		}
		cfg.OAuthClientFile = path
	}

	provider, err := oauth.LoadProvider(cfg.OAuthClientFile, email)
	if err != nil {
		ui.Errorf("%v", err)
		ui.Infof("To set up OAuth:")
		ui.Infof("  1. Go to https://console.cloud.google.com/")
		ui.Infof("  2. Create a project (or select an existing one)")
		ui.Infof("  3. Enable the Gmail API")
		ui.Infof("  4. Create OAuth 2.0 credentials (Desktop app)")
		ui.Infof("  5. Download the JSON and point the claimer at it")
		return nil, err
	}

	if !provider.HasToken() {
		ui.Infof("Visit this URL to authorize the claimer:")
		ui.Muted("  " + provider.AuthCodeURL())
		code, err := ui.Input("Authorization code", "", "", true)
		if err != nil {
			return nil, err
		}
		if err := provider.Exchange(ctx, code); err != nil {
			return nil, err
		}
		ui.Successf("Authorization complete; token stored in your keyring.")
	}

	return provider, nil
}

func localPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
