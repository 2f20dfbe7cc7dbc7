package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// TransportSettings holds the cached mail-transport configuration. The
// account password is never stored here; it lives in the system keyring.
type TransportSettings struct {
	// Provider is the preset key this configuration came from
	// ("gmail", "manual", ...). Informational only.
	Provider string `mapstructure:"provider" yaml:"provider"`

	// Host and Port locate the outbound SMTP server.
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`

	// UseTLS upgrades the session with STARTTLS; UseSSL dials with
	// implicit TLS instead. At most one of the two is set.
	UseTLS bool `mapstructure:"use_tls" yaml:"use_tls"`
	UseSSL bool `mapstructure:"use_ssl" yaml:"use_ssl"`

	// Email is the sending account address.
	Email string `mapstructure:"email" yaml:"email"`

	// DisplayName is the From header display name.
	DisplayName string `mapstructure:"display_name" yaml:"display_name"`

	// UseOAuth selects XOAUTH2 authentication via the configured OAuth
	// client instead of a password.
	UseOAuth bool `mapstructure:"use_oauth" yaml:"use_oauth"`
}

// SentboxSettings controls the optional IMAP copy of sent mail.
type SentboxSettings struct {
	// Enabled turns the sent-mailbox copy on.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Host and Port locate the IMAP server; TLS selects implicit TLS
	// over STARTTLS.
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
	TLS  bool   `mapstructure:"tls" yaml:"tls"`
}

// Config is the top-level claimer configuration, cached between runs at
// DefaultConfigPath.
type Config struct {
	Transport TransportSettings `mapstructure:"transport" yaml:"transport"`
	Sentbox   SentboxSettings   `mapstructure:"sentbox" yaml:"sentbox"`

	// OAuthClientFile is the path to an OAuth client configuration JSON
	// (the "installed app" credentials download). Empty disables OAuth.
	OAuthClientFile string `mapstructure:"oauth_client_file" yaml:"oauth_client_file"`
}

// HasTransport reports whether a usable transport configuration was cached.
func (c *Config) HasTransport() bool {
	return c.Transport.Host != "" && c.Transport.Email != ""
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/farewell-claimer/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "farewell-claimer", "config.yaml")
}

// defaultConfig returns the configuration used when no file exists yet.
func defaultConfig() *Config {
	return &Config{
		Sentbox: SentboxSettings{TLS: true},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("sentbox.tls", true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("transport", cfg.Transport)
	v.Set("sentbox", cfg.Sentbox)
	v.Set("oauth_client_file", cfg.OAuthClientFile)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
