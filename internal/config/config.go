// Package config loads the immutable process configuration for the JSM
// agent. Configuration is read once at startup from an optional TOML file
// overlaid with environment variables, then passed into components by
// injection; nothing re-reads configuration at call time.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/jsm-agent/internal/core/domain"
)

// DefaultCloudBaseURL is the Atlassian cloud API gateway used for tenant
// discovery and as the proxy base for cloud tenants.
const DefaultCloudBaseURL = "https://api.atlassian.com"

// DefaultScopes are requested when no scopes are configured. offline_access
// is required for the provider to issue refresh tokens.
var DefaultScopes = []string{"offline_access", "read:jira-user", "read:jira-work"}

// OAuth holds the OAuth2 client configuration.
type OAuth struct {
	ClientID     string   `toml:"client_id"`
	ClientSecret string   `toml:"client_secret"`
	AuthURL      string   `toml:"auth_url"`
	TokenURL     string   `toml:"token_url"`
	Scopes       []string `toml:"scopes"`
	Audience     string   `toml:"audience"`
	RedirectURI  string   `toml:"redirect_uri"`
}

// Config is the process configuration. It is immutable after Load.
type Config struct {
	// DelegatedAuthID names the session key under which a hosting platform
	// deposits a pre-authenticated bearer token. Empty disables the
	// delegated strategy.
	DelegatedAuthID string `toml:"delegated_auth_id"`

	// Username and APIToken enable the static PAT strategy when both are
	// set.
	Username string `toml:"username"`
	APIToken string `toml:"api_token"`

	// Instance, when set, pins a single fixed tenant and bypasses tenant
	// discovery entirely (self-hosted deployments).
	Instance string `toml:"instance"`

	// CloudBaseURL is the cloud gateway for discovery and tenant proxying.
	CloudBaseURL string `toml:"cloud_base_url"`

	OAuth OAuth `toml:"oauth"`
}

// Load reads configuration from the TOML file at path (default
// ~/.jsm-agent/config.toml) and applies environment overrides. A missing
// file is not an error; environment-only configuration is supported.
func Load(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".jsm-agent", "config.toml")
	}

	cfg := &Config{CloudBaseURL: DefaultCloudBaseURL}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Environment-only configuration.
	default:
		return nil, err
	}

	cfg.applyEnv()

	if cfg.CloudBaseURL == "" {
		cfg.CloudBaseURL = DefaultCloudBaseURL
	}
	if len(cfg.OAuth.Scopes) == 0 {
		cfg.OAuth.Scopes = DefaultScopes
	}

	return cfg, nil
}

// Save writes the configuration as TOML to path (default
// ~/.jsm-agent/config.toml). The running process keeps its loaded values;
// saved changes apply on the next start.
func (c *Config) Save(path string) error {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		path = filepath.Join(home, ".jsm-agent", "config.toml")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	// The file may hold an API token; keep it private.
	return os.WriteFile(path, data, 0600)
}

// applyEnv overlays environment variables onto file-derived values.
func (c *Config) applyEnv() {
	setString(&c.DelegatedAuthID, "DELEGATED_AUTH_ID")
	setString(&c.Username, "JIRA_USERNAME")
	setString(&c.APIToken, "JIRA_API_TOKEN")
	setString(&c.Instance, "JIRA_INSTANCE")
	setString(&c.CloudBaseURL, "JIRA_CLOUD_BASE_URL")

	setString(&c.OAuth.ClientID, "OAUTH_CLIENT_ID")
	setString(&c.OAuth.ClientSecret, "OAUTH_CLIENT_SECRET")
	setString(&c.OAuth.AuthURL, "OAUTH_AUTH_URL")
	setString(&c.OAuth.TokenURL, "OAUTH_TOKEN_URL")
	setString(&c.OAuth.Audience, "OAUTH_AUDIENCE")
	setString(&c.OAuth.RedirectURI, "OAUTH_REDIRECT_URI")

	if v := os.Getenv("OAUTH_SCOPES"); v != "" {
		c.OAuth.Scopes = strings.Fields(v)
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// HasDelegated reports whether the delegated strategy is configured.
func (c *Config) HasDelegated() bool {
	return c.DelegatedAuthID != ""
}

// HasPAT reports whether the static PAT strategy is configured.
func (c *Config) HasPAT() bool {
	return c.Username != "" && c.APIToken != ""
}

// HasOAuthClient reports whether a complete OAuth client is configured.
func (c *Config) HasOAuthClient() bool {
	o := c.OAuth
	return o.ClientID != "" && o.ClientSecret != "" && o.AuthURL != "" && o.TokenURL != ""
}

// AuthScheme derives the immutable OAuth2 scheme descriptor. It fails with
// a configuration error when the OAuth client is incomplete; callers invoke
// this at construction time, before any I/O.
func (c *Config) AuthScheme() (domain.AuthScheme, error) {
	if !c.HasOAuthClient() {
		return domain.AuthScheme{}, fmt.Errorf(
			"%w: OAUTH_CLIENT_ID, OAUTH_CLIENT_SECRET, OAUTH_AUTH_URL and OAUTH_TOKEN_URL must be set",
			domain.ErrConfiguration)
	}
	return domain.AuthScheme{
		ClientID:     c.OAuth.ClientID,
		ClientSecret: c.OAuth.ClientSecret,
		AuthURL:      c.OAuth.AuthURL,
		TokenURL:     c.OAuth.TokenURL,
		Scopes:       c.OAuth.Scopes,
		Audience:     c.OAuth.Audience,
		RedirectURI:  c.OAuth.RedirectURI,
	}, nil
}
