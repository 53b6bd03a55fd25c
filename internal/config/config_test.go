package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jsm-agent/internal/core/domain"
)

// clearEnv unsets every variable the loader reads so host state cannot
// leak into tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DELEGATED_AUTH_ID", "JIRA_USERNAME", "JIRA_API_TOKEN",
		"JIRA_INSTANCE", "JIRA_CLOUD_BASE_URL",
		"OAUTH_CLIENT_ID", "OAUTH_CLIENT_SECRET", "OAUTH_AUTH_URL",
		"OAUTH_TOKEN_URL", "OAUTH_AUDIENCE", "OAUTH_REDIRECT_URI",
		"OAUTH_SCOPES",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadMissingFileIsFine(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultCloudBaseURL, cfg.CloudBaseURL)
	assert.Equal(t, DefaultScopes, cfg.OAuth.Scopes)
	assert.False(t, cfg.HasDelegated())
	assert.False(t, cfg.HasPAT())
	assert.False(t, cfg.HasOAuthClient())
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
username = "user@example.com"
api_token = "pat-token"
instance = "https://jira.example.com"

[oauth]
client_id = "client-1"
client_secret = "secret"
auth_url = "https://auth.example.com/authorize"
token_url = "https://auth.example.com/token"
scopes = ["read:jira-work"]
`), 0600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.True(t, cfg.HasPAT())
	assert.True(t, cfg.HasOAuthClient())
	assert.Equal(t, "https://jira.example.com", cfg.Instance)
	assert.Equal(t, []string{"read:jira-work"}, cfg.OAuth.Scopes)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`username = "file-user"`), 0600))

	t.Setenv("JIRA_USERNAME", "env-user")
	t.Setenv("JIRA_API_TOKEN", "env-token")
	t.Setenv("OAUTH_SCOPES", "read:jira-work write:jira-work")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "env-user", cfg.Username)
	assert.Equal(t, "env-token", cfg.APIToken)
	assert.Equal(t, []string{"read:jira-work", "write:jira-work"}, cfg.OAuth.Scopes)
}

func TestLoadBadTOML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`username = `), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestAuthScheme(t *testing.T) {
	clearEnv(t)

	cfg := &Config{OAuth: OAuth{
		ClientID:     "client-1",
		ClientSecret: "secret",
		AuthURL:      "https://auth.example.com/authorize",
		TokenURL:     "https://auth.example.com/token",
		Scopes:       []string{"offline_access"},
		Audience:     "api.atlassian.com",
	}}

	scheme, err := cfg.AuthScheme()
	require.NoError(t, err)
	assert.Equal(t, "client-1", scheme.ClientID)
	assert.Equal(t, "api.atlassian.com", scheme.Audience)
}

func TestAuthSchemeIncomplete(t *testing.T) {
	cfg := &Config{OAuth: OAuth{ClientID: "client-1"}}

	_, err := cfg.AuthScheme()
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := &Config{
		Username:     "user@example.com",
		APIToken:     "pat-token",
		CloudBaseURL: DefaultCloudBaseURL,
	}

	require.NoError(t, cfg.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", loaded.Username)
	assert.Equal(t, "pat-token", loaded.APIToken)
}
