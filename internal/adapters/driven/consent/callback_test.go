//nolint:noctx // Test file uses http.Get for convenience; context not required in tests
package consent

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startedServer starts a callback server on a random port and registers
// cleanup.
func startedServer(t *testing.T, state string) *CallbackServer {
	t.Helper()
	server := NewCallbackServer(0, state)
	require.NoError(t, server.Start())
	t.Cleanup(func() { server.Stop() })
	return server
}

func TestCallbackServer_RandomPort(t *testing.T) {
	server := startedServer(t, "state-1")

	assert.NotZero(t, server.Port(), "port 0 must be replaced with the bound port")
	assert.Equal(t, fmt.Sprintf("http://localhost:%d/callback", server.Port()), server.RedirectURI())
}

func TestCallbackServer_Stop_NotStarted(t *testing.T) {
	server := NewCallbackServer(0, "state")
	require.NoError(t, server.Stop())
}

func TestCallbackServer_HandleCallback_Success(t *testing.T) {
	server := startedServer(t, "state-abc")

	callbackURL := fmt.Sprintf("http://127.0.0.1:%d/callback?code=auth-code-1&state=state-abc", server.Port())
	resp, err := http.Get(callbackURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	code, err := server.WaitForCode(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, "auth-code-1", code)
}

func TestCallbackServer_HandleCallback_StateMismatch(t *testing.T) {
	server := startedServer(t, "state-abc")

	callbackURL := fmt.Sprintf("http://127.0.0.1:%d/callback?code=auth-code-1&state=wrong", server.Port())
	resp, err := http.Get(callbackURL)
	require.NoError(t, err)
	defer resp.Body.Close()

	_, err = server.WaitForCode(2 * time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "state mismatch")
}

func TestCallbackServer_HandleCallback_ProviderError(t *testing.T) {
	server := startedServer(t, "state-abc")

	q := url.Values{}
	q.Set("error", "access_denied")
	q.Set("error_description", "User denied access")
	callbackURL := fmt.Sprintf("http://127.0.0.1:%d/callback?%s", server.Port(), q.Encode())

	resp, err := http.Get(callbackURL)
	require.NoError(t, err)
	defer resp.Body.Close()

	_, err = server.WaitForCode(2 * time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access_denied")
}

func TestCallbackServer_HandleCallback_MissingCode(t *testing.T) {
	server := startedServer(t, "state-abc")

	callbackURL := fmt.Sprintf("http://127.0.0.1:%d/callback?state=state-abc", server.Port())
	resp, err := http.Get(callbackURL)
	require.NoError(t, err)
	defer resp.Body.Close()

	_, err = server.WaitForCode(2 * time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no authorization code")
}

func TestWaitForCode_Timeout(t *testing.T) {
	server := startedServer(t, "state-abc")

	_, err := server.WaitForCode(50 * time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestGenerateCodeVerifier(t *testing.T) {
	a := GenerateCodeVerifier()
	b := GenerateCodeVerifier()

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
	// Base64url without padding.
	assert.NotContains(t, a, "=")
	assert.NotContains(t, a, "+")
	assert.NotContains(t, a, "/")
}

func TestGenerateCodeChallenge(t *testing.T) {
	verifier := "test-verifier"

	challenge := GenerateCodeChallenge(verifier)

	assert.NotEmpty(t, challenge)
	assert.NotEqual(t, verifier, challenge)
	// Deterministic for the same verifier.
	assert.Equal(t, challenge, GenerateCodeChallenge(verifier))
}
