package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/jsm-agent/internal/core/domain"
	"github.com/custodia-labs/jsm-agent/internal/core/services"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long: `Inspect and manage the credentials jsm-agent uses to reach Jira.

Three strategies are supported, tried in order:
  1. A delegated token deposited in the session by a hosting platform
  2. A static API token (username + token, sent as basic auth)
  3. A managed OAuth flow against the configured authorization server

Examples:
  # Complete the OAuth consent flow and store the credential
  jsm-agent auth login

  # Store a static API token in the config file
  jsm-agent auth set-token

  # Show which strategy is active
  jsm-agent auth status

  # Drop the stored OAuth credential
  jsm-agent auth logout`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Complete the OAuth consent flow and store the credential",
	RunE:  runAuthLogin,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active authentication strategy",
	RunE:  runAuthStatus,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored OAuth credential",
	RunE:  runAuthLogout,
}

var authSetTokenCmd = &cobra.Command{
	Use:   "set-token",
	Short: "Store a static API token in the config file",
	RunE:  runAuthSetToken,
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authSetTokenCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	if agentConfig == nil || authBroker == nil || sessionStore == nil {
		return errors.New("authentication is not configured")
	}

	scheme, err := agentConfig.AuthScheme()
	if err != nil {
		return err
	}

	rec, err := authBroker.Authorize(cmd.Context(), scheme)
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	data, err := rec.Encode()
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}
	if err := sessionStore.Set(cmd.Context(), services.TokenCacheKey, data); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}

	cmd.Println("Logged in.")
	if !rec.Expiry.IsZero() {
		cmd.Printf("Access token expires at %s\n", rec.Expiry.Format(time.RFC3339))
	}
	if rec.HasRefreshToken() {
		cmd.Println("A refresh token is stored; the credential renews automatically.")
	}
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	if agentConfig == nil {
		return errors.New("authentication is not configured")
	}

	if agentConfig.HasDelegated() {
		cmd.Printf("Delegated mode: tokens are supplied by the hosting platform (auth id %s).\n",
			agentConfig.DelegatedAuthID)
		return nil
	}
	if agentConfig.HasPAT() {
		cmd.Printf("API token mode: authenticating as %s.\n", agentConfig.Username)
		return nil
	}
	if !agentConfig.HasOAuthClient() {
		cmd.Println("No authentication configured.")
		cmd.Println("Run 'jsm-agent auth set-token' or configure an OAuth client.")
		return nil
	}

	if sessionStore == nil {
		cmd.Println("OAuth mode: no session store available.")
		return nil
	}

	raw, ok, err := sessionStore.Get(cmd.Context(), services.TokenCacheKey)
	if err != nil {
		return fmt.Errorf("read credential: %w", err)
	}
	if !ok {
		cmd.Println("OAuth mode: not logged in. Run 'jsm-agent auth login'.")
		return nil
	}

	rec, err := domain.DecodeCredentialRecord(raw)
	if err != nil {
		return fmt.Errorf("stored credential is unreadable: %w", err)
	}

	cmd.Println("OAuth mode: logged in.")
	switch {
	case rec.Expiry.IsZero():
		cmd.Println("Access token has no recorded expiry.")
	case rec.IsExpired():
		cmd.Printf("Access token expired at %s", rec.Expiry.Format(time.RFC3339))
		if rec.HasRefreshToken() {
			cmd.Print("; it will be refreshed on the next call")
		}
		cmd.Println(".")
	default:
		cmd.Printf("Access token expires at %s.\n", rec.Expiry.Format(time.RFC3339))
	}
	return nil
}

func runAuthLogout(cmd *cobra.Command, _ []string) error {
	if sessionStore == nil {
		return errors.New("no session store available")
	}

	if err := sessionStore.Clear(cmd.Context(), services.TokenCacheKey); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	if err := sessionStore.Clear(cmd.Context(), services.InstanceCacheKey); err != nil {
		return fmt.Errorf("clear instance cache: %w", err)
	}

	cmd.Println("Logged out.")
	return nil
}

//nolint:errcheck // CLI interactive flow
func runAuthSetToken(cmd *cobra.Command, _ []string) error {
	if agentConfig == nil {
		return errors.New("configuration not loaded")
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Printf("Jira username (email) [%s]: ", agentConfig.Username)
	input, _ := reader.ReadString('\n')
	username := strings.TrimSpace(input)
	if username == "" {
		username = agentConfig.Username
	}
	if username == "" {
		return errors.New("username is required")
	}

	cmd.Print("API token: ")
	token := readSecret()
	cmd.Println()
	if token == "" {
		return errors.New("API token is required")
	}

	cfg := *agentConfig
	cfg.Username = username
	cfg.APIToken = token
	if err := cfg.Save(""); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	cmd.Println("API token saved. It takes effect on the next start.")
	return nil
}

// readSecret reads a line without echoing when stdin is a terminal.
func readSecret() string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
