// Package cli implements the jsm-agent command-line interface using cobra.
// Commands are package-level variables registered in init; services are
// injected once at startup via SetServices.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jsm-agent/internal/adapters/driven/consent"
	"github.com/custodia-labs/jsm-agent/internal/config"
	"github.com/custodia-labs/jsm-agent/internal/core/ports/driven"
	"github.com/custodia-labs/jsm-agent/internal/core/ports/driving"
	"github.com/custodia-labs/jsm-agent/internal/logger"
)

// version is set at startup via SetVersion.
var version = "dev"

// Injected services. Commands guard against nil so the package can be
// tested without full wiring.
var (
	agentConfig   *config.Config
	tenantService driving.TenantService
	issueService  driving.IssueService
	sessionStore  driven.SessionStore
	authBroker    *consent.Broker
)

// Services bundles the dependencies the CLI commands need.
type Services struct {
	Config  *config.Config
	Tenants driving.TenantService
	Issues  driving.IssueService
	Session driven.SessionStore
	Broker  *consent.Broker
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	agentConfig = s.Config
	tenantService = s.Tenants
	issueService = s.Issues
	sessionStore = s.Session
	authBroker = s.Broker
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "jsm-agent",
	Short: "Jira and Jira Service Management agent",
	Long: `jsm-agent exposes Jira and Jira Service Management operations to AI
assistants over the Model Context Protocol, and to humans on the command
line.

Authentication is resolved automatically from configuration: a delegated
platform token when hosted, a static API token when configured, or a
managed OAuth flow otherwise.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(
		&verboseFlag, "verbose", "v", false, "Enable verbose logging to stderr")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
