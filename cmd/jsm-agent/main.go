// Command jsm-agent is the Jira / Jira Service Management agent. It serves
// MCP tools for AI assistants and a direct command-line interface on the
// same service core.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/custodia-labs/jsm-agent/internal/adapters/driven/consent"
	"github.com/custodia-labs/jsm-agent/internal/adapters/driven/jiraapi"
	"github.com/custodia-labs/jsm-agent/internal/adapters/driven/oauth"
	"github.com/custodia-labs/jsm-agent/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/jsm-agent/internal/adapters/driving/cli"
	"github.com/custodia-labs/jsm-agent/internal/config"
	"github.com/custodia-labs/jsm-agent/internal/core/ports/driven"
	"github.com/custodia-labs/jsm-agent/internal/core/services"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A local .env is a convenience for development; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("JSM_AGENT_CONFIG"))
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	store, err := sqlite.NewStore(os.Getenv("JSM_AGENT_DATA_DIR"))
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}
	defer store.Close()

	// One process is one session unless the hosting platform names it.
	sessionID := os.Getenv("JSM_AGENT_SESSION_ID")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	session := store.Session(sessionID)

	tokens := oauth.NewTokenClient()
	broker := consent.NewBroker(tokens)

	var refresher *services.Refresher
	if cfg.HasOAuthClient() {
		scheme, err := cfg.AuthScheme()
		if err != nil {
			return err
		}
		refresher = services.NewRefresher(scheme, broker, tokens)
	}

	selector := services.NewSelector(cfg, refresher)
	caller := jiraapi.NewClient(selector)
	tenants := services.NewTenantService(cfg, caller)
	issues := services.NewIssueService(caller, tenants)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Config:  cfg,
		Tenants: tenants,
		Issues:  issues,
		Session: sessionForMode(cfg, session),
		Broker:  broker,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.Execute(ctx)
}

// sessionForMode returns the session store the commands should use. Pure
// PAT mode carries no session state at all.
func sessionForMode(cfg *config.Config, session driven.SessionStore) driven.SessionStore {
	if cfg.HasPAT() && !cfg.HasDelegated() && !cfg.HasOAuthClient() {
		return nil
	}
	return session
}
