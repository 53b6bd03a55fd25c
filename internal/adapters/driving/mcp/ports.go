package mcp

import (
	"github.com/custodia-labs/jsm-agent/internal/core/ports/driven"
	"github.com/custodia-labs/jsm-agent/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Tenants discovers and resolves reachable Jira deployments.
	Tenants driving.TenantService

	// Issues performs issue operations against a tenant.
	Issues driving.IssueService

	// Session is the key-value state shared by all tools in this server
	// process. May be nil when running purely in PAT mode.
	Session driven.SessionStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Tenants == nil {
		return ErrMissingTenantService
	}
	if p.Issues == nil {
		return ErrMissingIssueService
	}
	// Session is optional; PAT mode needs no session state.
	return nil
}
