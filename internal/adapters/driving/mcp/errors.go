// Package mcp provides an MCP (Model Context Protocol) server adapter for
// the JSM agent. It exposes Jira and Jira Service Management operations as
// tools that AI assistants can invoke.
package mcp

import "errors"

// ErrMissingTenantService is returned when the tenant service is not provided.
var ErrMissingTenantService = errors.New("mcp: tenant service is required")

// ErrMissingIssueService is returned when the issue service is not provided.
var ErrMissingIssueService = errors.New("mcp: issue service is required")
