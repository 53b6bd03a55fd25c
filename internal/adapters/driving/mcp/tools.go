package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/jsm-agent/internal/core/domain"
	"github.com/custodia-labs/jsm-agent/internal/core/ports/driving"
)

// InstancesInput is the input schema for the list_jira_instances tool.
type InstancesInput struct{}

// ServerInfoInput is the input schema for the get_jira_server_info tool.
type ServerInfoInput struct {
	Instance string `json:"instance" jsonschema:"base URL of the Jira instance to query"`
}

// ListIssuesInput is the input schema for the list_jira_issues tool.
type ListIssuesInput struct {
	Instance string `json:"instance" jsonschema:"base URL of the Jira instance to query"`
	JQL      string `json:"jql,omitempty" jsonschema:"JQL query to filter issues; empty returns all issues"`
}

// CreateIssueInput is the input schema for the create_jira_issue tool.
type CreateIssueInput struct {
	Instance    string `json:"instance" jsonschema:"base URL of the Jira instance to query"`
	ProjectKey  string `json:"project_key" jsonschema:"key of the project to create the issue in"`
	Summary     string `json:"summary" jsonschema:"one-line summary of the issue"`
	Description string `json:"description,omitempty" jsonschema:"longer description of the issue"`
	IssueType   string `json:"issue_type,omitempty" jsonschema:"issue type name, defaults to Task"`
}

// IssueKeyInput is the input schema for tools addressing a single issue.
type IssueKeyInput struct {
	Instance string `json:"instance" jsonschema:"base URL of the Jira instance to query"`
	IssueKey string `json:"issue_key" jsonschema:"id or key of the issue, e.g. PROJ-123"`
}

// UpdateIssueInput is the input schema for the update_jira_issue tool.
type UpdateIssueInput struct {
	Instance    string `json:"instance" jsonschema:"base URL of the Jira instance to query"`
	IssueKey    string `json:"issue_key" jsonschema:"id or key of the issue, e.g. PROJ-123"`
	Summary     string `json:"summary,omitempty" jsonschema:"new summary; empty leaves the summary unchanged"`
	Description string `json:"description,omitempty" jsonschema:"new description; empty leaves the description unchanged"`
}

// AddCommentInput is the input schema for the add_comment_to_jira_issue tool.
type AddCommentInput struct {
	Instance string `json:"instance" jsonschema:"base URL of the Jira instance to query"`
	IssueKey string `json:"issue_key" jsonschema:"id or key of the issue, e.g. PROJ-123"`
	Comment  string `json:"comment" jsonschema:"comment text to add to the issue"`
}

// TransitionInput is the input schema for the perform_jira_issue_transition tool.
type TransitionInput struct {
	Instance     string `json:"instance" jsonschema:"base URL of the Jira instance to query"`
	IssueKey     string `json:"issue_key" jsonschema:"id or key of the issue, e.g. PROJ-123"`
	TransitionID string `json:"transition_id" jsonschema:"id of the transition to perform"`
}

// ServiceDesksInput is the input schema for the list_jsm_service_projects tool.
type ServiceDesksInput struct {
	Instance string `json:"instance" jsonschema:"base URL of the Jira instance to query"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_jira_instances",
		Description: "List the Jira instances reachable with the current credentials",
	}, s.handleListInstances)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_jira_server_info",
		Description: "Fetch server metadata for a Jira instance; useful to verify connectivity and credentials",
	}, s.handleServerInfo)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_jira_issues",
		Description: "List issues in a Jira instance, optionally filtered by a JQL query",
	}, s.handleListIssues)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_jira_issue",
		Description: "Create a new issue in a Jira project",
	}, s.handleCreateIssue)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_jira_issue",
		Description: "Fetch a single Jira issue by id or key",
	}, s.handleGetIssue)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_jira_issue",
		Description: "Update the summary or description of a Jira issue",
	}, s.handleUpdateIssue)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_jira_issue",
		Description: "Delete a Jira issue by id or key",
	}, s.handleDeleteIssue)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_comment_to_jira_issue",
		Description: "Add a comment to a Jira issue",
	}, s.handleAddComment)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_jira_issue_transitions",
		Description: "List the workflow transitions currently available for a Jira issue",
	}, s.handleListTransitions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "perform_jira_issue_transition",
		Description: "Move a Jira issue through a workflow transition",
	}, s.handlePerformTransition)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_jsm_service_projects",
		Description: "List the Jira Service Management projects in an instance",
	}, s.handleListServiceDesks)
}

// outcomeResult converts an outcome into the shared tool result shape.
func outcomeResult(out domain.Outcome) (*mcp.CallToolResult, map[string]any, error) {
	return nil, out.AsMap(), nil
}

func (s *Server) handleListInstances(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ InstancesInput,
) (*mcp.CallToolResult, map[string]any, error) {
	return outcomeResult(s.ports.Tenants.List(ctx, s.ports.Session))
}

func (s *Server) handleServerInfo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ServerInfoInput,
) (*mcp.CallToolResult, map[string]any, error) {
	return outcomeResult(s.ports.Issues.ServerInfo(ctx, s.ports.Session, input.Instance))
}

func (s *Server) handleListIssues(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListIssuesInput,
) (*mcp.CallToolResult, map[string]any, error) {
	return outcomeResult(s.ports.Issues.ListIssues(ctx, s.ports.Session, input.Instance, input.JQL))
}

func (s *Server) handleCreateIssue(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateIssueInput,
) (*mcp.CallToolResult, map[string]any, error) {
	return outcomeResult(s.ports.Issues.CreateIssue(
		ctx, s.ports.Session, input.Instance,
		input.ProjectKey, input.Summary, input.Description, input.IssueType,
	))
}

func (s *Server) handleGetIssue(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IssueKeyInput,
) (*mcp.CallToolResult, map[string]any, error) {
	return outcomeResult(s.ports.Issues.GetIssue(ctx, s.ports.Session, input.Instance, input.IssueKey))
}

func (s *Server) handleUpdateIssue(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateIssueInput,
) (*mcp.CallToolResult, map[string]any, error) {
	fields := driving.IssueFields{Summary: input.Summary, Description: input.Description}
	return outcomeResult(s.ports.Issues.UpdateIssue(ctx, s.ports.Session, input.Instance, input.IssueKey, fields))
}

func (s *Server) handleDeleteIssue(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IssueKeyInput,
) (*mcp.CallToolResult, map[string]any, error) {
	return outcomeResult(s.ports.Issues.DeleteIssue(ctx, s.ports.Session, input.Instance, input.IssueKey))
}

func (s *Server) handleAddComment(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddCommentInput,
) (*mcp.CallToolResult, map[string]any, error) {
	return outcomeResult(s.ports.Issues.AddComment(ctx, s.ports.Session, input.Instance, input.IssueKey, input.Comment))
}

func (s *Server) handleListTransitions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IssueKeyInput,
) (*mcp.CallToolResult, map[string]any, error) {
	return outcomeResult(s.ports.Issues.ListTransitions(ctx, s.ports.Session, input.Instance, input.IssueKey))
}

func (s *Server) handlePerformTransition(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TransitionInput,
) (*mcp.CallToolResult, map[string]any, error) {
	return outcomeResult(s.ports.Issues.PerformTransition(ctx, s.ports.Session, input.Instance, input.IssueKey, input.TransitionID))
}

func (s *Server) handleListServiceDesks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ServiceDesksInput,
) (*mcp.CallToolResult, map[string]any, error) {
	return outcomeResult(s.ports.Issues.ListServiceDesks(ctx, s.ports.Session, input.Instance))
}
