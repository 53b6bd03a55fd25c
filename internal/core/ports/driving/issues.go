package driving

import (
	"context"

	"github.com/custodia-labs/jsm-agent/internal/core/domain"
	"github.com/custodia-labs/jsm-agent/internal/core/ports/driven"
)

// IssueFields carries the mutable fields of an issue update. Empty fields
// are left untouched; an update with no fields set is rejected.
type IssueFields struct {
	Summary     string
	Description string
}

// IssueService exposes the issue-tracking operations the agent can perform
// against a tenant. Every operation returns the tri-state Outcome; the
// session may be nil when running without a session context (PAT mode).
type IssueService interface {
	// ServerInfo fetches server metadata, which doubles as a credential
	// validity check.
	ServerInfo(ctx context.Context, sess driven.SessionStore, tenant string) domain.Outcome

	// ListIssues returns all issues matching the JQL query, following
	// pagination to exhaustion.
	ListIssues(ctx context.Context, sess driven.SessionStore, tenant, jql string) domain.Outcome

	// CreateIssue creates an issue in the given project.
	CreateIssue(ctx context.Context, sess driven.SessionStore, tenant, projectKey, summary, description, issueType string) domain.Outcome

	// GetIssue fetches a single issue by id or key.
	GetIssue(ctx context.Context, sess driven.SessionStore, tenant, issueKey string) domain.Outcome

	// UpdateIssue updates the provided fields of an issue.
	UpdateIssue(ctx context.Context, sess driven.SessionStore, tenant, issueKey string, fields IssueFields) domain.Outcome

	// DeleteIssue deletes an issue by id or key.
	DeleteIssue(ctx context.Context, sess driven.SessionStore, tenant, issueKey string) domain.Outcome

	// AddComment adds a comment to an issue.
	AddComment(ctx context.Context, sess driven.SessionStore, tenant, issueKey, body string) domain.Outcome

	// ListTransitions returns the transitions currently available for an
	// issue.
	ListTransitions(ctx context.Context, sess driven.SessionStore, tenant, issueKey string) domain.Outcome

	// PerformTransition moves an issue through the named transition.
	PerformTransition(ctx context.Context, sess driven.SessionStore, tenant, issueKey, transitionID string) domain.Outcome

	// ListServiceDesks returns all service management projects, following
	// pagination to exhaustion.
	ListServiceDesks(ctx context.Context, sess driven.SessionStore, tenant string) domain.Outcome
}
