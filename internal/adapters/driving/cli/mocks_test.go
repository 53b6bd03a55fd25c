package cli

import (
	"context"

	"github.com/custodia-labs/jsm-agent/internal/core/domain"
	"github.com/custodia-labs/jsm-agent/internal/core/ports/driven"
	"github.com/custodia-labs/jsm-agent/internal/core/ports/driving"
)

// mockTenantService implements driving.TenantService for testing.
type mockTenantService struct {
	listOutcome domain.Outcome
}

var _ driving.TenantService = (*mockTenantService)(nil)

func (m *mockTenantService) List(_ context.Context, _ driven.SessionStore) domain.Outcome {
	return m.listOutcome
}

func (m *mockTenantService) ResolveBase(_ context.Context, _ driven.SessionStore, tenant string) (string, domain.Outcome) {
	return tenant, domain.Success(nil)
}

// mockIssueService implements driving.IssueService for testing.
type mockIssueService struct {
	lastOp     string
	lastTenant string
	lastArgs   []string
	outcome    domain.Outcome
}

var _ driving.IssueService = (*mockIssueService)(nil)

func (m *mockIssueService) record(op, tenant string, args ...string) domain.Outcome {
	m.lastOp = op
	m.lastTenant = tenant
	m.lastArgs = args
	return m.outcome
}

func (m *mockIssueService) ServerInfo(_ context.Context, _ driven.SessionStore, tenant string) domain.Outcome {
	return m.record("ServerInfo", tenant)
}

func (m *mockIssueService) ListIssues(_ context.Context, _ driven.SessionStore, tenant, jql string) domain.Outcome {
	return m.record("ListIssues", tenant, jql)
}

func (m *mockIssueService) CreateIssue(_ context.Context, _ driven.SessionStore, tenant, projectKey, summary, description, issueType string) domain.Outcome {
	return m.record("CreateIssue", tenant, projectKey, summary, description, issueType)
}

func (m *mockIssueService) GetIssue(_ context.Context, _ driven.SessionStore, tenant, issueKey string) domain.Outcome {
	return m.record("GetIssue", tenant, issueKey)
}

func (m *mockIssueService) UpdateIssue(_ context.Context, _ driven.SessionStore, tenant, issueKey string, fields driving.IssueFields) domain.Outcome {
	return m.record("UpdateIssue", tenant, issueKey, fields.Summary, fields.Description)
}

func (m *mockIssueService) DeleteIssue(_ context.Context, _ driven.SessionStore, tenant, issueKey string) domain.Outcome {
	return m.record("DeleteIssue", tenant, issueKey)
}

func (m *mockIssueService) AddComment(_ context.Context, _ driven.SessionStore, tenant, issueKey, body string) domain.Outcome {
	return m.record("AddComment", tenant, issueKey, body)
}

func (m *mockIssueService) ListTransitions(_ context.Context, _ driven.SessionStore, tenant, issueKey string) domain.Outcome {
	return m.record("ListTransitions", tenant, issueKey)
}

func (m *mockIssueService) PerformTransition(_ context.Context, _ driven.SessionStore, tenant, issueKey, transitionID string) domain.Outcome {
	return m.record("PerformTransition", tenant, issueKey, transitionID)
}

func (m *mockIssueService) ListServiceDesks(_ context.Context, _ driven.SessionStore, tenant string) domain.Outcome {
	return m.record("ListServiceDesks", tenant)
}
