package mcp

import (
	"context"

	"github.com/custodia-labs/jsm-agent/internal/core/domain"
	"github.com/custodia-labs/jsm-agent/internal/core/ports/driven"
	"github.com/custodia-labs/jsm-agent/internal/core/ports/driving"
)

// mockTenantService implements driving.TenantService for testing.
type mockTenantService struct {
	listFunc    func(ctx context.Context, sess driven.SessionStore) domain.Outcome
	resolveFunc func(ctx context.Context, sess driven.SessionStore, tenant string) (string, domain.Outcome)
}

var _ driving.TenantService = (*mockTenantService)(nil)

func (m *mockTenantService) List(ctx context.Context, sess driven.SessionStore) domain.Outcome {
	if m.listFunc != nil {
		return m.listFunc(ctx, sess)
	}
	return domain.Success(domain.TenantMap{})
}

func (m *mockTenantService) ResolveBase(ctx context.Context, sess driven.SessionStore, tenant string) (string, domain.Outcome) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, sess, tenant)
	}
	return tenant, domain.Success(nil)
}

// mockIssueService implements driving.IssueService for testing. Each call is
// recorded so tests can assert on the arguments the adapter forwarded.
type mockIssueService struct {
	lastOp     string
	lastTenant string
	lastArgs   []string
	lastFields driving.IssueFields
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
	m.lastFields = fields
	return m.record("UpdateIssue", tenant, issueKey)
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
