package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jsm-agent/internal/config"
	"github.com/custodia-labs/jsm-agent/internal/core/domain"
)

func discoveryResponse() domain.Outcome {
	return domain.Success([]any{
		map[string]any{"url": "https://acme.atlassian.net", "id": "abc-123", "name": "acme"},
		map[string]any{"url": "https://beta.atlassian.net", "id": "def-456", "name": "beta"},
		map[string]any{"name": "missing url is skipped"},
	})
}

func TestTenantListFixedInstance(t *testing.T) {
	cfg := &config.Config{Instance: "https://jira.example.com"}
	caller := &mockCaller{}

	out := NewTenantService(cfg, caller).List(context.Background(), nil)

	require.True(t, out.IsSuccess())
	assert.Equal(t, domain.TenantMap{"https://jira.example.com": {}}, out.Data())
	assert.Empty(t, caller.requests, "a fixed instance never triggers discovery")
}

func TestTenantListNilSession(t *testing.T) {
	out := NewTenantService(&config.Config{}, &mockCaller{}).List(context.Background(), nil)

	assert.True(t, out.IsError())
	assert.Contains(t, out.Message(), "no session context")
}

func TestTenantListDiscoversAndCaches(t *testing.T) {
	cfg := &config.Config{CloudBaseURL: "https://api.atlassian.com"}
	caller := &mockCaller{outcomes: []domain.Outcome{discoveryResponse()}}
	svc := NewTenantService(cfg, caller)
	sess := newFakeSession()

	out := svc.List(context.Background(), sess)

	require.True(t, out.IsSuccess())
	tenants := out.Data().(domain.TenantMap)
	assert.Len(t, tenants, 2)
	assert.Equal(t, "abc-123", tenants["https://acme.atlassian.net"].ID)

	require.Len(t, caller.requests, 1)
	assert.Equal(t, "https://api.atlassian.com", caller.requests[0].BaseURL)
	assert.Equal(t, "/oauth/token/accessible-resources", caller.requests[0].Path)

	// A second listing is served from the session cache without I/O.
	out = svc.List(context.Background(), sess)
	require.True(t, out.IsSuccess())
	assert.Len(t, caller.requests, 1)
}

func TestTenantListCorruptCacheRediscovers(t *testing.T) {
	cfg := &config.Config{CloudBaseURL: "https://api.atlassian.com"}
	caller := &mockCaller{outcomes: []domain.Outcome{discoveryResponse()}}
	sess := newFakeSession()
	sess.values[InstanceCacheKey] = []byte("{corrupt")

	out := NewTenantService(cfg, caller).List(context.Background(), sess)

	require.True(t, out.IsSuccess())
	assert.Len(t, caller.requests, 1)
}

func TestTenantListPropagatesPending(t *testing.T) {
	caller := &mockCaller{outcomes: []domain.Outcome{domain.Pending()}}

	out := NewTenantService(&config.Config{}, caller).List(context.Background(), newFakeSession())

	assert.True(t, out.IsPending())
}

func TestResolveBaseCloudTenant(t *testing.T) {
	cfg := &config.Config{CloudBaseURL: "https://api.atlassian.com"}
	caller := &mockCaller{outcomes: []domain.Outcome{discoveryResponse()}}

	base, out := NewTenantService(cfg, caller).ResolveBase(
		context.Background(), newFakeSession(), "https://acme.atlassian.net")

	require.True(t, out.IsSuccess())
	assert.Equal(t, "https://api.atlassian.com/ex/jira/abc-123", base)
}

func TestResolveBaseSelfHostedTenant(t *testing.T) {
	cfg := &config.Config{Instance: "https://jira.example.com"}

	base, out := NewTenantService(cfg, &mockCaller{}).ResolveBase(
		context.Background(), nil, "https://jira.example.com")

	require.True(t, out.IsSuccess())
	assert.Equal(t, "https://jira.example.com", base)
}

func TestResolveBaseUnknownTenantNamesKnownOnes(t *testing.T) {
	cfg := &config.Config{CloudBaseURL: "https://api.atlassian.com"}
	caller := &mockCaller{outcomes: []domain.Outcome{discoveryResponse()}}

	_, out := NewTenantService(cfg, caller).ResolveBase(
		context.Background(), newFakeSession(), "https://other.atlassian.net")

	assert.True(t, out.IsError())
	assert.Contains(t, out.Message(), "https://other.atlassian.net")
	assert.Contains(t, out.Message(), "https://acme.atlassian.net")
	assert.Contains(t, out.Message(), "https://beta.atlassian.net")
}
