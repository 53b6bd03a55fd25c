package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/custodia-labs/jsm-agent/internal/core/domain"
	"github.com/custodia-labs/jsm-agent/internal/core/ports/driven"
	"github.com/custodia-labs/jsm-agent/internal/core/ports/driving"
)

const (
	// issueSearchPageSize is the maximum page size Jira Cloud allows for
	// issue search.
	issueSearchPageSize = 100

	// serviceDeskPageSize is the default and maximum limit for the
	// service desk listing endpoint.
	serviceDeskPageSize = 50
)

// Ensure IssueService implements the interface.
var _ driving.IssueService = (*IssueService)(nil)

// IssueService implements the issue-tracking operations on top of the
// resilient caller and the tenant resolver. Each operation is a thin
// single-call or simple-pagination use of the caller.
type IssueService struct {
	caller  driven.Caller
	tenants driving.TenantService
}

// NewIssueService creates an issue service.
func NewIssueService(caller driven.Caller, tenants driving.TenantService) *IssueService {
	return &IssueService{caller: caller, tenants: tenants}
}

// call resolves the tenant base and issues one request against it.
func (s *IssueService) call(
	ctx context.Context,
	sess driven.SessionStore,
	tenant, method, path string,
	body any,
	query url.Values,
) domain.Outcome {
	base, out := s.tenants.ResolveBase(ctx, sess, tenant)
	if !out.IsSuccess() {
		return out
	}
	return s.caller.Call(ctx, sess, driven.CallRequest{
		Method:  method,
		BaseURL: base,
		Path:    path,
		Body:    body,
		Query:   query,
	})
}

// ServerInfo fetches server metadata from the tenant. A success doubles as
// proof the active credentials are valid.
func (s *IssueService) ServerInfo(ctx context.Context, sess driven.SessionStore, tenant string) domain.Outcome {
	return s.call(ctx, sess, tenant, http.MethodGet, "/rest/api/3/serverInfo", nil, nil)
}

// ListIssues returns all issues matching the JQL query, following the
// startAt/maxResults pagination idiom until the reported total is reached.
func (s *IssueService) ListIssues(ctx context.Context, sess driven.SessionStore, tenant, jql string) domain.Outcome {
	fetch := func(ctx context.Context, start int) domain.Outcome {
		query := url.Values{}
		query.Set("jql", jql)
		query.Set("startAt", strconv.Itoa(start))
		query.Set("maxResults", strconv.Itoa(issueSearchPageSize))
		return s.call(ctx, sess, tenant, http.MethodGet, "/rest/api/3/search", nil, query)
	}
	return collectWithTotal(ctx, fetch, "issues", "total")
}

// CreateIssue creates an issue in the given project. The description is
// wrapped in a single-paragraph Atlassian Document Format document.
func (s *IssueService) CreateIssue(
	ctx context.Context,
	sess driven.SessionStore,
	tenant, projectKey, summary, description, issueType string,
) domain.Outcome {
	if issueType == "" {
		issueType = "Task"
	}
	body := map[string]any{
		"fields": map[string]any{
			"project":     map[string]any{"key": projectKey},
			"summary":     summary,
			"description": adfDocument(description),
			"issuetype":   map[string]any{"name": issueType},
		},
	}
	return s.call(ctx, sess, tenant, http.MethodPost, "/rest/api/3/issue", body, nil)
}

// GetIssue fetches a single issue by id or key.
func (s *IssueService) GetIssue(ctx context.Context, sess driven.SessionStore, tenant, issueKey string) domain.Outcome {
	return s.call(ctx, sess, tenant, http.MethodGet, "/rest/api/3/issue/"+issueKey, nil, nil)
}

// UpdateIssue updates the provided fields of an issue. An update carrying
// no fields is rejected before any I/O.
func (s *IssueService) UpdateIssue(
	ctx context.Context,
	sess driven.SessionStore,
	tenant, issueKey string,
	fields driving.IssueFields,
) domain.Outcome {
	update := map[string]any{}
	if fields.Summary != "" {
		update["summary"] = fields.Summary
	}
	if fields.Description != "" {
		update["description"] = adfDocument(fields.Description)
	}
	if len(update) == 0 {
		return domain.Errorf("No fields to update were provided.")
	}
	body := map[string]any{"fields": update}
	return s.call(ctx, sess, tenant, http.MethodPut, "/rest/api/3/issue/"+issueKey, body, nil)
}

// DeleteIssue deletes an issue by id or key.
func (s *IssueService) DeleteIssue(ctx context.Context, sess driven.SessionStore, tenant, issueKey string) domain.Outcome {
	return s.call(ctx, sess, tenant, http.MethodDelete, "/rest/api/3/issue/"+issueKey, nil, nil)
}

// AddComment adds a plain-text comment to an issue.
func (s *IssueService) AddComment(ctx context.Context, sess driven.SessionStore, tenant, issueKey, body string) domain.Outcome {
	payload := map[string]any{"body": adfDocument(body)}
	path := fmt.Sprintf("/rest/api/3/issue/%s/comment", issueKey)
	return s.call(ctx, sess, tenant, http.MethodPost, path, payload, nil)
}

// ListTransitions returns the transitions currently available for an issue.
func (s *IssueService) ListTransitions(ctx context.Context, sess driven.SessionStore, tenant, issueKey string) domain.Outcome {
	path := fmt.Sprintf("/rest/api/3/issue/%s/transitions", issueKey)
	return s.call(ctx, sess, tenant, http.MethodGet, path, nil, nil)
}

// PerformTransition moves an issue through the named transition.
func (s *IssueService) PerformTransition(
	ctx context.Context,
	sess driven.SessionStore,
	tenant, issueKey, transitionID string,
) domain.Outcome {
	body := map[string]any{"transition": map[string]any{"id": transitionID}}
	path := fmt.Sprintf("/rest/api/3/issue/%s/transitions", issueKey)
	return s.call(ctx, sess, tenant, http.MethodPost, path, body, nil)
}

// ListServiceDesks returns all service management projects, following the
// start/limit pagination idiom until the server marks the last page.
func (s *IssueService) ListServiceDesks(ctx context.Context, sess driven.SessionStore, tenant string) domain.Outcome {
	fetch := func(ctx context.Context, start int) domain.Outcome {
		query := url.Values{}
		query.Set("start", strconv.Itoa(start))
		query.Set("limit", strconv.Itoa(serviceDeskPageSize))
		return s.call(ctx, sess, tenant, http.MethodGet, "/rest/servicedeskapi/servicedesk", nil, query)
	}
	return collectUntilLastPage(ctx, fetch, "values", "isLastPage")
}

// adfDocument wraps plain text in a single-paragraph Atlassian Document
// Format document, the shape the v3 REST API requires for rich-text fields.
func adfDocument(text string) map[string]any {
	return map[string]any{
		"type":    "doc",
		"version": 1,
		"content": []any{
			map[string]any{
				"type": "paragraph",
				"content": []any{
					map[string]any{"type": "text", "text": text},
				},
			},
		},
	}
}
