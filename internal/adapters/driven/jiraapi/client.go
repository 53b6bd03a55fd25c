// Package jiraapi issues authenticated HTTP calls against Jira REST
// endpoints and normalizes every transport and HTTP outcome into the
// tri-state domain.Outcome.
package jiraapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/jsm-agent/internal/core/domain"
	"github.com/custodia-labs/jsm-agent/internal/core/ports/driven"
	"github.com/custodia-labs/jsm-agent/internal/logger"
)

const (
	// DefaultTimeout is the fixed HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// proactiveRate throttles outbound calls to stay under the Jira Cloud
	// per-user rate limit.
	proactiveRate = 10 // requests per second
)

// Ensure Client implements the Caller port.
var _ driven.Caller = (*Client)(nil)

// Client is the resilient call executor. It resolves authorization per
// call, enforces the fixed timeout, and never retries: a non-2xx response
// is surfaced immediately as an error outcome. Only the OAuth refresh step
// inside the auth resolver contains bounded try-once-more logic.
type Client struct {
	auth    driven.AuthResolver
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a call executor using the given auth resolver.
func NewClient(auth driven.AuthResolver) *Client {
	return &Client{
		auth:    auth,
		http:    &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(proactiveRate), 1),
	}
}

// Call executes one request and returns the tri-state outcome. The auth
// resolver may short-circuit with Pending or Error before any network I/O.
func (c *Client) Call(ctx context.Context, sess driven.SessionStore, req driven.CallRequest) domain.Outcome {
	auth, out := c.auth.Resolve(ctx, sess)
	if !out.IsSuccess() {
		return out
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return domain.Errorf("%s %s: %v", req.Method, req.Path, err)
	}

	endpoint := req.BaseURL + req.Path

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return domain.Errorf("%s %s: encode request body: %v", req.Method, req.Path, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, endpoint, body)
	if err != nil {
		return domain.Errorf("%s %s: %v", req.Method, req.Path, err)
	}
	if len(req.Query) > 0 {
		httpReq.URL.RawQuery = req.Query.Encode()
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	switch auth.Method {
	case domain.AuthMethodPAT:
		httpReq.SetBasicAuth(auth.Username, auth.Secret)
	default:
		httpReq.Header.Set("Authorization", "Bearer "+auth.Token)
	}

	logger.Debug("request %s %s (%s auth)", req.Method, endpoint, auth.Method)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return domain.Errorf("An error occurred while calling Jira API endpoint %s %s: %v", req.Method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Errorf("An error occurred while calling Jira API endpoint %s %s: %v", req.Method, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Method:     req.Method,
			URL:        endpoint,
			Body:       truncate(string(raw), maxErrorBody),
		}
		return domain.Errorf("An error occurred while calling Jira API endpoint %s %s: %v", req.Method, endpoint, apiErr)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return domain.Success(map[string]any{})
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return domain.Errorf("%s %s: decode response: %v", req.Method, endpoint, err)
	}
	return domain.Success(decoded)
}

// maxErrorBody bounds how much of an error response body is carried in
// diagnostics.
const maxErrorBody = 512

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
