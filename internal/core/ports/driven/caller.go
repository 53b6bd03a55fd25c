package driven

import (
	"context"
	"net/url"

	"github.com/custodia-labs/jsm-agent/internal/core/domain"
)

// CallRequest describes one outbound request to the downstream API.
type CallRequest struct {
	// Method is the HTTP method (GET, POST, PUT, DELETE).
	Method string
	// BaseURL is the resolved API base for the target tenant.
	BaseURL string
	// Path is the endpoint path appended to BaseURL.
	Path string
	// Body, when non-nil, is marshalled as the JSON request body.
	Body any
	// Query holds optional query parameters.
	Query url.Values
}

// Caller issues authenticated HTTP calls against the downstream API and
// normalizes every transport and HTTP outcome into the tri-state Outcome.
// Implementations never retry and never let raw errors escape.
type Caller interface {
	// Call executes one request for the given session. The session may be
	// nil for unauthenticated harnesses; strategies that require a session
	// surface that as an error outcome.
	Call(ctx context.Context, sess SessionStore, req CallRequest) domain.Outcome
}

// AuthResolver selects the credential strategy for one call and resolves
// the authorization material to attach to it. Selection is re-evaluated on
// every call; there is no global strategy caching.
type AuthResolver interface {
	// Resolve returns the authorization for the call, or a short-circuit
	// outcome: Pending while user consent is outstanding, Error when no
	// strategy can authenticate the call. The authorization is non-nil
	// exactly when the outcome is success.
	Resolve(ctx context.Context, sess SessionStore) (*domain.Authorization, domain.Outcome)
}
