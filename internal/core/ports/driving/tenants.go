package driving

import (
	"context"

	"github.com/custodia-labs/jsm-agent/internal/core/domain"
	"github.com/custodia-labs/jsm-agent/internal/core/ports/driven"
)

// TenantService discovers and resolves the remote deployments reachable
// under the active identity.
type TenantService interface {
	// List returns the tenants reachable for the session as a success
	// outcome carrying a domain.TenantMap. The result is cached in the
	// session after the first successful discovery.
	List(ctx context.Context, sess driven.SessionStore) domain.Outcome

	// ResolveBase maps a tenant reference (its base URL) to the concrete
	// API base to call. The outcome is success when resolution succeeded;
	// the resolved base is then the first return value.
	ResolveBase(ctx context.Context, sess driven.SessionStore, tenant string) (string, domain.Outcome)
}
