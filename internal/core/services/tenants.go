package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/custodia-labs/jsm-agent/internal/config"
	"github.com/custodia-labs/jsm-agent/internal/core/domain"
	"github.com/custodia-labs/jsm-agent/internal/core/ports/driven"
	"github.com/custodia-labs/jsm-agent/internal/core/ports/driving"
	"github.com/custodia-labs/jsm-agent/internal/logger"
)

// InstanceCacheKey is the session key holding the resolved tenant cache.
const InstanceCacheKey = "jira_instance_cache"

// discoveryPath lists the cloud tenants reachable with the active identity.
const discoveryPath = "/oauth/token/accessible-resources"

// Ensure TenantService implements the interface.
var _ driving.TenantService = (*TenantService)(nil)

// TenantService resolves the remote deployments reachable for a session.
// Discovery runs at most once per session: once the cache is populated it
// is treated as valid for the session's remaining lifetime.
type TenantService struct {
	cfg    *config.Config
	caller driven.Caller
}

// NewTenantService creates a tenant resolver.
func NewTenantService(cfg *config.Config, caller driven.Caller) *TenantService {
	return &TenantService{cfg: cfg, caller: caller}
}

// List returns the reachable tenants as a domain.TenantMap.
func (s *TenantService) List(ctx context.Context, sess driven.SessionStore) domain.Outcome {
	// A statically configured instance bypasses discovery entirely.
	if s.cfg.Instance != "" {
		return domain.Success(domain.TenantMap{
			s.cfg.Instance: {},
		})
	}

	if sess == nil {
		return domain.Errorf("no session context when running in OAuth mode")
	}

	raw, ok, err := sess.Get(ctx, InstanceCacheKey)
	if err != nil {
		return domain.Errorf("read tenant cache: %v", err)
	}
	if ok {
		cached, err := domain.DecodeTenantMap(raw)
		if err == nil {
			return domain.Success(cached)
		}
		// Corrupt cache entry; rediscover and replace it wholesale.
		logger.Warn("discarding corrupt tenant cache: %v", err)
	}

	out := s.caller.Call(ctx, sess, driven.CallRequest{
		Method:  http.MethodGet,
		BaseURL: s.cfg.CloudBaseURL,
		Path:    discoveryPath,
	})
	if !out.IsSuccess() {
		logger.Debug("tenant discovery did not complete: %s", out.Message())
		return out
	}

	entries, ok := out.Data().([]any)
	if !ok {
		return domain.Errorf("unexpected tenant discovery response: %T", out.Data())
	}

	tenants := domain.TenantMap{}
	for _, entry := range entries {
		rec, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		url, _ := rec["url"].(string)
		if url == "" {
			continue
		}
		id, _ := rec["id"].(string)
		name, _ := rec["name"].(string)
		tenants[url] = domain.Tenant{ID: id, Name: name}
	}

	data, err := tenants.Encode()
	if err != nil {
		return domain.Errorf("encode tenant cache: %v", err)
	}
	if err := sess.Set(ctx, InstanceCacheKey, data); err != nil {
		return domain.Errorf("persist tenant cache: %v", err)
	}

	return domain.Success(tenants)
}

// ResolveBase maps a tenant reference to the concrete API base URL.
func (s *TenantService) ResolveBase(ctx context.Context, sess driven.SessionStore, tenant string) (string, domain.Outcome) {
	out := s.List(ctx, sess)
	if !out.IsSuccess() {
		return "", out
	}

	tenants, ok := out.Data().(domain.TenantMap)
	if !ok {
		return "", domain.Errorf("unexpected tenant map type: %T", out.Data())
	}

	entry, ok := tenants[tenant]
	if !ok {
		return "", domain.Errorf("tenant %s is not reachable with the current credentials; known tenants: %s",
			tenant, strings.Join(tenants.URLs(), ", "))
	}

	// Self-hosted tenants are addressed directly; cloud tenants go through
	// the gateway proxy keyed by their opaque id.
	if entry.ID == "" {
		return tenant, domain.Success(nil)
	}
	return fmt.Sprintf("%s/ex/jira/%s", s.cfg.CloudBaseURL, entry.ID), domain.Success(nil)
}
