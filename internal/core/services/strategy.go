package services

import (
	"context"

	"github.com/custodia-labs/jsm-agent/internal/config"
	"github.com/custodia-labs/jsm-agent/internal/core/domain"
	"github.com/custodia-labs/jsm-agent/internal/core/ports/driven"
	"github.com/custodia-labs/jsm-agent/internal/logger"
)

// delegatedKeyPrefix is the session namespace the hosting platform writes
// pre-authenticated bearer tokens under.
const delegatedKeyPrefix = "temp:"

// Ensure Selector implements the AuthResolver port.
var _ driven.AuthResolver = (*Selector)(nil)

// Selector picks the credential strategy for each call, in fixed precedence
// order: delegated bearer token, static PAT, managed OAuth. Selection is
// pure and re-evaluated per call; a missing session context can
// legitimately occur on some calls and not others within one process.
type Selector struct {
	cfg       *config.Config
	refresher *Refresher
}

// NewSelector creates a strategy selector. The refresher may be nil when no
// OAuth client is configured; calls falling through to the OAuth strategy
// then fail with an error outcome rather than at construction.
func NewSelector(cfg *config.Config, refresher *Refresher) *Selector {
	return &Selector{cfg: cfg, refresher: refresher}
}

// Resolve returns the authorization for one call or a short-circuit
// outcome. The authorization is non-nil exactly when the outcome is
// success.
func (s *Selector) Resolve(ctx context.Context, sess driven.SessionStore) (*domain.Authorization, domain.Outcome) {
	// 1. Delegated token deposited by the hosting platform. The platform
	// owns the token lifetime; no refresh logic applies.
	if s.cfg.HasDelegated() && sess != nil {
		raw, ok, err := sess.Get(ctx, delegatedKeyPrefix+s.cfg.DelegatedAuthID)
		if err != nil {
			return nil, domain.Errorf("read delegated token: %v", err)
		}
		if ok && len(raw) > 0 {
			logger.Debug("using delegated token from host platform")
			return &domain.Authorization{
				Method: domain.AuthMethodDelegated,
				Token:  string(raw),
			}, domain.Success(nil)
		}
	}

	// 2. Static personal access token with Basic auth. Stateless.
	if s.cfg.HasPAT() {
		logger.Debug("running in PAT mode")
		return &domain.Authorization{
			Method:   domain.AuthMethodPAT,
			Username: s.cfg.Username,
			Secret:   s.cfg.APIToken,
		}, domain.Success(nil)
	}

	// 3. Managed OAuth2 with refresh.
	logger.Debug("running in OAuth mode")
	if sess == nil {
		return nil, domain.Errorf("no session context when running in OAuth mode")
	}
	if s.refresher == nil {
		return nil, domain.Errorf("OAuth client is not configured")
	}

	if out := s.refresher.Ensure(ctx, sess); !out.IsSuccess() {
		return nil, out
	}

	rec, err := s.refresher.StoredCredential(ctx, sess)
	if err != nil {
		return nil, domain.Errorf("read stored credential: %v", err)
	}
	if rec == nil || rec.AccessToken == "" {
		return nil, domain.Errorf("no credentials when running in OAuth mode")
	}

	return &domain.Authorization{
		Method: domain.AuthMethodOAuth,
		Token:  rec.AccessToken,
	}, domain.Success(nil)
}
