package services

import (
	"context"
	"time"

	"github.com/custodia-labs/jsm-agent/internal/core/domain"
	"github.com/custodia-labs/jsm-agent/internal/core/ports/driven"
	"github.com/custodia-labs/jsm-agent/internal/logger"
)

// TokenCacheKey is the session key holding the serialized credential record.
const TokenCacheKey = "jsm_agent_token"

// DefaultRefreshBuffer is how long before expiry a token is treated as
// stale and refreshed.
const DefaultRefreshBuffer = 5 * time.Minute

// RefreshState names a state of the credential refresh machine.
type RefreshState int

const (
	// StateNoCredential means no usable credential record is known yet.
	StateNoCredential RefreshState = iota
	// StateCredentialStale means a stored record exists and must be
	// evaluated for refresh.
	StateCredentialStale
	// StateCredentialFresh means the stored access token is usable as-is.
	StateCredentialFresh
	// StateAwaitingConsent means the user must complete the consent flow
	// out-of-band before any call can proceed.
	StateAwaitingConsent
)

// String returns the state name for diagnostics.
func (s RefreshState) String() string {
	switch s {
	case StateNoCredential:
		return "no-credential"
	case StateCredentialStale:
		return "credential-stale"
	case StateCredentialFresh:
		return "credential-fresh"
	case StateAwaitingConsent:
		return "awaiting-consent"
	default:
		return "unknown"
	}
}

// Refresher is the OAuth2 refresh state machine. One Ensure invocation
// drives the machine to a terminal state for the current call: fresh
// (success), awaiting consent (pending), or a terminal error. Refresh
// failures are never retried within a call; the store is cleared so the
// next call restarts the consent flow from scratch.
type Refresher struct {
	scheme        domain.AuthScheme
	consent       driven.ConsentBroker
	tokens        driven.TokenRefresher
	refreshBuffer time.Duration
}

// NewRefresher creates the refresh state machine for one auth scheme.
func NewRefresher(scheme domain.AuthScheme, consent driven.ConsentBroker, tokens driven.TokenRefresher) *Refresher {
	return &Refresher{
		scheme:        scheme,
		consent:       consent,
		tokens:        tokens,
		refreshBuffer: DefaultRefreshBuffer,
	}
}

// Ensure guarantees a fresh credential record is stored for the session, or
// reports why one is not available. It performs at most one refresh attempt
// and never blocks on user interaction.
func (r *Refresher) Ensure(ctx context.Context, sess driven.SessionStore) domain.Outcome {
	if sess == nil {
		return domain.Errorf("no session context when running in OAuth mode")
	}

	state := StateNoCredential
	var rec *domain.CredentialRecord

	for {
		logger.Debug("refresh state: %s", state)

		switch state {
		case StateNoCredential:
			raw, ok, err := sess.Get(ctx, TokenCacheKey)
			if err != nil {
				return domain.Errorf("read credential cache: %v", err)
			}
			if !ok {
				granted, err := r.consent.TryObtainGrant(ctx, r.scheme)
				if err != nil {
					return domain.Errorf("obtain granted credential: %v", err)
				}
				if granted != nil {
					if out := r.persist(ctx, sess, granted); !out.IsSuccess() {
						return out
					}
					return domain.Success(nil)
				}
				if err := r.consent.RequestConsent(ctx, r.scheme); err != nil {
					return domain.Errorf("request consent: %v", err)
				}
				state = StateAwaitingConsent
				continue
			}

			rec, err = domain.DecodeCredentialRecord(raw)
			if err != nil {
				// A corrupt record cannot be recovered; drop it so the
				// next call restarts the consent flow.
				_ = sess.Clear(ctx, TokenCacheKey)
				return domain.Errorf("decode stored credential: %v", err)
			}
			state = StateCredentialStale

		case StateCredentialStale:
			if !rec.NeedsRefresh(r.refreshBuffer) {
				state = StateCredentialFresh
				continue
			}

			refreshed, err := r.tokens.Refresh(ctx, r.scheme, rec.RefreshToken)
			if err != nil {
				_ = sess.Clear(ctx, TokenCacheKey)
				return domain.Errorf("token refresh failed: %v", err)
			}
			if refreshed.RefreshToken == "" {
				refreshed.RefreshToken = rec.RefreshToken
			}
			if out := r.persist(ctx, sess, refreshed); !out.IsSuccess() {
				return out
			}
			rec = refreshed
			state = StateCredentialFresh

		case StateCredentialFresh:
			return domain.Success(nil)

		case StateAwaitingConsent:
			return domain.Pending()
		}
	}
}

// StoredCredential returns the credential record currently persisted for
// the session, or nil when none is stored.
func (r *Refresher) StoredCredential(ctx context.Context, sess driven.SessionStore) (*domain.CredentialRecord, error) {
	raw, ok, err := sess.Get(ctx, TokenCacheKey)
	if err != nil || !ok {
		return nil, err
	}
	return domain.DecodeCredentialRecord(raw)
}

func (r *Refresher) persist(ctx context.Context, sess driven.SessionStore, rec *domain.CredentialRecord) domain.Outcome {
	data, err := rec.Encode()
	if err != nil {
		return domain.Errorf("encode credential: %v", err)
	}
	if err := sess.Set(ctx, TokenCacheKey, data); err != nil {
		return domain.Errorf("persist credential: %v", err)
	}
	return domain.Success(nil)
}
