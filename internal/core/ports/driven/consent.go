package driven

import (
	"context"

	"github.com/custodia-labs/jsm-agent/internal/core/domain"
)

// ConsentBroker is the injected capability for the out-of-band OAuth
// consent round trip. The broker owns the interaction with the user;
// the refresh state machine only asks two questions of it.
type ConsentBroker interface {
	// TryObtainGrant returns a credential obtained from a consent flow the
	// user has already completed out-of-band, or (nil, nil) when no grant
	// is available yet.
	TryObtainGrant(ctx context.Context, scheme domain.AuthScheme) (*domain.CredentialRecord, error)

	// RequestConsent triggers the external consent UX for the scheme.
	// It is fire-and-forget: the call returns once the flow is initiated,
	// not when the user completes it.
	RequestConsent(ctx context.Context, scheme domain.AuthScheme) error
}

// TokenRefresher exchanges a refresh token for a new credential record.
type TokenRefresher interface {
	// Refresh performs a single refresh-token grant against the scheme's
	// token endpoint.
	Refresh(ctx context.Context, scheme domain.AuthScheme, refreshToken string) (*domain.CredentialRecord, error)
}
