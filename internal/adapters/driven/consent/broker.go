// Package consent implements the out-of-band OAuth consent capability with
// a local callback server, PKCE, and a browser launch.
package consent

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/jsm-agent/internal/adapters/driven/oauth"
	"github.com/custodia-labs/jsm-agent/internal/core/domain"
	"github.com/custodia-labs/jsm-agent/internal/core/ports/driven"
	"github.com/custodia-labs/jsm-agent/internal/logger"
)

// consentTimeout bounds how long a background consent flow waits for the
// user before giving up. A later call simply re-initiates the flow.
const consentTimeout = 5 * time.Minute

// Ensure Broker implements the ConsentBroker port.
var _ driven.ConsentBroker = (*Broker)(nil)

// Broker runs the consent round trip. RequestConsent starts a callback
// server, opens the browser, and returns immediately; a background
// goroutine exchanges the captured code so a subsequent TryObtainGrant can
// pick up the credential.
type Broker struct {
	tokens *oauth.TokenClient

	mu      sync.Mutex
	pending bool
	granted *domain.CredentialRecord
}

// NewBroker creates a consent broker using the given token client.
func NewBroker(tokens *oauth.TokenClient) *Broker {
	return &Broker{tokens: tokens}
}

// TryObtainGrant returns a credential from a consent flow the user has
// already completed, or (nil, nil) when none is available yet. A returned
// grant is handed over exactly once.
func (b *Broker) TryObtainGrant(_ context.Context, _ domain.AuthScheme) (*domain.CredentialRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.granted == nil {
		return nil, nil
	}
	rec := b.granted
	b.granted = nil
	b.pending = false
	return rec, nil
}

// RequestConsent initiates the consent flow. It is fire-and-forget: the
// user completes the flow in their browser while the current call returns
// Pending. Repeated requests while a flow is outstanding are no-ops.
func (b *Broker) RequestConsent(_ context.Context, scheme domain.AuthScheme) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pending {
		return nil
	}

	state := uuid.NewString()
	server, redirectURI, err := b.startCallbackServer(scheme, state)
	if err != nil {
		return err
	}

	verifier := GenerateCodeVerifier()
	authURL := authCodeURL(scheme, state, verifier, redirectURI)

	logger.Info("complete authentication at: %s", authURL)
	if err := OpenBrowser(authURL); err != nil {
		logger.Warn("could not open browser: %v", err)
	}

	b.pending = true
	go b.await(scheme, server, redirectURI, verifier)
	return nil
}

// Authorize runs the full consent flow synchronously. Used by the CLI
// login command where blocking on the user is the whole point.
func (b *Broker) Authorize(ctx context.Context, scheme domain.AuthScheme) (*domain.CredentialRecord, error) {
	state := uuid.NewString()
	server, redirectURI, err := b.startCallbackServer(scheme, state)
	if err != nil {
		return nil, err
	}
	defer server.Stop()

	verifier := GenerateCodeVerifier()
	authURL := authCodeURL(scheme, state, verifier, redirectURI)

	fmt.Printf("Opening browser for authorization...\n\nIf the browser does not open, visit:\n%s\n\n", authURL)
	if err := OpenBrowser(authURL); err != nil {
		logger.Warn("could not open browser: %v", err)
	}

	code, err := server.WaitForCode(consentTimeout)
	if err != nil {
		return nil, err
	}

	return b.tokens.ExchangeCode(ctx, scheme, code, redirectURI, verifier)
}

// startCallbackServer starts the local redirect listener. A configured
// redirect URI pins the port (it must match the OAuth app registration);
// otherwise a random port is chosen.
func (b *Broker) startCallbackServer(scheme domain.AuthScheme, state string) (*CallbackServer, string, error) {
	port := 0
	if scheme.RedirectURI != "" {
		u, err := url.Parse(scheme.RedirectURI)
		if err != nil {
			return nil, "", fmt.Errorf("parse redirect URI: %w", err)
		}
		if p := u.Port(); p != "" {
			port, _ = strconv.Atoi(p)
		}
	}

	server := NewCallbackServer(port, state)
	if err := server.Start(); err != nil {
		return nil, "", err
	}

	redirectURI := scheme.RedirectURI
	if redirectURI == "" {
		redirectURI = server.RedirectURI()
	}
	return server, redirectURI, nil
}

// await exchanges the captured code in the background so a later call can
// pick the grant up via TryObtainGrant.
func (b *Broker) await(scheme domain.AuthScheme, server *CallbackServer, redirectURI, verifier string) {
	code, err := server.WaitForCode(consentTimeout)
	_ = server.Stop()

	if err != nil {
		logger.Warn("consent flow did not complete: %v", err)
		b.mu.Lock()
		b.pending = false
		b.mu.Unlock()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	rec, err := b.tokens.ExchangeCode(ctx, scheme, code, redirectURI, verifier)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = false
	if err != nil {
		logger.Warn("authorization code exchange failed: %v", err)
		return
	}
	b.granted = rec
}

// authCodeURL builds the provider authorization URL with PKCE.
func authCodeURL(scheme domain.AuthScheme, state, verifier, redirectURI string) string {
	cfg := &oauth2.Config{
		ClientID:     scheme.ClientID,
		ClientSecret: scheme.ClientSecret,
		RedirectURL:  redirectURI,
		Scopes:       scheme.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  scheme.AuthURL,
			TokenURL: scheme.TokenURL,
		},
	}

	opts := []oauth2.AuthCodeOption{
		oauth2.SetAuthURLParam("code_challenge", GenerateCodeChallenge(verifier)),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
		oauth2.SetAuthURLParam("prompt", "consent"),
	}
	if scheme.Audience != "" {
		opts = append(opts, oauth2.SetAuthURLParam("audience", scheme.Audience))
	}

	return cfg.AuthCodeURL(state, opts...)
}
