// Package oauth performs OAuth2 token grants against the provider's token
// endpoint: authorization-code exchange and refresh-token renewal.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/jsm-agent/internal/core/domain"
	"github.com/custodia-labs/jsm-agent/internal/core/ports/driven"
)

// Ensure TokenClient implements the TokenRefresher port.
var _ driven.TokenRefresher = (*TokenClient)(nil)

// TokenClient talks to an OAuth2 token endpoint.
type TokenClient struct {
	http *http.Client
}

// NewTokenClient creates a token client with the standard 30s timeout.
func NewTokenClient() *TokenClient {
	return &TokenClient{
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// tokenResponse holds the response from a token grant.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// Refresh performs a single refresh-token grant. A rejected or unreachable
// grant is returned as an error; the caller decides what to do with the
// stored record.
func (c *TokenClient) Refresh(
	ctx context.Context,
	scheme domain.AuthScheme,
	refreshToken string,
) (*domain.CredentialRecord, error) {
	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", refreshToken)
	data.Set("client_id", scheme.ClientID)
	data.Set("client_secret", scheme.ClientSecret)

	return c.grant(ctx, scheme, data)
}

// ExchangeCode exchanges an authorization code for tokens.
func (c *TokenClient) ExchangeCode(
	ctx context.Context,
	scheme domain.AuthScheme,
	code, redirectURI, codeVerifier string,
) (*domain.CredentialRecord, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("client_id", scheme.ClientID)
	data.Set("client_secret", scheme.ClientSecret)
	data.Set("code", code)
	data.Set("redirect_uri", redirectURI)
	if codeVerifier != "" {
		data.Set("code_verifier", codeVerifier)
	}

	return c.grant(ctx, scheme, data)
}

// grant posts a form-encoded grant request and decodes the credential.
func (c *TokenClient) grant(
	ctx context.Context,
	scheme domain.AuthScheme,
	data url.Values,
) (*domain.CredentialRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, scheme.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error       string `json:"error"`
			Description string `json:"error_description"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			return nil, fmt.Errorf("token error: %s - %s", errResp.Error, errResp.Description)
		}
		return nil, fmt.Errorf("token request failed with status %d", resp.StatusCode)
	}

	var tokenResp tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}

	rec := &domain.CredentialRecord{
		TokenType:    tokenResp.TokenType,
		AccessToken:  tokenResp.AccessToken,
		RefreshToken: tokenResp.RefreshToken,
		ClientID:     scheme.ClientID,
	}
	if rec.TokenType == "" {
		rec.TokenType = "Bearer"
	}
	if tokenResp.ExpiresIn > 0 {
		rec.Expiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	}

	return rec, nil
}
