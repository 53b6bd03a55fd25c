package domain

import (
	"encoding/json"
	"time"
)

// CredentialRecord stores the serialized OAuth credential persisted in the
// session store. It is owned by the session store for the lifetime of a
// session and mutated only by the refresh state machine.
type CredentialRecord struct {
	// TokenType is typically "Bearer".
	TokenType string `json:"token_type"`
	// AccessToken is the bearer token for API access.
	AccessToken string `json:"access_token"`
	// RefreshToken is used to obtain new access tokens.
	RefreshToken string `json:"refresh_token,omitempty"`
	// Expiry is when the access token expires.
	Expiry time.Time `json:"expiry,omitempty"`
	// ClientID records which OAuth client issued the tokens.
	ClientID string `json:"client_id,omitempty"`
}

// IsExpired returns true if the access token has expired.
// Tokens without an expiry never expire.
func (r *CredentialRecord) IsExpired() bool {
	if r.Expiry.IsZero() {
		return false
	}
	return time.Now().After(r.Expiry)
}

// NeedsRefresh returns true if the token is expired or expires within the
// given buffer and a refresh token is available to renew it.
func (r *CredentialRecord) NeedsRefresh(buffer time.Duration) bool {
	if r.RefreshToken == "" {
		return false
	}
	if r.Expiry.IsZero() {
		return false
	}
	return time.Until(r.Expiry) < buffer
}

// HasRefreshToken returns true if a refresh token is available.
func (r *CredentialRecord) HasRefreshToken() bool {
	return r.RefreshToken != ""
}

// Encode serializes the record for the session store.
func (r *CredentialRecord) Encode() ([]byte, error) {
	return json.Marshal(r)
}

// DecodeCredentialRecord deserializes a record from the session store.
func DecodeCredentialRecord(data []byte) (*CredentialRecord, error) {
	var rec CredentialRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// AuthScheme describes the OAuth2 authorization-code flow of the downstream
// provider. It is derived once from configuration at startup and immutable
// afterwards; components receive it by injection rather than reading global
// state.
type AuthScheme struct {
	// ClientID is the OAuth client ID from the provider's developer console.
	ClientID string
	// ClientSecret is the OAuth client secret.
	ClientSecret string
	// AuthURL is the authorization endpoint.
	AuthURL string
	// TokenURL is the token exchange and refresh endpoint.
	TokenURL string
	// Scopes are the OAuth scopes to request. The offline access scope must
	// be included for the provider to issue refresh tokens.
	Scopes []string
	// Audience is an optional audience parameter some providers require.
	Audience string
	// RedirectURI is the callback URI (default: http://localhost:PORT/callback).
	RedirectURI string
}
