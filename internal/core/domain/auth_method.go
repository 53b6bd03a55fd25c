package domain

// AuthMethod identifies which credential strategy authenticates a call.
type AuthMethod string

const (
	// AuthMethodDelegated uses a bearer token supplied by a hosting
	// platform on behalf of an already-authenticated user.
	AuthMethodDelegated AuthMethod = "delegated"
	// AuthMethodPAT uses a static personal access token with Basic auth.
	AuthMethodPAT AuthMethod = "pat"
	// AuthMethodOAuth uses the managed OAuth2 authorization-code flow.
	AuthMethodOAuth AuthMethod = "oauth"
)

// Authorization is the resolved header material for a single call.
type Authorization struct {
	// Method records which strategy produced this authorization.
	Method AuthMethod
	// Token is the bearer token (delegated and oauth methods).
	Token string
	// Username and Secret carry HTTP Basic credentials (pat method).
	Username string
	Secret   string
}
