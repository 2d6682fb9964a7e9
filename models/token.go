package models

import "github.com/golang-jwt/jwt/v5"

// Token type tags carried in the "type" claim. A token is only accepted by a
// validator expecting the same tag: access tokens cannot be replayed against
// the refresh endpoint and vice versa.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenClaims is the claim set shared by access and refresh tokens.
//
// It embeds [jwt.RegisteredClaims] for the standard sub/iat/exp fields and
// adds the portal-specific identity attributes the UI needs to render the
// caller's session without extra lookups.
type TokenClaims struct {
	jwt.RegisteredClaims

	// UserID duplicates the "sub" claim as the opaque login identifier.
	UserID string `json:"user_id"`

	Email   string `json:"email"`
	GroupID string `json:"group_id"`

	// TokenType is TokenTypeAccess or TokenTypeRefresh.
	TokenType string `json:"type"`
}

// TokenPair is the response of a successful login or refresh: a short-lived
// access token and a longer-lived refresh token used solely to mint a new
// pair.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`

	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int64 `json:"expires_in"`
}
