package models

// Role represents the effective authorization role of the current user
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
)

// TokenClaims holds the decoded payload segment of a bearer token.
// Raw keeps the payload JSON for tolerant claim traversal, Fields the
// parsed object. A zero TokenClaims is the empty-claims result that
// malformed or absent tokens decode to.
type TokenClaims struct {
	Raw    []byte
	Fields map[string]interface{}
}

// Empty reports whether the claims are the fail-open empty result
func (c TokenClaims) Empty() bool {
	return len(c.Raw) == 0
}

// PreferredUsername returns the preferred_username claim, if present
func (c TokenClaims) PreferredUsername() string {
	if v, ok := c.Fields["preferred_username"].(string); ok {
		return v
	}
	return ""
}

// TokenResponse is the payload returned by the identity token endpoint
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// LoginRequest carries credentials for the demo identity endpoint
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
