package core

import (
	"strings"
	"time"
)

// Credential is the access/refresh token pair for the external service.
// The zero value is the empty credential: no tokens, not authorized.
type Credential struct {
	AccessToken  string     `json:"access_token,omitempty"`
	RefreshToken string     `json:"refresh_token,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"` // nil means the token never expires
}

// Authorized reports whether the credential carries a usable access token.
func (c Credential) Authorized() bool {
	return strings.TrimSpace(c.AccessToken) != ""
}

// Status is the two-valued authentication state derived from the most
// recently committed credential.
type Status string

const (
	StatusLoggedOut Status = "logged_out"
	StatusLoggedIn  Status = "logged_in"
)

// StatusFor projects a credential onto its authentication status.
func StatusFor(c Credential) Status {
	if c.Authorized() {
		return StatusLoggedIn
	}
	return StatusLoggedOut
}
