package core

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpiryFromToken probes an access token for a JWT "exp" claim. Some token
// endpoints omit expires_in but issue JWT access tokens; the embedded claim
// is the only expiry information we get. The token is parsed without
// signature verification, the claim is informational only.
//
// Returns nil for opaque tokens, malformed JWTs, or JWTs without an expiry.
func ExpiryFromToken(raw string) *time.Time {
	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(raw, &claims); err != nil {
		return nil
	}
	if claims.ExpiresAt == nil {
		return nil
	}
	exp := claims.ExpiresAt.Time
	return &exp
}
