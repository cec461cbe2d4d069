package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what a bearer token reveals about itself without verification.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
}

// InspectToken parses a bearer token as an unverified JWT for display purposes.
//
// The stores treat the token as opaque; this exists only so `auth status` can
// show the expiry claim. Verification is the backend's job, not the client's.
func InspectToken(token string) (*TokenInfo, error) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("token is not a parseable JWT: %w", err)
	}

	info := &TokenInfo{}

	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}

	return info, nil
}
