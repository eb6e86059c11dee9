// internal/domain/session/token.go
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired decodes the persisted JWT without verifying its signature
// (the backend owns the signing key) and reports whether its expiry has
// passed. A token that cannot be decoded, or that carries no expiry, is left
// for the backend to judge during rehydration.
func tokenExpired(tokenString string, now time.Time) bool {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return false
	}

	expiry, err := token.Claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return false
	}
	return expiry.Before(now)
}
