package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, expiry time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "user:1",
		ExpiresAt: jwt.NewNumericDate(expiry),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()

	if tokenExpired(signedToken(t, now.Add(time.Hour)), now) {
		t.Error("future expiry reported as expired")
	}
	if !tokenExpired(signedToken(t, now.Add(-time.Hour)), now) {
		t.Error("past expiry not reported as expired")
	}
}

func TestTokenExpiredLeavesUndecodableTokensToBackend(t *testing.T) {
	if tokenExpired("not-a-jwt", time.Now()) {
		t.Error("opaque token treated as expired; the backend should judge it")
	}
}
