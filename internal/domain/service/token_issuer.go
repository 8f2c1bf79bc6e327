package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the registered claims carried by issued tokens. The subject is
// the username the token asserts.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenIssuer mints signed, time-bound bearer credentials. The signing key
// comes from configuration at process start; a missing or weak key is a
// startup-fatal condition, not a per-request failure.
type TokenIssuer interface {
	// Issue creates a signed token asserting subject, expiring ttl from now.
	Issue(subject string, ttl time.Duration) (string, error)

	// Parse verifies a token's signature and expiry and returns its claims.
	// Tokens signed with an unexpected algorithm are rejected.
	Parse(tokenString string) (*Claims, error)

	// Lifetime returns the configured token lifetime.
	Lifetime() time.Duration
}
