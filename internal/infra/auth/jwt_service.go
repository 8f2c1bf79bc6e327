package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"authgate/config"
	"authgate/internal/domain/service"
	"authgate/internal/errors"
)

// minSigningKeyBytes is the minimum symmetric key length, 256 bits.
const minSigningKeyBytes = 32

// jwtService implements service.TokenIssuer using HMAC-SHA256 signed JWTs.
type jwtService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTIssuer builds the token issuer from configuration. A missing or short
// signing key is a startup-fatal condition: the constructor errors and the
// process refuses to start.
func NewJWTIssuer(cfg *config.Config) (service.TokenIssuer, error) {
	if cfg.SecretKey.Signing == "" {
		return nil, errors.New("token signing key must be provided")
	}
	if len(cfg.SecretKey.Signing) < minSigningKeyBytes {
		return nil, errors.Errorf("token signing key must be at least %d bytes", minSigningKeyBytes)
	}

	ttl := config.DefaultTokenLifetime
	if cfg.Auth != nil && cfg.Auth.TokenLifetime > 0 {
		ttl = cfg.Auth.TokenLifetime
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.Signing),
		ttl:    ttl,
	}, nil
}

// Issue creates a signed token asserting subject, expiring ttl from now.
// A non-positive ttl falls back to the configured lifetime.
func (s *jwtService) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.ttl
	}

	now := time.Now()
	claims := &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Parse verifies signature and expiry and returns the token's claims. The
// keyfunc pins the HMAC family so a token claiming any other algorithm is
// rejected before signature verification.
func (s *jwtService) Parse(tokenString string) (*service.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &service.Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token")
	}

	claims, ok := token.Claims.(*service.Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// Lifetime returns the configured token lifetime.
func (s *jwtService) Lifetime() time.Duration {
	return s.ttl
}
