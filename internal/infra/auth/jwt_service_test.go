package auth

import (
	"testing"
	"time"

	"authgate/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSigningKey = "0123456789abcdef0123456789abcdef"

func newTestConfig(key string, ttl time.Duration) *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{TokenLifetime: ttl},
	}
	cfg.SecretKey.Signing = key

	return cfg
}

func TestJWTIssuer_IssueAndParse(t *testing.T) {
	issuer, err := NewJWTIssuer(newTestConfig(testSigningKey, 30*time.Minute))
	require.NoError(t, err)

	before := time.Now()
	token, err := issuer.Issue("alice", 30*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)

	// Expiry lands ~30 minutes after issuance, within clock-skew tolerance.
	expectedExpiry := before.Add(30 * time.Minute)
	assert.WithinDuration(t, expectedExpiry, claims.ExpiresAt.Time, 5*time.Second)
	assert.WithinDuration(t, before, claims.IssuedAt.Time, 5*time.Second)
}

func TestJWTIssuer_DefaultLifetime(t *testing.T) {
	issuer, err := NewJWTIssuer(newTestConfig(testSigningKey, 0))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultTokenLifetime, issuer.Lifetime())

	token, err := issuer.Issue("alice", 0)
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(config.DefaultTokenLifetime), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTIssuer_ExpiredTokenRejected(t *testing.T) {
	issuer, err := NewJWTIssuer(newTestConfig(testSigningKey, time.Minute))
	require.NoError(t, err)

	token, err := issuer.Issue("alice", -time.Minute)
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTIssuer_WrongKeyRejected(t *testing.T) {
	issuer, err := NewJWTIssuer(newTestConfig(testSigningKey, time.Minute))
	require.NoError(t, err)

	other, err := NewJWTIssuer(newTestConfig("another-signing-key-of-32-bytes!", time.Minute))
	require.NoError(t, err)

	token, err := other.Issue("alice", time.Minute)
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.Error(t, err)
}

func TestJWTIssuer_UnexpectedAlgorithmRejected(t *testing.T) {
	issuer, err := NewJWTIssuer(newTestConfig(testSigningKey, time.Minute))
	require.NoError(t, err)

	// Unsigned token claiming alg "none" must never pass verification.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.Parse(unsigned)
	assert.Error(t, err)
}

func TestJWTIssuer_MissingKeyFatal(t *testing.T) {
	_, err := NewJWTIssuer(newTestConfig("", time.Minute))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "signing key must be provided")
}

func TestJWTIssuer_ShortKeyFatal(t *testing.T) {
	_, err := NewJWTIssuer(newTestConfig("too-short", time.Minute))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 bytes")
}

func TestJWTIssuer_MalformedToken(t *testing.T) {
	issuer, err := NewJWTIssuer(newTestConfig(testSigningKey, time.Minute))
	require.NoError(t, err)

	_, err = issuer.Parse("clearly-not-a-jwt")
	assert.Error(t, err)
}
