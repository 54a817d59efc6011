package server

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/renovation-quoter/internal/config"
)

func testJWTService(secret string) *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret: secret,
		TTL:    2 * time.Hour,
		Issuer: config.DefaultTokenIssuer,
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := testJWTService("0123456789abcdef-secret")
	id := EstimatorID("estimator")

	token, expiresAt, err := svc.GenerateToken(id, "estimator")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), expiresAt, time.Minute)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.GetEstimatorID())
	assert.Equal(t, "estimator", claims.Subject)
	assert.Equal(t, config.DefaultTokenIssuer, claims.Issuer)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := testJWTService("0123456789abcdef-secret")
	token, _, err := svc.GenerateToken(uuid.New(), "estimator")
	require.NoError(t, err)

	t.Run("empty", func(t *testing.T) {
		_, err := svc.ValidateToken("")
		assert.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := testJWTService("another-secret-of-length").ValidateToken(token)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "signature")
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService(&config.JWTConfig{Secret: "0123456789abcdef-secret", TTL: 2 * time.Hour, Issuer: "someone-else"})
		_, err := other.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		later := testJWTService("0123456789abcdef-secret")
		later.now = func() time.Time { return time.Now().Add(3 * time.Hour) }
		_, err := later.ValidateToken(token)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expired")
	})

	t.Run("nil estimator", func(t *testing.T) {
		nilToken, _, err := svc.GenerateToken(uuid.Nil, "estimator")
		require.NoError(t, err)
		_, err = svc.ValidateToken(nilToken)
		assert.Error(t, err)
	})
}

func TestEstimatorID_Stable(t *testing.T) {
	assert.Equal(t, EstimatorID("estimator"), EstimatorID("estimator"))
	assert.NotEqual(t, EstimatorID("estimator"), EstimatorID("other"))
}

func TestAsTokenValidator(t *testing.T) {
	svc := testJWTService("0123456789abcdef-secret")
	id := uuid.New()
	token, _, err := svc.GenerateToken(id, "estimator")
	require.NoError(t, err)

	got, err := svc.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, got.GetEstimatorID())

	_, err = svc.AsTokenValidator().ValidateToken("bad")
	assert.Error(t, err)
}
