package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/screenomics/locationworker/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewJWTService(t *testing.T) {
	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.ErrorIs(t, err, ErrSecretTooShort)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret})
	assert.Error(t, err)

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc, err := newHMACJWTService(testSecret, time.Hour, fixedClock(issued))
	require.NoError(t, err)

	token, err := svc.GenerateToken(context.Background(), "cloud-scheduler")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "cloud-scheduler", claims.Subject)
	assert.Equal(t, TokenTypeTrigger, claims.TokenType)
	assert.Equal(t, issued.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, issued.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	signer, err := newHMACJWTService(testSecret, time.Hour, fixedClock(issued))
	require.NoError(t, err)
	validToken, err := signer.GenerateToken(context.Background(), "scheduler")
	require.NoError(t, err)

	wrongSigner, err := newHMACJWTService("wrong-secret-that-is-long-enough-for-testing", time.Hour, fixedClock(issued))
	require.NoError(t, err)
	foreignToken, err := wrongSigner.GenerateToken(context.Background(), "scheduler")
	require.NoError(t, err)

	wrongType := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtCustomClaims{
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "scheduler",
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(time.Hour)),
		},
	})
	wrongTypeToken, err := wrongType.SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		now     time.Time
		wantErr error
	}{
		{name: "valid", token: validToken, now: issued.Add(30 * time.Minute)},
		{name: "within clock skew", token: validToken, now: issued.Add(time.Hour + time.Minute)},
		{name: "expired", token: validToken, now: issued.Add(2 * time.Hour), wantErr: ErrExpiredToken},
		{name: "wrong signature", token: foreignToken, now: issued, wantErr: ErrInvalidToken},
		{name: "malformed", token: "not-a-token", now: issued, wantErr: ErrInvalidToken},
		{name: "wrong type", token: wrongTypeToken, now: issued, wantErr: ErrWrongTokenType},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, err := newHMACJWTService(testSecret, time.Hour, fixedClock(tc.now))
			require.NoError(t, err)

			claims, err := svc.ValidateToken(context.Background(), tc.token)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "scheduler", claims.Subject)
		})
	}
}
