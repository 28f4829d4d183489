package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/akshay-h-dev/milestack/pkg/errors"
)

func TestIssueAndValidateRoundTrip(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{Secret: "unit-secret"})
	require.NoError(t, err)

	token, err := svc.Issue(Identity{UserID: "user-deadbeef", Email: "alice@x.com", Name: "Alice"})
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "user-deadbeef", claims.UserID)
	require.Equal(t, "alice@x.com", claims.Email)
	require.Equal(t, "Alice", claims.Name)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	issued := time.Now().Add(-48 * time.Hour)

	issuer, err := NewJWTService(JWTConfig{
		Secret: "unit-secret",
		Clock:  func() time.Time { return issued },
	})
	require.NoError(t, err)

	token, err := issuer.Issue(Identity{UserID: "user-deadbeef"})
	require.NoError(t, err)

	verifier, err := NewJWTService(JWTConfig{Secret: "unit-secret"})
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	require.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer, err := NewJWTService(JWTConfig{Secret: "secret-a"})
	require.NoError(t, err)

	token, err := issuer.Issue(Identity{UserID: "user-deadbeef"})
	require.NoError(t, err)

	verifier, err := NewJWTService(JWTConfig{Secret: "secret-b"})
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{Secret: "unit-secret"})
	require.NoError(t, err)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Validate(token)
		require.ErrorIs(t, err, apperrors.ErrInvalidToken, "token %q", token)
	}
}

func TestNewJWTServiceRequiresSecret(t *testing.T) {
	_, err := NewJWTService(JWTConfig{})
	require.Error(t, err)
}

func TestIssueAppliesConfiguredTTL(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc, err := NewJWTService(JWTConfig{
		Secret:   "unit-secret",
		TokenTTL: 2 * time.Hour,
		Clock:    func() time.Time { return fixed },
	})
	require.NoError(t, err)

	token, err := svc.Issue(Identity{UserID: "user-deadbeef"})
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	require.Equal(t, fixed.Add(2*time.Hour).Unix(), claims.ExpiresAt.Unix())
}
