package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyAccessToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := SignAccessToken("u1", "ana@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	payload, err := VerifyAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "u1", payload.UserID)
	require.Equal(t, "ana@example.com", payload.Email)
}

func TestVerifyAccessToken_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := SignAccessToken("u1", "ana@example.com")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "another-secret")
	_, err = VerifyAccessToken(token)
	require.Error(t, err)
}

func TestVerifyAccessToken_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := VerifyAccessToken("not-a-token")
	require.Error(t, err)
}

func TestSignAccessToken_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := SignAccessToken("u1", "ana@example.com")
	require.Error(t, err)
}
