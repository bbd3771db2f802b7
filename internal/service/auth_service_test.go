package service

import (
	"net/http"
	"testing"

	"frota/internal/auth"
	"frota/internal/db"
	"frota/internal/entities"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLogin_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	users := newFakeUserRepo()
	require.NoError(t, users.Create(&db.User{
		ID:           "u1",
		Name:         "Ana",
		Email:        "ana@example.com",
		PasswordHash: mustHash(t, "supersecret"),
	}))
	svc := NewAuthService(users)

	resp, err := svc.Login(&entities.LoginRequest{Email: "ANA@Example.com", Password: "supersecret"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "u1", resp.User.ID)
	require.Equal(t, "ana@example.com", resp.User.Email)

	payload, err := auth.VerifyAccessToken(resp.Token)
	require.NoError(t, err)
	require.Equal(t, "u1", payload.UserID)
	require.Equal(t, "ana@example.com", payload.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	users := newFakeUserRepo()
	require.NoError(t, users.Create(&db.User{
		ID:           "u1",
		Email:        "ana@example.com",
		PasswordHash: mustHash(t, "supersecret"),
	}))
	svc := NewAuthService(users)

	_, err := svc.Login(&entities.LoginRequest{Email: "ana@example.com", Password: "wrong"})
	requireHTTPCode(t, err, http.StatusUnauthorized)
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Login(&entities.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	requireHTTPCode(t, err, http.StatusUnauthorized)
}
