package service

import (
	"net/http"
	"testing"

	"frota/internal/entities"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserFixture() (*fakeUserRepo, *fakeReservationRepo, *fakeVehicleRepo, *UserService) {
	vehicles := newFakeVehicleRepo()
	reservations := newFakeReservationRepo(vehicles)
	users := newFakeUserRepo()
	return users, reservations, vehicles, NewUserService(users, reservations)
}

func TestRegister_Success(t *testing.T) {
	users, _, _, svc := newUserFixture()

	resp, err := svc.Register(&entities.CreateUserRequest{
		Name:     "Ana",
		Email:    "ANA@Example.com",
		Password: "supersecret",
		Phone:    "+5511999990000",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)
	require.Equal(t, "ana@example.com", resp.Email)

	stored, err := users.GetByID(resp.ID)
	require.NoError(t, err)
	require.NotEqual(t, "supersecret", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("supersecret")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, _, _, svc := newUserFixture()

	req := entities.CreateUserRequest{Name: "Ana", Email: "ana@example.com", Password: "supersecret"}
	_, err := svc.Register(&req)
	require.NoError(t, err)

	_, err = svc.Register(&req)
	requireHTTPCode(t, err, http.StatusConflict)
}

func TestRegister_ShortPassword(t *testing.T) {
	_, _, _, svc := newUserFixture()

	_, err := svc.Register(&entities.CreateUserRequest{Name: "Ana", Email: "ana@example.com", Password: "abc"})
	requireHTTPCode(t, err, http.StatusBadRequest)
}

func TestUpdateUser_EmailConflict(t *testing.T) {
	_, _, _, svc := newUserFixture()

	first, err := svc.Register(&entities.CreateUserRequest{Name: "Ana", Email: "ana@example.com", Password: "supersecret"})
	require.NoError(t, err)
	_, err = svc.Register(&entities.CreateUserRequest{Name: "Bia", Email: "bia@example.com", Password: "supersecret"})
	require.NoError(t, err)

	taken := "bia@example.com"
	_, err = svc.Update(first.ID, &entities.UpdateUserRequest{Email: &taken})
	requireHTTPCode(t, err, http.StatusConflict)
}

func TestDeleteUser_RefusedWithActiveReservation(t *testing.T) {
	users, reservations, vehicles, svc := newUserFixture()
	allocator := NewReservationService(reservations, vehicles, users, nil)

	resp, err := svc.Register(&entities.CreateUserRequest{Name: "Ana", Email: "ana@example.com", Password: "supersecret"})
	require.NoError(t, err)

	vehicles.add(availableVehicle("v1"))
	res, err := allocator.Reserve(resp.ID, "v1")
	require.NoError(t, err)

	err = svc.Delete(resp.ID)
	requireHTTPCode(t, err, http.StatusConflict)

	_, err = allocator.Release(res.ID, resp.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(resp.ID))
}
