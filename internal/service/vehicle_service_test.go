package service

import (
	"net/http"
	"testing"

	"frota/internal/db"
	"frota/internal/entities"

	"github.com/stretchr/testify/require"
)

func newVehicleFixture() (*fakeVehicleRepo, *fakeReservationRepo, *VehicleService) {
	vehicles := newFakeVehicleRepo()
	reservations := newFakeReservationRepo(vehicles)
	return vehicles, reservations, NewVehicleService(vehicles, reservations)
}

func TestCreateVehicle_NormalizesPlate(t *testing.T) {
	_, _, svc := newVehicleFixture()

	created, err := svc.Create(&entities.CreateVehicleRequest{
		Name:         "Uno",
		Brand:        "Fiat",
		ModelName:    "Mille",
		Year:         2019,
		LicensePlate: "abc1234",
	})
	require.NoError(t, err)
	require.Equal(t, "ABC1234", created.LicensePlate)
	require.Equal(t, db.VehicleStatusAvailable, created.Status)
	require.NotEmpty(t, created.ID)
}

func TestCreateVehicle_DuplicatePlate(t *testing.T) {
	_, _, svc := newVehicleFixture()

	req := entities.CreateVehicleRequest{
		Name: "Uno", Brand: "Fiat", ModelName: "Mille", Year: 2019, LicensePlate: "ABC1234",
	}
	_, err := svc.Create(&req)
	require.NoError(t, err)

	_, err = svc.Create(&req)
	requireHTTPCode(t, err, http.StatusConflict)
}

func TestCreateVehicle_MissingFields(t *testing.T) {
	_, _, svc := newVehicleFixture()

	_, err := svc.Create(&entities.CreateVehicleRequest{Name: "Uno"})
	requireHTTPCode(t, err, http.StatusBadRequest)
}

func TestUpdateVehicle_PartialAndPlateConflict(t *testing.T) {
	_, _, svc := newVehicleFixture()

	first, err := svc.Create(&entities.CreateVehicleRequest{
		Name: "Uno", Brand: "Fiat", ModelName: "Mille", Year: 2019, LicensePlate: "AAA0001",
	})
	require.NoError(t, err)
	second, err := svc.Create(&entities.CreateVehicleRequest{
		Name: "Gol", Brand: "VW", ModelName: "G5", Year: 2020, LicensePlate: "BBB0002",
	})
	require.NoError(t, err)

	newColor := "red"
	updated, err := svc.Update(first.ID, &entities.UpdateVehicleRequest{Color: &newColor})
	require.NoError(t, err)
	require.Equal(t, "red", updated.Color)
	require.Equal(t, "Uno", updated.Name)

	takenPlate := "aaa0001"
	_, err = svc.Update(second.ID, &entities.UpdateVehicleRequest{LicensePlate: &takenPlate})
	requireHTTPCode(t, err, http.StatusConflict)
}

func TestDeleteVehicle_RefusedWhileReserved(t *testing.T) {
	vehicles, reservations, svc := newVehicleFixture()
	users := newFakeUserRepo()
	allocator := NewReservationService(reservations, vehicles, users, nil)

	created, err := svc.Create(&entities.CreateVehicleRequest{
		Name: "Uno", Brand: "Fiat", ModelName: "Mille", Year: 2019, LicensePlate: "AAA0001",
	})
	require.NoError(t, err)

	res, err := allocator.Reserve("user-a", created.ID)
	require.NoError(t, err)

	err = svc.Delete(created.ID)
	requireHTTPCode(t, err, http.StatusConflict)

	_, err = allocator.Release(res.ID, "user-a")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(created.ID))
}

func TestDeleteVehicle_NotFound(t *testing.T) {
	_, _, svc := newVehicleFixture()
	requireHTTPCode(t, svc.Delete("missing"), http.StatusNotFound)
}
