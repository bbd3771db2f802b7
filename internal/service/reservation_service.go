package service

import (
	"database/sql"
	"errors"
	"log"
	"time"

	"frota/internal/db"
	"frota/internal/entities"
	apperrors "frota/internal/errors"
	"frota/internal/repository"

	"github.com/google/uuid"
)

type ReservationService struct {
	reservations repository.ReservationRepository
	vehicles     repository.VehicleRepository
	users        repository.UserRepository
	notify       *NotifyService
}

func NewReservationService(
	reservations repository.ReservationRepository,
	vehicles repository.VehicleRepository,
	users repository.UserRepository,
	notify *NotifyService,
) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		vehicles:     vehicles,
		users:        users,
		notify:       notify,
	}
}

// Reserve turns an available vehicle plus a free user into an active
// reservation. The pre-checks give precise errors in the common case, but the
// conditional update inside ClaimIfAvailable is what actually decides the
// race: of any number of concurrent callers, exactly one gets the claim.
func (s *ReservationService) Reserve(userID, vehicleID string) (*entities.ReservationResponse, error) {
	vehicle, err := s.vehicles.GetByID(vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperrors.NewNotFound("vehicle not found")
	}

	existingForUser, err := s.reservations.FindActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if existingForUser != nil {
		return nil, apperrors.NewConflict("user already has an active reservation")
	}

	existingForVehicle, err := s.reservations.FindActiveByVehicle(vehicleID)
	if err != nil {
		return nil, err
	}
	if existingForVehicle != nil || vehicle.Status == db.VehicleStatusReserved {
		return nil, apperrors.NewConflict("vehicle is already reserved")
	}

	claimed, err := s.vehicles.ClaimIfAvailable(vehicleID)
	if err != nil {
		return nil, err
	}
	if claimed == nil {
		// Lost the race between the read above and the claim.
		return nil, apperrors.NewConflict("vehicle is already reserved")
	}

	// From here until the insert lands the vehicle is claimed but unrecorded.
	// Every exit path that does not mark the reservation as recorded must
	// hand the claim back.
	recorded := false
	defer func() {
		if recorded {
			return
		}
		if _, rerr := s.vehicles.ReleaseIfReserved(vehicleID); rerr != nil {
			log.Printf("ALERT: vehicle %s claimed without a reservation and compensation failed: %v", vehicleID, rerr)
		}
	}()

	reservation := &db.Reservation{
		ID:         uuid.NewString(),
		UserID:     userID,
		VehicleID:  vehicleID,
		Status:     db.ReservationStatusActive,
		ReservedAt: time.Now().UTC(),
	}
	if err := s.reservations.InsertActive(reservation); err != nil {
		if errors.Is(err, repository.ErrActiveReservationExists) {
			return nil, apperrors.NewConflict("vehicle or user already has an active reservation")
		}
		return nil, err
	}
	recorded = true

	resp := toReservationResponse(reservation, claimed)
	s.notifyUser(userID, resp)
	return resp, nil
}

// Release marks the reservation released and returns the vehicle to the
// fleet. Once the reservation row is saved the release has happened: a failed
// vehicle update is logged and left for the reconciliation job, never undone.
func (s *ReservationService) Release(reservationID, userID string) (*entities.ReservationResponse, error) {
	reservation, err := s.reservations.GetByID(reservationID)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, apperrors.NewNotFound("reservation not found")
	}
	if reservation.UserID != userID {
		return nil, apperrors.NewForbidden("reservation does not belong to the authenticated user")
	}
	if reservation.Status != db.ReservationStatusActive {
		return nil, apperrors.NewConflict("reservation has already been released")
	}

	reservation.Status = db.ReservationStatusReleased
	reservation.ReleasedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
	if err := s.reservations.Save(reservation); err != nil {
		return nil, err
	}

	vehicle, verr := s.vehicles.ReleaseIfReserved(reservation.VehicleID)
	if verr != nil {
		log.Printf("ALERT: reservation %s released but vehicle %s could not be returned to available: %v",
			reservation.ID, reservation.VehicleID, verr)
	}
	if vehicle == nil {
		if v, gerr := s.vehicles.GetByID(reservation.VehicleID); gerr == nil {
			vehicle = v
		}
	}

	resp := toReservationResponse(reservation, vehicle)
	s.notifyUser(userID, resp)
	return resp, nil
}

func (s *ReservationService) ListForUser(userID string) ([]entities.ReservationResponse, error) {
	rows, err := s.reservations.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	responses := make([]entities.ReservationResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, *toReservationResponse(&rows[i].Reservation, &rows[i].Vehicle))
	}
	return responses, nil
}

func (s *ReservationService) ActiveForUser(userID string) (*entities.ReservationResponse, error) {
	reservation, err := s.reservations.FindActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, apperrors.NewNotFound("no active reservation")
	}

	vehicle, err := s.vehicles.GetByID(reservation.VehicleID)
	if err != nil {
		return nil, err
	}
	return toReservationResponse(reservation, vehicle), nil
}

func (s *ReservationService) notifyUser(userID string, res *entities.ReservationResponse) {
	if s.notify == nil {
		return
	}
	user, err := s.users.GetByID(userID)
	if err != nil || user == nil {
		log.Printf("could not load user %s for reservation notification: %v", userID, err)
		return
	}
	s.notify.SendReservationEmail(user, res)
	if user.Phone != "" {
		s.notify.SendReservationSMS(user, res)
	}
}

func toReservationResponse(res *db.Reservation, vehicle *db.Vehicle) *entities.ReservationResponse {
	resp := &entities.ReservationResponse{
		ID:         res.ID,
		Status:     res.Status,
		ReservedAt: res.ReservedAt,
	}
	if res.ReleasedAt.Valid {
		released := res.ReleasedAt.Time
		resp.ReleasedAt = &released
	}
	if vehicle != nil {
		resp.Vehicle = toVehicleResponse(vehicle)
	}
	return resp
}
