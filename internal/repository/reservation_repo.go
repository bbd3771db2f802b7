package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"frota/internal/db"
)

// ErrActiveReservationExists is returned when an insert hits one of the
// partial unique indexes on reservations (one active row per vehicle, one
// active row per user). It is the storage-level backstop behind the
// allocator's advisory checks.
var ErrActiveReservationExists = errors.New("an active reservation already exists for this user or vehicle")

// ReservationWithVehicle is a reservation row joined with its vehicle snapshot.
type ReservationWithVehicle struct {
	Reservation db.Reservation
	Vehicle     db.Vehicle
}

type ReservationRepository interface {
	InsertActive(res *db.Reservation) error
	GetByID(id string) (*db.Reservation, error)
	Save(res *db.Reservation) error
	ListByUser(userID string) ([]ReservationWithVehicle, error)
	FindActiveByVehicle(vehicleID string) (*db.Reservation, error)
	FindActiveByUser(userID string) (*db.Reservation, error)
}

type reservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(database *sql.DB) ReservationRepository {
	return &reservationRepository{DB: database}
}

const reservationColumns = `id, user_id, vehicle_id, status, reserved_at, released_at, created_at, updated_at`

func scanReservation(row interface{ Scan(...interface{}) error }) (*db.Reservation, error) {
	var res db.Reservation
	err := row.Scan(
		&res.ID, &res.UserID, &res.VehicleID, &res.Status,
		&res.ReservedAt, &res.ReleasedAt, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) InsertActive(res *db.Reservation) error {
	query := `
		INSERT INTO reservations (id, user_id, vehicle_id, status, reserved_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at`
	err := r.DB.QueryRow(query,
		res.ID, res.UserID, res.VehicleID, res.Status, res.ReservedAt,
	).Scan(&res.CreatedAt, &res.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrActiveReservationExists
	}
	return err
}

func (r *reservationRepository) GetByID(id string) (*db.Reservation, error) {
	query := fmt.Sprintf(`SELECT %s FROM reservations WHERE id = $1`, reservationColumns)
	res, err := scanReservation(r.DB.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying reservation: %w", err)
	}
	return res, nil
}

// Save persists the mutable reservation fields. Released reservations are
// terminal, so status and released_at are the only fields that ever change.
func (r *reservationRepository) Save(res *db.Reservation) error {
	query := `
		UPDATE reservations
		SET status = $2, released_at = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	return r.DB.QueryRow(query, res.ID, res.Status, res.ReleasedAt).Scan(&res.UpdatedAt)
}

func (r *reservationRepository) ListByUser(userID string) ([]ReservationWithVehicle, error) {
	query := `
		SELECT
			r.id, r.user_id, r.vehicle_id, r.status, r.reserved_at, r.released_at, r.created_at, r.updated_at,
			v.id, v.name, v.brand, v.model_name, v.year, v.license_plate,
			v.color, v.category, v.engine, v.size, v.status, v.created_at, v.updated_at
		FROM reservations r
		JOIN vehicles v ON v.id = r.vehicle_id
		WHERE r.user_id = $1
		ORDER BY r.reserved_at DESC`
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing reservations: %w", err)
	}
	defer rows.Close()

	var results []ReservationWithVehicle
	for rows.Next() {
		var rv ReservationWithVehicle
		err := rows.Scan(
			&rv.Reservation.ID, &rv.Reservation.UserID, &rv.Reservation.VehicleID, &rv.Reservation.Status,
			&rv.Reservation.ReservedAt, &rv.Reservation.ReleasedAt, &rv.Reservation.CreatedAt, &rv.Reservation.UpdatedAt,
			&rv.Vehicle.ID, &rv.Vehicle.Name, &rv.Vehicle.Brand, &rv.Vehicle.ModelName, &rv.Vehicle.Year, &rv.Vehicle.LicensePlate,
			&rv.Vehicle.Color, &rv.Vehicle.Category, &rv.Vehicle.Engine, &rv.Vehicle.Size, &rv.Vehicle.Status,
			&rv.Vehicle.CreatedAt, &rv.Vehicle.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning reservation row: %w", err)
		}
		results = append(results, rv)
	}
	return results, rows.Err()
}

func (r *reservationRepository) FindActiveByVehicle(vehicleID string) (*db.Reservation, error) {
	query := fmt.Sprintf(`SELECT %s FROM reservations WHERE vehicle_id = $1 AND status = '%s'`,
		reservationColumns, db.ReservationStatusActive)
	res, err := scanReservation(r.DB.QueryRow(query, vehicleID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying active reservation by vehicle: %w", err)
	}
	return res, nil
}

func (r *reservationRepository) FindActiveByUser(userID string) (*db.Reservation, error) {
	query := fmt.Sprintf(`SELECT %s FROM reservations WHERE user_id = $1 AND status = '%s'`,
		reservationColumns, db.ReservationStatusActive)
	res, err := scanReservation(r.DB.QueryRow(query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying active reservation by user: %w", err)
	}
	return res, nil
}
