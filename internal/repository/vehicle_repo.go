package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"frota/internal/db"

	"github.com/lib/pq"
)

// ErrDuplicateLicensePlate is returned when an insert or update hits the
// unique index on vehicles.license_plate.
var ErrDuplicateLicensePlate = errors.New("license plate already registered")

type VehicleRepository interface {
	Create(v *db.Vehicle) error
	GetByID(id string) (*db.Vehicle, error)
	GetByLicensePlate(plate string) (*db.Vehicle, error)
	List() ([]db.Vehicle, error)
	Update(v *db.Vehicle) error
	Delete(id string) error
	ClaimIfAvailable(id string) (*db.Vehicle, error)
	ReleaseIfReserved(id string) (*db.Vehicle, error)
}

type vehicleRepository struct {
	DB *sql.DB
}

func NewVehicleRepository(database *sql.DB) VehicleRepository {
	return &vehicleRepository{DB: database}
}

const vehicleColumns = `id, name, brand, model_name, year, license_plate, color, category, engine, size, status, created_at, updated_at`

func scanVehicle(row interface{ Scan(...interface{}) error }) (*db.Vehicle, error) {
	var v db.Vehicle
	err := row.Scan(
		&v.ID, &v.Name, &v.Brand, &v.ModelName, &v.Year, &v.LicensePlate,
		&v.Color, &v.Category, &v.Engine, &v.Size, &v.Status, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehicleRepository) Create(v *db.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, name, brand, model_name, year, license_plate, color, category, engine, size, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING created_at, updated_at`
	err := r.DB.QueryRow(query,
		v.ID, v.Name, v.Brand, v.ModelName, v.Year, v.LicensePlate,
		v.Color, v.Category, v.Engine, v.Size, v.Status,
	).Scan(&v.CreatedAt, &v.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateLicensePlate
	}
	return err
}

func (r *vehicleRepository) GetByID(id string) (*db.Vehicle, error) {
	query := fmt.Sprintf(`SELECT %s FROM vehicles WHERE id = $1`, vehicleColumns)
	v, err := scanVehicle(r.DB.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying vehicle: %w", err)
	}
	return v, nil
}

func (r *vehicleRepository) GetByLicensePlate(plate string) (*db.Vehicle, error) {
	query := fmt.Sprintf(`SELECT %s FROM vehicles WHERE license_plate = $1`, vehicleColumns)
	v, err := scanVehicle(r.DB.QueryRow(query, plate))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying vehicle by plate: %w", err)
	}
	return v, nil
}

func (r *vehicleRepository) List() ([]db.Vehicle, error) {
	query := fmt.Sprintf(`SELECT %s FROM vehicles ORDER BY created_at DESC`, vehicleColumns)
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error listing vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []db.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning vehicle row: %w", err)
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}

func (r *vehicleRepository) Update(v *db.Vehicle) error {
	query := `
		UPDATE vehicles
		SET name = $2, brand = $3, model_name = $4, year = $5, license_plate = $6,
		    color = $7, category = $8, engine = $9, size = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := r.DB.QueryRow(query,
		v.ID, v.Name, v.Brand, v.ModelName, v.Year, v.LicensePlate,
		v.Color, v.Category, v.Engine, v.Size,
	).Scan(&v.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateLicensePlate
	}
	return err
}

func (r *vehicleRepository) Delete(id string) error {
	_, err := r.DB.Exec(`DELETE FROM vehicles WHERE id = $1`, id)
	return err
}

// ClaimIfAvailable flips the vehicle to reserved only if it is currently
// available. The conditional update is applied atomically by Postgres, so for
// any number of concurrent callers exactly one gets the updated row back; the
// rest get (nil, nil).
func (r *vehicleRepository) ClaimIfAvailable(id string) (*db.Vehicle, error) {
	query := fmt.Sprintf(`
		UPDATE vehicles SET status = '%s', updated_at = NOW()
		WHERE id = $1 AND status = '%s'
		RETURNING %s`, db.VehicleStatusReserved, db.VehicleStatusAvailable, vehicleColumns)
	v, err := scanVehicle(r.DB.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error claiming vehicle: %w", err)
	}
	return v, nil
}

// ReleaseIfReserved is the inverse of ClaimIfAvailable.
func (r *vehicleRepository) ReleaseIfReserved(id string) (*db.Vehicle, error) {
	query := fmt.Sprintf(`
		UPDATE vehicles SET status = '%s', updated_at = NOW()
		WHERE id = $1 AND status = '%s'
		RETURNING %s`, db.VehicleStatusAvailable, db.VehicleStatusReserved, vehicleColumns)
	v, err := scanVehicle(r.DB.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error releasing vehicle: %w", err)
	}
	return v, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
