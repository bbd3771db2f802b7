package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// GetStuckReservedVehicleIDs finds vehicles still marked reserved even though
// no active reservation references them. These are leftovers from a release
// whose vehicle update failed, or from a compensation that could not run.
func (r *JobRepository) GetStuckReservedVehicleIDs() ([]string, error) {
	query := `
		SELECT v.id FROM vehicles v
		WHERE v.status = 'reserved'
		AND NOT EXISTS (
			SELECT 1 FROM reservations res
			WHERE res.vehicle_id = v.id AND res.status = 'active'
		)`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying stuck reserved vehicles: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning vehicle ID: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ReleaseVehicles returns the given vehicles to available. The status guard is
// kept in the WHERE clause so a vehicle legitimately re-reserved between the
// sweep's read and this write is left alone.
func (r *JobRepository) ReleaseVehicles(ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `
		UPDATE vehicles SET status = 'available', updated_at = NOW()
		WHERE id = ANY($1) AND status = 'reserved'
		AND NOT EXISTS (
			SELECT 1 FROM reservations res
			WHERE res.vehicle_id = vehicles.id AND res.status = 'active'
		)`
	result, err := r.DB.Exec(query, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("error releasing stuck vehicles: %w", err)
	}
	return result.RowsAffected()
}
