package service

import (
	"fmt"
	"log"

	"frota/internal/repository"
)

type JobService struct {
	Repo *repository.JobRepository
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

// ReconcileVehicleStatuses returns vehicles stuck in 'reserved' with no
// active reservation back to 'available'. These show up when a release marks
// the reservation released but the vehicle write fails, or when a reserve
// compensation could not run.
func (s *JobService) ReconcileVehicleStatuses() error {
	ids, err := s.Repo.GetStuckReservedVehicleIDs()
	if err != nil {
		return fmt.Errorf("cron job: failed to find stuck reserved vehicles: %w", err)
	}

	if len(ids) == 0 {
		return nil
	}

	log.Printf("Cron Job: Found %d vehicles marked reserved without an active reservation. IDs: %v", len(ids), ids)

	released, err := s.Repo.ReleaseVehicles(ids)
	if err != nil {
		return fmt.Errorf("cron job: failed to release stuck vehicles: %w", err)
	}

	log.Printf("Cron Job: Returned %d vehicles to 'available'.", released)
	return nil
}
