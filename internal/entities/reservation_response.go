package entities

import "time"

type ReservationResponse struct {
	ID         string          `json:"id"`
	Status     string          `json:"status"`
	ReservedAt time.Time       `json:"reservedAt"`
	ReleasedAt *time.Time      `json:"releasedAt"`
	Vehicle    VehicleResponse `json:"vehicle"`
}
