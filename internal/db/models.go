package db

import (
	"database/sql"
	"time"
)

const (
	VehicleStatusAvailable = "available"
	VehicleStatusReserved  = "reserved"

	ReservationStatusActive   = "active"
	ReservationStatusReleased = "released"
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Vehicle struct {
	ID           string
	Name         string
	Brand        string
	ModelName    string
	Year         int
	LicensePlate string
	Color        string
	Category     string
	Engine       string
	Size         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Reservation struct {
	ID         string
	UserID     string
	VehicleID  string
	Status     string
	ReservedAt time.Time
	ReleasedAt sql.NullTime
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
