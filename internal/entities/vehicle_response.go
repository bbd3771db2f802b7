package entities

import "time"

type VehicleResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Brand        string    `json:"brand"`
	ModelName    string    `json:"modelName"`
	Year         int       `json:"year"`
	LicensePlate string    `json:"licensePlate"`
	Color        string    `json:"color,omitempty"`
	Category     string    `json:"category,omitempty"`
	Engine       string    `json:"engine,omitempty"`
	Size         string    `json:"size,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
