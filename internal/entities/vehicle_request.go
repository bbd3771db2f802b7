package entities

type CreateVehicleRequest struct {
	Name         string `json:"name"`
	Brand        string `json:"brand"`
	ModelName    string `json:"modelName"`
	Year         int    `json:"year"`
	LicensePlate string `json:"licensePlate"`
	Color        string `json:"color"`
	Category     string `json:"category"`
	Engine       string `json:"engine"`
	Size         string `json:"size"`
}

type UpdateVehicleRequest struct {
	Name         *string `json:"name"`
	Brand        *string `json:"brand"`
	ModelName    *string `json:"modelName"`
	Year         *int    `json:"year"`
	LicensePlate *string `json:"licensePlate"`
	Color        *string `json:"color"`
	Category     *string `json:"category"`
	Engine       *string `json:"engine"`
	Size         *string `json:"size"`
}
