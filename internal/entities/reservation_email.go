package entities

type ReservationEmailData struct {
	UserName            string
	ReservationID       string
	VehicleName         string
	VehicleModel        string
	VehiclePlate        string
	ReservedAtFormatted string
	ReleasedAtFormatted string
	Status              string
}
