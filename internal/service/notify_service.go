package service

import (
	"fmt"
	"log"

	"frota/internal/db"
	"frota/internal/entities"
)

const timeLayout = "02 Jan 2006 15:04 MST"

type NotifyService struct {
}

func NewNotifyService() *NotifyService {
	return &NotifyService{}
}

// SendReservationEmail delivers the confirmation asynchronously; a failed
// send is logged and never affects the reservation itself.
func (s *NotifyService) SendReservationEmail(user *db.User, reservation *entities.ReservationResponse) {
	data := entities.ReservationEmailData{
		UserName:            user.Name,
		ReservationID:       reservation.ID,
		VehicleName:         reservation.Vehicle.Name,
		VehicleModel:        reservation.Vehicle.ModelName,
		VehiclePlate:        reservation.Vehicle.LicensePlate,
		ReservedAtFormatted: reservation.ReservedAt.Format(timeLayout),
		Status:              reservation.Status,
	}
	if reservation.ReleasedAt != nil {
		data.ReleasedAtFormatted = reservation.ReleasedAt.Format(timeLayout)
	}

	subject := fmt.Sprintf("Your vehicle reservation is %s - %s", data.Status, data.VehicleName)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour reservation is %s.\n\n"+
			"Reservation Details:\n"+
			"Reservation: %s\n"+
			"Vehicle: %s %s (Plate: %s)\n"+
			"Reserved at: %s\n",
		data.UserName, data.Status, data.ReservationID,
		data.VehicleName, data.VehicleModel, data.VehiclePlate,
		data.ReservedAtFormatted,
	)
	if data.ReleasedAtFormatted != "" {
		body += fmt.Sprintf("Released at: %s\n", data.ReleasedAtFormatted)
	}
	body += "\nThank you for using Frota."

	go func(toEmail, toName, subject, body string) {
		if err := SendEmailWithSendGrid(toEmail, toName, subject, body); err != nil {
			log.Printf("ALERT (async): failed to send email for reservation %s: %v", data.ReservationID, err)
		}
	}(user.Email, user.Name, subject, body)
}

// SendReservationSMS delivers a short confirmation to the user's phone, when
// one is on file. Asynchronous and best-effort, like the email.
func (s *NotifyService) SendReservationSMS(user *db.User, reservation *entities.ReservationResponse) {
	message := fmt.Sprintf("Frota: your reservation for %s (%s) is %s. Details in your email.",
		reservation.Vehicle.Name, reservation.Vehicle.LicensePlate, reservation.Status)

	go func(toPhone, message string) {
		if err := SendSMS(toPhone, message); err != nil {
			log.Printf("ALERT (async): failed to send SMS for reservation %s to %s: %v",
				reservation.ID, toPhone, err)
		}
	}(user.Phone, message)
}
