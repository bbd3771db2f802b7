package service

import (
	"errors"
	"net/http"
	"strings"

	"frota/internal/db"
	"frota/internal/entities"
	apperrors "frota/internal/errors"
	"frota/internal/repository"

	"github.com/google/uuid"
)

type VehicleService struct {
	vehicles     repository.VehicleRepository
	reservations repository.ReservationRepository
}

func NewVehicleService(vehicles repository.VehicleRepository, reservations repository.ReservationRepository) *VehicleService {
	return &VehicleService{vehicles: vehicles, reservations: reservations}
}

func (s *VehicleService) Create(req *entities.CreateVehicleRequest) (*entities.VehicleResponse, error) {
	if req.Name == "" || req.Brand == "" || req.ModelName == "" || req.LicensePlate == "" {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, "name, brand, modelName and licensePlate are required")
	}
	if req.Year < 1900 {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, "year must be 1900 or later")
	}

	plate := strings.ToUpper(strings.TrimSpace(req.LicensePlate))
	existing, err := s.vehicles.GetByLicensePlate(plate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflict("license plate already registered")
	}

	vehicle := &db.Vehicle{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Brand:        strings.TrimSpace(req.Brand),
		ModelName:    strings.TrimSpace(req.ModelName),
		Year:         req.Year,
		LicensePlate: plate,
		Color:        strings.TrimSpace(req.Color),
		Category:     strings.TrimSpace(req.Category),
		Engine:       strings.TrimSpace(req.Engine),
		Size:         strings.TrimSpace(req.Size),
		Status:       db.VehicleStatusAvailable,
	}
	if err := s.vehicles.Create(vehicle); err != nil {
		if errors.Is(err, repository.ErrDuplicateLicensePlate) {
			return nil, apperrors.NewConflict("license plate already registered")
		}
		return nil, err
	}
	return toVehicleResponsePtr(vehicle), nil
}

func (s *VehicleService) List() ([]entities.VehicleResponse, error) {
	vehicles, err := s.vehicles.List()
	if err != nil {
		return nil, err
	}
	responses := make([]entities.VehicleResponse, 0, len(vehicles))
	for i := range vehicles {
		responses = append(responses, toVehicleResponse(&vehicles[i]))
	}
	return responses, nil
}

func (s *VehicleService) Update(id string, req *entities.UpdateVehicleRequest) (*entities.VehicleResponse, error) {
	vehicle, err := s.vehicles.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperrors.NewNotFound("vehicle not found")
	}

	if req.LicensePlate != nil {
		plate := strings.ToUpper(strings.TrimSpace(*req.LicensePlate))
		if plate != vehicle.LicensePlate {
			existing, err := s.vehicles.GetByLicensePlate(plate)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != id {
				return nil, apperrors.NewConflict("license plate already registered")
			}
			vehicle.LicensePlate = plate
		}
	}
	if req.Name != nil {
		vehicle.Name = strings.TrimSpace(*req.Name)
	}
	if req.Brand != nil {
		vehicle.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.ModelName != nil {
		vehicle.ModelName = strings.TrimSpace(*req.ModelName)
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}
	if req.Color != nil {
		vehicle.Color = strings.TrimSpace(*req.Color)
	}
	if req.Category != nil {
		vehicle.Category = strings.TrimSpace(*req.Category)
	}
	if req.Engine != nil {
		vehicle.Engine = strings.TrimSpace(*req.Engine)
	}
	if req.Size != nil {
		vehicle.Size = strings.TrimSpace(*req.Size)
	}

	if err := s.vehicles.Update(vehicle); err != nil {
		if errors.Is(err, repository.ErrDuplicateLicensePlate) {
			return nil, apperrors.NewConflict("license plate already registered")
		}
		return nil, err
	}
	return toVehicleResponsePtr(vehicle), nil
}

// Delete refuses to remove a vehicle that is reserved or still referenced by
// an active reservation.
func (s *VehicleService) Delete(id string) error {
	vehicle, err := s.vehicles.GetByID(id)
	if err != nil {
		return err
	}
	if vehicle == nil {
		return apperrors.NewNotFound("vehicle not found")
	}

	activeReservation, err := s.reservations.FindActiveByVehicle(id)
	if err != nil {
		return err
	}
	if vehicle.Status == db.VehicleStatusReserved || activeReservation != nil {
		return apperrors.NewConflict("reserved vehicle cannot be removed")
	}

	return s.vehicles.Delete(id)
}

func toVehicleResponse(v *db.Vehicle) entities.VehicleResponse {
	return entities.VehicleResponse{
		ID:           v.ID,
		Name:         v.Name,
		Brand:        v.Brand,
		ModelName:    v.ModelName,
		Year:         v.Year,
		LicensePlate: v.LicensePlate,
		Color:        v.Color,
		Category:     v.Category,
		Engine:       v.Engine,
		Size:         v.Size,
		Status:       v.Status,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func toVehicleResponsePtr(v *db.Vehicle) *entities.VehicleResponse {
	resp := toVehicleResponse(v)
	return &resp
}
