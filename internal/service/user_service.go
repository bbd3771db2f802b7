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
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	users        repository.UserRepository
	reservations repository.ReservationRepository
}

func NewUserService(users repository.UserRepository, reservations repository.ReservationRepository) *UserService {
	return &UserService{users: users, reservations: reservations}
}

func (s *UserService) Register(req *entities.CreateUserRequest) (*entities.UserResponse, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, "name, email and password are required")
	}
	if len(req.Password) < 6 {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, "password must have at least 6 characters")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &db.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(req.Phone),
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewConflict("email already registered")
		}
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *UserService) List() ([]entities.UserResponse, error) {
	users, err := s.users.List()
	if err != nil {
		return nil, err
	}
	responses := make([]entities.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *toUserResponse(&users[i]))
	}
	return responses, nil
}

func (s *UserService) Update(id string, req *entities.UpdateUserRequest) (*entities.UserResponse, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFound("user not found")
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			existing, err := s.users.GetByEmail(email)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != id {
				return nil, apperrors.NewConflict("email already registered")
			}
			user.Email = email
		}
	}
	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Password != nil {
		if len(*req.Password) < 6 {
			return nil, apperrors.NewHTTPError(http.StatusBadRequest, "password must have at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.Update(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewConflict("email already registered")
		}
		return nil, err
	}
	return toUserResponse(user), nil
}

// Delete refuses to remove a user that still holds an active reservation.
func (s *UserService) Delete(id string) error {
	user, err := s.users.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NewNotFound("user not found")
	}

	active, err := s.reservations.FindActiveByUser(id)
	if err != nil {
		return err
	}
	if active != nil {
		return apperrors.NewConflict("user with an active reservation cannot be removed")
	}

	return s.users.Delete(id)
}

func toUserResponse(u *db.User) *entities.UserResponse {
	return &entities.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
