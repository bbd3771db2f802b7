package service

import (
	"strings"

	"frota/internal/auth"
	"frota/internal/entities"
	apperrors "frota/internal/errors"
	"frota/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users repository.UserRepository
}

func NewAuthService(users repository.UserRepository) *AuthService {
	return &AuthService{users: users}
}

func (s *AuthService) Login(req *entities.LoginRequest) (*entities.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, err := auth.SignAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &entities.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}
