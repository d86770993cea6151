package services

import (
	"context"
	"strings"

	"github.com/greencycle/greencycle/backend/internal/domain/entities"
	"github.com/greencycle/greencycle/backend/internal/domain/repositories"
	apperrors "github.com/greencycle/greencycle/backend/pkg/errors"
)

// UserService handles business logic for users
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// GetOrCreate returns the user with the given email, creating the row on
// first login
func (s *UserService) GetOrCreate(ctx context.Context, email, name string) (*entities.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, apperrors.NewValidationError("email is required")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return nil, err
	}

	if strings.TrimSpace(name) == "" {
		name = "Anonymous User"
	}

	user = &entities.User{
		Email: email,
		Name:  name,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	return s.repo.GetByID(ctx, id)
}
