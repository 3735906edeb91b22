package services

import (
	"context"
	"fmt"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// UserService resolves authors and manages roles
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// AuthorName returns the display name of a user
func (s *UserService) AuthorName(ctx context.Context, id int) (string, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return user.Name, nil
}

// AuthorEmail returns the email address of a user
func (s *UserService) AuthorEmail(ctx context.Context, id int) (string, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return user.Email, nil
}

// Promote grants the admin role to the account registered under email
func (s *UserService) Promote(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find %s: %w", email, err)
	}
	if user.IsAdmin() {
		return user, nil
	}
	if err := s.userRepo.UpdateRole(ctx, user.ID, models.RoleAdmin); err != nil {
		return nil, fmt.Errorf("failed to promote %s: %w", email, err)
	}
	user.Role = models.RoleAdmin
	return user, nil
}
