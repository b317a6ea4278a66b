package service

import (
	"context"

	"vyaparify/internal/models"
	"vyaparify/internal/repository"
)

// UserService provides profile lookup and admin moderation over users.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Profile returns the user together with their recent listings.
func (s *UserService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByIDWithAds(ctx, userID, 20)
}

// GetUser returns a user by ID.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ListUsers returns a page of users for admin views.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// DeleteUser removes a user account. Admins cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, callerID, userID uint) error {
	if callerID == userID {
		return models.NewValidationError("You cannot delete your own account")
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}
