package service

import (
	"context"
	"errors"

	"skymentor/internal/middleware"
	"skymentor/internal/model"
	"skymentor/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService serves the member directory.
type UserService interface {
	ListByRole(ctx context.Context, role model.Role) ([]*model.UserResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*model.UserResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
}

func NewUserService(db *gorm.DB, userRepo repository.UserRepository) UserService {
	return &userService{db: db, userRepo: userRepo}
}

func (s *userService) ListByRole(ctx context.Context, role model.Role) ([]*model.UserResponse, error) {
	logger := middleware.GetLogger(ctx)
	if !role.Valid() {
		return nil, model.NewAppError("INVALID_ROLE", "Unknown role.", "role", model.ErrInvalidInput)
	}

	users, err := s.userRepo.ListByRole(ctx, s.db, role)
	if err != nil {
		logger.Error("Failed to list users by role", "error", err, "role", role)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	responses := make([]*model.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, model.NewUserResponse(u))
	}
	return responses, nil
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*model.UserResponse, error) {
	logger := middleware.GetLogger(ctx)

	user, err := s.userRepo.FindByIDWithProfiles(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("USER_NOT_FOUND", "User not found.", "", model.ErrNotFound)
		}
		logger.Error("Failed to find user", "error", err, "user_id", id)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}
	return model.NewUserResponse(user), nil
}

// Deactivate disables login for the account. Rows stay in place so
// history keeps resolving.
func (s *userService) Deactivate(ctx context.Context, id uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.userRepo.Deactivate(ctx, tx, id)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("USER_NOT_FOUND", "User not found.", "", model.ErrNotFound)
		}
		logger.Error("Failed to deactivate user", "error", err, "user_id", id)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	logger.Info("User deactivated", "user_id", id)
	return nil
}
