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

// AvailabilityService manages the weekly windows users offer.
type AvailabilityService interface {
	Create(ctx context.Context, userID uuid.UUID, role model.Role, req *model.CreateAvailabilityRequest) (*model.Availability, error)
	ListOwn(ctx context.Context, userID uuid.UUID) ([]*model.Availability, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Availability, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type availabilityService struct {
	db               *gorm.DB
	availabilityRepo repository.AvailabilityRepository
	userRepo         repository.UserRepository
}

func NewAvailabilityService(db *gorm.DB, availabilityRepo repository.AvailabilityRepository, userRepo repository.UserRepository) AvailabilityService {
	return &availabilityService{
		db:               db,
		availabilityRepo: availabilityRepo,
		userRepo:         userRepo,
	}
}

// Create stores a new window for the caller. Windows may overlap; they
// are hints for scheduling, not reservations.
func (s *availabilityService) Create(ctx context.Context, userID uuid.UUID, role model.Role, req *model.CreateAvailabilityRequest) (*model.Availability, error) {
	logger := middleware.GetLogger(ctx)

	if req.StartTime >= req.EndTime {
		return nil, model.NewAppError("INVALID_TIME_RANGE", "The start time must be before the end time.", "start_time", model.ErrInvalidInput)
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, model.NewAppError("INVALID_DATE_RANGE", "The end date must not precede the start date.", "end_date", model.ErrInvalidInput)
	}

	window := &model.Availability{
		ID:               uuid.New(),
		UserID:           userID,
		Role:             role,
		DayOfWeek:        req.DayOfWeek,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		IsRecurring:      true,
		CapacityOverride: req.CapacityOverride,
	}
	if req.IsRecurring != nil {
		window.IsRecurring = *req.IsRecurring
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.availabilityRepo.Create(ctx, tx, window)
	})
	if err != nil {
		logger.Error("Failed to create availability", "error", err, "user_id", userID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to save the availability window.", "", err)
	}

	logger.Info("Availability created", "availability_id", window.ID, "user_id", userID)
	return window, nil
}

func (s *availabilityService) ListOwn(ctx context.Context, userID uuid.UUID) ([]*model.Availability, error) {
	return s.listByUser(ctx, userID)
}

// ListForUser serves admin lookups of anyone's windows. The user must
// exist so a typo'd ID reads as 404 rather than an empty list.
func (s *availabilityService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Availability, error) {
	if _, err := s.userRepo.FindByID(ctx, s.db, userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("USER_NOT_FOUND", "User not found.", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}
	return s.listByUser(ctx, userID)
}

func (s *availabilityService) listByUser(ctx context.Context, userID uuid.UUID) ([]*model.Availability, error) {
	logger := middleware.GetLogger(ctx)
	windows, err := s.availabilityRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		logger.Error("Failed to list availability", "error", err, "user_id", userID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}
	return windows, nil
}

// Delete removes one of the caller's own windows. The owner scope in
// the repository makes a foreign ID indistinguishable from a missing
// one.
func (s *availabilityService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.availabilityRepo.Delete(ctx, tx, userID, id)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("AVAILABILITY_NOT_FOUND", "Availability window not found.", "", model.ErrNotFound)
		}
		logger.Error("Failed to delete availability", "error", err, "availability_id", id)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	logger.Info("Availability deleted", "availability_id", id, "user_id", userID)
	return nil
}
