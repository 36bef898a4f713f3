package repository

import (
	"context"
	"errors"
	"fmt"

	"skymentor/internal/middleware"
	"skymentor/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AvailabilityRepository persists the time windows users offer.
type AvailabilityRepository interface {
	Create(ctx context.Context, tx *gorm.DB, window *model.Availability) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.Availability, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Availability, error)
	Delete(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) error
}

type gormAvailabilityRepository struct{}

func NewGormAvailabilityRepository() AvailabilityRepository {
	return &gormAvailabilityRepository{}
}

func (r *gormAvailabilityRepository) Create(ctx context.Context, tx *gorm.DB, window *model.Availability) error {
	logger := middleware.GetLogger(ctx)
	if result := tx.WithContext(ctx).Create(window); result.Error != nil {
		logger.Error("Error creating availability in DB", "error", result.Error, "user_id", window.UserID.String())
		return fmt.Errorf("gormAvailabilityRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormAvailabilityRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.Availability, error) {
	var window model.Availability
	result := db.WithContext(ctx).Where("id = ?", id).First(&window)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormAvailabilityRepository.FindByID: %w", result.Error)
	}
	return &window, nil
}

func (r *gormAvailabilityRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Availability, error) {
	var windows []*model.Availability
	result := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day_of_week ASC, start_time ASC").
		Find(&windows)
	if result.Error != nil {
		return nil, fmt.Errorf("gormAvailabilityRepository.FindByUser: %w", result.Error)
	}
	return windows, nil
}

// Delete is scoped to the owning user so one user cannot remove
// another's window.
func (r *gormAvailabilityRepository) Delete(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID) error {
	result := tx.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(&model.Availability{})
	if result.Error != nil {
		return fmt.Errorf("gormAvailabilityRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
