package repository

import (
	"context"
	"errors"
	"fmt"

	"skymentor/internal/middleware"
	"skymentor/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreferenceRepository persists mentee matching preferences.
type PreferenceRepository interface {
	Upsert(ctx context.Context, tx *gorm.DB, preference *model.Preference) error
	FindByMentee(ctx context.Context, db *gorm.DB, menteeID uuid.UUID) (*model.Preference, error)
}

type gormPreferenceRepository struct{}

func NewGormPreferenceRepository() PreferenceRepository {
	return &gormPreferenceRepository{}
}

func (r *gormPreferenceRepository) Upsert(ctx context.Context, tx *gorm.DB, preference *model.Preference) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "mentee_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"preferred_mentors", "avoid_mentors", "notes"}),
	}).Create(preference)
	if result.Error != nil {
		logger.Error("Error upserting preference in DB", "error", result.Error, "mentee_id", preference.MenteeID.String())
		return fmt.Errorf("gormPreferenceRepository.Upsert: %w", result.Error)
	}
	return nil
}

func (r *gormPreferenceRepository) FindByMentee(ctx context.Context, db *gorm.DB, menteeID uuid.UUID) (*model.Preference, error) {
	var preference model.Preference
	result := db.WithContext(ctx).Where("mentee_id = ?", menteeID).First(&preference)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormPreferenceRepository.FindByMentee: %w", result.Error)
	}
	return &preference, nil
}
