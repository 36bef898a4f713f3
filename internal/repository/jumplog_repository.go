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

// JumpLogRepository persists mentee logbook entries.
type JumpLogRepository interface {
	Create(ctx context.Context, tx *gorm.DB, log *model.JumpLog) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.JumpLog, error)
	FindByMentee(ctx context.Context, db *gorm.DB, menteeID uuid.UUID) ([]*model.JumpLog, error)
	FindLatestByMentee(ctx context.Context, db *gorm.DB, menteeID uuid.UUID) (*model.JumpLog, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type gormJumpLogRepository struct{}

func NewGormJumpLogRepository() JumpLogRepository {
	return &gormJumpLogRepository{}
}

func (r *gormJumpLogRepository) Create(ctx context.Context, tx *gorm.DB, log *model.JumpLog) error {
	logger := middleware.GetLogger(ctx)
	if result := tx.WithContext(ctx).Create(log); result.Error != nil {
		logger.Error("Error creating jump log in DB", "error", result.Error, "mentee_id", log.MenteeID.String())
		return fmt.Errorf("gormJumpLogRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormJumpLogRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.JumpLog, error) {
	var log model.JumpLog
	result := db.WithContext(ctx).Where("id = ?", id).First(&log)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormJumpLogRepository.FindByID: %w", result.Error)
	}
	return &log, nil
}

func (r *gormJumpLogRepository) FindByMentee(ctx context.Context, db *gorm.DB, menteeID uuid.UUID) ([]*model.JumpLog, error) {
	var logs []*model.JumpLog
	result := db.WithContext(ctx).
		Where("mentee_id = ?", menteeID).
		Order("date DESC, jump_number DESC").
		Find(&logs)
	if result.Error != nil {
		return nil, fmt.Errorf("gormJumpLogRepository.FindByMentee: %w", result.Error)
	}
	return logs, nil
}

func (r *gormJumpLogRepository) FindLatestByMentee(ctx context.Context, db *gorm.DB, menteeID uuid.UUID) (*model.JumpLog, error) {
	var log model.JumpLog
	result := db.WithContext(ctx).
		Where("mentee_id = ?", menteeID).
		Order("date DESC, jump_number DESC").
		First(&log)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormJumpLogRepository.FindLatestByMentee: %w", result.Error)
	}
	return &log, nil
}

func (r *gormJumpLogRepository) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.JumpLog{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("gormJumpLogRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormJumpLogRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	result := tx.WithContext(ctx).Where("id = ?", id).Delete(&model.JumpLog{})
	if result.Error != nil {
		return fmt.Errorf("gormJumpLogRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
