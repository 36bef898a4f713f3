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

// SessionBlockRepository persists the dated training slots.
type SessionBlockRepository interface {
	Create(ctx context.Context, tx *gorm.DB, block *model.SessionBlock) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.SessionBlock, error)
	Find(ctx context.Context, db *gorm.DB, query model.SessionBlockQuery) ([]*model.SessionBlock, error)
	FindWithMentor(ctx context.Context, db *gorm.DB, query model.SessionBlockQuery) ([]*model.SessionBlock, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}

type gormSessionBlockRepository struct{}

func NewGormSessionBlockRepository() SessionBlockRepository {
	return &gormSessionBlockRepository{}
}

func (r *gormSessionBlockRepository) Create(ctx context.Context, tx *gorm.DB, block *model.SessionBlock) error {
	logger := middleware.GetLogger(ctx)
	if result := tx.WithContext(ctx).Create(block); result.Error != nil {
		logger.Error("Error creating session block in DB", "error", result.Error, "mentor_id", block.MentorID.String())
		return fmt.Errorf("gormSessionBlockRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormSessionBlockRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.SessionBlock, error) {
	var block model.SessionBlock
	result := db.WithContext(ctx).Where("id = ?", id).First(&block)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormSessionBlockRepository.FindByID: %w", result.Error)
	}
	return &block, nil
}

func applyBlockQuery(db *gorm.DB, query model.SessionBlockQuery) *gorm.DB {
	if query.MentorID != uuid.Nil {
		db = db.Where("mentor_id = ?", query.MentorID)
	}
	if !query.From.IsZero() {
		db = db.Where("date >= ?", query.From)
	}
	if !query.To.IsZero() {
		db = db.Where("date <= ?", query.To)
	}
	return db
}

func (r *gormSessionBlockRepository) Find(ctx context.Context, db *gorm.DB, query model.SessionBlockQuery) ([]*model.SessionBlock, error) {
	var blocks []*model.SessionBlock
	result := applyBlockQuery(db.WithContext(ctx), query).
		Order("date ASC, start_time ASC").
		Find(&blocks)
	if result.Error != nil {
		return nil, fmt.Errorf("gormSessionBlockRepository.Find: %w", result.Error)
	}
	return blocks, nil
}

// FindWithMentor preloads the mentor account for annotated listings.
func (r *gormSessionBlockRepository) FindWithMentor(ctx context.Context, db *gorm.DB, query model.SessionBlockQuery) ([]*model.SessionBlock, error) {
	var blocks []*model.SessionBlock
	result := applyBlockQuery(db.WithContext(ctx).Preload("Mentor").Preload("Mentor.MentorProfile"), query).
		Order("date ASC, start_time ASC").
		Find(&blocks)
	if result.Error != nil {
		return nil, fmt.Errorf("gormSessionBlockRepository.FindWithMentor: %w", result.Error)
	}
	return blocks, nil
}

func (r *gormSessionBlockRepository) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.SessionBlock{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("gormSessionBlockRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Delete removes the block row only; the service clears dependent
// requests and assignments in the same transaction first.
func (r *gormSessionBlockRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	result := tx.WithContext(ctx).Where("id = ?", id).Delete(&model.SessionBlock{})
	if result.Error != nil {
		return fmt.Errorf("gormSessionBlockRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormSessionBlockRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.SessionBlock{}).Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("gormSessionBlockRepository.Count: %w", result.Error)
	}
	return count, nil
}
