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

// ProgressionRepository persists the step catalog and completions. Steps
// are seeded reference data; completions are append-only.
type ProgressionRepository interface {
	CreateStep(ctx context.Context, tx *gorm.DB, step *model.ProgressionStep) error
	FindStepByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.ProgressionStep, error)
	FindStepByCode(ctx context.Context, db *gorm.DB, code string) (*model.ProgressionStep, error)
	FindSteps(ctx context.Context, db *gorm.DB) ([]*model.ProgressionStep, error)
	FindStepsByCategory(ctx context.Context, db *gorm.DB, category model.Category) ([]*model.ProgressionStep, error)
	CreateCompletion(ctx context.Context, tx *gorm.DB, completion *model.StepCompletion) error
	CompletionExists(ctx context.Context, db *gorm.DB, menteeID, stepID uuid.UUID) (bool, error)
	FindCompletionsByMentee(ctx context.Context, db *gorm.DB, menteeID uuid.UUID) ([]*model.StepCompletion, error)
	CountCompletionsByMentee(ctx context.Context, db *gorm.DB, menteeID uuid.UUID) (int64, error)
	CountCompletionsByMenteeAndCategory(ctx context.Context, db *gorm.DB, menteeID uuid.UUID, category model.Category) (int64, error)
}

type gormProgressionRepository struct{}

func NewGormProgressionRepository() ProgressionRepository {
	return &gormProgressionRepository{}
}

func (r *gormProgressionRepository) CreateStep(ctx context.Context, tx *gorm.DB, step *model.ProgressionStep) error {
	logger := middleware.GetLogger(ctx)
	if result := tx.WithContext(ctx).Create(step); result.Error != nil {
		logger.Error("Error creating progression step in DB", "error", result.Error, "code", step.Code)
		return fmt.Errorf("gormProgressionRepository.CreateStep: %w", result.Error)
	}
	return nil
}

func (r *gormProgressionRepository) FindStepByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.ProgressionStep, error) {
	var step model.ProgressionStep
	result := db.WithContext(ctx).Where("id = ?", id).First(&step)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormProgressionRepository.FindStepByID: %w", result.Error)
	}
	return &step, nil
}

func (r *gormProgressionRepository) FindStepByCode(ctx context.Context, db *gorm.DB, code string) (*model.ProgressionStep, error) {
	var step model.ProgressionStep
	result := db.WithContext(ctx).Where("code = ?", code).First(&step)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormProgressionRepository.FindStepByCode: %w", result.Error)
	}
	return &step, nil
}

// FindSteps returns the whole catalog ordered by category then title,
// the order the suggestion computation indexes into.
func (r *gormProgressionRepository) FindSteps(ctx context.Context, db *gorm.DB) ([]*model.ProgressionStep, error) {
	var steps []*model.ProgressionStep
	result := db.WithContext(ctx).Order("category ASC, title ASC").Find(&steps)
	if result.Error != nil {
		return nil, fmt.Errorf("gormProgressionRepository.FindSteps: %w", result.Error)
	}
	return steps, nil
}

func (r *gormProgressionRepository) FindStepsByCategory(ctx context.Context, db *gorm.DB, category model.Category) ([]*model.ProgressionStep, error) {
	var steps []*model.ProgressionStep
	result := db.WithContext(ctx).
		Where("category = ?", category).
		Order("title ASC").
		Find(&steps)
	if result.Error != nil {
		return nil, fmt.Errorf("gormProgressionRepository.FindStepsByCategory: %w", result.Error)
	}
	return steps, nil
}

func (r *gormProgressionRepository) CreateCompletion(ctx context.Context, tx *gorm.DB, completion *model.StepCompletion) error {
	logger := middleware.GetLogger(ctx)
	if result := tx.WithContext(ctx).Create(completion); result.Error != nil {
		logger.Error("Error creating step completion in DB",
			"error", result.Error,
			"mentee_id", completion.MenteeID.String(),
			"step_id", completion.StepID.String(),
		)
		return fmt.Errorf("gormProgressionRepository.CreateCompletion: %w", result.Error)
	}
	return nil
}

func (r *gormProgressionRepository) CompletionExists(ctx context.Context, db *gorm.DB, menteeID, stepID uuid.UUID) (bool, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.StepCompletion{}).
		Where("mentee_id = ? AND step_id = ?", menteeID, stepID).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("gormProgressionRepository.CompletionExists: %w", result.Error)
	}
	return count > 0, nil
}

func (r *gormProgressionRepository) FindCompletionsByMentee(ctx context.Context, db *gorm.DB, menteeID uuid.UUID) ([]*model.StepCompletion, error) {
	var completions []*model.StepCompletion
	result := db.WithContext(ctx).
		Preload("Step").
		Where("mentee_id = ?", menteeID).
		Order("completed_at DESC").
		Find(&completions)
	if result.Error != nil {
		return nil, fmt.Errorf("gormProgressionRepository.FindCompletionsByMentee: %w", result.Error)
	}
	return completions, nil
}

func (r *gormProgressionRepository) CountCompletionsByMentee(ctx context.Context, db *gorm.DB, menteeID uuid.UUID) (int64, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.StepCompletion{}).
		Where("mentee_id = ?", menteeID).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("gormProgressionRepository.CountCompletionsByMentee: %w", result.Error)
	}
	return count, nil
}

func (r *gormProgressionRepository) CountCompletionsByMenteeAndCategory(ctx context.Context, db *gorm.DB, menteeID uuid.UUID, category model.Category) (int64, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.StepCompletion{}).
		Joins("JOIN progression_steps ON progression_steps.id = step_completions.step_id").
		Where("step_completions.mentee_id = ? AND progression_steps.category = ?", menteeID, category).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("gormProgressionRepository.CountCompletionsByMenteeAndCategory: %w", result.Error)
	}
	return count, nil
}
