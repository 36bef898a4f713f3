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

// AssignmentRepository persists mentor-mentee pairings.
type AssignmentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, assignment *model.Assignment) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.Assignment, error)
	FindByMentor(ctx context.Context, db *gorm.DB, mentorID uuid.UUID) ([]*model.Assignment, error)
	FindByMentee(ctx context.Context, db *gorm.DB, menteeID uuid.UUID) ([]*model.Assignment, error)
	FindByMenteeAndStatus(ctx context.Context, db *gorm.DB, menteeID uuid.UUID, status model.Status) ([]*model.Assignment, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.Assignment, error)
	FindByBlock(ctx context.Context, db *gorm.DB, blockID uuid.UUID) ([]*model.Assignment, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status model.Status) error
	DeleteByBlock(ctx context.Context, tx *gorm.DB, blockID uuid.UUID) error
	CountByMentorAndStatus(ctx context.Context, db *gorm.DB, mentorID uuid.UUID, status model.Status) (int64, error)
	CountByStatus(ctx context.Context, db *gorm.DB, status model.Status) (int64, error)
}

type gormAssignmentRepository struct{}

func NewGormAssignmentRepository() AssignmentRepository {
	return &gormAssignmentRepository{}
}

// joined preloads both parties and the block for list views.
func joined(db *gorm.DB) *gorm.DB {
	return db.Preload("Mentor").Preload("Mentee").Preload("SessionBlock")
}

func (r *gormAssignmentRepository) Create(ctx context.Context, tx *gorm.DB, assignment *model.Assignment) error {
	logger := middleware.GetLogger(ctx)
	if result := tx.WithContext(ctx).Create(assignment); result.Error != nil {
		logger.Error("Error creating assignment in DB",
			"error", result.Error,
			"session_block_id", assignment.SessionBlockID.String(),
			"mentee_id", assignment.MenteeID.String(),
		)
		return fmt.Errorf("gormAssignmentRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormAssignmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.Assignment, error) {
	var assignment model.Assignment
	result := joined(db.WithContext(ctx)).Where("id = ?", id).First(&assignment)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormAssignmentRepository.FindByID: %w", result.Error)
	}
	return &assignment, nil
}

func (r *gormAssignmentRepository) FindByMentor(ctx context.Context, db *gorm.DB, mentorID uuid.UUID) ([]*model.Assignment, error) {
	var assignments []*model.Assignment
	result := joined(db.WithContext(ctx)).
		Where("mentor_id = ?", mentorID).
		Order("created_at DESC").
		Find(&assignments)
	if result.Error != nil {
		return nil, fmt.Errorf("gormAssignmentRepository.FindByMentor: %w", result.Error)
	}
	return assignments, nil
}

func (r *gormAssignmentRepository) FindByMentee(ctx context.Context, db *gorm.DB, menteeID uuid.UUID) ([]*model.Assignment, error) {
	var assignments []*model.Assignment
	result := joined(db.WithContext(ctx)).
		Where("mentee_id = ?", menteeID).
		Order("created_at DESC").
		Find(&assignments)
	if result.Error != nil {
		return nil, fmt.Errorf("gormAssignmentRepository.FindByMentee: %w", result.Error)
	}
	return assignments, nil
}

func (r *gormAssignmentRepository) FindByMenteeAndStatus(ctx context.Context, db *gorm.DB, menteeID uuid.UUID, status model.Status) ([]*model.Assignment, error) {
	var assignments []*model.Assignment
	result := joined(db.WithContext(ctx)).
		Where("mentee_id = ? AND status = ?", menteeID, status).
		Order("created_at DESC").
		Find(&assignments)
	if result.Error != nil {
		return nil, fmt.Errorf("gormAssignmentRepository.FindByMenteeAndStatus: %w", result.Error)
	}
	return assignments, nil
}

func (r *gormAssignmentRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.Assignment, error) {
	var assignments []*model.Assignment
	result := joined(db.WithContext(ctx)).Order("created_at DESC").Find(&assignments)
	if result.Error != nil {
		return nil, fmt.Errorf("gormAssignmentRepository.FindAll: %w", result.Error)
	}
	return assignments, nil
}

func (r *gormAssignmentRepository) FindByBlock(ctx context.Context, db *gorm.DB, blockID uuid.UUID) ([]*model.Assignment, error) {
	var assignments []*model.Assignment
	result := joined(db.WithContext(ctx)).
		Where("session_block_id = ?", blockID).
		Order("created_at ASC").
		Find(&assignments)
	if result.Error != nil {
		return nil, fmt.Errorf("gormAssignmentRepository.FindByBlock: %w", result.Error)
	}
	return assignments, nil
}

func (r *gormAssignmentRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status model.Status) error {
	result := tx.WithContext(ctx).Model(&model.Assignment{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("gormAssignmentRepository.UpdateStatus: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormAssignmentRepository) DeleteByBlock(ctx context.Context, tx *gorm.DB, blockID uuid.UUID) error {
	result := tx.WithContext(ctx).Where("session_block_id = ?", blockID).Delete(&model.Assignment{})
	if result.Error != nil {
		return fmt.Errorf("gormAssignmentRepository.DeleteByBlock: %w", result.Error)
	}
	return nil
}

func (r *gormAssignmentRepository) CountByMentorAndStatus(ctx context.Context, db *gorm.DB, mentorID uuid.UUID, status model.Status) (int64, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.Assignment{}).
		Where("mentor_id = ? AND status = ?", mentorID, status).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("gormAssignmentRepository.CountByMentorAndStatus: %w", result.Error)
	}
	return count, nil
}

func (r *gormAssignmentRepository) CountByStatus(ctx context.Context, db *gorm.DB, status model.Status) (int64, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.Assignment{}).Where("status = ?", status).Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("gormAssignmentRepository.CountByStatus: %w", result.Error)
	}
	return count, nil
}
