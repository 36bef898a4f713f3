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

// AttendanceRepository persists mentee join requests.
type AttendanceRepository interface {
	Create(ctx context.Context, tx *gorm.DB, request *model.AttendanceRequest) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.AttendanceRequest, error)
	FindByBlock(ctx context.Context, db *gorm.DB, blockID uuid.UUID) ([]*model.AttendanceRequest, error)
	FindOpenByMenteeAndBlock(ctx context.Context, db *gorm.DB, menteeID, blockID uuid.UUID) (*model.AttendanceRequest, error)
	UpdateStatusByPair(ctx context.Context, tx *gorm.DB, menteeID, blockID uuid.UUID, status model.Status) error
	DeleteByBlock(ctx context.Context, tx *gorm.DB, blockID uuid.UUID) error
}

type gormAttendanceRepository struct{}

func NewGormAttendanceRepository() AttendanceRepository {
	return &gormAttendanceRepository{}
}

func (r *gormAttendanceRepository) Create(ctx context.Context, tx *gorm.DB, request *model.AttendanceRequest) error {
	logger := middleware.GetLogger(ctx)
	if result := tx.WithContext(ctx).Create(request); result.Error != nil {
		logger.Error("Error creating attendance request in DB",
			"error", result.Error,
			"mentee_id", request.MenteeID.String(),
			"session_block_id", request.SessionBlockID.String(),
		)
		return fmt.Errorf("gormAttendanceRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormAttendanceRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.AttendanceRequest, error) {
	var request model.AttendanceRequest
	result := db.WithContext(ctx).Where("id = ?", id).First(&request)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormAttendanceRepository.FindByID: %w", result.Error)
	}
	return &request, nil
}

func (r *gormAttendanceRepository) FindByBlock(ctx context.Context, db *gorm.DB, blockID uuid.UUID) ([]*model.AttendanceRequest, error) {
	var requests []*model.AttendanceRequest
	result := db.WithContext(ctx).
		Where("session_block_id = ?", blockID).
		Order("created_at ASC").
		Find(&requests)
	if result.Error != nil {
		return nil, fmt.Errorf("gormAttendanceRepository.FindByBlock: %w", result.Error)
	}
	return requests, nil
}

// FindOpenByMenteeAndBlock returns a pending or confirmed request for the
// pair, used to reject duplicate applications.
func (r *gormAttendanceRepository) FindOpenByMenteeAndBlock(ctx context.Context, db *gorm.DB, menteeID, blockID uuid.UUID) (*model.AttendanceRequest, error) {
	var request model.AttendanceRequest
	result := db.WithContext(ctx).
		Where("mentee_id = ? AND session_block_id = ? AND status IN ?",
			menteeID, blockID, []model.Status{model.StatusPending, model.StatusConfirmed}).
		First(&request)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormAttendanceRepository.FindOpenByMenteeAndBlock: %w", result.Error)
	}
	return &request, nil
}

// UpdateStatusByPair mirrors an assignment status change onto the
// originating request. Missing rows are fine: admin-created assignments
// have no request.
func (r *gormAttendanceRepository) UpdateStatusByPair(ctx context.Context, tx *gorm.DB, menteeID, blockID uuid.UUID, status model.Status) error {
	result := tx.WithContext(ctx).Model(&model.AttendanceRequest{}).
		Where("mentee_id = ? AND session_block_id = ?", menteeID, blockID).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("gormAttendanceRepository.UpdateStatusByPair: %w", result.Error)
	}
	return nil
}

func (r *gormAttendanceRepository) DeleteByBlock(ctx context.Context, tx *gorm.DB, blockID uuid.UUID) error {
	result := tx.WithContext(ctx).Where("session_block_id = ?", blockID).Delete(&model.AttendanceRequest{})
	if result.Error != nil {
		return fmt.Errorf("gormAttendanceRepository.DeleteByBlock: %w", result.Error)
	}
	return nil
}
