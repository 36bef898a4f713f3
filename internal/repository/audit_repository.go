package repository

import (
	"context"
	"fmt"
	"time"

	"skymentor/internal/middleware"
	"skymentor/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditRepository appends audit events. There is no update or delete.
type AuditRepository interface {
	Create(ctx context.Context, tx *gorm.DB, event *model.AuditEvent) error
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}

type gormAuditRepository struct{}

func NewGormAuditRepository() AuditRepository {
	return &gormAuditRepository{}
}

func (r *gormAuditRepository) Create(ctx context.Context, tx *gorm.DB, event *model.AuditEvent) error {
	logger := middleware.GetLogger(ctx)
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.At.IsZero() {
		event.At = time.Now()
	}
	if result := tx.WithContext(ctx).Create(event); result.Error != nil {
		logger.Error("Error creating audit event in DB", "error", result.Error, "type", event.Type)
		return fmt.Errorf("gormAuditRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormAuditRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.AuditEvent{}).Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("gormAuditRepository.Count: %w", result.Error)
	}
	return count, nil
}
