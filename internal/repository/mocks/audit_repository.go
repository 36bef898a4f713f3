package mocks

import (
	"context"

	"skymentor/internal/model"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type AuditRepository struct {
	mock.Mock
}

func (m *AuditRepository) Create(ctx context.Context, tx *gorm.DB, event *model.AuditEvent) error {
	args := m.Called(ctx, tx, event)
	return args.Error(0)
}

func (m *AuditRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	args := m.Called(ctx, db)
	return args.Get(0).(int64), args.Error(1)
}
