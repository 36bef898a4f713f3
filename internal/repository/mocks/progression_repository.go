// Package mocks holds hand-written testify mocks for the repository
// interfaces, in the shape mockery would generate.
package mocks

import (
	"context"

	"skymentor/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type ProgressionRepository struct {
	mock.Mock
}

func (m *ProgressionRepository) CreateStep(ctx context.Context, tx *gorm.DB, step *model.ProgressionStep) error {
	args := m.Called(ctx, tx, step)
	return args.Error(0)
}

func (m *ProgressionRepository) FindStepByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.ProgressionStep, error) {
	args := m.Called(ctx, db, id)
	if step, ok := args.Get(0).(*model.ProgressionStep); ok {
		return step, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProgressionRepository) FindStepByCode(ctx context.Context, db *gorm.DB, code string) (*model.ProgressionStep, error) {
	args := m.Called(ctx, db, code)
	if step, ok := args.Get(0).(*model.ProgressionStep); ok {
		return step, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProgressionRepository) FindSteps(ctx context.Context, db *gorm.DB) ([]*model.ProgressionStep, error) {
	args := m.Called(ctx, db)
	if steps, ok := args.Get(0).([]*model.ProgressionStep); ok {
		return steps, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProgressionRepository) FindStepsByCategory(ctx context.Context, db *gorm.DB, category model.Category) ([]*model.ProgressionStep, error) {
	args := m.Called(ctx, db, category)
	if steps, ok := args.Get(0).([]*model.ProgressionStep); ok {
		return steps, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProgressionRepository) CreateCompletion(ctx context.Context, tx *gorm.DB, completion *model.StepCompletion) error {
	args := m.Called(ctx, tx, completion)
	return args.Error(0)
}

func (m *ProgressionRepository) CompletionExists(ctx context.Context, db *gorm.DB, menteeID, stepID uuid.UUID) (bool, error) {
	args := m.Called(ctx, db, menteeID, stepID)
	return args.Bool(0), args.Error(1)
}

func (m *ProgressionRepository) FindCompletionsByMentee(ctx context.Context, db *gorm.DB, menteeID uuid.UUID) ([]*model.StepCompletion, error) {
	args := m.Called(ctx, db, menteeID)
	if completions, ok := args.Get(0).([]*model.StepCompletion); ok {
		return completions, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProgressionRepository) CountCompletionsByMentee(ctx context.Context, db *gorm.DB, menteeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, db, menteeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProgressionRepository) CountCompletionsByMenteeAndCategory(ctx context.Context, db *gorm.DB, menteeID uuid.UUID, category model.Category) (int64, error) {
	args := m.Called(ctx, db, menteeID, category)
	return args.Get(0).(int64), args.Error(1)
}
