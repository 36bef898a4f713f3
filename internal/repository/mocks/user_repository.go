package mocks

import (
	"context"

	"skymentor/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, tx *gorm.DB, user *model.User) error {
	args := m.Called(ctx, tx, user)
	return args.Error(0)
}

func (m *UserRepository) CreateMentorProfile(ctx context.Context, tx *gorm.DB, profile *model.MentorProfile) error {
	args := m.Called(ctx, tx, profile)
	return args.Error(0)
}

func (m *UserRepository) CreateMenteeProfile(ctx context.Context, tx *gorm.DB, profile *model.MenteeProfile) error {
	args := m.Called(ctx, tx, profile)
	return args.Error(0)
}

func (m *UserRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, db, id)
	if user, ok := args.Get(0).(*model.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) FindByIDWithProfiles(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, db, id)
	if user, ok := args.Get(0).(*model.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.User, error) {
	args := m.Called(ctx, db, email)
	if user, ok := args.Get(0).(*model.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) FindMentorProfile(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.MentorProfile, error) {
	args := m.Called(ctx, db, id)
	if profile, ok := args.Get(0).(*model.MentorProfile); ok {
		return profile, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) FindMenteeProfile(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.MenteeProfile, error) {
	args := m.Called(ctx, db, id)
	if profile, ok := args.Get(0).(*model.MenteeProfile); ok {
		return profile, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) List(ctx context.Context, db *gorm.DB) ([]*model.User, error) {
	args := m.Called(ctx, db)
	if users, ok := args.Get(0).([]*model.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) ListByRole(ctx context.Context, db *gorm.DB, role model.Role) ([]*model.User, error) {
	args := m.Called(ctx, db, role)
	if users, ok := args.Get(0).([]*model.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) CountByRole(ctx context.Context, db *gorm.DB, role model.Role) (int64, error) {
	args := m.Called(ctx, db, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepository) Deactivate(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}
