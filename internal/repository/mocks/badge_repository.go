package mocks

import (
	"context"

	"skymentor/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type BadgeRepository struct {
	mock.Mock
}

func (m *BadgeRepository) CreateBadge(ctx context.Context, tx *gorm.DB, badge *model.Badge) error {
	args := m.Called(ctx, tx, badge)
	return args.Error(0)
}

func (m *BadgeRepository) FindBadges(ctx context.Context, db *gorm.DB) ([]*model.Badge, error) {
	args := m.Called(ctx, db)
	if badges, ok := args.Get(0).([]*model.Badge); ok {
		return badges, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BadgeRepository) FindBadgeByCode(ctx context.Context, db *gorm.DB, code string) (*model.Badge, error) {
	args := m.Called(ctx, db, code)
	if badge, ok := args.Get(0).(*model.Badge); ok {
		return badge, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BadgeRepository) CreateAward(ctx context.Context, tx *gorm.DB, award *model.Award) error {
	args := m.Called(ctx, tx, award)
	return args.Error(0)
}

func (m *BadgeRepository) AwardExists(ctx context.Context, db *gorm.DB, menteeID, badgeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, db, menteeID, badgeID)
	return args.Bool(0), args.Error(1)
}

func (m *BadgeRepository) FindAwardsByMentee(ctx context.Context, db *gorm.DB, menteeID uuid.UUID) ([]*model.Award, error) {
	args := m.Called(ctx, db, menteeID)
	if awards, ok := args.Get(0).([]*model.Award); ok {
		return awards, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BadgeRepository) CountAwardsByMentee(ctx context.Context, db *gorm.DB, menteeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, db, menteeID)
	return args.Get(0).(int64), args.Error(1)
}
