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

// BadgeRepository persists the badge catalog and awards.
type BadgeRepository interface {
	CreateBadge(ctx context.Context, tx *gorm.DB, badge *model.Badge) error
	FindBadges(ctx context.Context, db *gorm.DB) ([]*model.Badge, error)
	FindBadgeByCode(ctx context.Context, db *gorm.DB, code string) (*model.Badge, error)
	CreateAward(ctx context.Context, tx *gorm.DB, award *model.Award) error
	AwardExists(ctx context.Context, db *gorm.DB, menteeID, badgeID uuid.UUID) (bool, error)
	FindAwardsByMentee(ctx context.Context, db *gorm.DB, menteeID uuid.UUID) ([]*model.Award, error)
	CountAwardsByMentee(ctx context.Context, db *gorm.DB, menteeID uuid.UUID) (int64, error)
}

type gormBadgeRepository struct{}

func NewGormBadgeRepository() BadgeRepository {
	return &gormBadgeRepository{}
}

func (r *gormBadgeRepository) CreateBadge(ctx context.Context, tx *gorm.DB, badge *model.Badge) error {
	logger := middleware.GetLogger(ctx)
	if result := tx.WithContext(ctx).Create(badge); result.Error != nil {
		logger.Error("Error creating badge in DB", "error", result.Error, "code", badge.Code)
		return fmt.Errorf("gormBadgeRepository.CreateBadge: %w", result.Error)
	}
	return nil
}

func (r *gormBadgeRepository) FindBadges(ctx context.Context, db *gorm.DB) ([]*model.Badge, error) {
	var badges []*model.Badge
	result := db.WithContext(ctx).Order("code ASC").Find(&badges)
	if result.Error != nil {
		return nil, fmt.Errorf("gormBadgeRepository.FindBadges: %w", result.Error)
	}
	return badges, nil
}

func (r *gormBadgeRepository) FindBadgeByCode(ctx context.Context, db *gorm.DB, code string) (*model.Badge, error) {
	var badge model.Badge
	result := db.WithContext(ctx).Where("code = ?", code).First(&badge)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormBadgeRepository.FindBadgeByCode: %w", result.Error)
	}
	return &badge, nil
}

func (r *gormBadgeRepository) CreateAward(ctx context.Context, tx *gorm.DB, award *model.Award) error {
	logger := middleware.GetLogger(ctx)
	if result := tx.WithContext(ctx).Create(award); result.Error != nil {
		logger.Error("Error creating award in DB",
			"error", result.Error,
			"mentee_id", award.MenteeID.String(),
			"badge_id", award.BadgeID.String(),
		)
		return fmt.Errorf("gormBadgeRepository.CreateAward: %w", result.Error)
	}
	return nil
}

func (r *gormBadgeRepository) AwardExists(ctx context.Context, db *gorm.DB, menteeID, badgeID uuid.UUID) (bool, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.Award{}).
		Where("mentee_id = ? AND badge_id = ?", menteeID, badgeID).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("gormBadgeRepository.AwardExists: %w", result.Error)
	}
	return count > 0, nil
}

func (r *gormBadgeRepository) FindAwardsByMentee(ctx context.Context, db *gorm.DB, menteeID uuid.UUID) ([]*model.Award, error) {
	var awards []*model.Award
	result := db.WithContext(ctx).
		Preload("Badge").
		Where("mentee_id = ?", menteeID).
		Order("awarded_at DESC").
		Find(&awards)
	if result.Error != nil {
		return nil, fmt.Errorf("gormBadgeRepository.FindAwardsByMentee: %w", result.Error)
	}
	return awards, nil
}

func (r *gormBadgeRepository) CountAwardsByMentee(ctx context.Context, db *gorm.DB, menteeID uuid.UUID) (int64, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.Award{}).Where("mentee_id = ?", menteeID).Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("gormBadgeRepository.CountAwardsByMentee: %w", result.Error)
	}
	return count, nil
}
