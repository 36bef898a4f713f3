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

// UserRepository persists accounts and their role profiles.
type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *model.User) error
	CreateMentorProfile(ctx context.Context, tx *gorm.DB, profile *model.MentorProfile) error
	CreateMenteeProfile(ctx context.Context, tx *gorm.DB, profile *model.MenteeProfile) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.User, error)
	FindByIDWithProfiles(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.User, error)
	FindMentorProfile(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.MentorProfile, error)
	FindMenteeProfile(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.MenteeProfile, error)
	List(ctx context.Context, db *gorm.DB) ([]*model.User, error)
	ListByRole(ctx context.Context, db *gorm.DB, role model.Role) ([]*model.User, error)
	CountByRole(ctx context.Context, db *gorm.DB, role model.Role) (int64, error)
	Deactivate(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type gormUserRepository struct{}

func NewGormUserRepository() UserRepository {
	return &gormUserRepository{}
}

func (r *gormUserRepository) Create(ctx context.Context, tx *gorm.DB, user *model.User) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return model.ErrConflict
		}
		logger.Error("Error creating user in DB", "error", result.Error, "email", user.Email)
		return fmt.Errorf("gormUserRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormUserRepository) CreateMentorProfile(ctx context.Context, tx *gorm.DB, profile *model.MentorProfile) error {
	logger := middleware.GetLogger(ctx)
	if result := tx.WithContext(ctx).Create(profile); result.Error != nil {
		logger.Error("Error creating mentor profile in DB", "error", result.Error, "user_id", profile.ID.String())
		return fmt.Errorf("gormUserRepository.CreateMentorProfile: %w", result.Error)
	}
	return nil
}

func (r *gormUserRepository) CreateMenteeProfile(ctx context.Context, tx *gorm.DB, profile *model.MenteeProfile) error {
	logger := middleware.GetLogger(ctx)
	if result := tx.WithContext(ctx).Create(profile); result.Error != nil {
		logger.Error("Error creating mentee profile in DB", "error", result.Error, "user_id", profile.ID.String())
		return fmt.Errorf("gormUserRepository.CreateMenteeProfile: %w", result.Error)
	}
	return nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.User, error) {
	var user model.User
	result := db.WithContext(ctx).Where("id = ?", id).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormUserRepository.FindByID: %w", result.Error)
	}
	return &user, nil
}

func (r *gormUserRepository) FindByIDWithProfiles(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.User, error) {
	var user model.User
	result := db.WithContext(ctx).
		Preload("MentorProfile").
		Preload("MenteeProfile").
		Where("id = ?", id).
		First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormUserRepository.FindByIDWithProfiles: %w", result.Error)
	}
	return &user, nil
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.User, error) {
	var user model.User
	result := db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormUserRepository.FindByEmail: %w", result.Error)
	}
	return &user, nil
}

func (r *gormUserRepository) FindMentorProfile(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.MentorProfile, error) {
	var profile model.MentorProfile
	result := db.WithContext(ctx).Where("id = ?", id).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormUserRepository.FindMentorProfile: %w", result.Error)
	}
	return &profile, nil
}

func (r *gormUserRepository) FindMenteeProfile(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.MenteeProfile, error) {
	var profile model.MenteeProfile
	result := db.WithContext(ctx).Where("id = ?", id).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormUserRepository.FindMenteeProfile: %w", result.Error)
	}
	return &profile, nil
}

func (r *gormUserRepository) List(ctx context.Context, db *gorm.DB) ([]*model.User, error) {
	var users []*model.User
	result := db.WithContext(ctx).Order("created_at DESC").Find(&users)
	if result.Error != nil {
		return nil, fmt.Errorf("gormUserRepository.List: %w", result.Error)
	}
	return users, nil
}

func (r *gormUserRepository) ListByRole(ctx context.Context, db *gorm.DB, role model.Role) ([]*model.User, error) {
	var users []*model.User
	result := db.WithContext(ctx).
		Preload("MentorProfile").
		Preload("MenteeProfile").
		Where("role = ?", role).
		Order("name ASC").
		Find(&users)
	if result.Error != nil {
		return nil, fmt.Errorf("gormUserRepository.ListByRole: %w", result.Error)
	}
	return users, nil
}

func (r *gormUserRepository) CountByRole(ctx context.Context, db *gorm.DB, role model.Role) (int64, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.User{}).Where("role = ?", role).Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("gormUserRepository.CountByRole: %w", result.Error)
	}
	return count, nil
}

func (r *gormUserRepository) Deactivate(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	result := tx.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("gormUserRepository.Deactivate: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
