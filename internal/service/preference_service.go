package service

import (
	"context"
	"errors"

	"skymentor/internal/middleware"
	"skymentor/internal/model"
	"skymentor/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PreferenceService manages mentee matching preferences.
type PreferenceService interface {
	Upsert(ctx context.Context, menteeID uuid.UUID, req *model.UpsertPreferenceRequest) (*model.Preference, error)
	Get(ctx context.Context, callerID uuid.UUID, callerRole model.Role, menteeID uuid.UUID) (*model.Preference, error)
}

type preferenceService struct {
	db             *gorm.DB
	preferenceRepo repository.PreferenceRepository
	userRepo       repository.UserRepository
}

func NewPreferenceService(db *gorm.DB, preferenceRepo repository.PreferenceRepository, userRepo repository.UserRepository) PreferenceService {
	return &preferenceService{db: db, preferenceRepo: preferenceRepo, userRepo: userRepo}
}

// Upsert creates or replaces the caller's preference row. Preferences
// are hints for matching, never hard constraints.
func (s *preferenceService) Upsert(ctx context.Context, menteeID uuid.UUID, req *model.UpsertPreferenceRequest) (*model.Preference, error) {
	logger := middleware.GetLogger(ctx)

	if _, err := s.userRepo.FindMenteeProfile(ctx, s.db, menteeID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("MENTEE_PROFILE_REQUIRED", "Only mentees can set matching preferences.", "", model.ErrForbidden)
		}
		logger.Error("Failed to resolve mentee profile", "error", err, "mentee_id", menteeID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	preference := &model.Preference{
		ID:               uuid.New(),
		MenteeID:         menteeID,
		PreferredMentors: req.PreferredMentors,
		AvoidMentors:     req.AvoidMentors,
		Notes:            req.Notes,
	}
	if preference.PreferredMentors == nil {
		preference.PreferredMentors = []uuid.UUID{}
	}
	if preference.AvoidMentors == nil {
		preference.AvoidMentors = []uuid.UUID{}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.preferenceRepo.Upsert(ctx, tx, preference)
	})
	if err != nil {
		logger.Error("Failed to upsert preference", "error", err, "mentee_id", menteeID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to save the preferences.", "", err)
	}

	stored, err := s.preferenceRepo.FindByMentee(ctx, s.db, menteeID)
	if err != nil {
		logger.Error("Failed to reload preference", "error", err, "mentee_id", menteeID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	logger.Info("Preference saved", "mentee_id", menteeID)
	return stored, nil
}

// Get returns a mentee's preferences. Mentees only read their own;
// mentors and admins may read any mentee's.
func (s *preferenceService) Get(ctx context.Context, callerID uuid.UUID, callerRole model.Role, menteeID uuid.UUID) (*model.Preference, error) {
	logger := middleware.GetLogger(ctx)

	if callerRole == model.RoleMentee && menteeID != callerID {
		return nil, model.NewAppError("FORBIDDEN", "You can only read your own preferences.", "", model.ErrForbidden)
	}

	preference, err := s.preferenceRepo.FindByMentee(ctx, s.db, menteeID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PREFERENCE_NOT_FOUND", "No preferences recorded.", "", model.ErrNotFound)
		}
		logger.Error("Failed to find preference", "error", err, "mentee_id", menteeID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}
	return preference, nil
}
