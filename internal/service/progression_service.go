package service

import (
	"context"
	"errors"
	"math"
	"time"

	"skymentor/internal/middleware"
	"skymentor/internal/model"
	"skymentor/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressionService serves the step catalog, attested completions,
// badge awards and the group exercise suggestion.
type ProgressionService interface {
	ListSteps(ctx context.Context, category model.Category) ([]*model.ProgressionStep, error)
	RecordCompletion(ctx context.Context, attesterID uuid.UUID, req *model.CreateStepCompletionRequest) (*model.StepCompletionView, error)
	ListCompletions(ctx context.Context, menteeID uuid.UUID) ([]model.StepCompletionView, error)
	ListBadges(ctx context.Context) ([]*model.Badge, error)
	ListAwards(ctx context.Context, menteeID uuid.UUID) ([]model.AwardView, error)
	SuggestExercises(ctx context.Context, menteeIDs []uuid.UUID) (*model.SuggestedExercisesResponse, error)
}

type progressionService struct {
	db              *gorm.DB
	progressionRepo repository.ProgressionRepository
	badgeRepo       repository.BadgeRepository
	userRepo        repository.UserRepository
	auditRepo       repository.AuditRepository
}

func NewProgressionService(
	db *gorm.DB,
	progressionRepo repository.ProgressionRepository,
	badgeRepo repository.BadgeRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditRepository,
) ProgressionService {
	return &progressionService{
		db:              db,
		progressionRepo: progressionRepo,
		badgeRepo:       badgeRepo,
		userRepo:        userRepo,
		auditRepo:       auditRepo,
	}
}

// ListSteps returns the catalog, optionally narrowed to one category.
func (s *progressionService) ListSteps(ctx context.Context, category model.Category) ([]*model.ProgressionStep, error) {
	logger := middleware.GetLogger(ctx)

	var (
		steps []*model.ProgressionStep
		err   error
	)
	if category == "" {
		steps, err = s.progressionRepo.FindSteps(ctx, s.db)
	} else {
		if !category.Valid() {
			return nil, model.NewAppError("INVALID_CATEGORY", "Unknown category.", "category", model.ErrInvalidInput)
		}
		steps, err = s.progressionRepo.FindStepsByCategory(ctx, s.db, category)
	}
	if err != nil {
		logger.Error("Failed to list progression steps", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}
	return steps, nil
}

// RecordCompletion writes an attested completion and evaluates badge
// criteria against the mentee's new totals, all in one transaction. The
// attester must hold a mentor profile; a mentee already credited with
// the step gets a conflict.
func (s *progressionService) RecordCompletion(ctx context.Context, attesterID uuid.UUID, req *model.CreateStepCompletionRequest) (*model.StepCompletionView, error) {
	logger := middleware.GetLogger(ctx).With("mentee_id", req.MenteeID, "step_id", req.StepID)

	if _, err := s.userRepo.FindMentorProfile(ctx, s.db, attesterID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("MENTOR_PROFILE_REQUIRED", "Only mentors can attest step completions.", "", model.ErrForbidden)
		}
		logger.Error("Failed to resolve attester profile", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}
	if _, err := s.userRepo.FindMenteeProfile(ctx, s.db, req.MenteeID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("MENTEE_NOT_FOUND", "The mentee does not exist.", "mentee_id", model.ErrNotFound)
		}
		logger.Error("Failed to resolve mentee profile", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	step, err := s.progressionRepo.FindStepByID(ctx, s.db, req.StepID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("STEP_NOT_FOUND", "Progression step not found.", "step_id", model.ErrNotFound)
		}
		logger.Error("Failed to find progression step", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	var completion *model.StepCompletion
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.progressionRepo.CompletionExists(ctx, tx, req.MenteeID, req.StepID)
		if err != nil {
			logger.Error("Failed to check completion existence", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
		}
		if exists {
			logger.Warn("Duplicate step completion")
			return model.NewAppError("DUPLICATE_COMPLETION", "This step is already recorded for the mentee.", "step_id", model.ErrConflict)
		}

		completion = &model.StepCompletion{
			ID:          uuid.New(),
			MenteeID:    req.MenteeID,
			StepID:      req.StepID,
			MentorID:    attesterID,
			CompletedAt: time.Now(),
			EvidenceURL: req.EvidenceURL,
			Notes:       req.Notes,
		}
		if err := s.progressionRepo.CreateCompletion(ctx, tx, completion); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to record the completion.", "", err)
		}

		if err := s.auditRepo.Create(ctx, tx, &model.AuditEvent{
			ActorID: &attesterID,
			Type:    model.AuditStepCompleted,
			Payload: map[string]any{
				"mentee_id": req.MenteeID.String(),
				"step_code": step.Code,
			},
		}); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to record the completion.", "", err)
		}

		if err := s.evaluateBadges(ctx, tx, req.MenteeID, attesterID); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to evaluate badge criteria.", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Step completion recorded", "step_code", step.Code, "attester_id", attesterID)
	return &model.StepCompletionView{StepCompletion: *completion, StepDetail: step}, nil
}

// evaluateBadges awards every badge whose criteria the mentee now
// meets and does not yet hold. Runs inside the completion transaction
// so a failed award rolls the completion back too.
func (s *progressionService) evaluateBadges(ctx context.Context, tx *gorm.DB, menteeID, actorID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	badges, err := s.badgeRepo.FindBadges(ctx, tx)
	if err != nil {
		return err
	}

	for _, badge := range badges {
		if badge.Criteria == nil {
			continue
		}

		met, err := s.criteriaMet(ctx, tx, menteeID, badge.Criteria)
		if err != nil {
			return err
		}
		if !met {
			continue
		}

		held, err := s.badgeRepo.AwardExists(ctx, tx, menteeID, badge.ID)
		if err != nil {
			return err
		}
		if held {
			continue
		}

		award := &model.Award{
			ID:        uuid.New(),
			MenteeID:  menteeID,
			BadgeID:   badge.ID,
			AwardedAt: time.Now(),
		}
		if err := s.badgeRepo.CreateAward(ctx, tx, award); err != nil {
			return err
		}
		if err := s.auditRepo.Create(ctx, tx, &model.AuditEvent{
			ActorID: &actorID,
			Type:    model.AuditBadgeAwarded,
			Payload: map[string]any{
				"mentee_id":  menteeID.String(),
				"badge_code": badge.Code,
			},
		}); err != nil {
			return err
		}
		logger.Info("Badge awarded", "mentee_id", menteeID, "badge_code", badge.Code)
	}
	return nil
}

func (s *progressionService) criteriaMet(ctx context.Context, tx *gorm.DB, menteeID uuid.UUID, criteria *model.BadgeCriteria) (bool, error) {
	if criteria.Category != "" {
		count, err := s.progressionRepo.CountCompletionsByMenteeAndCategory(ctx, tx, menteeID, criteria.Category)
		if err != nil {
			return false, err
		}
		return count >= int64(criteria.Count), nil
	}
	if criteria.TotalCount > 0 {
		count, err := s.progressionRepo.CountCompletionsByMentee(ctx, tx, menteeID)
		if err != nil {
			return false, err
		}
		return count >= int64(criteria.TotalCount), nil
	}
	return false, nil
}

func (s *progressionService) ListCompletions(ctx context.Context, menteeID uuid.UUID) ([]model.StepCompletionView, error) {
	logger := middleware.GetLogger(ctx)

	completions, err := s.progressionRepo.FindCompletionsByMentee(ctx, s.db, menteeID)
	if err != nil {
		logger.Error("Failed to list completions", "error", err, "mentee_id", menteeID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	views := make([]model.StepCompletionView, 0, len(completions))
	for _, c := range completions {
		views = append(views, model.StepCompletionView{StepCompletion: *c, StepDetail: c.Step})
	}
	return views, nil
}

func (s *progressionService) ListBadges(ctx context.Context) ([]*model.Badge, error) {
	logger := middleware.GetLogger(ctx)

	badges, err := s.badgeRepo.FindBadges(ctx, s.db)
	if err != nil {
		logger.Error("Failed to list badges", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}
	return badges, nil
}

func (s *progressionService) ListAwards(ctx context.Context, menteeID uuid.UUID) ([]model.AwardView, error) {
	logger := middleware.GetLogger(ctx)

	awards, err := s.badgeRepo.FindAwardsByMentee(ctx, s.db, menteeID)
	if err != nil {
		logger.Error("Failed to list awards", "error", err, "mentee_id", menteeID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	views := make([]model.AwardView, 0, len(awards))
	for _, a := range awards {
		views = append(views, model.AwardView{Award: *a, BadgeDetail: a.Badge})
	}
	return views, nil
}

// SuggestExercises picks one skill area for a group. The average
// completed-step count across the mentees, floored, indexes into the
// catalog ordered by category then title; the category at that index
// selects the exercises. A group ahead of the whole catalog gets an
// empty suggestion.
func (s *progressionService) SuggestExercises(ctx context.Context, menteeIDs []uuid.UUID) (*model.SuggestedExercisesResponse, error) {
	logger := middleware.GetLogger(ctx)

	if len(menteeIDs) == 0 {
		return nil, model.NewAppError("EMPTY_GROUP", "At least one mentee is required.", "mentee_ids", model.ErrInvalidInput)
	}

	var total int64
	for _, id := range menteeIDs {
		if _, err := s.userRepo.FindMenteeProfile(ctx, s.db, id); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return nil, model.NewAppError("MENTEE_NOT_FOUND", "One of the mentees does not exist.", "mentee_ids", model.ErrNotFound)
			}
			logger.Error("Failed to resolve mentee", "error", err, "mentee_id", id)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
		}
		count, err := s.progressionRepo.CountCompletionsByMentee(ctx, s.db, id)
		if err != nil {
			logger.Error("Failed to count completions", "error", err, "mentee_id", id)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
		}
		total += count
	}

	average := float64(total) / float64(len(menteeIDs))
	index := int(math.Floor(average))

	steps, err := s.progressionRepo.FindSteps(ctx, s.db)
	if err != nil {
		logger.Error("Failed to load step catalog", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	response := &model.SuggestedExercisesResponse{
		AverageCompleted: average,
		Exercises:        []model.ProgressionStep{},
	}
	if index >= len(steps) {
		return response, nil
	}

	category := steps[index].Category
	response.Category = category
	for _, step := range steps {
		if step.Category == category {
			response.Exercises = append(response.Exercises, *step)
		}
	}
	return response, nil
}
