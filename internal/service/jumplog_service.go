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

// JumpLogService manages the per-mentee logbook.
type JumpLogService interface {
	Create(ctx context.Context, callerID uuid.UUID, callerRole model.Role, req *model.CreateJumpLogRequest) (*model.JumpLog, error)
	List(ctx context.Context, callerID uuid.UUID, callerRole model.Role, menteeID uuid.UUID) ([]*model.JumpLog, error)
	Update(ctx context.Context, callerID uuid.UUID, callerRole model.Role, id uuid.UUID, req *model.UpdateJumpLogRequest) (*model.JumpLog, error)
	Delete(ctx context.Context, callerID uuid.UUID, callerRole model.Role, id uuid.UUID) error
}

type jumpLogService struct {
	db          *gorm.DB
	jumpLogRepo repository.JumpLogRepository
	userRepo    repository.UserRepository
}

func NewJumpLogService(db *gorm.DB, jumpLogRepo repository.JumpLogRepository, userRepo repository.UserRepository) JumpLogService {
	return &jumpLogService{db: db, jumpLogRepo: jumpLogRepo, userRepo: userRepo}
}

// Create logs a jump. Mentees always log for themselves; mentors and
// admins may log on a mentee's behalf via req.MenteeID.
func (s *jumpLogService) Create(ctx context.Context, callerID uuid.UUID, callerRole model.Role, req *model.CreateJumpLogRequest) (*model.JumpLog, error) {
	logger := middleware.GetLogger(ctx)

	menteeID := callerID
	if callerRole != model.RoleMentee {
		if req.MenteeID == nil {
			return nil, model.NewAppError("MENTEE_REQUIRED", "A mentee must be named when logging on someone's behalf.", "mentee_id", model.ErrInvalidInput)
		}
		menteeID = *req.MenteeID
	}

	if _, err := s.userRepo.FindMenteeProfile(ctx, s.db, menteeID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("MENTEE_NOT_FOUND", "The mentee does not exist.", "mentee_id", model.ErrNotFound)
		}
		logger.Error("Failed to resolve mentee profile", "error", err, "mentee_id", menteeID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	log := &model.JumpLog{
		ID:            uuid.New(),
		MenteeID:      menteeID,
		Date:          req.Date,
		JumpNumber:    req.JumpNumber,
		Aircraft:      req.Aircraft,
		ExitAlt:       req.ExitAlt,
		FreefallTime:  req.FreefallTime,
		DeploymentAlt: req.DeploymentAlt,
		PatternNotes:  req.PatternNotes,
		DrillRef:      req.DrillRef,
		MentorID:      req.MentorID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.jumpLogRepo.Create(ctx, tx, log)
	})
	if err != nil {
		logger.Error("Failed to create jump log", "error", err, "mentee_id", menteeID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to save the jump log.", "", err)
	}

	logger.Info("Jump log created", "jump_log_id", log.ID, "mentee_id", menteeID)
	return log, nil
}

// List returns a mentee's logbook. Mentees only see their own; mentors
// and admins may read any mentee's.
func (s *jumpLogService) List(ctx context.Context, callerID uuid.UUID, callerRole model.Role, menteeID uuid.UUID) ([]*model.JumpLog, error) {
	logger := middleware.GetLogger(ctx)

	if callerRole == model.RoleMentee && menteeID != callerID {
		return nil, model.NewAppError("FORBIDDEN", "Mentees can only read their own logbook.", "", model.ErrForbidden)
	}

	logs, err := s.jumpLogRepo.FindByMentee(ctx, s.db, menteeID)
	if err != nil {
		logger.Error("Failed to list jump logs", "error", err, "mentee_id", menteeID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}
	return logs, nil
}

func (s *jumpLogService) Update(ctx context.Context, callerID uuid.UUID, callerRole model.Role, id uuid.UUID, req *model.UpdateJumpLogRequest) (*model.JumpLog, error) {
	logger := middleware.GetLogger(ctx)

	if _, err := s.authorizeLogWrite(ctx, callerID, callerRole, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.JumpNumber != nil {
		updates["jump_number"] = *req.JumpNumber
	}
	if req.Aircraft != nil {
		updates["aircraft"] = *req.Aircraft
	}
	if req.ExitAlt != nil {
		updates["exit_alt"] = *req.ExitAlt
	}
	if req.FreefallTime != nil {
		updates["freefall_time"] = *req.FreefallTime
	}
	if req.DeploymentAlt != nil {
		updates["deployment_alt"] = *req.DeploymentAlt
	}
	if req.PatternNotes != nil {
		updates["pattern_notes"] = *req.PatternNotes
	}
	if req.DrillRef != nil {
		updates["drill_ref"] = *req.DrillRef
	}
	if req.MentorID != nil {
		updates["mentor_id"] = *req.MentorID
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.jumpLogRepo.Update(ctx, tx, id, updates)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("JUMP_LOG_NOT_FOUND", "Jump log not found.", "", model.ErrNotFound)
		}
		logger.Error("Failed to update jump log", "error", err, "jump_log_id", id)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to update the jump log.", "", err)
	}

	updated, err := s.jumpLogRepo.FindByID(ctx, s.db, id)
	if err != nil {
		logger.Error("Failed to reload jump log", "error", err, "jump_log_id", id)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}
	return updated, nil
}

func (s *jumpLogService) Delete(ctx context.Context, callerID uuid.UUID, callerRole model.Role, id uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	if _, err := s.authorizeLogWrite(ctx, callerID, callerRole, id); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.jumpLogRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("JUMP_LOG_NOT_FOUND", "Jump log not found.", "", model.ErrNotFound)
		}
		logger.Error("Failed to delete jump log", "error", err, "jump_log_id", id)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to delete the jump log.", "", err)
	}

	logger.Info("Jump log deleted", "jump_log_id", id)
	return nil
}

// authorizeLogWrite lets the owning mentee, the mentor named on the
// entry, or an admin modify it.
func (s *jumpLogService) authorizeLogWrite(ctx context.Context, callerID uuid.UUID, callerRole model.Role, id uuid.UUID) (*model.JumpLog, error) {
	log, err := s.jumpLogRepo.FindByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("JUMP_LOG_NOT_FOUND", "Jump log not found.", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}
	if callerRole == model.RoleAdmin || log.MenteeID == callerID {
		return log, nil
	}
	if log.MentorID != nil && *log.MentorID == callerID {
		return log, nil
	}
	return nil, model.NewAppError("FORBIDDEN", "Only the owning mentee, the attesting mentor or an admin can modify this entry.", "", model.ErrForbidden)
}
