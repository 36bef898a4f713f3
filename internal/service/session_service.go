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

// SessionService manages published training blocks and their
// role-dependent listings.
type SessionService interface {
	Create(ctx context.Context, callerID uuid.UUID, callerRole model.Role, req *model.CreateSessionBlockRequest) (*model.SessionBlock, error)
	Update(ctx context.Context, callerID uuid.UUID, callerRole model.Role, id uuid.UUID, req *model.UpdateSessionBlockRequest) (*model.SessionBlock, error)
	Delete(ctx context.Context, callerID uuid.UUID, callerRole model.Role, id uuid.UUID) error
	ListForMentor(ctx context.Context, mentorID uuid.UUID, query model.SessionBlockQuery) ([]model.MentorSessionBlockView, error)
	ListAnnotated(ctx context.Context, query model.SessionBlockQuery) ([]model.SessionBlockView, error)
}

type sessionService struct {
	db             *gorm.DB
	sessionRepo    repository.SessionBlockRepository
	assignmentRepo repository.AssignmentRepository
	attendanceRepo repository.AttendanceRepository
	userRepo       repository.UserRepository
	auditRepo      repository.AuditRepository
}

func NewSessionService(
	db *gorm.DB,
	sessionRepo repository.SessionBlockRepository,
	assignmentRepo repository.AssignmentRepository,
	attendanceRepo repository.AttendanceRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditRepository,
) SessionService {
	return &sessionService{
		db:             db,
		sessionRepo:    sessionRepo,
		assignmentRepo: assignmentRepo,
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		auditRepo:      auditRepo,
	}
}

// Create publishes a block. Mentors always publish under their own ID;
// an admin may publish on behalf of any mentor via req.MentorID.
func (s *sessionService) Create(ctx context.Context, callerID uuid.UUID, callerRole model.Role, req *model.CreateSessionBlockRequest) (*model.SessionBlock, error) {
	logger := middleware.GetLogger(ctx)

	mentorID := callerID
	if callerRole == model.RoleAdmin && req.MentorID != nil {
		mentorID = *req.MentorID
	}

	if _, err := s.userRepo.FindMentorProfile(ctx, s.db, mentorID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("MENTOR_NOT_FOUND", "The mentor does not exist.", "mentor_id", model.ErrNotFound)
		}
		logger.Error("Failed to resolve mentor profile", "error", err, "mentor_id", mentorID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	if req.StartTime >= req.EndTime {
		return nil, model.NewAppError("INVALID_TIME_RANGE", "The start time must be before the end time.", "start_time", model.ErrInvalidInput)
	}

	block := &model.SessionBlock{
		ID:                uuid.New(),
		MentorID:          mentorID,
		Date:              req.Date,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		DZID:              req.DZID,
		LoadIntervalMin:   90,
		BlockCapacityHint: 8,
	}
	if req.LoadIntervalMin > 0 {
		block.LoadIntervalMin = req.LoadIntervalMin
	}
	if req.BlockCapacityHint > 0 {
		block.BlockCapacityHint = req.BlockCapacityHint
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.sessionRepo.Create(ctx, tx, block); err != nil {
			return err
		}
		return s.auditRepo.Create(ctx, tx, &model.AuditEvent{
			ActorID: &callerID,
			Type:    model.AuditSessionBlockCreated,
			Payload: map[string]any{
				"session_block_id": block.ID.String(),
				"mentor_id":        mentorID.String(),
				"date":             block.Date.Format("2006-01-02"),
			},
		})
	})
	if err != nil {
		logger.Error("Failed to create session block", "error", err, "mentor_id", mentorID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to publish the session block.", "", err)
	}

	logger.Info("Session block created", "session_block_id", block.ID, "mentor_id", mentorID)
	return block, nil
}

// Update applies a partial edit. Only the owning mentor or an admin may
// touch a block.
func (s *sessionService) Update(ctx context.Context, callerID uuid.UUID, callerRole model.Role, id uuid.UUID, req *model.UpdateSessionBlockRequest) (*model.SessionBlock, error) {
	logger := middleware.GetLogger(ctx)

	block, err := s.authorizeBlockWrite(ctx, callerID, callerRole, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.StartTime != nil {
		updates["start_time"] = *req.StartTime
	}
	if req.EndTime != nil {
		updates["end_time"] = *req.EndTime
	}
	if req.DZID != nil {
		updates["dz_id"] = *req.DZID
	}
	if req.LoadIntervalMin != nil {
		updates["load_interval_min"] = *req.LoadIntervalMin
	}
	if req.BlockCapacityHint != nil {
		updates["block_capacity_hint"] = *req.BlockCapacityHint
	}

	newStart, newEnd := block.StartTime, block.EndTime
	if req.StartTime != nil {
		newStart = *req.StartTime
	}
	if req.EndTime != nil {
		newEnd = *req.EndTime
	}
	if newStart >= newEnd {
		return nil, model.NewAppError("INVALID_TIME_RANGE", "The start time must be before the end time.", "start_time", model.ErrInvalidInput)
	}

	if len(updates) == 0 {
		return block, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.sessionRepo.Update(ctx, tx, id, updates)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("SESSION_BLOCK_NOT_FOUND", "Session block not found.", "", model.ErrNotFound)
		}
		logger.Error("Failed to update session block", "error", err, "session_block_id", id)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to update the session block.", "", err)
	}

	updated, err := s.sessionRepo.FindByID(ctx, s.db, id)
	if err != nil {
		logger.Error("Failed to reload session block", "error", err, "session_block_id", id)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	logger.Info("Session block updated", "session_block_id", id)
	return updated, nil
}

// Delete removes the block together with its attendance requests and
// assignments in one transaction, so no pairing can point at a block
// that is gone.
func (s *sessionService) Delete(ctx context.Context, callerID uuid.UUID, callerRole model.Role, id uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	block, err := s.authorizeBlockWrite(ctx, callerID, callerRole, id)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.assignmentRepo.DeleteByBlock(ctx, tx, id); err != nil {
			return err
		}
		if err := s.attendanceRepo.DeleteByBlock(ctx, tx, id); err != nil {
			return err
		}
		if err := s.sessionRepo.Delete(ctx, tx, id); err != nil {
			return err
		}
		return s.auditRepo.Create(ctx, tx, &model.AuditEvent{
			ActorID: &callerID,
			Type:    model.AuditSessionBlockDeleted,
			Payload: map[string]any{
				"session_block_id": id.String(),
				"mentor_id":        block.MentorID.String(),
			},
		})
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("SESSION_BLOCK_NOT_FOUND", "Session block not found.", "", model.ErrNotFound)
		}
		logger.Error("Failed to delete session block", "error", err, "session_block_id", id)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to delete the session block.", "", err)
	}

	logger.Info("Session block deleted", "session_block_id", id)
	return nil
}

// ListForMentor returns a mentor's own blocks with the nested
// assignments and mentee identities.
func (s *sessionService) ListForMentor(ctx context.Context, mentorID uuid.UUID, query model.SessionBlockQuery) ([]model.MentorSessionBlockView, error) {
	logger := middleware.GetLogger(ctx)

	query.MentorID = mentorID
	blocks, err := s.sessionRepo.Find(ctx, s.db, query)
	if err != nil {
		logger.Error("Failed to list session blocks", "error", err, "mentor_id", mentorID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	views := make([]model.MentorSessionBlockView, 0, len(blocks))
	for _, block := range blocks {
		assignments, err := s.assignmentRepo.FindByBlock(ctx, s.db, block.ID)
		if err != nil {
			logger.Error("Failed to load block assignments", "error", err, "session_block_id", block.ID)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
		}
		view := model.MentorSessionBlockView{SessionBlock: *block, Assignments: make([]model.AssignmentView, 0, len(assignments))}
		for _, a := range assignments {
			view.Assignments = append(view.Assignments, model.NewAssignmentView(a))
		}
		views = append(views, view)
	}
	return views, nil
}

// ListAnnotated returns blocks as mentees and admins browse them, each
// annotated with the publishing mentor's identity.
func (s *sessionService) ListAnnotated(ctx context.Context, query model.SessionBlockQuery) ([]model.SessionBlockView, error) {
	logger := middleware.GetLogger(ctx)

	blocks, err := s.sessionRepo.FindWithMentor(ctx, s.db, query)
	if err != nil {
		logger.Error("Failed to list annotated session blocks", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	views := make([]model.SessionBlockView, 0, len(blocks))
	for _, block := range blocks {
		view := model.SessionBlockView{SessionBlock: *block}
		if block.Mentor != nil {
			view.Mentor = model.MentorIdentity{ID: block.Mentor.ID, Name: block.Mentor.Name}
			if block.Mentor.MentorProfile != nil {
				view.Mentor.Ratings = block.Mentor.MentorProfile.Ratings
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *sessionService) authorizeBlockWrite(ctx context.Context, callerID uuid.UUID, callerRole model.Role, id uuid.UUID) (*model.SessionBlock, error) {
	block, err := s.sessionRepo.FindByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("SESSION_BLOCK_NOT_FOUND", "Session block not found.", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}
	if callerRole != model.RoleAdmin && block.MentorID != callerID {
		return nil, model.NewAppError("FORBIDDEN", "Only the owning mentor or an admin can modify this block.", "", model.ErrForbidden)
	}
	return block, nil
}
