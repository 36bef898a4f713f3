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

// AttendanceService handles mentee applications to join session blocks.
type AttendanceService interface {
	Request(ctx context.Context, menteeID uuid.UUID, req *model.CreateAttendanceRequest) (*model.AttendanceResponse, error)
}

type attendanceService struct {
	db             *gorm.DB
	attendanceRepo repository.AttendanceRepository
	assignmentRepo repository.AssignmentRepository
	sessionRepo    repository.SessionBlockRepository
	userRepo       repository.UserRepository
	auditRepo      repository.AuditRepository
}

func NewAttendanceService(
	db *gorm.DB,
	attendanceRepo repository.AttendanceRepository,
	assignmentRepo repository.AssignmentRepository,
	sessionRepo repository.SessionBlockRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditRepository,
) AttendanceService {
	return &attendanceService{
		db:             db,
		attendanceRepo: attendanceRepo,
		assignmentRepo: assignmentRepo,
		sessionRepo:    sessionRepo,
		userRepo:       userRepo,
		auditRepo:      auditRepo,
	}
}

// Request creates the attendance request and its pending assignment in
// one transaction. Either both rows land or neither does. A mentee with
// an open (pending or confirmed) request on the block gets a conflict.
func (s *attendanceService) Request(ctx context.Context, menteeID uuid.UUID, req *model.CreateAttendanceRequest) (*model.AttendanceResponse, error) {
	logger := middleware.GetLogger(ctx).With("mentee_id", menteeID, "session_block_id", req.SessionBlockID)

	if _, err := s.userRepo.FindMenteeProfile(ctx, s.db, menteeID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("MENTEE_PROFILE_REQUIRED", "Only mentees can request attendance.", "", model.ErrForbidden)
		}
		logger.Error("Failed to resolve mentee profile", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	block, err := s.sessionRepo.FindByID(ctx, s.db, req.SessionBlockID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("SESSION_BLOCK_NOT_FOUND", "Session block not found.", "session_block_id", model.ErrNotFound)
		}
		logger.Error("Failed to find session block", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	var response *model.AttendanceResponse
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.attendanceRepo.FindOpenByMenteeAndBlock(ctx, tx, menteeID, block.ID)
		if err == nil {
			logger.Warn("Duplicate attendance request")
			return model.NewAppError("DUPLICATE_REQUEST", "You already have an open request for this session block.", "session_block_id", model.ErrConflict)
		}
		if !errors.Is(err, model.ErrNotFound) {
			logger.Error("Failed to check open requests", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
		}

		request := &model.AttendanceRequest{
			ID:             uuid.New(),
			MenteeID:       menteeID,
			SessionBlockID: block.ID,
			Status:         model.StatusPending,
		}
		if err := s.attendanceRepo.Create(ctx, tx, request); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to record the request.", "", err)
		}

		assignment := &model.Assignment{
			ID:             uuid.New(),
			SessionBlockID: block.ID,
			MentorID:       block.MentorID,
			MenteeID:       menteeID,
			Status:         model.StatusPending,
		}
		if err := s.assignmentRepo.Create(ctx, tx, assignment); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to record the request.", "", err)
		}

		if err := s.auditRepo.Create(ctx, tx, &model.AuditEvent{
			ActorID: &menteeID,
			Type:    model.AuditAttendanceRequested,
			Payload: map[string]any{
				"session_block_id": block.ID.String(),
				"assignment_id":    assignment.ID.String(),
			},
		}); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to record the request.", "", err)
		}

		response = &model.AttendanceResponse{Request: request, Assignment: assignment}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Attendance requested", "assignment_id", response.Assignment.ID)
	return response, nil
}
