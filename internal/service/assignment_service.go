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

// AssignmentService serves the pairing ledger and runs the status
// lifecycle.
type AssignmentService interface {
	ListForCaller(ctx context.Context, callerID uuid.UUID, callerRole model.Role) ([]model.AssignmentView, error)
	UpdateStatus(ctx context.Context, callerID uuid.UUID, callerRole model.Role, id uuid.UUID, next model.Status) (*model.AssignmentView, error)
}

type assignmentService struct {
	db             *gorm.DB
	assignmentRepo repository.AssignmentRepository
	attendanceRepo repository.AttendanceRepository
	auditRepo      repository.AuditRepository
}

func NewAssignmentService(
	db *gorm.DB,
	assignmentRepo repository.AssignmentRepository,
	attendanceRepo repository.AttendanceRepository,
	auditRepo repository.AuditRepository,
) AssignmentService {
	return &assignmentService{
		db:             db,
		assignmentRepo: assignmentRepo,
		attendanceRepo: attendanceRepo,
		auditRepo:      auditRepo,
	}
}

// ListForCaller returns the slice of the ledger the caller may see:
// mentors their own pairings, mentees theirs, admins everything.
func (s *assignmentService) ListForCaller(ctx context.Context, callerID uuid.UUID, callerRole model.Role) ([]model.AssignmentView, error) {
	logger := middleware.GetLogger(ctx)

	var (
		assignments []*model.Assignment
		err         error
	)
	switch callerRole {
	case model.RoleMentor:
		assignments, err = s.assignmentRepo.FindByMentor(ctx, s.db, callerID)
	case model.RoleMentee:
		assignments, err = s.assignmentRepo.FindByMentee(ctx, s.db, callerID)
	case model.RoleAdmin:
		assignments, err = s.assignmentRepo.FindAll(ctx, s.db)
	default:
		return nil, model.NewAppError("INVALID_ROLE", "Unknown role.", "", model.ErrForbidden)
	}
	if err != nil {
		logger.Error("Failed to list assignments", "error", err, "role", callerRole)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	views := make([]model.AssignmentView, 0, len(assignments))
	for _, a := range assignments {
		views = append(views, model.NewAssignmentView(a))
	}
	return views, nil
}

// UpdateStatus moves an assignment along its lifecycle. Pending goes to
// confirmed, declined or cancelled; confirmed only to cancelled;
// declined and cancelled are terminal. The owning mentor and admins may
// set any permitted status, a mentee may only cancel their own pairing.
// The originating attendance request is mirrored in the same
// transaction.
func (s *assignmentService) UpdateStatus(ctx context.Context, callerID uuid.UUID, callerRole model.Role, id uuid.UUID, next model.Status) (*model.AssignmentView, error) {
	logger := middleware.GetLogger(ctx).With("assignment_id", id, "next_status", next)

	if !next.Valid() {
		return nil, model.NewAppError("INVALID_STATUS", "Unknown status.", "status", model.ErrInvalidInput)
	}

	assignment, err := s.assignmentRepo.FindByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("ASSIGNMENT_NOT_FOUND", "Assignment not found.", "", model.ErrNotFound)
		}
		logger.Error("Failed to find assignment", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	switch callerRole {
	case model.RoleAdmin:
	case model.RoleMentor:
		if assignment.MentorID != callerID {
			return nil, model.NewAppError("FORBIDDEN", "Only the assigned mentor can act on this pairing.", "", model.ErrForbidden)
		}
	case model.RoleMentee:
		if assignment.MenteeID != callerID {
			return nil, model.NewAppError("FORBIDDEN", "Only the assigned mentee can act on this pairing.", "", model.ErrForbidden)
		}
		if next != model.StatusCancelled {
			return nil, model.NewAppError("FORBIDDEN", "Mentees can only cancel their own assignments.", "", model.ErrForbidden)
		}
	default:
		return nil, model.NewAppError("INVALID_ROLE", "Unknown role.", "", model.ErrForbidden)
	}

	if !assignment.Status.CanTransition(next) {
		logger.Warn("Rejected status transition", "current_status", assignment.Status)
		return nil, model.NewAppError(
			"INVALID_TRANSITION",
			"Cannot move an assignment from "+string(assignment.Status)+" to "+string(next)+".",
			"status",
			model.ErrConflict,
		)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.assignmentRepo.UpdateStatus(ctx, tx, id, next); err != nil {
			return err
		}
		if err := s.attendanceRepo.UpdateStatusByPair(ctx, tx, assignment.MenteeID, assignment.SessionBlockID, next); err != nil {
			return err
		}
		return s.auditRepo.Create(ctx, tx, &model.AuditEvent{
			ActorID: &callerID,
			Type:    model.AuditAssignmentUpdated,
			Payload: map[string]any{
				"assignment_id": id.String(),
				"from":          string(assignment.Status),
				"to":            string(next),
			},
		})
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("ASSIGNMENT_NOT_FOUND", "Assignment not found.", "", model.ErrNotFound)
		}
		logger.Error("Failed to update assignment status", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to update the assignment.", "", err)
	}

	updated, err := s.assignmentRepo.FindByID(ctx, s.db, id)
	if err != nil {
		logger.Error("Failed to reload assignment", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	logger.Info("Assignment status updated", "from", assignment.Status)
	view := model.NewAssignmentView(updated)
	return &view, nil
}
