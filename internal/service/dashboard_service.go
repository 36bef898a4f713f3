package service

import (
	"context"
	"errors"
	"time"

	"skymentor/internal/config"
	"skymentor/internal/middleware"
	"skymentor/internal/model"
	"skymentor/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DashboardService builds the role-specific summary views.
type DashboardService interface {
	Mentor(ctx context.Context, mentorID uuid.UUID) (*model.MentorDashboard, error)
	Mentee(ctx context.Context, menteeID uuid.UUID) (*model.MenteeDashboard, error)
	Admin(ctx context.Context) (*model.AdminDashboard, error)
}

type dashboardService struct {
	db              *gorm.DB
	sessionSvc      SessionService
	sessionRepo     repository.SessionBlockRepository
	assignmentRepo  repository.AssignmentRepository
	progressionRepo repository.ProgressionRepository
	badgeRepo       repository.BadgeRepository
	jumpLogRepo     repository.JumpLogRepository
	userRepo        repository.UserRepository
	auditRepo       repository.AuditRepository
	cfg             *config.Config
}

func NewDashboardService(
	db *gorm.DB,
	sessionSvc SessionService,
	sessionRepo repository.SessionBlockRepository,
	assignmentRepo repository.AssignmentRepository,
	progressionRepo repository.ProgressionRepository,
	badgeRepo repository.BadgeRepository,
	jumpLogRepo repository.JumpLogRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditRepository,
	cfg *config.Config,
) DashboardService {
	return &dashboardService{
		db:              db,
		sessionSvc:      sessionSvc,
		sessionRepo:     sessionRepo,
		assignmentRepo:  assignmentRepo,
		progressionRepo: progressionRepo,
		badgeRepo:       badgeRepo,
		jumpLogRepo:     jumpLogRepo,
		userRepo:        userRepo,
		auditRepo:       auditRepo,
		cfg:             cfg,
	}
}

// startOfDay returns midnight of t's calendar day in t's location, so
// day bucketing follows the drop zone's wall clock rather than UTC.
func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// Mentor summarizes the mentor's day: today's blocks, the upcoming
// window, and how many pairings still wait on a decision.
func (s *dashboardService) Mentor(ctx context.Context, mentorID uuid.UUID) (*model.MentorDashboard, error) {
	logger := middleware.GetLogger(ctx)

	today := startOfDay(time.Now())
	tomorrow := today.AddDate(0, 0, 1)

	todayBlocks, err := s.sessionSvc.ListForMentor(ctx, mentorID, model.SessionBlockQuery{From: today, To: today})
	if err != nil {
		return nil, err
	}

	horizon := today.AddDate(0, 0, s.cfg.App.DashboardLimit)
	upcoming, err := s.sessionSvc.ListForMentor(ctx, mentorID, model.SessionBlockQuery{From: tomorrow, To: horizon})
	if err != nil {
		return nil, err
	}

	pending, err := s.assignmentRepo.CountByMentorAndStatus(ctx, s.db, mentorID, model.StatusPending)
	if err != nil {
		logger.Error("Failed to count pending assignments", "error", err, "mentor_id", mentorID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	return &model.MentorDashboard{
		TodayBlocks:    todayBlocks,
		UpcomingBlocks: upcoming,
		PendingCount:   pending,
	}, nil
}

// Mentee summarizes progress: confirmed sessions ahead, completed step
// and badge totals, and the latest logbook entry.
func (s *dashboardService) Mentee(ctx context.Context, menteeID uuid.UUID) (*model.MenteeDashboard, error) {
	logger := middleware.GetLogger(ctx)

	confirmed, err := s.assignmentRepo.FindByMenteeAndStatus(ctx, s.db, menteeID, model.StatusConfirmed)
	if err != nil {
		logger.Error("Failed to load confirmed assignments", "error", err, "mentee_id", menteeID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	today := startOfDay(time.Now())
	upcoming := make([]model.AssignmentView, 0, len(confirmed))
	for _, a := range confirmed {
		if a.SessionBlock != nil && a.SessionBlock.Date.Before(today) {
			continue
		}
		upcoming = append(upcoming, model.NewAssignmentView(a))
	}

	steps, err := s.progressionRepo.CountCompletionsByMentee(ctx, s.db, menteeID)
	if err != nil {
		logger.Error("Failed to count completions", "error", err, "mentee_id", menteeID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	badges, err := s.badgeRepo.CountAwardsByMentee(ctx, s.db, menteeID)
	if err != nil {
		logger.Error("Failed to count awards", "error", err, "mentee_id", menteeID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	dashboard := &model.MenteeDashboard{
		UpcomingSessions: upcoming,
		CompletedSteps:   steps,
		BadgeCount:       badges,
	}

	lastJump, err := s.jumpLogRepo.FindLatestByMentee(ctx, s.db, menteeID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		logger.Error("Failed to load latest jump", "error", err, "mentee_id", menteeID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}
	if err == nil {
		dashboard.LastJump = lastJump
	}

	return dashboard, nil
}

// Admin reports entity counts across the whole drop zone.
func (s *dashboardService) Admin(ctx context.Context) (*model.AdminDashboard, error) {
	logger := middleware.GetLogger(ctx)

	dashboard := &model.AdminDashboard{GeneratedAt: time.Now()}

	counts := []struct {
		dst  *int64
		load func() (int64, error)
	}{
		{&dashboard.Mentors, func() (int64, error) { return s.userRepo.CountByRole(ctx, s.db, model.RoleMentor) }},
		{&dashboard.Mentees, func() (int64, error) { return s.userRepo.CountByRole(ctx, s.db, model.RoleMentee) }},
		{&dashboard.Admins, func() (int64, error) { return s.userRepo.CountByRole(ctx, s.db, model.RoleAdmin) }},
		{&dashboard.SessionBlocks, func() (int64, error) { return s.sessionRepo.Count(ctx, s.db) }},
		{&dashboard.PendingAssignments, func() (int64, error) { return s.assignmentRepo.CountByStatus(ctx, s.db, model.StatusPending) }},
		{&dashboard.AuditEvents, func() (int64, error) { return s.auditRepo.Count(ctx, s.db) }},
	}
	for _, c := range counts {
		n, err := c.load()
		if err != nil {
			logger.Error("Failed to build admin dashboard", "error", err)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
		}
		*c.dst = n
	}

	return dashboard, nil
}
