package service

import (
	"context"
	"testing"
	"time"

	"skymentor/internal/config"
	"skymentor/internal/model"
	"skymentor/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory DB.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repository.AutoMigrate(db))
	return db
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret-key"
	cfg.JWT.AccessTokenTTL = time.Hour
	cfg.JWT.CookieName = "sky_session"
	cfg.App.Name = "skymentor"
	cfg.App.DashboardLimit = 20
	return cfg
}

func newTestAuthService(db *gorm.DB) AuthService {
	return NewAuthService(db, repository.NewGormUserRepository(), repository.NewGormAuditRepository(), testConfig())
}

// testStack wires real repositories and services over one sqlite DB.
type testStack struct {
	db           *gorm.DB
	auth         AuthService
	availability AvailabilityService
	session      SessionService
	attendance   AttendanceService
	assignment   AssignmentService
	progression  ProgressionService
	jumpLogs     JumpLogService
	preferences  PreferenceService
	dashboard    DashboardService

	userRepo        repository.UserRepository
	sessionRepo     repository.SessionBlockRepository
	attendanceRepo  repository.AttendanceRepository
	assignmentRepo  repository.AssignmentRepository
	progressionRepo repository.ProgressionRepository
	badgeRepo       repository.BadgeRepository
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	db := newTestDB(t)
	cfg := testConfig()

	userRepo := repository.NewGormUserRepository()
	availabilityRepo := repository.NewGormAvailabilityRepository()
	sessionRepo := repository.NewGormSessionBlockRepository()
	attendanceRepo := repository.NewGormAttendanceRepository()
	assignmentRepo := repository.NewGormAssignmentRepository()
	progressionRepo := repository.NewGormProgressionRepository()
	badgeRepo := repository.NewGormBadgeRepository()
	jumpLogRepo := repository.NewGormJumpLogRepository()
	preferenceRepo := repository.NewGormPreferenceRepository()
	auditRepo := repository.NewGormAuditRepository()

	sessionSvc := NewSessionService(db, sessionRepo, assignmentRepo, attendanceRepo, userRepo, auditRepo)

	return &testStack{
		db:           db,
		auth:         NewAuthService(db, userRepo, auditRepo, cfg),
		availability: NewAvailabilityService(db, availabilityRepo, userRepo),
		session:      sessionSvc,
		attendance:   NewAttendanceService(db, attendanceRepo, assignmentRepo, sessionRepo, userRepo, auditRepo),
		assignment:   NewAssignmentService(db, assignmentRepo, attendanceRepo, auditRepo),
		progression:  NewProgressionService(db, progressionRepo, badgeRepo, userRepo, auditRepo),
		jumpLogs:     NewJumpLogService(db, jumpLogRepo, userRepo),
		preferences:  NewPreferenceService(db, preferenceRepo, userRepo),
		dashboard: NewDashboardService(db, sessionSvc, sessionRepo, assignmentRepo,
			progressionRepo, badgeRepo, jumpLogRepo, userRepo, auditRepo, cfg),

		userRepo:        userRepo,
		sessionRepo:     sessionRepo,
		attendanceRepo:  attendanceRepo,
		assignmentRepo:  assignmentRepo,
		progressionRepo: progressionRepo,
		badgeRepo:       badgeRepo,
	}
}

func signupUser(t *testing.T, svc AuthService, role model.Role, name, email string) *model.UserResponse {
	t.Helper()

	resp, err := svc.Signup(context.Background(), &model.SignupRequest{
		Role:     role,
		Name:     name,
		Email:    email,
		Password: "hop-and-pop-123",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	return resp.User
}
