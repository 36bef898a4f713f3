package service

import (
	"context"
	"errors"
	"time"

	"skymentor/internal/config"
	"skymentor/internal/middleware"
	"skymentor/internal/model"
	"skymentor/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles account creation and credential verification.
type AuthService interface {
	Signup(ctx context.Context, req *model.SignupRequest) (*model.LoginResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	GetMe(ctx context.Context, userID uuid.UUID) (*model.UserResponse, error)
}

type authService struct {
	db        *gorm.DB
	userRepo  repository.UserRepository
	auditRepo repository.AuditRepository
	cfg       *config.Config
}

func NewAuthService(db *gorm.DB, userRepo repository.UserRepository, auditRepo repository.AuditRepository, cfg *config.Config) AuthService {
	return &authService{
		db:        db,
		userRepo:  userRepo,
		auditRepo: auditRepo,
		cfg:       cfg,
	}
}

// Signup creates the account and its role profile in one transaction.
// Mentors and admins get a mentor profile, mentees a mentee profile, so
// the role always implies the matching profile row.
func (s *authService) Signup(ctx context.Context, req *model.SignupRequest) (*model.LoginResponse, error) {
	logger := middleware.GetLogger(ctx).With("email", req.Email)
	var newUser *model.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.userRepo.FindByEmail(ctx, tx, req.Email)
		if err == nil {
			logger.Warn("Email already registered")
			return model.NewAppError("DUPLICATE_EMAIL", "This email address is already registered.", "email", model.ErrConflict)
		}
		if !errors.Is(err, model.ErrNotFound) {
			logger.Error("Failed to check email existence", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("Failed to hash password", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to process the password.", "", err)
		}

		user := &model.User{
			ID:           uuid.New(),
			Role:         req.Role,
			Name:         req.Name,
			Email:        req.Email,
			Phone:        req.Phone,
			USPALicense:  req.USPALicense,
			Jumps:        req.Jumps,
			IsActive:     true,
			PasswordHash: string(hashedPassword),
		}
		if err := s.userRepo.Create(ctx, tx, user); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return model.NewAppError("DUPLICATE_EMAIL", "This email address is already registered.", "email", model.ErrConflict)
			}
			logger.Error("Failed to create user", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to create the account.", "", err)
		}

		switch req.Role {
		case model.RoleMentor, model.RoleAdmin:
			profile := &model.MentorProfile{ID: user.ID, MaxConcurrentMentees: 2}
			if in := req.Mentor; in != nil {
				profile.Ratings = in.Ratings
				profile.CoachNumber = in.CoachNumber
				profile.Disciplines = in.Disciplines
				if in.MaxConcurrentMentees > 0 {
					profile.MaxConcurrentMentees = in.MaxConcurrentMentees
				}
				profile.SeniorityScore = in.SeniorityScore
				profile.DZEndorsement = in.DZEndorsement
			}
			if profile.Disciplines == nil {
				profile.Disciplines = []string{}
			}
			if err := s.userRepo.CreateMentorProfile(ctx, tx, profile); err != nil {
				logger.Error("Failed to create mentor profile", "error", err)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to create the account.", "", err)
			}
			user.MentorProfile = profile
		case model.RoleMentee:
			profile := &model.MenteeProfile{ID: user.ID, ComfortLevel: model.ComfortMedium}
			if in := req.Mentee; in != nil {
				profile.Goals = in.Goals
				if in.ComfortLevel != "" {
					profile.ComfortLevel = in.ComfortLevel
				}
				profile.CanopySize = in.CanopySize
				profile.LastCurrencyDate = in.LastCurrencyDate
			}
			if err := s.userRepo.CreateMenteeProfile(ctx, tx, profile); err != nil {
				logger.Error("Failed to create mentee profile", "error", err)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to create the account.", "", err)
			}
			user.MenteeProfile = profile
		}

		if err := s.auditRepo.Create(ctx, tx, &model.AuditEvent{
			ActorID: &user.ID,
			Type:    model.AuditUserSignedUp,
			Payload: map[string]any{"role": string(user.Role), "email": user.Email},
		}); err != nil {
			logger.Error("Failed to record signup audit event", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to create the account.", "", err)
		}

		newUser = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(newUser)
	if err != nil {
		logger.Error("Failed to sign JWT after signup", "error", err, "user_id", newUser.ID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to create a session.", "", err)
	}

	logger.Info("User signed up", "user_id", newUser.ID, "role", newUser.Role)
	return &model.LoginResponse{AccessToken: token, User: model.NewUserResponse(newUser)}, nil
}

// Login verifies the credential and issues a session token. The same
// failure message covers unknown email and wrong password.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	logger := middleware.GetLogger(ctx).With("email", req.Email)

	user, err := s.userRepo.FindByEmail(ctx, s.db, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Login failed: user not found")
			return nil, model.NewAppError("AUTHENTICATION_FAILED", "Email or password is incorrect.", "", model.ErrUnauthorized)
		}
		logger.Error("Login failed: db error on FindByEmail", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("Login failed: password mismatch", "user_id", user.ID)
		return nil, model.NewAppError("AUTHENTICATION_FAILED", "Email or password is incorrect.", "", model.ErrUnauthorized)
	}

	if !user.IsActive {
		logger.Warn("Login failed: account deactivated", "user_id", user.ID)
		return nil, model.NewAppError("ACCOUNT_DEACTIVATED", "This account has been deactivated.", "", model.ErrForbidden)
	}

	token, err := s.issueToken(user)
	if err != nil {
		logger.Error("Failed to sign JWT", "error", err, "user_id", user.ID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to create a session.", "", err)
	}

	logger.Info("Login successful", "user_id", user.ID)
	return &model.LoginResponse{AccessToken: token, User: model.NewUserResponse(user)}, nil
}

// GetMe returns the caller's account with its role profile attached.
func (s *authService) GetMe(ctx context.Context, userID uuid.UUID) (*model.UserResponse, error) {
	logger := middleware.GetLogger(ctx)

	user, err := s.userRepo.FindByIDWithProfiles(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("USER_NOT_FOUND", "Account not found.", "", model.ErrNotFound)
		}
		logger.Error("Error finding user by ID", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "An internal server error occurred.", "", err)
	}
	return model.NewUserResponse(user), nil
}

func (s *authService) issueToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"iss":  s.cfg.App.Name,
		"sub":  user.ID.String(),
		"role": string(user.Role),
		"exp":  jwt.NewNumericDate(time.Now().Add(s.cfg.JWT.AccessTokenTTL)),
		"iat":  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.SecretKey))
}
