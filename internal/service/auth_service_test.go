package service

import (
	"context"
	"testing"

	"skymentor/internal/model"
	"skymentor/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Signup_StoresHashNotPlaintext(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)
	userRepo := repository.NewGormUserRepository()

	resp, err := svc.Signup(context.Background(), &model.SignupRequest{
		Role:     model.RoleMentee,
		Name:     "Jamie Rivers",
		Email:    "jamie@example.com",
		Password: "first-jump-2024",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, model.RoleMentee, resp.User.Role)

	stored, err := userRepo.FindByEmail(context.Background(), db, "jamie@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "first-jump-2024", stored.PasswordHash)
}

func TestAuthService_Signup_CreatesRoleProfile(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)
	userRepo := repository.NewGormUserRepository()

	tests := []struct {
		name       string
		role       model.Role
		email      string
		wantMentor bool
		wantMentee bool
	}{
		{"mentor gets mentor profile", model.RoleMentor, "m1@example.com", true, false},
		{"mentee gets mentee profile", model.RoleMentee, "m2@example.com", false, true},
		{"admin gets mentor profile", model.RoleAdmin, "m3@example.com", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := signupUser(t, svc, tt.role, "Test User", tt.email)

			_, mentorErr := userRepo.FindMentorProfile(context.Background(), db, user.ID)
			_, menteeErr := userRepo.FindMenteeProfile(context.Background(), db, user.ID)
			if tt.wantMentor {
				assert.NoError(t, mentorErr)
			} else {
				assert.ErrorIs(t, mentorErr, model.ErrNotFound)
			}
			if tt.wantMentee {
				assert.NoError(t, menteeErr)
			} else {
				assert.ErrorIs(t, menteeErr, model.ErrNotFound)
			}
		})
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)

	signupUser(t, svc, model.RoleMentee, "First", "dup@example.com")

	_, err := svc.Signup(context.Background(), &model.SignupRequest{
		Role:     model.RoleMentor,
		Name:     "Second",
		Email:    "dup@example.com",
		Password: "another-pass-1",
	})
	assert.ErrorIs(t, err, model.ErrConflict)

	// The failed signup must not leave a user row behind.
	userRepo := repository.NewGormUserRepository()
	stored, err := userRepo.FindByEmail(context.Background(), db, "dup@example.com")
	require.NoError(t, err)
	assert.Equal(t, "First", stored.Name)
}

func TestAuthService_Login(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)
	signupUser(t, svc, model.RoleMentor, "Alex Cloud", "alex@example.com")

	t.Run("correct password", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), &model.LoginRequest{
			Email:    "alex@example.com",
			Password: "hop-and-pop-123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "Alex Cloud", resp.User.Name)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &model.LoginRequest{
			Email:    "alex@example.com",
			Password: "wrong-password",
		})
		assert.ErrorIs(t, err, model.ErrUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &model.LoginRequest{
			Email:    "nobody@example.com",
			Password: "hop-and-pop-123",
		})
		assert.ErrorIs(t, err, model.ErrUnauthorized)
	})
}

func TestAuthService_Login_DeactivatedAccount(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)
	userRepo := repository.NewGormUserRepository()

	user := signupUser(t, svc, model.RoleMentee, "Gone Soon", "gone@example.com")
	require.NoError(t, userRepo.Deactivate(context.Background(), db, user.ID))

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "gone@example.com",
		Password: "hop-and-pop-123",
	})
	assert.ErrorIs(t, err, model.ErrForbidden)
}

func TestAuthService_GetMe(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)

	user := signupUser(t, svc, model.RoleMentee, "Me Myself", "me@example.com")

	me, err := svc.GetMe(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Me Myself", me.Name)
	require.NotNil(t, me.Mentee)
	assert.Equal(t, model.ComfortMedium, me.Mentee.ComfortLevel)
}
