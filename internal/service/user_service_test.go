package service

import (
	"context"
	"testing"

	"skymentor/internal/model"
	"skymentor/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_ListByRole(t *testing.T) {
	stack := newTestStack(t)
	svc := NewUserService(stack.db, stack.userRepo)
	ctx := context.Background()

	signupUser(t, stack.auth, model.RoleMentor, "Mentor A", "mentor-a@example.com")
	signupUser(t, stack.auth, model.RoleMentor, "Mentor C", "mentor-c@example.com")
	signupUser(t, stack.auth, model.RoleMentee, "Mentee B", "mentee-b@example.com")

	mentors, err := svc.ListByRole(ctx, model.RoleMentor)
	require.NoError(t, err)
	assert.Len(t, mentors, 2)

	mentees, err := svc.ListByRole(ctx, model.RoleMentee)
	require.NoError(t, err)
	require.Len(t, mentees, 1)
	assert.Equal(t, "Mentee B", mentees[0].Name)

	_, err = svc.ListByRole(ctx, model.Role("rigger"))
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestUserService_Get(t *testing.T) {
	stack := newTestStack(t)
	svc := NewUserService(stack.db, stack.userRepo)
	ctx := context.Background()

	mentee := signupUser(t, stack.auth, model.RoleMentee, "Mentee B", "mentee-b@example.com")

	got, err := svc.Get(ctx, mentee.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mentee B", got.Name)
	require.NotNil(t, got.Mentee)

	_, err = svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserService_Deactivate(t *testing.T) {
	stack := newTestStack(t)
	svc := NewUserService(stack.db, repository.NewGormUserRepository())
	ctx := context.Background()

	mentee := signupUser(t, stack.auth, model.RoleMentee, "Mentee B", "mentee-b@example.com")

	require.NoError(t, svc.Deactivate(ctx, mentee.ID))

	// The account survives for history but can no longer log in.
	got, err := svc.Get(ctx, mentee.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	_, err = stack.auth.Login(ctx, &model.LoginRequest{
		Email:    "mentee-b@example.com",
		Password: "hop-and-pop-123",
	})
	assert.ErrorIs(t, err, model.ErrForbidden)

	assert.ErrorIs(t, svc.Deactivate(ctx, uuid.New()), model.ErrNotFound)
}
