package service

import (
	"context"
	"testing"
	"time"

	"skymentor/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJumpLogService_Create(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	mentor := signupUser(t, stack.auth, model.RoleMentor, "Mentor A", "mentor-a@example.com")
	mentee := signupUser(t, stack.auth, model.RoleMentee, "Mentee B", "mentee-b@example.com")

	t.Run("mentee logs for self", func(t *testing.T) {
		log, err := stack.jumpLogs.Create(ctx, mentee.ID, model.RoleMentee, &model.CreateJumpLogRequest{
			Date:       time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			JumpNumber: 42,
			Aircraft:   "Twin Otter",
			ExitAlt:    13500,
		})
		require.NoError(t, err)
		assert.Equal(t, mentee.ID, log.MenteeID)
		assert.Equal(t, 42, log.JumpNumber)
	})

	t.Run("mentor must name the mentee", func(t *testing.T) {
		_, err := stack.jumpLogs.Create(ctx, mentor.ID, model.RoleMentor, &model.CreateJumpLogRequest{
			Date:       time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			JumpNumber: 43,
		})
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("mentor logs on the mentee's behalf", func(t *testing.T) {
		log, err := stack.jumpLogs.Create(ctx, mentor.ID, model.RoleMentor, &model.CreateJumpLogRequest{
			MenteeID:   &mentee.ID,
			Date:       time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC),
			JumpNumber: 43,
			MentorID:   &mentor.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, mentee.ID, log.MenteeID)
	})
}

func TestJumpLogService_List_MenteeOwnOnly(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	menteeB := signupUser(t, stack.auth, model.RoleMentee, "Mentee B", "mentee-b@example.com")
	menteeD := signupUser(t, stack.auth, model.RoleMentee, "Mentee D", "mentee-d@example.com")

	_, err := stack.jumpLogs.Create(ctx, menteeB.ID, model.RoleMentee, &model.CreateJumpLogRequest{
		Date:       time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		JumpNumber: 42,
	})
	require.NoError(t, err)

	logs, err := stack.jumpLogs.List(ctx, menteeB.ID, model.RoleMentee, menteeB.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 1)

	_, err = stack.jumpLogs.List(ctx, menteeD.ID, model.RoleMentee, menteeB.ID)
	assert.ErrorIs(t, err, model.ErrForbidden)
}

func TestJumpLogService_WriteAuthorization(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	mentor := signupUser(t, stack.auth, model.RoleMentor, "Mentor A", "mentor-a@example.com")
	mentee := signupUser(t, stack.auth, model.RoleMentee, "Mentee B", "mentee-b@example.com")
	admin := signupUser(t, stack.auth, model.RoleAdmin, "Admin", "admin@example.com")

	log, err := stack.jumpLogs.Create(ctx, mentee.ID, model.RoleMentee, &model.CreateJumpLogRequest{
		Date:       time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		JumpNumber: 42,
	})
	require.NoError(t, err)

	// The entry names no attesting mentor, so mentors cannot touch it.
	notes := "good pattern"
	_, err = stack.jumpLogs.Update(ctx, mentor.ID, model.RoleMentor, log.ID, &model.UpdateJumpLogRequest{PatternNotes: &notes})
	assert.ErrorIs(t, err, model.ErrForbidden)

	updated, err := stack.jumpLogs.Update(ctx, mentee.ID, model.RoleMentee, log.ID, &model.UpdateJumpLogRequest{PatternNotes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "good pattern", updated.PatternNotes)

	// The mentor named on an entry may revise it.
	attested, err := stack.jumpLogs.Create(ctx, mentor.ID, model.RoleMentor, &model.CreateJumpLogRequest{
		MenteeID:   &mentee.ID,
		Date:       time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC),
		JumpNumber: 43,
		MentorID:   &mentor.ID,
	})
	require.NoError(t, err)
	drill := "3W-02"
	revised, err := stack.jumpLogs.Update(ctx, mentor.ID, model.RoleMentor, attested.ID, &model.UpdateJumpLogRequest{DrillRef: &drill})
	require.NoError(t, err)
	assert.Equal(t, "3W-02", revised.DrillRef)
	require.NoError(t, stack.jumpLogs.Delete(ctx, mentor.ID, model.RoleMentor, attested.ID))

	require.NoError(t, stack.jumpLogs.Delete(ctx, admin.ID, model.RoleAdmin, log.ID))

	logs, err := stack.jumpLogs.List(ctx, mentee.ID, model.RoleMentee, mentee.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)
}
