package service

import (
	"context"
	"testing"

	"skymentor/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from model.Status
		to   model.Status
		ok   bool
	}{
		{model.StatusPending, model.StatusConfirmed, true},
		{model.StatusPending, model.StatusDeclined, true},
		{model.StatusPending, model.StatusCancelled, true},
		{model.StatusConfirmed, model.StatusCancelled, true},
		{model.StatusConfirmed, model.StatusDeclined, false},
		{model.StatusConfirmed, model.StatusPending, false},
		{model.StatusDeclined, model.StatusConfirmed, false},
		{model.StatusDeclined, model.StatusCancelled, false},
		{model.StatusCancelled, model.StatusPending, false},
		{model.StatusCancelled, model.StatusConfirmed, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanTransition(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestAssignmentService_UpdateStatus_MentorConfirms(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	mentor := signupUser(t, stack.auth, model.RoleMentor, "Mentor A", "mentor-a@example.com")
	mentee := signupUser(t, stack.auth, model.RoleMentee, "Mentee B", "mentee-b@example.com")
	block := createBlock(t, stack, mentor.ID)

	resp, err := stack.attendance.Request(ctx, mentee.ID, &model.CreateAttendanceRequest{SessionBlockID: block.ID})
	require.NoError(t, err)

	view, err := stack.assignment.UpdateStatus(ctx, mentor.ID, model.RoleMentor, resp.Assignment.ID, model.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, view.Status)

	// The originating attendance request mirrors the change.
	request, err := stack.attendanceRepo.FindByID(ctx, stack.db, resp.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, request.Status)
}

func TestAssignmentService_UpdateStatus_InvalidTransitionRejected(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	mentor := signupUser(t, stack.auth, model.RoleMentor, "Mentor A", "mentor-a@example.com")
	mentee := signupUser(t, stack.auth, model.RoleMentee, "Mentee B", "mentee-b@example.com")
	block := createBlock(t, stack, mentor.ID)

	resp, err := stack.attendance.Request(ctx, mentee.ID, &model.CreateAttendanceRequest{SessionBlockID: block.ID})
	require.NoError(t, err)

	_, err = stack.assignment.UpdateStatus(ctx, mentor.ID, model.RoleMentor, resp.Assignment.ID, model.StatusDeclined)
	require.NoError(t, err)

	// declined is terminal.
	_, err = stack.assignment.UpdateStatus(ctx, mentor.ID, model.RoleMentor, resp.Assignment.ID, model.StatusConfirmed)
	assert.ErrorIs(t, err, model.ErrConflict)

	stored, err := stack.assignmentRepo.FindByID(ctx, stack.db, resp.Assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDeclined, stored.Status)
}

func TestAssignmentService_UpdateStatus_Authorization(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	mentor := signupUser(t, stack.auth, model.RoleMentor, "Mentor A", "mentor-a@example.com")
	other := signupUser(t, stack.auth, model.RoleMentor, "Mentor C", "mentor-c@example.com")
	mentee := signupUser(t, stack.auth, model.RoleMentee, "Mentee B", "mentee-b@example.com")
	admin := signupUser(t, stack.auth, model.RoleAdmin, "Admin", "admin@example.com")
	block := createBlock(t, stack, mentor.ID)

	resp, err := stack.attendance.Request(ctx, mentee.ID, &model.CreateAttendanceRequest{SessionBlockID: block.ID})
	require.NoError(t, err)
	assignmentID := resp.Assignment.ID

	t.Run("unrelated mentor forbidden", func(t *testing.T) {
		_, err := stack.assignment.UpdateStatus(ctx, other.ID, model.RoleMentor, assignmentID, model.StatusConfirmed)
		assert.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("mentee cannot confirm", func(t *testing.T) {
		_, err := stack.assignment.UpdateStatus(ctx, mentee.ID, model.RoleMentee, assignmentID, model.StatusConfirmed)
		assert.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("admin confirms", func(t *testing.T) {
		view, err := stack.assignment.UpdateStatus(ctx, admin.ID, model.RoleAdmin, assignmentID, model.StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, model.StatusConfirmed, view.Status)
	})

	t.Run("mentee cancels own confirmed assignment", func(t *testing.T) {
		view, err := stack.assignment.UpdateStatus(ctx, mentee.ID, model.RoleMentee, assignmentID, model.StatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, view.Status)
	})
}

func TestAssignmentService_ListForCaller(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	mentorA := signupUser(t, stack.auth, model.RoleMentor, "Mentor A", "mentor-a@example.com")
	mentorC := signupUser(t, stack.auth, model.RoleMentor, "Mentor C", "mentor-c@example.com")
	menteeB := signupUser(t, stack.auth, model.RoleMentee, "Mentee B", "mentee-b@example.com")
	menteeD := signupUser(t, stack.auth, model.RoleMentee, "Mentee D", "mentee-d@example.com")
	admin := signupUser(t, stack.auth, model.RoleAdmin, "Admin", "admin@example.com")

	blockA := createBlock(t, stack, mentorA.ID)
	blockC := createBlock(t, stack, mentorC.ID)

	_, err := stack.attendance.Request(ctx, menteeB.ID, &model.CreateAttendanceRequest{SessionBlockID: blockA.ID})
	require.NoError(t, err)
	_, err = stack.attendance.Request(ctx, menteeD.ID, &model.CreateAttendanceRequest{SessionBlockID: blockC.ID})
	require.NoError(t, err)

	mentorViews, err := stack.assignment.ListForCaller(ctx, mentorA.ID, model.RoleMentor)
	require.NoError(t, err)
	require.Len(t, mentorViews, 1)
	assert.Equal(t, "Mentee B", mentorViews[0].MenteeIdentity.Name)
	require.NotNil(t, mentorViews[0].Block)

	menteeViews, err := stack.assignment.ListForCaller(ctx, menteeD.ID, model.RoleMentee)
	require.NoError(t, err)
	require.Len(t, menteeViews, 1)
	assert.Equal(t, "Mentor C", menteeViews[0].MentorIdentity.Name)

	adminViews, err := stack.assignment.ListForCaller(ctx, admin.ID, model.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, adminViews, 2)
}
