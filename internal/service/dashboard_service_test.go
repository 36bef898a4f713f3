package service

import (
	"context"
	"testing"
	"time"

	"skymentor/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfDay_FollowsWallClock(t *testing.T) {
	dz := time.FixedZone("DZ", -7*3600)
	evening := time.Date(2025, 1, 10, 23, 30, 0, 0, dz)

	day := startOfDay(evening)
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, dz), day)

	// Late evening west of UTC is already the next day in UTC; the
	// bucket must still be the local calendar day.
	assert.True(t, evening.UTC().Day() != day.Day())
}

func TestDashboardService_Mentor(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	mentor := signupUser(t, stack.auth, model.RoleMentor, "Mentor A", "mentor-a@example.com")
	mentee := signupUser(t, stack.auth, model.RoleMentee, "Mentee B", "mentee-b@example.com")

	today := startOfDay(time.Now())
	todayBlock, err := stack.session.Create(ctx, mentor.ID, model.RoleMentor, &model.CreateSessionBlockRequest{
		Date:      today,
		StartTime: "09:00",
		EndTime:   "10:30",
	})
	require.NoError(t, err)
	_, err = stack.session.Create(ctx, mentor.ID, model.RoleMentor, &model.CreateSessionBlockRequest{
		Date:      today.AddDate(0, 0, 3),
		StartTime: "09:00",
		EndTime:   "10:30",
	})
	require.NoError(t, err)

	_, err = stack.attendance.Request(ctx, mentee.ID, &model.CreateAttendanceRequest{SessionBlockID: todayBlock.ID})
	require.NoError(t, err)

	dash, err := stack.dashboard.Mentor(ctx, mentor.ID)
	require.NoError(t, err)
	require.Len(t, dash.TodayBlocks, 1)
	assert.Equal(t, todayBlock.ID, dash.TodayBlocks[0].ID)
	assert.Len(t, dash.UpcomingBlocks, 1)
	assert.EqualValues(t, 1, dash.PendingCount)
}

func TestDashboardService_Mentee(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	mentor := signupUser(t, stack.auth, model.RoleMentor, "Mentor A", "mentor-a@example.com")
	mentee := signupUser(t, stack.auth, model.RoleMentee, "Mentee B", "mentee-b@example.com")

	today := startOfDay(time.Now())
	block, err := stack.session.Create(ctx, mentor.ID, model.RoleMentor, &model.CreateSessionBlockRequest{
		Date:      today.AddDate(0, 0, 2),
		StartTime: "09:00",
		EndTime:   "10:30",
	})
	require.NoError(t, err)

	resp, err := stack.attendance.Request(ctx, mentee.ID, &model.CreateAttendanceRequest{SessionBlockID: block.ID})
	require.NoError(t, err)
	_, err = stack.assignment.UpdateStatus(ctx, mentor.ID, model.RoleMentor, resp.Assignment.ID, model.StatusConfirmed)
	require.NoError(t, err)

	_, err = stack.jumpLogs.Create(ctx, mentee.ID, model.RoleMentee, &model.CreateJumpLogRequest{
		Date:       today.AddDate(0, 0, -1),
		JumpNumber: 42,
	})
	require.NoError(t, err)

	dash, err := stack.dashboard.Mentee(ctx, mentee.ID)
	require.NoError(t, err)
	require.Len(t, dash.UpcomingSessions, 1)
	assert.Equal(t, model.StatusConfirmed, dash.UpcomingSessions[0].Status)
	assert.EqualValues(t, 0, dash.CompletedSteps)
	assert.EqualValues(t, 0, dash.BadgeCount)
	require.NotNil(t, dash.LastJump)
	assert.Equal(t, 42, dash.LastJump.JumpNumber)
}

func TestDashboardService_Admin(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	mentor := signupUser(t, stack.auth, model.RoleMentor, "Mentor A", "mentor-a@example.com")
	mentee := signupUser(t, stack.auth, model.RoleMentee, "Mentee B", "mentee-b@example.com")
	signupUser(t, stack.auth, model.RoleAdmin, "Admin", "admin@example.com")

	block := createBlock(t, stack, mentor.ID)
	_, err := stack.attendance.Request(ctx, mentee.ID, &model.CreateAttendanceRequest{SessionBlockID: block.ID})
	require.NoError(t, err)

	dash, err := stack.dashboard.Admin(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, dash.Mentors)
	assert.EqualValues(t, 1, dash.Mentees)
	assert.EqualValues(t, 1, dash.Admins)
	assert.EqualValues(t, 1, dash.SessionBlocks)
	assert.EqualValues(t, 1, dash.PendingAssignments)
	assert.False(t, dash.GeneratedAt.IsZero())
	// Signups and the attendance request all leave audit events behind.
	assert.Greater(t, dash.AuditEvents, int64(3))
}
