package service

import (
	"context"
	"testing"

	"skymentor/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceService_UpsertAndGet(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	mentorA := signupUser(t, stack.auth, model.RoleMentor, "Mentor A", "mentor-a@example.com")
	mentorC := signupUser(t, stack.auth, model.RoleMentor, "Mentor C", "mentor-c@example.com")
	mentee := signupUser(t, stack.auth, model.RoleMentee, "Mentee B", "mentee-b@example.com")

	pref, err := stack.preferences.Upsert(ctx, mentee.ID, &model.UpsertPreferenceRequest{
		PreferredMentors: []uuid.UUID{mentorA.ID},
		Notes:            "prefers morning loads",
	})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{mentorA.ID}, pref.PreferredMentors)
	assert.NotNil(t, pref.AvoidMentors)
	assert.Empty(t, pref.AvoidMentors)

	// A second write replaces the row rather than stacking a new one.
	pref, err = stack.preferences.Upsert(ctx, mentee.ID, &model.UpsertPreferenceRequest{
		PreferredMentors: []uuid.UUID{mentorA.ID, mentorC.ID},
		AvoidMentors:     []uuid.UUID{},
	})
	require.NoError(t, err)
	assert.Len(t, pref.PreferredMentors, 2)
	assert.Empty(t, pref.Notes)

	got, err := stack.preferences.Get(ctx, mentee.ID, model.RoleMentee, mentee.ID)
	require.NoError(t, err)
	assert.Equal(t, pref.ID, got.ID)
	assert.Len(t, got.PreferredMentors, 2)
}

func TestPreferenceService_Upsert_RequiresMenteeProfile(t *testing.T) {
	stack := newTestStack(t)

	mentor := signupUser(t, stack.auth, model.RoleMentor, "Mentor A", "mentor-a@example.com")

	_, err := stack.preferences.Upsert(context.Background(), mentor.ID, &model.UpsertPreferenceRequest{})
	assert.ErrorIs(t, err, model.ErrForbidden)
}

func TestPreferenceService_Get_Authorization(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	mentor := signupUser(t, stack.auth, model.RoleMentor, "Mentor A", "mentor-a@example.com")
	menteeB := signupUser(t, stack.auth, model.RoleMentee, "Mentee B", "mentee-b@example.com")
	menteeD := signupUser(t, stack.auth, model.RoleMentee, "Mentee D", "mentee-d@example.com")
	admin := signupUser(t, stack.auth, model.RoleAdmin, "Admin", "admin@example.com")

	_, err := stack.preferences.Upsert(ctx, menteeB.ID, &model.UpsertPreferenceRequest{Notes: "weekend only"})
	require.NoError(t, err)

	_, err = stack.preferences.Get(ctx, menteeD.ID, model.RoleMentee, menteeB.ID)
	assert.ErrorIs(t, err, model.ErrForbidden)

	got, err := stack.preferences.Get(ctx, mentor.ID, model.RoleMentor, menteeB.ID)
	require.NoError(t, err)
	assert.Equal(t, "weekend only", got.Notes)

	got, err = stack.preferences.Get(ctx, admin.ID, model.RoleAdmin, menteeB.ID)
	require.NoError(t, err)
	assert.Equal(t, "weekend only", got.Notes)
}
