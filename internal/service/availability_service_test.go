package service

import (
	"context"
	"testing"
	"time"

	"skymentor/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityService_Create(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	mentor := signupUser(t, stack.auth, model.RoleMentor, "Mentor A", "mentor-a@example.com")

	t.Run("defaults to recurring", func(t *testing.T) {
		slot, err := stack.availability.Create(ctx, mentor.ID, model.RoleMentor, &model.CreateAvailabilityRequest{
			DayOfWeek: 6,
			StartTime: "08:00",
			EndTime:   "14:00",
		})
		require.NoError(t, err)
		assert.True(t, slot.IsRecurring)
		assert.Equal(t, mentor.ID, slot.UserID)
	})

	t.Run("inverted time range rejected", func(t *testing.T) {
		_, err := stack.availability.Create(ctx, mentor.ID, model.RoleMentor, &model.CreateAvailabilityRequest{
			DayOfWeek: 0,
			StartTime: "14:00",
			EndTime:   "08:00",
		})
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("inverted date range rejected", func(t *testing.T) {
		start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
		_, err := stack.availability.Create(ctx, mentor.ID, model.RoleMentor, &model.CreateAvailabilityRequest{
			DayOfWeek: 0,
			StartTime: "08:00",
			EndTime:   "14:00",
			StartDate: &start,
			EndDate:   &end,
		})
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})
}

func TestAvailabilityService_Delete_OwnerScoped(t *testing.T) {
	stack := newTestStack(t)
	ctx := context.Background()

	owner := signupUser(t, stack.auth, model.RoleMentor, "Owner", "owner@example.com")
	other := signupUser(t, stack.auth, model.RoleMentor, "Other", "other@example.com")

	slot, err := stack.availability.Create(ctx, owner.ID, model.RoleMentor, &model.CreateAvailabilityRequest{
		DayOfWeek: 6,
		StartTime: "08:00",
		EndTime:   "14:00",
	})
	require.NoError(t, err)

	// Another user's delete must not reach the owner's slot.
	err = stack.availability.Delete(ctx, other.ID, slot.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	slots, err := stack.availability.ListOwn(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, slots, 1)

	require.NoError(t, stack.availability.Delete(ctx, owner.ID, slot.ID))

	slots, err = stack.availability.ListOwn(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailabilityService_ListForUser_UnknownUser(t *testing.T) {
	stack := newTestStack(t)

	_, err := stack.availability.ListForUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)
}
