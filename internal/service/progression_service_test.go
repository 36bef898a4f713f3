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

// seedSmallCatalog installs a 5-step catalog whose category/title order
// is fixed: drill-a, drill-b (2way), drill-c, drill-d (3way), drill-e
// (canopy).
func seedSmallCatalog(t *testing.T, stack *testStack) []*model.ProgressionStep {
	t.Helper()
	ctx := context.Background()

	seeds := []struct {
		code     string
		title    string
		category model.Category
	}{
		{"T2-01", "drill-a", model.Category2Way},
		{"T2-02", "drill-b", model.Category2Way},
		{"T3-01", "drill-c", model.Category3Way},
		{"T3-02", "drill-d", model.Category3Way},
		{"TC-01", "drill-e", model.CategoryCanopy},
	}
	for _, s := range seeds {
		require.NoError(t, stack.progressionRepo.CreateStep(ctx, stack.db, &model.ProgressionStep{
			ID:       uuid.New(),
			Code:     s.code,
			Title:    s.title,
			Category: s.category,
			Required: true,
		}))
	}

	steps, err := stack.progressionRepo.FindSteps(ctx, stack.db)
	require.NoError(t, err)
	require.Len(t, steps, 5)
	return steps
}

func completeStep(t *testing.T, stack *testStack, menteeID, mentorID, stepID uuid.UUID) {
	t.Helper()
	require.NoError(t, stack.progressionRepo.CreateCompletion(context.Background(), stack.db, &model.StepCompletion{
		ID:          uuid.New(),
		MenteeID:    menteeID,
		StepID:      stepID,
		MentorID:    mentorID,
		CompletedAt: time.Now(),
	}))
}

func TestProgressionService_ListSteps_CategoryFilter(t *testing.T) {
	stack := newTestStack(t)
	seedSmallCatalog(t, stack)
	ctx := context.Background()

	all, err := stack.progression.ListSteps(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 5)

	threeWay, err := stack.progression.ListSteps(ctx, model.Category3Way)
	require.NoError(t, err)
	require.Len(t, threeWay, 2)
	assert.Equal(t, "drill-c", threeWay[0].Title)

	_, err = stack.progression.ListSteps(ctx, model.Category("wingsuit"))
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestProgressionService_RecordCompletion(t *testing.T) {
	stack := newTestStack(t)
	steps := seedSmallCatalog(t, stack)
	ctx := context.Background()

	mentor := signupUser(t, stack.auth, model.RoleMentor, "Mentor A", "mentor-a@example.com")
	mentee := signupUser(t, stack.auth, model.RoleMentee, "Mentee B", "mentee-b@example.com")

	t.Run("mentor attests", func(t *testing.T) {
		view, err := stack.progression.RecordCompletion(ctx, mentor.ID, &model.CreateStepCompletionRequest{
			MenteeID: mentee.ID,
			StepID:   steps[0].ID,
			Notes:    "clean exit, good levels",
		})
		require.NoError(t, err)
		assert.Equal(t, steps[0].Code, view.StepDetail.Code)
		assert.Equal(t, mentor.ID, view.MentorID)
	})

	t.Run("duplicate rejected", func(t *testing.T) {
		_, err := stack.progression.RecordCompletion(ctx, mentor.ID, &model.CreateStepCompletionRequest{
			MenteeID: mentee.ID,
			StepID:   steps[0].ID,
		})
		assert.ErrorIs(t, err, model.ErrConflict)
	})

	t.Run("mentee cannot attest", func(t *testing.T) {
		_, err := stack.progression.RecordCompletion(ctx, mentee.ID, &model.CreateStepCompletionRequest{
			MenteeID: mentee.ID,
			StepID:   steps[1].ID,
		})
		assert.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("unknown step", func(t *testing.T) {
		_, err := stack.progression.RecordCompletion(ctx, mentor.ID, &model.CreateStepCompletionRequest{
			MenteeID: mentee.ID,
			StepID:   uuid.New(),
		})
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestProgressionService_BadgeAwardedOnCompletion(t *testing.T) {
	stack := newTestStack(t)
	steps := seedSmallCatalog(t, stack)
	ctx := context.Background()

	require.NoError(t, stack.badgeRepo.CreateBadge(ctx, stack.db, &model.Badge{
		ID:       uuid.New(),
		Code:     "FIRST_2WAY",
		Name:     "First 2-Way",
		Criteria: &model.BadgeCriteria{Category: model.Category2Way, Count: 1},
	}))
	require.NoError(t, stack.badgeRepo.CreateBadge(ctx, stack.db, &model.Badge{
		ID:       uuid.New(),
		Code:     "CURRICULUM_DONE",
		Name:     "Curriculum Done",
		Criteria: &model.BadgeCriteria{TotalCount: 5},
	}))

	mentor := signupUser(t, stack.auth, model.RoleMentor, "Mentor A", "mentor-a@example.com")
	mentee := signupUser(t, stack.auth, model.RoleMentee, "Mentee B", "mentee-b@example.com")

	_, err := stack.progression.RecordCompletion(ctx, mentor.ID, &model.CreateStepCompletionRequest{
		MenteeID: mentee.ID,
		StepID:   steps[0].ID,
	})
	require.NoError(t, err)

	awards, err := stack.progression.ListAwards(ctx, mentee.ID)
	require.NoError(t, err)
	require.Len(t, awards, 1)
	assert.Equal(t, "FIRST_2WAY", awards[0].BadgeDetail.Code)

	// A second completion in the same category must not duplicate the
	// award.
	_, err = stack.progression.RecordCompletion(ctx, mentor.ID, &model.CreateStepCompletionRequest{
		MenteeID: mentee.ID,
		StepID:   steps[1].ID,
	})
	require.NoError(t, err)

	awards, err = stack.progression.ListAwards(ctx, mentee.ID)
	require.NoError(t, err)
	assert.Len(t, awards, 1)

	// Finishing the catalog trips the total-count badge.
	for _, step := range steps[2:] {
		_, err = stack.progression.RecordCompletion(ctx, mentor.ID, &model.CreateStepCompletionRequest{
			MenteeID: mentee.ID,
			StepID:   step.ID,
		})
		require.NoError(t, err)
	}

	awards, err = stack.progression.ListAwards(ctx, mentee.ID)
	require.NoError(t, err)
	assert.Len(t, awards, 2)
}

func TestProgressionService_SuggestExercises(t *testing.T) {
	stack := newTestStack(t)
	steps := seedSmallCatalog(t, stack)
	ctx := context.Background()

	mentor := signupUser(t, stack.auth, model.RoleMentor, "Mentor A", "mentor-a@example.com")
	menteeB := signupUser(t, stack.auth, model.RoleMentee, "Mentee B", "mentee-b@example.com")
	menteeD := signupUser(t, stack.auth, model.RoleMentee, "Mentee D", "mentee-d@example.com")

	// Two completions each: average 2.0 indexes the third catalog entry,
	// which sits in the 3way category.
	completeStep(t, stack, menteeB.ID, mentor.ID, steps[0].ID)
	completeStep(t, stack, menteeB.ID, mentor.ID, steps[1].ID)
	completeStep(t, stack, menteeD.ID, mentor.ID, steps[0].ID)
	completeStep(t, stack, menteeD.ID, mentor.ID, steps[1].ID)

	resp, err := stack.progression.SuggestExercises(ctx, []uuid.UUID{menteeB.ID, menteeD.ID})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, resp.AverageCompleted, 0.001)
	assert.Equal(t, model.Category3Way, resp.Category)
	require.Len(t, resp.Exercises, 2)
	assert.Equal(t, "drill-c", resp.Exercises[0].Title)
	assert.Equal(t, "drill-d", resp.Exercises[1].Title)
}

func TestProgressionService_SuggestExercises_GroupBeyondCatalog(t *testing.T) {
	stack := newTestStack(t)
	steps := seedSmallCatalog(t, stack)
	ctx := context.Background()

	mentor := signupUser(t, stack.auth, model.RoleMentor, "Mentor A", "mentor-a@example.com")
	mentee := signupUser(t, stack.auth, model.RoleMentee, "Mentee B", "mentee-b@example.com")

	for _, step := range steps {
		completeStep(t, stack, mentee.ID, mentor.ID, step.ID)
	}

	resp, err := stack.progression.SuggestExercises(ctx, []uuid.UUID{mentee.ID})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, resp.AverageCompleted, 0.001)
	assert.Empty(t, resp.Category)
	assert.Empty(t, resp.Exercises)
}

func TestProgressionService_SuggestExercises_EmptyGroup(t *testing.T) {
	stack := newTestStack(t)

	_, err := stack.progression.SuggestExercises(context.Background(), nil)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}
