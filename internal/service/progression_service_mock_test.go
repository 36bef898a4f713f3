package service

import (
	"context"
	"testing"

	"skymentor/internal/model"
	"skymentor/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Verifies the badge evaluator runs inside the completion transaction
// and only writes awards for criteria the mentee actually meets.
func TestProgressionService_RecordCompletion_EvaluatesBadges(t *testing.T) {
	db := newTestDB(t)

	progressionRepo := new(mocks.ProgressionRepository)
	badgeRepo := new(mocks.BadgeRepository)
	userRepo := new(mocks.UserRepository)
	auditRepo := new(mocks.AuditRepository)

	svc := NewProgressionService(db, progressionRepo, badgeRepo, userRepo, auditRepo)

	mentorID := uuid.New()
	menteeID := uuid.New()
	stepID := uuid.New()
	metBadge := &model.Badge{
		ID:       uuid.New(),
		Code:     "FIRST_2WAY",
		Name:     "First 2-Way",
		Criteria: &model.BadgeCriteria{Category: model.Category2Way, Count: 1},
	}
	unmetBadge := &model.Badge{
		ID:       uuid.New(),
		Code:     "A_LICENSE_READY",
		Name:     "A-License Ready",
		Criteria: &model.BadgeCriteria{TotalCount: 24},
	}
	noCriteria := &model.Badge{ID: uuid.New(), Code: "MENTOR_FAVORITE", Name: "Mentor Favorite"}

	userRepo.On("FindMentorProfile", mock.Anything, mock.Anything, mentorID).
		Return(&model.MentorProfile{ID: mentorID}, nil)
	userRepo.On("FindMenteeProfile", mock.Anything, mock.Anything, menteeID).
		Return(&model.MenteeProfile{ID: menteeID}, nil)
	progressionRepo.On("FindStepByID", mock.Anything, mock.Anything, stepID).
		Return(&model.ProgressionStep{ID: stepID, Code: "2W-01", Category: model.Category2Way}, nil)
	progressionRepo.On("CompletionExists", mock.Anything, mock.Anything, menteeID, stepID).
		Return(false, nil)
	progressionRepo.On("CreateCompletion", mock.Anything, mock.Anything, mock.AnythingOfType("*model.StepCompletion")).
		Return(nil)
	auditRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.AuditEvent")).
		Return(nil)

	badgeRepo.On("FindBadges", mock.Anything, mock.Anything).
		Return([]*model.Badge{metBadge, unmetBadge, noCriteria}, nil)
	progressionRepo.On("CountCompletionsByMenteeAndCategory", mock.Anything, mock.Anything, menteeID, model.Category2Way).
		Return(int64(1), nil)
	progressionRepo.On("CountCompletionsByMentee", mock.Anything, mock.Anything, menteeID).
		Return(int64(1), nil)
	badgeRepo.On("AwardExists", mock.Anything, mock.Anything, menteeID, metBadge.ID).
		Return(false, nil)
	badgeRepo.On("CreateAward", mock.Anything, mock.Anything, mock.AnythingOfType("*model.Award")).
		Return(nil)

	view, err := svc.RecordCompletion(context.Background(), mentorID, &model.CreateStepCompletionRequest{
		MenteeID: menteeID,
		StepID:   stepID,
	})
	require.NoError(t, err)
	assert.Equal(t, "2W-01", view.StepDetail.Code)

	badgeRepo.AssertNumberOfCalls(t, "CreateAward", 1)
	// The unmet badge never reaches the held check; the criteria-less
	// badge is skipped outright.
	badgeRepo.AssertNotCalled(t, "AwardExists", mock.Anything, mock.Anything, menteeID, unmetBadge.ID)
	badgeRepo.AssertNotCalled(t, "AwardExists", mock.Anything, mock.Anything, menteeID, noCriteria.ID)
	// One audit event for the completion, one for the award.
	auditRepo.AssertNumberOfCalls(t, "Create", 2)
}

func TestProgressionService_RecordCompletion_HeldBadgeNotReawarded(t *testing.T) {
	db := newTestDB(t)

	progressionRepo := new(mocks.ProgressionRepository)
	badgeRepo := new(mocks.BadgeRepository)
	userRepo := new(mocks.UserRepository)
	auditRepo := new(mocks.AuditRepository)

	svc := NewProgressionService(db, progressionRepo, badgeRepo, userRepo, auditRepo)

	mentorID := uuid.New()
	menteeID := uuid.New()
	stepID := uuid.New()
	badge := &model.Badge{
		ID:       uuid.New(),
		Code:     "FIRST_2WAY",
		Name:     "First 2-Way",
		Criteria: &model.BadgeCriteria{Category: model.Category2Way, Count: 1},
	}

	userRepo.On("FindMentorProfile", mock.Anything, mock.Anything, mentorID).
		Return(&model.MentorProfile{ID: mentorID}, nil)
	userRepo.On("FindMenteeProfile", mock.Anything, mock.Anything, menteeID).
		Return(&model.MenteeProfile{ID: menteeID}, nil)
	progressionRepo.On("FindStepByID", mock.Anything, mock.Anything, stepID).
		Return(&model.ProgressionStep{ID: stepID, Code: "2W-02", Category: model.Category2Way}, nil)
	progressionRepo.On("CompletionExists", mock.Anything, mock.Anything, menteeID, stepID).
		Return(false, nil)
	progressionRepo.On("CreateCompletion", mock.Anything, mock.Anything, mock.AnythingOfType("*model.StepCompletion")).
		Return(nil)
	auditRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.AuditEvent")).
		Return(nil)
	badgeRepo.On("FindBadges", mock.Anything, mock.Anything).
		Return([]*model.Badge{badge}, nil)
	progressionRepo.On("CountCompletionsByMenteeAndCategory", mock.Anything, mock.Anything, menteeID, model.Category2Way).
		Return(int64(2), nil)
	badgeRepo.On("AwardExists", mock.Anything, mock.Anything, menteeID, badge.ID).
		Return(true, nil)

	_, err := svc.RecordCompletion(context.Background(), mentorID, &model.CreateStepCompletionRequest{
		MenteeID: menteeID,
		StepID:   stepID,
	})
	require.NoError(t, err)

	badgeRepo.AssertNotCalled(t, "CreateAward", mock.Anything, mock.Anything, mock.Anything)
	auditRepo.AssertNumberOfCalls(t, "Create", 1)
}
