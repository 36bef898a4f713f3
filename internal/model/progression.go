package model

import (
	"time"

	"github.com/google/uuid"
)

// ProgressionStep is one milestone in the A-license curriculum. Seeded at
// startup, effectively immutable afterwards.
type ProgressionStep struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code         string    `gorm:"unique;not null" json:"code"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `json:"description,omitempty"`
	Category     Category  `gorm:"type:varchar(10);not null;index" json:"category"`
	Required     bool      `gorm:"default:true" json:"required"`
	MinJumpsGate int       `gorm:"default:0" json:"min_jumps_gate"`
}

func (ProgressionStep) TableName() string {
	return "progression_steps"
}

// StepCompletion is an attested, append-only record that a mentee
// finished a step. Never updated or deleted.
type StepCompletion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MenteeID    uuid.UUID `gorm:"type:uuid;not null;index" json:"mentee_id"`
	StepID      uuid.UUID `gorm:"type:uuid;not null;index" json:"step_id"`
	MentorID    uuid.UUID `gorm:"type:uuid;not null" json:"mentor_id"`
	CompletedAt time.Time `json:"completed_at"`
	EvidenceURL string    `json:"evidence_url,omitempty"`
	Notes       string    `json:"notes,omitempty"`

	Step *ProgressionStep `gorm:"foreignKey:StepID;references:ID" json:"-"`
}

func (StepCompletion) TableName() string {
	return "step_completions"
}

type CreateStepCompletionRequest struct {
	MenteeID    uuid.UUID `json:"mentee_id" validate:"required"`
	StepID      uuid.UUID `json:"step_id" validate:"required"`
	EvidenceURL string    `json:"evidence_url" validate:"omitempty,url"`
	Notes       string    `json:"notes" validate:"omitempty,max=2000"`
}

// StepCompletionView joins a completion with its catalog entry.
type StepCompletionView struct {
	StepCompletion
	StepDetail *ProgressionStep `json:"step"`
}

type SuggestExercisesRequest struct {
	MenteeIDs []uuid.UUID `json:"mentee_ids" validate:"required,min=1"`
}

// SuggestedExercisesResponse is the coarse group-suggestion result: the
// average completed-step count across the mentees picks one catalog index
// whose category selects the exercises.
type SuggestedExercisesResponse struct {
	AverageCompleted float64           `json:"average_completed"`
	Category         Category          `json:"category,omitempty"`
	Exercises        []ProgressionStep `json:"exercises"`
}
