package model

import (
	"time"

	"github.com/google/uuid"
)

// JumpLog is one entry in a mentee's personal logbook.
type JumpLog struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	MenteeID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"mentee_id"`
	Date          time.Time  `gorm:"type:date;not null" json:"date"`
	JumpNumber    int        `gorm:"not null" json:"jump_number"`
	Aircraft      string     `json:"aircraft,omitempty"`
	ExitAlt       int        `gorm:"column:exit_alt" json:"exit_alt,omitempty"`
	FreefallTime  int        `json:"freefall_time,omitempty"`
	DeploymentAlt int        `gorm:"column:deployment_alt" json:"deployment_alt,omitempty"`
	PatternNotes  string     `json:"pattern_notes,omitempty"`
	DrillRef      string     `json:"drill_ref,omitempty"`
	MentorID      *uuid.UUID `gorm:"type:uuid" json:"mentor_id,omitempty"`
}

func (JumpLog) TableName() string {
	return "jump_logs"
}

type CreateJumpLogRequest struct {
	// MenteeID is honored for mentors/admins logging on a mentee's
	// behalf; mentees always log for themselves.
	MenteeID      *uuid.UUID `json:"mentee_id"`
	Date          time.Time  `json:"date" validate:"required"`
	JumpNumber    int        `json:"jump_number" validate:"required,min=1"`
	Aircraft      string     `json:"aircraft" validate:"omitempty,max=50"`
	ExitAlt       int        `json:"exit_alt" validate:"omitempty,min=0,max=30000"`
	FreefallTime  int        `json:"freefall_time" validate:"omitempty,min=0"`
	DeploymentAlt int        `json:"deployment_alt" validate:"omitempty,min=0,max=30000"`
	PatternNotes  string     `json:"pattern_notes" validate:"omitempty,max=2000"`
	DrillRef      string     `json:"drill_ref" validate:"omitempty,max=100"`
	MentorID      *uuid.UUID `json:"mentor_id"`
}

type UpdateJumpLogRequest struct {
	Date          *time.Time `json:"date"`
	JumpNumber    *int       `json:"jump_number" validate:"omitempty,min=1"`
	Aircraft      *string    `json:"aircraft" validate:"omitempty,max=50"`
	ExitAlt       *int       `json:"exit_alt" validate:"omitempty,min=0,max=30000"`
	FreefallTime  *int       `json:"freefall_time" validate:"omitempty,min=0"`
	DeploymentAlt *int       `json:"deployment_alt" validate:"omitempty,min=0,max=30000"`
	PatternNotes  *string    `json:"pattern_notes" validate:"omitempty,max=2000"`
	DrillRef      *string    `json:"drill_ref" validate:"omitempty,max=100"`
	MentorID      *uuid.UUID `json:"mentor_id"`
}
