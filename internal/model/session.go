package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionBlock is a concrete dated training slot published by a mentor.
type SessionBlock struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	MentorID          uuid.UUID  `gorm:"type:uuid;not null;index:idx_session_blocks_mentor_date" json:"mentor_id"`
	Date              time.Time  `gorm:"type:date;not null;index:idx_session_blocks_mentor_date" json:"date"`
	StartTime         string     `gorm:"not null" json:"start_time"`
	EndTime           string     `gorm:"not null" json:"end_time"`
	DZID              *uuid.UUID `gorm:"column:dz_id;type:uuid" json:"dz_id,omitempty"`
	LoadIntervalMin   int        `gorm:"default:90" json:"load_interval_min"`
	BlockCapacityHint int        `gorm:"default:8" json:"block_capacity_hint"`

	Mentor      *User        `gorm:"foreignKey:MentorID;references:ID" json:"-"`
	Assignments []Assignment `gorm:"foreignKey:SessionBlockID" json:"-"`
}

func (SessionBlock) TableName() string {
	return "session_blocks"
}

type CreateSessionBlockRequest struct {
	// MentorID is honored for admins only; mentors always create their
	// own blocks.
	MentorID          *uuid.UUID `json:"mentor_id"`
	Date              time.Time  `json:"date" validate:"required"`
	StartTime         string     `json:"start_time" validate:"required,clocktime"`
	EndTime           string     `json:"end_time" validate:"required,clocktime"`
	DZID              *uuid.UUID `json:"dz_id"`
	LoadIntervalMin   int        `json:"load_interval_min" validate:"omitempty,min=1"`
	BlockCapacityHint int        `json:"block_capacity_hint" validate:"omitempty,min=1"`
}

type UpdateSessionBlockRequest struct {
	Date              *time.Time `json:"date"`
	StartTime         *string    `json:"start_time" validate:"omitempty,clocktime"`
	EndTime           *string    `json:"end_time" validate:"omitempty,clocktime"`
	DZID              *uuid.UUID `json:"dz_id"`
	LoadIntervalMin   *int       `json:"load_interval_min" validate:"omitempty,min=1"`
	BlockCapacityHint *int       `json:"block_capacity_hint" validate:"omitempty,min=1"`
}

// SessionBlockQuery narrows block listings. Zero values mean "no filter".
type SessionBlockQuery struct {
	MentorID uuid.UUID
	From     time.Time
	To       time.Time
}

// MentorIdentity is the mentor annotation attached to blocks shown to
// mentees and admins.
type MentorIdentity struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Ratings string    `json:"ratings,omitempty"`
}

// SessionBlockView is a block as mentees/admins see it.
type SessionBlockView struct {
	SessionBlock
	Mentor MentorIdentity `json:"mentor"`
}

// MentorSessionBlockView is a block as its own mentor sees it, with the
// nested assignments and mentee identity.
type MentorSessionBlockView struct {
	SessionBlock
	Assignments []AssignmentView `json:"assignments"`
}
