package model

import "github.com/google/uuid"

// Preference holds a mentee's matching preferences, one row per mentee.
type Preference struct {
	ID               uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	MenteeID         uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex" json:"mentee_id"`
	PreferredMentors []uuid.UUID `gorm:"serializer:json" json:"preferred_mentors"`
	AvoidMentors     []uuid.UUID `gorm:"serializer:json" json:"avoid_mentors"`
	Notes            string      `json:"notes,omitempty"`
}

func (Preference) TableName() string {
	return "preferences"
}

type UpsertPreferenceRequest struct {
	PreferredMentors []uuid.UUID `json:"preferred_mentors"`
	AvoidMentors     []uuid.UUID `json:"avoid_mentors"`
	Notes            string      `json:"notes" validate:"omitempty,max=2000"`
}
