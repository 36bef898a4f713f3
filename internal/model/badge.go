package model

import (
	"time"

	"github.com/google/uuid"
)

// BadgeCriteria is the structured award rule stored with a badge. Either
// Category+Count (N completions in one category) or TotalCount (N
// completions overall) is set; a badge with neither is never auto-awarded.
type BadgeCriteria struct {
	Category   Category `json:"category,omitempty"`
	Count      int      `json:"count,omitempty"`
	TotalCount int      `json:"total_count,omitempty"`
}

// Badge is an achievement definition. Seeded reference data.
type Badge struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Code        string         `gorm:"unique;not null" json:"code"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description,omitempty"`
	Criteria    *BadgeCriteria `gorm:"column:criteria_json;serializer:json" json:"criteria,omitempty"`
}

func (Badge) TableName() string {
	return "badges"
}

// Award is a badge granted to a mentee.
type Award struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MenteeID  uuid.UUID `gorm:"type:uuid;not null;index" json:"mentee_id"`
	BadgeID   uuid.UUID `gorm:"type:uuid;not null" json:"badge_id"`
	AwardedAt time.Time `json:"awarded_at"`

	Badge *Badge `gorm:"foreignKey:BadgeID;references:ID" json:"-"`
}

func (Award) TableName() string {
	return "awards"
}

// AwardView joins an award with its badge definition.
type AwardView struct {
	Award
	BadgeDetail *Badge `json:"badge"`
}
