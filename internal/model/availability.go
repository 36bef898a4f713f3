package model

import (
	"time"

	"github.com/google/uuid"
)

// Availability is a weekly or date-bounded window a user offers.
// Times are "HH:MM" strings; overlap between windows is allowed.
type Availability struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Role             Role       `gorm:"type:varchar(10);not null;index" json:"role"`
	DayOfWeek        int        `gorm:"not null" json:"day_of_week"`
	StartTime        string     `gorm:"not null" json:"start_time"`
	EndTime          string     `gorm:"not null" json:"end_time"`
	StartDate        *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	EndDate          *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	IsRecurring      bool       `gorm:"default:true" json:"is_recurring"`
	CapacityOverride *int       `json:"capacity_override,omitempty"`
}

func (Availability) TableName() string {
	return "availability"
}

type CreateAvailabilityRequest struct {
	DayOfWeek        int        `json:"day_of_week" validate:"min=0,max=6"`
	StartTime        string     `json:"start_time" validate:"required,clocktime"`
	EndTime          string     `json:"end_time" validate:"required,clocktime"`
	StartDate        *time.Time `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	IsRecurring      *bool      `json:"is_recurring"`
	CapacityOverride *int       `json:"capacity_override" validate:"omitempty,min=1"`
}
