package model

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceRequest is a mentee's application to join a session block.
// Its status mirrors the derived assignment's.
type AttendanceRequest struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MenteeID       uuid.UUID `gorm:"type:uuid;not null;index" json:"mentee_id"`
	SessionBlockID uuid.UUID `gorm:"type:uuid;not null;index" json:"session_block_id"`
	Status         Status    `gorm:"type:varchar(10);default:pending" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func (AttendanceRequest) TableName() string {
	return "attendance_requests"
}

// Assignment pairs a mentor and a mentee for a session block.
type Assignment struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionBlockID uuid.UUID `gorm:"type:uuid;not null;index" json:"session_block_id"`
	MentorID       uuid.UUID `gorm:"type:uuid;not null;index" json:"mentor_id"`
	MenteeID       uuid.UUID `gorm:"type:uuid;not null;index" json:"mentee_id"`
	Status         Status    `gorm:"type:varchar(10);default:pending" json:"status"`
	CreatedAt      time.Time `json:"created_at"`

	SessionBlock *SessionBlock `gorm:"foreignKey:SessionBlockID;references:ID" json:"-"`
	Mentor       *User         `gorm:"foreignKey:MentorID;references:ID" json:"-"`
	Mentee       *User         `gorm:"foreignKey:MenteeID;references:ID" json:"-"`
}

func (Assignment) TableName() string {
	return "assignments"
}

type CreateAttendanceRequest struct {
	SessionBlockID uuid.UUID `json:"session_block_id" validate:"required"`
}

// AttendanceResponse is returned after a mentee requests to join a block:
// the request plus the assignment derived from it.
type AttendanceResponse struct {
	Request    *AttendanceRequest `json:"request"`
	Assignment *Assignment        `json:"assignment"`
}

type UpdateAssignmentStatusRequest struct {
	Status Status `json:"status" validate:"required,oneof=pending confirmed declined cancelled"`
}

// PartyIdentity names one side of a pairing in joined views.
type PartyIdentity struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// AssignmentView is an assignment joined with both parties and its block.
type AssignmentView struct {
	Assignment
	MentorIdentity PartyIdentity `json:"mentor"`
	MenteeIdentity PartyIdentity `json:"mentee"`
	Block          *SessionBlock `json:"session_block,omitempty"`
}

func NewAssignmentView(a *Assignment) AssignmentView {
	v := AssignmentView{Assignment: *a}
	if a.Mentor != nil {
		v.MentorIdentity = PartyIdentity{ID: a.Mentor.ID, Name: a.Mentor.Name, Email: a.Mentor.Email}
	}
	if a.Mentee != nil {
		v.MenteeIdentity = PartyIdentity{ID: a.Mentee.ID, Name: a.Mentee.Name, Email: a.Mentee.Email}
	}
	v.Block = a.SessionBlock
	return v
}
