package model

import (
	"time"

	"github.com/google/uuid"
)

// User is the account row shared by every role. Role-specific data lives
// in MentorProfile / MenteeProfile keyed by the same id. Accounts are
// deactivated, never hard-deleted.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Role         Role      `gorm:"type:varchar(10);not null;index" json:"role"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"unique;not null" json:"email"`
	Phone        string    `json:"phone,omitempty"`
	USPALicense  string    `gorm:"column:uspa_license" json:"uspa_license,omitempty"`
	Jumps        int       `gorm:"default:0" json:"jumps"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`

	MentorProfile *MentorProfile `gorm:"foreignKey:ID;references:ID" json:"-"`
	MenteeProfile *MenteeProfile `gorm:"foreignKey:ID;references:ID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// MentorProfile extends a mentor (or admin) account, 1:1 with users.
type MentorProfile struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Ratings              string    `json:"ratings,omitempty"`
	CoachNumber          string    `json:"coach_number,omitempty"`
	Disciplines          []string  `gorm:"serializer:json" json:"disciplines"`
	MaxConcurrentMentees int       `gorm:"default:2" json:"max_concurrent_mentees"`
	SeniorityScore       int       `gorm:"default:0" json:"seniority_score"`
	DZEndorsement        bool      `gorm:"column:dz_endorsement;default:false" json:"dz_endorsement"`
}

func (MentorProfile) TableName() string {
	return "mentors"
}

// MenteeProfile extends a mentee account, 1:1 with users.
type MenteeProfile struct {
	ID               uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Goals            string       `json:"goals,omitempty"`
	ComfortLevel     ComfortLevel `gorm:"type:varchar(10);default:medium" json:"comfort_level"`
	CanopySize       int          `json:"canopy_size,omitempty"`
	LastCurrencyDate *time.Time   `gorm:"type:date" json:"last_currency_date,omitempty"`
}

func (MenteeProfile) TableName() string {
	return "mentees"
}

type ContextKey string

const (
	UserIDKey ContextKey = "userID"
	RoleKey   ContextKey = "role"
)

// MentorProfileInput is the mentor payload nested in a signup request.
type MentorProfileInput struct {
	Ratings              string   `json:"ratings"`
	CoachNumber          string   `json:"coach_number"`
	Disciplines          []string `json:"disciplines"`
	MaxConcurrentMentees int      `json:"max_concurrent_mentees" validate:"omitempty,min=1,max=20"`
	SeniorityScore       int      `json:"seniority_score" validate:"omitempty,min=0"`
	DZEndorsement        bool     `json:"dz_endorsement"`
}

// MenteeProfileInput is the mentee payload nested in a signup request.
type MenteeProfileInput struct {
	Goals            string       `json:"goals"`
	ComfortLevel     ComfortLevel `json:"comfort_level" validate:"omitempty,oneof=low medium high"`
	CanopySize       int          `json:"canopy_size" validate:"omitempty,min=60,max=500"`
	LastCurrencyDate *time.Time   `json:"last_currency_date"`
}

// SignupRequest creates the account and its role profile in one shot, so
// a user can never exist without the profile its role implies.
type SignupRequest struct {
	Role        Role                `json:"role" validate:"required,oneof=mentor mentee admin"`
	Name        string              `json:"name" validate:"required,min=1,max=100"`
	Email       string              `json:"email" validate:"required,email"`
	Phone       string              `json:"phone" validate:"omitempty,max=30"`
	USPALicense string              `json:"uspa_license" validate:"omitempty,max=20"`
	Jumps       int                 `json:"jumps" validate:"omitempty,min=0"`
	Password    string              `json:"password" validate:"required,min=8,max=72"`
	Mentor      *MentorProfileInput `json:"mentor"`
	Mentee      *MenteeProfileInput `json:"mentee"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	User        *UserResponse `json:"user"`
}

// UserResponse is the client-facing account shape, credential hash
// stripped, role profile attached.
type UserResponse struct {
	ID          uuid.UUID      `json:"id"`
	Role        Role           `json:"role"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone,omitempty"`
	USPALicense string         `json:"uspa_license,omitempty"`
	Jumps       int            `json:"jumps"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	Mentor      *MentorProfile `json:"mentor,omitempty"`
	Mentee      *MenteeProfile `json:"mentee,omitempty"`
}

func NewUserResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Role:        u.Role,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		USPALicense: u.USPALicense,
		Jumps:       u.Jumps,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		Mentor:      u.MentorProfile,
		Mentee:      u.MenteeProfile,
	}
}
