package model

import "time"

// MentorDashboard is the mentor's composite summary view.
type MentorDashboard struct {
	TodayBlocks    []MentorSessionBlockView `json:"today_blocks"`
	UpcomingBlocks []MentorSessionBlockView `json:"upcoming_blocks"`
	PendingCount   int64                    `json:"pending_count"`
}

// MenteeDashboard is the mentee's composite summary view.
type MenteeDashboard struct {
	UpcomingSessions []AssignmentView `json:"upcoming_sessions"`
	CompletedSteps   int64            `json:"completed_steps"`
	BadgeCount       int64            `json:"badge_count"`
	LastJump         *JumpLog         `json:"last_jump,omitempty"`
}

// AdminDashboard is the admin's entity-count overview.
type AdminDashboard struct {
	Mentors            int64     `json:"mentors"`
	Mentees            int64     `json:"mentees"`
	Admins             int64     `json:"admins"`
	SessionBlocks      int64     `json:"session_blocks"`
	PendingAssignments int64     `json:"pending_assignments"`
	AuditEvents        int64     `json:"audit_events"`
	GeneratedAt        time.Time `json:"generated_at"`
}
