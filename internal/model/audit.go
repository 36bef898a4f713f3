package model

import (
	"time"

	"github.com/google/uuid"
)

// Audit event types recorded by the services.
const (
	AuditUserSignedUp        = "user.signed_up"
	AuditSessionBlockCreated = "session_block.created"
	AuditSessionBlockDeleted = "session_block.deleted"
	AuditAttendanceRequested = "attendance.requested"
	AuditAssignmentUpdated   = "assignment.status_changed"
	AuditStepCompleted       = "progression.step_completed"
	AuditBadgeAwarded        = "progression.badge_awarded"
)

// AuditEvent is an append-only record of a significant write.
type AuditEvent struct {
	ID      uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ActorID *uuid.UUID     `gorm:"type:uuid;index" json:"actor_id,omitempty"`
	Type    string         `gorm:"not null;index:idx_audit_events_type_at" json:"type"`
	Payload map[string]any `gorm:"column:payload_json;serializer:json" json:"payload,omitempty"`
	At      time.Time      `gorm:"index:idx_audit_events_type_at" json:"at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
