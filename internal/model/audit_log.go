package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records workflow-level edits (a purchase being amended, a user
// being deactivated). It is independent of the stock ledger and never carries
// stock changes. OldData/NewData hold JSON snapshots; "null" when absent so
// the jsonb columns stay valid.
type AuditLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Action    string    `gorm:"not null"`
	TableName string    `gorm:"not null;index:idx_audit_record"`
	RecordID  uuid.UUID `gorm:"type:uuid;not null;index:idx_audit_record"`
	OldData   string    `gorm:"type:jsonb;default:'null'"`
	NewData   string    `gorm:"type:jsonb;default:'null'"`
	CreatedAt time.Time `gorm:"index"`
}
