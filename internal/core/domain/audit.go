package domain

import "time"

// AuditAction is the kind of operation an audit record describes.
type AuditAction string

const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditPost   AuditAction = "POST"
	AuditCancel AuditAction = "CANCEL"
	AuditDelete AuditAction = "DELETE"
)

// AuditLog is one audit trail record. It is written inside the same database
// transaction as the operation it records.
type AuditLog struct {
	AuditID      string         `json:"auditID"`
	UserID       string         `json:"userID"`
	Action       AuditAction    `json:"action"`
	ResourceType string         `json:"resourceType"`
	ResourceID   string         `json:"resourceID"`
	Details      map[string]any `json:"details,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}
