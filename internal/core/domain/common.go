package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}

// DocumentStatus is the lifecycle state of a postable document
// (inventory adjustment or transfer).
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "DRAFT"
	StatusPosted    DocumentStatus = "POSTED"
	StatusCancelled DocumentStatus = "CANCELLED"
)
