package entities

import "time"

type AuditEventType string

const (
	AuditEventCreate AuditEventType = "create"
	AuditEventUpdate AuditEventType = "update"
	AuditEventDelete AuditEventType = "delete"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

// AuditEvent records one attempted change to the catalog.
// Only the events are persisted, never the books themselves.
type AuditEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	EventType   AuditEventType `gorm:"index;size:50" json:"eventType"`
	Action      string         `gorm:"size:100" json:"action"`      // e.g., "book_create", "book_delete"
	Description string         `gorm:"size:500" json:"description"` // Human-readable summary
	EntityType  string         `gorm:"size:50" json:"entityType"`
	EntityID    string         `gorm:"index;size:32" json:"entityId,omitempty"`
	Metadata    string         `gorm:"type:text" json:"metadata,omitempty"` // JSON for extra data
	RequestID   string         `gorm:"size:64" json:"requestId,omitempty"`
	IPAddress   string         `gorm:"size:45" json:"ipAddress,omitempty"`
	UserAgent   string         `gorm:"size:500" json:"userAgent,omitempty"`
	Status      AuditStatus    `gorm:"size:20" json:"status"`
	ErrorMsg    string         `gorm:"size:500" json:"errorMsg,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"createdAt"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
