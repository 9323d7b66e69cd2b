package entities

import "time"

type AuditEventType string

const (
	AuditEventLoanCreated     AuditEventType = "loan_created"
	AuditEventLoanReturned    AuditEventType = "loan_returned"
	AuditEventOverdueReminder AuditEventType = "overdue_reminder"
)

// AuditEvent is one persisted lifecycle occurrence from the loan ledger.
type AuditEvent struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	EventID   string         `gorm:"uniqueIndex;size:36" json:"event_id"`
	EventType AuditEventType `gorm:"index;size:50" json:"event_type"`
	UserID    string         `gorm:"index;size:20" json:"user_id"`
	ISBN      string         `gorm:"index;size:20" json:"isbn"`
	Message   string         `gorm:"size:500" json:"message"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
