// Package notify decouples loan lifecycle transitions from how they are
// delivered. The lending service publishes events to a Dispatcher, which fans
// them out to subscribers in registration order on the caller's goroutine.
// One subscriber, the Bridge, forwards events to the currently selected
// delivery channel (console or email).
package notify

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventLoanCreated     EventType = "loan_created"
	EventLoanReturned    EventType = "loan_returned"
	EventOverdueReminder EventType = "overdue_reminder"
)

// Event is one loan lifecycle occurrence.
type Event struct {
	ID         uuid.UUID
	Type       EventType
	UserID     string
	ISBN       string
	Message    string
	OccurredAt time.Time
}

// NewEvent builds an event with a fresh identifier.
func NewEvent(eventType EventType, userID, isbn, message string, occurredAt time.Time) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		UserID:     userID,
		ISBN:       isbn,
		Message:    message,
		OccurredAt: occurredAt,
	}
}
