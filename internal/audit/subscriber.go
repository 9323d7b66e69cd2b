// Package audit records every loan lifecycle event in the audit trail.
package audit

import (
	"github.com/shelfwise/circulation/internal/database/audit"
	"github.com/shelfwise/circulation/internal/entities"
	"github.com/shelfwise/circulation/internal/notify"
)

// Service subscribes to the notification dispatcher and persists each event.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// OnLoanEvent implements notify.Subscriber.
func (s *Service) OnLoanEvent(event notify.Event) error {
	return s.repo.LogEvent(&entities.AuditEvent{
		EventID:   event.ID.String(),
		EventType: entities.AuditEventType(event.Type),
		UserID:    event.UserID,
		ISBN:      event.ISBN,
		Message:   event.Message,
		CreatedAt: event.OccurredAt,
	})
}

// Recent returns the newest recorded events, most recent first.
func (s *Service) Recent(limit int) ([]entities.AuditEvent, error) {
	return s.repo.Recent(limit)
}
