// Package audit provides database operations for the loan event audit trail.
package audit

import (
	"gorm.io/gorm"

	"github.com/shelfwise/circulation/internal/entities"
)

// Repository handles audit event persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new audit repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent persists one audit event.
func (r *Repository) LogEvent(event *entities.AuditEvent) error {
	return r.db.Create(event).Error
}

// Recent retrieves the newest events, most recent first. A limit of zero or
// less returns everything.
func (r *Repository) Recent(limit int) ([]entities.AuditEvent, error) {
	var events []entities.AuditEvent
	query := r.db.Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&events).Error
	return events, err
}

// CountByType returns how many events of the given type were recorded.
func (r *Repository) CountByType(eventType entities.AuditEventType) (int64, error) {
	var count int64
	err := r.db.Model(&entities.AuditEvent{}).Where("event_type = ?", eventType).Count(&count).Error
	return count, err
}
