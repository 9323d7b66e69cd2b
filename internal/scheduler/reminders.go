// Package scheduler runs the periodic overdue reminder sweep.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/shelfwise/circulation/internal/entities"
	"github.com/shelfwise/circulation/internal/lending"
	"github.com/shelfwise/circulation/internal/notify"
)

// OverdueSource yields the loans to remind about.
type OverdueSource interface {
	OverdueRecords() ([]entities.Loan, error)
	BookTitle(isbn string) string
}

// NameResolver resolves member display names for reminder messages.
type NameResolver interface {
	DisplayName(userID string) string
}

// ReminderScheduler periodically sweeps the ledger for overdue loans and
// publishes a reminder notification per loan.
type ReminderScheduler struct {
	source    OverdueSource
	names     NameResolver
	publisher lending.Publisher
	schedule  string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewReminderScheduler creates a scheduler with the given cron schedule.
func NewReminderScheduler(source OverdueSource, names NameResolver, publisher lending.Publisher, schedule string) *ReminderScheduler {
	return &ReminderScheduler{
		source:    source,
		names:     names,
		publisher: publisher,
		schedule:  schedule,
		cron:      cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *ReminderScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runSweep()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder sweep: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Reminder scheduler: started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running sweep to finish.
func (s *ReminderScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Reminder scheduler: stopped")
}

// RunNow triggers an immediate sweep, for manual kicks and tests.
func (s *ReminderScheduler) RunNow() error {
	return s.runSweep()
}

// IsRunning reports whether the scheduler is active.
func (s *ReminderScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next sweep will occur.
func (s *ReminderScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *ReminderScheduler) runSweep() error {
	overdue, err := s.source.OverdueRecords()
	if err != nil {
		log.Printf("Reminder sweep: failed to query overdue loans: %v", err)
		return err
	}

	if len(overdue) == 0 {
		log.Printf("Reminder sweep: no overdue loans")
		return nil
	}

	for _, loan := range overdue {
		message := fmt.Sprintf("Loan overdue!\nBook: %s\nBorrower: %s\nWas due: %s",
			s.source.BookTitle(loan.ISBN),
			s.names.DisplayName(loan.UserID),
			loan.DueDate.Format(lending.DateFormat))

		event := notify.NewEvent(notify.EventOverdueReminder, loan.UserID, loan.ISBN, message, time.Now())
		if err := s.publisher.Publish(event); err != nil {
			log.Printf("Reminder sweep: failed to publish reminder for %s: %v", loan.LoanID, err)
		}
	}

	log.Printf("Reminder sweep: published %d reminder(s)", len(overdue))
	return nil
}
