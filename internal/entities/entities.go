package entities

import (
	"fmt"
	"time"
)

// LoanStatus is the presentation label derived from a loan's state and the clock.
type LoanStatus string

const (
	LoanStatusActive   LoanStatus = "Active"
	LoanStatusReturned LoanStatus = "Returned"
	LoanStatusOverdue  LoanStatus = "Overdue"
)

// DefaultPublisher is used when a book is registered without a publisher.
const DefaultPublisher = "Unknown"

type Book struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	ISBN      string    `gorm:"uniqueIndex;size:20" json:"isbn"`
	Title     string    `gorm:"index;size:512" json:"title"`
	Author    string    `gorm:"index;size:256" json:"author"`
	Publisher string    `gorm:"size:256" json:"publisher"`
	Year      int       `json:"year"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	UserID       string    `gorm:"uniqueIndex;size:20" json:"user_id"`
	FirstName    string    `gorm:"size:100" json:"first_name"`
	LastName     string    `gorm:"size:100" json:"last_name"`
	Email        string    `gorm:"size:255" json:"email,omitempty"`
	PasswordHash string    `gorm:"size:100" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DisplayName is the member name used in notifications and loan listings.
func (u User) DisplayName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Loan couples a member to a borrowed book. The book and member are referenced
// by their natural keys, never embedded, so replacing a catalog record cannot
// alias into the ledger. A nil ReturnDate means the loan is active.
type Loan struct {
	ID         uint       `gorm:"primaryKey" json:"-"`
	LoanID     string     `gorm:"uniqueIndex;size:20" json:"loan_id"`
	Seq        int        `gorm:"uniqueIndex" json:"-"`
	UserID     string     `gorm:"index;size:20" json:"user_id"`
	ISBN       string     `gorm:"index;size:20" json:"isbn"`
	LoanDate   time.Time  `json:"loan_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Returned reports whether the loan reached its terminal state.
func (l Loan) Returned() bool {
	return l.ReturnDate != nil
}

// OverdueAt reports whether the loan is active and past due at the given time.
// Overdue is a view over the clock, not a stored state: it flips to false the
// moment the loan is returned, however late the return was.
func (l Loan) OverdueAt(now time.Time) bool {
	return !l.Returned() && now.After(l.DueDate)
}

// StatusAt derives the presentation label for the loan at the given time.
func (l Loan) StatusAt(now time.Time) LoanStatus {
	switch {
	case l.Returned():
		return LoanStatusReturned
	case l.OverdueAt(now):
		return LoanStatusOverdue
	default:
		return LoanStatusActive
	}
}

// FormatLoanID renders a sequence number as a ledger identifier, e.g. 1 -> "L001".
// Width grows past three digits instead of truncating.
func FormatLoanID(seq int) string {
	return fmt.Sprintf("L%03d", seq)
}
