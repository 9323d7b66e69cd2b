// Package loans provides database operations for the loan ledger.
//
// Loan records are append-then-return-once: they are created by the lending
// service, mutated exactly once when returned, and never deleted. Sequence
// numbers therefore grow monotonically for the lifetime of the store.
package loans

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/shelfwise/circulation/internal/entities"
)

// ErrLoanNotFound is returned when no loan matches the requested loan ID.
var ErrLoanNotFound = errors.New("loan not found")

// Repository handles all loan ledger database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new loans repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// NextSeq computes the next loan sequence number. Loans are never deleted,
// so MAX(seq)+1 never hands out a number twice.
func (r *Repository) NextSeq() (int, error) {
	var max int
	err := r.db.Model(&entities.Loan{}).Select("COALESCE(MAX(seq), 0)").Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// Create inserts a new loan record.
func (r *Repository) Create(loan *entities.Loan) error {
	return r.db.Create(loan).Error
}

// GetByLoanID retrieves a loan by its ledger identifier.
func (r *Repository) GetByLoanID(loanID string) (*entities.Loan, error) {
	var loan entities.Loan
	err := r.db.Where("loan_id = ?", loanID).First(&loan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLoanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// SetReturnDate stamps the loan's single terminal mutation.
func (r *Repository) SetReturnDate(loanID string, returnDate time.Time) error {
	result := r.db.Model(&entities.Loan{}).Where("loan_id = ?", loanID).Update("return_date", returnDate)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLoanNotFound
	}
	return nil
}

// GetAll retrieves every loan in creation order as a snapshot slice.
func (r *Repository) GetAll() ([]entities.Loan, error) {
	var loans []entities.Loan
	err := r.db.Order("seq ASC").Find(&loans).Error
	return loans, err
}

// GetActive retrieves loans that have not been returned, in creation order.
func (r *Repository) GetActive() ([]entities.Loan, error) {
	var loans []entities.Loan
	err := r.db.Where("return_date IS NULL").Order("seq ASC").Find(&loans).Error
	return loans, err
}

// GetActiveByUser retrieves a member's open loans, in creation order.
func (r *Repository) GetActiveByUser(userID string) ([]entities.Loan, error) {
	var loans []entities.Loan
	err := r.db.Where("return_date IS NULL AND user_id = ?", userID).Order("seq ASC").Find(&loans).Error
	return loans, err
}

// GetOverdue retrieves active loans whose due date has passed at the given time.
func (r *Repository) GetOverdue(now time.Time) ([]entities.Loan, error) {
	var loans []entities.Loan
	err := r.db.Where("return_date IS NULL AND due_date < ?", now).Order("seq ASC").Find(&loans).Error
	return loans, err
}

// ActiveLoanForISBN retrieves the open loan holding the given book, if any.
func (r *Repository) ActiveLoanForISBN(isbn string) (*entities.Loan, error) {
	var loan entities.Loan
	err := r.db.Where("return_date IS NULL AND isbn = ?", isbn).First(&loan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLoanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &loan, nil
}
