// Package lending implements the loan lifecycle: creating loans, returning
// books, and the queries over the ledger.
//
// A loan has exactly two states. It is created Active (no return date) and
// moves once to Returned (return date set); there is no way back. "Overdue"
// is not a stored state but a view over the clock: an active loan past its
// due date.
//
// Book availability is coupled to the ledger here and nowhere else: the loan
// write and the availability flip always commit in the same transaction, so
// no reader can observe a created loan whose book still reports available.
package lending

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shelfwise/circulation/internal/database/books"
	"github.com/shelfwise/circulation/internal/database/loans"
	"github.com/shelfwise/circulation/internal/database/users"
	"github.com/shelfwise/circulation/internal/entities"
	"github.com/shelfwise/circulation/internal/notify"
)

var (
	// ErrBookUnavailable is returned when the requested book is unknown or on loan.
	ErrBookUnavailable = errors.New("book is not available")
	// ErrAlreadyReturned is returned when a returned loan is returned again.
	ErrAlreadyReturned = errors.New("loan has already been returned")
	// ErrUserNotFound mirrors the users repository sentinel for callers of this package.
	ErrUserNotFound = users.ErrUserNotFound
	// ErrLoanNotFound mirrors the loans repository sentinel for callers of this package.
	ErrLoanNotFound = loans.ErrLoanNotFound
)

// DateFormat is how dates are rendered in notifications and loan listings.
const DateFormat = "02/01/2006"

// MemberDirectory is the member lookup the lifecycle engine consumes.
type MemberDirectory interface {
	UserExists(userID string) (bool, error)
	DisplayName(userID string) string
}

// Publisher receives lifecycle events after a successful mutation.
type Publisher interface {
	Publish(event notify.Event) error
}

// Service is the loan lifecycle engine.
type Service struct {
	db         *gorm.DB
	directory  MemberDirectory
	publisher  Publisher
	periodDays int
	now        func() time.Time
}

// NewService creates a lifecycle engine. periodDays is the loan duration used
// to compute due dates.
func NewService(db *gorm.DB, directory MemberDirectory, publisher Publisher, periodDays int) *Service {
	return &Service{
		db:         db,
		directory:  directory,
		publisher:  publisher,
		periodDays: periodDays,
		now:        time.Now,
	}
}

// CreateLoan borrows a book for a member. It validates that the member exists
// and the book is available, assigns the next sequential loan identifier,
// stamps the dates, and commits the loan together with the book's
// availability flip. On success a LoanCreated event is published.
func (s *Service) CreateLoan(userID, isbn string) (*entities.Loan, error) {
	var (
		loan      entities.Loan
		bookTitle string
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := users.NewRepository(tx).Exists(userID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
		}

		booksRepo := books.NewRepository(tx)
		book, err := booksRepo.GetByISBN(isbn)
		if errors.Is(err, books.ErrBookNotFound) {
			return fmt.Errorf("%w: %s", ErrBookUnavailable, isbn)
		}
		if err != nil {
			return err
		}
		if !book.Available {
			return fmt.Errorf("%w: %s", ErrBookUnavailable, isbn)
		}
		bookTitle = book.Title

		loansRepo := loans.NewRepository(tx)
		seq, err := loansRepo.NextSeq()
		if err != nil {
			return err
		}

		now := s.now()
		loan = entities.Loan{
			LoanID:   entities.FormatLoanID(seq),
			Seq:      seq,
			UserID:   userID,
			ISBN:     isbn,
			LoanDate: now,
			DueDate:  now.AddDate(0, 0, s.periodDays),
		}
		if err := loansRepo.Create(&loan); err != nil {
			return err
		}

		return booksRepo.SetAvailability(isbn, false)
	})
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Loan created!\nBook: %s\nBorrower: %s\nDue date: %s",
		bookTitle, s.directory.DisplayName(userID), loan.DueDate.Format(DateFormat))
	event := notify.NewEvent(notify.EventLoanCreated, userID, isbn, message, loan.LoanDate)
	if err := s.publisher.Publish(event); err != nil {
		return nil, err
	}

	return &loan, nil
}

// ReturnBook closes an active loan. It stamps the return date and flips the
// book back to available in the same transaction, then publishes a
// LoanReturned event.
func (s *Service) ReturnBook(loanID string) (*entities.Loan, error) {
	var (
		loan      entities.Loan
		bookTitle string
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		loansRepo := loans.NewRepository(tx)
		found, err := loansRepo.GetByLoanID(loanID)
		if err != nil {
			return err
		}
		if found.Returned() {
			return fmt.Errorf("%w: %s", ErrAlreadyReturned, loanID)
		}

		returnDate := s.now()
		if err := loansRepo.SetReturnDate(loanID, returnDate); err != nil {
			return err
		}
		found.ReturnDate = &returnDate

		booksRepo := books.NewRepository(tx)
		book, err := booksRepo.GetByISBN(found.ISBN)
		switch {
		case errors.Is(err, books.ErrBookNotFound):
			// The book was removed from the catalog while on loan; nothing to flip.
			bookTitle = found.ISBN
		case err != nil:
			return err
		default:
			bookTitle = book.Title
			if err := booksRepo.SetAvailability(found.ISBN, true); err != nil {
				return err
			}
		}

		loan = *found
		return nil
	})
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Book returned!\nBook: %s\nBorrower: %s",
		bookTitle, s.directory.DisplayName(loan.UserID))
	event := notify.NewEvent(notify.EventLoanReturned, loan.UserID, loan.ISBN, message, *loan.ReturnDate)
	if err := s.publisher.Publish(event); err != nil {
		return nil, err
	}

	return &loan, nil
}

// ActiveLoans lists all loans that have not been returned.
func (s *Service) ActiveLoans() ([]LoanView, error) {
	records, err := loans.NewRepository(s.db).GetActive()
	if err != nil {
		return nil, err
	}
	return s.toViews(records)
}

// AllLoans lists every loan ever created, in creation order.
func (s *Service) AllLoans() ([]LoanView, error) {
	records, err := loans.NewRepository(s.db).GetAll()
	if err != nil {
		return nil, err
	}
	return s.toViews(records)
}

// OverdueLoans lists active loans past their due date.
func (s *Service) OverdueLoans() ([]LoanView, error) {
	records, err := loans.NewRepository(s.db).GetOverdue(s.now())
	if err != nil {
		return nil, err
	}
	return s.toViews(records)
}

// OverdueRecords returns the raw overdue loan records, for the reminder sweep.
func (s *Service) OverdueRecords() ([]entities.Loan, error) {
	return loans.NewRepository(s.db).GetOverdue(s.now())
}

// ActiveLoansForUser lists a member's open loans.
func (s *Service) ActiveLoansForUser(userID string) ([]LoanView, error) {
	records, err := loans.NewRepository(s.db).GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.toViews(records)
}

// BookTitle resolves a title for notifications, falling back to the ISBN when
// the book is no longer in the catalog.
func (s *Service) BookTitle(isbn string) string {
	book, err := books.NewRepository(s.db).GetByISBN(isbn)
	if err != nil {
		return isbn
	}
	return book.Title
}
