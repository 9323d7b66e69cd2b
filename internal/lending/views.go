package lending

import (
	"github.com/shelfwise/circulation/internal/database/books"
	"github.com/shelfwise/circulation/internal/entities"
)

// LoanView is the read-side projection of a loan: keys resolved to names,
// dates formatted, and the status label derived from the clock.
type LoanView struct {
	LoanID     string              `json:"loan_id"`
	Borrower   string              `json:"borrower"`
	BookTitle  string              `json:"book_title"`
	ISBN       string              `json:"isbn"`
	LoanDate   string              `json:"loan_date"`
	DueDate    string              `json:"due_date"`
	ReturnDate string              `json:"return_date"`
	Status     entities.LoanStatus `json:"status"`
}

func (s *Service) toViews(records []entities.Loan) ([]LoanView, error) {
	now := s.now()
	booksRepo := books.NewRepository(s.db)

	views := make([]LoanView, 0, len(records))
	for _, loan := range records {
		title := loan.ISBN
		if book, err := booksRepo.GetByISBN(loan.ISBN); err == nil {
			title = book.Title
		}

		returnDate := "Not returned"
		if loan.ReturnDate != nil {
			returnDate = loan.ReturnDate.Format(DateFormat)
		}

		views = append(views, LoanView{
			LoanID:     loan.LoanID,
			Borrower:   s.directory.DisplayName(loan.UserID),
			BookTitle:  title,
			ISBN:       loan.ISBN,
			LoanDate:   loan.LoanDate.Format(DateFormat),
			DueDate:    loan.DueDate.Format(DateFormat),
			ReturnDate: returnDate,
			Status:     loan.StatusAt(now),
		})
	}
	return views, nil
}
