// Package catalog manages the book collection of the branch.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shelfwise/circulation/internal/database/books"
	"github.com/shelfwise/circulation/internal/entities"
)

// ErrMissingField is returned when a required book field is empty.
var ErrMissingField = errors.New("required field is missing")

// BookParams describes a book to register. ISBN, Title and Author are
// required. Publisher defaults to entities.DefaultPublisher when empty;
// new books always start out available.
type BookParams struct {
	ISBN      string
	Title     string
	Author    string
	Publisher string
	Year      int
}

// Service exposes catalog operations over the books repository.
type Service struct {
	books *books.Repository
}

// NewService creates a new catalog service.
func NewService(books *books.Repository) *Service {
	return &Service{books: books}
}

// AddBook registers a new book in the catalog.
func (s *Service) AddBook(params BookParams) (*entities.Book, error) {
	if strings.TrimSpace(params.ISBN) == "" {
		return nil, fmt.Errorf("%w: isbn", ErrMissingField)
	}
	if strings.TrimSpace(params.Title) == "" {
		return nil, fmt.Errorf("%w: title", ErrMissingField)
	}
	if strings.TrimSpace(params.Author) == "" {
		return nil, fmt.Errorf("%w: author", ErrMissingField)
	}

	publisher := params.Publisher
	if strings.TrimSpace(publisher) == "" {
		publisher = entities.DefaultPublisher
	}

	book := &entities.Book{
		ISBN:      strings.TrimSpace(params.ISBN),
		Title:     strings.TrimSpace(params.Title),
		Author:    strings.TrimSpace(params.Author),
		Publisher: publisher,
		Year:      params.Year,
		Available: true,
	}

	if err := s.books.Create(book); err != nil {
		return nil, err
	}
	return book, nil
}

// RemoveBook deletes a book from the catalog. Returns whether a book was removed.
func (s *Service) RemoveBook(isbn string) (bool, error) {
	return s.books.Delete(isbn)
}

// GetBook looks up a single book by ISBN.
func (s *Service) GetBook(isbn string) (*entities.Book, error) {
	return s.books.GetByISBN(isbn)
}

// ListBooks returns a snapshot of the whole catalog in insertion order.
func (s *Service) ListBooks() ([]entities.Book, error) {
	return s.books.GetAll()
}

// IsAvailable reports whether the book exists and may be newly borrowed.
func (s *Service) IsAvailable(isbn string) (bool, error) {
	book, err := s.books.GetByISBN(isbn)
	if errors.Is(err, books.ErrBookNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return book.Available, nil
}
