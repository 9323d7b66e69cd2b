// Package books provides database operations for the book catalog.
package books

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shelfwise/circulation/internal/entities"
)

var (
	// ErrDuplicateISBN is returned when a book with the same ISBN already exists.
	ErrDuplicateISBN = errors.New("book with this ISBN already exists")
	// ErrBookNotFound is returned when no book matches the requested ISBN.
	ErrBookNotFound = errors.New("book not found")
)

// Repository handles all book catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new book. Fails with ErrDuplicateISBN when the ISBN is taken.
func (r *Repository) Create(book *entities.Book) error {
	var existing entities.Book
	result := r.db.Where("isbn = ?", book.ISBN).First(&existing)
	if result.Error == nil {
		return ErrDuplicateISBN
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check ISBN %s: %w", book.ISBN, result.Error)
	}

	return r.db.Create(book).Error
}

// GetByISBN retrieves a book by its ISBN.
func (r *Repository) GetByISBN(isbn string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("isbn = ?", isbn).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetAll retrieves all books in insertion order. The returned slice is a
// snapshot; callers never see a live view of the catalog.
func (r *Repository) GetAll() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("id ASC").Find(&books).Error
	return books, err
}

// SetAvailability flips the availability flag of the book with the given ISBN.
func (r *Repository) SetAvailability(isbn string, available bool) error {
	result := r.db.Model(&entities.Book{}).Where("isbn = ?", isbn).Update("available", available)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}

// Update replaces the stored record for the book's ISBN.
func (r *Repository) Update(book *entities.Book) error {
	existing, err := r.GetByISBN(book.ISBN)
	if err != nil {
		return err
	}
	book.ID = existing.ID
	return r.db.Save(book).Error
}

// Delete removes a book by ISBN. Returns whether a record was removed.
func (r *Repository) Delete(isbn string) (bool, error) {
	result := r.db.Where("isbn = ?", isbn).Delete(&entities.Book{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
