// Package users provides database operations for registered library members.
package users

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shelfwise/circulation/internal/entities"
)

var (
	// ErrDuplicateUserID is returned when a member with the same ID already exists.
	ErrDuplicateUserID = errors.New("user with this ID already exists")
	// ErrUserNotFound is returned when no member matches the requested ID.
	ErrUserNotFound = errors.New("user not found")
)

// Repository handles all member database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new member. Fails with ErrDuplicateUserID when the ID is taken.
func (r *Repository) Create(user *entities.User) error {
	var existing entities.User
	result := r.db.Where("user_id = ?", user.UserID).First(&existing)
	if result.Error == nil {
		return ErrDuplicateUserID
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check user %s: %w", user.UserID, result.Error)
	}

	return r.db.Create(user).Error
}

// GetByUserID retrieves a member by their ID.
func (r *Repository) GetByUserID(userID string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("user_id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Exists reports whether a member with the given ID is registered.
func (r *Repository) Exists(userID string) (bool, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}

// GetAll retrieves all members in registration order as a snapshot slice.
func (r *Repository) GetAll() ([]entities.User, error) {
	var users []entities.User
	err := r.db.Order("id ASC").Find(&users).Error
	return users, err
}

// Delete removes a member by ID. Returns whether a record was removed.
func (r *Repository) Delete(userID string) (bool, error) {
	result := r.db.Where("user_id = ?", userID).Delete(&entities.User{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
