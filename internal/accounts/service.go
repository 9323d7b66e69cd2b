// Package accounts manages registered library members.
//
// Sessions and login flows live outside this service; the rest of the system
// only consumes existence, display-name and email lookups, plus credential
// verification for the calling layer.
package accounts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shelfwise/circulation/internal/database/users"
	"github.com/shelfwise/circulation/internal/entities"
)

// ErrMissingField is returned when a required member field is empty.
var ErrMissingField = errors.New("required field is missing")

// MemberParams describes a member to register. UserID, FirstName and
// LastName are required; Email and Password are optional.
type MemberParams struct {
	UserID    string
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Service exposes member operations over the users repository.
type Service struct {
	users      *users.Repository
	bcryptCost int
}

// NewService creates a new accounts service.
func NewService(users *users.Repository, bcryptCost int) *Service {
	return &Service{users: users, bcryptCost: bcryptCost}
}

// Register adds a new member, hashing the password when one is provided.
func (s *Service) Register(params MemberParams) (*entities.User, error) {
	if strings.TrimSpace(params.UserID) == "" {
		return nil, fmt.Errorf("%w: user_id", ErrMissingField)
	}
	if strings.TrimSpace(params.FirstName) == "" {
		return nil, fmt.Errorf("%w: first_name", ErrMissingField)
	}
	if strings.TrimSpace(params.LastName) == "" {
		return nil, fmt.Errorf("%w: last_name", ErrMissingField)
	}

	user := &entities.User{
		UserID:    strings.TrimSpace(params.UserID),
		FirstName: strings.TrimSpace(params.FirstName),
		LastName:  strings.TrimSpace(params.LastName),
		Email:     strings.TrimSpace(params.Email),
	}

	if params.Password != "" {
		hash, err := HashPassword(params.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies a member's credentials.
func (s *Service) Authenticate(userID, password string) error {
	user, err := s.users.GetByUserID(userID)
	if err != nil {
		return err
	}
	return CheckPassword(password, user.PasswordHash)
}

// UserExists reports whether the member is registered.
func (s *Service) UserExists(userID string) (bool, error) {
	return s.users.Exists(userID)
}

// DisplayName resolves the member's full name, falling back to the ID for
// unknown members so callers can always render something.
func (s *Service) DisplayName(userID string) string {
	user, err := s.users.GetByUserID(userID)
	if err != nil {
		return userID
	}
	return user.DisplayName()
}

// Email returns the member's email address and whether one is set.
func (s *Service) Email(userID string) (string, bool) {
	user, err := s.users.GetByUserID(userID)
	if err != nil || user.Email == "" {
		return "", false
	}
	return user.Email, true
}

// ListMembers returns a snapshot of all registered members.
func (s *Service) ListMembers() ([]entities.User, error) {
	return s.users.GetAll()
}
