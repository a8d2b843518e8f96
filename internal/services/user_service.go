// Package services – UserService
//
// This file implements UserService, which owns the user lifecycle: account
// creation with email validation and uniqueness, lookups, listing, and the
// destructive delete-all operation. Service-level errors (ErrInvalidEmail,
// ErrEmailTaken, ErrUserNotFound, …) are returned for predictable cases so
// adapters can map them to transport results consistently.
package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-messaging-backend/internal/domain"
	"github.com/tbourn/go-messaging-backend/internal/repo"
)

// UserService provides user-level operations. The DB handle is injected at
// construction; the service holds no other state and is safe for concurrent
// use.
type UserService struct {
	// DB is the GORM handle used for all user operations.
	DB *gorm.DB
}

// NewUserService returns a UserService bound to db.
func NewUserService(db *gorm.DB) *UserService { return &UserService{DB: db} }

// parseID validates that raw is a syntactically well-formed UUID and returns
// its canonical lowercase form. Malformed input yields ErrInvalidID.
func parseID(raw string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id.String(), nil
}

// Create registers a new user.
//
// Validation:
//   - email and name are required and non-empty (ErrMissingField).
//   - email must be a plain, well-formed address (ErrInvalidEmail). It is
//     trimmed and lowercased before storage so uniqueness is case-insensitive.
//   - a duplicate email yields ErrEmailTaken; the storage-level unique index
//     is the source of truth, so concurrent creates cannot both win.
func (s *UserService) Create(ctx context.Context, email, name string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" {
		return nil, fmt.Errorf("%w: email", ErrMissingField)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name", ErrMissingField)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	u, err := repo.CreateUser(ctx, s.DB, email, name)
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Get fetches a user by identifier. Malformed IDs yield ErrInvalidID,
// missing users ErrUserNotFound.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	u, err := repo.GetUser(ctx, s.DB, uid)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// List returns all users in storage-natural order.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return repo.ListUsers(ctx, s.DB)
}

// DeleteAll unconditionally removes every user. Cascade deletes take all
// messages and delivery rows with them. Irreversible, no confirmation step.
// Returns the number of users removed.
func (s *UserService) DeleteAll(ctx context.Context) (int64, error) {
	return repo.DeleteAllUsers(ctx, s.DB)
}
