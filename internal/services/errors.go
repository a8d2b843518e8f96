// Package services defines the business logic for users and messages.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/adapter layer.
package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-messaging-backend/internal/repo"
)

// Validation errors.
var (
	// ErrInvalidID is returned when an identifier is not a syntactically
	// valid UUID.
	ErrInvalidID = errors.New("identifier is not a valid UUID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("email address is not valid")

	// ErrMissingField is returned when a required field is empty. Callers
	// wrap it with the field name, e.g. fmt.Errorf("%w: content", ErrMissingField).
	ErrMissingField = errors.New("required field is empty")

	// ErrNoRecipients is returned when a send request carries an empty
	// recipient list. A message with zero delivery rows is never a valid
	// end state.
	ErrNoRecipients = errors.New("recipient list is empty")
)

// Conflict errors.
var (
	// ErrEmailTaken indicates the email is already registered to another user.
	ErrEmailTaken = errors.New("email already registered")

	// ErrDuplicateDelivery indicates the recipient list names the same user
	// twice for one message.
	ErrDuplicateDelivery = errors.New("duplicate recipient for this message")
)

// Not-found errors.
var (
	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrSenderNotFound indicates that the sending user does not exist.
	ErrSenderNotFound = errors.New("sender not found")

	// ErrRecipientNotFound indicates that a recipient in a send request does
	// not exist. It is wrapped with the offending identifier.
	ErrRecipientNotFound = errors.New("recipient not found")

	// ErrMessageNotFound indicates that the requested message does not exist.
	ErrMessageNotFound = errors.New("message not found")

	// ErrDeliveryNotFound indicates that no delivery row exists for the
	// given (message, recipient) pairing.
	ErrDeliveryNotFound = errors.New("recipient not found for this message")
)

// isNotFound treats repo-level not found sentinels as "not found" in a
// driver-agnostic way. It also checks gorm.ErrRecordNotFound for safety.
func isNotFound(err error) bool {
	if errors.Is(err, repo.ErrNotFound) {
		return true
	}
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isDuplicate attempts to detect unique-constraint violations across drivers
// that may not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
