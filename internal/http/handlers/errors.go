// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP
// responses (via the `fail()` helper in this package). These codes provide
// clients with a stable, machine-readable error taxonomy that supplements
// human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and mirror common HTTP status
//     semantics to aid interoperability.
//   - All error responses include both an HTTP status and one of these codes.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "not_found",
//	  "message": "user not found"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/tbourn/go-messaging-backend/internal/services"
)

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)

// mapServiceError translates a service-level sentinel error into an HTTP
// status and stable error code. Unknown errors map to 500/internal_error.
// Both the REST handlers and the tool bridge use this single mapping so the
// two surfaces never disagree on an error's kind.
func mapServiceError(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrInvalidID),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrMissingField),
		errors.Is(err, services.ErrNoRecipients):
		return http.StatusBadRequest, ErrCodeBadRequest
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrDuplicateDelivery):
		return http.StatusConflict, ErrCodeConflict
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrSenderNotFound),
		errors.Is(err, services.ErrRecipientNotFound),
		errors.Is(err, services.ErrMessageNotFound),
		errors.Is(err, services.ErrDeliveryNotFound):
		return http.StatusNotFound, ErrCodeNotFound
	default:
		return http.StatusInternalServerError, ErrCodeInternal
	}
}
