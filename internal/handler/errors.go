package handler

import (
	"errors"
	"net/http"

	"github.com/osse101/gameinventory/internal/domain"
	"github.com/osse101/gameinventory/internal/logger"
)

// Generic HTTP error messages for client responses.
// Internal error details are never exposed; both handlers and tests
// reference these constants to stay consistent.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInternalError         = "Internal server error"
	ErrMsgServiceUnavailable    = "Service temporarily unavailable"
	ErrMsgUnauthorized          = "Unauthorized"
)

// Success messages for API responses
const (
	MsgItemUsedSuccess    = "Item used successfully"
	MsgItemAddedSuccess   = "Item added successfully"
	MsgItemDeletedSuccess = "Item deleted successfully"
)

// statusForError maps a domain error to its HTTP status and client message.
// Typed domain errors surface their own message; storage and unknown
// failures collapse to generic messages so engine internals never leak.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrInventoryNotFound),
		errors.Is(err, domain.ErrItemNotOwned):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrItemAlreadyExists),
		errors.Is(err, domain.ErrInventoryAlreadyExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrNotAdmin):
		return http.StatusForbidden, domain.ErrMsgNotAdmin
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInsufficientAmount):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, ErrMsgUnauthorized
	case errors.Is(err, domain.ErrDatabase):
		return http.StatusServiceUnavailable, ErrMsgServiceUnavailable
	default:
		return http.StatusInternalServerError, ErrMsgInternalError
	}
}

// respondServiceError writes the mapped error response and logs
// server-side failures
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusForError(err)
	if status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("Request failed", "error", err, "path", r.URL.Path)
	}
	respondError(w, status, message)
}
