package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	// Item errors
	ErrMsgItemNotFound      = "item not found"
	ErrMsgItemAlreadyExists = "item already exists"

	// Inventory errors
	ErrMsgInventoryNotFound      = "inventory not found"
	ErrMsgInventoryAlreadyExists = "inventory already exists"
	ErrMsgItemNotOwned           = "user does not have this item"
	ErrMsgInsufficientAmount     = "not enough items"

	// Authorization errors
	ErrMsgNotAdmin     = "user is not an admin"
	ErrMsgUnauthorized = "unauthorized"

	// Validation errors
	ErrMsgInvalidInput = "invalid input"

	// Storage errors
	ErrMsgDatabaseError = "database error"
)

// Common domain errors.
// These are used consistently across all layers: the store and services
// return them (wrapped with fmt.Errorf("%w: ...", ...) for context) and the
// handler layer maps them to HTTP status codes, so storage internals never
// leak to the caller.
var (
	// Item errors
	ErrItemNotFound      = errors.New(ErrMsgItemNotFound)
	ErrItemAlreadyExists = errors.New(ErrMsgItemAlreadyExists)

	// Inventory errors
	ErrInventoryNotFound      = errors.New(ErrMsgInventoryNotFound)
	ErrInventoryAlreadyExists = errors.New(ErrMsgInventoryAlreadyExists)
	ErrItemNotOwned           = errors.New(ErrMsgItemNotOwned)
	ErrInsufficientAmount     = errors.New(ErrMsgInsufficientAmount)

	// Authorization errors
	ErrNotAdmin     = errors.New(ErrMsgNotAdmin)
	ErrUnauthorized = errors.New(ErrMsgUnauthorized)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	// Storage errors
	ErrDatabase = errors.New(ErrMsgDatabaseError)
)
