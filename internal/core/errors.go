// Package core defines the fundamental types and errors for PantryKit.
package core

import "errors"

// Core errors that can occur across the system
var (
	// Storage errors
	ErrDatabaseNotFound = errors.New("database not found")
	ErrMigrationFailed  = errors.New("migration failed")
	ErrRecordNotFound   = errors.New("record not found")
	ErrDuplicateRecord  = errors.New("duplicate record")

	// Item errors
	ErrItemNotFound    = errors.New("item not found")
	ErrInsufficientQty = errors.New("insufficient quantity")

	// Shopping errors
	ErrEntryNotFound = errors.New("shopping entry not found")

	// Reminder errors
	ErrReminderNotFound = errors.New("reminder not found")

	// Voice errors
	ErrEmptyUtterance  = errors.New("empty utterance")
	ErrCommandRejected = errors.New("command confidence below execution threshold")

	// Validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingRequired = errors.New("missing required field")
)
