package ledger

import "errors"

var (
	// ErrInvalidConfiguration is returned when the participant count is out of range.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrInvalidItem is returned for an empty sharer set, a negative or fractional
	// price, or a sharer that is not on the roster.
	ErrInvalidItem = errors.New("invalid item")
	// ErrNotFound is returned when a participant or item id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState is returned when an operation is not legal in the current session state.
	ErrInvalidState = errors.New("operation not allowed in current state")
)
