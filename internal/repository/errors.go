package repository

import "errors"

var (
	// ErrNotFound is returned when no record matches the given identifier.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateOrderID is returned when a delivery order's tracking id
	// already exists. The unique index is the source of truth; the
	// application-level pre-check is only a fast path.
	ErrDuplicateOrderID = errors.New("orderId already exists")
	// ErrDuplicateEmail is returned when a farmer registers with an email
	// that is already taken.
	ErrDuplicateEmail = errors.New("email already exists")
)
