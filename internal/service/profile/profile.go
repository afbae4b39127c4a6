package profile

import (
	"context"
	"errors"
)

// ErrStore wraps every storage fault returned by a Store.
var ErrStore = errors.New("profile store failure")

// Profile is the contact record shown on the card. Every field is free
// text and may be empty.
type Profile struct {
	FirstName string
	LastName  string
	Company   string
	Phone     string
	Email     string
}

// Store persists the single profile record under a fixed key.
//
// Load reports found=false with a nil error when nothing was ever saved.
// Save replaces the stored record as a whole; atomicity is whatever the
// backend provides for a single write.
type Store interface {
	Load(ctx context.Context) (p Profile, found bool, err error)
	Save(ctx context.Context, p Profile) error
}

// storeError marks err as a storage fault while keeping it inspectable.
func storeError(op string, err error) error {
	return &opError{op: op, err: err}
}

type opError struct {
	op  string
	err error
}

func (e *opError) Error() string { return "profile " + e.op + ": " + e.err.Error() }

func (e *opError) Unwrap() []error { return []error{ErrStore, e.err} }

// categorizeError converts errors to log-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "deadline_exceeded"
	case errors.Is(err, errCorrupt):
		return "corrupt_record"
	default:
		return "internal_error"
	}
}
