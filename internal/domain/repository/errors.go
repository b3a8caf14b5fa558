package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness violation (duplicate live email,
	// duplicate (user, provider) pair, duplicate temp token).
	ErrConflict = errors.New("conflict")

	// ErrInvalidState indicates a conditional status transition found the
	// record in a different status than expected.
	ErrInvalidState = errors.New("invalid state")
)

// IsNotFound reports whether err is ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict reports whether err is ErrConflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsInvalidState reports whether err is ErrInvalidState.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}
