package recipe

import "errors"

// Failure taxonomy shared by the recipe and favorites adapters. Read paths
// swallow these and degrade; write paths hand them back to the caller so the
// UI can show a message. Nothing is ever panicked past an adapter.
var (
	// ErrNotFound signals a lookup miss.
	ErrNotFound = errors.New("recipe not found")

	// ErrForbidden signals an attempt to delete a seed recipe. Deleting
	// another user's row does NOT produce it: the owner-scoped delete simply
	// affects zero rows and reports success.
	ErrForbidden = errors.New("forbidden")

	// ErrNotAuthenticated signals a write attempt with no signed-in user.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// StoreError wraps a remote-store failure (fetch, insert, delete) with a
// human-readable message suitable for display.
type StoreError struct {
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError builds a StoreError around an underlying cause. cause may be
// nil when the store misbehaved without returning an error (e.g. an insert
// that yielded no row).
func NewStoreError(msg string, cause error) *StoreError {
	return &StoreError{Message: msg, Err: cause}
}
