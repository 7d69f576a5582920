// Package apperror defines the error kinds shared by every domain package.
//
// Domain errors wrap exactly one kind so callers can classify them with
// errors.Is without knowing the concrete domain sentinel:
//
//	var ErrOpenPeriodExists = fmt.Errorf("%w: company already has an open budget period", apperror.ErrConflict)
//
// Input validation failures are not a kind here; they are returned as
// validator.ValidationErrors.
package apperror

import "errors"

var (
	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrPrecondition blocks a write because a required period is missing.
	ErrPrecondition = errors.New("precondition failed")
	// ErrInvalidState indicates an operation against an entity in the wrong lifecycle state.
	ErrInvalidState = errors.New("invalid state")
	// ErrConflict indicates a uniqueness violation detected by the storage layer.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized indicates the request carries no usable identity.
	ErrUnauthorized = errors.New("unauthorized")
)

// Kind returns the kind wrapped by err, or nil when err carries none.
func Kind(err error) error {
	for _, kind := range []error{ErrNotFound, ErrPrecondition, ErrInvalidState, ErrConflict, ErrUnauthorized} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
