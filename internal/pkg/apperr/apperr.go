package apperr

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is a generic sentinel for capability check failures.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidTimeFormat marks a malformed HH:MM:SS pose time.
	ErrInvalidTimeFormat = errors.New("invalid time format")
	// ErrInvalidSelection marks a learner choosing an empty answer slot.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrBrokenRedirect marks an answer edge whose target video no longer
	// exists. Playback recovers from this locally; it is returned only
	// under the strict resolution policy.
	ErrBrokenRedirect = errors.New("broken redirect")
)
