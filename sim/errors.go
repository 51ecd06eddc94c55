package sim

import "errors"

// Error kinds returned by the models. Wrap sites use fmt.Errorf with %w so
// callers can classify with errors.Is while still getting a descriptive
// message.
var (
	// ErrInvalidInput reports malformed coordinates, non-positive rates, or
	// physical constants outside their valid range. All models fail fast on
	// it; nothing is clamped silently.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnreachable reports that the visibility model found zero coverage
	// for a requested link type over the sampled horizon.
	ErrUnreachable = errors.New("unreachable")
)
