package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrNegativeLength is returned when a caller requests an identifier with
	// a negative random-segment length. A zero length is legal and produces
	// an identifier consisting of the fixed parts only.
	ErrNegativeLength = errors.New("identifier segment length cannot be negative")
)
