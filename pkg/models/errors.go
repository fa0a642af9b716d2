package models

import "errors"

// The three terminal error kinds of a projection run. There is no partial
// output: callers either get a complete ProjectionRow sequence or one of
// these wrapped with the offending entity/year.
var (
	// ErrUnclassifiableInput marks a GDP value that is not a finite real.
	ErrUnclassifiableInput = errors.New("unclassifiable input")

	// ErrMissingSlopeForGroup marks an income group reached by the forecast
	// horizon that has no fitted slope.
	ErrMissingSlopeForGroup = errors.New("missing slope for income group")

	// ErrUnorderedInput marks a year sequence that cannot be put in strict
	// ascending order (duplicate years, or rows out of order where sorting
	// is not allowed).
	ErrUnorderedInput = errors.New("input years not in strict ascending order")
)
