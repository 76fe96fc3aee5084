package compare

import "errors"

// Sentinel kinds for comparison errors.
var (
	// ErrPrecondition marks a comparator called outside its contract. It is a
	// caller bug, never a data condition.
	ErrPrecondition = errors.New("comparator precondition violated")
)
