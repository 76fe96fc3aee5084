package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrUnknownMetric = errors.New("unknown ranking metric")
)
