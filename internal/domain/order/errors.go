package order

import "errors"

// Sentinel kinds for ordering errors.
var (
	ErrMetricNotOrderable = errors.New("metric has no results order")
	ErrUnknownKind        = errors.New("unknown order kind")
)
