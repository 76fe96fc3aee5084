package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrTooManyAthletes = errors.New("too many athletes")
)
