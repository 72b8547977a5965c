package model

import "errors"

// Sentinel kinds for model validation errors.
var (
	ErrInvalidPerformance = errors.New("invalid performance")
)
