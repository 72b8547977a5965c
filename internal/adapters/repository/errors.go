package repository

import "errors"

// Sentinel kinds for dataset load failures.
var (
	ErrDataFileMissing   = errors.New("data file missing or unreadable")
	ErrDataFileMalformed = errors.New("data file malformed")
)
