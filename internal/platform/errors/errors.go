package apperrors

import "errors"

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrNotFound         = errors.New("not found")
	ErrNotActive        = errors.New("no active measurement run")
	ErrRunActive        = errors.New("measurement run already active")
	ErrNoResults        = errors.New("no recorded results")

	// ErrTeardownPartial reports that a run reached its terminal state but
	// one or more teardown steps failed along the way.
	ErrTeardownPartial = errors.New("teardown finished with failures")
)
