package common

import "errors"

var (
	ErrEmptyInputSizes      = errors.New("input size set is empty")
	ErrNonPositiveInputSize = errors.New("input sizes must be strictly positive")
	ErrSizeMismatch         = errors.New("input sizes do not match the timing matrix rows")

	// ErrNonPositiveReference the median time of the first input size is not
	// positive, usually because the timer resolution is too coarse for the
	// number of inner invocations. Increase Number.
	ErrNonPositiveReference = errors.New("reference median time is not positive")

	ErrDegenerateFit = errors.New("candidate fit is degenerate")
	ErrNoUsableFit   = errors.New("no candidate produced a usable fit")

	ErrInvalidConfiguration = errors.New("invalid configuration")
)
