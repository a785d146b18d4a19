package chunker

import "errors"

// Common chunker errors
var (
	// ErrInvalidCapacity indicates the capacity is negative or max < desired
	ErrInvalidCapacity = errors.New("invalid chunk capacity")

	// ErrCapacityMaxBelowDesired indicates a capacity range with max < desired
	ErrCapacityMaxBelowDesired = errors.New("max capacity must be greater than or equal to desired capacity")

	// ErrInvalidOverlap indicates overlap value is invalid (<0)
	ErrInvalidOverlap = errors.New("overlap must be non-negative")

	// ErrOverlapTooLarge indicates overlap is >= the desired capacity
	ErrOverlapTooLarge = errors.New("overlap must be less than desired capacity")

	// ErrNilSizer indicates no sizer was configured
	ErrNilSizer = errors.New("sizer must not be nil")

	// ErrUnsupportedLanguage indicates the code chunker has no parser for
	// the requested language
	ErrUnsupportedLanguage = errors.New("unsupported language")
)
