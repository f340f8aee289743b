package tasting

import (
	"errors"
	"fmt"
)

// Sentinel kinds for rubric validation errors. All wrap ErrValidation
// so callers can classify with a single errors.Is check.
var (
	ErrValidation = errors.New("validation failed")

	ErrMissingJudge    = fmt.Errorf("%w: missing judge name", ErrValidation)
	ErrUnknownSample   = fmt.Errorf("%w: unknown sample", ErrValidation)
	ErrUnknownCategory = fmt.Errorf("%w: unknown category", ErrValidation)
	ErrValueOutOfRange = fmt.Errorf("%w: value out of range", ErrValidation)
	ErrIncompleteSheet = fmt.Errorf("%w: incomplete sheet", ErrValidation)
	ErrDuplicateCell   = fmt.Errorf("%w: duplicate cell", ErrValidation)
)
