package hqr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownMode indicates a dimension selector outside {4D, 11D}.
	ErrUnknownMode = errors.New("hqr: unknown dimension mode")

	// ErrGeneration indicates sample generation failed unexpectedly.
	ErrGeneration = errors.New("hqr: sample generation failed")
)

// GenerationError wraps a generation failure with the mode being generated.
type GenerationError struct {
	Mode    DimensionMode
	Wrapped error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s: %v", e.Mode, e.Wrapped)
}

func (e *GenerationError) Unwrap() []error {
	return []error{ErrGeneration, e.Wrapped}
}
