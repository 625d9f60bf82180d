package window

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownType is returned for window types outside the supported set.
	ErrUnknownType = errors.New("window: unknown type")
	// ErrInvalidLength is returned for empty or mismatched buffers.
	ErrInvalidLength = errors.New("window: invalid length")
)

func checkLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, size)
	}
	return nil
}

func checkSameLength(samples, coeffs int) error {
	if samples != coeffs {
		return fmt.Errorf("%w: %d samples, %d coefficients", ErrInvalidLength, samples, coeffs)
	}
	return nil
}

func unknownType(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownType, name)
}
