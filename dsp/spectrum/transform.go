package spectrum

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// ErrLengthMismatch is returned when a buffer does not match the transform length.
var ErrLengthMismatch = errors.New("spectrum: buffer length does not match transform length")

// Transform is a fixed-length complex discrete Fourier transform.
//
// Forward computes X[k] = sum x[n] e^{-2*pi*i*k*n/M}. Inverse is scaled by 1/M,
// so Inverse(Forward(x)) == x. dst and src may alias.
type Transform interface {
	Len() int
	Forward(dst, src []complex128) error
	Inverse(dst, src []complex128) error
}

type fftTransform struct {
	size int
	plan *algofft.Plan[complex128]
}

// NewTransform creates an algo-fft backed transform of the given length.
func NewTransform(size int) (Transform, error) {
	if size <= 0 {
		return nil, fmt.Errorf("spectrum: transform length must be > 0: %d", size)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	return &fftTransform{size: size, plan: plan}, nil
}

func (t *fftTransform) Len() int { return t.size }

func (t *fftTransform) Forward(dst, src []complex128) error {
	if len(dst) != t.size || len(src) != t.size {
		return ErrLengthMismatch
	}

	if err := t.plan.Forward(dst, src); err != nil {
		return fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}

	return nil
}

func (t *fftTransform) Inverse(dst, src []complex128) error {
	if len(dst) != t.size || len(src) != t.size {
		return ErrLengthMismatch
	}

	if err := t.plan.Inverse(dst, src); err != nil {
		return fmt.Errorf("spectrum: inverse FFT failed: %w", err)
	}

	return nil
}

// NextPowerOfTwo returns the smallest power of two >= n (1 for n <= 1).
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
