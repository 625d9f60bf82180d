// Package window generates raised-cosine analysis windows for block spectral
// analysis.
package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
)

// String returns the lower-case window name.
func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "rectangular"
	case TypeHann:
		return "hann"
	case TypeHamming:
		return "hamming"
	case TypeBlackman:
		return "blackman"
	default:
		return "unknown"
	}
}

// ParseType maps a window name back to its Type.
func ParseType(name string) (Type, error) {
	for _, t := range []Type{TypeRectangular, TypeHann, TypeHamming, TypeBlackman} {
		if t.String() == name {
			return t, nil
		}
	}

	return 0, unknownType(name)
}

// Generalized cosine coefficients: w(x) = sum_k a_k cos(2*pi*k*x).
var (
	hannCoeffs     = []float64{0.5, -0.5}
	hammingCoeffs  = []float64{0.54, -0.46}
	blackmanCoeffs = []float64{0.42, -0.5, 0.08}
)

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	out := make([]float64, length)
	if err := GenerateInto(out, t, opts...); err != nil {
		return nil
	}

	return out
}

// GenerateInto fills dst with coefficients of the selected window.
func GenerateInto(dst []float64, t Type, opts ...Option) error {
	if err := checkLength(len(dst)); err != nil {
		return err
	}

	coeffs, ok := cosineTerms(t)
	if !ok {
		return unknownType(t.String())
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	for i := range dst {
		dst[i] = cosineFromCoeffs(samplePosition(i, len(dst), cfg.periodic), coeffs)
	}

	return nil
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	coeffs := Generate(t, len(buf), opts...)
	if len(coeffs) != len(buf) {
		return
	}

	vecmath.MulBlockInPlace(buf, coeffs)
}

// ApplyCoefficients writes samples*coeffs into dst without allocating.
func ApplyCoefficients(dst, samples, coeffs []float64) error {
	if err := checkSameLength(len(samples), len(coeffs)); err != nil {
		return err
	}
	if err := checkSameLength(len(dst), len(coeffs)); err != nil {
		return err
	}

	vecmath.MulBlock(dst, samples, coeffs)

	return nil
}

// CoherentGain returns the mean of the coefficients.
func CoherentGain(coeffs []float64) (float64, error) {
	if err := checkLength(len(coeffs)); err != nil {
		return 0, err
	}

	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}

	return sum / float64(len(coeffs)), nil
}

func cosineTerms(t Type) ([]float64, bool) {
	switch t {
	case TypeRectangular:
		return []float64{1}, true
	case TypeHann:
		return hannCoeffs, true
	case TypeHamming:
		return hammingCoeffs, true
	case TypeBlackman:
		return blackmanCoeffs, true
	default:
		return nil, false
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
