package interp

import (
	"fmt"
	"math"
)

// Ease maps a blend position in [0,1] to a blend weight in [0,1].
type Ease func(x float64) float64

// Linear2 interpolates between x0 and x1 at frac in [0,1].
func Linear2(frac, x0, x1 float64) float64 {
	return x0 + (x1-x0)*frac
}

// RaisedCosine is the half-period cosine ease (1 - cos(pi*x)) / 2.
func RaisedCosine(x float64) float64 {
	return (1 - math.Cos(math.Pi*x)) / 2
}

// SmoothStep is the piecewise-cubic ease 3x^2 - 2x^3, clamped outside [0,1].
func SmoothStep(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	return x * x * (3 - 2*x)
}

// EaseLerp blends x0 and x1 with weight ease(ratio).
func EaseLerp(ease Ease, x0, x1, ratio float64) float64 {
	return Linear2(ease(ratio), x0, x1)
}

// Easing kernel names accepted by ParseEase.
const (
	EaseRaisedCosine = "raised-cosine"
	EaseSmoothStep   = "smoothstep"
)

// ParseEase returns the kernel registered under name.
func ParseEase(name string) (Ease, error) {
	switch name {
	case EaseRaisedCosine, "":
		return RaisedCosine, nil
	case EaseSmoothStep, "cubic":
		return SmoothStep, nil
	default:
		return nil, fmt.Errorf("interp: unknown easing kernel %q", name)
	}
}
