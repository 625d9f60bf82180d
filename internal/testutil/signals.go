// Package testutil holds deterministic signal generators and tolerance
// helpers shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// BlockSine returns n samples of a sine completing cycles periods over the
// block, i.e. amplitude*sin(2*pi*cycles*i/n). Its period is n/cycles samples.
func BlockSine(cycles, amplitude float64, n int) []float64 {
	out := make([]float64, n)
	step := 2 * math.Pi * cycles / float64(n)
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Sine returns a sine of freqHz sampled at sampleRate.
func Sine(freqHz, sampleRate, amplitude float64, n int) []float64 {
	return BlockSine(freqHz*float64(n)/sampleRate, amplitude, n)
}

// PulseTrain returns a decaying pulse every period samples, a crude voiced
// excitation with strong harmonics.
func PulseTrain(period int, amplitude float64, n int) []float64 {
	out := make([]float64, n)
	if period <= 0 {
		return out
	}
	for i := range out {
		k := float64(i % period)
		out[i] = amplitude * math.Exp(-k/8) * math.Cos(2*math.Pi*k/float64(period))
	}
	return out
}

// Noise returns uniform white noise in [-amplitude, amplitude) with a fixed seed.
func Noise(seed int64, amplitude float64, n int) []float64 {
	out := make([]float64, n)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Silence returns n zeros.
func Silence(n int) []float64 {
	return make([]float64, n)
}

// Concat joins blocks into one signal.
func Concat(blocks ...[]float64) []float64 {
	total := 0
	for _, b := range blocks {
		total += len(b)
	}
	out := make([]float64, 0, total)
	for _, b := range blocks {
		out = append(out, b...)
	}
	return out
}

// RMS returns the root mean square of x, or 0 for an empty slice.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}
