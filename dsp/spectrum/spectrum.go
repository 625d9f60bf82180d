package spectrum

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Magnitude returns |X[k]| for each complex spectrum bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re := make([]float64, len(in))
	im := make([]float64, len(in))
	split(in, re, im)
	vecmath.Magnitude(out, re, im)

	return out
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re := make([]float64, len(in))
	im := make([]float64, len(in))
	PowerInto(out, in, re, im)

	return out
}

// PowerInto computes |X[k]|^2 into dst using re and im as scratch.
//
// This is the allocation-free path for block processors. All four slices must
// have the same length; extra elements of the longer slices are ignored.
func PowerInto(dst []float64, in []complex128, re, im []float64) {
	n := min(len(dst), len(in), len(re), len(im))
	split(in[:n], re[:n], im[:n])
	vecmath.Power(dst[:n], re[:n], im[:n])
}

// BinFrequency returns the center frequency of bin k for a transform of
// length size at the given sample rate.
func BinFrequency(k, size int, sampleRate float64) float64 {
	if size <= 0 {
		return 0
	}

	return float64(k) * sampleRate / float64(size)
}

// FrequencyBin returns the bin index closest to freqHz.
func FrequencyBin(freqHz float64, size int, sampleRate float64) int {
	if sampleRate <= 0 || size <= 0 {
		return 0
	}

	return int(math.Round(freqHz * float64(size) / sampleRate))
}

func split(in []complex128, re, im []float64) {
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
}
