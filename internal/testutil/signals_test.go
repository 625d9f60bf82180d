package testutil

import (
	"math"
	"testing"
)

func TestBlockSinePeriod(t *testing.T) {
	s := BlockSine(8, 1, 256)
	if len(s) != 256 {
		t.Fatalf("len = %d, want 256", len(s))
	}
	// Period is 32 samples.
	for i := 0; i+32 < len(s); i++ {
		if math.Abs(s[i]-s[i+32]) > 1e-12 {
			t.Fatalf("s[%d]=%v s[%d]=%v differ", i, s[i], i+32, s[i+32])
		}
	}
}

func TestSineMatchesBlockSine(t *testing.T) {
	a := Sine(441, 44100, 0.5, 100)
	b := BlockSine(1, 0.5, 100)
	RequireSliceNearlyEqual(t, a, b, 1e-12)
}

func TestNoiseReproducible(t *testing.T) {
	a := Noise(42, 1, 64)
	b := Noise(42, 1, 64)
	c := Noise(43, 1, 64)
	RequireSliceNearlyEqual(t, a, b, 0)
	if d, _ := MaxAbsDiff(a, c); d == 0 {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestPulseTrainRepeats(t *testing.T) {
	s := PulseTrain(100, 1, 400)
	if s[0] != 1 || s[100] != 1 || s[300] != 1 {
		t.Fatalf("pulse heads = %v %v %v, want 1", s[0], s[100], s[300])
	}
	if z := PulseTrain(0, 1, 4); RMS(z) != 0 {
		t.Fatal("non-positive period must yield silence")
	}
}

func TestRMS(t *testing.T) {
	if got := RMS([]float64{3, -3, 3, -3}); got != 3 {
		t.Fatalf("RMS = %v, want 3", got)
	}
	if got := RMS(BlockSine(4, 1, 1024)); math.Abs(got-math.Sqrt2/2) > 1e-9 {
		t.Fatalf("sine RMS = %v, want %v", got, math.Sqrt2/2)
	}
	if RMS(nil) != 0 {
		t.Fatal("RMS(nil) should be 0")
	}
}

func TestConcat(t *testing.T) {
	got := Concat([]float64{1}, nil, []float64{2, 3})
	RequireSliceNearlyEqual(t, got, []float64{1, 2, 3}, 0)
	RequireSilent(t, Silence(8), 0)
}
