package spectrum

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-psola/internal/testutil"
)

func TestMagnitudePower(t *testing.T) {
	bins := []complex128{3 + 4i, -1 - 1i, 0}

	mag := Magnitude(bins)
	if len(mag) != len(bins) {
		t.Fatalf("Magnitude length mismatch: got=%d want=%d", len(mag), len(bins))
	}

	if math.Abs(mag[0]-5) > 1e-12 {
		t.Fatalf("Magnitude[0]=%f want=5", mag[0])
	}

	pow := Power(bins)
	if math.Abs(pow[0]-25) > 1e-12 || math.Abs(pow[1]-2) > 1e-12 || pow[2] != 0 {
		t.Fatalf("Power=%v want [25 2 0]", pow)
	}

	if Magnitude(nil) != nil || Power(nil) != nil {
		t.Fatal("expected nil for empty input")
	}
}

func TestPowerIntoUsesScratch(t *testing.T) {
	bins := []complex128{1 + 1i, 2, 0 - 3i}
	dst := make([]float64, 3)
	re := make([]float64, 3)
	im := make([]float64, 3)

	PowerInto(dst, bins, re, im)

	testutil.RequireSliceNearlyEqual(t, dst, []float64{2, 4, 9}, 1e-12)
}

func TestTransformRoundTrip(t *testing.T) {
	const n = 256

	tr, err := NewTransform(n)
	if err != nil {
		t.Fatalf("NewTransform() error = %v", err)
	}
	if tr.Len() != n {
		t.Fatalf("Len()=%d want %d", tr.Len(), n)
	}

	noise := testutil.Noise(7, 1, n)
	x := make([]complex128, n)
	for i, v := range noise {
		x[i] = complex(v, 0)
	}

	freq := make([]complex128, n)
	if err := tr.Forward(freq, x); err != nil {
		t.Fatalf("Forward() error = %v", err)
	}

	back := make([]complex128, n)
	if err := tr.Inverse(back, freq); err != nil {
		t.Fatalf("Inverse() error = %v", err)
	}

	for i := range x {
		if cmplx.Abs(back[i]-x[i]) > 1e-9 {
			t.Fatalf("round trip mismatch at %d: got %v want %v", i, back[i], x[i])
		}
	}
}

func TestTransformImpulseIsFlat(t *testing.T) {
	tr, err := NewTransform(64)
	if err != nil {
		t.Fatalf("NewTransform() error = %v", err)
	}

	x := make([]complex128, 64)
	x[0] = 1

	if err := tr.Forward(x, x); err != nil {
		t.Fatalf("Forward() error = %v", err)
	}

	for k, v := range x {
		if cmplx.Abs(v-1) > 1e-12 {
			t.Fatalf("bin %d = %v, want 1", k, v)
		}
	}
}

func TestTransformRejectsWrongLength(t *testing.T) {
	tr, err := NewTransform(32)
	if err != nil {
		t.Fatalf("NewTransform() error = %v", err)
	}

	if err := tr.Forward(make([]complex128, 16), make([]complex128, 32)); err != ErrLengthMismatch {
		t.Fatalf("Forward() error = %v, want %v", err, ErrLengthMismatch)
	}

	if _, err := NewTransform(0); err == nil {
		t.Fatal("expected error for zero length")
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := map[int]int{0: 1, 1: 1, 3: 4, 4096: 4096, 6144: 8192}
	for in, want := range tests {
		if got := NextPowerOfTwo(in); got != want {
			t.Fatalf("NextPowerOfTwo(%d)=%d want %d", in, got, want)
		}
	}
}

func TestFrequencyBin(t *testing.T) {
	if got := FrequencyBin(800, 8192, 44100); got != 149 {
		t.Fatalf("FrequencyBin(800)=%d want 149", got)
	}
	if got := BinFrequency(149, 8192, 44100); math.Abs(got-802.11) > 0.01 {
		t.Fatalf("BinFrequency(149)=%f", got)
	}
}
