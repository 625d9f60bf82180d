package psola

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-psola/dsp/interp"
	"github.com/cwbudde/algo-psola/internal/testutil"
)

func TestSynthesizeUnityIsIdentity(t *testing.T) {
	for _, period := range []int{147, 200, 256, 410, 882} {
		in := testutil.Noise(int64(period), 0.7, 4096)
		grid, _, ok := BuildGrid(nil, period, 1, len(in))
		if !ok {
			t.Fatalf("period %d: grid disabled", period)
		}

		out := make([]float64, len(in))
		Synthesize(out, in, grid, 1, nil)
		testutil.RequireSliceNearlyEqual(t, out, in, 1e-12)
	}
}

func TestSynthesizeSilence(t *testing.T) {
	in := testutil.Silence(4096)
	out := testutil.Noise(1, 1, 4096)

	for _, ratios := range [][2]float64{{0.5, 0.5}, {1, 2}, {2, 1}, {1.5, 0.7}} {
		grid, _, ok := BuildGrid(nil, 300, ratios[0], len(in))
		if !ok {
			t.Fatalf("ratios %v: grid disabled", ratios)
		}
		Synthesize(out, in, grid, ratios[1], interp.SmoothStep)
		testutil.RequireSilent(t, out, 0)
	}
}

func TestSynthesizeStaysWithinInputRange(t *testing.T) {
	in := testutil.Noise(7, 0.9, 4096)
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range in {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	out := make([]float64, len(in))
	for _, formant := range []float64{0.5, 1, 2} {
		for _, ratio := range []float64{0.5, 0.8, 1.3, 2} {
			grid, _, _ := BuildGrid(nil, 333, ratio, len(in))
			Synthesize(out, in, grid, formant, nil)

			for i, v := range out {
				if v < lo-1e-12 || v > hi+1e-12 {
					t.Fatalf("formant %.1f ratio %.1f: out[%d] = %v outside [%v, %v]", formant, ratio, i, v, lo, hi)
				}
			}
		}
	}
}

func TestSynthesizeRaisesPitch(t *testing.T) {
	const period = 256
	in := testutil.BlockSine(4096/period, 0.5, 4096)

	grid, actual, ok := BuildGrid(nil, period, 2, len(in))
	if !ok || actual != 2 {
		t.Fatalf("BuildGrid() = ok %v actual %v", ok, actual)
	}

	out := make([]float64, len(in))
	Synthesize(out, in, grid, 1, nil)

	// Epochs land every period/2 samples.
	for _, kf := range grid {
		if kf.Dst%(period/2) != 0 {
			t.Fatalf("keyframe %+v not on the doubled-rate grid", kf)
		}
	}
	testutil.RequireFinite(t, out)
	if rms := testutil.RMS(out); rms < 0.1 {
		t.Fatalf("RMS(out) = %v, output collapsed", rms)
	}
}

func TestSynthesizeEmptyGridCopies(t *testing.T) {
	in := []float64{1, 2, 3, 4}
	out := make([]float64, 4)
	Synthesize(out, in, nil, 1.5, nil)
	testutil.RequireSliceNearlyEqual(t, out, in, 0)
}

func TestSampleAtClamps(t *testing.T) {
	in := []float64{1, 3, 5}

	tests := []struct {
		x    float64
		want float64
	}{
		{x: -10, want: 1},
		{x: 0, want: 1},
		{x: 0.5, want: 2},
		{x: 1, want: 3},
		{x: 2, want: 5},
		{x: 99.5, want: 5},
	}

	for _, tt := range tests {
		if got := sampleAt(in, tt.x, interp.RaisedCosine); math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("sampleAt(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestSynthesizeDoesNotAllocate(t *testing.T) {
	in := testutil.BlockSine(12, 0.5, 4096)
	out := make([]float64, len(in))
	grid, _, _ := BuildGrid(make([]Keyframe, 0, MaxKeyframes(4096, 147, 2)), 341, 1.2, len(in))

	allocs := testing.AllocsPerRun(5, func() {
		Synthesize(out, in, grid, 0.8, nil)
	})
	if allocs != 0 {
		t.Fatalf("Synthesize() allocated %.0f times per run", allocs)
	}
}
