package psola

import (
	"math"

	"github.com/cwbudde/algo-psola/dsp/interp"
)

// Synthesize renders grid over in into out at the given formant ratio.
//
// Each segment between consecutive keyframes blends a forward read starting
// at the previous keyframe's sources with a backward read ending at the
// current keyframe's sources, using ease for every blend. The implicit first
// keyframe is {0, 0, 0, 0}. Reads outside the block clamp to its end samples.
//
// An empty grid copies in to out. A nil ease selects interp.RaisedCosine.
// Synthesize does not allocate.
func Synthesize(out, in []float64, grid []Keyframe, formantRatio float64, ease interp.Ease) {
	if len(grid) == 0 || len(in) == 0 {
		copy(out, in)
		return
	}

	if ease == nil {
		ease = interp.RaisedCosine
	}

	var last Keyframe
	for _, kf := range grid {
		end := min(kf.Dst, len(out))
		span := float64(kf.Dst - last.Dst)

		for i := last.Dst; i < end; i++ {
			k := float64(i - last.Dst)
			back := float64(kf.Dst - i)

			p1 := interp.EaseLerp(ease,
				sampleAt(in, float64(last.Src1)+k*formantRatio, ease),
				sampleAt(in, float64(last.Src2)+k*formantRatio, ease),
				last.SrcRatio)
			p2 := interp.EaseLerp(ease,
				sampleAt(in, float64(kf.Src1)-back*formantRatio, ease),
				sampleAt(in, float64(kf.Src2)-back*formantRatio, ease),
				kf.SrcRatio)

			out[i] = interp.EaseLerp(ease, p1, p2, k/span)
		}

		last = kf
	}
}

// sampleAt reads in at fractional position x, clamping outside [0, len-1].
func sampleAt(in []float64, x float64, ease interp.Ease) float64 {
	if x < 0 {
		return in[0]
	}

	last := len(in) - 1
	if x >= float64(last) {
		return in[last]
	}

	idx := math.Floor(x)
	i := int(idx)

	return interp.EaseLerp(ease, in[i], in[i+1], x-idx)
}
