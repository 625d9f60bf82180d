package psola

import "math"

// Keyframe anchors output position Dst to a blend of the source epochs
// starting at Src1 and Src2, weighted by SrcRatio.
type Keyframe struct {
	Dst      int
	Src1     int
	Src2     int
	SrcRatio float64
}

// MaxKeyframes returns the grid capacity needed for blocks of n samples,
// periods of at least minPeriod and pitch ratios up to maxRatio.
func MaxKeyframes(n, minPeriod int, maxRatio float64) int {
	if n <= 0 || minPeriod <= 0 || !(maxRatio > 0) || math.IsInf(maxRatio, 0) {
		return 1
	}
	return int(math.Ceil(float64(n)*maxRatio/float64(minPeriod))) + 2
}

// BuildGrid appends the keyframes for a block of n samples with the given
// period and requested pitch ratio to dst[:0].
//
// The number of epochs is rounded to an integer, so the realized ratio
// returned as actual differs slightly from pitchRatio. ok is false when
// resynthesis is disabled for this block (no period, period longer than the
// block, or zero epochs); grid is then empty.
//
// Keyframe destinations are strictly increasing and the last one is n. When
// the period does not divide n the grid ends with the terminal keyframe
// {n, n, n, 0}; otherwise the last epoch itself sits at n.
func BuildGrid(dst []Keyframe, period int, pitchRatio float64, n int) (grid []Keyframe, actual float64, ok bool) {
	grid = dst[:0]
	if period <= 0 || n <= 0 || !(pitchRatio > 0) || math.IsInf(pitchRatio, 0) {
		return grid, 0, false
	}

	q := n / period
	r := n % period
	count := int(math.Round(math.Max(0, (float64(n)*pitchRatio-float64(r))/float64(period))))
	if q == 0 || count == 0 {
		return grid, 0, false
	}

	actual = float64(count*period+r) / float64(n)

	for i := 1; i <= count; i++ {
		frameIdx := 1.0
		if count != 1 {
			frameIdx = float64((i-1)*(q-1))/float64(count-1) + 1
		}

		frame := math.Floor(frameIdx)
		kf := Keyframe{
			Dst:  int(math.Floor(float64(i*period) / actual)),
			Src1: int(frame) * period,
		}

		if int(frame) == q {
			kf.Src2 = kf.Src1
		} else {
			kf.Src2 = kf.Src1 + period
			kf.SrcRatio = frameIdx - frame
		}

		grid = append(grid, kf)
	}

	// With r == 0 the last epoch already lands on n and closes the grid.
	if grid[len(grid)-1].Dst < n {
		grid = append(grid, Keyframe{Dst: n, Src1: n, Src2: n})
	}

	return grid, actual, true
}
