package pitch

import detect "github.com/cwbudde/algo-psola/dsp/pitch"

// BlockInfo describes the processing of one block.
type BlockInfo struct {
	// Index counts blocks since construction or the last Reset.
	Index uint64
	// Estimate is the period used for the block.
	Estimate detect.Estimate
	// Carried is set when Estimate was reused from the previous block.
	Carried bool
	// Enabled is false when the block was passed through unchanged.
	Enabled bool
	// Keyframes is the number of grid keyframes including the terminal one.
	Keyframes int
	// Ratio is the realized pitch ratio, 1 for passthrough blocks.
	Ratio float64
}

// BlockObserver receives per-block statistics. It runs on the processing path
// and must not block.
type BlockObserver func(BlockInfo)
