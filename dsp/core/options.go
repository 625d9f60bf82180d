package core

import "fmt"

// DefaultBlockSize is the analysis block length used by the PSOLA engine.
const DefaultBlockSize = 4096

// ProcessorConfig holds the settings every fixed-block processor validates
// before allocating its buffers.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
}

// Validate reports whether cfg can drive a fixed-block processor.
// The block size must be a power of two of at least MinBlockSize.
func (cfg ProcessorConfig) Validate() error {
	if !IsFinitePositive(cfg.SampleRate) {
		return fmt.Errorf("%w: %f", ErrInvalidSampleRate, cfg.SampleRate)
	}
	if cfg.BlockSize < MinBlockSize || !IsPowerOfTwo(cfg.BlockSize) {
		return fmt.Errorf("%w: %d", ErrInvalidBlockSize, cfg.BlockSize)
	}
	return nil
}
