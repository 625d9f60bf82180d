package core

import "errors"

// MinBlockSize is the smallest block length accepted by ProcessorConfig.Validate.
const MinBlockSize = 64

var (
	// ErrInvalidSampleRate is returned for non-positive or non-finite sample rates.
	ErrInvalidSampleRate = errors.New("sample rate must be positive and finite")
	// ErrInvalidBlockSize is returned for block sizes that are not a power of two >= MinBlockSize.
	ErrInvalidBlockSize = errors.New("block size must be a power of two >= 64")
)
