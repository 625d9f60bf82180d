package stream

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-psola/dsp/buffer"
)

// ErrLengthMismatch is returned by Process when dst and src differ in length.
var ErrLengthMismatch = errors.New("stream: dst and src must have the same length")

// BlockFunc transforms one full block from src into dst. Both slices have the
// adapter's block length and do not alias.
type BlockFunc func(dst, src []float64)

// AdapterConfig configures a FrameAdapter.
type AdapterConfig struct {
	// Seed is the value emitted during the first block of latency.
	Seed float64
}

// AdapterOption mutates an AdapterConfig.
type AdapterOption func(*AdapterConfig)

// WithSeed sets the value that pre-fills the output backlog.
func WithSeed(v float64) AdapterOption {
	return func(cfg *AdapterConfig) {
		cfg.Seed = v
	}
}

// FrameAdapter turns a block function into a sample-stream processor with a
// latency of one block. It is not safe for concurrent use.
type FrameAdapter struct {
	n   int
	fn  BlockFunc
	cfg AdapterConfig

	input   *buffer.Ring
	backlog *buffer.Ring

	block  []float64
	result []float64
	blocks uint64
}

// NewFrameAdapter creates an adapter running fn on blocks of blockSize samples.
func NewFrameAdapter(blockSize int, fn BlockFunc, opts ...AdapterOption) (*FrameAdapter, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("stream: block size must be > 0: %d", blockSize)
	}
	if fn == nil {
		return nil, errors.New("stream: block function must not be nil")
	}

	var cfg AdapterConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	a := &FrameAdapter{
		n:       blockSize,
		fn:      fn,
		cfg:     cfg,
		input:   buffer.NewRing(blockSize),
		backlog: buffer.NewRing(blockSize),
		block:   make([]float64, blockSize),
		result:  make([]float64, blockSize),
	}
	a.Reset()

	return a, nil
}

// BlockSize returns the block length handed to the block function.
func (a *FrameAdapter) BlockSize() int { return a.n }

// Latency returns the input-to-output delay in samples.
func (a *FrameAdapter) Latency() int { return a.n }

// Blocks returns the number of blocks processed since the last Reset.
func (a *FrameAdapter) Blocks() uint64 { return a.blocks }

// Reset drops buffered input and refills the backlog with the seed value.
func (a *FrameAdapter) Reset() {
	a.input.Reset()
	a.backlog.Fill(a.cfg.Seed)
	a.blocks = 0
}

// Process consumes every sample of src and writes the same number of output
// samples to dst. dst and src may be the same slice. It does not allocate.
func (a *FrameAdapter) Process(dst, src []float64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(dst), len(src))
	}

	for len(src) > 0 {
		if a.input.Full() {
			a.runBlock()
		}

		// The backlog always holds exactly as many samples as the input has room for.
		k := a.input.Write(src)
		a.backlog.Read(dst[:k])

		src = src[k:]
		dst = dst[k:]
	}

	return nil
}

// Push processes src and returns a newly allocated output slice.
func (a *FrameAdapter) Push(src []float64) []float64 {
	out := make([]float64, len(src))
	_ = a.Process(out, src)
	return out
}

func (a *FrameAdapter) runBlock() {
	a.input.Read(a.block)
	a.fn(a.result, a.block)
	a.backlog.Assign(a.result)
	a.blocks++
}
