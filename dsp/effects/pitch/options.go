package pitch

import (
	"github.com/cwbudde/algo-psola/dsp/core"
	"github.com/cwbudde/algo-psola/dsp/interp"
	detect "github.com/cwbudde/algo-psola/dsp/pitch"
)

// Config holds construction-time policy for a PSOLAShifter.
type Config struct {
	BlockSize int
	Ease      interp.Ease
	Estimator []detect.EstimatorOption
	Observer  BlockObserver
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the engine defaults: 4096-sample blocks, raised-cosine
// blending and the default estimator policy.
func DefaultConfig() Config {
	return Config{
		BlockSize: core.DefaultBlockSize,
		Ease:      interp.RaisedCosine,
	}
}

// WithBlockSize sets the analysis and synthesis block length.
func WithBlockSize(n int) Option {
	return func(cfg *Config) {
		cfg.BlockSize = n
	}
}

// WithEase selects the blending kernel. Nil keeps the default.
func WithEase(ease interp.Ease) Option {
	return func(cfg *Config) {
		if ease != nil {
			cfg.Ease = ease
		}
	}
}

// WithEstimatorOptions appends period estimator options.
func WithEstimatorOptions(opts ...detect.EstimatorOption) Option {
	return func(cfg *Config) {
		cfg.Estimator = append(cfg.Estimator, opts...)
	}
}

// WithBlockObserver registers fn to receive a BlockInfo after every block.
func WithBlockObserver(fn BlockObserver) Option {
	return func(cfg *Config) {
		cfg.Observer = fn
	}
}

func applyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
