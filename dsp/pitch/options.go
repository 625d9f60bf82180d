package pitch

import (
	"github.com/cwbudde/algo-psola/dsp/core"
	"github.com/cwbudde/algo-psola/dsp/window"
)

const (
	// DefaultCutoffHz is the band limit applied to the power spectrum.
	DefaultCutoffHz = 800.0
	// DefaultMinHz is the lowest detectable fundamental.
	DefaultMinHz = 50.0
	// DefaultMaxHz is the highest detectable fundamental.
	DefaultMaxHz = 300.0
	// DefaultPeakThreshold is the fraction of the strongest peak a candidate must reach.
	DefaultPeakThreshold = 0.9
)

// EstimatorConfig holds the detection policy of an Estimator.
type EstimatorConfig struct {
	SampleRate float64
	BlockSize  int

	// Window is applied before the transform. Generated in periodic form.
	Window window.Type
	// CutoffHz keeps only bins below this frequency (DC excluded). 0 disables.
	CutoffHz float64
	// MinHz and MaxHz bound the lag search window.
	MinHz float64
	MaxHz float64
	// PeakThreshold is the fraction of the global maximum used to pick the first peak.
	PeakThreshold float64
	// Continuity reuses the previous estimate when no peak qualifies.
	Continuity bool
	// ZeroPadding pads the transform to avoid circular autocorrelation wraparound.
	ZeroPadding bool
}

// EstimatorOption mutates an EstimatorConfig.
type EstimatorOption func(*EstimatorConfig)

// DefaultEstimatorConfig returns the detection policy for sampleRate.
func DefaultEstimatorConfig(sampleRate float64) EstimatorConfig {
	return EstimatorConfig{
		SampleRate:    sampleRate,
		BlockSize:     core.DefaultBlockSize,
		Window:        window.TypeHann,
		CutoffHz:      DefaultCutoffHz,
		MinHz:         DefaultMinHz,
		MaxHz:         DefaultMaxHz,
		PeakThreshold: DefaultPeakThreshold,
		Continuity:    true,
		ZeroPadding:   true,
	}
}

// WithBlockSize sets the analysis block length.
func WithBlockSize(n int) EstimatorOption {
	return func(cfg *EstimatorConfig) {
		cfg.BlockSize = n
	}
}

// WithWindow selects the analysis window.
func WithWindow(t window.Type) EstimatorOption {
	return func(cfg *EstimatorConfig) {
		cfg.Window = t
	}
}

// WithCutoff sets the spectral band limit in Hz. Zero disables band limiting.
func WithCutoff(hz float64) EstimatorOption {
	return func(cfg *EstimatorConfig) {
		cfg.CutoffHz = hz
	}
}

// WithFrequencyRange sets the detectable fundamental range in Hz.
func WithFrequencyRange(minHz, maxHz float64) EstimatorOption {
	return func(cfg *EstimatorConfig) {
		cfg.MinHz = minHz
		cfg.MaxHz = maxHz
	}
}

// WithPeakThreshold sets the fraction of the global maximum a peak must reach.
func WithPeakThreshold(v float64) EstimatorOption {
	return func(cfg *EstimatorConfig) {
		cfg.PeakThreshold = v
	}
}

// WithContinuity enables or disables reuse of the previous estimate.
func WithContinuity(enabled bool) EstimatorOption {
	return func(cfg *EstimatorConfig) {
		cfg.Continuity = enabled
	}
}

// WithZeroPadding enables or disables zero padding of the transform.
func WithZeroPadding(enabled bool) EstimatorOption {
	return func(cfg *EstimatorConfig) {
		cfg.ZeroPadding = enabled
	}
}

// ApplyEstimatorOptions applies opts to the defaults for sampleRate.
func ApplyEstimatorOptions(sampleRate float64, opts ...EstimatorOption) EstimatorConfig {
	cfg := DefaultEstimatorConfig(sampleRate)
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
