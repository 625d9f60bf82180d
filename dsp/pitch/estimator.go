package pitch

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-psola/dsp/core"
	"github.com/cwbudde/algo-psola/dsp/spectrum"
	"github.com/cwbudde/algo-psola/dsp/window"
)

// minNormal is the smallest positive normal float64. Energies below it are
// treated as silence.
const minNormal = 0x1p-1022

var (
	// ErrInvalidFrequencyRange is returned when MinHz/MaxHz do not form a positive range.
	ErrInvalidFrequencyRange = errors.New("pitch: frequency range must satisfy 0 < min < max")
	// ErrInvalidPeakThreshold is returned for thresholds outside (0, 1].
	ErrInvalidPeakThreshold = errors.New("pitch: peak threshold must be in (0, 1]")
	// ErrInvalidCutoff is returned for negative or non-finite cutoffs and for
	// cutoffs at or above the Nyquist frequency.
	ErrInvalidCutoff = errors.New("pitch: cutoff must be >= 0 and below Nyquist")
)

// Validate reports whether cfg describes a usable estimator.
func (cfg EstimatorConfig) Validate() error {
	pc := core.ProcessorConfig{SampleRate: cfg.SampleRate, BlockSize: cfg.BlockSize}
	if err := pc.Validate(); err != nil {
		return fmt.Errorf("pitch: %w", err)
	}

	if !core.IsFinitePositive(cfg.MinHz) || !core.IsFinitePositive(cfg.MaxHz) || cfg.MinHz >= cfg.MaxHz {
		return fmt.Errorf("%w: [%g, %g]", ErrInvalidFrequencyRange, cfg.MinHz, cfg.MaxHz)
	}

	if math.IsNaN(cfg.PeakThreshold) || cfg.PeakThreshold <= 0 || cfg.PeakThreshold > 1 {
		return fmt.Errorf("%w: %g", ErrInvalidPeakThreshold, cfg.PeakThreshold)
	}

	if math.IsNaN(cfg.CutoffHz) || cfg.CutoffHz < 0 || cfg.CutoffHz >= cfg.SampleRate/2 {
		return fmt.Errorf("%w: %g", ErrInvalidCutoff, cfg.CutoffHz)
	}

	if _, err := window.ParseType(cfg.Window.String()); err != nil {
		return fmt.Errorf("pitch: %w", err)
	}

	return nil
}

// Estimator detects the fundamental period of fixed-length blocks.
type Estimator struct {
	cfg EstimatorConfig
	n   int

	fft    spectrum.Transform
	cutBin int // highest kept bin, 0 when band limiting is off

	minLag int
	maxLag int

	coeffs   []float64
	windowed []float64
	spec     []complex128
	power    []float64
	re       []float64
	im       []float64
	nsdf     []float64
}

// NewEstimator creates an estimator for sampleRate. All scratch memory is
// allocated here.
func NewEstimator(sampleRate float64, opts ...EstimatorOption) (*Estimator, error) {
	cfg := ApplyEstimatorOptions(sampleRate, opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := cfg.BlockSize
	size := n
	if cfg.ZeroPadding {
		size = spectrum.NextPowerOfTwo(n + n/2)
	}

	fft, err := spectrum.NewTransform(size)
	if err != nil {
		return nil, fmt.Errorf("pitch: %w", err)
	}

	coeffs := make([]float64, n)
	if err := window.GenerateInto(coeffs, cfg.Window, window.WithPeriodic()); err != nil {
		return nil, fmt.Errorf("pitch: %w", err)
	}

	e := &Estimator{
		cfg:      cfg,
		n:        n,
		fft:      fft,
		coeffs:   coeffs,
		windowed: make([]float64, n),
		spec:     make([]complex128, size),
		power:    make([]float64, size),
		re:       make([]float64, size),
		im:       make([]float64, size),
		nsdf:     make([]float64, n/2),
	}

	if cfg.CutoffHz > 0 {
		e.cutBin = spectrum.FrequencyBin(cfg.CutoffHz, size, sampleRate)
	}

	e.minLag = clampLag(int(math.Round(sampleRate/cfg.MaxHz)), n)
	e.maxLag = clampLag(int(math.Round(sampleRate/cfg.MinHz)), n)

	return e, nil
}

func clampLag(lag, n int) int {
	return max(1, min(lag, n/2-2))
}

// Config returns the effective configuration.
func (e *Estimator) Config() EstimatorConfig { return e.cfg }

// BlockSize returns the analysis block length N.
func (e *Estimator) BlockSize() int { return e.n }

// TransformSize returns the transform length used for the NSDF.
func (e *Estimator) TransformSize() int { return e.fft.Len() }

// LagRange returns the half-open lag search window [minLag, maxLag) after
// clamping.
func (e *Estimator) LagRange() (minLag, maxLag int) { return e.minLag, e.maxLag }

// NSDF returns the normalized square difference function of the last block
// for lags 0..N/2-1. The slice is owned by the estimator and is overwritten by
// the next call to Estimate.
func (e *Estimator) NSDF() []float64 { return e.nsdf }

// Estimate detects the period of block. When no peak qualifies it returns
// previous if continuity is enabled, otherwise Absent. Blocks whose length is
// not BlockSize are treated as undetectable.
func (e *Estimator) Estimate(block []float64, previous Estimate) Estimate {
	return e.Resolve(e.Detect(block), previous)
}

// Detect runs period detection on block without continuity fallback.
func (e *Estimator) Detect(block []float64) Estimate {
	if len(block) != e.n || !e.computeNSDF(block) {
		clear(e.nsdf)
		return Absent()
	}

	return Detected(e.pickPeak())
}

// Resolve applies the continuity policy to a fresh detection.
func (e *Estimator) Resolve(fresh, previous Estimate) Estimate {
	if fresh.Valid() || !e.cfg.Continuity {
		return fresh
	}
	return previous
}

func (e *Estimator) computeNSDF(block []float64) bool {
	if err := window.ApplyCoefficients(e.windowed, block, e.coeffs); err != nil {
		return false
	}

	clear(e.spec)
	for i, v := range e.windowed {
		e.spec[i] = complex(v, 0)
	}

	if err := e.fft.Forward(e.spec, e.spec); err != nil {
		return false
	}

	spectrum.PowerInto(e.power, e.spec, e.re, e.im)
	e.bandLimit()

	for k, p := range e.power {
		e.spec[k] = complex(p, 0)
	}

	if err := e.fft.Inverse(e.spec, e.spec); err != nil {
		return false
	}

	// m(tau) = sum_{k<N-tau} x[k]^2 + x[k+tau]^2, accumulated from the tail.
	x := e.windowed
	m := 0.0
	for tau := e.n - 1; tau >= 0; tau-- {
		m += x[e.n-1-tau]*x[e.n-1-tau] + x[tau]*x[tau]
		if tau >= len(e.nsdf) {
			continue
		}
		if m < minNormal {
			e.nsdf[tau] = 0
			continue
		}
		e.nsdf[tau] = 2 * real(e.spec[tau]) / m
	}

	return true
}

// bandLimit keeps bins 1..cutBin and their mirrors, dropping DC.
func (e *Estimator) bandLimit() {
	if e.cfg.CutoffHz <= 0 {
		return
	}

	size := len(e.power)
	e.power[0] = 0
	for k := e.cutBin + 1; k < size-e.cutBin; k++ {
		e.power[k] = 0
	}
}

// pickPeak returns the first strict local maximum reaching the threshold
// fraction of the strongest one, or 0 when no positive maximum exists.
func (e *Estimator) pickPeak() int {
	best := 0.0
	for tau := e.minLag; tau < e.maxLag; tau++ {
		if e.isLocalMax(tau) && e.nsdf[tau] > best {
			best = e.nsdf[tau]
		}
	}

	if best <= 0 {
		return 0
	}

	threshold := best * e.cfg.PeakThreshold
	for tau := e.minLag; tau < e.maxLag; tau++ {
		if e.isLocalMax(tau) && e.nsdf[tau] >= threshold {
			return tau
		}
	}

	return 0
}

func (e *Estimator) isLocalMax(tau int) bool {
	v := e.nsdf[tau]
	return e.nsdf[tau-1] < v && v > e.nsdf[tau+1]
}
