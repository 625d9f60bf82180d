package config

import (
	"fmt"

	"github.com/cwbudde/algo-psola/dsp/effects/pitch"
	"github.com/cwbudde/algo-psola/dsp/interp"
	detect "github.com/cwbudde/algo-psola/dsp/pitch"
	"github.com/cwbudde/algo-psola/dsp/window"
)

// Apply positions c according to the preset. Unset axes keep their value.
func (p Preset) Apply(c *pitch.Controls) {
	switch {
	case p.Pitch != nil:
		c.SetParam(pitch.ParamPitch, *p.Pitch)
	case p.PitchSemitones != nil:
		c.SetPitchSemitones(*p.PitchSemitones)
	}

	switch {
	case p.Formant != nil:
		c.SetParam(pitch.ParamFormant, *p.Formant)
	case p.FormantSemitones != nil:
		c.SetFormantSemitones(*p.FormantSemitones)
	}
}

// ShifterOptions translates the engine policy of f into shifter options.
func (f *File) ShifterOptions() ([]pitch.Option, error) {
	ease, err := interp.ParseEase(f.Ease)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	opts := []pitch.Option{pitch.WithEase(ease)}
	if f.BlockSize != 0 {
		opts = append(opts, pitch.WithBlockSize(f.BlockSize))
	}

	est, err := f.Estimator.Options()
	if err != nil {
		return nil, err
	}
	if len(est) > 0 {
		opts = append(opts, pitch.WithEstimatorOptions(est...))
	}

	return opts, nil
}

// Options translates the estimator overrides into estimator options. Unset
// fields produce no option.
func (e Estimator) Options() ([]detect.EstimatorOption, error) {
	var est []detect.EstimatorOption
	if e.Window != "" {
		t, err := window.ParseType(e.Window)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		est = append(est, detect.WithWindow(t))
	}
	if e.CutoffHz != nil {
		est = append(est, detect.WithCutoff(*e.CutoffHz))
	}
	if e.MinHz > 0 || e.MaxHz > 0 {
		lo, hi := e.MinHz, e.MaxHz
		if lo == 0 {
			lo = detect.DefaultMinHz
		}
		if hi == 0 {
			hi = detect.DefaultMaxHz
		}
		est = append(est, detect.WithFrequencyRange(lo, hi))
	}
	if e.PeakThreshold > 0 {
		est = append(est, detect.WithPeakThreshold(e.PeakThreshold))
	}
	if e.Continuity != nil {
		est = append(est, detect.WithContinuity(*e.Continuity))
	}
	return est, nil
}
