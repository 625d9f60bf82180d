package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-psola/dsp/core"
	"github.com/cwbudde/algo-psola/dsp/interp"
	"github.com/cwbudde/algo-psola/dsp/window"
)

// Load reads the YAML preset file at path and returns a validated [File].
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML preset file from r and validates the result.
func LoadFromReader(r io.Reader) (*File, error) {
	cfg := &File{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// maxSemitones bounds preset offsets to the control range of one octave.
const maxSemitones = 12

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *File) error {
	var errs []error

	if cfg.BlockSize != 0 && (cfg.BlockSize < core.MinBlockSize || !core.IsPowerOfTwo(cfg.BlockSize)) {
		errs = append(errs, fmt.Errorf("block_size %d must be a power of two >= %d", cfg.BlockSize, core.MinBlockSize))
	}
	if _, err := interp.ParseEase(cfg.Ease); err != nil {
		errs = append(errs, fmt.Errorf("ease %q is invalid; valid values: %s, %s", cfg.Ease, interp.EaseRaisedCosine, interp.EaseSmoothStep))
	}

	est := cfg.Estimator
	if est.Window != "" {
		if _, err := window.ParseType(est.Window); err != nil {
			errs = append(errs, fmt.Errorf("estimator.window: %w", err))
		}
	}
	if est.CutoffHz != nil && (*est.CutoffHz < 0 || math.IsNaN(*est.CutoffHz) || math.IsInf(*est.CutoffHz, 0)) {
		errs = append(errs, fmt.Errorf("estimator.cutoff_hz %g must be finite and >= 0", *est.CutoffHz))
	}
	if est.MinHz < 0 || est.MaxHz < 0 || (est.MinHz > 0 && est.MaxHz > 0 && est.MinHz >= est.MaxHz) {
		errs = append(errs, fmt.Errorf("estimator range [%g, %g] must satisfy 0 < min_hz < max_hz", est.MinHz, est.MaxHz))
	}
	if est.PeakThreshold < 0 || est.PeakThreshold > 1 {
		errs = append(errs, fmt.Errorf("estimator.peak_threshold %g is out of range (0, 1]", est.PeakThreshold))
	}

	seen := make(map[string]int, len(cfg.Presets))
	for i, p := range cfg.Presets {
		prefix := fmt.Sprintf("presets[%d]", i)
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		} else {
			if prev, ok := seen[p.Name]; ok {
				errs = append(errs, fmt.Errorf("%s.name %q is a duplicate of presets[%d]", prefix, p.Name, prev))
			}
			seen[p.Name] = i
		}
		errs = append(errs, validateAxis(prefix, "pitch", p.Pitch, p.PitchSemitones)...)
		errs = append(errs, validateAxis(prefix, "formant", p.Formant, p.FormantSemitones)...)
	}

	return errors.Join(errs...)
}

func validateAxis(prefix, name string, normalized, semitones *float64) []error {
	var errs []error
	if normalized != nil && semitones != nil {
		errs = append(errs, fmt.Errorf("%s: %s and %s_semitones are mutually exclusive", prefix, name, name))
	}
	if normalized != nil && !(*normalized >= 0 && *normalized <= 1) {
		errs = append(errs, fmt.Errorf("%s.%s %g is out of range [0, 1]", prefix, name, *normalized))
	}
	if semitones != nil && !(math.Abs(*semitones) <= maxSemitones) {
		errs = append(errs, fmt.Errorf("%s.%s_semitones %g is out of range [-%d, %d]", prefix, name, *semitones, maxSemitones, maxSemitones))
	}
	return errs
}
