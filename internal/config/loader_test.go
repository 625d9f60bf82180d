package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-psola/dsp/effects/pitch"
	detect "github.com/cwbudde/algo-psola/dsp/pitch"
)

const sampleYAML = `
block_size: 2048
ease: smoothstep
estimator:
  window: hamming
  cutoff_hz: 1000
  min_hz: 70
  max_hz: 400
  peak_threshold: 0.85
  continuity: false
presets:
  - name: up
    pitch_semitones: 5
  - name: thin
    pitch: 0.5
    formant: 0.9
`

func TestLoadFromReader(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader(sampleYAML))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.BlockSize != 2048 || cfg.Ease != "smoothstep" || len(cfg.Presets) != 2 {
		t.Fatalf("decoded %+v", cfg)
	}
	if cfg.Estimator.Continuity == nil || *cfg.Estimator.Continuity {
		t.Fatal("continuity should decode as explicit false")
	}

	p, ok := cfg.Preset("thin")
	if !ok || *p.Formant != 0.9 {
		t.Fatalf("Preset(thin) = %+v, %v", p, ok)
	}
	if _, ok := cfg.Preset("missing"); ok {
		t.Fatal("Preset(missing) reported found")
	}
}

func TestLoadFromReaderEmpty(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFromReader(empty): %v", err)
	}
	if len(cfg.Presets) != 0 {
		t.Fatalf("decoded %+v", cfg)
	}
}

func TestLoadFromReaderRejectsUnknownFields(t *testing.T) {
	_, err := LoadFromReader(strings.NewReader("presets:\n  - name: a\n    octave: 1\n"))
	if err == nil || !strings.Contains(err.Error(), "octave") {
		t.Fatalf("error = %v, want unknown field", err)
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	in := `
block_size: 1000
ease: bouncy
estimator:
  window: kaiser
  cutoff_hz: -5
  min_hz: 300
  max_hz: 100
  peak_threshold: 2
presets:
  - pitch: 2
  - name: dup
    pitch: 0.4
    pitch_semitones: 3
  - name: dup
    formant_semitones: 24
`
	_, err := LoadFromReader(strings.NewReader(in))
	if err == nil {
		t.Fatal("expected validation error")
	}

	for _, want := range []string{
		"block_size 1000",
		`ease "bouncy"`,
		"estimator.window",
		"estimator.cutoff_hz",
		"estimator range",
		"estimator.peak_threshold",
		"presets[0].name is required",
		"presets[0].pitch 2",
		"mutually exclusive",
		"duplicate of presets[1]",
		"presets[2].formant_semitones 24",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %q:\n%v", want, err)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Load(missing) succeeded")
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("Validate(Default()): %v", err)
	}
}

func TestPresetApply(t *testing.T) {
	cfg := Default()

	tests := []struct {
		name        string
		wantPitch   float64
		wantFormant float64
	}{
		{name: "neutral", wantPitch: 1, wantFormant: 1},
		{name: "octave-up", wantPitch: 2, wantFormant: 1},
		{name: "octave-down", wantPitch: 0.5, wantFormant: 1},
		{name: "chipmunk", wantPitch: math.Pow(2, 7.0/12), wantFormant: math.Pow(2, 5.0/12)},
		{name: "robot-formant", wantPitch: 1, wantFormant: pitch.RatioFromNormalized(0.2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := cfg.Preset(tt.name)
			if !ok {
				t.Fatalf("missing preset %q", tt.name)
			}
			c := pitch.NewControls()
			p.Apply(&c)
			if math.Abs(c.PitchRatio()-tt.wantPitch) > 1e-9 || math.Abs(c.FormantRatio()-tt.wantFormant) > 1e-9 {
				t.Fatalf("ratios = %v, %v, want %v, %v", c.PitchRatio(), c.FormantRatio(), tt.wantPitch, tt.wantFormant)
			}
		})
	}
}

func TestShifterOptions(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader(sampleYAML))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}

	opts, err := cfg.ShifterOptions()
	if err != nil {
		t.Fatalf("ShifterOptions: %v", err)
	}
	p, err := pitch.NewPSOLAShifter(44100, opts...)
	if err != nil {
		t.Fatalf("NewPSOLAShifter: %v", err)
	}

	if p.BlockSize() != 2048 {
		t.Fatalf("BlockSize() = %d, want 2048", p.BlockSize())
	}
	est := p.Estimator().Config()
	if est.CutoffHz != 1000 || est.MinHz != 70 || est.MaxHz != 400 || est.PeakThreshold != 0.85 || est.Continuity {
		t.Fatalf("estimator config = %+v", est)
	}
	if est.Window.String() != "hamming" {
		t.Fatalf("window = %v", est.Window)
	}

	defaults, err := Default().ShifterOptions()
	if err != nil || len(defaults) != 1 {
		t.Fatalf("Default().ShifterOptions() = %d options, %v", len(defaults), err)
	}
}

func TestEstimatorOptions(t *testing.T) {
	opts, err := Estimator{}.Options()
	if err != nil || len(opts) != 0 {
		t.Fatalf("Estimator{}.Options() = %d options, %v", len(opts), err)
	}

	opts, err = Estimator{MaxHz: 500}.Options()
	if err != nil || len(opts) != 1 {
		t.Fatalf("Options() = %d options, %v", len(opts), err)
	}
	cfg := detect.ApplyEstimatorOptions(44100, opts...)
	if cfg.MinHz != detect.DefaultMinHz || cfg.MaxHz != 500 {
		t.Fatalf("frequency range = %v..%v", cfg.MinHz, cfg.MaxHz)
	}

	if _, err := (Estimator{Window: "kaiser"}).Options(); err == nil {
		t.Fatal("expected error for unknown window")
	}
}
