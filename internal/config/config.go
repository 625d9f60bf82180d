// Package config loads shifter presets and estimator policy from YAML.
package config

// File is the top-level preset document.
type File struct {
	// BlockSize overrides the engine block length. 0 keeps the default.
	BlockSize int `yaml:"block_size"`
	// Ease names the blending kernel: "raised-cosine" or "smoothstep".
	Ease      string    `yaml:"ease"`
	Estimator Estimator `yaml:"estimator"`
	Presets   []Preset  `yaml:"presets"`
}

// Estimator overrides period detection policy. Zero values keep defaults.
type Estimator struct {
	Window        string   `yaml:"window"`
	CutoffHz      *float64 `yaml:"cutoff_hz"`
	MinHz         float64  `yaml:"min_hz"`
	MaxHz         float64  `yaml:"max_hz"`
	PeakThreshold float64  `yaml:"peak_threshold"`
	Continuity    *bool    `yaml:"continuity"`
}

// Preset is a named control setting. Each axis is given either as a
// normalized control value or in semitones.
type Preset struct {
	Name             string   `yaml:"name"`
	Description      string   `yaml:"description"`
	Pitch            *float64 `yaml:"pitch"`
	Formant          *float64 `yaml:"formant"`
	PitchSemitones   *float64 `yaml:"pitch_semitones"`
	FormantSemitones *float64 `yaml:"formant_semitones"`
}

// Default returns the built-in presets with default engine policy.
func Default() *File {
	return &File{
		Presets: []Preset{
			{Name: "neutral", Description: "no change"},
			{Name: "octave-up", Description: "one octave up, formants kept", PitchSemitones: ptr(12.0)},
			{Name: "octave-down", Description: "one octave down, formants kept", PitchSemitones: ptr(-12.0)},
			{Name: "chipmunk", Description: "higher pitch and smaller vocal tract", PitchSemitones: ptr(7.0), FormantSemitones: ptr(5.0)},
			{Name: "giant", Description: "lower pitch and larger vocal tract", PitchSemitones: ptr(-7.0), FormantSemitones: ptr(-5.0)},
			{Name: "robot-formant", Description: "formants only", Formant: ptr(0.2)},
		},
	}
}

// Preset returns the preset registered under name.
func (f *File) Preset(name string) (Preset, bool) {
	for _, p := range f.Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

func ptr[T any](v T) *T { return &v }
