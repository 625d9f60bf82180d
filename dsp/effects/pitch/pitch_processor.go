package pitch

// PitchProcessor defines the shared API for one-shot pitch shifters.
//
//nolint:revive
type PitchProcessor interface {
	SampleRate() float64
	SetSampleRate(sampleRate float64) error

	PitchRatio() float64
	PitchSemitones() float64
	SetPitchRatio(ratio float64) error
	SetPitchSemitones(semitones float64) error

	Reset()
	Process(input []float64) []float64
	ProcessInPlace(buf []float64)
}

// FormantProcessor is implemented by shifters that move the spectral envelope
// independently of pitch.
type FormantProcessor interface {
	FormantRatio() float64
	FormantSemitones() float64
	SetFormantRatio(ratio float64) error
	SetFormantSemitones(semitones float64) error
}

var (
	_ PitchProcessor   = (*PSOLAShifter)(nil)
	_ FormantProcessor = (*PSOLAShifter)(nil)
)
