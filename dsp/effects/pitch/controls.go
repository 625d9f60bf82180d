package pitch

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-psola/dsp/core"
)

// ParamID identifies a host-automatable parameter.
type ParamID uint32

const (
	// ParamPitch controls the pitch ratio.
	ParamPitch ParamID = 1
	// ParamFormant controls the formant ratio.
	ParamFormant ParamID = 2
)

// DefaultNormalized is the neutral control position (ratio 1).
const DefaultNormalized = 0.5

// StateSize is the length in bytes of a serialized Controls value.
const StateSize = 16

// ErrInvalidState is returned when a state blob cannot be restored.
var ErrInvalidState = errors.New("pitch: invalid state")

// String returns the parameter name.
func (id ParamID) String() string {
	switch id {
	case ParamPitch:
		return "pitch"
	case ParamFormant:
		return "formant"
	default:
		return fmt.Sprintf("param(%d)", uint32(id))
	}
}

// RatioFromNormalized maps a control value in [0,1] to a ratio in [0.5, 2].
// 0.5 maps to 1.
func RatioFromNormalized(v float64) float64 {
	return mathPower2((core.Clamp(v, 0, 1) - 0.5) * 2)
}

// NormalizedFromRatio is the inverse of RatioFromNormalized, clamped to [0,1].
func NormalizedFromRatio(ratio float64) float64 {
	if !core.IsFinitePositive(ratio) {
		return DefaultNormalized
	}
	return core.Clamp(mathLog2(ratio)/2+0.5, 0, 1)
}

// Controls holds the normalized pitch and formant parameters exposed to a
// host. The zero value is not neutral; use NewControls.
type Controls struct {
	pitch   float64
	formant float64
}

// NewControls returns controls at their neutral position.
func NewControls() Controls {
	return Controls{pitch: DefaultNormalized, formant: DefaultNormalized}
}

// SetParam stores v, clamped to [0,1], under id. It reports false for
// unknown ids and non-finite values, leaving the controls unchanged.
func (c *Controls) SetParam(id ParamID, v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	v = core.Clamp(v, 0, 1)
	switch id {
	case ParamPitch:
		c.pitch = v
	case ParamFormant:
		c.formant = v
	default:
		return false
	}
	return true
}

// Param returns the normalized value stored under id.
func (c Controls) Param(id ParamID) (float64, bool) {
	switch id {
	case ParamPitch:
		return c.pitch, true
	case ParamFormant:
		return c.formant, true
	default:
		return 0, false
	}
}

// PitchRatio returns the pitch ratio selected by the pitch control.
func (c Controls) PitchRatio() float64 { return RatioFromNormalized(c.pitch) }

// FormantRatio returns the formant ratio selected by the formant control.
func (c Controls) FormantRatio() float64 { return RatioFromNormalized(c.formant) }

// SetPitchSemitones positions the pitch control for a shift in semitones.
func (c *Controls) SetPitchSemitones(semitones float64) {
	c.pitch = NormalizedFromRatio(core.RatioFromSemitones(semitones))
}

// SetFormantSemitones positions the formant control for a shift in semitones.
func (c *Controls) SetFormantSemitones(semitones float64) {
	c.formant = NormalizedFromRatio(core.RatioFromSemitones(semitones))
}

// WriteState writes pitch then formant as native-endian float64 values.
func (c Controls) WriteState(w io.Writer) error {
	state := [2]float64{c.pitch, c.formant}
	if err := binary.Write(w, binary.NativeEndian, state); err != nil {
		return fmt.Errorf("pitch: write state: %w", err)
	}
	return nil
}

// ReadState restores controls written by WriteState. Any read failure or
// out-of-range value fails the whole restore and leaves c unchanged.
func (c *Controls) ReadState(r io.Reader) error {
	var state [2]float64
	if err := binary.Read(r, binary.NativeEndian, &state); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	for i, v := range state {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: value %d out of range: %v", ErrInvalidState, i, v)
		}
	}

	c.pitch, c.formant = state[0], state[1]
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (c Controls) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(StateSize)
	if err := c.WriteState(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. data must be
// exactly StateSize bytes.
func (c *Controls) UnmarshalBinary(data []byte) error {
	if len(data) != StateSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidState, len(data), StateSize)
	}
	return c.ReadState(bytes.NewReader(data))
}
