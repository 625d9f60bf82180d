package pitch

import (
	"fmt"

	"github.com/cwbudde/algo-psola/dsp/stream"
)

// StreamShifter wraps a PSOLAShifter for hosts that deliver arbitrary buffer
// sizes. Output lags input by one block. Control changes take effect at the
// start of the next block.
//
// StreamShifter is single-threaded and not reentrant.
type StreamShifter struct {
	engine   *PSOLAShifter
	adapter  *stream.FrameAdapter
	controls Controls

	// conversion scratch for float32 hosts
	in64  []float64
	out64 []float64
}

// NewStreamShifter creates a streaming shifter at sampleRate with neutral controls.
func NewStreamShifter(sampleRate float64, opts ...Option) (*StreamShifter, error) {
	engine, err := NewPSOLAShifter(sampleRate, opts...)
	if err != nil {
		return nil, err
	}

	s := &StreamShifter{
		engine:   engine,
		controls: NewControls(),
	}
	if err := s.rebuildAdapter(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *StreamShifter) rebuildAdapter() error {
	n := s.engine.BlockSize()
	adapter, err := stream.NewFrameAdapter(n, s.processBlock)
	if err != nil {
		return fmt.Errorf("stream shifter: %w", err)
	}
	s.adapter = adapter
	s.in64 = make([]float64, n)
	s.out64 = make([]float64, n)
	return nil
}

// processBlock samples the controls once and runs the engine.
func (s *StreamShifter) processBlock(dst, src []float64) {
	s.engine.pitchRatio = s.controls.PitchRatio()
	s.engine.formantRatio = s.controls.FormantRatio()
	s.engine.ProcessBlock(dst, src)
}

// Engine returns the wrapped block engine.
func (s *StreamShifter) Engine() *PSOLAShifter { return s.engine }

// Controls returns the live parameter set.
func (s *StreamShifter) Controls() *Controls { return &s.controls }

// SetParam updates a normalized parameter. See Controls.SetParam.
func (s *StreamShifter) SetParam(id ParamID, v float64) bool {
	return s.controls.SetParam(id, v)
}

// Latency returns the input-to-output delay in samples.
func (s *StreamShifter) Latency() int { return s.adapter.Latency() }

// SetSampleRate rebuilds the engine for a new rate and clears buffered audio.
func (s *StreamShifter) SetSampleRate(sampleRate float64) error {
	if err := s.engine.SetSampleRate(sampleRate); err != nil {
		return err
	}
	s.adapter.Reset()
	return nil
}

// Reset clears buffered audio and the carried estimate. Controls are kept.
func (s *StreamShifter) Reset() {
	s.engine.Reset()
	s.adapter.Reset()
}

// Process shifts src into dst. Both must have the same length and may alias.
func (s *StreamShifter) Process(dst, src []float64) error {
	return s.adapter.Process(dst, src)
}

// Process32 is Process for float32 hosts. It does not allocate.
func (s *StreamShifter) Process32(dst, src []float32) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: %d != %d", stream.ErrLengthMismatch, len(dst), len(src))
	}

	for len(src) > 0 {
		k := min(len(src), len(s.in64))
		for i, v := range src[:k] {
			s.in64[i] = float64(v)
		}
		if err := s.adapter.Process(s.out64[:k], s.in64[:k]); err != nil {
			return err
		}
		for i, v := range s.out64[:k] {
			dst[i] = float32(v)
		}
		src = src[k:]
		dst = dst[k:]
	}

	return nil
}
