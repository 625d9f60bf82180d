package pitch

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-psola/dsp/core"
	"github.com/cwbudde/algo-psola/dsp/interp"
	detect "github.com/cwbudde/algo-psola/dsp/pitch"
	"github.com/cwbudde/algo-psola/dsp/psola"
)

const (
	defaultRatio = 1.0

	// MinRatio and MaxRatio bound pitch and formant ratios.
	MinRatio = 0.25
	MaxRatio = 4.0
)

// PSOLAShifter performs block-based PSOLA pitch and formant shifting.
//
// Every block of BlockSize samples is analyzed for its fundamental period,
// laid out on an epoch grid compressed or expanded by the pitch ratio and
// resynthesized by overlap-add with the formant ratio as read speed. Blocks
// without a usable period are passed through unchanged. The last estimate
// carries into the next block, so blocks must be processed in order.
//
// Ratios:
//   - 1.0 = unchanged
//   - 2.0 = one octave up
//   - 0.5 = one octave down
//
// This processor is mono, allocation-free per block and not thread-safe.
type PSOLAShifter struct {
	sampleRate   float64
	pitchRatio   float64
	formantRatio float64

	cfg  Config
	n    int
	ease interp.Ease

	estimator *detect.Estimator
	estimate  detect.Estimate

	grid    []psola.Keyframe
	actual  float64
	scratch []float64
	blocks  uint64
}

// NewPSOLAShifter constructs a shifter at sampleRate with unity ratios.
func NewPSOLAShifter(sampleRate float64, opts ...Option) (*PSOLAShifter, error) {
	if !core.IsFinitePositive(sampleRate) {
		return nil, fmt.Errorf("psola shifter sample rate must be positive and finite: %f", sampleRate)
	}

	p := &PSOLAShifter{
		sampleRate:   sampleRate,
		pitchRatio:   defaultRatio,
		formantRatio: defaultRatio,
		cfg:          applyOptions(opts...),
	}
	if err := p.rebuild(); err != nil {
		return nil, err
	}

	return p, nil
}

// SampleRate returns the current sample rate in Hz.
func (p *PSOLAShifter) SampleRate() float64 { return p.sampleRate }

// BlockSize returns the processing block length.
func (p *PSOLAShifter) BlockSize() int { return p.n }

// PitchRatio returns the requested pitch ratio.
func (p *PSOLAShifter) PitchRatio() float64 { return p.pitchRatio }

// PitchSemitones returns the requested pitch shift in semitones.
func (p *PSOLAShifter) PitchSemitones() float64 { return core.SemitonesFromRatio(p.pitchRatio) }

// FormantRatio returns the formant ratio.
func (p *PSOLAShifter) FormantRatio() float64 { return p.formantRatio }

// FormantSemitones returns the formant shift in semitones.
func (p *PSOLAShifter) FormantSemitones() float64 { return core.SemitonesFromRatio(p.formantRatio) }

// EffectivePitchRatio returns the pitch ratio realized on the last block.
// The epoch count is an integer, so it differs slightly from PitchRatio.
// It is 1 when the last block was passed through.
func (p *PSOLAShifter) EffectivePitchRatio() float64 { return p.actual }

// LastEstimate returns the period estimate carried into the next block.
func (p *PSOLAShifter) LastEstimate() detect.Estimate { return p.estimate }

// Estimator exposes the period estimator for diagnostics.
func (p *PSOLAShifter) Estimator() *detect.Estimator { return p.estimator }

// SetSampleRate updates the sample rate and rebuilds the estimator.
func (p *PSOLAShifter) SetSampleRate(sampleRate float64) error {
	if !core.IsFinitePositive(sampleRate) {
		return fmt.Errorf("psola shifter sample rate must be positive and finite: %f", sampleRate)
	}
	old := p.sampleRate
	p.sampleRate = sampleRate
	if err := p.rebuild(); err != nil {
		p.sampleRate = old
		if rerr := p.rebuild(); rerr != nil {
			return errors.Join(err, fmt.Errorf("psola shifter: restore sample rate %f: %w", old, rerr))
		}
		return err
	}
	return nil
}

// SetPitchRatio updates the pitch ratio.
func (p *PSOLAShifter) SetPitchRatio(ratio float64) error {
	if err := validateRatio("pitch", ratio); err != nil {
		return err
	}
	p.pitchRatio = ratio
	return nil
}

// SetPitchSemitones updates the pitch shift in semitones.
func (p *PSOLAShifter) SetPitchSemitones(semitones float64) error {
	if math.IsNaN(semitones) || math.IsInf(semitones, 0) {
		return fmt.Errorf("psola shifter pitch semitones must be finite: %f", semitones)
	}
	if err := p.SetPitchRatio(core.RatioFromSemitones(semitones)); err != nil {
		return fmt.Errorf("psola shifter pitch semitones out of range: %w", err)
	}
	return nil
}

// SetFormantRatio updates the formant ratio.
func (p *PSOLAShifter) SetFormantRatio(ratio float64) error {
	if err := validateRatio("formant", ratio); err != nil {
		return err
	}
	p.formantRatio = ratio
	return nil
}

// SetFormantSemitones updates the formant shift in semitones.
func (p *PSOLAShifter) SetFormantSemitones(semitones float64) error {
	if math.IsNaN(semitones) || math.IsInf(semitones, 0) {
		return fmt.Errorf("psola shifter formant semitones must be finite: %f", semitones)
	}
	if err := p.SetFormantRatio(core.RatioFromSemitones(semitones)); err != nil {
		return fmt.Errorf("psola shifter formant semitones out of range: %w", err)
	}
	return nil
}

// Reset forgets the carried estimate and the block counter.
func (p *PSOLAShifter) Reset() {
	p.estimate = detect.Absent()
	p.actual = 1
	p.blocks = 0
}

// ProcessBlock shifts one block of BlockSize samples from src into dst.
// dst and src may alias. Slices of any other length are copied through
// without analysis.
func (p *PSOLAShifter) ProcessBlock(dst, src []float64) {
	if len(src) != p.n || len(dst) != p.n {
		copy(dst, src)
		return
	}

	copy(p.scratch, src)

	fresh := p.estimator.Detect(p.scratch)
	carried := !fresh.Valid() && p.estimate.Valid()
	p.estimate = p.estimator.Resolve(fresh, p.estimate)
	carried = carried && p.estimate.Valid()

	enabled := false
	if lag, ok := p.estimate.Lag(); ok {
		p.grid, p.actual, enabled = psola.BuildGrid(p.grid, lag, p.pitchRatio, p.n)
	}

	if enabled {
		psola.Synthesize(dst, p.scratch, p.grid, p.formantRatio, p.ease)
	} else {
		p.grid = p.grid[:0]
		p.actual = 1
		copy(dst, p.scratch)
	}

	if p.cfg.Observer != nil {
		p.cfg.Observer(BlockInfo{
			Index:     p.blocks,
			Estimate:  p.estimate,
			Carried:   carried,
			Enabled:   enabled,
			Keyframes: len(p.grid),
			Ratio:     p.actual,
		})
	}
	p.blocks++
}

// Process shifts input block by block and returns a new buffer of equal
// length. A trailing partial block is copied through unchanged.
func (p *PSOLAShifter) Process(input []float64) []float64 {
	if len(input) == 0 {
		return nil
	}
	out := make([]float64, len(input))
	copy(out, input)
	p.ProcessInPlace(out)
	return out
}

// ProcessInPlace shifts buf block by block in place. A trailing partial
// block is left unchanged.
func (p *PSOLAShifter) ProcessInPlace(buf []float64) {
	for len(buf) >= p.n {
		block := buf[:p.n]
		p.ProcessBlock(block, block)
		buf = buf[p.n:]
	}
}

func (p *PSOLAShifter) rebuild() error {
	pc := core.ProcessorConfig{SampleRate: p.sampleRate, BlockSize: p.cfg.BlockSize}
	if err := pc.Validate(); err != nil {
		return fmt.Errorf("psola shifter: %w", err)
	}

	opts := append([]detect.EstimatorOption{detect.WithBlockSize(pc.BlockSize)}, p.cfg.Estimator...)
	est, err := detect.NewEstimator(p.sampleRate, opts...)
	if err != nil {
		return fmt.Errorf("psola shifter: %w", err)
	}
	// The block length is owned by the shifter.
	if est.BlockSize() != pc.BlockSize {
		return fmt.Errorf("psola shifter: %w: estimator block %d != %d",
			core.ErrInvalidBlockSize, est.BlockSize(), pc.BlockSize)
	}

	minLag, _ := est.LagRange()

	p.n = pc.BlockSize
	p.ease = p.cfg.Ease
	if p.ease == nil {
		p.ease = interp.RaisedCosine
	}
	p.estimator = est
	p.grid = make([]psola.Keyframe, 0, psola.MaxKeyframes(p.n, minLag, MaxRatio))
	p.scratch = make([]float64, p.n)
	p.Reset()

	return nil
}

func validateRatio(name string, ratio float64) error {
	if !core.IsFinitePositive(ratio) || ratio < MinRatio || ratio > MaxRatio {
		return fmt.Errorf("psola shifter %s ratio must be in [%f, %f]: %f", name, MinRatio, MaxRatio, ratio)
	}
	return nil
}
