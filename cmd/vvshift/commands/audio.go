package commands

import (
	"errors"
	"fmt"
	"math"
	"os"

	resampling "github.com/tphakala/go-audio-resampling"

	"github.com/cwbudde/algo-psola/dsp/effects/pitch"
	"github.com/cwbudde/algo-psola/internal/wav"
)

// resampleDrain is the silence appended to flush the resampler filter.
const resampleDrain = 4096

var errEmptyInput = errors.New("input has no samples")

// readMono decodes the WAV file at path and downmixes it.
func readMono(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	audio, err := wav.Read(f)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	if audio.Frames() == 0 {
		return nil, 0, fmt.Errorf("%s: %w", path, errEmptyInput)
	}
	return audio.Mono(), audio.SampleRate, nil
}

// writeMono encodes samples as 16-bit mono WAV at path.
func writeMono(path string, samples []float64, sampleRate int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return wav.Write(f, samples, sampleRate)
}

// resample converts in from one rate to another. The output length is
// len(in)*to/from rounded.
func resample(in []float64, from, to int) ([]float64, error) {
	if from == to || len(in) == 0 {
		return in, nil
	}

	r, err := resampling.New(&resampling.Config{
		InputRate:  float64(from),
		OutputRate: float64(to),
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create resampler: %w", err)
	}

	out, err := r.Process(in)
	if err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}
	tail, err := r.Process(make([]float64, resampleDrain))
	if err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}
	out = append(out, tail...)

	want := int(math.Round(float64(len(in)) * float64(to) / float64(from)))
	if len(out) > want {
		out = out[:want]
	}
	return out, nil
}

// shiftSignal streams in through s in chunks of at most chunk samples and
// returns the latency-compensated output, equal in length to in.
func shiftSignal(s *pitch.StreamShifter, in []float64, chunk int) ([]float64, error) {
	if chunk <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunk)
	}

	lat := s.Latency()
	src := make([]float64, len(in)+lat)
	copy(src, in)
	dst := make([]float64, len(src))

	for off := 0; off < len(src); off += chunk {
		end := min(off+chunk, len(src))
		if err := s.Process(dst[off:end], src[off:end]); err != nil {
			return nil, err
		}
	}

	return dst[lat:], nil
}
