// Package wav reads and writes RIFF/WAVE files for the command-line tools.
//
// Reading accepts 8/16/24/32-bit integer PCM and 32/64-bit float data in
// plain or extensible format chunks. Writing produces 16-bit PCM.
package wav

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

const (
	formatPCM        = 1
	formatFloat      = 3
	formatExtensible = 0xfffe
)

var (
	// ErrNotWave is returned when the stream is not a RIFF/WAVE file.
	ErrNotWave = errors.New("wav: not a RIFF/WAVE stream")
	// ErrUnsupported is returned for encodings the reader cannot decode.
	ErrUnsupported = errors.New("wav: unsupported encoding")
)

// Audio is decoded multichannel audio with interleaved channels split out.
type Audio struct {
	SampleRate int
	// Channels holds one slice per channel, all of equal length.
	Channels [][]float64
}

// Frames returns the number of samples per channel.
func (a *Audio) Frames() int {
	if len(a.Channels) == 0 {
		return 0
	}
	return len(a.Channels[0])
}

// Mono returns the channel average.
func (a *Audio) Mono() []float64 {
	if len(a.Channels) == 1 {
		return a.Channels[0]
	}
	out := make([]float64, a.Frames())
	if len(a.Channels) == 0 {
		return out
	}
	scale := 1 / float64(len(a.Channels))
	for _, ch := range a.Channels {
		for i, v := range ch {
			out[i] += v * scale
		}
	}
	return out
}

type format struct {
	tag           uint16
	channels      int
	sampleRate    int
	bitsPerSample int
}

// Read decodes a WAVE stream.
func Read(r io.Reader) (*Audio, error) {
	br := bufio.NewReader(r)

	var hdr [12]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWave, err)
	}
	if string(hdr[0:4]) != "RIFF" || string(hdr[8:12]) != "WAVE" {
		return nil, ErrNotWave
	}

	var (
		fmtChunk *format
		chunk    [8]byte
	)
	for {
		if _, err := io.ReadFull(br, chunk[:]); err != nil {
			return nil, fmt.Errorf("wav: missing data chunk: %w", err)
		}
		id := string(chunk[0:4])
		size := int64(binary.LittleEndian.Uint32(chunk[4:8]))

		switch id {
		case "fmt ":
			f, err := readFormat(br, size)
			if err != nil {
				return nil, err
			}
			fmtChunk = f
		case "data":
			if fmtChunk == nil {
				return nil, errors.New("wav: data chunk before fmt chunk")
			}
			return readData(br, size, fmtChunk)
		default:
			if _, err := io.CopyN(io.Discard, br, size+size%2); err != nil {
				return nil, fmt.Errorf("wav: skip chunk %q: %w", id, err)
			}
		}
	}
}

func readFormat(r io.Reader, size int64) (*format, error) {
	if size < 16 {
		return nil, fmt.Errorf("wav: fmt chunk too short: %d", size)
	}
	buf := make([]byte, size+size%2)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("wav: read fmt chunk: %w", err)
	}

	f := &format{
		tag:           binary.LittleEndian.Uint16(buf[0:2]),
		channels:      int(binary.LittleEndian.Uint16(buf[2:4])),
		sampleRate:    int(binary.LittleEndian.Uint32(buf[4:8])),
		bitsPerSample: int(binary.LittleEndian.Uint16(buf[14:16])),
	}
	if f.tag == formatExtensible && size >= 26 {
		// The sub-format GUID starts with the plain format tag.
		f.tag = binary.LittleEndian.Uint16(buf[24:26])
	}

	if f.channels <= 0 || f.sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrUnsupported, f.channels, f.sampleRate)
	}
	switch {
	case f.tag == formatPCM && (f.bitsPerSample == 8 || f.bitsPerSample == 16 || f.bitsPerSample == 24 || f.bitsPerSample == 32):
	case f.tag == formatFloat && (f.bitsPerSample == 32 || f.bitsPerSample == 64):
	default:
		return nil, fmt.Errorf("%w: format %d with %d bits", ErrUnsupported, f.tag, f.bitsPerSample)
	}

	return f, nil
}

func readData(r io.Reader, size int64, f *format) (*Audio, error) {
	width := f.bitsPerSample / 8
	frameBytes := int64(width * f.channels)
	frames := int(size / frameBytes)

	data := make([]byte, int64(frames)*frameBytes)
	n, err := io.ReadFull(r, data)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("wav: read data: %w", err)
	}
	// Tolerate truncated files by keeping whole frames.
	frames = n / int(frameBytes)

	a := &Audio{SampleRate: f.sampleRate, Channels: make([][]float64, f.channels)}
	for c := range a.Channels {
		a.Channels[c] = make([]float64, frames)
	}

	off := 0
	for i := 0; i < frames; i++ {
		for c := 0; c < f.channels; c++ {
			a.Channels[c][i] = decodeSample(data[off:off+width], f)
			off += width
		}
	}

	return a, nil
}

func decodeSample(b []byte, f *format) float64 {
	if f.tag == formatFloat {
		if f.bitsPerSample == 32 {
			return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
		}
		return math.Float64frombits(binary.LittleEndian.Uint64(b))
	}

	switch f.bitsPerSample {
	case 8:
		return (float64(b[0]) - 128) / 128
	case 16:
		return float64(int16(binary.LittleEndian.Uint16(b))) / (1 << 15)
	case 24:
		v := int32(uint32(b[0])<<8|uint32(b[1])<<16|uint32(b[2])<<24) >> 8
		return float64(v) / (1 << 23)
	default:
		return float64(int32(binary.LittleEndian.Uint32(b))) / (1 << 31)
	}
}

// Write encodes mono samples as 16-bit PCM. Samples are clipped to [-1, 1].
func Write(w io.Writer, samples []float64, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("wav: sample rate must be > 0: %d", sampleRate)
	}

	dataSize := uint32(len(samples) * 2)
	var hdr [44]byte
	copy(hdr[0:4], "RIFF")
	binary.LittleEndian.PutUint32(hdr[4:8], 36+dataSize)
	copy(hdr[8:12], "WAVE")
	copy(hdr[12:16], "fmt ")
	binary.LittleEndian.PutUint32(hdr[16:20], 16)
	binary.LittleEndian.PutUint16(hdr[20:22], formatPCM)
	binary.LittleEndian.PutUint16(hdr[22:24], 1)
	binary.LittleEndian.PutUint32(hdr[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(hdr[28:32], uint32(sampleRate*2))
	binary.LittleEndian.PutUint16(hdr[32:34], 2)
	binary.LittleEndian.PutUint16(hdr[34:36], 16)
	copy(hdr[36:40], "data")
	binary.LittleEndian.PutUint32(hdr[40:44], dataSize)

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(hdr[:]); err != nil {
		return fmt.Errorf("wav: write header: %w", err)
	}

	var b [2]byte
	for _, v := range samples {
		binary.LittleEndian.PutUint16(b[:], uint16(quantize16(v)))
		if _, err := bw.Write(b[:]); err != nil {
			return fmt.Errorf("wav: write data: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("wav: flush: %w", err)
	}
	return nil
}

func quantize16(v float64) int16 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Max(-1, math.Min(1, v))
	return int16(math.Round(v * 32767))
}
