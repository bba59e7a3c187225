// Package wavfile handles PCM 16-bit interleaved WAV source loading
// and WAV recording output, both via github.com/go-audio/wav.
package wavfile

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

const (
	pcmInt16Max = 32768.0
)

// Source is a loaded, not-yet-resampled WAV file: interleaved samples
// normalized to [-1, 1], its channel count, and its native sample
// rate.
type Source struct {
	Samples    []float32
	Channels   uint16
	SampleRate uint32
}

// Load reads a PCM 16-bit interleaved WAV file and normalizes samples
// to [-1, 1] via f = i16 / 32768.0. Other bit depths or float samples
// are not required by this core and return ErrUnsupportedDepth.
func Load(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return Source{}, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return Source{}, fmt.Errorf("%q: not a valid WAV file", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Source{}, fmt.Errorf("decode %q: %w", path, err)
	}

	if dec.BitDepth != 16 {
		return Source{}, fmt.Errorf("%q: %w (%d-bit)", path, ErrUnsupportedDepth, dec.BitDepth)
	}

	samples := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float32(v) / pcmInt16Max
	}

	return Source{
		Samples:    samples,
		Channels:   uint16(dec.NumChans),
		SampleRate: dec.SampleRate,
	}, nil
}
