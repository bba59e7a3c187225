package wavfile

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	int16Scale = 32767.0
	int32Scale = 2147483647.0
)

// SupportedBitDepths are the recording bit depths this package allows.
var SupportedBitDepths = map[int]bool{16: true, 24: true, 32: true}

// Writer records interleaved f32 output frames to a WAV file at a
// fixed channel count, sample rate, and bit depth. It is the
// FrameWriter the audio engine installs on the mixer while recording
// is active.
type Writer struct {
	f        *os.File
	enc      *wav.Encoder
	channels int
	bitDepth int
}

// NewWriter opens path and prepares a WAV encoder. bitDepth must be
// one of 16, 24, or 32; any other value returns ErrUnsupportedDepth.
func NewWriter(path string, channels, sampleRate, bitDepth int) (*Writer, error) {
	if !SupportedBitDepths[bitDepth] {
		return nil, fmt.Errorf("%w: %d-bit", ErrUnsupportedDepth, bitDepth)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %q: %w", path, err)
	}

	const audioFormatPCM = 1
	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, audioFormatPCM)

	return &Writer{f: f, enc: enc, channels: channels, bitDepth: bitDepth}, nil
}

// WriteFrame converts f32 -> the configured integer width, truncating
// toward zero, and writes one interleaved buffer.
func (w *Writer) WriteFrame(data []float32) error {
	ints := make([]int, len(data))
	scale := float32(int16Scale)
	if w.bitDepth != 16 {
		scale = float32(int32Scale)
	}
	for i, s := range data {
		ints[i] = int(s * scale)
	}

	buf := &audio.IntBuffer{
		Data:           ints,
		Format:         &audio.Format{SampleRate: int(w.enc.SampleRate), NumChannels: w.channels},
		SourceBitDepth: w.bitDepth,
	}
	return w.enc.Write(buf)
}

// Close finalizes the WAV file (flush, write headers).
func (w *Writer) Close() error {
	if err := w.enc.Close(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}
