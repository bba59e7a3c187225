package wavfile

import "errors"

var (
	// ErrUnsupportedDepth is returned when a source file's bit depth
	// is not the required 16-bit PCM.
	ErrUnsupportedDepth = errors.New("wavfile: unsupported bit depth")
	// ErrUnsupportedFormat names a requested recording format other
	// than WAV. No function in this package returns it; the audio
	// engine reports that case with audio.ErrUnsupportedFormat.
	ErrUnsupportedFormat = errors.New("wavfile: only WAV is supported")
)
