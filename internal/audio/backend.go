// Package audio owns the output device stream: device
// enumeration and selection, stream construction, start/stop, and
// optional recording. The real-time callback itself is driven by one
// of the build-tag-selected backends in this package; only the
// malgo-backed default backend supports device enumeration.
package audio

import "errors"

// Sentinel errors for the control-surface error taxonomy.
var (
	ErrNoDevice              = errors.New("audio: no default output device")
	ErrDeviceIndexOutOfRange = errors.New("audio: device index out of range")
	ErrCannotBuildStream     = errors.New("audio: cannot build output stream")
	ErrAlreadyRecording      = errors.New("audio: already recording")
	ErrNotRecording          = errors.New("audio: not recording")
	ErrUnsupportedFormat     = errors.New("audio: unsupported file format")
)

// DeviceInfo is a host output device's index/name pair.
type DeviceInfo struct {
	Index int
	Name  string
}

// Callback is the real-time render callback: it must fill data
// (frames*channels interleaved samples) and must not block or
// allocate beyond what the mixer itself does.
type Callback func(data []float32, frames, channels int)

// StreamConfig configures a backend's output stream, falling back to
// device defaults for any zero field.
type StreamConfig struct {
	DeviceIndex int // -1 selects the host default device
	SampleRate  int
	Channels    int
}

// Backend is the host audio device abstraction. Each implementation
// is selected at build time via Go build tags.
type Backend interface {
	// ListDevices enumerates host output devices.
	ListDevices() ([]DeviceInfo, error)
	// DefaultDevice returns the host's default output device.
	DefaultDevice() (DeviceInfo, error)
	// Start builds and starts an output stream with cfg, invoking cb
	// on the real-time thread for every buffer.
	Start(cfg StreamConfig, cb Callback) error
	// Stop tears down the stream. Safe to call when not started.
	Stop() error
	// Close releases backend-level resources (e.g. the device
	// context). The backend must not be used afterward.
	Close() error
}
