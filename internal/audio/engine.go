package audio

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/intuitionamiga/granularsynth/internal/synth"
	"github.com/intuitionamiga/granularsynth/internal/wavfile"
)

// Settings are the audio engine's user-selectable stream and
// recording-format overrides.
type Settings struct {
	SampleRate  int
	Channels    int
	BitDepth    int // 16, 24, or 32
	FileFormat  string
	DeviceIndex int // -1 = host default
}

// DefaultSettings leaves SampleRate and Channels at zero. A zero
// SampleRate is passed to the backend, which then uses its own
// default rate; a zero Channels is not a device default — Start and
// Record use 1 (mono) in its place.
func DefaultSettings() Settings {
	return Settings{BitDepth: 16, FileFormat: "wav", DeviceIndex: -1}
}

// Engine owns the output device stream, mixes in the grain engine's
// output via its Mixer, and optionally tees that output into a WAV
// file writer.
type Engine struct {
	backend Backend
	mixer   *synth.Mixer

	mu       sync.Mutex
	settings Settings
	started  bool

	recMu     sync.Mutex
	recording bool
	writer    *wavfile.Writer

	log *log.Logger
}

// New creates an Engine around the default backend (malgo, or the
// headless stand-in under the `headless` build tag) driving mixer.
func New(mixer *synth.Mixer) (*Engine, error) {
	backend, err := NewDefaultBackend()
	if err != nil {
		return nil, fmt.Errorf("init audio backend: %w", err)
	}
	return &Engine{
		backend:  backend,
		mixer:    mixer,
		settings: DefaultSettings(),
		log:      log.NewWithOptions(os.Stderr, log.Options{Prefix: "audio"}),
	}, nil
}

// NewWithBackend creates an Engine around an explicit Backend, for
// tests and for callers that want the non-default oto backend.
func NewWithBackend(backend Backend, mixer *synth.Mixer) *Engine {
	return &Engine{
		backend:  backend,
		mixer:    mixer,
		settings: DefaultSettings(),
		log:      log.NewWithOptions(os.Stderr, log.Options{Prefix: "audio"}),
	}
}

// GetOutputDevices lists the host's output devices by index/name.
func (e *Engine) GetOutputDevices() ([]DeviceInfo, error) {
	return e.backend.ListDevices()
}

// GetDefaultOutputDevice returns the host default device's name.
func (e *Engine) GetDefaultOutputDevice() (string, error) {
	d, err := e.backend.DefaultDevice()
	if err != nil {
		return "", err
	}
	return d.Name, nil
}

// SetOutputDevice selects an output device by index, validated
// against the current device list.
func (e *Engine) SetOutputDevice(index int) error {
	devices, err := e.backend.ListDevices()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(devices) {
		return ErrDeviceIndexOutOfRange
	}
	e.mu.Lock()
	e.settings.DeviceIndex = index
	e.mu.Unlock()
	return nil
}

// SetDefaultOutputDevice reverts device selection to the host default.
func (e *Engine) SetDefaultOutputDevice() {
	e.mu.Lock()
	e.settings.DeviceIndex = -1
	e.mu.Unlock()
}

// SetSampleRate, SetBitDepth, SetFileFormat set the corresponding
// recording/stream parameters. SetBitDepth and SetFileFormat validate
// before storing; SetSampleRate stores the rate as given.
func (e *Engine) SetSampleRate(rate int) {
	e.mu.Lock()
	e.settings.SampleRate = rate
	e.mu.Unlock()
}

func (e *Engine) SetBitDepth(depth int) error {
	if !wavfile.SupportedBitDepths[depth] {
		return ErrUnsupportedFormat
	}
	e.mu.Lock()
	e.settings.BitDepth = depth
	e.mu.Unlock()
	return nil
}

// SetFileFormat sets the recording container format. Only "wav" is
// supported; MP3/FLAC are not implemented.
func (e *Engine) SetFileFormat(format string) error {
	if format != "wav" {
		return ErrUnsupportedFormat
	}
	e.mu.Lock()
	e.settings.FileFormat = format
	e.mu.Unlock()
	return nil
}

// Start tears down any existing stream, builds a new one from current
// settings, and installs the mixer's Process method as the real-time
// callback. A zero sample rate falls back to the device default; a
// zero channel count opens a mono stream, not the device's default
// channel count.
func (e *Engine) Start() error {
	e.mu.Lock()
	settings := e.settings
	e.mu.Unlock()

	if err := e.backend.Stop(); err != nil {
		e.log.Warn("stop before restart failed", "err", err)
	}

	cfg := StreamConfig{
		DeviceIndex: settings.DeviceIndex,
		SampleRate:  settings.SampleRate,
		Channels:    settings.Channels,
	}
	if cfg.Channels <= 0 {
		cfg.Channels = 1
	}

	if err := e.backend.Start(cfg, e.mixer.Process); err != nil {
		return err
	}

	e.mu.Lock()
	e.started = true
	e.mu.Unlock()
	return nil
}

// Stop tears down the stream; the callback stops being invoked.
func (e *Engine) Stop() error {
	e.mu.Lock()
	e.started = false
	e.mu.Unlock()
	return e.backend.Stop()
}

// Close releases the backend entirely. The engine must not be used
// afterward.
func (e *Engine) Close() error {
	return e.backend.Close()
}

// Record opens a WAV writer at path using the current channels/
// sample-rate/bit-depth settings and engages recording. Fails if
// already recording.
func (e *Engine) Record(path string) error {
	e.recMu.Lock()
	defer e.recMu.Unlock()
	if e.recording {
		return ErrAlreadyRecording
	}

	e.mu.Lock()
	settings := e.settings
	e.mu.Unlock()

	channels := settings.Channels
	if channels <= 0 {
		channels = 1
	}
	sampleRate := settings.SampleRate
	if sampleRate <= 0 {
		sampleRate = 44100
	}

	w, err := wavfile.NewWriter(path, channels, sampleRate, settings.BitDepth)
	if err != nil {
		return err
	}

	e.writer = w
	e.mixer.SetRecorder(w)
	e.recording = true
	e.log.Info("recording started", "path", path)
	return nil
}

// StopRecording finalizes the writer (flush, write headers) and
// disengages recording. Fails if not currently recording.
func (e *Engine) StopRecording() error {
	e.recMu.Lock()
	defer e.recMu.Unlock()
	if !e.recording {
		return ErrNotRecording
	}

	e.mixer.SetRecorder(nil)
	err := e.writer.Close()
	e.writer = nil
	e.recording = false
	e.log.Info("recording stopped")
	return err
}

// IsRecording reports whether a recording is currently in progress.
func (e *Engine) IsRecording() bool {
	e.recMu.Lock()
	defer e.recMu.Unlock()
	return e.recording
}
