// Package synthapi is the control surface, expressed as idiomatic Go
// rather than a C ABI: a Handle in place of create_synth/destroy_synth,
// and an Engine in place of create_audio_engine/destroy_audio_engine.
// Buffer accessors return ordinary Go slices rather than a
// pointer+length+free-callback pattern, which has no idiomatic place
// in a pure-Go module.
package synthapi

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/intuitionamiga/granularsynth/internal/audio"
	"github.com/intuitionamiga/granularsynth/internal/synth"
	"github.com/intuitionamiga/granularsynth/internal/wavfile"
)

var apiLog = log.NewWithOptions(os.Stderr, log.Options{Prefix: "synthapi"})

// Handle corresponds to a create_synth/destroy_synth pair — in Go,
// construction and garbage collection stand in for create/destroy, so
// only New is needed.
type Handle struct {
	synth     *synth.Synth
	scheduler *synth.Scheduler
	mixer     *synth.Mixer
}

// New corresponds to create_synth(master_rate).
func New(masterSampleRate uint32) *Handle {
	s := synth.New(masterSampleRate)
	return &Handle{
		synth:     s,
		scheduler: synth.NewScheduler(s),
		mixer:     synth.NewMixer(s),
	}
}

// LoadAudioFromFile loads path, resamples it to the engine's master
// sample rate, and updates Specs. Returns 0 on success, -1 on failure.
// A failed load leaves the existing source buffer untouched.
func (h *Handle) LoadAudioFromFile(path string) int {
	source, err := wavfile.Load(path)
	if err != nil {
		apiLog.Error("load audio failed", "path", path, "err", err)
		return -1
	}
	h.synth.LoadSource(source.Samples, source.Channels, source.SampleRate)
	return 0
}

// GenerateGrainEnvelope corresponds to generate_grain_envelope.
func (h *Handle) GenerateGrainEnvelope(size int) {
	h.synth.GenerateEnvelope(size)
}

// SetParams corresponds to set_params: start, overlap and pitch are
// clamped; the duration is stored as given.
func (h *Handle) SetParams(start float32, durationMs uint, overlap, pitch float32) {
	h.synth.SetParams(start, durationMs, overlap, pitch)
}

// SetGrainStart, SetGrainDurationMs, SetGrainPitch, SetGrainOverlap
// are the individual setters mirroring SetParams's coordinates.
func (h *Handle) SetGrainStart(start float32)        { h.synth.SetGrainStart(start) }
func (h *Handle) SetGrainDurationMs(durationMs uint) { h.synth.SetGrainDurationMs(durationMs) }
func (h *Handle) SetGrainPitch(pitch float32)        { h.synth.SetGrainPitch(pitch) }
func (h *Handle) SetGrainOverlap(overlap float32)    { h.synth.SetGrainOverlap(overlap) }

// StartScheduler, StopScheduler correspond to
// start_scheduler/stop_scheduler.
func (h *Handle) StartScheduler() { h.scheduler.Start() }
func (h *Handle) StopScheduler()  { h.scheduler.Stop() }

// GetMasterSampleRate corresponds to get_master_sample_rate.
func (h *Handle) GetMasterSampleRate() uint32 {
	return h.synth.MasterSampleRate()
}

// GetGrainEnvelope and GetSourceArray are the buffer accessors,
// returning Go slices directly.
func (h *Handle) GetGrainEnvelope() []float32 { return h.synth.EnvelopeSnapshot() }
func (h *Handle) GetSourceArray() []float32   { return h.synth.SourceSnapshot() }

// NormalizedPosition exposes the current grain start as a playhead
// position for UI readback.
func (h *Handle) NormalizedPosition() float32 {
	return h.synth.NormalizedPosition()
}

// Mixer exposes the underlying grain mixer for CreateAudioEngine.
func (h *Handle) Mixer() *synth.Mixer {
	return h.mixer
}

// Engine corresponds to the audio-engine handle
// (create_audio_engine/destroy_audio_engine and friends).
type Engine struct {
	engine *audio.Engine
}

// CreateAudioEngine corresponds to create_audio_engine(handle).
func (h *Handle) CreateAudioEngine() (*Engine, error) {
	e, err := audio.New(h.Mixer())
	if err != nil {
		return nil, err
	}
	return &Engine{engine: e}, nil
}

// Start, Stop correspond to audio_engine_start/audio_engine_stop,
// returning 0/-1 per the control surface's exit-code convention.
func (e *Engine) Start() int {
	if err := e.engine.Start(); err != nil {
		apiLog.Error("audio engine start failed", "err", err)
		return -1
	}
	return 0
}

func (e *Engine) Stop() int {
	if err := e.engine.Stop(); err != nil {
		apiLog.Error("audio engine stop failed", "err", err)
		return -1
	}
	return 0
}

// Destroy corresponds to destroy_audio_engine.
func (e *Engine) Destroy() int {
	if err := e.engine.Close(); err != nil {
		apiLog.Error("audio engine close failed", "err", err)
		return -1
	}
	return 0
}

// Record, StopRecording correspond to record/stop_recording.
func (e *Engine) Record(path string) int {
	if err := e.engine.Record(path); err != nil {
		apiLog.Error("record failed", "err", err)
		return -1
	}
	return 0
}

func (e *Engine) StopRecording() int {
	if err := e.engine.StopRecording(); err != nil {
		apiLog.Error("stop recording failed", "err", err)
		return -1
	}
	return 0
}

// SetSampleRate, SetBitDepth, SetFileFormat, SetOutputDevice,
// SetDefaultOutputDevice, GetOutputDevices, GetDefaultOutputDevice
// pass through to the underlying audio.Engine.
func (e *Engine) SetSampleRate(rate int) { e.engine.SetSampleRate(rate) }

func (e *Engine) SetBitDepth(depth int) int {
	if err := e.engine.SetBitDepth(depth); err != nil {
		apiLog.Error("set bit depth failed", "depth", depth, "err", err)
		return -1
	}
	return 0
}

func (e *Engine) SetFileFormat(format string) int {
	if err := e.engine.SetFileFormat(format); err != nil {
		apiLog.Error("set file format failed", "format", format, "err", err)
		return -1
	}
	return 0
}

func (e *Engine) SetOutputDevice(index int) int {
	if err := e.engine.SetOutputDevice(index); err != nil {
		apiLog.Error("set output device failed", "index", index, "err", err)
		return -1
	}
	return 0
}

func (e *Engine) SetDefaultOutputDevice() { e.engine.SetDefaultOutputDevice() }

func (e *Engine) GetOutputDevices() ([]audio.DeviceInfo, error) {
	return e.engine.GetOutputDevices()
}

func (e *Engine) GetDefaultOutputDevice() (string, error) {
	return e.engine.GetDefaultOutputDevice()
}
