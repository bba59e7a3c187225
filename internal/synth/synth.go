// Package synth holds the shared grain-engine state (source buffer,
// envelope, voice pool, parameters, and the scheduler→audio grain
// handoff) and the scheduler and mixer that operate on it.
package synth

import (
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/intuitionamiga/granularsynth/internal/dsp"
	"github.com/intuitionamiga/granularsynth/internal/grain"
)

const numVoices = 4

// defaultQueueSize bounds the scheduler→audio grain handoff channel.
// The reference implementation uses an unbounded queue; Design Notes
// A bounded queue with non-blocking try-send means the scheduler
// never risks unbounded memory growth if the audio callback stalls.
// Enqueue drops the grain on a full queue.
const defaultQueueSize = 64

// Synth holds everything shared between the control thread, the
// scheduler thread, and the audio callback thread.
type Synth struct {
	// sourceMu guards source; envelopeMu guards envelope. Kept
	// separate from paramsMu so a long source reload never blocks a
	// parameter setter.
	sourceMu sync.RWMutex
	source   []float32

	envelopeMu sync.RWMutex
	envelope   []float32

	paramsMu sync.RWMutex
	params   grain.Params

	voiceMu sync.Mutex
	voices  [numVoices]*grain.Voice
	counter int

	grainCh chan []float32

	log *log.Logger
}

// New creates a Synth with the given master (output) sample rate.
func New(masterSampleRate uint32) *Synth {
	voices := [numVoices]*grain.Voice{}
	for i := range voices {
		voices[i] = grain.NewVoice()
	}
	return &Synth{
		voices:  voices,
		grainCh: make(chan []float32, defaultQueueSize),
		params: grain.Params{
			GrainDurationMs: 100,
			GrainOverlap:    grain.MinOverlap,
			GrainPitch:      1.0,
			Specs:           grain.Specs{SampleRate: masterSampleRate},
		},
		log: log.NewWithOptions(os.Stderr, log.Options{Prefix: "synth"}),
	}
}

// LoadSource resamples an interleaved multi-channel buffer to the
// engine's master sample rate and installs it as the source buffer.
// Samples must already be normalized to [-1, 1]. A failed load must
// leave the existing source buffer untouched — LoadSource never fails
// itself (resampling cannot fail), but callers performing file I/O
// (internal/wavfile) must not call this until the file has been read
// successfully.
func (s *Synth) LoadSource(samples []float32, channels uint16, sourceRate uint32) {
	masterRate := s.MasterSampleRate()
	resampled := dsp.Resample(samples, int(channels), int(sourceRate), int(masterRate))

	s.sourceMu.Lock()
	s.source = resampled
	s.sourceMu.Unlock()

	s.paramsMu.Lock()
	s.params.Specs.Channels = channels
	s.params.Specs.FileSize = uint(len(resampled))
	s.paramsMu.Unlock()
}

// MasterSampleRate returns the engine's output sample rate.
func (s *Synth) MasterSampleRate() uint32 {
	s.paramsMu.RLock()
	defer s.paramsMu.RUnlock()
	return s.params.Specs.SampleRate
}

// Specs returns the currently loaded source's specs.
func (s *Synth) Specs() grain.Specs {
	s.paramsMu.RLock()
	defer s.paramsMu.RUnlock()
	return s.params.Specs
}

// GenerateEnvelope replaces the shared envelope buffer with a fresh
// raised-cosine window of the requested length.
func (s *Synth) GenerateEnvelope(size int) {
	env := dsp.GenerateEnvelope(size)
	s.envelopeMu.Lock()
	s.envelope = env
	s.envelopeMu.Unlock()
}

// SetParams sets all four grain parameters at once. GrainStart,
// GrainOverlap, and GrainPitch are each clamped independently;
// GrainDurationMs is stored as given (it is not one of the clamped
// invariants).
func (s *Synth) SetParams(normalizedStart float32, durationMs uint, overlap, pitch float32) {
	s.paramsMu.Lock()
	fileSize := s.params.Specs.FileSize
	s.params.GrainStart = grain.StartFromNormalized(normalizedStart, fileSize)
	s.params.GrainDurationMs = durationMs
	s.params.GrainOverlap = grain.ClampOverlap(overlap)
	s.params.GrainPitch = grain.ClampPitch(pitch)
	s.paramsMu.Unlock()
}

// SetGrainStart sets only the grain start position, from a normalized
// [0,1] position.
func (s *Synth) SetGrainStart(normalizedPosition float32) {
	s.paramsMu.Lock()
	s.params.GrainStart = grain.StartFromNormalized(normalizedPosition, s.params.Specs.FileSize)
	s.paramsMu.Unlock()
}

// SetGrainDurationMs sets only the nominal grain duration. Not
// clamped: a duration of 0 is valid and yields an empty grain.
func (s *Synth) SetGrainDurationMs(durationMs uint) {
	s.paramsMu.Lock()
	s.params.GrainDurationMs = durationMs
	s.paramsMu.Unlock()
}

// SetGrainOverlap sets only the overlap ratio.
func (s *Synth) SetGrainOverlap(overlap float32) {
	s.paramsMu.Lock()
	s.params.GrainOverlap = grain.ClampOverlap(overlap)
	s.paramsMu.Unlock()
}

// SetGrainPitch sets only the pitch ratio.
func (s *Synth) SetGrainPitch(pitch float32) {
	s.paramsMu.Lock()
	s.params.GrainPitch = grain.ClampPitch(pitch)
	s.paramsMu.Unlock()
}

// Snapshot returns an immutable-by-value copy of the current
// parameters, used by the scheduler so it never holds the params lock
// for the duration of a grain synthesis call.
func (s *Synth) Snapshot() grain.Params {
	s.paramsMu.RLock()
	defer s.paramsMu.RUnlock()
	return s.params
}

// NormalizedPosition returns the current grain start as a position in
// [0,1] of the loaded source, for UI playhead display.
func (s *Synth) NormalizedPosition() float32 {
	s.paramsMu.RLock()
	defer s.paramsMu.RUnlock()
	if s.params.Specs.FileSize == 0 {
		return 0
	}
	return s.params.GrainStart / float32(s.params.Specs.FileSize)
}

// sourceCopy returns a copy of the source buffer for the scheduler to
// read from outside the lock.
func (s *Synth) sourceCopy() []float32 {
	s.sourceMu.RLock()
	defer s.sourceMu.RUnlock()
	out := make([]float32, len(s.source))
	copy(out, s.source)
	return out
}

// envelopeCopy returns a copy of the envelope buffer for the scheduler
// to read from outside the lock.
func (s *Synth) envelopeCopy() []float32 {
	s.envelopeMu.RLock()
	defer s.envelopeMu.RUnlock()
	out := make([]float32, len(s.envelope))
	copy(out, s.envelope)
	return out
}

// SourceSnapshot returns a copy of the source buffer.
func (s *Synth) SourceSnapshot() []float32 {
	return s.sourceCopy()
}

// EnvelopeSnapshot returns a copy of the envelope buffer.
func (s *Synth) EnvelopeSnapshot() []float32 {
	return s.envelopeCopy()
}

// nextVoice returns the current round-robin voice and advances the
// counter mod numVoices. The voice pool and counter share one mutex
// (both written only by the scheduler).
func (s *Synth) nextVoice() *grain.Voice {
	s.voiceMu.Lock()
	defer s.voiceMu.Unlock()
	v := s.voices[s.counter]
	s.counter = (s.counter + 1) % numVoices
	return v
}

// Counter returns the current round-robin counter value, for testing
// the "after K fires, counter == K mod 4" property.
func (s *Synth) Counter() int {
	s.voiceMu.Lock()
	defer s.voiceMu.Unlock()
	return s.counter
}

// GrainChan exposes the receive end of the scheduler→audio handoff
// channel for the mixer to drain.
func (s *Synth) GrainChan() <-chan []float32 {
	return s.grainCh
}

// enqueueGrain performs a non-blocking send, dropping the grain if the
// queue is full.
func (s *Synth) enqueueGrain(samples []float32) {
	select {
	case s.grainCh <- samples:
	default:
		s.log.Warn("grain queue full, dropping grain", "len", len(samples))
	}
}
