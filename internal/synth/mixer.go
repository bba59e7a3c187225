package synth

import (
	"sync"

	"github.com/intuitionamiga/granularsynth/internal/grain"
)

// FrameWriter receives interleaved output frames for recording. It is
// implemented by internal/wavfile.Writer; defined here to avoid a
// package-import cycle between synth and wavfile.
type FrameWriter interface {
	WriteFrame(data []float32) error
}

// Mixer runs inside the audio callback: it drains the grain queue,
// sums every active grain's next sample into each output frame, and
// retires grains that have finished. It holds a short-lived lock on
// the active-grain list only; it never touches source/envelope/params.
type Mixer struct {
	synth *Synth

	mu     sync.Mutex
	active []*grain.Active

	recMu    sync.Mutex
	recorder FrameWriter
}

// NewMixer creates a mixer draining synth's grain channel.
func NewMixer(s *Synth) *Mixer {
	return &Mixer{synth: s}
}

// SetRecorder installs (or clears, with nil) the frame writer engaged
// while recording is active.
func (m *Mixer) SetRecorder(w FrameWriter) {
	m.recMu.Lock()
	m.recorder = w
	m.recMu.Unlock()
}

// Process fills data (length frames*channels, interleaved) by
// draining newly arrived grains, summing all active grains' next
// sample per output frame, and broadcasting the mono mix to every
// output channel. It does not allocate beyond accepting
// already-allocated grain vectors off the channel.
func (m *Mixer) Process(data []float32, frames, channels int) {
	m.drainQueue()

	m.mu.Lock()
	active := m.active
	for f := 0; f < frames; f++ {
		var mix float32
		for _, g := range active {
			mix += g.NextSample()
		}
		base := f * channels
		for c := 0; c < channels; c++ {
			data[base+c] = mix
		}
	}
	m.active = retire(active)
	m.mu.Unlock()

	m.recMu.Lock()
	rec := m.recorder
	m.recMu.Unlock()
	if rec != nil {
		if err := rec.WriteFrame(data); err != nil {
			m.synth.log.Error("recording write failed", "err", err)
		}
	}
}

func (m *Mixer) drainQueue() {
	for {
		select {
		case samples, ok := <-m.synth.GrainChan():
			if !ok {
				return
			}
			m.mu.Lock()
			m.active = append(m.active, grain.NewActive(samples))
			m.mu.Unlock()
		default:
			return
		}
	}
}

// retire keeps only grains that still have samples left.
func retire(active []*grain.Active) []*grain.Active {
	kept := active[:0]
	for _, g := range active {
		if !g.Done() {
			kept = append(kept, g)
		}
	}
	return kept
}

// ActiveCount reports the number of in-flight grains, for tests and
// diagnostics.
func (m *Mixer) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}
