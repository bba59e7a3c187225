package synth

import (
	"sync"
	"testing"
	"time"
)

func TestMixer_ProcessSumsActiveGrainsAndRetiresFinished(t *testing.T) {
	s := New(44100)
	m := NewMixer(s)

	s.enqueueGrain([]float32{1, 1})
	s.enqueueGrain([]float32{2, 2})

	data := make([]float32, 2*2) // 2 frames, 2 channels
	m.Process(data, 2, 2)

	if m.ActiveCount() != 0 {
		t.Fatalf("ActiveCount() = %d, want 0 after both grains exhausted", m.ActiveCount())
	}
	for f := 0; f < 2; f++ {
		want := float32(3) // 1+2 from both grains, every frame
		if data[f*2] != want || data[f*2+1] != want {
			t.Errorf("frame %d = [%v %v], want both %v", f, data[f*2], data[f*2+1], want)
		}
	}
}

func TestMixer_ProcessBroadcastsMonoMixToAllChannels(t *testing.T) {
	s := New(44100)
	m := NewMixer(s)
	s.enqueueGrain([]float32{0.5})

	data := make([]float32, 4) // 1 frame, 4 channels
	m.Process(data, 1, 4)

	for c, v := range data {
		if v != 0.5 {
			t.Errorf("channel %d = %v, want 0.5", c, v)
		}
	}
}

func TestMixer_SetRecorderWritesEveryProcessedFrame(t *testing.T) {
	s := New(44100)
	m := NewMixer(s)
	rec := &fakeRecorder{}
	m.SetRecorder(rec)

	s.enqueueGrain([]float32{1, 2, 3})
	data := make([]float32, 3)
	m.Process(data, 3, 1)

	if len(rec.frames) != 1 {
		t.Fatalf("recorder saw %d WriteFrame calls, want 1", len(rec.frames))
	}
}

type fakeRecorder struct {
	mu     sync.Mutex
	frames [][]float32
}

func (f *fakeRecorder) WriteFrame(data []float32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := make([]float32, len(data))
	copy(cp, data)
	f.frames = append(f.frames, cp)
	return nil
}

// TestMixer_ConcurrentEnqueueAndProcess stresses the handoff between a
// producer enqueueing grains and Process draining/mixing them. The
// test itself has no assertions beyond final quiescence - the race
// detector is the oracle.
func TestMixer_ConcurrentEnqueueAndProcess(t *testing.T) {
	s := New(44100)
	m := NewMixer(s)

	stop := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		i := 0
		for {
			select {
			case <-stop:
				return
			default:
			}
			s.enqueueGrain([]float32{float32(i % 7), float32(i % 5)})
			i++
		}
	}()

	data := make([]float32, 64*2)
	deadline := time.Now().Add(30 * time.Millisecond)
	for time.Now().Before(deadline) {
		m.Process(data, 64, 2)
	}
	close(stop)
	wg.Wait()
}
