package synth

import "testing"

func TestSynth_NextVoiceRoundRobinsModFour(t *testing.T) {
	s := New(44100)
	for i := 0; i < 12; i++ {
		if v := s.nextVoice(); v == nil {
			t.Fatalf("nextVoice() returned nil at i=%d", i)
		}
		want := (i + 1) % numVoices
		if got := s.Counter(); got != want {
			t.Errorf("after %d calls, counter = %d, want %d", i+1, got, want)
		}
	}
}

func TestSynth_SetParams_ClampsEachCoordinate(t *testing.T) {
	s := New(44100)
	s.LoadSource(make([]float32, 1000), 1, 44100)
	s.SetParams(999999, 0, 0.0, 0.0)
	p := s.Snapshot()
	if p.GrainStart != float32(len(s.sourceCopy())) {
		t.Errorf("GrainStart = %v, want clamped to file size %d", p.GrainStart, len(s.sourceCopy()))
	}
	if p.GrainDurationMs != 0 {
		t.Errorf("GrainDurationMs = %v, want 0 (duration is not clamped)", p.GrainDurationMs)
	}
	if p.GrainOverlap != 1.0 {
		t.Errorf("GrainOverlap = %v, want clamped to 1.0", p.GrainOverlap)
	}
	if p.GrainPitch != 0.1 {
		t.Errorf("GrainPitch = %v, want clamped to 0.1", p.GrainPitch)
	}
}

func TestSynth_LoadSource_ResamplesToMasterRate(t *testing.T) {
	s := New(44100)
	s.LoadSource(make([]float32, 22050), 1, 22050)
	if got := s.MasterSampleRate(); got != 44100 {
		t.Fatalf("MasterSampleRate() = %d, want 44100", got)
	}
	if got := len(s.sourceCopy()); got < 43000 || got > 45000 {
		t.Errorf("resampled source length = %d, want near 44100", got)
	}
}

func TestSynth_EnqueueGrain_DropsOnFullQueue(t *testing.T) {
	s := New(44100)
	for i := 0; i < defaultQueueSize; i++ {
		s.enqueueGrain([]float32{float32(i)})
	}
	// Queue is now full; one more enqueue must not block.
	done := make(chan struct{})
	go func() {
		s.enqueueGrain([]float32{99})
		close(done)
	}()
	<-done
	if got := len(s.grainCh); got != defaultQueueSize {
		t.Fatalf("len(grainCh) = %d, want %d (overflow dropped)", got, defaultQueueSize)
	}
}

func TestSynth_NormalizedPosition_ZeroFileSizeIsZero(t *testing.T) {
	s := New(44100)
	if got := s.NormalizedPosition(); got != 0 {
		t.Fatalf("NormalizedPosition() = %v, want 0 with no source loaded", got)
	}
}
