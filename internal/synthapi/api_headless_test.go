//go:build headless

package synthapi

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/intuitionamiga/granularsynth/internal/wavfile"
)

func writeTestWav(t *testing.T, path string) {
	t.Helper()
	w, err := wavfile.NewWriter(path, 1, 44100, 16)
	if err != nil {
		t.Fatalf("NewWriter() = %v", err)
	}
	frame := make([]float32, 512)
	for i := range frame {
		frame[i] = 0.1
	}
	for i := 0; i < 20; i++ {
		if err := w.WriteFrame(frame); err != nil {
			t.Fatalf("WriteFrame() = %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
}

func TestHandle_FullControlSurfaceEndToEnd(t *testing.T) {
	sourcePath := filepath.Join(t.TempDir(), "source.wav")
	writeTestWav(t, sourcePath)

	h := New(44100)
	if rc := h.LoadAudioFromFile(sourcePath); rc != 0 {
		t.Fatalf("LoadAudioFromFile() = %d, want 0", rc)
	}

	h.GenerateGrainEnvelope(256)
	if env := h.GetGrainEnvelope(); len(env) != 256 {
		t.Fatalf("len(GetGrainEnvelope()) = %d, want 256", len(env))
	}
	if src := h.GetSourceArray(); len(src) == 0 {
		t.Fatal("expected a non-empty source array after loading")
	}

	h.SetParams(0.1, 20, 1.5, 1.0)
	h.SetGrainPitch(1.1)
	h.SetGrainOverlap(2.0)

	if got := h.GetMasterSampleRate(); got != 44100 {
		t.Fatalf("GetMasterSampleRate() = %d, want 44100", got)
	}

	h.StartScheduler()
	time.Sleep(15 * time.Millisecond)
	h.StopScheduler()

	if h.NormalizedPosition() < 0 || h.NormalizedPosition() > 1 {
		t.Fatalf("NormalizedPosition() = %v, out of [0,1]", h.NormalizedPosition())
	}

	engine, err := h.CreateAudioEngine()
	if err != nil {
		t.Fatalf("CreateAudioEngine() = %v", err)
	}
	defer engine.Destroy()

	if rc := engine.Start(); rc != 0 {
		t.Fatalf("Engine.Start() = %d, want 0", rc)
	}
	defer engine.Stop()

	recordPath := filepath.Join(t.TempDir(), "recorded.wav")
	if rc := engine.Record(recordPath); rc != 0 {
		t.Fatalf("Engine.Record() = %d, want 0", rc)
	}
	if rc := engine.StopRecording(); rc != 0 {
		t.Fatalf("Engine.StopRecording() = %d, want 0", rc)
	}
}

func TestHandle_LoadAudioFromFile_MissingFileFails(t *testing.T) {
	h := New(44100)
	if rc := h.LoadAudioFromFile(filepath.Join(t.TempDir(), "missing.wav")); rc != -1 {
		t.Fatalf("LoadAudioFromFile(missing) = %d, want -1", rc)
	}
}
