//go:build !headless

package audio

import (
	"sync"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

// OtoBackend is a dependency-light alternate backend with no device
// enumeration (oto always targets the host default device). It uses
// an atomic.Pointer-guarded hot Read path, with a mutex only around
// setup/teardown.
type OtoBackend struct {
	ctx      *oto.Context
	player   *oto.Player
	cb       atomic.Pointer[Callback]
	channels int
	mutex    sync.Mutex
}

// NewOtoBackend is provided for callers that want the simpler backend
// explicitly; it is not wired behind Backend selection by default
// (MalgoBackend is the default for its device enumeration support).
func NewOtoBackend() *OtoBackend {
	return &OtoBackend{}
}

func (b *OtoBackend) ListDevices() ([]DeviceInfo, error) {
	return []DeviceInfo{{Index: 0, Name: "default"}}, nil
}

func (b *OtoBackend) DefaultDevice() (DeviceInfo, error) {
	return DeviceInfo{Index: 0, Name: "default"}, nil
}

func (b *OtoBackend) Start(cfg StreamConfig, cb Callback) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	op := &oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: cfg.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return ErrCannotBuildStream
	}
	<-ready

	b.ctx = ctx
	b.channels = cfg.Channels
	b.cb.Store(&cb)
	b.player = ctx.NewPlayer(b)
	b.player.Play()
	return nil
}

// Read implements io.Reader for oto.NewPlayer: it is the real-time hot
// path, called repeatedly by oto's internal mixing goroutine.
func (b *OtoBackend) Read(p []byte) (int, error) {
	cb := b.cb.Load()
	if cb == nil {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	channels := b.channels
	if channels <= 0 {
		channels = 1
	}
	frames := len(p) / 4 / channels
	samples := make([]float32, frames*channels)
	(*cb)(samples, frames, channels)

	floatBytesLE(samples, p[:len(samples)*4])
	return len(samples) * 4, nil
}

func (b *OtoBackend) Stop() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if b.player != nil {
		b.player.Close()
		b.player = nil
	}
	return nil
}

func (b *OtoBackend) Close() error {
	return b.Stop()
}
