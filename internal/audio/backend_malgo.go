//go:build !headless

package audio

import (
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"
)

// MalgoBackend is the default Backend: it uses miniaudio (via malgo)
// for device enumeration, default-device/default-config lookup, and
// output stream construction. Grounded on
// sherpa-voice-assistant/internal/audio/playback.go's
// InitContext/DefaultDeviceConfig/InitDevice/DeviceCallbacks shape.
type MalgoBackend struct {
	mu     sync.Mutex
	ctx    *malgo.AllocatedContext
	device *malgo.Device
}

// NewMalgoBackend initializes a malgo audio context.
func NewMalgoBackend() (*MalgoBackend, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("init audio context: %w", err)
	}
	return &MalgoBackend{ctx: ctx}, nil
}

func (b *MalgoBackend) ListDevices() ([]DeviceInfo, error) {
	infos, err := b.ctx.Devices(malgo.Playback)
	if err != nil {
		return nil, fmt.Errorf("enumerate output devices: %w", err)
	}
	out := make([]DeviceInfo, len(infos))
	for i, d := range infos {
		out[i] = DeviceInfo{Index: i, Name: d.Name()}
	}
	return out, nil
}

func (b *MalgoBackend) DefaultDevice() (DeviceInfo, error) {
	devices, err := b.ListDevices()
	if err != nil {
		return DeviceInfo{}, err
	}
	for _, d := range devices {
		return d, nil // miniaudio reports the default device first
	}
	return DeviceInfo{}, ErrNoDevice
}

func (b *MalgoBackend) Start(cfg StreamConfig, cb Callback) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.device != nil {
		b.device.Uninit()
		b.device = nil
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatF32
	deviceConfig.Playback.Channels = uint32(cfg.Channels)
	deviceConfig.SampleRate = uint32(cfg.SampleRate)

	if cfg.DeviceIndex >= 0 {
		infos, err := b.ctx.Devices(malgo.Playback)
		if err != nil {
			return fmt.Errorf("enumerate output devices: %w", err)
		}
		if cfg.DeviceIndex >= len(infos) {
			return ErrDeviceIndexOutOfRange
		}
		deviceConfig.Playback.DeviceID = infos[cfg.DeviceIndex].ID
	}

	channels := cfg.Channels
	onSendFrames := func(pOutputSample, pInputSample []byte, framecount uint32) {
		frames := int(framecount)
		data := make([]float32, frames*channels)
		cb(data, frames, channels)
		floatBytesLE(data, pOutputSample)
	}

	callbacks := malgo.DeviceCallbacks{Data: onSendFrames}
	device, err := malgo.InitDevice(b.ctx.Context, deviceConfig, callbacks)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCannotBuildStream, err)
	}
	if err := device.Start(); err != nil {
		device.Uninit()
		return fmt.Errorf("%w: %v", ErrCannotBuildStream, err)
	}

	b.device = device
	return nil
}

func (b *MalgoBackend) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.device == nil {
		return nil
	}
	b.device.Uninit()
	b.device = nil
	return nil
}

func (b *MalgoBackend) Close() error {
	if err := b.Stop(); err != nil {
		return err
	}
	b.ctx.Uninit()
	return b.ctx.Free()
}
