//go:build headless

package audio

// HeadlessBackend is a no-op Backend used by every test in this repo
// that exercises the engine without a real device.
type HeadlessBackend struct {
	cfg     StreamConfig
	cb      Callback
	started bool
}

func NewHeadlessBackend() *HeadlessBackend {
	return &HeadlessBackend{}
}

func (b *HeadlessBackend) ListDevices() ([]DeviceInfo, error) {
	return []DeviceInfo{{Index: 0, Name: "headless"}}, nil
}

func (b *HeadlessBackend) DefaultDevice() (DeviceInfo, error) {
	return DeviceInfo{Index: 0, Name: "headless"}, nil
}

func (b *HeadlessBackend) Start(cfg StreamConfig, cb Callback) error {
	b.cfg = cfg
	b.cb = cb
	b.started = true
	return nil
}

func (b *HeadlessBackend) Stop() error {
	b.started = false
	return nil
}

func (b *HeadlessBackend) Close() error {
	return b.Stop()
}

// Pump manually drives frames through the installed callback, letting
// tests exercise the mixer without a real-time device thread.
func (b *HeadlessBackend) Pump(frames int) []float32 {
	if !b.started || b.cb == nil {
		return nil
	}
	data := make([]float32, frames*b.cfg.Channels)
	b.cb(data, frames, b.cfg.Channels)
	return data
}
