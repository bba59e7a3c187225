//go:build !headless

package audio

// NewDefaultBackend returns the default real-device backend (malgo),
// used by internal/audio.Engine unless a caller explicitly selects
// another Backend implementation.
func NewDefaultBackend() (Backend, error) {
	return NewMalgoBackend()
}
