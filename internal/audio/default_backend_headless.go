//go:build headless

package audio

// NewDefaultBackend returns the headless stand-in backend used by the
// test suite.
func NewDefaultBackend() (Backend, error) {
	return NewHeadlessBackend(), nil
}
