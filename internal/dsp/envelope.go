package dsp

import "math"

// GenerateEnvelope fills a raised-cosine (Hann) window of the
// requested length: 0 at both boundaries, 1 at the centre, symmetric.
// Any previous contents are discarded.
func GenerateEnvelope(size int) []float32 {
	env := make([]float32, size)
	if size == 0 {
		return env
	}
	if size == 1 {
		env[0] = 1
		return env
	}
	for i := 0; i < size; i++ {
		x := 2*float64(i)/float64(size-1) - 1
		env[i] = float32(0.5 + 0.5*math.Cos(math.Pi*x))
	}
	return env
}
