package audio

import (
	"encoding/binary"
	"math"
)

// floatBytesLE packs interleaved float32 samples into a little-endian
// byte slice, the wire format malgo's FormatF32 stream expects.
func floatBytesLE(samples []float32, dst []byte) {
	for i, s := range samples {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(s))
	}
}
