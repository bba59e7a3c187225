package dsp

import "math"

// Resample converts an interleaved multi-channel buffer from inRate to
// outRate by per-channel fractional-rate reading, linearly
// interpolating between adjacent input samples. If the rates match,
// the input is returned unchanged. This is an offline operation, run
// once when a source file is loaded — it is never called from the
// real-time audio path.
func Resample(interleaved []float32, channels, inRate, outRate int) []float32 {
	if inRate == outRate || channels <= 0 || len(interleaved) == 0 {
		return interleaved
	}

	inFrames := len(interleaved) / channels
	outFrames := int(math.Ceil(float64(inFrames) * float64(outRate) / float64(inRate)))

	chans := deinterleave(interleaved, channels, inFrames)

	ratio := float32(inRate) / float32(outRate)
	outChans := make([][]float32, channels)
	for c := 0; c < channels; c++ {
		outChans[c] = resampleChannel(chans[c], outFrames, ratio)
	}

	return reinterleave(outChans, outFrames)
}

// ResampleMono is a convenience wrapper for single-channel buffers.
func ResampleMono(samples []float32, inRate, outRate int) []float32 {
	return Resample(samples, 1, inRate, outRate)
}

func deinterleave(interleaved []float32, channels, frames int) [][]float32 {
	chans := make([][]float32, channels)
	for c := 0; c < channels; c++ {
		chans[c] = make([]float32, frames)
	}
	for f := 0; f < frames; f++ {
		base := f * channels
		for c := 0; c < channels; c++ {
			idx := base + c
			if idx < len(interleaved) {
				chans[c][f] = interleaved[idx]
			}
		}
	}
	return chans
}

func resampleChannel(in []float32, outFrames int, ratio float32) []float32 {
	out := make([]float32, outFrames)
	var pos float32
	for i := 0; i < outFrames; i++ {
		out[i] = linear(in, pos)
		pos += ratio
	}
	return out
}

func reinterleave(chans [][]float32, frames int) []float32 {
	channels := len(chans)
	out := make([]float32, frames*channels)
	for f := 0; f < frames; f++ {
		base := f * channels
		for c := 0; c < channels; c++ {
			out[base+c] = chans[c][f]
		}
	}
	return out
}
