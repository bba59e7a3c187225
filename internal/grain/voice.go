package grain

import "github.com/intuitionamiga/granularsynth/internal/dsp"

// Voice is a mutable per-slot parameter bundle. The pool holds four
// voices indexed by a round-robin counter c in {0,1,2,3}.
type Voice struct {
	MyStart       float32
	MyPitch       float32
	MyDur         float32
	Interpolation dsp.Kernel
}

// NewVoice returns a voice with unity duration/pitch and the default
// sinc interpolation kernel.
func NewVoice() *Voice {
	return &Voice{
		MyDur:         1.0,
		MyPitch:       1.0,
		Interpolation: dsp.KernelSinc,
	}
}

// ProcessGrain synthesizes one finite, windowed, pitch-shifted,
// interpolated grain from source, reading the amplitude window from
// envelope. The output length is
// round(v.MyDur * params.GrainDurationMs / 1000 * params.Specs.SampleRate).
// Out-of-bounds source reads and an empty source both read as silence.
func (v *Voice) ProcessGrain(source, envelope []float32, params Params) []float32 {
	n := int(round(v.MyDur * float32(params.GrainDurationMs) / 1000 * float32(params.Specs.SampleRate)))
	if n <= 0 {
		return []float32{}
	}

	out := make([]float32, n)
	base := params.GrainStart + v.MyStart
	rate := v.MyPitch * params.GrainPitch

	envLen := len(envelope)
	for i := 0; i < n; i++ {
		envPos := float32(i) / float32(n)
		var envValue float32
		if envLen > 0 {
			envX := envPos * float32(envLen-1)
			envValue = dsp.Interpolate(v.Interpolation, envelope, envX)
		}

		srcX := base + float32(i)*rate
		srcValue := dsp.Interpolate(v.Interpolation, source, srcX)

		out[i] = srcValue * envValue
	}
	return out
}

func round(v float32) float32 {
	if v < 0 {
		return -round(-v)
	}
	return float32(int(v + 0.5))
}
