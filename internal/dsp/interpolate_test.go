package dsp

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func TestInterpolate_EmptyBufferIsSilence(t *testing.T) {
	for _, k := range []Kernel{KernelLinear, KernelHermite, KernelCubic, KernelSinc} {
		if got := Interpolate(k, nil, 0); got != 0 {
			t.Errorf("kernel %d: Interpolate(nil, 0) = %v, want 0", k, got)
		}
	}
}

func TestInterpolate_IdentityAtIntegerIndex(t *testing.T) {
	buf := []float32{0.1, -0.4, 0.9, 0.2, -0.7, 0.3}
	for _, k := range []Kernel{KernelLinear, KernelHermite, KernelCubic, KernelSinc} {
		for i, want := range buf {
			got := Interpolate(k, buf, float32(i))
			if math.Abs(float64(got-want)) > 1e-4 {
				t.Errorf("kernel %d at integer index %d: got %v, want %v", k, i, got, want)
			}
		}
	}
}

func TestInterpolate_FarOutOfRangeReadsZero(t *testing.T) {
	buf := []float32{1, 1, 1, 1}
	for _, k := range []Kernel{KernelLinear, KernelHermite, KernelCubic, KernelSinc} {
		if got := Interpolate(k, buf, -10); got != 0 {
			t.Errorf("kernel %d: Interpolate(buf, -10) = %v, want 0", k, got)
		}
	}
}

func TestLinear_MidpointIsAverage(t *testing.T) {
	buf := []float32{0, 1}
	got := Interpolate(KernelLinear, buf, 0.5)
	want := float32(0.5)
	if math.Abs(float64(got-want)) > 1e-6 {
		t.Errorf("linear midpoint = %v, want %v", got, want)
	}
}

// Every kernel reproduces a constant buffer exactly, at any fractional
// index well inside the buffer.
func TestInterpolate_ConstantBufferReproducesExactly(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		value := rapid.Float32Range(-1, 1).Draw(rt, "value")
		buf := make([]float32, 16)
		for i := range buf {
			buf[i] = value
		}
		x := rapid.Float32Range(3, 12).Draw(rt, "x")
		for _, k := range []Kernel{KernelLinear, KernelHermite, KernelCubic, KernelSinc} {
			got := Interpolate(k, buf, x)
			if math.Abs(float64(got-value)) > 1e-3 {
				rt.Fatalf("kernel %d: Interpolate(const %v, %v) = %v", k, value, x, got)
			}
		}
	})
}
