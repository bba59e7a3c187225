// Package dsp provides the pure sample-interpolation and resampling
// kernels shared by the grain engine and the source loader.
package dsp

import "math"

// Kernel selects one of the four fractional-index interpolators.
type Kernel int

const (
	KernelLinear Kernel = iota
	KernelHermite
	KernelCubic
	KernelSinc
)

// Interpolate reads buf at the fractional index x using the given
// kernel. Out-of-range indices and empty buffers return 0.
func Interpolate(kernel Kernel, buf []float32, x float32) float32 {
	if len(buf) == 0 {
		return 0
	}
	switch kernel {
	case KernelHermite:
		return hermite(buf, x)
	case KernelCubic:
		return cubic(buf, x)
	case KernelSinc:
		return sinc(buf, x)
	default:
		return linear(buf, x)
	}
}

func sampleAt(buf []float32, i int) float32 {
	if i < 0 || i >= len(buf) {
		return 0
	}
	return buf[i]
}

func linear(buf []float32, x float32) float32 {
	i := int(math.Floor(float64(x)))
	frac := x - float32(i)
	s0 := sampleAt(buf, i)
	s1 := sampleAt(buf, i+1)
	return s0 + frac*(s1-s0)
}

// hermite is the classic 4-point, 3rd-order Hermite interpolator.
func hermite(buf []float32, x float32) float32 {
	i := int(math.Floor(float64(x)))
	frac := x - float32(i)

	s0 := sampleAt(buf, i-1)
	s1 := sampleAt(buf, i)
	s2 := sampleAt(buf, i+1)
	s3 := sampleAt(buf, i+2)

	c1 := 0.5 * (s2 - s0)
	c2 := s0 - 2.5*s1 + 2*s2 - 0.5*s3
	c3 := -0.5*s0 + 1.5*s1 - 1.5*s2 + 0.5*s3

	return s1 + c1*frac + c2*frac*frac + c3*frac*frac*frac
}

// cubic is a Catmull-Rom-style spline built from the three nearest
// samples (p0, p1, p2).
func cubic(buf []float32, x float32) float32 {
	i := int(math.Floor(float64(x)))
	frac := x - float32(i)

	p0 := sampleAt(buf, i-1)
	p1 := sampleAt(buf, i)
	p2 := sampleAt(buf, i+1)

	a := (p2 - p0) / 2
	b := p1 - p0 - a
	c := p2 - p1 - a
	d := p1

	return a*frac*frac*frac + b*frac*frac + c*frac + d
}

// sinc is a 5-tap windowed-sinc interpolator, normalised by the sum of
// its own weights so a flat input reproduces exactly.
func sinc(buf []float32, x float32) float32 {
	i := int(math.Floor(float64(x)))
	frac := x - float32(i)

	var result, weightSum float32
	for j := -2; j <= 2; j++ {
		w := sincWeight(frac - float32(j))
		weightSum += w
		result += sampleAt(buf, i+j) * w
	}
	if weightSum == 0 {
		return 0
	}
	return result / weightSum
}

func sincWeight(t float32) float32 {
	if t == 0 {
		return 1
	}
	pt := math.Pi * float64(t)
	return float32(math.Sin(pt) / pt)
}
