package grain

import (
	"testing"

	"pgregory.net/rapid"
)

func TestClampOverlap_StaysInBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		v := rapid.Float32Range(-100, 100).Draw(rt, "v")
		got := ClampOverlap(v)
		if got < MinOverlap || got > MaxOverlap {
			rt.Fatalf("ClampOverlap(%v) = %v, out of [%v,%v]", v, got, MinOverlap, MaxOverlap)
		}
	})
}

func TestClampPitch_StaysInBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		v := rapid.Float32Range(-100, 100).Draw(rt, "v")
		got := ClampPitch(v)
		if got < MinPitch || got > MaxPitch {
			rt.Fatalf("ClampPitch(%v) = %v, out of [%v,%v]", v, got, MinPitch, MaxPitch)
		}
	})
}

func TestStartFromNormalized_ClampsInputAndScales(t *testing.T) {
	cases := []struct {
		position float32
		fileSize uint
		want     float32
	}{
		{0, 1000, 0},
		{1, 1000, 1000},
		{0.5, 1000, 500},
		{-1, 1000, 0},
		{2, 1000, 1000},
	}
	for _, c := range cases {
		got := StartFromNormalized(c.position, c.fileSize)
		if got != c.want {
			t.Errorf("StartFromNormalized(%v, %d) = %v, want %v", c.position, c.fileSize, got, c.want)
		}
	}
}
