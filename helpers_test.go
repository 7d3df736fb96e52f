package mcubes

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

func elem(s float64) r3.Vec { return r3.Vec{X: s, Y: s, Z: s} }

func lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

// distToSegment returns the distance from p to the segment a-b.
func distToSegment(p, a, b r3.Vec) float64 {
	ab := r3.Sub(b, a)
	l2 := r3.Norm2(ab)
	if l2 == 0 {
		return r3.Norm(r3.Sub(p, a))
	}
	t := math.Min(1, math.Max(0, r3.Dot(r3.Sub(p, a), ab)/l2))
	return r3.Norm(r3.Sub(p, lerp(a, b, t)))
}

func boxContains(b r3.Box, v r3.Vec) bool {
	return b.Min.X <= v.X && b.Min.Y <= v.Y && b.Min.Z <= v.Z &&
		v.X <= b.Max.X && v.Y <= b.Max.Y && v.Z <= b.Max.Z
}
