// pkg/math/spline.go
// Copyright(c) 2025 galmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

// Freehand route strokes arrive as dense, noisy mouse samples; the
// functions here reduce them to a small set of shape points and expand
// shape points back out into a smooth renderable polyline.

// PathSamplesPerSpan is the fixed tessellation rate used by EvaluatePath
// for each span between successive anchor points.
const PathSamplesPerSpan = 8

// DecimateStroke returns a subsequence of pts with at most target points,
// sampled at a uniform index stride. The first and last input points are
// always retained. If pts already has target or fewer points it is
// returned unchanged.
func DecimateStroke(pts [][2]float32, target int) [][2]float32 {
	if target < 2 || len(pts) <= target {
		return pts
	}

	// Stride chosen so that the strided samples plus the forced final
	// point never exceed target.
	n := len(pts)
	step := ((n - 1) + (target - 2)) / (target - 1)

	out := make([][2]float32, 0, target)
	for i := 0; i < n; i += step {
		out = append(out, pts[i])
	}
	if out[len(out)-1] != pts[n-1] {
		out = append(out, pts[n-1])
	}
	return out
}

// SmoothStroke returns a copy of pts where each interior point is replaced
// by the moving average of the points within the given window centered on
// it. The window must be odd; near the ends it shrinks symmetrically so it
// stays centered. The first and last points are passed through unchanged
// so the stroke still meets its anchors exactly. pts is not modified.
func SmoothStroke(pts [][2]float32, window int) [][2]float32 {
	out := make([][2]float32, len(pts))
	copy(out, pts)
	if len(pts) < 3 || window < 3 {
		return out
	}

	h := window / 2
	for i := 1; i < len(pts)-1; i++ {
		// Shrink the half-width near the endpoints to keep the average
		// centered on pts[i].
		hw := Min(h, Min(i, len(pts)-1-i))
		var sum [2]float32
		for j := i - hw; j <= i+hw; j++ {
			sum = Add2f(sum, pts[j])
		}
		out[i] = Scale2f(sum, 1/float32(2*hw+1))
	}
	return out
}

// EvaluatePath returns the full polyline to draw (and measure) for a route
// from start to end through the given intermediate shape points. With no
// shape points the result is exactly {start, end}. Otherwise a Catmull-Rom
// spline is evaluated through all of the anchors, with each interior
// anchor's tangent taken from its two neighbors and one-sided tangents at
// the ends. Every anchor is hit exactly.
func EvaluatePath(start [2]float32, shape [][2]float32, end [2]float32) [][2]float32 {
	if len(shape) == 0 {
		return [][2]float32{start, end}
	}

	anchors := make([][2]float32, 0, len(shape)+2)
	anchors = append(anchors, start)
	anchors = append(anchors, shape...)
	anchors = append(anchors, end)

	tangent := func(i int) [2]float32 {
		switch i {
		case 0:
			return Sub2f(anchors[1], anchors[0])
		case len(anchors) - 1:
			return Sub2f(anchors[i], anchors[i-1])
		default:
			return Scale2f(Sub2f(anchors[i+1], anchors[i-1]), 0.5)
		}
	}

	out := make([][2]float32, 0, (len(anchors)-1)*PathSamplesPerSpan+1)
	for i := 0; i < len(anchors)-1; i++ {
		p0, p1 := anchors[i], anchors[i+1]
		m0, m1 := tangent(i), tangent(i+1)
		out = append(out, p0) // anchor, exactly
		for s := 1; s < PathSamplesPerSpan; s++ {
			t := float32(s) / PathSamplesPerSpan
			out = append(out, hermite(t, p0, p1, m0, m1))
		}
	}
	return append(out, anchors[len(anchors)-1])
}

// hermite evaluates the cubic Hermite interpolant at t for endpoints p0,
// p1 with tangents m0, m1.
func hermite(t float32, p0, p1, m0, m1 [2]float32) [2]float32 {
	t2, t3 := t*t, t*t*t
	p := Scale2f(p0, 2*t3-3*t2+1)
	p = Add2f(p, Scale2f(m0, t3-2*t2+t))
	p = Add2f(p, Scale2f(p1, -2*t3+3*t2))
	return Add2f(p, Scale2f(m1, t3-t2))
}
