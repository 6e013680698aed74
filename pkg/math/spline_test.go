// pkg/math/spline_test.go
// Copyright(c) 2025 galmap contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"math/rand"
	"testing"
)

func TestDecimateStroke(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	makeStroke := func(n int) [][2]float32 {
		pts := make([][2]float32, n)
		for i := range pts {
			pts[i] = [2]float32{float32(i) + r.Float32(), 10 * r.Float32()}
		}
		return pts
	}

	for _, n := range []int{0, 1, 2, 5, 19, 20, 21, 40, 200, 1000} {
		for _, target := range []int{2, 5, 20} {
			pts := makeStroke(n)
			dec := DecimateStroke(pts, target)

			if n <= target {
				if len(dec) != n {
					t.Errorf("n %d target %d: short input not returned unchanged", n, target)
				}
				continue
			}
			if len(dec) > target {
				t.Errorf("n %d target %d: got %d points", n, target, len(dec))
			}
			if dec[0] != pts[0] {
				t.Errorf("n %d target %d: first point not retained", n, target)
			}
			if dec[len(dec)-1] != pts[n-1] {
				t.Errorf("n %d target %d: last point not retained", n, target)
			}

			// Decimation must be a subsequence of the input.
			j := 0
			for _, d := range dec {
				for j < n && pts[j] != d {
					j++
				}
				if j == n {
					t.Errorf("n %d target %d: %v is not a subsequence point", n, target, d)
					break
				}
			}
		}
	}
}

func TestSmoothStroke(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	pts := make([][2]float32, 30)
	for i := range pts {
		pts[i] = [2]float32{float32(i), 5 * r.Float32()}
	}
	orig := make([][2]float32, len(pts))
	copy(orig, pts)

	for _, window := range []int{3, 5, 7} {
		sm := SmoothStroke(pts, window)
		if len(sm) != len(pts) {
			t.Errorf("window %d: length changed from %d to %d", window, len(pts), len(sm))
		}
		if sm[0] != pts[0] || sm[len(sm)-1] != pts[len(pts)-1] {
			t.Errorf("window %d: endpoints not preserved", window)
		}
		for i := range pts {
			if pts[i] != orig[i] {
				t.Fatalf("window %d: input mutated at %d", window, i)
			}
		}

		// Total wiggle shouldn't grow: smoothing is an averaging operation.
		if PolylineLength(sm) > PolylineLength(pts)+.001 {
			t.Errorf("window %d: smoothed stroke got longer", window)
		}
	}
}

func TestEvaluatePathStraight(t *testing.T) {
	start, end := [2]float32{1, 2}, [2]float32{3, -4}
	path := EvaluatePath(start, nil, end)
	if len(path) != 2 || path[0] != start || path[1] != end {
		t.Errorf("expected exactly {start, end}, got %v", path)
	}
}

func TestEvaluatePathAnchors(t *testing.T) {
	start, end := [2]float32{0, 0}, [2]float32{20, 0}
	shape := [][2]float32{{5, 3}, {10, 5}, {15, 3}}
	path := EvaluatePath(start, shape, end)

	if path[0] != start {
		t.Errorf("path does not start at the start anchor: %v", path[0])
	}
	if path[len(path)-1] != end {
		t.Errorf("path does not end at the end anchor: %v", path[len(path)-1])
	}
	// Every shape point must appear on the path exactly.
	for _, sp := range shape {
		found := false
		for _, p := range path {
			if p == sp {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("shape point %v not on evaluated path", sp)
		}
	}
}

func TestEvaluatePathCurveLength(t *testing.T) {
	// A single off-axis shape point: the curved path must be longer than
	// the straight line but not pathologically so.
	start, end := [2]float32{0, 0}, [2]float32{20, 0}
	path := EvaluatePath(start, [][2]float32{{10, 5}}, end)
	l := PolylineLength(path)
	straight := Distance2f(start, end)
	if l <= straight {
		t.Errorf("curved length %f not greater than straight %f", l, straight)
	}
	if l >= 2*straight {
		t.Errorf("curved length %f implausibly long (straight %f)", l, straight)
	}
}
