package geomap3d

import (
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// cleanRing drops repeated consecutive points and the closing point of a ring.
func cleanRing(ring [][2]float64) [][2]float64 {
	out := make([][2]float64, 0, len(ring))
	for _, p := range ring {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

// signedArea is positive for counter-clockwise rings.
func signedArea(ring [][2]float64) float64 {
	var area float64
	n := len(ring)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += ring[i][0]*ring[j][1] - ring[j][0]*ring[i][1]
	}
	return area / 2
}

func cross2(a, b, c [2]float64) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func pointInTriangle(p, a, b, c [2]float64) bool {
	d1 := cross2(a, b, p)
	d2 := cross2(b, c, p)
	d3 := cross2(c, a, p)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// isEar reports whether the corner at position i of the remaining polygon is convex and
// holds no other remaining vertex.
func isEar(ring [][2]float64, indices []int, i int) bool {
	n := len(indices)
	a := ring[indices[(i-1+n)%n]]
	b := ring[indices[i]]
	c := ring[indices[(i+1)%n]]
	if cross2(a, b, c) <= 0 {
		return false
	}
	for j := 0; j < n; j++ {
		if j == i || j == (i-1+n)%n || j == (i+1)%n {
			continue
		}
		p := ring[indices[j]]
		if p == a || p == b || p == c {
			continue
		}
		if pointInTriangle(p, a, b, c) {
			return false
		}
	}
	return true
}

// splitAtRepeats cuts a ring that touches itself at a vertex into loops that visit every
// point once. Loops hold indices into ring.
func splitAtRepeats(ring [][2]float64) [][]int {
	var loops [][]int
	path := make([]int, 0, len(ring))
	seen := make(map[[2]float64]int, len(ring))
	for i, p := range ring {
		at, ok := seen[p]
		if !ok {
			seen[p] = len(path)
			path = append(path, i)
			continue
		}
		if len(path)-at >= 3 {
			loops = append(loops, append([]int(nil), path[at:]...))
		}
		for _, idx := range path[at+1:] {
			delete(seen, ring[idx])
		}
		path = path[:at+1]
	}
	if len(path) >= 3 {
		loops = append(loops, path)
	}
	return loops
}

func loopArea(ring [][2]float64, loop []int) float64 {
	pts := make([][2]float64, len(loop))
	for i, idx := range loop {
		pts[i] = ring[idx]
	}
	return signedArea(pts)
}

func loopOutline(ring [][2]float64, loop []int) orb.Ring {
	outline := make(orb.Ring, 0, len(loop)+1)
	for _, idx := range loop {
		outline = append(outline, orb.Point(ring[idx]))
	}
	return append(outline, outline[0])
}

func centroid(ring [][2]float64, tri [3]int) orb.Point {
	a, b, c := ring[tri[0]], ring[tri[1]], ring[tri[2]]
	return orb.Point{(a[0] + b[0] + c[0]) / 3, (a[1] + b[1] + c[1]) / 3}
}

// triangulate returns counter-clockwise index triples covering a counter-clockwise ring.
// A ring touching itself is split at the shared vertices first. A clockwise loop lying
// inside another loop is a pinched-in hole and gets no triangles; any other clockwise
// loop is a lobe wound the other way and is filled.
func triangulate(ring [][2]float64) [][3]int {
	if len(ring) < 3 {
		return nil
	}
	var outer, inverted [][]int
	for _, loop := range splitAtRepeats(ring) {
		switch area := loopArea(ring, loop); {
		case area > 0:
			outer = append(outer, loop)
		case area < 0:
			slices.Reverse(loop)
			inverted = append(inverted, loop)
		}
	}

	var triangles [][3]int
	for _, loop := range outer {
		triangles = append(triangles, earClip(ring, loop)...)
	}
	for _, loop := range inverted {
		tris := earClip(ring, loop)
		if len(tris) == 0 {
			continue
		}
		c := centroid(ring, tris[0])
		hole := slices.ContainsFunc(outer, func(o []int) bool {
			return planar.RingContains(loopOutline(ring, o), c)
		})
		if !hole {
			triangles = append(triangles, tris...)
		}
	}
	return triangles
}

// earClip triangulates one simple counter-clockwise loop. Self intersecting input falls
// back to a fan for whatever remains, keeping only the fan triangles inside the loop.
func earClip(ring [][2]float64, loop []int) [][3]int {
	indices := append([]int(nil), loop...)
	triangles := make([][3]int, 0, len(indices)-2)

	start := 0
	for len(indices) > 3 {
		n := len(indices)
		earFound := false
		for k := 0; k < n; k++ {
			i := (start + k) % n
			if !isEar(ring, indices, i) {
				continue
			}
			triangles = append(triangles, [3]int{
				indices[(i-1+n)%n],
				indices[i],
				indices[(i+1)%n],
			})
			indices = append(indices[:i], indices[i+1:]...)
			start = i % len(indices)
			earFound = true
			break
		}

		if !earFound {
			return append(triangles, insideFan(ring, loop, indices)...)
		}
	}

	return append(triangles, [3]int{indices[0], indices[1], indices[2]})
}

func insideFan(ring [][2]float64, loop, indices []int) [][3]int {
	outline := loopOutline(ring, loop)
	var fan [][3]int
	for i := 1; i < len(indices)-1; i++ {
		tri := [3]int{indices[0], indices[i], indices[i+1]}
		if cross2(ring[tri[0]], ring[tri[1]], ring[tri[2]]) <= 0 {
			continue
		}
		if planar.RingContains(outline, centroid(ring, tri)) {
			fan = append(fan, tri)
		}
	}
	return fan
}
