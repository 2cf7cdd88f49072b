package geomap3d

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestRayIntersectsPolygon(t *testing.T) {
	square := [][]float64{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}}
	down := r3.Vec{Z: -1}

	testCases := []struct {
		name     string
		ray      Ray
		hit      bool
		distance float64
	}{
		{name: "straight down through centre", ray: Ray{Origin: r3.Vec{Z: 5}, Direction: down}, hit: true, distance: 5},
		{name: "from below", ray: Ray{Origin: r3.Vec{Z: -2}, Direction: r3.Vec{Z: 1}}, hit: true, distance: 2},
		{name: "outside", ray: Ray{Origin: r3.Vec{X: 2, Z: 5}, Direction: down}, hit: false},
		{name: "pointing away", ray: Ray{Origin: r3.Vec{Z: 5}, Direction: r3.Vec{Z: 1}}, hit: false},
		{name: "parallel", ray: Ray{Origin: r3.Vec{X: -5, Z: 0.5}, Direction: r3.Vec{X: 1}}, hit: false},
		{
			name:     "slanted",
			ray:      Ray{Origin: r3.Vec{X: -3, Z: 4}, Direction: r3.Unit(r3.Vec{X: 3, Z: -4})},
			hit:      true,
			distance: 5,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, ok := rayIntersectsPolygon(tc.ray, square)
			if ok != tc.hit {
				t.Fatalf("hit = %v, want %v", ok, tc.hit)
			}
			if ok && !almostEqual(d, tc.distance) {
				t.Errorf("distance = %v, want %v", d, tc.distance)
			}
		})
	}
}

func TestIsPointInPolygonVerticalFace(t *testing.T) {
	// A wall in the x = 0 plane.
	wall := [][]float64{{0, 0, 0}, {0, 2, 0}, {0, 2, 2}, {0, 0, 2}}
	normal := r3.Vec{X: 1}
	if !isPointInPolygon(r3.Vec{Y: 1, Z: 1}, wall, normal) {
		t.Error("centre of wall reported outside")
	}
	if isPointInPolygon(r3.Vec{Y: 3, Z: 1}, wall, normal) {
		t.Error("point beside wall reported inside")
	}
}

func TestRayIntersectsDiagonalWall(t *testing.T) {
	// A wall standing on an edge at 45 degrees, its normal has equal X and Y parts.
	wall := [][]float64{{0, -1, 0}, {1, 0, 0}, {1, 0, 4}, {0, -1, 4}}
	dir := r3.Unit(r3.Vec{X: -1, Y: 1})
	testCases := []struct {
		name     string
		ray      Ray
		hit      bool
		distance float64
	}{
		{name: "centre", ray: Ray{Origin: r3.Vec{X: 5.5, Y: -5.5, Z: 2}, Direction: dir}, hit: true, distance: 5 * math.Sqrt2},
		{name: "above", ray: Ray{Origin: r3.Vec{X: 5.5, Y: -5.5, Z: 5}, Direction: dir}, hit: false},
		{name: "past the end", ray: Ray{Origin: r3.Vec{X: 7, Y: -5, Z: 2}, Direction: dir}, hit: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, ok := rayIntersectsPolygon(tc.ray, wall)
			if ok != tc.hit {
				t.Fatalf("hit = %v, want %v", ok, tc.hit)
			}
			if ok && !almostEqual(d, tc.distance) {
				t.Errorf("distance = %v, want %v", d, tc.distance)
			}
		})
	}
}

func TestRayIntersectsBox(t *testing.T) {
	lo, hi := r3.Vec{X: -1, Y: -1, Z: 0}, r3.Vec{X: 1, Y: 1, Z: 4}
	testCases := []struct {
		name string
		ray  Ray
		want bool
	}{
		{name: "through", ray: Ray{Origin: r3.Vec{Z: 10}, Direction: r3.Vec{Z: -1}}, want: true},
		{name: "inside", ray: Ray{Origin: r3.Vec{Z: 2}, Direction: r3.Vec{X: 1}}, want: true},
		{name: "beside", ray: Ray{Origin: r3.Vec{X: 2, Z: 10}, Direction: r3.Vec{Z: -1}}, want: false},
		{name: "behind", ray: Ray{Origin: r3.Vec{Z: 10}, Direction: r3.Vec{Z: 1}}, want: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := rayIntersectsBox(tc.ray, lo, hi); got != tc.want {
				t.Errorf("rayIntersectsBox() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRayDistanceToSegment(t *testing.T) {
	ray := Ray{Origin: r3.Vec{Z: 10}, Direction: r3.Vec{Z: -1}}
	testCases := []struct {
		name   string
		a, b   r3.Vec
		t      float64
		distSq float64
	}{
		{name: "crossing", a: r3.Vec{X: -1}, b: r3.Vec{X: 1}, t: 10, distSq: 0},
		{name: "offset", a: r3.Vec{X: -1, Y: 0.5, Z: 4}, b: r3.Vec{X: 1, Y: 0.5, Z: 4}, t: 6, distSq: 0.25},
		{name: "past the end", a: r3.Vec{X: 2}, b: r3.Vec{X: 3}, t: 10, distSq: 4},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gotT, gotD := rayDistanceSqToSegment(ray, tc.a, tc.b)
			if !almostEqual(gotT, tc.t) || !almostEqual(gotD, tc.distSq) {
				t.Errorf("rayDistanceSqToSegment() = (%v, %v), want (%v, %v)", gotT, gotD, tc.t, tc.distSq)
			}
		})
	}
}

func TestIntersectObjectsSortedAndRecursive(t *testing.T) {
	low := NewMesh("low", NewMaterial(ColorFill, 1), NewMaterial(ColorEdge, 1))
	extrude(low, [][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}, 1)
	low.Finished()

	high := NewMesh("high", NewMaterial(ColorFill, 1), NewMaterial(ColorEdge, 1))
	extrude(high, [][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}, 3)
	high.Finished()

	outline := NewLine(ColorOutline)
	outline.AddPoint(-5, 0.5, 8)
	outline.AddPoint(5, 0.5, 8)

	group := NewGroup("g")
	group.Add(low, NewGroup("nested"))
	group.Children()[1].(*Group).Add(high, outline)

	rc := NewRaycaster()
	rc.Ray = Ray{Origin: r3.Vec{X: 0.3, Y: 0.1, Z: 10}, Direction: r3.Vec{Z: -1}}

	hits := rc.IntersectObjects([]Object{group}, true)
	if len(hits) == 0 {
		t.Fatal("no hits")
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Distance < hits[i-1].Distance {
			t.Fatalf("hits not sorted: %v then %v", hits[i-1].Distance, hits[i].Distance)
		}
	}
	if hits[0].Object != outline || !almostEqual(hits[0].Distance, 2) {
		t.Errorf("first hit = %T at %v, want the outline at 2", hits[0].Object, hits[0].Distance)
	}
	if hits[1].Object != high || !almostEqual(hits[1].Distance, 7) {
		t.Errorf("second hit = %v at %v, want high at 7", hits[1].Object, hits[1].Distance)
	}

	if flat := rc.IntersectObjects([]Object{group}, false); len(flat) != 0 {
		t.Errorf("non-recursive cast on a group hit %d objects", len(flat))
	}

	rc.LineThreshold = 0.1
	hits = rc.IntersectObject(group, true)
	if hits[0].Object == outline {
		t.Error("outline hit outside the line threshold")
	}
}

func TestSetFromCamera(t *testing.T) {
	cam := newTestCamera(1)
	rc := NewRaycaster()
	rc.SetFromCamera(Vector2{}, cam)

	pos := cam.GetPosition()
	if rc.Ray.Origin != (r3.Vec{X: pos.X(), Y: pos.Y(), Z: pos.Z()}) {
		t.Errorf("origin = %v, want camera position", rc.Ray.Origin)
	}
	if math.Abs(r3.Norm(rc.Ray.Direction)-1) > 1e-9 {
		t.Errorf("direction not unit length: %v", rc.Ray.Direction)
	}
	want := r3.Unit(r3.Vec{Y: -30, Z: -150})
	if r3.Norm(r3.Sub(rc.Ray.Direction, want)) > 1e-6 {
		t.Errorf("direction = %v, want %v", rc.Ray.Direction, want)
	}
}
