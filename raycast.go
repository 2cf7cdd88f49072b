package geomap3d

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"
)

// A small epsilon value for floating-point comparisons to avoid precision errors.
const epsilon = 1e-9

// DefaultLineThreshold is how close, in world units, a ray has to pass a line to hit it.
const DefaultLineThreshold = 1.0

type Ray struct {
	Origin    r3.Vec
	Direction r3.Vec // unit length
}

func (r Ray) At(t float64) r3.Vec {
	return r3.Add(r.Origin, r3.Scale(t, r.Direction))
}

// Intersection is one hit of a ray. Index is the face of a mesh or the segment of a line.
type Intersection struct {
	Distance float64
	Point    r3.Vec
	Object   Object
	Index    int
}

type Raycaster struct {
	Ray           Ray
	Near, Far     float64
	LineThreshold float64
}

func NewRaycaster() *Raycaster {
	return &Raycaster{
		Far:           math.Inf(1),
		LineThreshold: DefaultLineThreshold,
	}
}

// SetFromCamera aims the ray from the camera through a point in normalised device
// coordinates.
func (rc *Raycaster) SetFromCamera(ndc Vector2, cam *Camera) {
	origin := cam.GetPosition()
	through := cam.Unproject(ndc, 0.5)
	dir := through.Sub(origin)
	rc.Ray = Ray{
		Origin:    r3.Vec{X: origin.X(), Y: origin.Y(), Z: origin.Z()},
		Direction: r3.Unit(r3.Vec{X: dir.X(), Y: dir.Y(), Z: dir.Z()}),
	}
}

// IntersectObjects returns every hit, nearest first.
func (rc *Raycaster) IntersectObjects(objs []Object, recursive bool) []Intersection {
	var hits []Intersection
	for _, obj := range objs {
		hits = rc.intersectObject(obj, recursive, hits)
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

func (rc *Raycaster) IntersectObject(obj Object, recursive bool) []Intersection {
	return rc.IntersectObjects([]Object{obj}, recursive)
}

func (rc *Raycaster) intersectObject(obj Object, recursive bool, hits []Intersection) []Intersection {
	switch o := obj.(type) {
	case *Mesh:
		hits = rc.intersectMesh(o, hits)
	case *Line:
		hits = rc.intersectLine(o, hits)
	}
	if recursive {
		for _, child := range obj.Children() {
			hits = rc.intersectObject(child, true, hits)
		}
	}
	return hits
}

func (rc *Raycaster) inRange(t float64) bool {
	return t >= rc.Near && t <= rc.Far
}

func (rc *Raycaster) intersectMesh(m *Mesh, hits []Intersection) []Intersection {
	if m.FaceCount() == 0 {
		return hits
	}
	lo, hi := m.Bounds()
	if !rayIntersectsBox(rc.Ray, lo, hi) {
		return hits
	}
	for i := 0; i < m.FaceCount(); i++ {
		t, ok := rayIntersectsPolygon(rc.Ray, m.FacePoints(i))
		if !ok || !rc.inRange(t) {
			continue
		}
		hits = append(hits, Intersection{
			Distance: t,
			Point:    rc.Ray.At(t),
			Object:   m,
			Index:    i,
		})
	}
	return hits
}

func (rc *Raycaster) intersectLine(l *Line, hits []Intersection) []Intersection {
	thresholdSq := rc.LineThreshold * rc.LineThreshold
	for i := 0; i+1 < len(l.Points); i++ {
		a, b := pointVec(l.Points[i]), pointVec(l.Points[i+1])
		t, distSq := rayDistanceSqToSegment(rc.Ray, a, b)
		if distSq > thresholdSq || !rc.inRange(t) {
			continue
		}
		hits = append(hits, Intersection{
			Distance: t,
			Point:    rc.Ray.At(t),
			Object:   l,
			Index:    i,
		})
	}
	return hits
}

func pointVec(p []float64) r3.Vec {
	return r3.Vec{X: p[0], Y: p[1], Z: p[2]}
}

// rayIntersectsBox is the slab test against an axis aligned box.
func rayIntersectsBox(r Ray, lo, hi r3.Vec) bool {
	tmin, tmax := 0.0, math.Inf(1)
	o := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	d := [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z}
	l := [3]float64{lo.X, lo.Y, lo.Z}
	h := [3]float64{hi.X, hi.Y, hi.Z}
	for axis := 0; axis < 3; axis++ {
		if math.Abs(d[axis]) < epsilon {
			if o[axis] < l[axis] || o[axis] > h[axis] {
				return false
			}
			continue
		}
		t1 := (l[axis] - o[axis]) / d[axis]
		t2 := (h[axis] - o[axis]) / d[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return false
		}
	}
	return true
}

// rayIntersectsPolygon returns the distance along the ray to a planar polygon. Faces are
// hit from both sides.
func rayIntersectsPolygon(r Ray, polygonPoints [][]float64) (float64, bool) {
	if len(polygonPoints) < 3 {
		return 0, false
	}

	face := NewFace(polygonPoints, MaterialFill, nil)
	plane := face.GetPlane()
	planeNormal := r3.Vec{X: plane.A, Y: plane.B, Z: plane.C}
	if r3.Norm(planeNormal) < epsilon {
		return 0, false
	}

	t, ok := plane.RayIntersect(r.Origin, r.Direction)
	if !ok {
		return 0, false
	}
	if !isPointInPolygon(r.At(t), polygonPoints, planeNormal) {
		return 0, false
	}
	return t, true
}

// isPointInPolygon checks a point known to be on the polygon's plane with an even-odd
// crossing count, after dropping the axis the normal is largest along.
func isPointInPolygon(point r3.Vec, polygonPoints [][]float64, normal r3.Vec) bool {
	absX := math.Abs(normal.X)
	absY := math.Abs(normal.Y)
	absZ := math.Abs(normal.Z)

	var u, v int
	switch {
	case absX >= absY && absX >= absZ:
		u, v = 1, 2
	case absY >= absZ:
		u, v = 0, 2
	default:
		u, v = 0, 1
	}

	pt := [3]float64{point.X, point.Y, point.Z}
	px, py := pt[u], pt[v]

	inside := false
	n := len(polygonPoints)
	for i := 0; i < n; i++ {
		a := polygonPoints[i]
		b := polygonPoints[(i+1)%n]
		if (a[v] > py) != (b[v] > py) {
			xCross := (b[u]-a[u])*(py-a[v])/(b[v]-a[v]) + a[u]
			if px < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// rayDistanceSqToSegment returns the ray parameter of the closest approach to segment
// a-b and the squared distance there.
func rayDistanceSqToSegment(r Ray, a, b r3.Vec) (float64, float64) {
	e := r3.Sub(b, a)
	segLenSq := r3.Dot(e, e)

	var u float64
	if segLenSq > epsilon {
		w0 := r3.Sub(r.Origin, a)
		bb := r3.Dot(r.Direction, e)
		d := r3.Dot(r.Direction, w0)
		ee := r3.Dot(e, w0)
		den := segLenSq - bb*bb
		if math.Abs(den) > epsilon {
			u = (ee - bb*d) / den
		}
		u = mgl64.Clamp(u, 0, 1)
	}

	q := r3.Add(a, r3.Scale(u, e))
	t := math.Max(0, r3.Dot(r3.Sub(q, r.Origin), r.Direction))
	p := r.At(t)
	if segLenSq > epsilon {
		u = mgl64.Clamp(r3.Dot(r3.Sub(p, a), e)/segLenSq, 0, 1)
		q = r3.Add(a, r3.Scale(u, e))
	}
	diff := r3.Sub(p, q)
	return t, r3.Dot(diff, diff)
}
