package geomap3d

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Plane is Ax + By + Cz + D = 0 with (A, B, C) the unit normal.
type Plane struct {
	A, B, C, D float64
}

const planeThickness = 1e-9

func NewPlane(point []float64, normal *Vector3) *Plane {
	p := &Plane{
		A: normal.X,
		B: normal.Y,
		C: normal.Z,
	}
	p.D = -(p.A*point[0] + p.B*point[1] + p.C*point[2])
	return p
}

// PointOnPlane returns the signed distance of the point, 0 when it lies on the plane.
func (p *Plane) PointOnPlane(x, y, z float64) float64 {
	num := p.A*x + p.B*y + p.C*z + p.D
	if math.Abs(num) < planeThickness {
		return 0.0
	}
	return num
}

// LineIntersect returns the point where the segment p1-p2 crosses the plane. A segment
// parallel to the plane returns p1.
func (p *Plane) LineIntersect(p1, p2 []float64) []float64 {
	x1, y1, z1 := p1[0], p1[1], p1[2]
	x2, y2, z2 := p2[0], p2[1], p2[2]

	denom := p.A*(x2-x1) + p.B*(y2-y1) + p.C*(z2-z1)
	if denom == 0 {
		return []float64{x1, y1, z1}
	}
	t := -(p.A*x1 + p.B*y1 + p.C*z1 + p.D) / denom
	return []float64{
		x1 + (x2-x1)*t,
		y1 + (y2-y1)*t,
		z1 + (z2-z1)*t,
	}
}

// RayIntersect returns the ray parameter of the hit. Rays parallel to the plane and hits
// behind the origin report false.
func (p *Plane) RayIntersect(origin, dir r3.Vec) (float64, bool) {
	denom := p.A*dir.X + p.B*dir.Y + p.C*dir.Z
	if math.Abs(denom) < epsilon {
		return 0, false
	}
	t := -(p.A*origin.X + p.B*origin.Y + p.C*origin.Z + p.D) / denom
	if t < 0 {
		return 0, false
	}
	return t, true
}
