package geomap3d

// Face is one planar, convex polygon of a mesh. Material indexes the owning mesh's
// material list.
type Face struct {
	Points   [][]float64
	Material int
	normal   *Vector3
	plane    *Plane
}

const (
	MaterialFill = 0
	MaterialEdge = 1
)

func NewFace(pnts [][]float64, material int, normal *Vector3) *Face {
	return &Face{
		Points:   pnts,
		Material: material,
		normal:   normal,
	}
}

func (f *Face) AddPoint(x, y, z float64) {
	f.Points = append(f.Points, []float64{x, y, z})
	f.normal = nil
	f.plane = nil
}

func (f *Face) GetNormal() *Vector3 {
	if f.normal == nil {
		f.createNormal()
	}
	return f.normal.Copy()
}

func (f *Face) GetPlane() *Plane {
	if f.plane != nil {
		return f.plane
	}
	f.plane = NewPlane(f.Points[0], f.GetNormal())
	return f.plane
}

// createNormal uses the first three points, counter-clockwise winding faces the viewer.
func (f *Face) createNormal() {
	if len(f.Points) < 3 {
		f.normal = NewVector3(0, 0, 1)
		return
	}

	x1, y1, z1 := f.Points[0][0], f.Points[0][1], f.Points[0][2]
	x2, y2, z2 := f.Points[1][0], f.Points[1][1], f.Points[1][2]
	x3, y3, z3 := f.Points[2][0], f.Points[2][1], f.Points[2][2]

	u1, u2, u3 := x2-x1, y2-y1, z2-z1
	v1, v2, v3 := x3-x2, y3-y2, z3-z2

	f.normal = NewVector3(
		u2*v3-u3*v2,
		u3*v1-u1*v3,
		u1*v2-u2*v1,
	)
	f.normal.Normalize()
}
