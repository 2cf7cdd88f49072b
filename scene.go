package geomap3d

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Object is a node of the scene graph.
type Object interface {
	Children() []Object
}

// Group aggregates other objects. The map is one group holding one group per province.
type Group struct {
	Name       string
	Properties map[string]any
	children   []Object
}

func NewGroup(name string) *Group {
	return &Group{Name: name}
}

func (g *Group) Add(objs ...Object) {
	g.children = append(g.children, objs...)
}

func (g *Group) Children() []Object {
	return g.children
}

// Walk visits obj and its descendants depth first.
func Walk(obj Object, fn func(Object)) {
	if obj == nil {
		return
	}
	fn(obj)
	for _, child := range obj.Children() {
		Walk(child, fn)
	}
}

// CountMeshes returns the number of meshes and lines below obj.
func CountMeshes(obj Object) (meshes, lines int) {
	Walk(obj, func(o Object) {
		switch o.(type) {
		case *Mesh:
			meshes++
		case *Line:
			lines++
		}
	})
	return meshes, lines
}

type meshFace struct {
	indices     []int
	normalIndex int
	material    int
}

// Mesh is a solid made of planar convex faces. Each face draws with one entry of
// Materials. Name and Properties identify the province the mesh belongs to.
type Mesh struct {
	Name       string
	Properties map[string]any
	Materials  []*Material

	faceMesh        *VertexTable
	normalMesh      *VertexTable
	transFaceMesh   *Matrix
	transNormalMesh *Matrix
	faces           []meshFace
	min, max        r3.Vec
}

func NewMesh(name string, materials ...*Material) *Mesh {
	return &Mesh{
		Name:       name,
		Materials:  materials,
		faceMesh:   NewVertexTable(),
		normalMesh: NewVertexTable(),
	}
}

// Pickable meshes are the ones with a fill and an edge material.
func (m *Mesh) Pickable() bool {
	return len(m.Materials) == 2
}

func (m *Mesh) Children() []Object {
	return nil
}

func (m *Mesh) AddFace(f *Face) {
	if len(f.Points) < 3 {
		return
	}
	indices := m.faceMesh.AddFace(f)
	_, normalIndex := m.normalMesh.AddPoint(f.GetNormal().Array())
	m.faces = append(m.faces, meshFace{indices: indices, normalIndex: normalIndex, material: f.Material})
}

// Finished sizes the per-frame buffers and computes the bounding box. Call it once all
// faces are added.
func (m *Mesh) Finished() {
	m.transFaceMesh = m.faceMesh.Points.Copy()
	m.transNormalMesh = m.normalMesh.Points.Copy()
	m.calcBounds()
}

func (m *Mesh) calcBounds() {
	pts := m.faceMesh.Points.ThisMatrix
	if len(pts) == 0 {
		m.min, m.max = r3.Vec{}, r3.Vec{}
		return
	}
	m.min = r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	m.max = r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, p := range pts {
		m.min.X, m.max.X = math.Min(m.min.X, p[0]), math.Max(m.max.X, p[0])
		m.min.Y, m.max.Y = math.Min(m.min.Y, p[1]), math.Max(m.max.Y, p[1])
		m.min.Z, m.max.Z = math.Min(m.min.Z, p[2]), math.Max(m.max.Z, p[2])
	}
}

// Bounds returns the axis aligned bounding box.
func (m *Mesh) Bounds() (r3.Vec, r3.Vec) {
	return m.min, m.max
}

func (m *Mesh) FaceCount() int {
	return len(m.faces)
}

// VertexCount is the number of distinct corners shared by the faces.
func (m *Mesh) VertexCount() int {
	return m.faceMesh.Len()
}

// FacePoints returns the face's corners in object space.
func (m *Mesh) FacePoints(i int) [][]float64 {
	f := m.faces[i]
	pts := make([][]float64, len(f.indices))
	for j, idx := range f.indices {
		pts[j] = m.faceMesh.Points.ThisMatrix[idx]
	}
	return pts
}

func (m *Mesh) FaceMaterial(i int) *Material {
	return m.Materials[m.faces[i].material]
}

// ApplyMatrixTemp transforms points and normals into the per-frame buffers.
func (m *Mesh) ApplyMatrixTemp(aMatrix *Matrix) {
	if m.transFaceMesh == nil {
		m.Finished()
	}
	aMatrix.TransformNormals(m.normalMesh.Points, m.transNormalMesh)
	aMatrix.TransformObj(m.faceMesh.Points, m.transFaceMesh)
}

// Line is an open polyline drawn in one colour.
type Line struct {
	Points [][]float64
	Color  color.RGBA
}

func NewLine(col color.RGBA) *Line {
	return &Line{Color: col}
}

func (l *Line) AddPoint(x, y, z float64) {
	l.Points = append(l.Points, []float64{x, y, z})
}

func (l *Line) Children() []Object {
	return nil
}
