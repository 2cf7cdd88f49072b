package geomap3d

import (
	"image/color"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Style controls how a province is extruded and coloured.
type Style struct {
	Depth       float64
	Fill        color.RGBA
	FillOpacity float64
	Edge        color.RGBA
	EdgeOpacity float64
	Outline     color.RGBA
}

func DefaultStyle() Style {
	return Style{
		Depth:       4,
		Fill:        ColorFill,
		FillOpacity: 0.6,
		Edge:        ColorEdge,
		EdgeOpacity: 0.5,
		Outline:     ColorOutline,
	}
}

// FeatureName reads properties.name, empty when missing or not a string.
func FeatureName(f *geojson.Feature) string {
	if value, found := f.Properties["name"]; found {
		if str, ok := value.(string); ok {
			return str
		}
	}
	return ""
}

// featureRings flattens the feature geometry into its rings. Every ring, holes included,
// becomes a shape of its own.
func featureRings(g orb.Geometry) []orb.Ring {
	var rings []orb.Ring
	switch geom := g.(type) {
	case orb.MultiPolygon:
		for _, poly := range geom {
			rings = append(rings, poly...)
		}
	case orb.Polygon:
		rings = append(rings, geom...)
	case orb.Ring:
		rings = append(rings, geom)
	}
	return rings
}

// BuildProvince converts one feature into a group holding a mesh and an outline per ring.
func BuildProvince(f *geojson.Feature, proj Projector, style Style) *Group {
	name := FeatureName(f)
	province := NewGroup(name)
	province.Properties = f.Properties

	if f.Geometry == nil {
		return province
	}
	for _, ring := range featureRings(f.Geometry) {
		mesh, line := BuildRing(ring, proj, style)
		mesh.Name = name
		mesh.Properties = f.Properties
		province.Add(mesh, line)
	}
	return province
}

// BuildRing projects one ring and returns its extruded mesh and its outline at the top of
// the extrusion. Points without a projection are skipped; fewer than three usable points
// give a mesh without faces.
func BuildRing(ring orb.Ring, proj Projector, style Style) (*Mesh, *Line) {
	line := NewLine(style.Outline)
	shape := make([][2]float64, 0, len(ring))
	for _, p := range ring {
		x, y, ok := proj.Project(p)
		if !ok {
			continue
		}
		shape = append(shape, [2]float64{x, -y})
		line.AddPoint(x, -y, style.Depth)
	}

	mesh := NewMesh("",
		NewMaterial(style.Fill, style.FillOpacity),
		NewMaterial(style.Edge, style.EdgeOpacity),
	)
	extrude(mesh, shape, style.Depth)
	mesh.Finished()
	return mesh, line
}

// extrude adds both caps (fill material) and the side walls (edge material) of the shape
// swept from z = 0 to z = depth.
func extrude(mesh *Mesh, shape [][2]float64, depth float64) {
	shape = cleanRing(shape)
	if len(shape) < 3 {
		return
	}
	if signedArea(shape) < 0 {
		reversed := make([][2]float64, len(shape))
		for i, p := range shape {
			reversed[len(shape)-1-i] = p
		}
		shape = reversed
	}

	for _, tri := range triangulate(shape) {
		a, b, c := shape[tri[0]], shape[tri[1]], shape[tri[2]]
		if cross2(a, b, c) == 0 {
			continue
		}
		top := NewFace([][]float64{
			{a[0], a[1], depth}, {b[0], b[1], depth}, {c[0], c[1], depth},
		}, MaterialFill, NewVector3(0, 0, 1))
		bottom := NewFace([][]float64{
			{a[0], a[1], 0}, {c[0], c[1], 0}, {b[0], b[1], 0},
		}, MaterialFill, NewVector3(0, 0, -1))
		mesh.AddFace(top)
		mesh.AddFace(bottom)
	}

	n := len(shape)
	for i := 0; i < n; i++ {
		p, q := shape[i], shape[(i+1)%n]
		side := NewFace([][]float64{
			{p[0], p[1], 0}, {q[0], q[1], 0}, {q[0], q[1], depth}, {p[0], p[1], depth},
		}, MaterialEdge, nil)
		mesh.AddFace(side)
	}
}
