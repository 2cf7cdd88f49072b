package geomap3d

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// Projector maps a longitude/latitude point to planar x, y with y growing downwards.
// ok is false when the point has no finite projection.
type Projector interface {
	Project(p orb.Point) (x, y float64, ok bool)
}

// Mercator is a spherical mercator scaled to `scale` units per radian, centred so that
// Center lands on Translate.
type Mercator struct {
	Center    orb.Point
	Scale     float64
	Translate [2]float64

	radius  float64
	centerX float64
	centerY float64
}

var (
	DefaultCenter = orb.Point{104.0, 37.5}
	DefaultScale  = 80.0
)

func NewMercator(center orb.Point, scale float64, translate [2]float64) *Mercator {
	m := &Mercator{
		Center:    center,
		Scale:     scale,
		Translate: translate,
	}
	// ToMercator works in metres, half the equator is pi earth radii.
	m.radius = project.WGS84.ToMercator(orb.Point{180, 0})[0] / math.Pi
	c := project.WGS84.ToMercator(center)
	m.centerX, m.centerY = c[0], c[1]
	return m
}

func NewDefaultMercator() *Mercator {
	return NewMercator(DefaultCenter, DefaultScale, [2]float64{0, 0})
}

func (m *Mercator) Project(p orb.Point) (float64, float64, bool) {
	if math.Abs(p.Lat()) >= 90 {
		return 0, 0, false
	}
	mp := project.WGS84.ToMercator(p)
	x := m.Scale*(mp[0]-m.centerX)/m.radius + m.Translate[0]
	y := -m.Scale*(mp[1]-m.centerY)/m.radius + m.Translate[1]
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return 0, 0, false
	}
	return x, y, true
}
