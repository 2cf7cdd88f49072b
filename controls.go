package geomap3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// OrbitControls rotates the camera around its target on a sphere and zooms along the view
// direction.
type OrbitControls struct {
	RotateSpeed float64
	ZoomSpeed   float64
	MinDistance float64
	MaxDistance float64

	camera *Camera
	radius float64
	theta  float64 // azimuth around +Y, 0 looks from +Z
	phi    float64 // polar angle from +Y
}

const minPolar = 1e-6

func NewOrbitControls(cam *Camera) *OrbitControls {
	o := &OrbitControls{
		RotateSpeed: 1,
		ZoomSpeed:   1,
		MinDistance: 1,
		MaxDistance: math.Inf(1),
		camera:      cam,
	}
	o.sync()
	return o
}

// sync reads the spherical coordinates back from the camera.
func (o *OrbitControls) sync() {
	offset := o.camera.GetPosition().Sub(o.camera.GetTarget())
	o.radius = offset.Len()
	if o.radius == 0 {
		return
	}
	o.theta = math.Atan2(offset.X(), offset.Z())
	o.phi = math.Acos(mgl64.Clamp(offset.Y()/o.radius, -1, 1))
}

// Rotate turns the camera by a pointer drag of dx, dy pixels on a viewport of the given
// height; a drag across the full height is one turn at speed 1.
func (o *OrbitControls) Rotate(dx, dy float64, height int) {
	if height <= 0 {
		return
	}
	o.theta -= 2 * math.Pi * dx / float64(height) * o.RotateSpeed
	o.phi -= 2 * math.Pi * dy / float64(height) * o.RotateSpeed
	o.phi = mgl64.Clamp(o.phi, minPolar, math.Pi-minPolar)
	o.apply()
}

// Zoom moves towards the target for positive steps and away for negative ones.
func (o *OrbitControls) Zoom(steps float64) {
	if steps == 0 {
		return
	}
	o.radius *= math.Pow(0.95, steps*o.ZoomSpeed)
	o.radius = mgl64.Clamp(o.radius, o.MinDistance, o.MaxDistance)
	o.apply()
}

func (o *OrbitControls) Distance() float64 {
	return o.radius
}

func (o *OrbitControls) apply() {
	t := o.camera.GetTarget()
	sinPhi := math.Sin(o.phi)
	o.camera.SetPosition(
		t.X()+o.radius*sinPhi*math.Sin(o.theta),
		t.Y()+o.radius*math.Cos(o.phi),
		t.Z()+o.radius*sinPhi*math.Cos(o.theta),
	)
}
