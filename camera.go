package geomap3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera looking at a target. Fov is the vertical field of view
// in degrees.
type Camera struct {
	Fov    float64
	Aspect float64
	Near   float64
	Far    float64

	position mgl64.Vec3
	target   mgl64.Vec3
	up       mgl64.Vec3

	projection mgl64.Mat4
	view       mgl64.Mat4
	camMatrix  *Matrix
}

func NewCamera(fov, aspect, near, far float64) *Camera {
	c := &Camera{
		Fov:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		up:     mgl64.Vec3{0, 1, 0},
	}
	c.UpdateProjectionMatrix()
	c.updateView()
	return c
}

func (c *Camera) SetPosition(x, y, z float64) {
	c.position = mgl64.Vec3{x, y, z}
	c.updateView()
}

func (c *Camera) GetPosition() mgl64.Vec3 {
	return c.position
}

func (c *Camera) LookAt(x, y, z float64) {
	c.target = mgl64.Vec3{x, y, z}
	c.updateView()
}

func (c *Camera) GetTarget() mgl64.Vec3 {
	return c.target
}

func (c *Camera) SetAspect(aspect float64) {
	c.Aspect = aspect
}

// UpdateProjectionMatrix must be called after Fov, Aspect, Near or Far change.
func (c *Camera) UpdateProjectionMatrix() {
	c.projection = mgl64.Perspective(mgl64.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
}

func (c *Camera) ProjectionMatrix() mgl64.Mat4 {
	return c.projection
}

func (c *Camera) updateView() {
	eye := c.position
	if eye.ApproxEqual(c.target) {
		// LookAtV is undefined for a zero view direction.
		eye = c.target.Add(mgl64.Vec3{0, 0, 1})
	}
	c.view = mgl64.LookAtV(eye, c.target, c.up)
	c.camMatrix = ToMatrix(c.view)
}

// GetCameraMatrix returns the world to view transform. View space looks down -Z.
func (c *Camera) GetCameraMatrix() *Matrix {
	return c.camMatrix
}

// ToCameraSpace converts view-space points in place so that z is the distance in front of
// the camera.
func ToCameraSpace(p []float64) []float64 {
	p[2] = -p[2]
	return p
}

// focalLength is the distance in pixels from the eye to a projection plane of the given
// height.
func (c *Camera) focalLength(height float64) float64 {
	return (height / 2) / math.Tan(mgl64.DegToRad(c.Fov)/2)
}

func (c *Camera) ConvertToScreenX(width, height, x, z float64) float32 {
	return float32(width/2 + c.focalLength(height)*x/z)
}

func (c *Camera) ConvertToScreenY(width, height, y, z float64) float32 {
	return float32(height/2 - c.focalLength(height)*y/z)
}

// Unproject maps a point in normalised device coordinates back to world space.
func (c *Camera) Unproject(ndc Vector2, ndcZ float64) mgl64.Vec3 {
	inv := c.projection.Mul4(c.view).Inv()
	v := inv.Mul4x1(mgl64.Vec4{ndc.X, ndc.Y, ndcZ, 1})
	if v.W() == 0 {
		return v.Vec3()
	}
	return v.Vec3().Mul(1 / v.W())
}
