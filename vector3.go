package geomap3d

import (
	"math"
)

type Vector3 struct {
	X float64
	Y float64
	Z float64
}

func NewVector3(x, y, z float64) *Vector3 {
	return &Vector3{
		X: x,
		Y: y,
		Z: z,
	}
}

func (v *Vector3) Normalize() {
	length := math.Sqrt(math.Abs(v.X*v.X + v.Y*v.Y + v.Z*v.Z))
	if length == 0 {
		return
	}
	v.X /= length
	v.Y /= length
	v.Z /= length
}

func (v *Vector3) Copy() *Vector3 {
	return &Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

func (v *Vector3) Array() []float64 {
	return []float64{v.X, v.Y, v.Z}
}
