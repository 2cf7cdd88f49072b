package geomap3d

// Vector2 is used for normalised device coordinates, both axes in [-1, 1].
type Vector2 struct {
	X float64
	Y float64
}
