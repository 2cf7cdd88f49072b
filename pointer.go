package geomap3d

// Pointer holds the latest pointer position in pixels. Mouse moves and touch starts both
// write here; the next frame reads whatever was written last.
type Pointer struct {
	X, Y  float64
	moved bool
}

func (p *Pointer) Set(x, y float64) {
	p.X, p.Y = x, y
	p.moved = true
}

// Moved reports whether the pointer has ever been set.
func (p *Pointer) Moved() bool {
	return p.moved
}

// NDC maps the pixel position to normalised device coordinates, y up.
func (p *Pointer) NDC(v *Viewport) Vector2 {
	if v.Width == 0 || v.Height == 0 {
		return Vector2{}
	}
	return Vector2{
		X: (p.X/float64(v.Width))*2 - 1,
		Y: -(p.Y/float64(v.Height))*2 + 1,
	}
}
