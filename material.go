package geomap3d

import (
	"image/color"
	"math"
)

var (
	ColorFill      = color.RGBA{R: 0x02, G: 0xA1, B: 0xE2, A: 0xff}
	ColorEdge      = color.RGBA{R: 0x34, G: 0x80, B: 0xC4, A: 0xff}
	ColorHighlight = color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
	ColorOutline   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Material is an unlit colour with an opacity in [0, 1].
type Material struct {
	Color   color.RGBA
	Opacity float64
}

func NewMaterial(col color.RGBA, opacity float64) *Material {
	return &Material{Color: col, Opacity: opacity}
}

// RGBA returns the colour with its alpha channel taken from the opacity, not
// premultiplied.
func (m *Material) RGBA() color.RGBA {
	a := math.Max(0, math.Min(1, m.Opacity))
	return color.RGBA{R: m.Color.R, G: m.Color.G, B: m.Color.B, A: uint8(math.Round(a * 255))}
}
