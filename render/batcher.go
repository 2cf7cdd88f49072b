package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	whiteSub   *ebiten.Image
)

func init() {
	whiteImage.Fill(color.White)
	whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// maxVertices keeps every index of a batch inside uint16.
const maxVertices = math.MaxUint16

// PolygonBatcher collects polygons and strokes and draws them with as few DrawTriangles
// calls as the index range allows. Draw order is the order things were added.
type PolygonBatcher struct {
	AntiAlias bool

	screen   *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
	strokeV  []ebiten.Vertex
	strokeI  []uint16
}

func NewPolygonBatcher() *PolygonBatcher {
	return &PolygonBatcher{AntiAlias: true}
}

// Begin starts a frame on screen.
func (b *PolygonBatcher) Begin(screen *ebiten.Image) {
	b.screen = screen
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
}

func (b *PolygonBatcher) reserve(n int) {
	if len(b.vertices)+n > maxVertices {
		b.Flush()
	}
}

// AddPolygon adds a convex polygon as a triangle fan.
func (b *PolygonBatcher) AddPolygon(xp, yp []float32, clr color.RGBA) {
	if len(xp) < 3 || len(xp) > maxVertices {
		return
	}
	b.reserve(len(xp))

	cr, cg, cb, ca := colorComponents(clr)
	base := uint16(len(b.vertices))
	for i := range xp {
		b.vertices = append(b.vertices, ebiten.Vertex{
			DstX:   xp[i],
			DstY:   yp[i],
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	for i := 2; i < len(xp); i++ {
		b.indices = append(b.indices, base, base+uint16(i-1), base+uint16(i))
	}
}

// AddPolyline strokes an open path.
func (b *PolygonBatcher) AddPolyline(xp, yp []float32, width float32, clr color.RGBA) {
	if len(xp) < 2 {
		return
	}

	var path vector.Path
	path.MoveTo(xp[0], yp[0])
	for i := 1; i < len(xp); i++ {
		path.LineTo(xp[i], yp[i])
	}

	b.strokeV, b.strokeI = path.AppendVerticesAndIndicesForStroke(b.strokeV[:0], b.strokeI[:0], &vector.StrokeOptions{
		Width: width,
	})
	if len(b.strokeV) == 0 || len(b.strokeV) > maxVertices {
		return
	}
	b.reserve(len(b.strokeV))

	cr, cg, cb, ca := colorComponents(clr)
	base := uint16(len(b.vertices))
	for _, v := range b.strokeV {
		v.SrcX, v.SrcY = 1, 1
		v.ColorR, v.ColorG, v.ColorB, v.ColorA = cr, cg, cb, ca
		b.vertices = append(b.vertices, v)
	}
	for _, idx := range b.strokeI {
		b.indices = append(b.indices, base+idx)
	}
}

// Flush draws everything added since the last flush.
func (b *PolygonBatcher) Flush() {
	if b.screen == nil || len(b.indices) == 0 {
		b.vertices = b.vertices[:0]
		b.indices = b.indices[:0]
		return
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: b.AntiAlias}
	b.screen.DrawTriangles(b.vertices, b.indices, whiteSub, op)
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
}

func colorComponents(clr color.RGBA) (float32, float32, float32, float32) {
	return float32(clr.R) / 255.0,
		float32(clr.G) / 255.0,
		float32(clr.B) / 255.0,
		float32(clr.A) / 255.0
}
