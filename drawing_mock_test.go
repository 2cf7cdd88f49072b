package geomap3d

import "image/color"

type drawCall struct {
	polyline bool
	xp, yp   []float32
	clr      color.RGBA
}

// recordingBatcher stands in for the ebiten batcher and keeps every call in order.
type recordingBatcher struct {
	calls []drawCall
}

func (b *recordingBatcher) AddPolygon(xp, yp []float32, clr color.RGBA) {
	b.calls = append(b.calls, drawCall{xp: xp, yp: yp, clr: clr})
}

func (b *recordingBatcher) AddPolyline(xp, yp []float32, width float32, clr color.RGBA) {
	b.calls = append(b.calls, drawCall{polyline: true, xp: xp, yp: yp, clr: clr})
}

func (b *recordingBatcher) count() (polygons, polylines int) {
	for _, c := range b.calls {
		if c.polyline {
			polylines++
		} else {
			polygons++
		}
	}
	return polygons, polylines
}
