package geomap3d

import (
	"testing"

	"github.com/paulmach/orb"
)

func newPainterWorld(t *testing.T) (*World, *Viewport) {
	t.Helper()
	vp := NewViewport(800, 600)
	w := NewWorld()
	w.SetCamera(newTestCamera(vp.Aspect()))
	w.AddObject(BuildProvince(namedFeature(orb.Polygon{square(104, 37.5, 2)}, "测试省"), NewDefaultMercator(), DefaultStyle()))
	return w, vp
}

func TestPaintLinesBeforeFaces(t *testing.T) {
	w, vp := newPainterWorld(t)
	b := &recordingBatcher{}
	w.PaintObjects(b, vp)

	polygons, polylines := b.count()
	if polylines != 1 {
		t.Errorf("polylines = %d, want 1", polylines)
	}
	// Two top cap triangles and the north wall face the camera.
	if polygons != 3 {
		t.Errorf("polygons = %d, want 3", polygons)
	}
	seenPolygon := false
	for _, c := range b.calls {
		if c.polyline && seenPolygon {
			t.Fatal("polyline drawn after a polygon")
		}
		seenPolygon = seenPolygon || !c.polyline
	}
	if b.calls[0].clr != ColorOutline || len(b.calls[0].xp) != 5 {
		t.Errorf("outline call = %+v", b.calls[0])
	}
	for _, c := range b.calls[1:] {
		if c.clr.A != 153 && c.clr.A != 128 {
			t.Errorf("face alpha = %d, want fill or edge opacity", c.clr.A)
		}
	}
}

func TestPaintAllFaces(t *testing.T) {
	w, vp := newPainterWorld(t)
	w.Painter().DrawAllFaces = true
	b := &recordingBatcher{}
	w.PaintObjects(b, vp)

	if polygons, _ := b.count(); polygons != 8 {
		t.Errorf("polygons = %d, want all 8 faces", polygons)
	}
}

func TestPaintProjectsIntoViewport(t *testing.T) {
	w, vp := newPainterWorld(t)
	b := &recordingBatcher{}
	w.PaintObjects(b, vp)

	for _, c := range b.calls {
		for i := range c.xp {
			if c.xp[i] < 0 || c.xp[i] > float32(vp.Width) || c.yp[i] < 0 || c.yp[i] > float32(vp.Height) {
				t.Fatalf("point (%v, %v) outside the %dx%d viewport", c.xp[i], c.yp[i], vp.Width, vp.Height)
			}
		}
	}
}

func TestPaintSortsFarToNear(t *testing.T) {
	near := NewMesh("near", NewMaterial(ColorFill, 1), NewMaterial(ColorEdge, 1))
	near.AddFace(NewFace([][]float64{{-1, -1, 10}, {1, -1, 10}, {0, 1, 10}}, MaterialFill, NewVector3(0, 0, 1)))
	near.Finished()
	far := NewMesh("far", NewMaterial(ColorHighlight, 1), NewMaterial(ColorEdge, 1))
	far.AddFace(NewFace([][]float64{{-1, -1, -10}, {1, -1, -10}, {0, 1, -10}}, MaterialFill, NewVector3(0, 0, 1)))
	far.Finished()

	cam := NewCamera(45, 1, 0.1, 1000)
	cam.SetPosition(0, 0, 50)
	cam.LookAt(0, 0, 0)

	b := &recordingBatcher{}
	NewPainter().Paint(b, cam, NewViewport(400, 400), []Object{near, far})
	if len(b.calls) != 2 {
		t.Fatalf("calls = %d, want 2", len(b.calls))
	}
	if b.calls[0].clr.R != ColorHighlight.R || b.calls[1].clr.R != ColorFill.R {
		t.Errorf("draw order = %v then %v, want far then near", b.calls[0].clr, b.calls[1].clr)
	}
}

func TestPaintNothingWithoutCamera(t *testing.T) {
	w := NewWorld()
	w.AddObject(NewGroup("empty"))
	b := &recordingBatcher{}
	w.PaintObjects(b, NewViewport(10, 10))
	if len(b.calls) != 0 {
		t.Errorf("painted %d calls without a camera", len(b.calls))
	}
}

func TestPaintBehindCamera(t *testing.T) {
	cam := NewCamera(45, 1, 0.1, 1000)
	cam.SetPosition(0, 0, 50)
	cam.LookAt(0, 0, 0)

	l := NewLine(ColorOutline)
	l.AddPoint(-1, 0, 60)
	l.AddPoint(1, 0, 60)

	b := &recordingBatcher{}
	NewPainter().Paint(b, cam, NewViewport(400, 400), []Object{l})
	if len(b.calls) != 0 {
		t.Errorf("line behind the camera drew %d calls", len(b.calls))
	}
}
