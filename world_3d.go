package geomap3d

// World holds the top level objects of the scene and the active camera.
type World struct {
	objects []Object
	camera  *Camera
	painter *Painter
}

func NewWorld() *World {
	return &World{painter: NewPainter()}
}

func (w *World) AddObject(obj Object) {
	w.objects = append(w.objects, obj)
}

func (w *World) SetCamera(c *Camera) {
	w.camera = c
}

func (w *World) Camera() *Camera {
	return w.camera
}

func (w *World) Painter() *Painter {
	return w.painter
}

func (w *World) Children() []Object {
	return w.objects
}

// PaintObjects draws the scene through the current camera. Nothing is drawn until a
// camera is set.
func (w *World) PaintObjects(b Batcher, vp *Viewport) {
	if w.camera == nil {
		return
	}
	w.painter.Paint(b, w.camera, vp, w.objects)
}
