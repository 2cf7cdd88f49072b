package geomap3d

// Viewport is the size of the render target in pixels.
type Viewport struct {
	Width  int
	Height int
}

func NewViewport(width, height int) *Viewport {
	return &Viewport{Width: width, Height: height}
}

// Resize sets the output size and keeps the camera's aspect ratio in step with it.
// Non-positive sizes are ignored, a minimised window reports 0x0.
func (v *Viewport) Resize(width, height int, cam *Camera) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if width == v.Width && height == v.Height && cam.Aspect == v.Aspect() {
		return false
	}
	v.Width = width
	v.Height = height
	cam.SetAspect(v.Aspect())
	cam.UpdateProjectionMatrix()
	return true
}

func (v *Viewport) Aspect() float64 {
	if v.Height == 0 {
		return 1
	}
	return float64(v.Width) / float64(v.Height)
}
