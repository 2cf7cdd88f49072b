package geomap3d

// LabelOffset is the gap in pixels between the pointer and the label's top-left corner.
const LabelOffset = 5

// Label is the floating province name that follows the pointer.
type Label struct {
	Text    string
	Visible bool
	X, Y    float64
}

func (l *Label) MoveTo(pointerX, pointerY float64) {
	l.X = pointerX + LabelOffset
	l.Y = pointerY + LabelOffset
}

func (l *Label) Show(text string) {
	l.Text = text
	l.Visible = true
}

func (l *Label) Hide() {
	l.Visible = false
}
