package geomap3d

import (
	"image/color"
)

// PickEvent describes a change of the picked province. Picked is false when the pointer
// left every province.
type PickEvent struct {
	Name       string         `json:"name"`
	Picked     bool           `json:"picked"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Picker keeps at most one mesh highlighted: the nearest pickable mesh under the pointer.
// The materials of that mesh are recoloured and restored when it stops being picked.
type Picker struct {
	Highlight color.RGBA

	raycaster *Raycaster
	label     *Label
	picked    *Mesh
	saved     []color.RGBA
	onChange  []func(PickEvent)
}

func NewPicker(label *Label, highlight color.RGBA) *Picker {
	return &Picker{
		Highlight: highlight,
		raycaster: NewRaycaster(),
		label:     label,
	}
}

// OnChange registers fn to be called whenever the picked mesh changes.
func (p *Picker) OnChange(fn func(PickEvent)) {
	p.onChange = append(p.onChange, fn)
}

// Picked returns the highlighted mesh, nil when idle.
func (p *Picker) Picked() *Mesh {
	return p.picked
}

// Update casts a ray through ndc and moves the highlight to the nearest pickable mesh
// among objs and their descendants.
func (p *Picker) Update(ndc Vector2, cam *Camera, objs []Object) {
	p.raycaster.SetFromCamera(ndc, cam)

	var hit *Mesh
	for _, in := range p.raycaster.IntersectObjects(objs, true) {
		if m, ok := in.Object.(*Mesh); ok && m.Pickable() {
			hit = m
			break
		}
	}

	previous := p.picked
	p.restore()

	if hit == nil {
		p.label.Hide()
		if previous != nil {
			p.emit(PickEvent{})
		}
		return
	}

	p.saved = p.saved[:0]
	for _, mat := range hit.Materials {
		p.saved = append(p.saved, mat.Color)
		mat.Color = p.Highlight
	}
	p.picked = hit

	if hit.Name == "" {
		p.label.Hide()
	} else {
		p.label.Show(hit.Name)
	}

	if hit != previous {
		p.emit(PickEvent{Name: hit.Name, Picked: true, Properties: hit.Properties})
	}
}

// Reset restores the highlighted mesh and hides the label.
func (p *Picker) Reset() {
	previous := p.picked
	p.restore()
	p.label.Hide()
	if previous != nil {
		p.emit(PickEvent{})
	}
}

func (p *Picker) restore() {
	if p.picked == nil {
		return
	}
	for i, mat := range p.picked.Materials {
		if i < len(p.saved) {
			mat.Color = p.saved[i]
		}
	}
	p.picked = nil
}

func (p *Picker) emit(ev PickEvent) {
	for _, fn := range p.onChange {
		fn(ev)
	}
}
