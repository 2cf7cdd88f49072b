package geomap3d

import (
	"image/color"
	"sort"
)

// Batcher receives screen space primitives. Polygons are convex and in pixels.
type Batcher interface {
	AddPolygon(xp, yp []float32, clr color.RGBA)
	AddPolyline(xp, yp []float32, width float32, clr color.RGBA)
}

const DefaultLineWidth = 1.0

type paintFace struct {
	xp, yp []float32
	depth  float64
	clr    color.RGBA
}

// Painter draws meshes and lines through a camera. Lines go out first, then every
// visible face of every mesh from the farthest to the nearest so that translucent faces
// blend over what is behind them.
type Painter struct {
	LineWidth    float32
	DrawAllFaces bool

	faces []paintFace
}

func NewPainter() *Painter {
	return &Painter{LineWidth: DefaultLineWidth}
}

func (p *Painter) Paint(b Batcher, cam *Camera, vp *Viewport, objs []Object) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return
	}
	camMatrix := cam.GetCameraMatrix()
	width, height := float64(vp.Width), float64(vp.Height)

	p.faces = p.faces[:0]
	for _, obj := range objs {
		Walk(obj, func(o Object) {
			switch v := o.(type) {
			case *Line:
				p.paintLine(b, v, cam, camMatrix, width, height)
			case *Mesh:
				p.collectFaces(v, cam, camMatrix, width, height)
			}
		})
	}

	sort.SliceStable(p.faces, func(i, j int) bool {
		return p.faces[i].depth > p.faces[j].depth
	})
	for _, f := range p.faces {
		b.AddPolygon(f.xp, f.yp, f.clr)
	}
}

func (p *Painter) paintLine(b Batcher, l *Line, cam *Camera, camMatrix *Matrix, width, height float64) {
	if len(l.Points) < 2 {
		return
	}
	pts := make([][]float64, len(l.Points))
	for i, pt := range l.Points {
		pts[i] = ToCameraSpace(camMatrix.TransformPoint(pt))
	}
	for _, run := range clipPolylineAgainstNearPlane(pts, cam.Near) {
		xp := make([]float32, len(run))
		yp := make([]float32, len(run))
		for i, pt := range run {
			xp[i] = cam.ConvertToScreenX(width, height, pt[0], pt[2])
			yp[i] = cam.ConvertToScreenY(width, height, pt[1], pt[2])
		}
		b.AddPolyline(xp, yp, p.LineWidth, l.Color)
	}
}

func (p *Painter) collectFaces(m *Mesh, cam *Camera, camMatrix *Matrix, width, height float64) {
	if m.FaceCount() == 0 {
		return
	}
	m.ApplyMatrixTemp(camMatrix)

	for _, f := range m.faces {
		points := make([][]float64, len(f.indices))
		for j, idx := range f.indices {
			pt := m.transFaceMesh.ThisMatrix[idx]
			points[j] = []float64{pt[0], pt[1], -pt[2]}
		}
		n := m.transNormalMesh.ThisMatrix[f.normalIndex]
		normal := []float64{n[0], n[1], -n[2]}

		first := points[0]
		where := -1.0
		if !p.DrawAllFaces {
			where = normal[0]*first[0] + normal[1]*first[1] + normal[2]*first[2]
		}
		if where >= 0 { // facing away
			continue
		}

		clipped := clipPolygonAgainstNearPlane(points, cam.Near)
		if len(clipped) < 3 {
			continue
		}

		face := paintFace{
			xp:  make([]float32, len(clipped)),
			yp:  make([]float32, len(clipped)),
			clr: m.Materials[f.material].RGBA(),
		}
		nearest := clipped[0][2]
		for i, pt := range clipped {
			face.xp[i] = cam.ConvertToScreenX(width, height, pt[0], pt[2])
			face.yp[i] = cam.ConvertToScreenY(width, height, pt[1], pt[2])
			face.depth += pt[2]
			if pt[2] < nearest {
				nearest = pt[2]
			}
		}
		if nearest > cam.Far {
			continue
		}
		face.depth /= float64(len(clipped))
		p.faces = append(p.faces, face)
	}
}
