package geomap3d

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestMatrixMatchesMathgl(t *testing.T) {
	m := mgl64.Translate3D(1, 2, 3).Mul4(mgl64.HomogRotate3DY(0.7)).Mul4(mgl64.HomogRotate3DX(-0.3))
	sie := ToMatrix(m)

	points := [][]float64{{0, 0, 0}, {1, 0, 0}, {4, -5, 6}}
	for _, p := range points {
		got := sie.TransformPoint(p)
		want := mgl64.TransformCoordinate(mgl64.Vec3{p[0], p[1], p[2]}, m)
		if !almostEqualSlice(got, want[:]) {
			t.Errorf("TransformPoint(%v) = %v, want %v", p, got, want)
		}
	}
}

func TestTransformNormalsIgnoresTranslation(t *testing.T) {
	src := NewMatrixFromData([][]float64{{0, 0, 1}})
	dest := src.Copy()
	ToMatrix(mgl64.Translate3D(10, 20, 30)).TransformNormals(src, dest)
	if !almostEqualSlice(dest.ThisMatrix[0], []float64{0, 0, 1}) {
		t.Errorf("normal = %v, want unchanged", dest.ThisMatrix[0])
	}
}

func TestVertexTableDeduplicates(t *testing.T) {
	vt := NewVertexTable()
	f1 := NewFace([][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, MaterialFill, nil)
	f2 := NewFace([][]float64{{1, 0, 0}, {1, 1, 0}, {0, 1, 0}}, MaterialFill, nil)
	i1 := vt.AddFace(f1)
	i2 := vt.AddFace(f2)
	if vt.Len() != 4 {
		t.Errorf("Len() = %d, want 4", vt.Len())
	}
	if i1[1] != i2[0] || i1[2] != i2[2] {
		t.Errorf("shared corners not shared: %v %v", i1, i2)
	}
}

func TestFaceNormalAndPlane(t *testing.T) {
	f := NewFace(nil, MaterialEdge, nil)
	f.AddPoint(0, 0, 2)
	f.AddPoint(2, 0, 2)
	f.AddPoint(2, 2, 2)

	n := f.GetNormal()
	if !almostEqual(n.X, 0) || !almostEqual(n.Y, 0) || !almostEqual(n.Z, 1) {
		t.Errorf("normal = %+v, want +z", n)
	}
	p := f.GetPlane()
	if d := p.PointOnPlane(5, 5, 2); d != 0 {
		t.Errorf("point on the plane at distance %v", d)
	}
	if d := p.PointOnPlane(0, 0, 5); !almostEqual(d, 3) {
		t.Errorf("distance = %v, want 3", d)
	}
}
