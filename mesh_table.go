package geomap3d

// VertexTable is a de-duplicated list of points. Faces refer to points by index so that
// shared corners are transformed once per frame.
type VertexTable struct {
	Points     *Matrix
	pointIndex map[[3]float64]int
}

func NewVertexTable() *VertexTable {
	return &VertexTable{
		Points:     NewMatrix(),
		pointIndex: make(map[[3]float64]int),
	}
}

func (m *VertexTable) AddPoint(point []float64) ([]float64, int) {
	pointKey := [3]float64{point[0], point[1], point[2]}

	if index, found := m.pointIndex[pointKey]; found {
		return m.Points.ThisMatrix[index], index
	}

	pointCopy := []float64{point[0], point[1], point[2]}
	m.Points.AddRow(pointCopy)
	newIndex := len(m.Points.ThisMatrix) - 1
	m.pointIndex[pointKey] = newIndex

	return pointCopy, newIndex
}

// AddFace stores the face's points and returns their indices.
func (m *VertexTable) AddFace(f *Face) []int {
	indices := make([]int, len(f.Points))
	for i, p := range f.Points {
		_, indices[i] = m.AddPoint(p)
	}
	return indices
}

func (m *VertexTable) Len() int {
	return len(m.Points.ThisMatrix)
}
