package geomap3d

// nearClipPlane keeps everything with z >= near. Points are in camera space with z being
// the distance in front of the camera.
func nearClipPlane(near float64) *Plane {
	return NewPlane([]float64{0, 0, near}, NewVector3(0, 0, 1))
}

// clipPolygonAgainstNearPlane is a single Sutherland-Hodgman pass against z = near.
func clipPolygonAgainstNearPlane(points [][]float64, near float64) [][]float64 {
	if len(points) == 0 {
		return [][]float64{}
	}
	plane := nearClipPlane(near)
	inside := func(p []float64) bool {
		return plane.PointOnPlane(p[0], p[1], p[2]) >= 0
	}

	out := make([][]float64, 0, len(points)+1)
	prev := points[len(points)-1]
	prevIn := inside(prev)
	for _, cur := range points {
		curIn := inside(cur)
		switch {
		case curIn && prevIn:
			out = append(out, cur)
		case curIn && !prevIn:
			out = append(out, plane.LineIntersect(prev, cur), cur)
		case !curIn && prevIn:
			out = append(out, plane.LineIntersect(prev, cur))
		}
		prev, prevIn = cur, curIn
	}
	return out
}

// clipPolylineAgainstNearPlane splits an open polyline into the runs in front of the
// near plane.
func clipPolylineAgainstNearPlane(points [][]float64, near float64) [][][]float64 {
	plane := nearClipPlane(near)
	var runs [][][]float64
	var run [][]float64
	for i, cur := range points {
		curIn := plane.PointOnPlane(cur[0], cur[1], cur[2]) >= 0
		if i > 0 {
			prev := points[i-1]
			prevIn := plane.PointOnPlane(prev[0], prev[1], prev[2]) >= 0
			if curIn != prevIn {
				cross := plane.LineIntersect(prev, cur)
				if curIn {
					run = append(run, cross)
				} else {
					run = append(run, cross)
					runs = append(runs, run)
					run = nil
				}
			}
		}
		if curIn {
			run = append(run, cur)
		}
	}
	if len(run) > 1 {
		runs = append(runs, run)
	}
	return runs
}
