package geometry

// SignedArea computes the signed area of a polygon using the shoelace
// formula. The sign follows vertex orientation: positive for one winding
// direction, negative for the other. Fewer than 3 vertices yields 0.
func SignedArea(points []Point2D) float64 {
	if len(points) < 3 {
		return 0
	}

	var sum float64
	n := len(points)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += points[i].X*points[j].Y - points[j].X*points[i].Y
	}
	return sum / 2
}

// Area computes the absolute area of a polygon. Degenerate inputs
// (fewer than 3 vertices, or collinear vertices) yield 0.
func Area(points []Point2D) float64 {
	a := SignedArea(points)
	if a < 0 {
		return -a
	}
	return a
}

// PolygonCentroid computes the area-weighted centroid of a polygon.
// When the signed area is zero (degenerate polygon) the first vertex is
// returned; this is a documented edge-case policy, not a true centroid.
func PolygonCentroid(points []Point2D) Point2D {
	if len(points) == 0 {
		return Point2D{}
	}

	signed := SignedArea(points)
	if signed == 0 {
		return points[0]
	}

	var cx, cy float64
	n := len(points)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := points[i].X*points[j].Y - points[j].X*points[i].Y
		cx += (points[i].X + points[j].X) * cross
		cy += (points[i].Y + points[j].Y) * cross
	}

	factor := 1 / (6 * signed)
	return Point2D{X: cx * factor, Y: cy * factor}
}

// PointInPolygon tests if a point is inside a polygon using ray casting.
func PointInPolygon(p Point2D, polygon []Point2D) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	n := len(polygon)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pi, pj := polygon[i], polygon[j]

		// Check if ray from p going right intersects edge pi-pj
		if ((pi.Y > p.Y) != (pj.Y > p.Y)) &&
			(p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X) {
			inside = !inside
		}
	}

	return inside
}

// PerimeterLength returns the total edge length of a closed polygon.
func PerimeterLength(points []Point2D) float64 {
	if len(points) < 2 {
		return 0
	}
	var total float64
	n := len(points)
	for i := 0; i < n; i++ {
		total += points[i].Distance(points[(i+1)%n])
	}
	return total
}
