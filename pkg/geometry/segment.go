package geometry

import "math"

// DistanceToSegment returns the distance from p to the line segment v-w.
// The projection of p onto the line is clamped to the segment; when v and w
// coincide the distance to v is returned.
func DistanceToSegment(p, v, w Point2D) float64 {
	dx := w.X - v.X
	dy := w.Y - v.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return p.Distance(v)
	}

	t := ((p.X-v.X)*dx + (p.Y-v.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	proj := Point2D{X: v.X + t*dx, Y: v.Y + t*dy}
	return p.Distance(proj)
}

// SnapAngle constrains target to the nearest 45-degree increment around
// origin, preserving the original distance. With coincident points the
// origin is returned unchanged.
func SnapAngle(origin, target Point2D) Point2D {
	dx := target.X - origin.X
	dy := target.Y - origin.Y
	radius := math.Sqrt(dx*dx + dy*dy)
	if radius == 0 {
		return origin
	}

	step := math.Pi / 4
	angle := math.Round(math.Atan2(dy, dx)/step) * step

	return Point2D{
		X: origin.X + radius*math.Cos(angle),
		Y: origin.Y + radius*math.Sin(angle),
	}
}

// RectangleFromBaseAndHeight constructs a rectangle from base endpoints a, b
// and a third point p. The signed height is the projection of p-a onto the
// unit perpendicular of a-b, so the result has right angles by construction.
// The vertices are returned in order [a, b, c, d]; ok is false when a and b
// coincide (a zero-length base has no defined perpendicular).
func RectangleFromBaseAndHeight(a, b, p Point2D) (quad [4]Point2D, ok bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	baseLen := math.Sqrt(dx*dx + dy*dy)
	if baseLen == 0 {
		return quad, false
	}

	// Unit perpendicular to the base
	perpX := -dy / baseLen
	perpY := dx / baseLen

	height := (p.X-a.X)*perpX + (p.Y-a.Y)*perpY

	quad[0] = a
	quad[1] = b
	quad[2] = Point2D{X: b.X + height*perpX, Y: b.Y + height*perpY}
	quad[3] = Point2D{X: a.X + height*perpX, Y: a.Y + height*perpY}
	return quad, true
}

// SteppedPathMidpoint returns the point at half the Manhattan length along
// the L-shaped path that runs horizontally from p1 to (p2.X, p1.Y) and then
// vertically to p2. It is used to place a length label on a right-angle
// preview path. Coincident points return p1.
func SteppedPathMidpoint(p1, p2 Point2D) Point2D {
	horiz := math.Abs(p2.X - p1.X)
	vert := math.Abs(p2.Y - p1.Y)
	half := (horiz + vert) / 2
	if half == 0 {
		return p1
	}

	if half <= horiz {
		// Midpoint lies on the horizontal leg
		dir := 1.0
		if p2.X < p1.X {
			dir = -1
		}
		return Point2D{X: p1.X + dir*half, Y: p1.Y}
	}

	// Midpoint lies on the vertical leg
	dir := 1.0
	if p2.Y < p1.Y {
		dir = -1
	}
	return Point2D{X: p2.X, Y: p1.Y + dir*(half-horiz)}
}
