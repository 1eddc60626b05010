package geometry

import (
	"math"
	"testing"
)

func TestDistanceToSegment(t *testing.T) {
	cases := []struct {
		name    string
		p, v, w Point2D
		want    float64
	}{
		{"perpendicular above middle", Point2D{5, 3}, Point2D{0, 0}, Point2D{10, 0}, 3},
		{"beyond start clamps to v", Point2D{-3, 4}, Point2D{0, 0}, Point2D{10, 0}, 5},
		{"beyond end clamps to w", Point2D{13, 4}, Point2D{0, 0}, Point2D{10, 0}, 5},
		{"on segment", Point2D{5, 0}, Point2D{0, 0}, Point2D{10, 0}, 0},
	}

	for _, tc := range cases {
		if got := DistanceToSegment(tc.p, tc.v, tc.w); !approxEqual(got, tc.want, 1e-9) {
			t.Errorf("%s: DistanceToSegment = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDistanceToSegmentDegenerate(t *testing.T) {
	v := Point2D{3, 4}
	p := Point2D{0, 0}
	if got, want := DistanceToSegment(p, v, v), p.Distance(v); !approxEqual(got, want, 1e-9) {
		t.Errorf("degenerate segment distance = %v, want %v", got, want)
	}
}

func TestSnapAngle(t *testing.T) {
	origin := Point2D{0, 0}

	// (10,4) is closer to 0 degrees than to 45; radius is preserved.
	got := SnapAngle(origin, Point2D{10, 4})
	radius := math.Sqrt(10*10 + 4*4)
	if !approxEqual(got.X, radius, 1e-9) || !approxEqual(got.Y, 0, 1e-9) {
		t.Errorf("SnapAngle(10,4) = %v, want (%v, 0)", got, radius)
	}

	// Exactly diagonal stays diagonal.
	got = SnapAngle(origin, Point2D{5, 5})
	if !approxEqual(got.X, 5, 1e-9) || !approxEqual(got.Y, 5, 1e-9) {
		t.Errorf("SnapAngle(5,5) = %v, want (5,5)", got)
	}

	// Near vertical snaps to vertical.
	got = SnapAngle(origin, Point2D{0.5, 10})
	r := origin.Distance(Point2D{0.5, 10})
	if !approxEqual(got.X, 0, 1e-9) || !approxEqual(got.Y, r, 1e-9) {
		t.Errorf("SnapAngle(0.5,10) = %v, want (0, %v)", got, r)
	}

	// Coincident points return the origin.
	if got = SnapAngle(origin, origin); got != origin {
		t.Errorf("SnapAngle(origin, origin) = %v, want origin", got)
	}
}

func TestSnapAnglePreservesRadius(t *testing.T) {
	origin := Point2D{3, -2}
	targets := []Point2D{{7, 1}, {-4, 6}, {3.1, -9}, {12, 12}}
	for _, target := range targets {
		snapped := SnapAngle(origin, target)
		if got, want := origin.Distance(snapped), origin.Distance(target); !approxEqual(got, want, 1e-9) {
			t.Errorf("radius after snap = %v, want %v (target %v)", got, want, target)
		}
	}
}

func TestRectangleFromBaseAndHeight(t *testing.T) {
	a := Point2D{0, 0}
	b := Point2D{10, 0}
	p := Point2D{4, 6}

	quad, ok := RectangleFromBaseAndHeight(a, b, p)
	if !ok {
		t.Fatal("construction failed for valid base")
	}
	if quad[0] != a || quad[1] != b {
		t.Errorf("base vertices changed: %v", quad)
	}
	if !approxEqual(quad[2].Y, 6, 1e-9) || !approxEqual(quad[3].Y, 6, 1e-9) {
		t.Errorf("height not projected correctly: %v", quad)
	}
}

func TestRectangleFromBaseAndHeightRightAngles(t *testing.T) {
	// AB . BC must be zero for any non-degenerate base and any third point.
	cases := []struct {
		a, b, p Point2D
	}{
		{Point2D{0, 0}, Point2D{10, 0}, Point2D{4, 6}},
		{Point2D{1, 2}, Point2D{7, 9}, Point2D{-3, 4}},
		{Point2D{-5, -5}, Point2D{-1, 3}, Point2D{100, -2}},
		{Point2D{0, 0}, Point2D{0, 8}, Point2D{3, 3}},
	}

	for _, tc := range cases {
		quad, ok := RectangleFromBaseAndHeight(tc.a, tc.b, tc.p)
		if !ok {
			t.Fatalf("construction failed for base %v-%v", tc.a, tc.b)
		}
		ab := quad[1].Sub(quad[0])
		bc := quad[2].Sub(quad[1])
		dot := ab.X*bc.X + ab.Y*bc.Y
		if !approxEqual(dot, 0, 1e-9) {
			t.Errorf("AB.BC = %v for base %v-%v, want 0", dot, tc.a, tc.b)
		}
	}
}

func TestRectangleFromBaseAndHeightDegenerateBase(t *testing.T) {
	a := Point2D{2, 3}
	for _, p := range []Point2D{{0, 0}, {5, 5}, {2, 3}} {
		if _, ok := RectangleFromBaseAndHeight(a, a, p); ok {
			t.Errorf("zero-length base accepted for third point %v", p)
		}
	}
}

func TestSteppedPathMidpoint(t *testing.T) {
	cases := []struct {
		name   string
		p1, p2 Point2D
		want   Point2D
	}{
		// Manhattan length 10+6=16, half 8 lies on the horizontal leg.
		{"on horizontal leg", Point2D{0, 0}, Point2D{10, 6}, Point2D{8, 0}},
		// Manhattan length 4+10=14, half 7 goes 4 across then 3 down.
		{"on vertical leg", Point2D{0, 0}, Point2D{4, 10}, Point2D{4, 3}},
		{"leftward", Point2D{10, 0}, Point2D{0, 6}, Point2D{2, 0}},
		{"upward", Point2D{0, 10}, Point2D{4, 0}, Point2D{4, 7}},
		{"pure horizontal", Point2D{0, 0}, Point2D{10, 0}, Point2D{5, 0}},
		{"pure vertical", Point2D{0, 0}, Point2D{0, 10}, Point2D{0, 5}},
		{"coincident", Point2D{3, 3}, Point2D{3, 3}, Point2D{3, 3}},
	}

	for _, tc := range cases {
		got := SteppedPathMidpoint(tc.p1, tc.p2)
		if !approxEqual(got.X, tc.want.X, 1e-9) || !approxEqual(got.Y, tc.want.Y, 1e-9) {
			t.Errorf("%s: SteppedPathMidpoint = %v, want %v", tc.name, got, tc.want)
		}
	}
}
