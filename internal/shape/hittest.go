package shape

import (
	"plan-measure/pkg/geometry"
)

// segmentHitTolerance is the maximum pixel distance from a segment that
// still counts as a hit.
const segmentHitTolerance = 6.0

// TextMeasurer reports the rendered width and height in pixels of a text
// label. The UI layer supplies real font metrics; tests use a fixed stub.
type TextMeasurer func(t *Text) (width, height float64)

// Locate resolves the topmost shape at the given pixel coordinate.
// Area-filled kinds take priority over thin ones: polygons, then
// rectangles, then segments, then text boxes, each searched in reverse
// insertion order so later shapes win. Returns nil when nothing qualifies.
func (reg *Registry) Locate(p geometry.Point2D, measure TextMeasurer) *Ref {
	for i := len(reg.Polygons) - 1; i >= 0; i-- {
		if geometry.PointInPolygon(p, reg.Polygons[i].Points) {
			return reg.ref(KindPolygon, i)
		}
	}

	for i := len(reg.Rectangles) - 1; i >= 0; i-- {
		if geometry.PointInPolygon(p, reg.Rectangles[i].Points) {
			return reg.ref(KindRectangle, i)
		}
	}

	for i := len(reg.Segments) - 1; i >= 0; i-- {
		s := reg.Segments[i]
		if len(s.Points) != 2 {
			continue
		}
		if geometry.DistanceToSegment(p, s.Points[0], s.Points[1]) < segmentHitTolerance {
			return reg.ref(KindSegment, i)
		}
	}

	if measure != nil {
		for i := len(reg.Texts) - 1; i >= 0; i-- {
			t := reg.Texts[i]
			w, h := measure(t)
			box := geometry.NewRect(t.Anchor.X, t.Anchor.Y, w, h)
			if box.Contains(p) {
				return reg.ref(KindText, i)
			}
		}
	}

	return nil
}
