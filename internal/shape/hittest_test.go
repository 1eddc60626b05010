package shape

import (
	"testing"

	"plan-measure/pkg/geometry"
)

// fixedMetrics gives every label a 40x12 px box for deterministic tests.
func fixedMetrics(*Text) (float64, float64) {
	return 40, 12
}

func TestLocatePriorityOrder(t *testing.T) {
	reg := NewRegistry()
	// All four shapes cover the probe point (5,5).
	reg.AddSegment(&Segment{Points: []geometry.Point2D{{X: 0, Y: 5}, {X: 10, Y: 5}}})
	reg.AddText(&Text{Anchor: geometry.Point2D{X: 0, Y: 0}, Content: "label"})
	reg.AddRectangle(&Rectangle{Points: square(0, 0, 10)})
	reg.AddPolygon(&Polygon{Points: square(0, 0, 10)})

	probe := geometry.Point2D{X: 5, Y: 5}

	ref := reg.Locate(probe, fixedMetrics)
	if ref == nil || ref.Kind != KindPolygon {
		t.Fatalf("Locate = %+v, want polygon", ref)
	}

	reg.Delete(KindPolygon, 0)
	if ref = reg.Locate(probe, fixedMetrics); ref == nil || ref.Kind != KindRectangle {
		t.Fatalf("Locate = %+v, want rectangle", ref)
	}

	reg.Delete(KindRectangle, 0)
	if ref = reg.Locate(probe, fixedMetrics); ref == nil || ref.Kind != KindSegment {
		t.Fatalf("Locate = %+v, want segment", ref)
	}

	reg.Delete(KindSegment, 0)
	if ref = reg.Locate(probe, fixedMetrics); ref == nil || ref.Kind != KindText {
		t.Fatalf("Locate = %+v, want text", ref)
	}

	reg.Delete(KindText, 0)
	if ref = reg.Locate(probe, fixedMetrics); ref != nil {
		t.Fatalf("Locate on empty registry = %+v, want nil", ref)
	}
}

func TestLocateTopmostWins(t *testing.T) {
	reg := NewRegistry()
	reg.AddPolygon(&Polygon{Points: square(0, 0, 10)})
	reg.AddPolygon(&Polygon{Points: square(5, 5, 10)}) // overlaps, added later

	ref := reg.Locate(geometry.Point2D{X: 7, Y: 7}, nil)
	if ref == nil || ref.Kind != KindPolygon || ref.Index != 1 {
		t.Errorf("Locate = %+v, want topmost polygon index 1", ref)
	}
}

func TestLocateSegmentTolerance(t *testing.T) {
	reg := NewRegistry()
	reg.AddSegment(&Segment{Points: []geometry.Point2D{{X: 0, Y: 0}, {X: 100, Y: 0}}})

	if ref := reg.Locate(geometry.Point2D{X: 50, Y: 5}, nil); ref == nil {
		t.Error("point 5px from segment not hit")
	}
	if ref := reg.Locate(geometry.Point2D{X: 50, Y: 7}, nil); ref != nil {
		t.Error("point 7px from segment hit")
	}
}

func TestLocateTextBox(t *testing.T) {
	reg := NewRegistry()
	reg.AddText(&Text{Anchor: geometry.Point2D{X: 10, Y: 10}, Content: "room"})

	if ref := reg.Locate(geometry.Point2D{X: 30, Y: 15}, fixedMetrics); ref == nil || ref.Kind != KindText {
		t.Errorf("Locate inside text box = %+v, want text", ref)
	}
	if ref := reg.Locate(geometry.Point2D{X: 60, Y: 15}, fixedMetrics); ref != nil {
		t.Errorf("Locate outside text box = %+v, want nil", ref)
	}

	// Without a measurer text cannot be hit.
	if ref := reg.Locate(geometry.Point2D{X: 30, Y: 15}, nil); ref != nil {
		t.Errorf("Locate without measurer = %+v, want nil", ref)
	}
}
