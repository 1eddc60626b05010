package measure

import (
	"math"
	"testing"

	"plan-measure/internal/shape"
	"plan-measure/pkg/geometry"
)

func TestSummarize(t *testing.T) {
	reg := shape.NewRegistry()
	reg.AddSegment(&shape.Segment{Points: []geometry.Point2D{{X: 0, Y: 0}, {X: 100, Y: 0}}})
	reg.AddSegment(&shape.Segment{Points: []geometry.Point2D{{X: 0, Y: 0}, {X: 0, Y: 300}}})
	reg.AddPolygon(&shape.Polygon{Points: []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}})
	reg.AddText(&shape.Text{Anchor: geometry.Point2D{X: 1, Y: 1}, Content: "kitchen"})

	cal := NewCalibration()
	cal.AddPoint(geometry.Point2D{X: 0, Y: 0})
	cal.AddPoint(geometry.Point2D{X: 100, Y: 0})
	if err := cal.SetScale(10); err != nil { // 0.1 m per pixel
		t.Fatalf("SetScale: %v", err)
	}

	sum := Summarize(reg, cal)
	if sum.SegmentCount != 2 || sum.RegionCount != 1 || sum.TextCount != 1 {
		t.Errorf("counts = %+v", sum)
	}
	if math.Abs(sum.TotalLength-40) > 1e-9 { // 10 m + 30 m
		t.Errorf("TotalLength = %v, want 40", sum.TotalLength)
	}
	if math.Abs(sum.MeanLength-20) > 1e-9 {
		t.Errorf("MeanLength = %v, want 20", sum.MeanLength)
	}
	if math.Abs(sum.TotalArea-1) > 1e-9 { // 100 px² at 0.01 m²/px²
		t.Errorf("TotalArea = %v, want 1", sum.TotalArea)
	}
}

func TestSummarizeEmptyRegistry(t *testing.T) {
	sum := Summarize(shape.NewRegistry(), NewCalibration())
	if sum.SegmentCount != 0 || sum.TotalLength != 0 || sum.MeanLength != 0 ||
		sum.RegionCount != 0 || sum.TotalArea != 0 {
		t.Errorf("empty summary = %+v, want zeros", sum)
	}
}
