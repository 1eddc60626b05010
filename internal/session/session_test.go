package session

import (
	"errors"
	"math"
	"testing"

	"plan-measure/internal/measure"
	"plan-measure/internal/shape"
	"plan-measure/pkg/geometry"
)

func calibrated(t *testing.T) *measure.Calibration {
	t.Helper()
	cal := measure.NewCalibration()
	cal.AddPoint(geometry.Point2D{X: 0, Y: 0})
	cal.AddPoint(geometry.Point2D{X: 100, Y: 0})
	if err := cal.SetScale(5); err != nil {
		t.Fatalf("SetScale: %v", err)
	}
	return cal
}

func TestClicksGoToCalibrationFirst(t *testing.T) {
	cal := measure.NewCalibration()
	reg := shape.NewRegistry()
	s := New(cal, reg)

	ev, err := s.PointerDown(geometry.Point2D{X: 0, Y: 0}, false)
	if err != nil || ev.Kind != EventCalibrationPoint {
		t.Fatalf("first click: %+v, %v", ev, err)
	}
	ev, err = s.PointerDown(geometry.Point2D{X: 100, Y: 0}, false)
	if err != nil || ev.Kind != EventCalibrationReady {
		t.Fatalf("second click: %+v, %v", ev, err)
	}
	// Third click is rejected by the drawing layer.
	ev, err = s.PointerDown(geometry.Point2D{X: 50, Y: 50}, false)
	if err != nil || ev.Kind != EventIgnored {
		t.Fatalf("third click: %+v, %v", ev, err)
	}
	if reg.Total() != 0 {
		t.Error("registry mutated before calibration")
	}
}

func TestCommitRefusedWhileUncalibrated(t *testing.T) {
	s := New(measure.NewCalibration(), shape.NewRegistry())

	if _, err := s.FinalizePolygon(); !errors.Is(err, ErrMissingScale) {
		t.Errorf("FinalizePolygon: err = %v, want ErrMissingScale", err)
	}
	if _, err := s.CommitText(geometry.Point2D{X: 1, Y: 1}, "hi"); !errors.Is(err, ErrMissingScale) {
		t.Errorf("CommitText: err = %v, want ErrMissingScale", err)
	}
}

func TestSegmentFlow(t *testing.T) {
	reg := shape.NewRegistry()
	s := New(calibrated(t), reg)
	s.SetMode(ModeSegment)

	ev, err := s.PointerDown(geometry.Point2D{X: 0, Y: 0}, false)
	if err != nil || ev.Kind != EventNone {
		t.Fatalf("first point: %+v, %v", ev, err)
	}
	ev, err = s.PointerDown(geometry.Point2D{X: 200, Y: 0}, false)
	if err != nil || ev.Kind != EventShapeCommitted {
		t.Fatalf("second point: %+v, %v", ev, err)
	}
	if ev.Ref == nil || ev.Ref.Kind != shape.KindSegment {
		t.Fatalf("committed ref = %+v", ev.Ref)
	}
	if len(s.InProgress()) != 0 {
		t.Error("in-progress points not cleared after commit")
	}
	if got := reg.Segments[0].PixelLength(); got != 200 {
		t.Errorf("segment length = %v, want 200", got)
	}
}

func TestSegmentSnapAppliedBeforeCommit(t *testing.T) {
	reg := shape.NewRegistry()
	s := New(calibrated(t), reg)
	s.SetMode(ModeSegment)

	s.PointerDown(geometry.Point2D{X: 0, Y: 0}, true)
	ev, err := s.PointerDown(geometry.Point2D{X: 10, Y: 4}, true)
	if err != nil || ev.Kind != EventShapeCommitted {
		t.Fatalf("commit: %+v, %v", ev, err)
	}

	// (10,4) snaps to the 0-degree ray at the original radius.
	end := reg.Segments[0].Points[1]
	radius := math.Sqrt(10*10 + 4*4)
	if math.Abs(end.X-radius) > 1e-9 || math.Abs(end.Y) > 1e-9 {
		t.Errorf("snapped endpoint = %v, want (%v, 0)", end, radius)
	}
}

func TestRectangleFlow(t *testing.T) {
	reg := shape.NewRegistry()
	s := New(calibrated(t), reg)
	s.SetMode(ModeRectangle)

	s.PointerDown(geometry.Point2D{X: 0, Y: 0}, false)
	s.PointerDown(geometry.Point2D{X: 10, Y: 0}, false)
	ev, err := s.PointerDown(geometry.Point2D{X: 4, Y: 6}, false)
	if err != nil || ev.Kind != EventShapeCommitted {
		t.Fatalf("third point: %+v, %v", ev, err)
	}

	r := reg.Rectangles[0]
	if len(r.Points) != 4 {
		t.Fatalf("rectangle has %d points", len(r.Points))
	}
	if got := r.PixelArea(); math.Abs(got-60) > 1e-9 {
		t.Errorf("rectangle area = %v, want 60", got)
	}
}

func TestRectangleDegenerateBaseDiscardedSilently(t *testing.T) {
	reg := shape.NewRegistry()
	s := New(calibrated(t), reg)
	s.SetMode(ModeRectangle)

	p := geometry.Point2D{X: 5, Y: 5}
	s.PointerDown(p, false)
	s.PointerDown(p, false)
	_, err := s.PointerDown(geometry.Point2D{X: 9, Y: 9}, false)
	if !errors.Is(err, ErrDegenerateRectangleBase) {
		t.Errorf("err = %v, want ErrDegenerateRectangleBase", err)
	}
	if reg.Total() != 0 {
		t.Error("degenerate rectangle committed")
	}
	if len(s.InProgress()) != 0 {
		t.Error("in-progress state not cleared after discard")
	}
}

func TestPolygonFlow(t *testing.T) {
	reg := shape.NewRegistry()
	s := New(calibrated(t), reg)
	s.SetMode(ModePolygon)

	s.PointerDown(geometry.Point2D{X: 0, Y: 0}, false)
	s.PointerDown(geometry.Point2D{X: 10, Y: 0}, false)

	if _, err := s.FinalizePolygon(); !errors.Is(err, ErrInsufficientPoints) {
		t.Fatalf("finalize with 2 points: err = %v, want ErrInsufficientPoints", err)
	}
	if len(s.InProgress()) != 2 {
		t.Error("failed finalize disturbed in-progress points")
	}

	s.PointerDown(geometry.Point2D{X: 10, Y: 10}, false)
	s.PointerDown(geometry.Point2D{X: 0, Y: 10}, false)
	ref, err := s.FinalizePolygon()
	if err != nil {
		t.Fatalf("FinalizePolygon: %v", err)
	}
	if ref.Kind != shape.KindPolygon {
		t.Errorf("ref kind = %v", ref.Kind)
	}
	if got := reg.Polygons[0].PixelArea(); got != 100 {
		t.Errorf("polygon area = %v, want 100", got)
	}
	if len(s.InProgress()) != 0 {
		t.Error("in-progress points survive successful finalize")
	}
}

func TestTextFlow(t *testing.T) {
	reg := shape.NewRegistry()
	s := New(calibrated(t), reg)
	s.SetMode(ModeText)

	anchor := geometry.Point2D{X: 30, Y: 40}
	ev, err := s.PointerDown(anchor, false)
	if err != nil || ev.Kind != EventTextPrompt {
		t.Fatalf("text click: %+v, %v", ev, err)
	}

	ref, err := s.CommitText(ev.Point, "bedroom")
	if err != nil || ref == nil {
		t.Fatalf("CommitText: %v, %v", ref, err)
	}
	txt := reg.Texts[0]
	if txt.Content != "bedroom" || txt.Anchor != anchor {
		t.Errorf("text = %+v", txt)
	}
	if txt.FontSize != shape.DefaultFontSize || txt.FontFamily != shape.DefaultFontFamily {
		t.Errorf("text font defaults not applied: %+v", txt)
	}

	// Cancelled prompt commits nothing.
	ref, err = s.CommitText(anchor, "")
	if err != nil || ref != nil {
		t.Errorf("empty content: ref=%v err=%v", ref, err)
	}
	if len(reg.Texts) != 1 {
		t.Error("empty content appended a text shape")
	}
}

func TestModeChangeClearsProgress(t *testing.T) {
	s := New(calibrated(t), shape.NewRegistry())
	s.SetMode(ModePolygon)
	s.PointerDown(geometry.Point2D{X: 0, Y: 0}, false)
	s.SetPreview(geometry.Point2D{X: 5, Y: 5}, false)

	s.SetMode(ModeSegment)
	if len(s.InProgress()) != 0 || s.Preview() != nil {
		t.Error("mode change left in-progress state behind")
	}
}

func TestUndoPoint(t *testing.T) {
	cal := measure.NewCalibration()
	s := New(cal, shape.NewRegistry())

	// Before calibration, undo pops calibration points.
	if s.UndoPoint() {
		t.Error("undo on empty calibration reported success")
	}
	s.PointerDown(geometry.Point2D{X: 0, Y: 0}, false)
	if !s.UndoPoint() {
		t.Error("calibration undo failed")
	}
	if len(cal.Points) != 0 {
		t.Errorf("calibration points = %d after undo", len(cal.Points))
	}

	// After calibration, undo pops in-progress points.
	s2 := New(calibrated(t), shape.NewRegistry())
	s2.SetMode(ModePolygon)
	if s2.UndoPoint() {
		t.Error("undo with no in-progress points reported success")
	}
	s2.PointerDown(geometry.Point2D{X: 1, Y: 1}, false)
	s2.PointerDown(geometry.Point2D{X: 2, Y: 2}, false)
	if !s2.UndoPoint() {
		t.Error("undo failed")
	}
	if len(s2.InProgress()) != 1 {
		t.Errorf("in-progress = %d, want 1", len(s2.InProgress()))
	}
}

func TestPreviewSteppedPath(t *testing.T) {
	s := New(calibrated(t), shape.NewRegistry())
	s.SetMode(ModeSegment)

	if _, ok := s.PreviewLabelAnchor(); ok {
		t.Error("label anchor reported with no preview line")
	}

	s.PointerDown(geometry.Point2D{X: 0, Y: 0}, false)
	s.SetPreview(geometry.Point2D{X: 10, Y: 6}, false)

	anchor, ok := s.PreviewLabelAnchor()
	if !ok {
		t.Fatal("no label anchor with active preview")
	}
	// Half the Manhattan length (8) lies on the horizontal leg.
	if anchor.X != 8 || anchor.Y != 0 {
		t.Errorf("label anchor = %v, want (8,0)", anchor)
	}

	if got, want := s.PreviewPixelLength(), math.Sqrt(136); math.Abs(got-want) > 1e-9 {
		t.Errorf("preview length = %v, want %v", got, want)
	}

	s.ClearPreview()
	if s.Preview() != nil {
		t.Error("preview survives ClearPreview")
	}
}
