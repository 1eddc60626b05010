package app

import (
	"path/filepath"
	"testing"

	"plan-measure/internal/shape"
	"plan-measure/pkg/geometry"
)

func calibrate(t *testing.T, s *State) {
	t.Helper()
	s.Calibration.AddPoint(geometry.Point2D{X: 0, Y: 0})
	s.Calibration.AddPoint(geometry.Point2D{X: 100, Y: 0})
	if err := s.Calibration.SetScale(5); err != nil {
		t.Fatalf("SetScale: %v", err)
	}
}

func TestSelectionClearedOnDelete(t *testing.T) {
	s := NewState()
	s.Shapes.AddPolygon(&shape.Polygon{Points: []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}})
	ref := s.Shapes.AddPolygon(&shape.Polygon{Points: []geometry.Point2D{{X: 20, Y: 0}, {X: 30, Y: 0}, {X: 30, Y: 10}}})
	s.SetSelection(ref)

	// Deleting an earlier polygon shifts this one; the stale selection
	// must resolve to nil rather than the wrong shape.
	s.Shapes.Delete(shape.KindPolygon, 0)
	if got := s.ValidSelection(); got != nil {
		t.Errorf("stale selection resolved to %+v, want nil", got)
	}
	if s.Selection != nil {
		t.Error("stale selection not cleared")
	}
}

func TestDeleteSelected(t *testing.T) {
	s := NewState()
	if s.DeleteSelected() {
		t.Error("DeleteSelected with no selection reported success")
	}

	ref := s.Shapes.AddSegment(&shape.Segment{Points: []geometry.Point2D{{X: 0, Y: 0}, {X: 5, Y: 0}}})
	s.SetSelection(ref)
	if !s.DeleteSelected() {
		t.Fatal("DeleteSelected failed")
	}
	if s.Shapes.Total() != 0 {
		t.Error("shape not removed")
	}
	if !s.Modified {
		t.Error("delete did not mark project modified")
	}
}

func TestProjectRoundTripThroughState(t *testing.T) {
	s := NewState()
	calibrate(t, s)
	s.Shapes.AddPolygon(&shape.Polygon{
		Points:   []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		Color:    shape.DefaultPolygonColor,
		ShowArea: true,
	})
	s.SetModified(true)

	path := filepath.Join(t.TempDir(), "flat.planproj")
	if err := s.SaveProject(path); err != nil {
		t.Fatalf("SaveProject: %v", err)
	}
	if s.Modified {
		t.Error("save did not clear modified flag")
	}

	loaded := NewState()
	if err := loaded.LoadProject(path); err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if !loaded.Calibration.Calibrated || loaded.Calibration.Scale != 0.05 {
		t.Errorf("calibration = %+v", loaded.Calibration)
	}
	if len(loaded.Shapes.Polygons) != 1 {
		t.Fatalf("polygons = %d, want 1", len(loaded.Shapes.Polygons))
	}
	if loaded.ProjectPath != path {
		t.Errorf("ProjectPath = %q", loaded.ProjectPath)
	}
}

func TestNewProjectResetsEverything(t *testing.T) {
	s := NewState()
	calibrate(t, s)
	s.Shapes.AddText(&shape.Text{Anchor: geometry.Point2D{X: 1, Y: 1}, Content: "x"})
	s.SetModified(true)

	s.NewProject()
	if s.Calibration.Calibrated || s.Shapes.Total() != 0 || s.Modified || s.ProjectPath != "" {
		t.Errorf("state not reset: %+v", s)
	}
}

func TestEvents(t *testing.T) {
	s := NewState()
	var got []EventType
	s.On(EventShapesChanged, func(interface{}) { got = append(got, EventShapesChanged) })
	s.On(EventModified, func(interface{}) { got = append(got, EventModified) })

	ref := s.Shapes.AddSegment(&shape.Segment{Points: []geometry.Point2D{{X: 0, Y: 0}, {X: 5, Y: 0}}})
	s.SetSelection(ref)
	s.DeleteSelected()

	foundShapes := false
	for _, e := range got {
		if e == EventShapesChanged {
			foundShapes = true
		}
	}
	if !foundShapes {
		t.Errorf("events = %v, want EventShapesChanged emitted", got)
	}
}
