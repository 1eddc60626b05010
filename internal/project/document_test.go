package project

import (
	"encoding/json"
	"path/filepath"
	"reflect"
	"testing"

	"plan-measure/internal/measure"
	"plan-measure/internal/shape"
	"plan-measure/pkg/colorutil"
	"plan-measure/pkg/geometry"
)

func buildState(t *testing.T) (*measure.Calibration, *shape.Registry) {
	t.Helper()
	cal := measure.NewCalibration()
	cal.AddPoint(geometry.Point2D{X: 0, Y: 0})
	cal.AddPoint(geometry.Point2D{X: 100, Y: 0})
	if err := cal.SetScale(5); err != nil {
		t.Fatalf("SetScale: %v", err)
	}

	reg := shape.NewRegistry()
	reg.AddPolygon(&shape.Polygon{
		Points:   []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		Color:    colorutil.Red,
		ShowArea: true,
	})
	reg.AddSegment(&shape.Segment{
		Points:     []geometry.Point2D{{X: 0, Y: 0}, {X: 200, Y: 0}},
		Color:      colorutil.Blue,
		ShowLength: false,
	})
	reg.AddRectangle(&shape.Rectangle{
		Points:   []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 6}, {X: 0, Y: 6}},
		Color:    colorutil.Green,
		ShowArea: true,
	})
	reg.AddText(&shape.Text{
		Anchor:     geometry.Point2D{X: 30, Y: 40},
		Content:    "bathroom",
		Color:      colorutil.Black,
		FontSize:   18,
		FontFamily: "serif",
	})
	return cal, reg
}

func TestRoundTrip(t *testing.T) {
	cal, reg := buildState(t)
	doc := FromState(cal, reg, "data:image/png;base64,AAAA")

	path := filepath.Join(t.TempDir(), "plan.planproj")
	if err := doc.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	cal2 := measure.NewCalibration()
	reg2 := shape.NewRegistry()
	imageSrc := loaded.Apply(cal2, reg2)

	if imageSrc != "data:image/png;base64,AAAA" {
		t.Errorf("image src = %q", imageSrc)
	}
	if cal2.Scale != cal.Scale || cal2.Calibrated != cal.Calibrated {
		t.Errorf("calibration: got %+v, want %+v", cal2, cal)
	}
	if !reflect.DeepEqual(reg2.Polygons, reg.Polygons) {
		t.Errorf("polygons differ:\n got %+v\nwant %+v", reg2.Polygons[0], reg.Polygons[0])
	}
	if !reflect.DeepEqual(reg2.Segments, reg.Segments) {
		t.Errorf("segments differ:\n got %+v\nwant %+v", reg2.Segments[0], reg.Segments[0])
	}
	if !reflect.DeepEqual(reg2.Rectangles, reg.Rectangles) {
		t.Errorf("rectangles differ")
	}
	if !reflect.DeepEqual(reg2.Texts, reg.Texts) {
		t.Errorf("texts differ:\n got %+v\nwant %+v", reg2.Texts[0], reg.Texts[0])
	}
}

func TestPermissiveLoadDefaults(t *testing.T) {
	raw := `{
		"polygons":   [{"points":[{"x":0,"y":0},{"x":10,"y":0},{"x":10,"y":10}]}],
		"segments":   [{"points":[{"x":0,"y":0},{"x":5,"y":0}], "color":"not-a-color"}],
		"rectangles": [{"points":[{"x":0,"y":0},{"x":4,"y":0},{"x":4,"y":4},{"x":0,"y":4}], "showArea":false}],
		"texts":      [{"x":1,"y":2,"text":"door"}]
	}`

	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	cal := measure.NewCalibration()
	reg := shape.NewRegistry()
	doc.Apply(cal, reg)

	if cal.Scale != 1 || cal.Calibrated {
		t.Errorf("missing scale: got %+v, want scale 1 uncalibrated", cal)
	}

	p := reg.Polygons[0]
	if p.Color != shape.DefaultPolygonColor || !p.ShowArea {
		t.Errorf("polygon defaults not applied: %+v", p)
	}
	s := reg.Segments[0]
	if s.Color != shape.DefaultSegmentColor {
		t.Errorf("malformed color not defaulted: %+v", s.Color)
	}
	if !s.ShowLength {
		t.Error("missing showLength should default to true")
	}
	if reg.Rectangles[0].ShowArea {
		t.Error("explicit showArea=false overridden")
	}
	txt := reg.Texts[0]
	if txt.FontSize != shape.DefaultFontSize || txt.FontFamily != shape.DefaultFontFamily {
		t.Errorf("text font defaults not applied: %+v", txt)
	}
	if txt.Color != shape.DefaultTextColor {
		t.Errorf("text color default not applied: %v", txt.Color)
	}
}

func TestDefaultsStableAcrossRepeatedRoundTrips(t *testing.T) {
	raw := `{"polygons":[{"points":[{"x":0,"y":0},{"x":10,"y":0},{"x":10,"y":10}]}]}`

	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	cal := measure.NewCalibration()
	reg := shape.NewRegistry()
	doc.Apply(cal, reg)
	first := FromState(cal, reg, "")

	// Second round-trip must reproduce the first exactly.
	cal2 := measure.NewCalibration()
	reg2 := shape.NewRegistry()
	first.Apply(cal2, reg2)
	second := FromState(cal2, reg2, "")

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Errorf("round-trips diverge:\n%s\n%s", a, b)
	}
}

func TestEmptyDocumentLoadsEmpty(t *testing.T) {
	var doc Document
	if err := json.Unmarshal([]byte(`{}`), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	cal := measure.NewCalibration()
	reg := shape.NewRegistry()
	src := doc.Apply(cal, reg)

	if src != "" || reg.Total() != 0 {
		t.Errorf("empty document: src=%q total=%d", src, reg.Total())
	}
}

func TestCalibrationPointsClampedToTwo(t *testing.T) {
	doc := Document{CalibrationPoints: []geometry.Point2D{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}}
	cal := measure.NewCalibration()
	doc.Apply(cal, shape.NewRegistry())
	if len(cal.Points) != 2 {
		t.Errorf("calibration points = %d, want 2", len(cal.Points))
	}
}
