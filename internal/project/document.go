// Package project provides project file handling and persistence.
package project

import (
	"encoding/json"
	"os"

	"plan-measure/internal/measure"
	"plan-measure/internal/shape"
	"plan-measure/pkg/colorutil"
	"plan-measure/pkg/geometry"
)

// Document is the persisted project schema (.planproj). Loading is
// permissive: missing display attributes fall back to per-kind defaults,
// a missing scale defaults to 1, and missing arrays load as empty.
type Document struct {
	CalibrationPoints []geometry.Point2D `json:"calibrationPoints"`
	IsScaleSet        bool               `json:"isScaleSet"`
	Scale             *float64           `json:"scale,omitempty"` // meters per pixel; nil loads as 1
	FloorPlanImageSrc string             `json:"floorPlanImageSrc,omitempty"`

	Polygons   []PolygonRecord   `json:"polygons"`
	Segments   []SegmentRecord   `json:"segments"`
	Rectangles []RectangleRecord `json:"rectangles"`
	Texts      []TextRecord      `json:"texts"`
}

// PolygonRecord is the wire form of a polygon.
type PolygonRecord struct {
	Points   []geometry.Point2D `json:"points"`
	Color    string             `json:"color,omitempty"`
	ShowArea *bool              `json:"showArea,omitempty"`
}

// SegmentRecord is the wire form of a segment.
type SegmentRecord struct {
	Points     []geometry.Point2D `json:"points"`
	Color      string             `json:"color,omitempty"`
	ShowLength *bool              `json:"showLength,omitempty"`
}

// RectangleRecord is the wire form of a rectangle.
type RectangleRecord struct {
	Points   []geometry.Point2D `json:"points"`
	Color    string             `json:"color,omitempty"`
	ShowArea *bool              `json:"showArea,omitempty"`
}

// TextRecord is the wire form of a text label.
type TextRecord struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Text       string  `json:"text"`
	Color      string  `json:"color,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`
	FontFamily string  `json:"fontFamily,omitempty"`
}

// FromState captures calibration, shapes, and the image source into a
// document ready for serialization.
func FromState(cal *measure.Calibration, reg *shape.Registry, imageSrc string) *Document {
	scale := cal.Scale
	doc := &Document{
		CalibrationPoints: append([]geometry.Point2D{}, cal.Points...),
		IsScaleSet:        cal.Calibrated,
		Scale:             &scale,
		FloorPlanImageSrc: imageSrc,
		Polygons:          make([]PolygonRecord, 0, len(reg.Polygons)),
		Segments:          make([]SegmentRecord, 0, len(reg.Segments)),
		Rectangles:        make([]RectangleRecord, 0, len(reg.Rectangles)),
		Texts:             make([]TextRecord, 0, len(reg.Texts)),
	}

	for _, p := range reg.Polygons {
		show := p.ShowArea
		doc.Polygons = append(doc.Polygons, PolygonRecord{
			Points:   append([]geometry.Point2D{}, p.Points...),
			Color:    colorutil.ToHex(p.Color),
			ShowArea: &show,
		})
	}
	for _, s := range reg.Segments {
		show := s.ShowLength
		doc.Segments = append(doc.Segments, SegmentRecord{
			Points:     append([]geometry.Point2D{}, s.Points...),
			Color:      colorutil.ToHex(s.Color),
			ShowLength: &show,
		})
	}
	for _, r := range reg.Rectangles {
		show := r.ShowArea
		doc.Rectangles = append(doc.Rectangles, RectangleRecord{
			Points:   append([]geometry.Point2D{}, r.Points...),
			Color:    colorutil.ToHex(r.Color),
			ShowArea: &show,
		})
	}
	for _, t := range reg.Texts {
		doc.Texts = append(doc.Texts, TextRecord{
			X:          t.Anchor.X,
			Y:          t.Anchor.Y,
			Text:       t.Content,
			Color:      colorutil.ToHex(t.Color),
			FontSize:   t.FontSize,
			FontFamily: t.FontFamily,
		})
	}

	return doc
}

// Apply restores the document into the calibration and registry, replacing
// their contents, and returns the stored image source. Missing fields take
// their defaults; the defaults are stable under repeated round-trips.
func (d *Document) Apply(cal *measure.Calibration, reg *shape.Registry) string {
	cal.Reset()
	cal.Calibrated = d.IsScaleSet
	cal.Scale = 1
	if d.Scale != nil && *d.Scale > 0 {
		cal.Scale = *d.Scale
	}
	if n := len(d.CalibrationPoints); n > 0 {
		if n > 2 {
			n = 2
		}
		cal.Points = append([]geometry.Point2D{}, d.CalibrationPoints[:n]...)
	}

	reg.Clear()
	for _, rec := range d.Polygons {
		reg.AddPolygon(&shape.Polygon{
			Points:   append([]geometry.Point2D{}, rec.Points...),
			Color:    colorutil.FromHex(rec.Color, shape.DefaultPolygonColor),
			ShowArea: boolOrTrue(rec.ShowArea),
		})
	}
	for _, rec := range d.Segments {
		reg.AddSegment(&shape.Segment{
			Points:     append([]geometry.Point2D{}, rec.Points...),
			Color:      colorutil.FromHex(rec.Color, shape.DefaultSegmentColor),
			ShowLength: boolOrTrue(rec.ShowLength),
		})
	}
	for _, rec := range d.Rectangles {
		reg.AddRectangle(&shape.Rectangle{
			Points:   append([]geometry.Point2D{}, rec.Points...),
			Color:    colorutil.FromHex(rec.Color, shape.DefaultRectangleColor),
			ShowArea: boolOrTrue(rec.ShowArea),
		})
	}
	for _, rec := range d.Texts {
		fontSize := rec.FontSize
		if fontSize <= 0 {
			fontSize = shape.DefaultFontSize
		}
		fontFamily := rec.FontFamily
		if fontFamily == "" {
			fontFamily = shape.DefaultFontFamily
		}
		reg.AddText(&shape.Text{
			Anchor:     geometry.Point2D{X: rec.X, Y: rec.Y},
			Content:    rec.Text,
			Color:      colorutil.FromHex(rec.Color, shape.DefaultTextColor),
			FontSize:   fontSize,
			FontFamily: fontFamily,
		})
	}

	return d.FloorPlanImageSrc
}

func boolOrTrue(b *bool) bool {
	if b == nil {
		return true
	}
	return *b
}

// Load reads a project document from a .planproj file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// Save writes the document to a file.
func (d *Document) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
