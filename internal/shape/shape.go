// Package shape provides the annotation shape model: typed polygon, segment,
// rectangle, and text records, an ordered per-kind registry, and spatial
// hit-testing for selection.
package shape

import (
	"image/color"

	"plan-measure/pkg/colorutil"
	"plan-measure/pkg/geometry"
)

// Kind identifies a shape variant.
type Kind int

const (
	KindPolygon Kind = iota
	KindRectangle
	KindSegment
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindPolygon:
		return "polygon"
	case KindRectangle:
		return "rectangle"
	case KindSegment:
		return "segment"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Default display attributes per kind.
var (
	DefaultPolygonColor   = colorutil.Red
	DefaultSegmentColor   = colorutil.Blue
	DefaultRectangleColor = colorutil.Green
	DefaultTextColor      = colorutil.Black
)

const (
	DefaultFontSize   = 16.0
	DefaultFontFamily = "sans-serif"
)

// DefaultColor returns the default display color for a kind.
func DefaultColor(k Kind) color.RGBA {
	switch k {
	case KindPolygon:
		return DefaultPolygonColor
	case KindRectangle:
		return DefaultRectangleColor
	case KindSegment:
		return DefaultSegmentColor
	case KindText:
		return DefaultTextColor
	default:
		return colorutil.Black
	}
}

// Polygon is a closed free-form region. A finalized polygon always has at
// least three vertices.
type Polygon struct {
	Points   []geometry.Point2D
	Color    color.RGBA
	ShowArea bool
}

// PixelArea returns the enclosed area in squared pixels.
func (p *Polygon) PixelArea() float64 {
	return geometry.Area(p.Points)
}

// Centroid returns the label anchor for the polygon.
func (p *Polygon) Centroid() geometry.Point2D {
	return geometry.PolygonCentroid(p.Points)
}

// Segment is a two-point measured line.
type Segment struct {
	Points     []geometry.Point2D // exactly 2
	Color      color.RGBA
	ShowLength bool
}

// PixelLength returns the segment length in pixels.
func (s *Segment) PixelLength() float64 {
	if len(s.Points) != 2 {
		return 0
	}
	return s.Points[0].Distance(s.Points[1])
}

// Midpoint returns the label anchor for the segment.
func (s *Segment) Midpoint() geometry.Point2D {
	if len(s.Points) != 2 {
		return geometry.Point2D{}
	}
	return geometry.Point2D{
		X: (s.Points[0].X + s.Points[1].X) / 2,
		Y: (s.Points[0].Y + s.Points[1].Y) / 2,
	}
}

// Rectangle is a right-angled quadrilateral stored as four vertices A,B,C,D.
// The construction in pkg/geometry guarantees AB is perpendicular to BC.
type Rectangle struct {
	Points   []geometry.Point2D // exactly 4, in order A,B,C,D
	Color    color.RGBA
	ShowArea bool
}

// PixelArea returns the enclosed area in squared pixels.
func (r *Rectangle) PixelArea() float64 {
	return geometry.Area(r.Points)
}

// Centroid returns the label anchor for the rectangle.
func (r *Rectangle) Centroid() geometry.Point2D {
	return geometry.PolygonCentroid(r.Points)
}

// Text is a free-standing label anchored at a point.
type Text struct {
	Anchor     geometry.Point2D
	Content    string
	Color      color.RGBA
	FontSize   float64
	FontFamily string
}
