// Package canvas provides the floor plan canvas with pan, zoom, and
// annotation drawing.
package canvas

import (
	"image/color"

	"plan-measure/pkg/geometry"
)

// Overlay represents a drawable annotation set on the canvas.
type Overlay struct {
	Polygons []OverlayPolygon
	Lines    []OverlayLine
	Markers  []OverlayMarker
	Texts    []OverlayText
}

// OverlayPolygon represents a closed region to draw.
type OverlayPolygon struct {
	Points      []geometry.Point2D // vertices in image coordinates
	Color       color.RGBA
	Label       string           // optional label drawn at LabelAnchor
	LabelAnchor geometry.Point2D // image coordinates
	Filled      bool             // translucent fill inside the outline
	Selected    bool             // highlighted outline
}

// OverlayLine represents a line segment to draw.
type OverlayLine struct {
	From, To    geometry.Point2D
	Color       color.RGBA
	Thickness   int
	Dashed      bool // preview and calibration lines are dashed
	Label       string
	LabelAnchor geometry.Point2D
	Selected    bool
}

// OverlayMarker represents a small cross marking a vertex.
type OverlayMarker struct {
	At    geometry.Point2D
	Color color.RGBA
}

// OverlayText represents a free-standing text label.
type OverlayText struct {
	At       geometry.Point2D
	Content  string
	Color    color.RGBA
	FontSize float64
	Selected bool
}
