// Package session implements the interactive drawing state machine: it
// accumulates in-progress points per drawing mode, applies angle snapping,
// and finalizes shapes into the registry.
package session

import (
	"errors"
	"image/color"

	"plan-measure/internal/measure"
	"plan-measure/internal/shape"
	"plan-measure/pkg/geometry"
)

var (
	// ErrMissingScale is returned when a shape commit is attempted before
	// calibration.
	ErrMissingScale = errors.New("scale not calibrated")

	// ErrInsufficientPoints is returned when a polygon is finalized with
	// fewer than three points.
	ErrInsufficientPoints = errors.New("polygon needs at least 3 points")

	// ErrDegenerateRectangleBase is returned when a rectangle's base has
	// zero length. The in-progress attempt is discarded.
	ErrDegenerateRectangleBase = errors.New("rectangle base has zero length")
)

// Mode selects which shape kind pointer input builds.
type Mode int

const (
	ModePolygon Mode = iota
	ModeSegment
	ModeRectangle
	ModeText
)

func (m Mode) String() string {
	switch m {
	case ModePolygon:
		return "polygon"
	case ModeSegment:
		return "segment"
	case ModeRectangle:
		return "rectangle"
	case ModeText:
		return "text"
	default:
		return "unknown"
	}
}

// EventKind describes what a pointer event produced.
type EventKind int

const (
	EventNone             EventKind = iota // point accumulated
	EventIgnored                           // input rejected (e.g. third calibration click)
	EventCalibrationPoint                  // calibration reference point placed
	EventCalibrationReady                  // second reference point placed; distance entry can proceed
	EventShapeCommitted                    // a shape was finalized into the registry
	EventTextPrompt                        // caller should request label content, then CommitText
)

// Event is the synchronous result of a pointer event.
type Event struct {
	Kind  EventKind
	Point geometry.Point2D // the committed (post-snap) point
	Ref   *shape.Ref       // set for EventShapeCommitted
}

// Session is the transient interactive drawing state. It is owned by the
// input layer, mutated only by the current input event, and never serialized.
type Session struct {
	cal *measure.Calibration
	reg *shape.Registry

	mode    Mode
	points  []geometry.Point2D
	preview *geometry.Point2D

	colors map[Mode]color.RGBA
}

// New creates a session bound to a calibration and a shape registry.
func New(cal *measure.Calibration, reg *shape.Registry) *Session {
	return &Session{
		cal: cal,
		reg: reg,
		colors: map[Mode]color.RGBA{
			ModePolygon:   shape.DefaultPolygonColor,
			ModeSegment:   shape.DefaultSegmentColor,
			ModeRectangle: shape.DefaultRectangleColor,
			ModeText:      shape.DefaultTextColor,
		},
	}
}

// Mode returns the active drawing mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// SetMode switches the drawing mode. In-progress points and the preview are
// discarded unconditionally; prior-mode work is not persisted.
func (s *Session) SetMode(m Mode) {
	s.mode = m
	s.points = nil
	s.preview = nil
}

// SetColor overrides the draw color for a mode.
func (s *Session) SetColor(m Mode, c color.RGBA) {
	s.colors[m] = c
}

// Color returns the draw color for a mode.
func (s *Session) Color(m Mode) color.RGBA {
	return s.colors[m]
}

// InProgress returns the accumulated in-progress points.
func (s *Session) InProgress() []geometry.Point2D {
	return s.points
}

// Preview returns the current preview point, or nil.
func (s *Session) Preview() *geometry.Point2D {
	return s.preview
}

// PointerDown feeds a committed pointer position into the state machine.
// While uncalibrated every click goes to the calibration reference segment;
// afterwards snapping (when requested) is applied relative to the previous
// in-progress point before any geometry sees the position.
func (s *Session) PointerDown(p geometry.Point2D, snap bool) (Event, error) {
	if !s.cal.Calibrated {
		if !s.cal.AddPoint(p) {
			return Event{Kind: EventIgnored, Point: p}, nil
		}
		kind := EventCalibrationPoint
		if len(s.cal.Points) == 2 {
			kind = EventCalibrationReady
		}
		return Event{Kind: kind, Point: p}, nil
	}

	p = s.snapped(p, snap)

	switch s.mode {
	case ModeText:
		// Text has no point accumulation: the caller prompts for content
		// and completes the shape through CommitText.
		return Event{Kind: EventTextPrompt, Point: p}, nil

	case ModeSegment:
		s.points = append(s.points, p)
		if len(s.points) < 2 {
			return Event{Kind: EventNone, Point: p}, nil
		}
		seg := &shape.Segment{
			Points:     []geometry.Point2D{s.points[0], s.points[1]},
			Color:      s.colors[ModeSegment],
			ShowLength: true,
		}
		ref := s.reg.AddSegment(seg)
		s.clearProgress()
		return Event{Kind: EventShapeCommitted, Point: p, Ref: ref}, nil

	case ModeRectangle:
		s.points = append(s.points, p)
		if len(s.points) < 3 {
			return Event{Kind: EventNone, Point: p}, nil
		}
		quad, ok := geometry.RectangleFromBaseAndHeight(s.points[0], s.points[1], s.points[2])
		s.clearProgress()
		if !ok {
			return Event{Kind: EventIgnored, Point: p}, ErrDegenerateRectangleBase
		}
		rect := &shape.Rectangle{
			Points:   quad[:],
			Color:    s.colors[ModeRectangle],
			ShowArea: true,
		}
		ref := s.reg.AddRectangle(rect)
		return Event{Kind: EventShapeCommitted, Point: p, Ref: ref}, nil

	default: // ModePolygon
		s.points = append(s.points, p)
		return Event{Kind: EventNone, Point: p}, nil
	}
}

// FinalizePolygon commits the accumulated points as a polygon. It fails
// with ErrInsufficientPoints below three points, leaving the in-progress
// state untouched so the user can keep adding vertices.
func (s *Session) FinalizePolygon() (*shape.Ref, error) {
	if !s.cal.Calibrated {
		return nil, ErrMissingScale
	}
	if len(s.points) < 3 {
		return nil, ErrInsufficientPoints
	}

	poly := &shape.Polygon{
		Points:   append([]geometry.Point2D(nil), s.points...),
		Color:    s.colors[ModePolygon],
		ShowArea: true,
	}
	ref := s.reg.AddPolygon(poly)
	s.clearProgress()
	return ref, nil
}

// CommitText completes the text flow started by EventTextPrompt. Empty
// content cancels the shape without error.
func (s *Session) CommitText(anchor geometry.Point2D, content string) (*shape.Ref, error) {
	if !s.cal.Calibrated {
		return nil, ErrMissingScale
	}
	if content == "" {
		return nil, nil
	}

	txt := &shape.Text{
		Anchor:     anchor,
		Content:    content,
		Color:      s.colors[ModeText],
		FontSize:   shape.DefaultFontSize,
		FontFamily: shape.DefaultFontFamily,
	}
	return s.reg.AddText(txt), nil
}

// UndoPoint removes the most recent in-progress point or, before
// calibration, the most recent calibration reference point. It reports
// whether anything was removed.
func (s *Session) UndoPoint() bool {
	if !s.cal.Calibrated {
		return s.cal.RemoveLastPoint()
	}
	if len(s.points) == 0 {
		return false
	}
	s.points = s.points[:len(s.points)-1]
	return true
}

// SetPreview records the live pointer position, snapped like a committed
// point would be.
func (s *Session) SetPreview(p geometry.Point2D, snap bool) {
	p = s.snapped(p, snap)
	s.preview = &p
}

// ClearPreview discards the preview point.
func (s *Session) ClearPreview() {
	s.preview = nil
}

// PreviewLabelAnchor returns where a live length label should be placed:
// the midpoint of the stepped L-path between the last committed point and
// the preview. ok is false when there is no active preview line.
func (s *Session) PreviewLabelAnchor() (geometry.Point2D, bool) {
	if s.preview == nil || len(s.points) == 0 {
		return geometry.Point2D{}, false
	}
	return geometry.SteppedPathMidpoint(s.points[len(s.points)-1], *s.preview), true
}

// PreviewPixelLength returns the pixel distance from the last committed
// point to the preview point, or 0 when no preview line exists.
func (s *Session) PreviewPixelLength() float64 {
	if s.preview == nil || len(s.points) == 0 {
		return 0
	}
	return s.points[len(s.points)-1].Distance(*s.preview)
}

// Reset discards all in-progress state.
func (s *Session) Reset() {
	s.points = nil
	s.preview = nil
}

func (s *Session) clearProgress() {
	s.points = nil
	s.preview = nil
}

func (s *Session) snapped(p geometry.Point2D, snap bool) geometry.Point2D {
	if !snap || len(s.points) == 0 {
		return p
	}
	return geometry.SnapAngle(s.points[len(s.points)-1], p)
}
