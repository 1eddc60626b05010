// Package measure provides pixel-to-real-world scale calibration and
// measurement formatting.
package measure

import (
	"errors"
	"fmt"

	"plan-measure/pkg/geometry"
)

// ErrInvalidCalibration is returned when calibration is attempted with
// fewer than two reference points, coincident points, or a non-positive
// known distance.
var ErrInvalidCalibration = errors.New("calibration requires two distinct reference points and a positive distance")

// maxReferencePoints is the length of a calibration reference segment.
const maxReferencePoints = 2

// Calibration converts pixel distances into real-world meters. It starts
// uncalibrated with a scale of 1; SetScale establishes the meters-per-pixel
// factor from a two-point reference segment and a known distance.
type Calibration struct {
	Scale      float64 // meters per pixel
	Calibrated bool
	Points     []geometry.Point2D // reference segment, at most 2 points
}

// NewCalibration returns an uncalibrated Calibration with unit scale.
func NewCalibration() *Calibration {
	return &Calibration{Scale: 1}
}

// AddPoint appends a reference point. Points are only accepted while
// uncalibrated and fewer than two have been placed.
func (c *Calibration) AddPoint(p geometry.Point2D) bool {
	if c.Calibrated || len(c.Points) >= maxReferencePoints {
		return false
	}
	c.Points = append(c.Points, p)
	return true
}

// RemoveLastPoint removes the most recent reference point, if any.
func (c *Calibration) RemoveLastPoint() bool {
	if len(c.Points) == 0 {
		return false
	}
	c.Points = c.Points[:len(c.Points)-1]
	return true
}

// SetScale computes the meters-per-pixel scale from the reference segment
// and the user-supplied real-world distance, and marks the calibration
// complete. The reference points are consumed on success.
func (c *Calibration) SetScale(knownMeters float64) error {
	if len(c.Points) < maxReferencePoints {
		return fmt.Errorf("%w: %d of 2 points placed", ErrInvalidCalibration, len(c.Points))
	}
	if knownMeters <= 0 {
		return fmt.Errorf("%w: distance %.3f m", ErrInvalidCalibration, knownMeters)
	}

	pixelDist := c.Points[0].Distance(c.Points[1])
	if pixelDist == 0 {
		return fmt.Errorf("%w: reference points coincide", ErrInvalidCalibration)
	}

	c.Scale = knownMeters / pixelDist
	c.Calibrated = true
	c.Points = nil
	return nil
}

// Reset returns the calibration to its initial uncalibrated state.
func (c *Calibration) Reset() {
	c.Scale = 1
	c.Calibrated = false
	c.Points = nil
}

// Length converts a pixel distance to meters.
func (c *Calibration) Length(pixels float64) float64 {
	return pixels * c.Scale
}

// Area converts a squared-pixel area to square meters.
func (c *Calibration) Area(pixelsSq float64) float64 {
	return pixelsSq * c.Scale * c.Scale
}
