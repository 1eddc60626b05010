// Package colorutil provides shared color utilities for the plan measurement application.
package colorutil

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Common overlay colors used throughout the application.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Green   = color.RGBA{R: 0, G: 128, B: 0, A: 255}
	Blue    = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Yellow  = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
)

// ToHex formats a color as a "#rrggbb" string for persistence.
func ToHex(c color.RGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// FromHex parses a "#rrggbb" (or "#rgb") string. Malformed input returns
// the fallback, so loaders can stay permissive.
func FromHex(s string, fallback color.RGBA) color.RGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		return fallback
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
