// Package image provides floor plan image loading and the data-URI codec
// used by project persistence.
package image

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Layer represents the floor plan image in the project.
type Layer struct {
	Path    string      // Original file path, empty when loaded from a data URI
	Image   image.Image // Loaded image data
	Visible bool        // Layer visibility
	Opacity float64     // Layer opacity (0.0 - 1.0)
}

// NewLayer creates an empty visible layer with full opacity.
func NewLayer() *Layer {
	return &Layer{
		Visible: true,
		Opacity: 1.0,
	}
}

// Load reads an image file (PNG, JPEG, TIFF, BMP, GIF) into a layer.
// EXIF orientation is applied during decode.
func Load(path string) (*Layer, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", path, err)
	}

	layer := NewLayer()
	layer.Path = path
	layer.Image = img
	return layer, nil
}

// Size returns the pixel dimensions of the layer image.
func (l *Layer) Size() (width, height int) {
	if l.Image == nil {
		return 0, 0
	}
	b := l.Image.Bounds()
	return b.Dx(), b.Dy()
}

// Thumbnail returns a copy of the image scaled to fit within the given
// bounds, preserving aspect ratio.
func (l *Layer) Thumbnail(maxWidth, maxHeight int) image.Image {
	if l.Image == nil {
		return nil
	}
	return imaging.Fit(l.Image, maxWidth, maxHeight, imaging.Lanczos)
}
