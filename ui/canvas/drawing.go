package canvas

import (
	"image"
	"image/color"

	"plan-measure/pkg/geometry"
)

// digitPatterns contains 3x5 pixel patterns for digits 0-9.
// Each digit is represented as 5 rows of 3 bits.
var digitPatterns = [10][5]uint8{
	{0b111, 0b101, 0b101, 0b101, 0b111}, // 0
	{0b010, 0b110, 0b010, 0b010, 0b111}, // 1
	{0b111, 0b001, 0b111, 0b100, 0b111}, // 2
	{0b111, 0b001, 0b111, 0b001, 0b111}, // 3
	{0b101, 0b101, 0b111, 0b001, 0b001}, // 4
	{0b111, 0b100, 0b111, 0b001, 0b111}, // 5
	{0b111, 0b100, 0b111, 0b101, 0b111}, // 6
	{0b111, 0b001, 0b001, 0b001, 0b001}, // 7
	{0b111, 0b101, 0b111, 0b101, 0b111}, // 8
	{0b111, 0b101, 0b111, 0b001, 0b111}, // 9
}

// letterPatterns contains 3x5 pixel patterns for letters A-Z and common symbols.
var letterPatterns = map[rune][5]uint8{
	'A': {0b010, 0b101, 0b111, 0b101, 0b101},
	'B': {0b110, 0b101, 0b110, 0b101, 0b110},
	'C': {0b011, 0b100, 0b100, 0b100, 0b011},
	'D': {0b110, 0b101, 0b101, 0b101, 0b110},
	'E': {0b111, 0b100, 0b110, 0b100, 0b111},
	'F': {0b111, 0b100, 0b110, 0b100, 0b100},
	'G': {0b011, 0b100, 0b101, 0b101, 0b011},
	'H': {0b101, 0b101, 0b111, 0b101, 0b101},
	'I': {0b111, 0b010, 0b010, 0b010, 0b111},
	'J': {0b001, 0b001, 0b001, 0b101, 0b010},
	'K': {0b101, 0b101, 0b110, 0b101, 0b101},
	'L': {0b100, 0b100, 0b100, 0b100, 0b111},
	'M': {0b101, 0b111, 0b101, 0b101, 0b101},
	'N': {0b101, 0b111, 0b111, 0b101, 0b101},
	'O': {0b010, 0b101, 0b101, 0b101, 0b010},
	'P': {0b110, 0b101, 0b110, 0b100, 0b100},
	'Q': {0b010, 0b101, 0b101, 0b111, 0b011},
	'R': {0b110, 0b101, 0b110, 0b101, 0b101},
	'S': {0b011, 0b100, 0b010, 0b001, 0b110},
	'T': {0b111, 0b010, 0b010, 0b010, 0b010},
	'U': {0b101, 0b101, 0b101, 0b101, 0b111},
	'V': {0b101, 0b101, 0b101, 0b101, 0b010},
	'W': {0b101, 0b101, 0b101, 0b111, 0b101},
	'X': {0b101, 0b101, 0b010, 0b101, 0b101},
	'Y': {0b101, 0b101, 0b010, 0b010, 0b010},
	'Z': {0b111, 0b001, 0b010, 0b100, 0b111},
	'+': {0b000, 0b010, 0b111, 0b010, 0b000},
	'-': {0b000, 0b000, 0b111, 0b000, 0b000},
	'.': {0b000, 0b000, 0b000, 0b000, 0b010},
	',': {0b000, 0b000, 0b000, 0b010, 0b100},
	':': {0b000, 0b010, 0b000, 0b010, 0b000},
	'/': {0b001, 0b001, 0b010, 0b100, 0b100},
	' ': {0b000, 0b000, 0b000, 0b000, 0b000},
}

// getCharPattern returns the 3x5 pixel pattern for a character.
// Returns a zero pattern for unsupported characters.
func getCharPattern(ch rune) [5]uint8 {
	if ch >= '0' && ch <= '9' {
		return digitPatterns[ch-'0']
	}
	// Superscript two appears in area labels
	if ch == '²' {
		return digitPatterns[2]
	}
	// Convert lowercase to uppercase
	if ch >= 'a' && ch <= 'z' {
		ch = ch - 'a' + 'A'
	}
	if pattern, ok := letterPatterns[ch]; ok {
		return pattern
	}
	return [5]uint8{} // Empty pattern for unsupported characters
}

// fontScale maps a shape font size to the bitmap font cell scale.
func fontScale(fontSize float64) int {
	scale := int(fontSize / 5)
	if scale < 1 {
		scale = 1
	}
	if scale > 8 {
		scale = 8
	}
	return scale
}

// TextExtent returns the rendered pixel size of a text string at the given
// font size. Hit-testing uses the same metrics as rendering.
func TextExtent(content string, fontSize float64) (width, height float64) {
	scale := fontScale(fontSize)
	runes := []rune(content)
	if len(runes) == 0 {
		return 0, 0
	}
	charWidth := 3 * scale
	spacing := scale
	return float64(len(runes)*charWidth + (len(runes)-1)*spacing), float64(5 * scale)
}

// drawOverlay draws an overlay on the output image.
func (ic *ImageCanvas) drawOverlay(output *image.RGBA, overlay *Overlay) {
	for i := range overlay.Polygons {
		ic.drawPolygon(output, &overlay.Polygons[i])
	}
	for i := range overlay.Lines {
		ic.drawOverlayLine(output, &overlay.Lines[i])
	}
	for i := range overlay.Markers {
		ic.drawMarker(output, &overlay.Markers[i])
	}
	for i := range overlay.Texts {
		ic.drawText(output, &overlay.Texts[i])
	}
}

// drawPolygon draws a closed region with a translucent fill and outline.
func (ic *ImageCanvas) drawPolygon(output *image.RGBA, poly *OverlayPolygon) {
	if len(poly.Points) < 3 {
		return
	}

	scaled := make([]geometry.Point2D, len(poly.Points))
	for i, p := range poly.Points {
		scaled[i] = ic.toCanvas(p)
	}

	if poly.Filled {
		ic.fillPolygon(output, scaled, poly.Color)
	}

	thickness := 2
	col := poly.Color
	if poly.Selected {
		thickness = 3
		col = selectionColor
	}
	n := len(scaled)
	for i := 0; i < n; i++ {
		p1 := scaled[i]
		p2 := scaled[(i+1)%n]
		ic.drawLine(output, int(p1.X), int(p1.Y), int(p2.X), int(p2.Y), col, thickness, false)
	}

	if poly.Label != "" {
		at := ic.toCanvas(poly.LabelAnchor)
		ic.drawLabel(output, poly.Label, int(at.X), int(at.Y), labelColor)
	}
}

// fillPolygon fills a polygon with a translucent wash using a scanline pass.
func (ic *ImageCanvas) fillPolygon(output *image.RGBA, points []geometry.Point2D, col color.RGBA) {
	bounds := output.Bounds()
	box := geometry.BoundingBox(points)

	const fillAlpha = 0.25

	for y := int(box.Y); y <= int(box.Y+box.Height); y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}

		// Find all x intersections with polygon edges at this y
		var xIntersections []float64
		n := len(points)
		for i := 0; i < n; i++ {
			p1 := points[i]
			p2 := points[(i+1)%n]

			if (p1.Y <= float64(y) && p2.Y > float64(y)) ||
				(p2.Y <= float64(y) && p1.Y > float64(y)) {
				t := (float64(y) - p1.Y) / (p2.Y - p1.Y)
				xIntersections = append(xIntersections, p1.X+t*(p2.X-p1.X))
			}
		}

		// Sort intersections
		for i := 0; i < len(xIntersections)-1; i++ {
			for j := i + 1; j < len(xIntersections); j++ {
				if xIntersections[j] < xIntersections[i] {
					xIntersections[i], xIntersections[j] = xIntersections[j], xIntersections[i]
				}
			}
		}

		// Blend between pairs of intersections
		for i := 0; i+1 < len(xIntersections); i += 2 {
			x1 := int(xIntersections[i])
			x2 := int(xIntersections[i+1])
			for x := x1; x <= x2; x++ {
				if x < bounds.Min.X || x >= bounds.Max.X {
					continue
				}
				existing := output.RGBAAt(x, y)
				r := uint8(float64(col.R)*fillAlpha + float64(existing.R)*(1-fillAlpha))
				g := uint8(float64(col.G)*fillAlpha + float64(existing.G)*(1-fillAlpha))
				b := uint8(float64(col.B)*fillAlpha + float64(existing.B)*(1-fillAlpha))
				output.Set(x, y, color.RGBA{r, g, b, 255})
			}
		}
	}
}

// drawOverlayLine draws a line with optional dashing, selection highlight,
// and a measurement label.
func (ic *ImageCanvas) drawOverlayLine(output *image.RGBA, line *OverlayLine) {
	p1 := ic.toCanvas(line.From)
	p2 := ic.toCanvas(line.To)

	thickness := line.Thickness
	if thickness <= 0 {
		thickness = 2
	}
	col := line.Color
	if line.Selected {
		thickness++
		col = selectionColor
	}
	ic.drawLine(output, int(p1.X), int(p1.Y), int(p2.X), int(p2.Y), col, thickness, line.Dashed)

	if line.Label != "" {
		at := ic.toCanvas(line.LabelAnchor)
		ic.drawLabel(output, line.Label, int(at.X), int(at.Y), labelColor)
	}
}

// drawMarker draws a small cross at a vertex position.
func (ic *ImageCanvas) drawMarker(output *image.RGBA, marker *OverlayMarker) {
	at := ic.toCanvas(marker.At)
	cx, cy := int(at.X), int(at.Y)
	bounds := output.Bounds()

	const arm = 4
	for d := -arm; d <= arm; d++ {
		if cx+d >= bounds.Min.X && cx+d < bounds.Max.X && cy >= bounds.Min.Y && cy < bounds.Max.Y {
			output.Set(cx+d, cy, marker.Color)
		}
		if cx >= bounds.Min.X && cx < bounds.Max.X && cy+d >= bounds.Min.Y && cy+d < bounds.Max.Y {
			output.Set(cx, cy+d, marker.Color)
		}
	}
}

// drawText draws a free-standing text label anchored at its top-left corner.
func (ic *ImageCanvas) drawText(output *image.RGBA, text *OverlayText) {
	at := ic.toCanvas(text.At)
	scale := fontScale(text.FontSize * ic.zoom)
	col := text.Color
	if text.Selected {
		col = selectionColor
	}
	ic.drawString(output, text.Content, int(at.X), int(at.Y), col, scale)
}

// drawLine draws a line between two points using Bresenham's algorithm.
func (ic *ImageCanvas) drawLine(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int, dashed bool) {
	bounds := output.Bounds()

	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	step := 0

	for {
		if !dashed || step%8 < 5 {
			// Draw thick point
			for t := -thickness / 2; t <= thickness/2; t++ {
				for s := -thickness / 2; s <= thickness/2; s++ {
					px, py := x1+s, y1+t
					if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
						output.Set(px, py, col)
					}
				}
			}
		}
		step++

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// drawLabel draws a measurement label centered at the given canvas position.
func (ic *ImageCanvas) drawLabel(output *image.RGBA, label string, centerX, centerY int, col color.RGBA) {
	scale := int(ic.zoom * 2)
	if scale < 1 {
		scale = 1
	}
	if scale > 6 {
		scale = 6
	}

	runes := []rune(label)
	charWidth := 3 * scale
	charHeight := 5 * scale
	spacing := scale
	labelWidth := len(runes)*charWidth + (len(runes)-1)*spacing

	ic.drawString(output, label, centerX-labelWidth/2, centerY-charHeight/2, col, scale)
}

// drawString draws a string with its top-left corner at (x, y).
func (ic *ImageCanvas) drawString(output *image.RGBA, s string, x, y int, col color.RGBA, scale int) {
	bounds := output.Bounds()
	charWidth := 3 * scale
	spacing := scale

	for i, ch := range []rune(s) {
		pattern := getCharPattern(ch)
		charX := x + i*(charWidth+spacing)

		for row := 0; row < 5; row++ {
			for c := 0; c < 3; c++ {
				if (pattern[row] & (1 << (2 - c))) == 0 {
					continue
				}
				for dy := 0; dy < scale; dy++ {
					for dxp := 0; dxp < scale; dxp++ {
						px := charX + c*scale + dxp
						py := y + row*scale + dy
						if px >= bounds.Min.X && px < bounds.Max.X &&
							py >= bounds.Min.Y && py < bounds.Max.Y {
							output.Set(px, py, col)
						}
					}
				}
			}
		}
	}
}
