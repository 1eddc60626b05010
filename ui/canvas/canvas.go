package canvas

import (
	"image"
	"image/color"

	planimage "plan-measure/internal/image"
	"plan-measure/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25
)

var (
	selectionColor = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	labelColor     = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

// ImageCanvas provides the floor plan display with pan, zoom, and
// annotation overlays. Click and move positions are reported in image
// coordinates.
type ImageCanvas struct {
	widget.BaseWidget

	// Floor plan layer
	layer *planimage.Layer

	// Overlays (keyed by name, e.g. "shapes", "session")
	overlays map[string]*Overlay

	// Display state
	raster *fynecanvas.Raster
	zoom   float64

	// Container
	scroll  *zoomScroll
	content *hoverContent
	imgSize fyne.Size

	// Callbacks
	onZoomChange func(zoom float64)
	onLeftClick  func(x, y float64)
	onRightClick func(x, y float64)
	onMouseMove  func(x, y float64)
	onMouseOut   func()
}

// zoomScroll wraps a scroll container but intercepts the wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *ImageCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *ImageCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	// Use wheel for zoom, not scroll
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// hoverContent wraps the raster to handle mouse events, including hover
// positions for the live drawing preview.
type hoverContent struct {
	widget.BaseWidget
	canvas *ImageCanvas
	raster *fynecanvas.Raster
}

var _ desktop.Hoverable = (*hoverContent)(nil)

func newHoverContent(ic *ImageCanvas, raster *fynecanvas.Raster) *hoverContent {
	hc := &hoverContent{
		canvas: ic,
		raster: raster,
	}
	hc.ExtendBaseWidget(hc)
	return hc
}

func (hc *hoverContent) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(hc.raster)
}

func (hc *hoverContent) MinSize() fyne.Size {
	return hc.raster.MinSize()
}

// eventImagePos converts a pointer event position to image coordinates,
// reporting false for positions outside the widget bounds.
func (hc *hoverContent) eventImagePos(pos fyne.Position) (float64, float64, bool) {
	size := hc.Size()
	if pos.X < 0 || pos.Y < 0 || pos.X > size.Width || pos.Y > size.Height {
		return 0, 0, false
	}

	scrollOffset := hc.canvas.scroll.Offset()
	p := hc.canvas.fromCanvas(geometry.Point2D{
		X: float64(pos.X + scrollOffset.X),
		Y: float64(pos.Y + scrollOffset.Y),
	})
	return p.X, p.Y, true
}

// Tapped handles left-click events.
func (hc *hoverContent) Tapped(ev *fyne.PointEvent) {
	if hc.canvas.onLeftClick == nil {
		return
	}
	if x, y, ok := hc.eventImagePos(ev.Position); ok {
		hc.canvas.onLeftClick(x, y)
	}
}

// TappedSecondary handles right-click events.
func (hc *hoverContent) TappedSecondary(ev *fyne.PointEvent) {
	if hc.canvas.onRightClick == nil {
		return
	}
	if x, y, ok := hc.eventImagePos(ev.Position); ok {
		hc.canvas.onRightClick(x, y)
	}
}

func (hc *hoverContent) MouseIn(ev *desktop.MouseEvent) {
	hc.MouseMoved(ev)
}

func (hc *hoverContent) MouseMoved(ev *desktop.MouseEvent) {
	if hc.canvas.onMouseMove == nil {
		return
	}
	if x, y, ok := hc.eventImagePos(ev.Position); ok {
		hc.canvas.onMouseMove(x, y)
	}
}

func (hc *hoverContent) MouseOut() {
	if hc.canvas.onMouseOut != nil {
		hc.canvas.onMouseOut()
	}
}

func (hc *hoverContent) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		hc.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		hc.canvas.ZoomOut()
	}
}

// NewImageCanvas creates a new floor plan canvas.
func NewImageCanvas() *ImageCanvas {
	ic := &ImageCanvas{
		zoom:     1.0,
		imgSize:  fyne.NewSize(400, 300),
		overlays: make(map[string]*Overlay),
	}

	ic.raster = fynecanvas.NewRaster(ic.draw)
	ic.raster.ScaleMode = fynecanvas.ImageScalePixels
	ic.raster.SetMinSize(ic.imgSize)

	ic.content = newHoverContent(ic, ic.raster)
	ic.scroll = newZoomScroll(ic.content, ic)

	ic.ExtendBaseWidget(ic)
	return ic
}

// Container returns the canvas container for embedding in layouts.
func (ic *ImageCanvas) Container() fyne.CanvasObject {
	return ic.scroll
}

// SetLayer sets the floor plan layer to display.
func (ic *ImageCanvas) SetLayer(layer *planimage.Layer) {
	ic.layer = layer
	ic.updateContentSize()
}

// SetOverlay sets an overlay with the given name.
func (ic *ImageCanvas) SetOverlay(name string, overlay *Overlay) {
	ic.overlays[name] = overlay
	ic.Refresh()
}

// ClearOverlay removes an overlay by name.
func (ic *ImageCanvas) ClearOverlay(name string) {
	delete(ic.overlays, name)
	ic.Refresh()
}

// SetZoom sets the zoom level.
func (ic *ImageCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	ic.zoom = zoom
	ic.updateContentSize()

	if ic.onZoomChange != nil {
		ic.onZoomChange(zoom)
	}
}

// GetZoom returns the current zoom level.
func (ic *ImageCanvas) GetZoom() float64 {
	return ic.zoom
}

// ZoomIn increases the zoom level.
func (ic *ImageCanvas) ZoomIn() {
	ic.SetZoom(ic.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (ic *ImageCanvas) ZoomOut() {
	ic.SetZoom(ic.zoom / zoomStep)
}

// OnZoomChange sets a callback for zoom changes.
func (ic *ImageCanvas) OnZoomChange(callback func(zoom float64)) {
	ic.onZoomChange = callback
}

// OnLeftClick sets a callback for left-click events in image coordinates.
func (ic *ImageCanvas) OnLeftClick(callback func(x, y float64)) {
	ic.onLeftClick = callback
}

// OnRightClick sets a callback for right-click events in image coordinates.
func (ic *ImageCanvas) OnRightClick(callback func(x, y float64)) {
	ic.onRightClick = callback
}

// OnMouseMove sets a callback for hover positions in image coordinates.
func (ic *ImageCanvas) OnMouseMove(callback func(x, y float64)) {
	ic.onMouseMove = callback
}

// OnMouseOut sets a callback for the pointer leaving the canvas.
func (ic *ImageCanvas) OnMouseOut(callback func()) {
	ic.onMouseOut = callback
}

// Refresh refreshes the canvas display.
func (ic *ImageCanvas) Refresh() {
	ic.raster.Refresh()
}

// transform returns the image-to-canvas transform for the current zoom.
func (ic *ImageCanvas) transform() geometry.AffineTransform {
	return geometry.Scaling(ic.zoom)
}

// toCanvas converts image coordinates to canvas coordinates.
func (ic *ImageCanvas) toCanvas(p geometry.Point2D) geometry.Point2D {
	return ic.transform().Apply(p)
}

// fromCanvas converts canvas coordinates to image coordinates.
func (ic *ImageCanvas) fromCanvas(p geometry.Point2D) geometry.Point2D {
	inv, ok := ic.transform().Inverse()
	if !ok {
		return p
	}
	return inv.Apply(p)
}

// layerBounds returns the pixel bounds of the floor plan image.
func (ic *ImageCanvas) layerBounds() image.Rectangle {
	if ic.layer == nil || ic.layer.Image == nil {
		return image.Rectangle{}
	}
	b := ic.layer.Image.Bounds()
	return image.Rect(0, 0, b.Dx(), b.Dy())
}

// updateContentSize updates the content size based on image and zoom.
func (ic *ImageCanvas) updateContentSize() {
	bounds := ic.layerBounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		ic.imgSize = fyne.NewSize(400, 300)
	} else {
		width := float32(float64(bounds.Dx()) * ic.zoom)
		height := float32(float64(bounds.Dy()) * ic.zoom)
		ic.imgSize = fyne.NewSize(width, height)
	}

	ic.raster.SetMinSize(ic.imgSize)
	ic.raster.Resize(ic.imgSize)
	if ic.content != nil {
		ic.content.Resize(ic.imgSize)
		ic.content.Refresh()
	}
	ic.raster.Refresh()
	if ic.scroll != nil {
		ic.scroll.Refresh()
	}
}

// draw is the raster drawing function.
func (ic *ImageCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))

	// White background
	for i := 0; i < len(output.Pix); i += 4 {
		output.Pix[i] = 255
		output.Pix[i+1] = 255
		output.Pix[i+2] = 255
		output.Pix[i+3] = 255
	}

	if ic.layer != nil && ic.layer.Image != nil && ic.layer.Visible {
		ic.compositeLayer(output, w, h)
	}

	for _, overlay := range ic.overlays {
		if overlay != nil {
			ic.drawOverlay(output, overlay)
		}
	}

	return output
}

// compositeLayer draws the floor plan onto the output with opacity.
func (ic *ImageCanvas) compositeLayer(output *image.RGBA, w, h int) {
	src := ic.layer.Image
	srcBounds := src.Bounds()
	opacity := ic.layer.Opacity

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			srcX := int(float64(x)/ic.zoom) + srcBounds.Min.X
			srcY := int(float64(y)/ic.zoom) + srcBounds.Min.Y

			if srcX < srcBounds.Min.X || srcX >= srcBounds.Max.X ||
				srcY < srcBounds.Min.Y || srcY >= srcBounds.Max.Y {
				continue
			}

			srcColor := src.At(srcX, srcY)
			sr, sg, sb, sa := srcColor.RGBA()

			effectiveAlpha := float64(sa) / 0xffff * opacity
			if effectiveAlpha >= 0.999 {
				output.Set(x, y, srcColor)
			} else if effectiveAlpha > 0.001 {
				dr, dg, db, _ := output.At(x, y).RGBA()
				invAlpha := 1 - effectiveAlpha

				r := uint8(float64(sr>>8)*effectiveAlpha + float64(dr>>8)*invAlpha)
				g := uint8(float64(sg>>8)*effectiveAlpha + float64(dg>>8)*invAlpha)
				b := uint8(float64(sb>>8)*effectiveAlpha + float64(db>>8)*invAlpha)

				output.Set(x, y, color.RGBA{r, g, b, 255})
			}
		}
	}
}

// CreateRenderer implements fyne.Widget.
func (ic *ImageCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(ic.scroll)
}
