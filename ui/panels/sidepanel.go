// Package panels provides UI panels for the application.
package panels

import (
	"plan-measure/internal/app"
	"plan-measure/ui/canvas"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// SidePanel provides the main side panel with tabbed sections.
type SidePanel struct {
	state     *app.State
	canvas    *canvas.ImageCanvas
	container *container.AppTabs

	// Tab content
	toolsPanel   *ToolsPanel
	shapesPanel  *ShapesPanel
	summaryPanel *SummaryPanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State, canvas *canvas.ImageCanvas) *SidePanel {
	sp := &SidePanel{
		state:  state,
		canvas: canvas,
	}

	// Create individual panels
	sp.toolsPanel = NewToolsPanel(state)
	sp.shapesPanel = NewShapesPanel(state)
	sp.summaryPanel = NewSummaryPanel(state)

	// Create tabbed container
	sp.container = container.NewAppTabs(
		container.NewTabItem("Draw", sp.toolsPanel.Container()),
		container.NewTabItem("Shapes", sp.shapesPanel.Container()),
		container.NewTabItem("Summary", sp.summaryPanel.Container()),
	)

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// SetWindow sets the parent window for dialogs.
func (sp *SidePanel) SetWindow(w fyne.Window) {
	sp.shapesPanel.SetWindow(w)
}

// SnapEnabled reports whether angle snapping is active.
func (sp *SidePanel) SnapEnabled() bool {
	return sp.toolsPanel.SnapEnabled()
}

// OnFinishPolygon sets the callback for the Finish Polygon button.
func (sp *SidePanel) OnFinishPolygon(callback func()) {
	sp.toolsPanel.OnFinishPolygon(callback)
}

// OnUndoPoint sets the callback for the Undo Point button.
func (sp *SidePanel) OnUndoPoint(callback func()) {
	sp.toolsPanel.OnUndoPoint(callback)
}

// OnResetCalibration sets the callback for the Recalibrate button.
func (sp *SidePanel) OnResetCalibration(callback func()) {
	sp.toolsPanel.OnResetCalibration(callback)
}
