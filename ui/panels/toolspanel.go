package panels

import (
	"fmt"

	"plan-measure/internal/app"
	"plan-measure/internal/session"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// modeNames maps radio labels to drawing modes, in display order.
var modeNames = []string{"Polygon", "Segment", "Rectangle", "Text"}

func modeForName(name string) session.Mode {
	switch name {
	case "Segment":
		return session.ModeSegment
	case "Rectangle":
		return session.ModeRectangle
	case "Text":
		return session.ModeText
	default:
		return session.ModePolygon
	}
}

// ToolsPanel selects the drawing mode and shows calibration status.
type ToolsPanel struct {
	state     *app.State
	container fyne.CanvasObject

	modeSelect  *widget.RadioGroup
	snapCheck   *widget.Check
	calLabel    *widget.Label
	scaleLabel  *widget.Label
	hintLabel   *widget.Label
	finishBtn   *widget.Button
	undoBtn     *widget.Button
	recalBtn    *widget.Button
}

// NewToolsPanel creates a new tools panel.
func NewToolsPanel(state *app.State) *ToolsPanel {
	tp := &ToolsPanel{
		state: state,
	}

	tp.calLabel = widget.NewLabel("")
	tp.scaleLabel = widget.NewLabel("")
	tp.hintLabel = widget.NewLabel("")
	tp.hintLabel.Wrapping = fyne.TextWrapWord

	tp.modeSelect = widget.NewRadioGroup(modeNames, func(selected string) {
		state.Session.SetMode(modeForName(selected))
		tp.updateHint()
	})
	tp.modeSelect.SetSelected("Polygon")

	tp.snapCheck = widget.NewCheck("Snap to 45°", nil)

	tp.finishBtn = widget.NewButton("Finish Polygon", nil)
	tp.undoBtn = widget.NewButton("Undo Point", nil)
	tp.recalBtn = widget.NewButton("Recalibrate", nil)

	tp.container = container.NewVBox(
		widget.NewCard("Drawing Mode", "", container.NewVBox(
			tp.modeSelect,
			tp.snapCheck,
			container.NewHBox(tp.finishBtn, tp.undoBtn),
		)),
		widget.NewCard("Calibration", "", container.NewVBox(
			tp.calLabel,
			tp.scaleLabel,
			tp.recalBtn,
		)),
		widget.NewCard("", "", tp.hintLabel),
	)

	state.On(app.EventCalibrationChanged, func(data interface{}) {
		tp.updateCalibrationStatus()
	})

	tp.updateCalibrationStatus()
	return tp
}

// Container returns the panel container.
func (tp *ToolsPanel) Container() fyne.CanvasObject {
	return tp.container
}

// SnapEnabled reports whether angle snapping is active.
func (tp *ToolsPanel) SnapEnabled() bool {
	return tp.snapCheck.Checked
}

// OnFinishPolygon sets the Finish Polygon button callback.
func (tp *ToolsPanel) OnFinishPolygon(callback func()) {
	tp.finishBtn.OnTapped = callback
}

// OnUndoPoint sets the Undo Point button callback.
func (tp *ToolsPanel) OnUndoPoint(callback func()) {
	tp.undoBtn.OnTapped = callback
}

// OnResetCalibration sets the Recalibrate button callback.
func (tp *ToolsPanel) OnResetCalibration(callback func()) {
	tp.recalBtn.OnTapped = callback
}

func (tp *ToolsPanel) updateCalibrationStatus() {
	cal := tp.state.Calibration
	if cal.Calibrated {
		tp.calLabel.SetText("Calibrated")
		tp.scaleLabel.SetText(fmt.Sprintf("Scale: %.6f m/px", cal.Scale))
		tp.recalBtn.Enable()
	} else {
		tp.calLabel.SetText(fmt.Sprintf("Not calibrated (%d/2 points)", len(cal.Points)))
		tp.scaleLabel.SetText("")
		tp.recalBtn.Disable()
	}
	tp.updateHint()
}

func (tp *ToolsPanel) updateHint() {
	if !tp.state.Calibration.Calibrated {
		tp.hintLabel.SetText("Click two points a known distance apart on the plan, then enter the distance.")
		return
	}

	switch tp.state.Session.Mode() {
	case session.ModeSegment:
		tp.hintLabel.SetText("Click two points to measure a distance.")
	case session.ModeRectangle:
		tp.hintLabel.SetText("Click two base corners, then a third point for the height.")
	case session.ModeText:
		tp.hintLabel.SetText("Click where the label should go.")
	default:
		tp.hintLabel.SetText("Click to add vertices; finish with Finish Polygon or right-click.")
	}
}
