package panels

import (
	"fmt"

	"plan-measure/internal/app"
	"plan-measure/internal/measure"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// SummaryPanel shows aggregate statistics over all measured shapes.
type SummaryPanel struct {
	state     *app.State
	container fyne.CanvasObject

	regionLabel  *widget.Label
	segmentLabel *widget.Label
	textLabel    *widget.Label
}

// NewSummaryPanel creates a new summary panel.
func NewSummaryPanel(state *app.State) *SummaryPanel {
	sp := &SummaryPanel{
		state: state,
	}

	sp.regionLabel = widget.NewLabel("")
	sp.segmentLabel = widget.NewLabel("")
	sp.textLabel = widget.NewLabel("")

	sp.container = container.NewVBox(
		widget.NewCard("Areas", "", sp.regionLabel),
		widget.NewCard("Distances", "", sp.segmentLabel),
		widget.NewCard("Labels", "", sp.textLabel),
	)

	refresh := func(data interface{}) {
		sp.refresh()
	}
	state.On(app.EventShapesChanged, refresh)
	state.On(app.EventCalibrationChanged, refresh)
	state.On(app.EventProjectLoaded, refresh)

	sp.refresh()
	return sp
}

// Container returns the panel container.
func (sp *SummaryPanel) Container() fyne.CanvasObject {
	return sp.container
}

func (sp *SummaryPanel) refresh() {
	sum := measure.Summarize(sp.state.Shapes, sp.state.Calibration)

	if sum.RegionCount == 0 {
		sp.regionLabel.SetText("No measured regions")
	} else {
		sp.regionLabel.SetText(fmt.Sprintf(
			"%d regions\nTotal: %s\nMean: %s",
			sum.RegionCount,
			measure.FormatArea(sum.TotalArea),
			measure.FormatArea(sum.MeanArea),
		))
	}

	if sum.SegmentCount == 0 {
		sp.segmentLabel.SetText("No measured distances")
	} else {
		sp.segmentLabel.SetText(fmt.Sprintf(
			"%d segments\nTotal: %s\nMean: %s",
			sum.SegmentCount,
			measure.FormatLength(sum.TotalLength),
			measure.FormatLength(sum.MeanLength),
		))
	}

	if sum.TextCount == 0 {
		sp.textLabel.SetText("No text labels")
	} else {
		sp.textLabel.SetText(fmt.Sprintf("%d text labels", sum.TextCount))
	}
}
