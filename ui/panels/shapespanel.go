package panels

import (
	"fmt"
	"image/color"

	"plan-measure/internal/app"
	"plan-measure/internal/measure"
	"plan-measure/internal/shape"
	"plan-measure/pkg/colorutil"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// shapeEntry identifies one row in the flattened shape list.
type shapeEntry struct {
	kind  shape.Kind
	index int
}

// colorNames maps palette labels to colors, in display order.
var colorNames = []string{"Red", "Green", "Blue", "Yellow", "Magenta", "Black"}

func colorForName(name string) color.RGBA {
	switch name {
	case "Green":
		return colorutil.Green
	case "Blue":
		return colorutil.Blue
	case "Yellow":
		return colorutil.Yellow
	case "Magenta":
		return colorutil.Magenta
	case "Black":
		return colorutil.Black
	default:
		return colorutil.Red
	}
}

func nameForColor(c color.RGBA) string {
	for _, name := range colorNames {
		if colorForName(name) == c {
			return name
		}
	}
	return ""
}

// ShapesPanel lists all shapes and edits the selected one.
type ShapesPanel struct {
	state     *app.State
	window    fyne.Window
	container fyne.CanvasObject

	entries []shapeEntry
	list    *widget.List

	detailLabel *widget.Label
	showCheck   *widget.Check
	colorSelect *widget.Select
	deleteBtn   *widget.Button

	// Guards widget callbacks while the detail section is being populated
	// programmatically.
	updating bool
}

// NewShapesPanel creates a new shapes panel.
func NewShapesPanel(state *app.State) *ShapesPanel {
	sp := &ShapesPanel{
		state: state,
	}

	sp.list = widget.NewList(
		func() int {
			return len(sp.entries)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("shape")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < len(sp.entries) {
				obj.(*widget.Label).SetText(sp.entryLabel(sp.entries[id]))
			}
		},
	)

	sp.list.OnSelected = func(id widget.ListItemID) {
		if sp.updating || id >= len(sp.entries) {
			return
		}
		entry := sp.entries[id]
		state.SetSelection(state.Shapes.RefAt(entry.kind, entry.index))
	}

	sp.detailLabel = widget.NewLabel("Select a shape")
	sp.detailLabel.Wrapping = fyne.TextWrapWord

	sp.showCheck = widget.NewCheck("Show measurement", func(checked bool) {
		if sp.updating {
			return
		}
		if sp.setShowMeasurement(checked) {
			state.SetModified(true)
			state.Emit(app.EventShapesChanged, nil)
		}
	})

	sp.colorSelect = widget.NewSelect(colorNames, func(selected string) {
		if sp.updating {
			return
		}
		if sp.setColor(colorForName(selected)) {
			state.SetModified(true)
			state.Emit(app.EventShapesChanged, nil)
		}
	})

	sp.deleteBtn = widget.NewButton("Delete", func() {
		state.DeleteSelected()
	})

	detail := widget.NewCard("Selected", "", container.NewVBox(
		sp.detailLabel,
		sp.showCheck,
		sp.colorSelect,
		sp.deleteBtn,
	))

	sp.container = container.NewBorder(nil, detail, nil, nil, sp.list)

	state.On(app.EventShapesChanged, func(data interface{}) {
		sp.rebuild()
	})
	state.On(app.EventProjectLoaded, func(data interface{}) {
		sp.rebuild()
	})
	state.On(app.EventSelectionChanged, func(data interface{}) {
		sp.syncSelection()
	})

	sp.rebuild()
	return sp
}

// Container returns the panel container.
func (sp *ShapesPanel) Container() fyne.CanvasObject {
	return sp.container
}

// SetWindow sets the parent window for dialogs.
func (sp *ShapesPanel) SetWindow(w fyne.Window) {
	sp.window = w
}

// rebuild regenerates the flattened entry list from the registry.
func (sp *ShapesPanel) rebuild() {
	reg := sp.state.Shapes
	sp.entries = sp.entries[:0]
	for _, k := range []shape.Kind{shape.KindPolygon, shape.KindRectangle, shape.KindSegment, shape.KindText} {
		for i := 0; i < reg.Count(k); i++ {
			sp.entries = append(sp.entries, shapeEntry{kind: k, index: i})
		}
	}
	sp.list.Refresh()
	sp.syncSelection()
}

// syncSelection updates the detail section for the current selection.
func (sp *ShapesPanel) syncSelection() {
	ref := sp.state.ValidSelection()
	sp.updating = true
	defer func() { sp.updating = false }()

	if ref == nil {
		sp.list.UnselectAll()
		sp.detailLabel.SetText("Select a shape")
		sp.showCheck.Disable()
		sp.colorSelect.ClearSelected()
		sp.colorSelect.Disable()
		sp.deleteBtn.Disable()
		return
	}

	for i, entry := range sp.entries {
		if entry.kind == ref.Kind && entry.index == ref.Index {
			sp.list.Select(i)
			break
		}
	}

	sp.detailLabel.SetText(sp.entryLabel(shapeEntry{kind: ref.Kind, index: ref.Index}))
	sp.deleteBtn.Enable()
	sp.colorSelect.Enable()
	sp.colorSelect.SetSelected(nameForColor(sp.shapeColor(ref)))

	if ref.Kind == shape.KindText {
		sp.showCheck.Disable()
		sp.showCheck.SetChecked(false)
	} else {
		sp.showCheck.Enable()
		sp.showCheck.SetChecked(sp.showMeasurement(ref))
	}
}

// entryLabel renders a list row: kind, ordinal, and the measured quantity.
func (sp *ShapesPanel) entryLabel(entry shapeEntry) string {
	reg := sp.state.Shapes
	cal := sp.state.Calibration

	switch entry.kind {
	case shape.KindPolygon:
		if entry.index < len(reg.Polygons) {
			p := reg.Polygons[entry.index]
			return fmt.Sprintf("Polygon %d — %s", entry.index+1, measure.FormatArea(cal.Area(p.PixelArea())))
		}
	case shape.KindRectangle:
		if entry.index < len(reg.Rectangles) {
			r := reg.Rectangles[entry.index]
			return fmt.Sprintf("Rectangle %d — %s", entry.index+1, measure.FormatArea(cal.Area(r.PixelArea())))
		}
	case shape.KindSegment:
		if entry.index < len(reg.Segments) {
			s := reg.Segments[entry.index]
			return fmt.Sprintf("Segment %d — %s", entry.index+1, measure.FormatLength(cal.Length(s.PixelLength())))
		}
	case shape.KindText:
		if entry.index < len(reg.Texts) {
			return fmt.Sprintf("Text %d — %q", entry.index+1, reg.Texts[entry.index].Content)
		}
	}
	return ""
}

func (sp *ShapesPanel) shapeColor(ref *shape.Ref) color.RGBA {
	reg := sp.state.Shapes
	switch ref.Kind {
	case shape.KindPolygon:
		return reg.Polygons[ref.Index].Color
	case shape.KindRectangle:
		return reg.Rectangles[ref.Index].Color
	case shape.KindSegment:
		return reg.Segments[ref.Index].Color
	default:
		return reg.Texts[ref.Index].Color
	}
}

func (sp *ShapesPanel) setColor(c color.RGBA) bool {
	ref := sp.state.ValidSelection()
	if ref == nil {
		return false
	}
	reg := sp.state.Shapes
	switch ref.Kind {
	case shape.KindPolygon:
		reg.Polygons[ref.Index].Color = c
	case shape.KindRectangle:
		reg.Rectangles[ref.Index].Color = c
	case shape.KindSegment:
		reg.Segments[ref.Index].Color = c
	case shape.KindText:
		reg.Texts[ref.Index].Color = c
	}
	return true
}

func (sp *ShapesPanel) showMeasurement(ref *shape.Ref) bool {
	reg := sp.state.Shapes
	switch ref.Kind {
	case shape.KindPolygon:
		return reg.Polygons[ref.Index].ShowArea
	case shape.KindRectangle:
		return reg.Rectangles[ref.Index].ShowArea
	case shape.KindSegment:
		return reg.Segments[ref.Index].ShowLength
	default:
		return false
	}
}

func (sp *ShapesPanel) setShowMeasurement(show bool) bool {
	ref := sp.state.ValidSelection()
	if ref == nil {
		return false
	}
	reg := sp.state.Shapes
	switch ref.Kind {
	case shape.KindPolygon:
		reg.Polygons[ref.Index].ShowArea = show
	case shape.KindRectangle:
		reg.Rectangles[ref.Index].ShowArea = show
	case shape.KindSegment:
		reg.Segments[ref.Index].ShowLength = show
	default:
		return false
	}
	return true
}
