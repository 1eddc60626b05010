// Package mainwindow provides the main application window.
package mainwindow

import (
	"errors"
	"fmt"
	"path/filepath"

	"plan-measure/internal/app"
	"plan-measure/internal/measure"
	"plan-measure/internal/session"
	"plan-measure/internal/shape"
	"plan-measure/internal/version"
	"plan-measure/pkg/colorutil"
	"plan-measure/pkg/geometry"
	"plan-measure/ui/canvas"
	"plan-measure/ui/dialogs"
	"plan-measure/ui/panels"
	"plan-measure/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	prefKeyLastDir     = "lastDirectory"
	prefKeyLastProject = "lastProject"

	projectExt = ".planproj"
)

const appTitle = "Plan Meter"

// calibrationColor is used for the reference segment before calibration.
var calibrationColor = colorutil.Magenta

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	canvas    *canvas.ImageCanvas
	sidePanel *panels.SidePanel
	statusBar *widget.Label
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, store *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow(appTitle)

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  store,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.setupInputHandlers()

	win.SetCloseIntercept(mw.onClose)
	win.Resize(fyne.NewSize(1200, 800))

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewImageCanvas()

	mw.sidePanel = panels.NewSidePanel(mw.state, mw.canvas)
	mw.sidePanel.SetWindow(mw.Window)
	mw.sidePanel.OnFinishPolygon(mw.onFinishPolygon)
	mw.sidePanel.OnUndoPoint(mw.onUndoPoint)
	mw.sidePanel.OnResetCalibration(mw.onResetCalibration)

	mw.statusBar = widget.NewLabel("Ready")

	toolbar := mw.createToolbar()

	canvasArea := container.NewBorder(
		toolbar,
		nil,
		nil,
		nil,
		mw.canvas.Container(),
	)

	split := container.NewHSplit(
		mw.sidePanel.Container(),
		canvasArea,
	)
	split.SetOffset(0.25)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil,
		nil,
		split,
	)

	mw.SetContent(content)
}

// createToolbar creates the toolbar with zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", mw.canvas.ZoomOut)
	zoomInBtn := widget.NewButton("+", mw.canvas.ZoomIn)
	actualBtn := widget.NewButton("1:1", func() {
		mw.canvas.SetZoom(1.0)
	})

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		actualBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", mw.onNewProject),
		fyne.NewMenuItem("Open Project...", mw.onOpenProject),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open Floor Plan...", mw.onOpenFloorPlan),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Project", mw.onSaveProject),
		fyne.NewMenuItem("Save Project As...", mw.onSaveProjectAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", mw.onClose),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo Point", mw.onUndoPoint),
		fyne.NewMenuItem("Delete Selection", mw.onDeleteSelection),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reset Calibration", mw.onResetCalibration),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.canvas.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.canvas.ZoomOut),
		fyne.NewMenuItem("Actual Size", func() { mw.canvas.SetZoom(1.0) }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventProjectLoaded, func(data interface{}) {
		path, _ := data.(string)
		if path == "" {
			mw.SetTitle(appTitle + " - Untitled")
		} else {
			mw.SetTitle(appTitle + " - " + filepath.Base(path))
			mw.updateStatus("Project loaded: " + path)
		}
		mw.canvas.SetLayer(mw.state.FloorPlan)
		mw.refreshOverlays()
	})

	mw.state.On(app.EventProjectSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle(appTitle + " - " + filepath.Base(path))
			mw.updateStatus("Saved: " + path)
		}
	})

	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		mw.canvas.SetLayer(mw.state.FloorPlan)
		mw.updateStatus("Floor plan loaded")
	})

	mw.state.On(app.EventShapesChanged, func(data interface{}) {
		mw.refreshOverlays()
	})

	mw.state.On(app.EventCalibrationChanged, func(data interface{}) {
		mw.refreshOverlays()
	})

	mw.state.On(app.EventSelectionChanged, func(data interface{}) {
		mw.refreshOverlays()
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if len(title) > 0 && title[len(title)-1] != '*' {
				mw.SetTitle(title + " *")
			}
		}
	})
}

// setupInputHandlers wires pointer input on the canvas into the drawing
// session.
func (mw *MainWindow) setupInputHandlers() {
	mw.canvas.OnLeftClick(func(x, y float64) {
		mw.onCanvasClick(geometry.Point2D{X: x, Y: y})
	})

	mw.canvas.OnRightClick(func(x, y float64) {
		mw.onCanvasRightClick(geometry.Point2D{X: x, Y: y})
	})

	mw.canvas.OnMouseMove(func(x, y float64) {
		mw.onCanvasHover(geometry.Point2D{X: x, Y: y})
	})

	mw.canvas.OnMouseOut(func() {
		mw.state.Session.ClearPreview()
		mw.refreshSessionOverlay()
	})
}

// onCanvasClick feeds a left click into the session state machine.
func (mw *MainWindow) onCanvasClick(p geometry.Point2D) {
	ev, err := mw.state.Session.PointerDown(p, mw.sidePanel.SnapEnabled())
	if err != nil {
		if errors.Is(err, session.ErrDegenerateRectangleBase) {
			mw.updateStatus("Rectangle discarded: base corners coincide")
		} else {
			mw.updateStatus(err.Error())
		}
		mw.refreshSessionOverlay()
		return
	}

	switch ev.Kind {
	case session.EventCalibrationPoint:
		mw.updateStatus("Calibration: place the second reference point")
		mw.state.Emit(app.EventCalibrationChanged, nil)

	case session.EventCalibrationReady:
		mw.state.Emit(app.EventCalibrationChanged, nil)
		mw.promptCalibrationDistance()

	case session.EventTextPrompt:
		mw.promptTextContent(ev.Point)

	case session.EventShapeCommitted:
		mw.state.SetSelection(ev.Ref)
		mw.state.SetModified(true)
		mw.state.Emit(app.EventShapesChanged, nil)

	case session.EventIgnored:
		// Nothing to do

	default:
		mw.refreshSessionOverlay()
	}
}

// onCanvasRightClick finishes an in-progress polygon, or selects the shape
// under the cursor when nothing is being drawn.
func (mw *MainWindow) onCanvasRightClick(p geometry.Point2D) {
	sess := mw.state.Session
	if sess.Mode() == session.ModePolygon && len(sess.InProgress()) >= 3 {
		mw.onFinishPolygon()
		return
	}

	ref := mw.state.Shapes.Locate(p, textMeasurer)
	mw.state.SetSelection(ref)
	if ref == nil {
		mw.updateStatus("Nothing selected")
	} else {
		mw.updateStatus(fmt.Sprintf("Selected %s %d", ref.Kind, ref.Index+1))
	}
}

// onCanvasHover tracks the live preview point and measurement.
func (mw *MainWindow) onCanvasHover(p geometry.Point2D) {
	sess := mw.state.Session
	sess.SetPreview(p, mw.sidePanel.SnapEnabled())
	mw.refreshSessionOverlay()

	if mw.state.Calibration.Calibrated {
		if px := sess.PreviewPixelLength(); px > 0 {
			mw.updateStatus(measure.FormatLength(mw.state.Calibration.Length(px)))
			return
		}
	}
	mw.updateStatus(fmt.Sprintf("%.0f, %.0f", p.X, p.Y))
}

// onFinishPolygon commits the accumulated polygon vertices.
func (mw *MainWindow) onFinishPolygon() {
	ref, err := mw.state.Session.FinalizePolygon()
	if err != nil {
		mw.updateStatus(err.Error())
		return
	}
	mw.state.SetSelection(ref)
	mw.state.SetModified(true)
	mw.state.Emit(app.EventShapesChanged, nil)
}

func (mw *MainWindow) onUndoPoint() {
	if mw.state.Session.UndoPoint() {
		mw.state.Emit(app.EventCalibrationChanged, nil)
		mw.refreshSessionOverlay()
		mw.updateStatus("Point removed")
	}
}

func (mw *MainWindow) onDeleteSelection() {
	if mw.state.DeleteSelected() {
		mw.updateStatus("Shape deleted")
	}
}

func (mw *MainWindow) onResetCalibration() {
	dialog.ShowConfirm("Reset Calibration",
		"Discard the current scale? Existing measurements will be shown with the new scale once recalibrated.",
		func(confirm bool) {
			if !confirm {
				return
			}
			mw.state.Calibration.Reset()
			mw.state.Session.Reset()
			mw.state.SetModified(true)
			mw.state.Emit(app.EventCalibrationChanged, nil)
			mw.updateStatus("Calibration reset: place two reference points")
		}, mw.Window)
}

// promptCalibrationDistance opens the distance dialog after the second
// reference point is placed.
func (mw *MainWindow) promptCalibrationDistance() {
	dlg := dialogs.NewCalibrationDialog(mw.Window,
		func(meters float64) {
			if err := mw.state.Calibration.SetScale(meters); err != nil {
				dialog.ShowError(err, mw.Window)
				return
			}
			mw.state.SetModified(true)
			mw.state.Emit(app.EventCalibrationChanged, nil)
			mw.updateStatus(fmt.Sprintf("Calibrated: %.6f m/px", mw.state.Calibration.Scale))
		},
		func() {
			// Reference points stay; the user can undo them or re-enter
			// the distance by clicking again.
			mw.state.Calibration.RemoveLastPoint()
			mw.state.Emit(app.EventCalibrationChanged, nil)
			mw.updateStatus("Calibration cancelled")
		})
	dlg.Show()
}

// promptTextContent opens the label content dialog for a text shape.
func (mw *MainWindow) promptTextContent(anchor geometry.Point2D) {
	dlg := dialogs.NewTextDialog(mw.Window, func(content string) {
		ref, err := mw.state.Session.CommitText(anchor, content)
		if err != nil {
			mw.updateStatus(err.Error())
			return
		}
		if ref == nil {
			return // cancelled
		}
		mw.state.SetSelection(ref)
		mw.state.SetModified(true)
		mw.state.Emit(app.EventShapesChanged, nil)
	})
	dlg.Show()
}

// textMeasurer reports the rendered size of a text label for hit-testing,
// using the same metrics the canvas draws with.
func textMeasurer(t *shape.Text) (width, height float64) {
	return canvas.TextExtent(t.Content, t.FontSize)
}

// refreshOverlays rebuilds both the persistent shape overlay and the
// transient session overlay.
func (mw *MainWindow) refreshOverlays() {
	mw.canvas.SetOverlay("shapes", mw.buildShapesOverlay())
	mw.refreshSessionOverlay()
}

// refreshSessionOverlay rebuilds only the in-progress drawing overlay.
func (mw *MainWindow) refreshSessionOverlay() {
	mw.canvas.SetOverlay("session", mw.buildSessionOverlay())
}

// buildShapesOverlay renders the registry and the calibration reference
// segment into overlay primitives.
func (mw *MainWindow) buildShapesOverlay() *canvas.Overlay {
	reg := mw.state.Shapes
	cal := mw.state.Calibration
	sel := mw.state.ValidSelection()

	selected := func(k shape.Kind, i int) bool {
		return sel != nil && sel.Kind == k && sel.Index == i
	}

	overlay := &canvas.Overlay{}

	for i, p := range reg.Polygons {
		op := canvas.OverlayPolygon{
			Points:   p.Points,
			Color:    p.Color,
			Filled:   true,
			Selected: selected(shape.KindPolygon, i),
		}
		if p.ShowArea {
			op.Label = measure.FormatArea(cal.Area(p.PixelArea()))
			op.LabelAnchor = p.Centroid()
		}
		overlay.Polygons = append(overlay.Polygons, op)
	}

	for i, r := range reg.Rectangles {
		op := canvas.OverlayPolygon{
			Points:   r.Points,
			Color:    r.Color,
			Filled:   true,
			Selected: selected(shape.KindRectangle, i),
		}
		if r.ShowArea {
			op.Label = measure.FormatArea(cal.Area(r.PixelArea()))
			op.LabelAnchor = r.Centroid()
		}
		overlay.Polygons = append(overlay.Polygons, op)
	}

	for i, s := range reg.Segments {
		if len(s.Points) != 2 {
			continue
		}
		ol := canvas.OverlayLine{
			From:      s.Points[0],
			To:        s.Points[1],
			Color:     s.Color,
			Thickness: 2,
			Selected:  selected(shape.KindSegment, i),
		}
		if s.ShowLength {
			ol.Label = measure.FormatLength(cal.Length(s.PixelLength()))
			ol.LabelAnchor = s.Midpoint()
		}
		overlay.Lines = append(overlay.Lines, ol)
		overlay.Markers = append(overlay.Markers,
			canvas.OverlayMarker{At: s.Points[0], Color: s.Color},
			canvas.OverlayMarker{At: s.Points[1], Color: s.Color},
		)
	}

	for i, t := range reg.Texts {
		overlay.Texts = append(overlay.Texts, canvas.OverlayText{
			At:       t.Anchor,
			Content:  t.Content,
			Color:    t.Color,
			FontSize: t.FontSize,
			Selected: selected(shape.KindText, i),
		})
	}

	// Calibration reference segment while uncalibrated
	for _, p := range cal.Points {
		overlay.Markers = append(overlay.Markers, canvas.OverlayMarker{At: p, Color: calibrationColor})
	}
	if len(cal.Points) == 2 {
		overlay.Lines = append(overlay.Lines, canvas.OverlayLine{
			From:      cal.Points[0],
			To:        cal.Points[1],
			Color:     calibrationColor,
			Thickness: 1,
			Dashed:    true,
		})
	}

	return overlay
}

// buildSessionOverlay renders the in-progress points and the live preview
// line.
func (mw *MainWindow) buildSessionOverlay() *canvas.Overlay {
	sess := mw.state.Session
	cal := mw.state.Calibration

	overlay := &canvas.Overlay{}
	points := sess.InProgress()
	col := sess.Color(sess.Mode())

	for _, p := range points {
		overlay.Markers = append(overlay.Markers, canvas.OverlayMarker{At: p, Color: col})
	}
	for i := 1; i < len(points); i++ {
		overlay.Lines = append(overlay.Lines, canvas.OverlayLine{
			From:      points[i-1],
			To:        points[i],
			Color:     col,
			Thickness: 1,
		})
	}

	// Preview line from the last committed point to the pointer, with a
	// live length label on the stepped path
	if preview := sess.Preview(); preview != nil && len(points) > 0 {
		line := canvas.OverlayLine{
			From:      points[len(points)-1],
			To:        *preview,
			Color:     col,
			Thickness: 1,
			Dashed:    true,
		}
		if cal.Calibrated {
			if anchor, ok := sess.PreviewLabelAnchor(); ok {
				line.Label = measure.FormatLength(cal.Length(sess.PreviewPixelLength()))
				line.LabelAnchor = anchor
			}
		}
		overlay.Lines = append(overlay.Lines, line)
	}

	return overlay
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.Set(prefKeyLastDir, filepath.Dir(filePath))
	mw.prefs.Save()
}

// RestoreLastProject reopens the project from the previous run, if any.
func (mw *MainWindow) RestoreLastProject() {
	path := mw.prefs.String(prefKeyLastProject)
	if path == "" {
		return
	}
	if err := mw.state.LoadProject(path); err != nil {
		mw.updateStatus(fmt.Sprintf("Could not restore %s: %v", filepath.Base(path), err))
	}
}

// OpenProject loads the project at path, e.g. from a command line argument.
func (mw *MainWindow) OpenProject(path string) {
	if err := mw.state.LoadProject(path); err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.rememberProject(path)
}

func (mw *MainWindow) rememberProject(path string) {
	mw.prefs.Set(prefKeyLastProject, path)
	mw.saveLastDir(path)
}

// Menu action handlers

func (mw *MainWindow) onNewProject() {
	mw.confirmDiscard(func() {
		mw.state.NewProject()
		mw.canvas.SetLayer(nil)
		mw.updateStatus("New project: open a floor plan to begin")
	})
}

func (mw *MainWindow) onOpenProject() {
	mw.confirmDiscard(func() {
		fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			reader.Close()
			path := reader.URI().Path()
			if err := mw.state.LoadProject(path); err != nil {
				dialog.ShowError(err, mw.Window)
				return
			}
			mw.rememberProject(path)
		}, mw.Window)
		fd.SetFilter(storage.NewExtensionFileFilter([]string{projectExt}))
		if loc := mw.getLastDir(); loc != nil {
			fd.SetLocation(loc)
		}
		fd.Show()
	})
}

func (mw *MainWindow) onOpenFloorPlan() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadImage(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveProject() {
	if mw.state.ProjectPath == "" {
		mw.onSaveProjectAs()
		return
	}
	if err := mw.state.SaveProject(mw.state.ProjectPath); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveProjectAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != projectExt {
			path += projectExt
		}
		if err := mw.state.SaveProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.rememberProject(path)
	}, mw.Window)
	fd.SetFileName("project" + projectExt)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// confirmDiscard runs action, first asking about unsaved changes.
func (mw *MainWindow) confirmDiscard(action func()) {
	if !mw.state.Modified {
		action()
		return
	}
	dialog.ShowConfirm("Unsaved Changes",
		"Discard unsaved changes?",
		func(confirm bool) {
			if confirm {
				action()
			}
		}, mw.Window)
}

func (mw *MainWindow) onClose() {
	mw.confirmDiscard(func() {
		mw.prefs.Save()
		mw.app.Quit()
	})
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+appTitle,
		fmt.Sprintf("%s v%s\n\n"+
			"Measure distances and areas on scanned floor plans.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			appTitle, version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
