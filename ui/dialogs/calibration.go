// Package dialogs provides application dialogs.
package dialogs

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// CalibrationDialog asks for the real-world distance between the two
// reference points just placed on the plan.
type CalibrationDialog struct {
	window fyne.Window

	distanceEntry *widget.Entry
	errorLabel    *widget.Label

	// Called with the entered distance in meters; not called on cancel.
	onConfirm func(meters float64)
	// Called when the dialog is dismissed without a valid distance.
	onCancel func()
}

// NewCalibrationDialog creates a new calibration distance dialog.
func NewCalibrationDialog(window fyne.Window, onConfirm func(meters float64), onCancel func()) *CalibrationDialog {
	return &CalibrationDialog{
		window:    window,
		onConfirm: onConfirm,
		onCancel:  onCancel,
	}
}

// Show displays the dialog.
func (d *CalibrationDialog) Show() {
	d.distanceEntry = widget.NewEntry()
	d.distanceEntry.SetPlaceHolder("e.g. 5.0")
	d.errorLabel = widget.NewLabel("")

	content := container.NewVBox(
		widget.NewLabel("Real-world distance between the two points (meters):"),
		d.distanceEntry,
		d.errorLabel,
	)

	dlg := dialog.NewCustomConfirm(
		"Calibrate Scale",
		"Set Scale",
		"Cancel",
		content,
		func(confirm bool) {
			if !confirm {
				if d.onCancel != nil {
					d.onCancel()
				}
				return
			}

			meters, err := strconv.ParseFloat(d.distanceEntry.Text, 64)
			if err != nil || meters <= 0 {
				// Invalid input: reopen with an error message so the
				// reference points are not lost.
				d.reShow(d.distanceEntry.Text)
				return
			}

			if d.onConfirm != nil {
				d.onConfirm(meters)
			}
		},
		d.window,
	)
	dlg.Show()
	d.window.Canvas().Focus(d.distanceEntry)
}

// reShow redisplays the dialog with the previous input and an error note.
func (d *CalibrationDialog) reShow(previous string) {
	d.Show()
	d.distanceEntry.SetText(previous)
	d.errorLabel.SetText("Enter a positive number")
}
