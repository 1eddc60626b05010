package dialogs

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// TextDialog asks for the content of a new text label.
type TextDialog struct {
	window fyne.Window

	contentEntry *widget.Entry

	// Called with the entered content; empty content means the label was
	// cancelled.
	onDone func(content string)
}

// NewTextDialog creates a new text label dialog.
func NewTextDialog(window fyne.Window, onDone func(content string)) *TextDialog {
	return &TextDialog{
		window: window,
		onDone: onDone,
	}
}

// Show displays the dialog.
func (d *TextDialog) Show() {
	d.contentEntry = widget.NewEntry()
	d.contentEntry.SetPlaceHolder("Label text")

	content := container.NewVBox(
		widget.NewLabel("Text:"),
		d.contentEntry,
	)

	dlg := dialog.NewCustomConfirm(
		"Add Text Label",
		"Add",
		"Cancel",
		content,
		func(confirm bool) {
			if d.onDone == nil {
				return
			}
			if !confirm {
				d.onDone("")
				return
			}
			d.onDone(d.contentEntry.Text)
		},
		d.window,
	)
	dlg.Show()
	d.window.Canvas().Focus(d.contentEntry)
}
