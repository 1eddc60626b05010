// Plan Meter measures distances and areas on scanned floor plans. The
// pixel-to-meter scale is calibrated from a reference segment of known
// length, after which polygons, rectangles, segments, and text labels can
// be drawn and measured on the plan.
package main

import (
	"log"
	"os"

	fyneapp "fyne.io/fyne/v2/app"

	"plan-measure/internal/app"
	"plan-measure/ui/mainwindow"
	"plan-measure/ui/prefs"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	fyneApp := fyneapp.NewWithID("planmeasure")
	state := app.NewState()
	store := prefs.Load()

	win := mainwindow.New(fyneApp, state, store)

	if len(os.Args) > 1 {
		win.OpenProject(os.Args[1])
	} else {
		win.RestoreLastProject()
	}

	win.ShowAndRun()
}
