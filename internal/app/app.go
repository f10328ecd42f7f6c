// Package app defines the contract between the bootstrap runner and the
// application controller it drives.
package app

import (
	"context"

	"fyne.io/fyne/v2"
)

const (
	AppName    = "OpenCV Filtering"
	AppID      = "com.imageprocessing.opencvfiltering"
	AppVersion = "1.0.0"
)

// Root is the toolkit's top-level handle shared by the controller.
type Root interface {
	App() fyne.App
	Window() fyne.Window
	Quit()
}

// Controller owns the GUI session. Run blocks until the session ends.
type Controller interface {
	Run(ctx context.Context) (Outcome, error)
}
