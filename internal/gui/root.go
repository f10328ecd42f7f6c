// Package gui holds the GUI root window and the main controller that runs
// the live camera preview.
package gui

import (
	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"opencv-filtering/internal/app"
	"opencv-filtering/internal/config"
)

// Root is the fyne application plus its master window.
type Root struct {
	fyneApp fyne.App
	window  fyne.Window
}

func NewRoot(cfg config.WindowConfig) *Root {
	fyneapp.SetMetadata(fyne.AppMetadata{
		ID:      app.AppID,
		Name:    app.AppName,
		Version: app.AppVersion,
	})
	return NewRootWithApp(fyneapp.NewWithID(app.AppID), cfg)
}

// NewRootWithApp builds the master window on an existing fyne app.
func NewRootWithApp(fyneApp fyne.App, cfg config.WindowConfig) *Root {
	window := fyneApp.NewWindow(app.AppName)
	window.Resize(fyne.NewSize(cfg.Width, cfg.Height))
	window.CenterOnScreen()
	window.SetMaster()

	return &Root{
		fyneApp: fyneApp,
		window:  window,
	}
}

func (r *Root) App() fyne.App {
	return r.fyneApp
}

func (r *Root) Window() fyne.Window {
	return r.window
}

func (r *Root) Quit() {
	r.fyneApp.Quit()
}
