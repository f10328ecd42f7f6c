package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"opencv-filtering/internal/gui/components"
)

// View handles all UI components and their layout
type View struct {
	window fyne.Window

	imageDisplay   *components.ImageDisplay
	filterPanel    *components.FilterPanel
	statusBar      *components.StatusBar
	snapshotButton *widget.Button
	mainContainer  *fyne.Container
}

func NewView(window fyne.Window, order []string, enabled func(name string) bool) *View {
	view := &View{
		window:         window,
		imageDisplay:   components.NewImageDisplay(),
		filterPanel:    components.NewFilterPanel(order, enabled),
		statusBar:      components.NewStatusBar(),
		snapshotButton: widget.NewButtonWithIcon("Snapshot", theme.DocumentSaveIcon(), nil),
	}

	toolbar := container.NewBorder(
		nil, nil,
		nil,
		view.snapshotButton,
		container.NewHScroll(view.filterPanel.GetContainer()),
	)

	view.mainContainer = container.NewBorder(
		toolbar,
		view.statusBar.GetContainer(),
		nil, nil,
		view.imageDisplay.GetContainer(),
	)

	return view
}

func (v *View) SetFilterToggleHandler(handler func(name string, enabled bool)) {
	v.filterPanel.SetToggleHandler(handler)
}

func (v *View) SetSnapshotHandler(handler func()) {
	v.snapshotButton.OnTapped = handler
}

func (v *View) SetFrames(original, filtered image.Image) {
	v.imageDisplay.SetFrames(original, filtered)
}

func (v *View) SetStatus(status string) {
	v.statusBar.SetStatus(status)
}

func (v *View) SetFPS(fps float64) {
	v.statusBar.SetFPS(fps)
}

func (v *View) GetMainContainer() *fyne.Container {
	return v.mainContainer
}

// Show installs the view as the window content and displays it.
func (v *View) Show() {
	v.window.SetContent(v.mainContainer)
	v.window.Show()
}
