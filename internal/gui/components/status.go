package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	fpsLabel    *widget.Label
}

func NewStatusBar() *StatusBar {
	statusLabel := widget.NewLabel("Ready")
	fpsLabel := widget.NewLabel("FPS: --")

	mainContainer := container.NewBorder(
		nil, nil,
		statusLabel,
		fpsLabel,
	)

	return &StatusBar{
		container:   mainContainer,
		statusLabel: statusLabel,
		fpsLabel:    fpsLabel,
	}
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

func (sb *StatusBar) Status() string {
	return sb.statusLabel.Text
}

func (sb *StatusBar) SetFPS(fps float64) {
	sb.fpsLabel.SetText(fmt.Sprintf("FPS: %.1f", fps))
}

func (sb *StatusBar) FPS() string {
	return sb.fpsLabel.Text
}
