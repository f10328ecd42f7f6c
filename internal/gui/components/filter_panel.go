package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// FilterPanel holds one check box per filter in chain order.
type FilterPanel struct {
	container *fyne.Container
	checks    map[string]*widget.Check
	onToggle  func(name string, enabled bool)
}

func NewFilterPanel(order []string, enabled func(name string) bool) *FilterPanel {
	panel := &FilterPanel{
		checks: make(map[string]*widget.Check, len(order)),
	}

	items := []fyne.CanvasObject{widget.NewLabel("Filters:")}
	for _, name := range order {
		check := widget.NewCheck(name, nil)
		check.SetChecked(enabled(name))
		check.OnChanged = func(on bool) {
			if panel.onToggle != nil {
				panel.onToggle(name, on)
			}
		}
		panel.checks[name] = check
		items = append(items, check)
	}

	panel.container = container.NewHBox(items...)
	return panel
}

func (fp *FilterPanel) GetContainer() *fyne.Container {
	return fp.container
}

func (fp *FilterPanel) SetToggleHandler(handler func(name string, enabled bool)) {
	fp.onToggle = handler
}

func (fp *FilterPanel) Check(name string) *widget.Check {
	return fp.checks[name]
}
