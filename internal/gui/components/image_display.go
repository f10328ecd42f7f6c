package components

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const (
	ImageAreaWidth  = 640
	ImageAreaHeight = 480
)

// ImageDisplay shows the camera frame and the filtered frame side by side.
type ImageDisplay struct {
	container     *fyne.Container
	originalImage *canvas.Image
	filteredImage *canvas.Image
}

func NewImageDisplay() *ImageDisplay {
	originalImage := canvas.NewImageFromImage(nil)
	originalImage.FillMode = canvas.ImageFillContain
	originalImage.ScaleMode = canvas.ImageScaleFastest
	originalImage.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))

	filteredImage := canvas.NewImageFromImage(nil)
	filteredImage.FillMode = canvas.ImageFillContain
	filteredImage.ScaleMode = canvas.ImageScaleFastest
	filteredImage.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))

	originalContainer := container.NewBorder(
		widget.NewRichTextFromMarkdown("**Camera**"), nil, nil, nil,
		originalImage,
	)

	filteredContainer := container.NewBorder(
		widget.NewRichTextFromMarkdown("**Filtered**"), nil, nil, nil,
		filteredImage,
	)

	return &ImageDisplay{
		container: container.New(
			layout.NewGridLayoutWithColumns(2),
			originalContainer,
			filteredContainer,
		),
		originalImage: originalImage,
		filteredImage: filteredImage,
	}
}

func (id *ImageDisplay) GetContainer() *fyne.Container {
	return id.container
}

// SetFrames must be called on the fyne goroutine.
func (id *ImageDisplay) SetFrames(original, filtered image.Image) {
	if original != nil {
		id.originalImage.Image = original
		id.originalImage.Refresh()
	}
	if filtered != nil {
		id.filteredImage.Image = filtered
		id.filteredImage.Refresh()
	}
}

func (id *ImageDisplay) OriginalImage() image.Image {
	return id.originalImage.Image
}

func (id *ImageDisplay) FilteredImage() image.Image {
	return id.filteredImage.Image
}
