package ui

import (
	"fmt"
	"image/color"
	"strconv"

	"XSheetInk/internal/tool"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// dashPattern is applied to lines, arrows and connectors when "Dashed" is on.
var dashPattern = []float64{6, 4}

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(24, 24))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// hexColor renders c as the #rrggbb form objects store.
func hexColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

var palette = []color.Color{
	color.Black,
	color.NRGBA{R: 220, G: 30, B: 30, A: 255},  // Red
	color.NRGBA{R: 30, G: 140, B: 40, A: 255},  // Green
	color.NRGBA{R: 30, G: 80, B: 220, A: 255},  // Blue
	color.NRGBA{R: 240, G: 200, B: 0, A: 255},  // Yellow
	color.NRGBA{R: 150, G: 60, B: 190, A: 255}, // Purple
}

func layerNames(board *BoardWidget) []string {
	layers := board.Engine().Store().Layers()
	names := make([]string, len(layers))
	for i, l := range layers {
		names[i] = strconv.Itoa(i+1) + ": " + l.Name
	}
	return names
}

// --- The Main Toolbar ---
func NewToolbar(board *BoardWidget) fyne.CanvasObject {
	settings := board.Engine().Settings()
	store := board.Engine().Store()

	kinds := make([]string, len(tool.Kinds))
	for i, k := range tool.Kinds {
		kinds[i] = string(k)
	}
	toolSelect := widget.NewSelect(kinds, func(s string) {
		board.SetTool(tool.Kind(s))
	})
	toolSelect.SetSelected(string(board.Engine().Tool()))

	// --- Color Palette ---
	onColorTapped := func(c color.Color) {
		settings.Color = hexColor(c)
		if settings.Fill {
			settings.FillColor = hexColor(c)
		}
	}
	colorBox := container.NewHBox()
	for _, c := range palette {
		colorBox.Add(newColorSwatch(c, onColorTapped))
	}

	// --- Stroke Width Slider ---
	strokeSlider := widget.NewSlider(1.0, 20.0)
	strokeSlider.SetValue(settings.StrokeWidth)
	strokeSlider.OnChanged = func(val float64) {
		settings.StrokeWidth = val
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(120, 35)), strokeSlider)

	fill := widget.NewCheck("Fill", func(on bool) { settings.Fill = on })
	fill.SetChecked(settings.Fill)
	dashed := widget.NewCheck("Dashed", func(on bool) {
		if on {
			settings.DashPattern = append([]float64(nil), dashPattern...)
		} else {
			settings.DashPattern = nil
		}
	})
	dashed.SetChecked(len(settings.DashPattern) > 0)

	// --- Layers ---
	visible := widget.NewCheck("Visible", func(on bool) {
		store.SetLayerVisible(store.ActiveIndex(), on)
	})
	layerSelect := widget.NewSelect(layerNames(board), nil)
	layerSelect.OnChanged = func(string) {
		i := layerSelect.SelectedIndex()
		if i < 0 || !store.SetActiveLayer(i) {
			return
		}
		visible.SetChecked(store.Active().Visible)
	}
	refreshLayers := func() {
		layerSelect.SetOptions(layerNames(board))
		layerSelect.SetSelectedIndex(store.ActiveIndex())
	}
	refreshLayers()
	board.OnLayersChanged = refreshLayers
	addLayer := widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() {
		board.AddLayer()
	})

	// --- Sheet length ---
	frames := widget.NewLabel(strconv.Itoa(board.Frames()))
	resize := func(delta int) func() {
		return func() {
			board.SetFrames(board.Frames() + delta)
			frames.SetText(strconv.Itoa(board.Frames()))
		}
	}
	sheetTools := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentRemoveIcon(), resize(-framesPerBeat)),
		widget.NewToolbarAction(theme.ContentAddIcon(), resize(framesPerBeat)),
	)

	// --- Assemble everything ---
	return container.NewHBox(
		widget.NewLabel("Tool:"),
		toolSelect,
		widget.NewSeparator(),
		colorBox,
		sliderContainer,
		fill,
		dashed,
		widget.NewSeparator(),
		widget.NewLabel("Layer:"),
		layerSelect,
		addLayer,
		visible,
		widget.NewSeparator(),
		widget.NewLabel("Frames:"),
		frames,
		sheetTools,
		layout.NewSpacer(),
	)
}
