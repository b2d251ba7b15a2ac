package ui

import (
	"image/color"
	"math"
	"strconv"

	"XSheetInk/internal/config"
	"XSheetInk/internal/geom"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// sheetOrigin leaves room left of the sheet for the frame numbers.
var sheetOrigin = geom.Pt(36, 12)

var (
	paperColor  = color.NRGBA{R: 250, G: 249, B: 244, A: 255}
	gridColor   = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	secondColor = color.NRGBA{R: 120, G: 120, B: 140, A: 255}
	labelColor  = color.NRGBA{R: 110, G: 110, B: 110, A: 255}
)

// framesPerBeat is how often a heavier rule is drawn across the sheet.
const framesPerBeat = 8

func newSheet(c config.SheetConfig) *geom.UniformGrid {
	return geom.NewUniformGrid(sheetOrigin, c.Frames, c.Columns, c.CellWidth, c.CellHeight)
}

// sheetView paints the exposure sheet under the annotation layers.
type sheetView struct {
	grid   *geom.UniformGrid
	raster *canvas.Raster
	labels []fyne.CanvasObject
}

func newSheetView(g *geom.UniformGrid) *sheetView {
	s := &sheetView{grid: g}
	s.raster = canvas.NewRasterWithPixels(s.pixel)
	s.rebuild()
	return s
}

func (s *sheetView) pixel(x, y, w, h int) color.Color {
	b := s.grid.Bounds()
	if w == 0 || h == 0 || s.grid.Frames() == 0 || s.grid.Columns() == 0 {
		return paperColor
	}
	fx := float64(x) * b.Width / float64(w)
	fy := float64(y) * b.Height / float64(h)
	cw := b.Width / float64(s.grid.Columns())
	ch := b.Height / float64(s.grid.Frames())

	if math.Mod(fy, ch*framesPerBeat) < 1.5 {
		return secondColor
	}
	if math.Mod(fx, cw) < 1 || math.Mod(fy, ch) < 1 {
		return gridColor
	}
	return paperColor
}

// rebuild regenerates the frame numbers after the sheet changed length.
func (s *sheetView) rebuild() {
	s.labels = s.labels[:0]
	for f := 1; f <= s.grid.Frames(); f++ {
		r, ok := s.grid.CellRect(f, 0)
		if !ok {
			break
		}
		t := canvas.NewText(strconv.Itoa(f), labelColor)
		t.TextSize = 9
		t.Alignment = fyne.TextAlignTrailing
		t.Move(fyne.NewPos(0, float32(r.Y)))
		t.Resize(fyne.NewSize(float32(r.X)-4, float32(r.Height)))
		s.labels = append(s.labels, t)
	}
}

func (s *sheetView) layout() {
	b := s.grid.Bounds()
	s.raster.Move(fyne.NewPos(float32(b.X), float32(b.Y)))
	s.raster.Resize(fyne.NewSize(float32(b.Width), float32(b.Height)))
}

func (s *sheetView) objects() []fyne.CanvasObject {
	out := make([]fyne.CanvasObject, 0, len(s.labels)+1)
	out = append(out, s.raster)
	return append(out, s.labels...)
}

func (s *sheetView) refresh() {
	s.layout()
	s.raster.Refresh()
	for _, l := range s.labels {
		l.Refresh()
	}
}
