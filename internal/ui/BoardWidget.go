package ui

import (
	"fmt"
	"image/color"
	"io"
	"log/slog"

	"XSheetInk/internal/engine"
	"XSheetInk/internal/geom"
	"XSheetInk/internal/logging"
	"XSheetInk/internal/persist"
	"XSheetInk/internal/tool"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// BoardWidget shows the exposure sheet with the annotation layers stacked
// on top and feeds pointer and key input to the engine.
type BoardWidget struct {
	widget.BaseWidget
	engine    *engine.Engine
	sheet     *sheetView
	layers    []*canvas.Image
	shift     bool
	last      fyne.Position
	statusBar *widget.Label

	// OnLayersChanged runs when layers are added, renamed or replaced.
	OnLayersChanged func()

	log *slog.Logger
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ fyne.Focusable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Keyable = (*BoardWidget)(nil)

// NewBoardWidget wraps e, whose grid must be g.
func NewBoardWidget(e *engine.Engine, g *geom.UniformGrid) *BoardWidget {
	b := &BoardWidget{
		engine:    e,
		sheet:     newSheetView(g),
		statusBar: widget.NewLabel("Ready"),
		log:       logging.For("ui"),
	}
	b.ExtendBaseWidget(b)
	e.OnRepaint(b.repaintLayer)
	b.syncLayers()
	e.RedrawAll()
	return b
}

// Engine returns the engine behind the board.
func (b *BoardWidget) Engine() *engine.Engine { return b.engine }

// StatusBar returns the label the board reports into.
func (b *BoardWidget) StatusBar() *widget.Label { return b.statusBar }

func (b *BoardWidget) SetStatus(text string) {
	b.statusBar.SetText(text)
}

// syncLayers keeps one image per engine layer.
func (b *BoardWidget) syncLayers() {
	layers := b.engine.Store().Layers()
	for len(b.layers) < len(layers) {
		img := canvas.NewImageFromImage(layers[len(b.layers)].Target().Image())
		img.ScaleMode = canvas.ImageScalePixels
		b.layers = append(b.layers, img)
	}
	b.layers = b.layers[:len(layers)]
}

func (b *BoardWidget) repaintLayer(i int) {
	if i >= len(b.layers) {
		b.syncLayers()
		b.Refresh()
	}
	if i < 0 || i >= len(b.layers) {
		return
	}
	img := b.layers[i]
	img.Image = b.engine.Store().Layer(i).Target().Image()
	img.Refresh()
}

func toPoint(p fyne.Position) geom.Point {
	return geom.Pt(float64(p.X), float64(p.Y))
}

func (b *BoardWidget) mods(m fyne.KeyModifier) tool.Modifiers {
	var out tool.Modifiers
	if b.shift || m&fyne.KeyModifierShift != 0 {
		out |= tool.ModShift
	}
	if m&fyne.KeyModifierControl != 0 {
		out |= tool.ModControl
	}
	if m&fyne.KeyModifierAlt != 0 {
		out |= tool.ModAlt
	}
	return out
}

// SetTool switches the active tool.
func (b *BoardWidget) SetTool(k tool.Kind) {
	if err := b.engine.SetTool(k); err != nil {
		b.log.Warn("tool switch failed", "tool", string(k), "err", err)
		return
	}
	if b.engine.Tool() == k {
		b.SetStatus("Tool: " + string(k))
	}
}

// SetFrames changes the sheet length and relays the engine out.
func (b *BoardWidget) SetFrames(n int) {
	if n < 1 {
		n = 1
	}
	b.sheet.grid.SetFrames(n)
	b.sheet.rebuild()
	b.engine.GridChanged()
	b.Refresh()
	b.SetStatus(fmt.Sprintf("%d frames", n))
}

// Frames returns the current sheet length.
func (b *BoardWidget) Frames() int { return b.sheet.grid.Frames() }

// AddLayer appends an empty layer and makes it active.
func (b *BoardWidget) AddLayer() int {
	s := b.engine.Store()
	i := s.AddLayer(fmt.Sprintf("Layer %d", s.Len()+1))
	s.SetActiveLayer(i)
	b.syncLayers()
	b.Refresh()
	b.layersChanged()
	return i
}

func (b *BoardWidget) layersChanged() {
	if b.OnLayersChanged != nil {
		b.OnLayersChanged()
	}
}

// Clear drops every annotation.
func (b *BoardWidget) Clear() {
	b.engine.Clear()
	b.SetStatus("Cleared")
}

// Save writes the annotation state as JSON.
func (b *BoardWidget) Save(w io.Writer) error {
	return persist.Encode(w, b.engine.ExportState())
}

// Load replaces the annotation state with the JSON in r.
func (b *BoardWidget) Load(r io.Reader) (persist.Report, error) {
	st, err := persist.Decode(r)
	if err != nil {
		return persist.Report{}, err
	}
	rep := b.engine.ImportState(st)
	b.syncLayers()
	b.engine.RedrawAll()
	b.Refresh()
	b.layersChanged()
	return rep, nil
}

func (b *BoardWidget) SaveToFile(writer fyne.URIWriteCloser) {
	defer func() {
		if err := writer.Close(); err != nil {
			b.log.Error("closing writer", "err", err)
		}
	}()

	if err := b.Save(writer); err != nil {
		b.log.Error("save failed", "uri", writer.URI().String(), "err", err)
		b.SetStatus("Error saving file")
		return
	}
	b.SetStatus("Saved " + writer.URI().Name())
	b.log.Info("saved", "uri", writer.URI().String())
}

func (b *BoardWidget) LoadFromFile(reader fyne.URIReadCloser) {
	defer func() {
		if err := reader.Close(); err != nil {
			b.log.Error("closing reader", "err", err)
		}
	}()

	b.SetStatus("Loading file...")
	rep, err := b.Load(reader)
	if err != nil {
		b.log.Error("load failed", "uri", reader.URI().String(), "err", err)
		b.SetStatus("Error parsing file - invalid format")
		return
	}
	msg := fmt.Sprintf("Loaded %d objects", rep.Imported)
	if rep.Skipped > 0 {
		msg += fmt.Sprintf(" (%d skipped)", rep.Skipped)
	}
	b.SetStatus(msg)
}

func (b *BoardWidget) focus() {
	if c := fyne.CurrentApp().Driver().CanvasForObject(b); c != nil {
		c.Focus(b)
	}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.focus()
	b.last = e.Position
	b.engine.PointerDown(toPoint(e.Position), b.mods(e.Modifier))
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.engine.PointerUp(toPoint(e.Position), b.mods(e.Modifier))
}

// Dragged keeps arriving after the pointer leaves the board, which gives
// the tools input capture for free.
func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.last = e.Position
	b.engine.PointerMove(toPoint(e.Position), b.mods(0))
}

func (b *BoardWidget) DragEnd() {
	b.engine.PointerUp(toPoint(b.last), b.mods(0))
}

func (b *BoardWidget) FocusGained()   {}
func (b *BoardWidget) FocusLost()     { b.shift = false }
func (b *BoardWidget) TypedRune(rune) {}

func (b *BoardWidget) TypedKey(e *fyne.KeyEvent) {
	b.engine.KeyDown(tool.Key(e.Name), b.mods(0))
}

func (b *BoardWidget) KeyDown(e *fyne.KeyEvent) {
	if e.Name == desktop.KeyShiftLeft || e.Name == desktop.KeyShiftRight {
		b.shift = true
	}
}

func (b *BoardWidget) KeyUp(e *fyne.KeyEvent) {
	if e.Name == desktop.KeyShiftLeft || e.Name == desktop.KeyShiftRight {
		b.shift = false
	}
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	objects := []fyne.CanvasObject{r.background}
	objects = append(objects, r.board.sheet.objects()...)
	for _, img := range r.board.layers {
		objects = append(objects, img)
	}
	return objects
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.board.sheet.layout()

	origin := r.board.engine.Mapper().Origin()
	bounds := r.board.engine.Store().Bounds()
	for _, img := range r.board.layers {
		img.Move(fyne.NewPos(float32(origin.X), float32(origin.Y)))
		img.Resize(fyne.NewSize(float32(bounds.Width), float32(bounds.Height)))
	}
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	b := r.board.sheet.grid.Bounds()
	return fyne.NewSize(float32(b.X+b.Width+sheetOrigin.X), float32(b.Y+b.Height+sheetOrigin.Y))
}

func (r *boardWidgetRenderer) Refresh() {
	r.Layout(r.board.Size())
	r.board.sheet.refresh()
	r.background.Refresh()
	canvas.Refresh(r.board)
}

func (r *boardWidgetRenderer) Destroy() {}
