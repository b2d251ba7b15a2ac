// Package layer owns the ordered layers, their render targets, z-order,
// repaint and hit search.
package layer

import (
	"log/slog"
	"math"

	"XSheetInk/internal/geom"
	"XSheetInk/internal/logging"
	"XSheetInk/internal/object"

	"github.com/gogpu/gg"
)

const selectionColor = "#3399ff"

// Layer is a named, independently visible list of objects painted onto its
// own surface. Later objects paint over earlier ones.
type Layer struct {
	Name    string
	Objects []object.Object
	Visible bool

	target *gg.Context
}

// Target returns the layer's surface.
func (l *Layer) Target() *gg.Context { return l.target }

func (l *Layer) indexOf(o object.Object) int {
	for i, obj := range l.Objects {
		if obj == o {
			return i
		}
	}
	return -1
}

// Hit is the result of FindObjectAt.
type Hit struct {
	Object object.Object
	Layer  int
}

// Store is the layer stack. It is not safe for concurrent use.
type Store struct {
	layers []*Layer
	active int

	selected    object.Object
	selectedIdx int

	mapper *geom.Mapper
	fonts  *object.Fonts
	bounds geom.Rect
	offset geom.Point
	saved  *geom.Rect

	// OnRepaint, when set, is called after a layer's surface is repainted.
	OnRepaint func(index int)

	log *slog.Logger
}

// NewStore returns a store with the two default layers, sized to bounds.
func NewStore(bounds geom.Rect, mapper *geom.Mapper, fonts *object.Fonts) *Store {
	s := &Store{
		mapper: mapper,
		fonts:  fonts,
		bounds: bounds,
		log:    logging.For("layers"),
	}
	s.AddLayer("Layer 1")
	s.AddLayer("Layer 2")
	return s
}

func surfaceSize(r geom.Rect) (int, int) {
	w := int(math.Ceil(r.Width))
	h := int(math.Ceil(r.Height))
	return max(w, 1), max(h, 1)
}

// AddLayer appends an empty visible layer and returns its index.
func (s *Store) AddLayer(name string) int {
	w, h := surfaceSize(s.bounds)
	s.layers = append(s.layers, &Layer{Name: name, Visible: true, target: gg.NewContext(w, h)})
	idx := len(s.layers) - 1
	s.log.Debug("layer added", "index", idx, "name", name)
	return idx
}

// Len returns the number of layers.
func (s *Store) Len() int { return len(s.layers) }

// Layer returns the layer at i, or nil when i is out of range.
func (s *Store) Layer(i int) *Layer {
	if i < 0 || i >= len(s.layers) {
		return nil
	}
	return s.layers[i]
}

// Layers returns the layers in index order. The slice is shared.
func (s *Store) Layers() []*Layer { return s.layers }

// ActiveIndex returns the interaction target layer.
func (s *Store) ActiveIndex() int { return s.active }

// Active returns the interaction target layer.
func (s *Store) Active() *Layer { return s.layers[s.active] }

// SetActiveLayer changes the interaction target. Out-of-range indices, as
// can arrive from state saved with a different layer count, are ignored.
func (s *Store) SetActiveLayer(i int) bool {
	if s.Layer(i) == nil {
		s.log.Warn("ignoring stale layer index", "index", i, "layers", len(s.layers))
		return false
	}
	s.active = i
	return true
}

// SetLayerVisible shows or hides layer i and repaints it.
func (s *Store) SetLayerVisible(i int, visible bool) bool {
	l := s.Layer(i)
	if l == nil {
		return false
	}
	l.Visible = visible
	if !visible && s.selectedIdx == i {
		s.ClearSelection()
	}
	s.RedrawLayer(i)
	return true
}

// RenameLayer changes the name of layer i.
func (s *Store) RenameLayer(i int, name string) bool {
	l := s.Layer(i)
	if l == nil {
		return false
	}
	l.Name = name
	return true
}

// AddObject appends o to the active layer, on top of everything already
// there, and repaints that layer.
func (s *Store) AddObject(o object.Object) {
	l := s.Active()
	l.Objects = append(l.Objects, o)
	s.RedrawLayer(s.active)
}

// RemoveObject removes o from the given layer, or from the active layer
// when no index is passed, and reports whether it was there.
func (s *Store) RemoveObject(o object.Object, layerIndex ...int) bool {
	idx := s.active
	if len(layerIndex) > 0 {
		idx = layerIndex[0]
	}
	l := s.Layer(idx)
	if l == nil {
		return false
	}
	i := l.indexOf(o)
	if i < 0 {
		return false
	}
	l.Objects = append(l.Objects[:i], l.Objects[i+1:]...)
	if s.selected == o {
		s.selected = nil
	}
	s.RedrawLayer(idx)
	return true
}

// ClearLayer drops every object on layer i.
func (s *Store) ClearLayer(i int) {
	l := s.Layer(i)
	if l == nil {
		return
	}
	l.Objects = nil
	if s.selectedIdx == i {
		s.selected = nil
	}
	s.RedrawLayer(i)
}

// Clear drops every object on every layer.
func (s *Store) Clear() {
	for i := range s.layers {
		s.layers[i].Objects = nil
	}
	s.selected = nil
	s.RedrawAll()
}

// Select makes o, which lives on layer idx, the engine-wide selection.
func (s *Store) Select(o object.Object, idx int) {
	prev := s.selectedIdx
	hadPrev := s.selected != nil
	s.selected, s.selectedIdx = o, idx
	if hadPrev && prev != idx {
		s.RedrawLayer(prev)
	}
	s.RedrawLayer(idx)
}

// Selected returns the selected object and its layer, if any.
func (s *Store) Selected() (object.Object, int, bool) {
	return s.selected, s.selectedIdx, s.selected != nil
}

// ClearSelection drops the selection.
func (s *Store) ClearSelection() {
	if s.selected == nil {
		return
	}
	s.selected = nil
	s.RedrawLayer(s.selectedIdx)
}

// Canvas returns a drawing canvas for layer i, honouring the current
// anchor offset.
func (s *Store) Canvas(i int) *object.Canvas {
	return object.NewCanvas(s.layers[i].target, s.mapper, s.fonts).WithOffset(s.offset)
}

// RedrawLayer clears layer i's surface and replays every visible object in
// list order. A hidden layer is left blank.
func (s *Store) RedrawLayer(i int) {
	l := s.Layer(i)
	if l == nil {
		return
	}
	l.target.Clear()
	if l.Visible {
		cv := s.Canvas(i)
		for _, o := range l.Objects {
			if !o.Common().Visible {
				continue
			}
			o.Draw(cv)
		}
		if s.selected != nil && s.selectedIdx == i && s.selected.Common().Visible {
			drawSelection(cv, s.selected.Bounds())
		}
	}
	if s.OnRepaint != nil {
		s.OnRepaint(i)
	}
}

func drawSelection(cv *object.Canvas, r geom.Rect) {
	cv.StrokeStyle(selectionColor, 1, []float64{4, 3})
	cv.Rectangle(r.Inset(-3))
	cv.Stroke()
}

// RedrawAll repaints every layer in index order.
func (s *Store) RedrawAll() {
	for i := range s.layers {
		s.RedrawLayer(i)
	}
}

// FindObjectAt returns the topmost object under p. The active layer is
// searched first, then the remaining layers from the highest index down.
// Only visible layers and visible objects take part.
func (s *Store) FindObjectAt(p geom.Point) (Hit, bool) {
	if o := s.hitLayer(s.active, p); o != nil {
		return Hit{Object: o, Layer: s.active}, true
	}
	for i := len(s.layers) - 1; i >= 0; i-- {
		if i == s.active {
			continue
		}
		if o := s.hitLayer(i, p); o != nil {
			return Hit{Object: o, Layer: i}, true
		}
	}
	return Hit{}, false
}

func (s *Store) hitLayer(i int, p geom.Point) object.Object {
	l := s.Layer(i)
	if l == nil || !l.Visible {
		return nil
	}
	for j := len(l.Objects) - 1; j >= 0; j-- {
		o := l.Objects[j]
		if o.Common().Visible && o.ContainsPoint(p) {
			return o
		}
	}
	return nil
}

// Bounds returns the current surface bounds.
func (s *Store) Bounds() geom.Rect { return s.bounds }

// Relayout resizes every surface to bounds. Object coordinates are left
// as they are; connectors pick up the new grid on the next redraw.
func (s *Store) Relayout(bounds geom.Rect) {
	s.bounds = bounds
	w, h := surfaceSize(bounds)
	for i, l := range s.layers {
		if err := l.target.Resize(w, h); err != nil {
			s.log.Error("surface resize failed", "index", i, "err", err)
		}
	}
	s.log.Debug("relayout", "width", w, "height", h)
}

// Reanchor moves the surfaces into frame, the export document's coordinate
// frame given in screen space, until RestoreAnchor is called.
func (s *Store) Reanchor(frame geom.Rect) {
	if s.saved == nil {
		b := s.bounds
		s.saved = &b
	}
	var origin geom.Point
	if s.mapper != nil {
		origin = s.mapper.Origin()
	}
	s.offset = origin.Sub(frame.Origin())
	s.Relayout(frame)
}

// RestoreAnchor undoes Reanchor.
func (s *Store) RestoreAnchor() {
	if s.saved == nil {
		return
	}
	b := *s.saved
	s.saved = nil
	s.offset = geom.Point{}
	s.Relayout(b)
}

// Anchored reports whether the store is currently re-anchored.
func (s *Store) Anchored() bool { return s.saved != nil }
