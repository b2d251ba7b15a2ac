package tool

import (
	"XSheetInk/internal/geom"
)

type selectTool struct {
	base
	state state
	last  geom.Point
}

func newSelect() *selectTool {
	return &selectTool{base: newBase(KindSelect)}
}

func (t *selectTool) Deactivate() {
	t.state = idle
	if t.env != nil {
		t.env.Store.ClearSelection()
	}
}

func (t *selectTool) PointerDown(ev Event) {
	s := t.env.Store
	hit, ok := s.FindObjectAt(ev.Surface)
	if !ok {
		s.ClearSelection()
		return
	}
	s.Select(hit.Object, hit.Layer)
	t.state = dragging
	t.last = ev.Surface
}

func (t *selectTool) PointerMove(ev Event) {
	if t.state != dragging {
		return
	}
	obj, idx, ok := t.env.Store.Selected()
	if !ok {
		t.state = idle
		return
	}
	d := ev.Surface.Sub(t.last)
	t.last = ev.Surface
	obj.Move(d.X, d.Y)
	t.env.Store.RedrawLayer(idx)
}

func (t *selectTool) PointerUp(Event) {
	t.state = idle
}

func (t *selectTool) KeyDown(k Key, mods Modifiers) bool {
	s := t.env.Store
	obj, idx, ok := s.Selected()
	if !ok {
		return false
	}
	step := 1.0
	if mods&ModShift != 0 {
		step = 10
	}
	switch k {
	case KeyDelete, KeyBackspace:
		s.RemoveObject(obj, idx)
		t.log.Debug("selection deleted", "id", obj.Common().ID)
		return true
	case KeyLeft:
		obj.Move(-step, 0)
	case KeyRight:
		obj.Move(step, 0)
	case KeyUp:
		obj.Move(0, -step)
	case KeyDown:
		obj.Move(0, step)
	default:
		return false
	}
	s.RedrawLayer(idx)
	return true
}
