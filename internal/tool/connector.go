package tool

import (
	"XSheetInk/internal/object"
)

// connectorTool links two sheet cells. The gesture starts on a cell and
// ends on another; anything else leaves no connector behind.
type connectorTool struct {
	base
	g gesture
}

func newConnectorTool() *connectorTool {
	return &connectorTool{base: newBase(KindConnector)}
}

func (t *connectorTool) Activate(env *Env) bool {
	t.base.Activate(env)
	if env.grid() == nil {
		t.log.Warn("no sheet grid to connect")
		return false
	}
	return true
}

func (t *connectorTool) Deactivate() { t.g.rollback(t.env) }

func (t *connectorTool) PointerDown(ev Event) {
	frame, col, ok := t.env.grid().CellAt(ev.Screen)
	if !ok {
		return
	}
	set := t.env.Settings
	cell := object.CellAddress{Frame: frame, Column: col}
	c := object.NewConnector(cell, set.Color, set.StrokeWidth)
	c.DashPattern = set.dash()
	c.ArrowheadSize = set.ArrowheadSize
	t.g.begin(t.env, c, ev.Surface)
}

func (t *connectorTool) PointerMove(ev Event) {
	if t.g.state != drawing {
		return
	}
	if frame, col, ok := t.env.grid().CellAt(ev.Screen); ok {
		t.g.obj.(*object.Connector).End = object.CellAddress{Frame: frame, Column: col}
		t.env.Store.RedrawLayer(t.g.layer)
	}
}

func (t *connectorTool) PointerUp(ev Event) {
	if t.g.state != drawing {
		return
	}
	c := t.g.obj.(*object.Connector)
	frame, col, ok := t.env.grid().CellAt(ev.Screen)
	if ok {
		c.End = object.CellAddress{Frame: frame, Column: col}
	}
	if !ok || c.Degenerate() {
		t.g.rollback(t.env)
		t.log.Debug("connector discarded")
		return
	}
	t.env.Store.RedrawLayer(t.g.layer)
	t.g.end()
	t.log.Debug("connector committed", "id", c.ID, "from", c.Start, "to", c.End)
}
