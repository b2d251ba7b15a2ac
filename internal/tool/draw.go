package tool

import (
	"math"

	"XSheetInk/internal/geom"
	"XSheetInk/internal/object"
)

// gesture tracks the object a drawing tool is building. The object goes
// into the layer as soon as the gesture starts so it previews live; until
// the gesture ends it counts as uncommitted and is rolled back on
// Deactivate.
type gesture struct {
	state state
	obj   object.Object
	layer int
	start geom.Point
}

func (g *gesture) begin(env *Env, obj object.Object, start geom.Point) {
	env.Store.AddObject(obj)
	g.state = drawing
	g.obj = obj
	g.layer = env.Store.ActiveIndex()
	g.start = start
}

func (g *gesture) end() object.Object {
	obj := g.obj
	g.state = idle
	g.obj = nil
	return obj
}

func (g *gesture) rollback(env *Env) {
	if g.state == drawing && g.obj != nil && env != nil {
		env.Store.RemoveObject(g.obj, g.layer)
	}
	g.end()
}

// penTool draws freehand paths.
type penTool struct {
	base
	g gesture
}

func newPen() *penTool { return &penTool{base: newBase(KindPen)} }

func (t *penTool) Deactivate() { t.g.rollback(t.env) }

func (t *penTool) PointerDown(ev Event) {
	set := t.env.Settings
	path := object.NewPath(ev.Surface, set.Color, set.StrokeWidth, set.Smoothing)
	t.g.begin(t.env, path, ev.Surface)
}

func (t *penTool) PointerMove(ev Event) {
	if t.g.state != drawing {
		return
	}
	t.g.obj.(*object.Path).Append(ev.Surface)
	t.env.Store.RedrawLayer(t.g.layer)
}

func (t *penTool) PointerUp(Event) {
	if t.g.state != drawing {
		return
	}
	path := t.g.end().(*object.Path)
	t.log.Debug("path committed", "id", path.ID, "points", len(path.Points))
}

// shapeTool covers line, arrow, rectangle and ellipse: a zero-size object
// at the press point whose far corner follows the pointer. The result is
// kept even when it ends up zero-sized.
type shapeTool struct {
	base
	g      gesture
	create func(p geom.Point, set *Settings) object.Object
	update func(obj object.Object, start, p geom.Point)
}

func (t *shapeTool) Deactivate() { t.g.rollback(t.env) }

func (t *shapeTool) PointerDown(ev Event) {
	t.g.begin(t.env, t.create(ev.Surface, t.env.Settings), ev.Surface)
}

func (t *shapeTool) PointerMove(ev Event) {
	if t.g.state != drawing {
		return
	}
	t.update(t.g.obj, t.g.start, ev.Surface)
	t.env.Store.RedrawLayer(t.g.layer)
}

func (t *shapeTool) PointerUp(ev Event) {
	if t.g.state != drawing {
		return
	}
	t.update(t.g.obj, t.g.start, ev.Surface)
	t.env.Store.RedrawLayer(t.g.layer)
	obj := t.g.end()
	t.log.Debug("shape committed", "type", string(obj.Type()), "id", obj.Common().ID)
}

func newLineTool() *shapeTool {
	return &shapeTool{
		base: newBase(KindLine),
		create: func(p geom.Point, set *Settings) object.Object {
			l := object.NewLine(p, set.Color, set.StrokeWidth)
			l.DashPattern = set.dash()
			return l
		},
		update: func(obj object.Object, _, p geom.Point) {
			obj.(*object.Line).SetEnd(p)
		},
	}
}

func newArrowTool() *shapeTool {
	return &shapeTool{
		base: newBase(KindArrow),
		create: func(p geom.Point, set *Settings) object.Object {
			a := object.NewArrow(p, set.Color, set.StrokeWidth, set.ArrowheadSize)
			a.DashPattern = set.dash()
			return a
		},
		update: func(obj object.Object, _, p geom.Point) {
			obj.(*object.Arrow).SetEnd(p)
		},
	}
}

func newRectangleTool() *shapeTool {
	return &shapeTool{
		base: newBase(KindRectangle),
		create: func(p geom.Point, set *Settings) object.Object {
			return object.NewRectangle(p, set.Color, set.StrokeWidth, set.Fill, set.FillColor)
		},
		update: func(obj object.Object, start, p geom.Point) {
			obj.(*object.Rectangle).SetCorners(start, p)
		},
	}
}

func newEllipseTool() *shapeTool {
	return &shapeTool{
		base: newBase(KindEllipse),
		create: func(p geom.Point, set *Settings) object.Object {
			return object.NewEllipse(p, set.Color, set.StrokeWidth, set.Fill, set.FillColor)
		},
		update: func(obj object.Object, start, p geom.Point) {
			e := obj.(*object.Ellipse)
			e.RadiusX = math.Abs(p.X - start.X)
			e.RadiusY = math.Abs(p.Y - start.Y)
		},
	}
}

// eraserTool removes the first object under a press.
type eraserTool struct{ base }

func newEraser() *eraserTool { return &eraserTool{base: newBase(KindEraser)} }

func (t *eraserTool) PointerDown(ev Event) {
	hit, ok := t.env.Store.FindObjectAt(ev.Surface)
	if !ok {
		return
	}
	t.env.Store.RemoveObject(hit.Object, hit.Layer)
	t.log.Debug("object erased", "id", hit.Object.Common().ID, "layer", hit.Layer)
}
