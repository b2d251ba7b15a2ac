package tool

import (
	"testing"
	"time"

	"XSheetInk/internal/geom"
	"XSheetInk/internal/layer"
	"XSheetInk/internal/object"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/require"
)

type fakePrompter struct {
	text   func(TextParams, bool)
	symbol func(SymbolParams, bool)
	image  func(ImageParams, bool)

	textDefaults TextParams
}

func (f *fakePrompter) PromptText(d TextParams, done func(TextParams, bool)) {
	f.textDefaults = d
	f.text = done
}

func (f *fakePrompter) PromptSymbol(_ SymbolParams, done func(SymbolParams, bool)) {
	f.symbol = done
}

func (f *fakePrompter) PromptImage(_ ImageParams, done func(ImageParams, bool)) {
	f.image = done
}

func newEnv(g geom.Grid) *Env {
	m := geom.NewMapper(g)
	bounds := geom.Rect{Width: 200, Height: 100}
	if g != nil {
		bounds = g.Bounds()
	}
	set := DefaultSettings()
	return &Env{
		Store:    layer.NewStore(bounds, m, object.NewFonts()),
		Settings: &set,
		Mapper:   m,
	}
}

func at(env *Env, x, y float64) Event {
	p := geom.Pt(x, y)
	return Event{Screen: p, Surface: env.Mapper.ToSurfaceSpace(p)}
}

func drag(r *Registry, from, to Event, via ...Event) {
	r.PointerDown(from)
	for _, ev := range via {
		r.PointerMove(ev)
	}
	r.PointerMove(to)
	r.PointerUp(to)
}

func objects(env *Env) []object.Object {
	return env.Store.Active().Objects
}

func TestActivateUnknownTool(t *testing.T) {
	r := NewRegistry(newEnv(nil))
	require.Error(t, r.Activate("lasso"))
	require.Nil(t, r.Active())
}

func TestSwitchingToolsRollsBackGesture(t *testing.T) {
	env := newEnv(nil)
	r := NewRegistry(env)
	require.NoError(t, r.Activate(KindRectangle))

	r.PointerDown(at(env, 10, 10))
	r.PointerMove(at(env, 30, 30))
	require.Len(t, objects(env), 1)

	require.NoError(t, r.Activate(KindPen))
	require.Empty(t, objects(env))
	require.False(t, r.Captured())
	require.Equal(t, KindPen, r.Active().Kind())
}

func TestFinishedGestureSurvivesSwitch(t *testing.T) {
	env := newEnv(nil)
	r := NewRegistry(env)
	require.NoError(t, r.Activate(KindEllipse))
	drag(r, at(env, 50, 50), at(env, 70, 60))
	require.NoError(t, r.Activate(KindSelect))

	require.Len(t, objects(env), 1)
	e := objects(env)[0].(*object.Ellipse)
	require.Equal(t, 20.0, e.RadiusX)
	require.Equal(t, 10.0, e.RadiusY)
}

func TestRectangleNormalizes(t *testing.T) {
	env := newEnv(nil)
	r := NewRegistry(env)
	require.NoError(t, r.Activate(KindRectangle))
	drag(r, at(env, 50, 50), at(env, 10, 10), at(env, 60, 70))

	require.Len(t, objects(env), 1)
	rect := objects(env)[0].(*object.Rectangle)
	require.Equal(t, geom.Rect{X: 10, Y: 10, Width: 40, Height: 40}, rect.Bounds())
}

func TestShapesKeepZeroSizeResult(t *testing.T) {
	for _, k := range []Kind{KindLine, KindArrow, KindRectangle, KindEllipse} {
		t.Run(string(k), func(t *testing.T) {
			env := newEnv(nil)
			r := NewRegistry(env)
			require.NoError(t, r.Activate(k))
			r.PointerDown(at(env, 20, 20))
			r.PointerUp(at(env, 20, 20))
			require.Len(t, objects(env), 1)
		})
	}
}

func TestLineUsesSettingsAtGestureTime(t *testing.T) {
	env := newEnv(nil)
	r := NewRegistry(env)
	require.NoError(t, r.Activate(KindLine))

	env.Settings.Color = "#ff0000"
	env.Settings.DashPattern = []float64{4, 2}
	drag(r, at(env, 0, 0), at(env, 100, 0))
	env.Settings.Color = "#00ff00"
	drag(r, at(env, 0, 10), at(env, 100, 10))

	first := objects(env)[0].(*object.Line)
	second := objects(env)[1].(*object.Line)
	require.Equal(t, "#ff0000", first.Color)
	require.Equal(t, "#00ff00", second.Color)
	require.Equal(t, []float64{4, 2}, first.DashPattern)
	require.Equal(t, geom.Pt(100, 0), first.End())

	env.Settings.DashPattern[0] = 9
	require.Equal(t, []float64{4, 2}, first.DashPattern, "dash copied, not shared")
}

func TestPenCommitsOnPress(t *testing.T) {
	env := newEnv(nil)
	r := NewRegistry(env)
	require.NoError(t, r.Activate(KindPen))

	r.PointerDown(at(env, 0, 0))
	require.Len(t, objects(env), 1)
	r.PointerMove(at(env, 5, 5))
	r.PointerMove(at(env, 250, 10))
	r.PointerUp(at(env, 250, 10))

	path := objects(env)[0].(*object.Path)
	require.Equal(t, []geom.Point{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 250, Y: 10}}, path.Points)
	require.True(t, path.Smoothing)

	r.PointerDown(at(env, 1, 1))
	r.PointerUp(at(env, 1, 1))
	require.Len(t, objects(env), 2, "single point strokes are kept")
}

func TestMovesIgnoredWithoutPress(t *testing.T) {
	env := newEnv(nil)
	r := NewRegistry(env)
	require.NoError(t, r.Activate(KindPen))
	r.PointerMove(at(env, 5, 5))
	r.PointerUp(at(env, 5, 5))
	require.Empty(t, objects(env))
}

func sheet() *geom.UniformGrid {
	return geom.NewUniformGrid(geom.Pt(100, 50), 10, 3, 50, 20)
}

func TestConnectorBetweenCells(t *testing.T) {
	env := newEnv(sheet())
	r := NewRegistry(env)
	require.NoError(t, r.Activate(KindConnector))

	drag(r, at(env, 110, 55), at(env, 190, 115), at(env, 160, 80))
	require.Len(t, objects(env), 1)
	c := objects(env)[0].(*object.Connector)
	require.Equal(t, object.CellAddress{Frame: 1, Column: 0}, c.Start)
	require.Equal(t, object.CellAddress{Frame: 4, Column: 1}, c.End)
	require.Equal(t, geom.Point{}, c.Anchor(), "no pixel position of its own")

	a, b, ok := c.Endpoints()
	require.True(t, ok)
	require.Equal(t, geom.Pt(25, 10), a)
	require.Equal(t, geom.Pt(75, 70), b)
}

func TestConnectorRecordSurvivesReflow(t *testing.T) {
	g := sheet()
	env := newEnv(g)
	r := NewRegistry(env)
	require.NoError(t, r.Activate(KindConnector))
	drag(r, at(env, 110, 55), at(env, 190, 115))
	c := objects(env)[0].(*object.Connector)

	rec := c.Serialize()
	require.Equal(t, 0.0, rec["x"])
	require.Equal(t, 0.0, rec["y"])

	g.SetCellSize(100, 40)
	env.Mapper.Align()
	require.True(t, c.Resolve(env.Mapper))
	a, _, _ := c.Endpoints()
	require.Equal(t, geom.Pt(50, 20), a)
	require.Equal(t, rec, c.Serialize())
}

func TestConnectorDiscardsDegenerateGesture(t *testing.T) {
	env := newEnv(sheet())
	r := NewRegistry(env)
	require.NoError(t, r.Activate(KindConnector))

	r.PointerDown(at(env, 110, 55))
	require.Len(t, objects(env), 1)
	r.PointerUp(at(env, 140, 65))
	require.Empty(t, objects(env), "same cell")

	drag(r, at(env, 110, 55), at(env, 900, 900))
	require.Empty(t, objects(env), "released off the sheet")

	r.PointerDown(at(env, 10, 10))
	r.PointerUp(at(env, 110, 75))
	require.Empty(t, objects(env), "pressed off the sheet")
}

func TestConnectorWithoutGridIsInert(t *testing.T) {
	env := newEnv(nil)
	r := NewRegistry(env)
	require.NoError(t, r.Activate(KindConnector))
	require.IsType(t, &inert{}, r.Active())
	require.Equal(t, KindConnector, r.Active().Kind())

	drag(r, at(env, 10, 10), at(env, 50, 50))
	require.Empty(t, objects(env))
}

func TestSelectDragsHitObject(t *testing.T) {
	env := newEnv(nil)
	rect := object.NewRectangle(geom.Pt(10, 10), "#000000", 1, true, "#cccccc")
	rect.Width, rect.Height = 40, 40
	env.Store.AddObject(rect)

	r := NewRegistry(env)
	require.NoError(t, r.Activate(KindSelect))
	drag(r, at(env, 20, 20), at(env, 25, 30), at(env, 22, 25))

	require.Equal(t, geom.Pt(15, 20), rect.Anchor())
	sel, idx, ok := env.Store.Selected()
	require.True(t, ok)
	require.Same(t, rect, sel)
	require.Equal(t, 0, idx)

	r.PointerDown(at(env, 190, 90))
	r.PointerUp(at(env, 190, 90))
	_, _, ok = env.Store.Selected()
	require.False(t, ok, "pressing empty space clears the selection")
}

func TestSelectKeyboard(t *testing.T) {
	env := newEnv(nil)
	sym := object.NewSymbol(geom.Pt(50, 50), object.SymbolImpact, 1, "#000000", 1)
	env.Store.AddObject(sym)

	r := NewRegistry(env)
	require.NoError(t, r.Activate(KindSelect))
	require.False(t, r.KeyDown(KeyRight, 0), "nothing selected")

	r.PointerDown(at(env, 50, 50))
	r.PointerUp(at(env, 50, 50))

	require.True(t, r.KeyDown(KeyRight, 0))
	require.True(t, r.KeyDown(KeyDown, ModShift))
	require.True(t, r.KeyDown(KeyLeft, 0))
	require.True(t, r.KeyDown(KeyUp, 0))
	require.Equal(t, geom.Pt(50, 59), sym.Anchor())
	require.False(t, r.KeyDown("a", 0))

	require.True(t, r.KeyDown(KeyBackspace, 0))
	require.Empty(t, objects(env))
	_, _, ok := env.Store.Selected()
	require.False(t, ok)
}

func TestDeactivatingSelectClearsSelection(t *testing.T) {
	env := newEnv(nil)
	sym := object.NewSymbol(geom.Pt(50, 50), object.SymbolHold, 1, "#000000", 1)
	env.Store.AddObject(sym)

	r := NewRegistry(env)
	require.NoError(t, r.Activate(KindSelect))
	r.PointerDown(at(env, 50, 50))
	r.PointerUp(at(env, 50, 50))
	r.Deactivate()

	_, _, ok := env.Store.Selected()
	require.False(t, ok)
	require.Len(t, objects(env), 1)
}

func TestEraserRemovesTopmostHit(t *testing.T) {
	env := newEnv(nil)
	under := object.NewRectangle(geom.Pt(0, 0), "#000000", 1, true, "#000000")
	under.Width, under.Height = 50, 50
	over := object.NewRectangle(geom.Pt(20, 20), "#000000", 1, true, "#000000")
	over.Width, over.Height = 50, 50
	env.Store.AddObject(under)
	env.Store.AddObject(over)

	r := NewRegistry(env)
	require.NoError(t, r.Activate(KindEraser))
	r.PointerDown(at(env, 30, 30))
	r.PointerUp(at(env, 30, 30))
	require.Equal(t, []object.Object{under}, objects(env))

	r.PointerDown(at(env, 150, 90))
	r.PointerUp(at(env, 150, 90))
	require.Len(t, objects(env), 1)
}

func TestPlaceToolsNeedPrompter(t *testing.T) {
	for _, k := range []Kind{KindText, KindSymbol, KindImage} {
		env := newEnv(nil)
		r := NewRegistry(env)
		require.NoError(t, r.Activate(k))
		require.IsType(t, &inert{}, r.Active(), k)
	}
}

func TestTextPrompt(t *testing.T) {
	env := newEnv(nil)
	fp := &fakePrompter{}
	env.Prompt = fp
	r := NewRegistry(env)
	require.NoError(t, r.Activate(KindText))

	r.PointerDown(at(env, 40, 30))
	r.PointerUp(at(env, 40, 30))
	require.Empty(t, objects(env), "nothing until confirmed")
	require.Equal(t, TextParams{FontSize: 16, Alignment: object.AlignLeft}, fp.textDefaults)

	fp.text(TextParams{Text: "hold 3", FontSize: 20, Alignment: object.AlignCenter}, true)
	require.Len(t, objects(env), 1)
	txt := objects(env)[0].(*object.Text)
	require.Equal(t, "hold 3", txt.Text)
	require.Equal(t, 20.0, txt.FontSize)
	require.Equal(t, object.AlignCenter, txt.Alignment)
	require.Equal(t, geom.Pt(40, 30), txt.Anchor())

	r.PointerDown(at(env, 10, 10))
	fp.text(TextParams{Text: "x"}, false)
	r.PointerDown(at(env, 10, 10))
	fp.text(TextParams{Text: "   "}, true)
	require.Len(t, objects(env), 1, "cancel and blank commit nothing")
}

func TestLateConfirmIgnored(t *testing.T) {
	env := newEnv(nil)
	fp := &fakePrompter{}
	env.Prompt = fp
	r := NewRegistry(env)
	require.NoError(t, r.Activate(KindSymbol))

	r.PointerDown(at(env, 40, 30))
	pending := fp.symbol
	require.NoError(t, r.Activate(KindPen))
	pending(SymbolParams{Kind: object.SymbolImpact, Scale: 2}, true)
	require.Empty(t, objects(env))

	require.NoError(t, r.Activate(KindSymbol))
	r.PointerDown(at(env, 40, 30))
	fp.symbol(SymbolParams{Kind: "nonsense", Scale: 0}, true)
	require.Len(t, objects(env), 1)
	sym := objects(env)[0].(*object.Symbol)
	require.Equal(t, object.SymbolDefault, sym.SymbolKind)
	require.Equal(t, 1.0, sym.Scale)
}

func TestImagePromptLoadsAsync(t *testing.T) {
	env := newEnv(nil)
	fp := &fakePrompter{}
	env.Prompt = fp
	redrawn := make(chan struct{}, 1)
	env.RequestRedraw = func() { redrawn <- struct{}{} }
	env.LoadImage = func(src string) (*gg.ImageBuf, error) {
		return gg.NewImageBuf(4, 4, gg.FormatRGBA8)
	}
	r := NewRegistry(env)
	require.NoError(t, r.Activate(KindImage))

	r.PointerDown(at(env, 5, 5))
	fp.image(ImageParams{Src: "ref.png"}, true)
	require.Len(t, objects(env), 1)
	im := objects(env)[0].(*object.Image)
	require.Equal(t, float64(DefaultImageWidth), im.Width)
	require.Equal(t, float64(DefaultImageHeight), im.Height)

	select {
	case <-redrawn:
	case <-time.After(5 * time.Second):
		t.Fatal("image load never requested a redraw")
	}
	require.True(t, im.Loaded())
}
