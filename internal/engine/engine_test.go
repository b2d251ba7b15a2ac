package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"XSheetInk/internal/geom"
	"XSheetInk/internal/object"
	"XSheetInk/internal/persist"
	"XSheetInk/internal/tool"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/require"
)

func newSheet() *geom.UniformGrid {
	return geom.NewUniformGrid(geom.Pt(0, 0), 10, 2, 50, 20)
}

func gesture(e *Engine, from, to geom.Point) {
	e.PointerDown(from, 0)
	e.PointerMove(to, 0)
	e.PointerUp(to, 0)
}

func TestNewEngineDefaults(t *testing.T) {
	e := New(nil)
	require.Equal(t, tool.KindSelect, e.Tool())
	require.Equal(t, 2, e.Store().Len())
	require.Equal(t, DefaultSurface, e.Store().Bounds())
	require.Error(t, e.SetTool("lasso"))

	require.NoError(t, e.SetTool(tool.KindConnector))
	gesture(e, geom.Pt(10, 10), geom.Pt(90, 90))
	require.Empty(t, e.Store().Active().Objects, "connector is inert without a grid")
}

func TestRelayoutMovesConnectorsNotInk(t *testing.T) {
	g := newSheet()
	e := New(g)

	require.NoError(t, e.SetTool(tool.KindPen))
	gesture(e, geom.Pt(5, 5), geom.Pt(40, 30))
	require.NoError(t, e.SetTool(tool.KindConnector))
	gesture(e, geom.Pt(25, 10), geom.Pt(75, 90))

	objs := e.Store().Active().Objects
	require.Len(t, objs, 2)
	path := objs[0].(*object.Path)
	conn := objs[1].(*object.Connector)
	before := append([]geom.Point(nil), path.Points...)

	a, b, ok := conn.Endpoints()
	require.True(t, ok)
	require.Equal(t, geom.Pt(25, 10), a)
	require.Equal(t, geom.Pt(75, 90), b)

	g.SetCellSize(100, 40)
	e.GridChanged()

	a, b, ok = conn.Endpoints()
	require.True(t, ok)
	require.Equal(t, geom.Pt(50, 20), a)
	require.Equal(t, geom.Pt(150, 180), b)
	require.Equal(t, before, path.Points)
	require.Equal(t, geom.Rect{Width: 200, Height: 400}, e.Store().Bounds())
	require.Equal(t, 400, e.Store().Layer(0).Target().Height())
}

func TestGridOriginShiftsPointerMapping(t *testing.T) {
	g := newSheet()
	e := New(g)
	g.SetOrigin(geom.Pt(30, 40))
	e.GridChanged()

	require.NoError(t, e.SetTool(tool.KindRectangle))
	gesture(e, geom.Pt(30, 40), geom.Pt(50, 70))
	r := e.Store().Active().Objects[0].(*object.Rectangle)
	require.Equal(t, geom.Rect{Width: 20, Height: 30}, r.Bounds())
}

func TestConnectorSelfHeals(t *testing.T) {
	g := newSheet()
	e := New(g)
	require.NoError(t, e.SetTool(tool.KindConnector))
	gesture(e, geom.Pt(25, 10), geom.Pt(75, 170))
	conn := e.Store().Active().Objects[0].(*object.Connector)
	require.Equal(t, object.CellAddress{Frame: 9, Column: 1}, conn.End)

	g.SetFrames(5)
	e.GridChanged()
	_, _, ok := conn.Endpoints()
	require.False(t, ok)
	require.False(t, conn.ContainsPoint(geom.Pt(25, 10)))

	g.SetFrames(12)
	e.GridChanged()
	_, _, ok = conn.Endpoints()
	require.True(t, ok)
	require.True(t, conn.ContainsPoint(geom.Pt(25, 10)))
}

func TestRedrawRequestsCollapse(t *testing.T) {
	var asked atomic.Int32
	e := New(nil, WithRedrawRequester(func() { asked.Add(1) }))
	var painted int
	e.OnRepaint(func(int) { painted++ })

	e.RequestRedraw()
	e.RequestRedraw()
	require.Equal(t, int32(1), asked.Load())

	require.True(t, e.FlushRedraw())
	require.Equal(t, 2, painted)
	require.False(t, e.FlushRedraw())

	e.RequestRedraw()
	require.Equal(t, int32(2), asked.Load())
}

func TestImportStatePreparesObjects(t *testing.T) {
	g := newSheet()
	redraw := make(chan struct{}, 1)
	loaded := make(chan string, 1)
	e := New(g,
		WithRedrawRequester(func() { redraw <- struct{}{} }),
		WithImageLoader(func(src string) (*gg.ImageBuf, error) {
			loaded <- src
			return gg.NewImageBuf(2, 2, gg.FormatRGBA8)
		}),
	)
	require.NoError(t, e.SetTool(tool.KindPen))

	st := persist.State{
		{LayerName: "Sheet", Visible: true, Objects: []object.Record{
			{"type": "gridSpanningConnector", "x": 0.0, "y": 0.0,
				"startFrame": 1.0, "startColumn": 0.0, "endFrame": 3.0, "endColumn": 1.0},
			{"type": "image", "x": 0.0, "y": 0.0, "src": "layout.png", "width": 10.0, "height": 10.0},
			{"type": "text", "x": 0.0, "y": 100.0, "text": "A"},
		}},
	}
	rep := e.ImportState(st)
	require.Equal(t, 3, rep.Imported)
	require.Equal(t, tool.KindPen, e.Tool())

	conn := e.Store().Layer(0).Objects[0].(*object.Connector)
	_, _, ok := conn.Endpoints()
	require.True(t, ok)

	select {
	case src := <-loaded:
		require.Equal(t, "layout.png", src)
	case <-time.After(5 * time.Second):
		t.Fatal("image never loaded")
	}
	select {
	case <-redraw:
	case <-time.After(5 * time.Second):
		t.Fatal("no redraw requested")
	}
	require.True(t, e.FlushRedraw())
	require.True(t, e.Store().Layer(0).Objects[1].(*object.Image).Loaded())
}

func TestExportStateRoundTrip(t *testing.T) {
	e := New(newSheet())
	require.NoError(t, e.SetTool(tool.KindArrow))
	gesture(e, geom.Pt(0, 0), geom.Pt(60, 0))
	e.Store().SetLayerVisible(0, false)

	st := e.ExportState()
	require.Len(t, st[0].Objects, 1)

	other := New(newSheet())
	rep := other.ImportState(st)
	require.Equal(t, 1, rep.Imported)
	require.False(t, other.Store().Layer(0).Visible)
	require.Equal(t, st, other.ExportState())
}

func TestGridChangeWaitsForRestore(t *testing.T) {
	g := newSheet()
	e := New(g)
	page := geom.Rect{Width: 600, Height: 800}

	e.Reanchor(page)
	require.Equal(t, page, e.Store().Bounds())

	g.SetCellSize(60, 20)
	e.GridChanged()
	require.Equal(t, page, e.Store().Bounds(), "still anchored to the page")

	e.RestoreAnchor()
	require.Equal(t, geom.Rect{Width: 120, Height: 200}, e.Store().Bounds())
}
