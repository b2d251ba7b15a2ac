package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSegmentDistance(t *testing.T) {
	a, b := Pt(0, 0), Pt(100, 0)
	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{"above middle", Pt(50, 3), 3},
		{"below middle", Pt(50, -10), 10},
		{"beyond end", Pt(103, 4), 5},
		{"before start", Pt(-6, 8), 10},
		{"on segment", Pt(20, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, SegmentDistance(tt.p, a, b), 1e-9)
		})
	}
}

func TestSegmentDistanceDegenerate(t *testing.T) {
	require.InDelta(t, 5, SegmentDistance(Pt(3, 4), Pt(0, 0), Pt(0, 0)), 1e-9)
}

func TestPolylineDistance(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10)}
	require.InDelta(t, 2, PolylineDistance(Pt(12, 5), pts, false), 1e-9)
	// the closing edge runs from (10,10) back to (0,0)
	require.Greater(t, PolylineDistance(Pt(2, 4), pts, false), 1.0)
	require.InDelta(t, math.Sqrt2, PolylineDistance(Pt(2, 4), pts, true), 1e-9)
	require.True(t, math.IsInf(PolylineDistance(Pt(0, 0), nil, false), 1))
}

func TestPointInPolygon(t *testing.T) {
	square := []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}
	require.True(t, PointInPolygon(Pt(5, 5), square))
	require.False(t, PointInPolygon(Pt(15, 5), square))

	// a bow-tie: even-odd leaves the crossing region of each lobe inside
	bow := []Point{Pt(0, 0), Pt(10, 10), Pt(10, 0), Pt(0, 10)}
	require.True(t, PointInPolygon(Pt(1, 5), bow))
	require.False(t, PointInPolygon(Pt(5, 1), bow))
}

func TestRectHelpers(t *testing.T) {
	r := RectFromPoints(Pt(50, 50), Pt(10, 10))
	require.Equal(t, Rect{X: 10, Y: 10, Width: 40, Height: 40}, r)
	require.Equal(t, Pt(30, 30), r.Center())
	require.True(t, r.Contains(Pt(10, 50)))
	require.False(t, r.Inset(5).Contains(Pt(12, 30)))

	u := r.Union(Rect{X: 45, Y: 0, Width: 10, Height: 5})
	require.Equal(t, Rect{X: 10, Y: 0, Width: 45, Height: 50}, u)
	require.True(t, r.Overlaps(u))
	require.False(t, r.Overlaps(Rect{X: 100, Y: 100, Width: 1, Height: 1}))

	require.Equal(t, Rect{X: 1, Y: 2, Width: 4, Height: 6}, BoundsOf([]Point{Pt(5, 2), Pt(1, 8)}))
}

func TestMapperResolveGridCell(t *testing.T) {
	g := NewUniformGrid(Pt(100, 40), 24, 4, 30, 10)
	m := NewMapper(g)

	require.Equal(t, Pt(5, 7), m.ToSurfaceSpace(Pt(105, 47)))

	p, ok := m.ResolveGridCell(1, 0)
	require.True(t, ok)
	require.Equal(t, Pt(15, 5), p)

	p, ok = m.ResolveGridCell(3, 2)
	require.True(t, ok)
	require.Equal(t, Pt(75, 25), p)

	_, ok = m.ResolveGridCell(25, 0)
	require.False(t, ok)
	_, ok = m.ResolveGridCell(1, 4)
	require.False(t, ok)

	g.SetFrames(30)
	_, ok = m.ResolveGridCell(25, 0)
	require.True(t, ok, "a longer sheet brings the cell back")
}

func TestMapperWithoutGrid(t *testing.T) {
	m := NewMapper(nil)
	require.Equal(t, Pt(3, 4), m.ToSurfaceSpace(Pt(3, 4)))
	_, ok := m.ResolveGridCell(1, 0)
	require.False(t, ok)
}

func TestUniformGridCellAt(t *testing.T) {
	g := NewUniformGrid(Pt(0, 0), 10, 3, 20, 10)
	frame, col, ok := g.CellAt(Pt(45, 25))
	require.True(t, ok)
	require.Equal(t, 3, frame)
	require.Equal(t, 2, col)

	_, _, ok = g.CellAt(Pt(-1, 5))
	require.False(t, ok)
	_, _, ok = g.CellAt(Pt(5, 100))
	require.False(t, ok)
}
