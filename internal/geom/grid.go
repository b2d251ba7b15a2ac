package geom

import "math"

// Grid is the exposure-sheet layout the engine annotates. Rectangles are in
// screen space; the Mapper converts them to surface space.
type Grid interface {
	// Bounds is the overall rectangle of the sheet.
	Bounds() Rect
	// CellRect returns the box of the addressed cell, or false when the
	// cell does not currently exist.
	CellRect(frame, column int) (Rect, bool)
	// CellAt returns the address of the cell under p, or false.
	CellAt(p Point) (frame, column int, ok bool)
}

// Mapper converts between screen space and the engine's surface space.
// The surface container sits at the grid's origin.
type Mapper struct {
	Grid Grid

	origin Point
}

// NewMapper returns a mapper aligned with g's current bounds. g may be nil,
// in which case the origin stays at zero and no cell ever resolves.
func NewMapper(g Grid) *Mapper {
	m := &Mapper{Grid: g}
	m.Align()
	return m
}

// Align moves the container origin to the grid's current top-left corner
// and returns the grid bounds.
func (m *Mapper) Align() Rect {
	if m.Grid == nil {
		return Rect{}
	}
	b := m.Grid.Bounds()
	m.origin = b.Origin()
	return b
}

// Origin returns the container origin in screen space.
func (m *Mapper) Origin() Point { return m.origin }

// ToSurfaceSpace subtracts the container origin from a screen position.
func (m *Mapper) ToSurfaceSpace(p Point) Point {
	return p.Sub(m.origin)
}

// ResolveGridCell returns the centre of the addressed cell in surface space.
// It looks the cell up every time since the sheet can reflow between draws.
func (m *Mapper) ResolveGridCell(frame, column int) (Point, bool) {
	if m == nil || m.Grid == nil {
		return Point{}, false
	}
	r, ok := m.Grid.CellRect(frame, column)
	if !ok {
		return Point{}, false
	}
	return m.ToSurfaceSpace(r.Center()), true
}

// UniformGrid is a sheet of equally sized cells. Frames count from 1 and
// columns from 0, matching how exposure sheets are read.
type UniformGrid struct {
	origin     Point
	frames     int
	columns    int
	cellWidth  float64
	cellHeight float64
}

// NewUniformGrid returns a frames x columns sheet at origin.
func NewUniformGrid(origin Point, frames, columns int, cellWidth, cellHeight float64) *UniformGrid {
	return &UniformGrid{
		origin:     origin,
		frames:     frames,
		columns:    columns,
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
	}
}

func (g *UniformGrid) Bounds() Rect {
	return Rect{
		X:      g.origin.X,
		Y:      g.origin.Y,
		Width:  float64(g.columns) * g.cellWidth,
		Height: float64(g.frames) * g.cellHeight,
	}
}

func (g *UniformGrid) CellRect(frame, column int) (Rect, bool) {
	if frame < 1 || frame > g.frames || column < 0 || column >= g.columns {
		return Rect{}, false
	}
	return Rect{
		X:      g.origin.X + float64(column)*g.cellWidth,
		Y:      g.origin.Y + float64(frame-1)*g.cellHeight,
		Width:  g.cellWidth,
		Height: g.cellHeight,
	}, true
}

func (g *UniformGrid) CellAt(p Point) (int, int, bool) {
	if g.cellWidth <= 0 || g.cellHeight <= 0 {
		return 0, 0, false
	}
	col := int(math.Floor((p.X - g.origin.X) / g.cellWidth))
	frame := int(math.Floor((p.Y-g.origin.Y)/g.cellHeight)) + 1
	if _, ok := g.CellRect(frame, col); !ok {
		return 0, 0, false
	}
	return frame, col, true
}

// Frames returns the current sheet length.
func (g *UniformGrid) Frames() int { return g.frames }

// Columns returns the current column count.
func (g *UniformGrid) Columns() int { return g.columns }

// SetFrames changes the sheet length.
func (g *UniformGrid) SetFrames(n int) { g.frames = n }

// SetCellSize changes the cell dimensions, as a template switch would.
func (g *UniformGrid) SetCellSize(w, h float64) {
	g.cellWidth, g.cellHeight = w, h
}

// SetOrigin moves the sheet, as a viewport scroll or resize would.
func (g *UniformGrid) SetOrigin(p Point) { g.origin = p }
