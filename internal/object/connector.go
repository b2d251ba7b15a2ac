package object

import (
	"XSheetInk/internal/geom"
)

// CellAddress names a sheet cell by frame and column.
type CellAddress struct {
	Frame  int
	Column int
}

// Connector is a line between two sheet cells. It stores only the cell
// addresses; pixel endpoints are resolved against the live grid whenever it
// is drawn and kept solely so the next hit-test has something to measure.
type Connector struct {
	Base
	Start         CellAddress
	End           CellAddress
	DashPattern   []float64
	ArrowAtStart  bool
	ArrowAtEnd    bool
	ArrowheadSize float64

	resolved bool
	a, b     geom.Point
}

// NewConnector returns a connector whose start and end are both at cell.
// Its base position stays at the origin; only the cells place it.
func NewConnector(cell CellAddress, color string, width float64) *Connector {
	return &Connector{
		Base:          NewBase(geom.Point{}, color, width),
		Start:         cell,
		End:           cell,
		ArrowAtEnd:    true,
		ArrowheadSize: DefaultArrowheadSize,
	}
}

func (c *Connector) Type() Kind { return KindConnector }

// Degenerate reports whether both ends address the same cell.
func (c *Connector) Degenerate() bool { return c.Start == c.End }

// Resolve looks both cells up through m and caches the surface endpoints.
// It reports false, and clears the cache, when either cell is missing.
func (c *Connector) Resolve(m *geom.Mapper) bool {
	a, okA := m.ResolveGridCell(c.Start.Frame, c.Start.Column)
	b, okB := m.ResolveGridCell(c.End.Frame, c.End.Column)
	c.resolved = okA && okB
	if c.resolved {
		c.a, c.b = a, b
	}
	return c.resolved
}

// Endpoints returns the endpoints cached by the last Draw or Resolve.
func (c *Connector) Endpoints() (a, b geom.Point, ok bool) {
	return c.a, c.b, c.resolved
}

func (c *Connector) Draw(cv *Canvas) {
	if !c.Resolve(cv.Mapper()) {
		return
	}
	cv.StrokeStyle(c.Color, c.StrokeWidth, c.DashPattern)
	cv.MoveTo(c.a)
	cv.LineTo(c.b)
	cv.Stroke()
	if c.ArrowAtEnd {
		drawArrowhead(cv, c.a, c.b, c.ArrowheadSize, c.Color)
	}
	if c.ArrowAtStart {
		drawArrowhead(cv, c.b, c.a, c.ArrowheadSize, c.Color)
	}
}

func (c *Connector) Bounds() geom.Rect {
	if !c.resolved {
		return geom.Rect{}
	}
	return geom.RectFromPoints(c.a, c.b)
}

// ContainsPoint measures against the endpoints from the last Draw. A
// connector that has never been drawn reports no hit.
func (c *Connector) ContainsPoint(p geom.Point) bool {
	if !c.resolved {
		return false
	}
	return geom.SegmentDistance(p, c.a, c.b) <= Tolerance
}

// Move is a no-op: a connector is positioned by its cell addresses only.
func (c *Connector) Move(dx, dy float64) {}

func (c *Connector) Serialize() Record {
	r := c.record(KindConnector)
	r["startFrame"] = c.Start.Frame
	r["startColumn"] = c.Start.Column
	r["endFrame"] = c.End.Frame
	r["endColumn"] = c.End.Column
	r["dashPattern"] = numbersValue(c.DashPattern)
	r["arrowAtStart"] = c.ArrowAtStart
	r["arrowAtEnd"] = c.ArrowAtEnd
	r["arrowheadSize"] = c.ArrowheadSize
	return r
}

func readConnector(r Record) (*Connector, error) {
	b, err := readBase(r)
	if err != nil {
		return nil, err
	}
	var addr [4]int
	for i, key := range []string{"startFrame", "startColumn", "endFrame", "endColumn"} {
		if addr[i], err = r.requireInt(key); err != nil {
			return nil, err
		}
	}
	b.X, b.Y = 0, 0
	return &Connector{
		Base:          b,
		Start:         CellAddress{Frame: addr[0], Column: addr[1]},
		End:           CellAddress{Frame: addr[2], Column: addr[3]},
		DashPattern:   r.Numbers("dashPattern"),
		ArrowAtStart:  r.Bool("arrowAtStart", false),
		ArrowAtEnd:    r.Bool("arrowAtEnd", true),
		ArrowheadSize: r.Number("arrowheadSize", DefaultArrowheadSize),
	}, nil
}
