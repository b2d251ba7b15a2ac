package object

import (
	"math"

	"XSheetInk/internal/geom"
)

// Line is a straight stroke from the anchor to (X2, Y2).
type Line struct {
	Base
	X2          float64
	Y2          float64
	DashPattern []float64
}

// NewLine returns a zero-length line at p.
func NewLine(p geom.Point, color string, width float64) *Line {
	return &Line{Base: NewBase(p, color, width), X2: p.X, Y2: p.Y}
}

func (l *Line) Type() Kind { return KindLine }

// End returns the far endpoint.
func (l *Line) End() geom.Point { return geom.Pt(l.X2, l.Y2) }

// SetEnd moves the far endpoint.
func (l *Line) SetEnd(p geom.Point) { l.X2, l.Y2 = p.X, p.Y }

func (l *Line) Draw(cv *Canvas) {
	cv.StrokeStyle(l.Color, l.StrokeWidth, l.DashPattern)
	cv.MoveTo(l.Anchor())
	cv.LineTo(l.End())
	cv.Stroke()
}

func (l *Line) Bounds() geom.Rect {
	return geom.RectFromPoints(l.Anchor(), l.End())
}

func (l *Line) ContainsPoint(p geom.Point) bool {
	return geom.SegmentDistance(p, l.Anchor(), l.End()) <= Tolerance
}

func (l *Line) Move(dx, dy float64) {
	l.move(dx, dy)
	l.X2 += dx
	l.Y2 += dy
}

func (l *Line) Serialize() Record { return l.record(KindLine) }

func (l *Line) record(k Kind) Record {
	r := l.Base.record(k)
	r["x2"] = l.X2
	r["y2"] = l.Y2
	r["dashPattern"] = numbersValue(l.DashPattern)
	return r
}

func readLine(r Record) (*Line, error) {
	b, err := readBase(r)
	if err != nil {
		return nil, err
	}
	x2, err := r.requireNumber("x2")
	if err != nil {
		return nil, err
	}
	y2, err := r.requireNumber("y2")
	if err != nil {
		return nil, err
	}
	return &Line{Base: b, X2: x2, Y2: y2, DashPattern: r.Numbers("dashPattern")}, nil
}

// Arrow is a Line with a filled head at its far end.
type Arrow struct {
	Line
	ArrowheadSize float64
}

// NewArrow returns a zero-length arrow at p.
func NewArrow(p geom.Point, color string, width, headSize float64) *Arrow {
	return &Arrow{Line: *NewLine(p, color, width), ArrowheadSize: headSize}
}

func (a *Arrow) Type() Kind { return KindArrow }

func (a *Arrow) Draw(cv *Canvas) {
	a.Line.Draw(cv)
	drawArrowhead(cv, a.Anchor(), a.End(), a.ArrowheadSize, a.Color)
}

func (a *Arrow) Serialize() Record {
	r := a.record(KindArrow)
	r["arrowheadSize"] = a.ArrowheadSize
	return r
}

func readArrow(r Record) (*Arrow, error) {
	l, err := readLine(r)
	if err != nil {
		return nil, err
	}
	return &Arrow{Line: *l, ArrowheadSize: r.Number("arrowheadSize", DefaultArrowheadSize)}, nil
}

// drawArrowhead fills a triangle with its tip at to, pointing away from from.
// A zero-length shaft has no direction and draws nothing.
func drawArrowhead(cv *Canvas, from, to geom.Point, size float64, color string) {
	if from == to || size <= 0 {
		return
	}
	angle := math.Atan2(to.Y-from.Y, to.X-from.X)
	const spread = math.Pi / 6
	left := geom.Pt(to.X-size*math.Cos(angle-spread), to.Y-size*math.Sin(angle-spread))
	right := geom.Pt(to.X-size*math.Cos(angle+spread), to.Y-size*math.Sin(angle+spread))

	cv.FillStyle(color)
	cv.MoveTo(to)
	cv.LineTo(left)
	cv.LineTo(right)
	cv.ClosePath()
	cv.Fill()
}
