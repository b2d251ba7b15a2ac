package object

import (
	"XSheetInk/internal/geom"
)

// Path is a freehand stroke. Its anchor is the first point. Fill only takes
// effect on closed paths; a filled open path draws and hit-tests as a plain
// stroke.
type Path struct {
	Base
	Points    []geom.Point
	Smoothing bool
	Closed    bool
	Filled    bool
	FillColor string
}

// NewPath returns a path seeded with p.
func NewPath(p geom.Point, color string, width float64, smoothing bool) *Path {
	return &Path{
		Base:      NewBase(p, color, width),
		Points:    []geom.Point{p},
		Smoothing: smoothing,
	}
}

func (p *Path) Type() Kind { return KindPath }

// Append adds a point to the end of the stroke.
func (p *Path) Append(pt geom.Point) { p.Points = append(p.Points, pt) }

func (p *Path) fills() bool { return p.Closed && p.Filled }

func (p *Path) Draw(cv *Canvas) {
	if len(p.Points) == 0 {
		return
	}
	if len(p.Points) == 1 {
		// a single click still leaves a visible dot
		cv.FillStyle(p.Color)
		cv.Circle(p.Points[0], p.StrokeWidth/2)
		cv.Fill()
		return
	}

	cv.MoveTo(p.Points[0])
	if p.Smoothing && len(p.Points) > 2 {
		// quadratic segments through the midpoints of consecutive points
		for i := 1; i < len(p.Points)-1; i++ {
			mid := geom.Pt((p.Points[i].X+p.Points[i+1].X)/2, (p.Points[i].Y+p.Points[i+1].Y)/2)
			cv.QuadraticTo(p.Points[i], mid)
		}
		cv.LineTo(p.Points[len(p.Points)-1])
	} else {
		for _, pt := range p.Points[1:] {
			cv.LineTo(pt)
		}
	}
	if p.Closed {
		cv.ClosePath()
	}
	if p.fills() {
		cv.FillStyle(p.FillColor)
		cv.FillPreserve()
	}
	cv.StrokeStyle(p.Color, p.StrokeWidth, nil)
	cv.Stroke()
}

func (p *Path) Bounds() geom.Rect { return geom.BoundsOf(p.Points) }

func (p *Path) ContainsPoint(pt geom.Point) bool {
	if p.fills() && len(p.Points) > 2 {
		return geom.PointInPolygon(pt, p.Points)
	}
	return geom.PolylineDistance(pt, p.Points, p.Closed) <= Tolerance
}

func (p *Path) Move(dx, dy float64) {
	p.move(dx, dy)
	d := geom.Pt(dx, dy)
	for i := range p.Points {
		p.Points[i] = p.Points[i].Add(d)
	}
}

func (p *Path) Serialize() Record {
	r := p.record(KindPath)
	r["points"] = pointsValue(p.Points)
	r["smoothing"] = p.Smoothing
	r["closed"] = p.Closed
	r["filled"] = p.Filled
	r["fillColor"] = p.FillColor
	return r
}

func readPath(r Record) (*Path, error) {
	b, err := readBase(r)
	if err != nil {
		return nil, err
	}
	pts, err := r.requirePoints("points")
	if err != nil {
		return nil, err
	}
	return &Path{
		Base:      b,
		Points:    pts,
		Smoothing: r.Bool("smoothing", false),
		Closed:    r.Bool("closed", false),
		Filled:    r.Bool("filled", false),
		FillColor: r.String("fillColor", ""),
	}, nil
}
