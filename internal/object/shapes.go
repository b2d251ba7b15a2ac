package object

import (
	"math"

	"XSheetInk/internal/geom"
)

// Rectangle is an axis-aligned box with its anchor at the top-left.
type Rectangle struct {
	Base
	Width     float64
	Height    float64
	Filled    bool
	FillColor string
}

// NewRectangle returns a zero-size rectangle at p.
func NewRectangle(p geom.Point, color string, width float64, filled bool, fill string) *Rectangle {
	return &Rectangle{Base: NewBase(p, color, width), Filled: filled, FillColor: fill}
}

func (r *Rectangle) Type() Kind { return KindRectangle }

// SetCorners spans the rectangle between a and b, flipping the anchor so
// Width and Height stay non-negative.
func (r *Rectangle) SetCorners(a, b geom.Point) {
	box := geom.RectFromPoints(a, b)
	r.X, r.Y, r.Width, r.Height = box.X, box.Y, box.Width, box.Height
}

func (r *Rectangle) Draw(cv *Canvas) {
	cv.Rectangle(r.Bounds())
	if r.Filled {
		cv.FillStyle(r.FillColor)
		cv.FillPreserve()
	}
	cv.StrokeStyle(r.Color, r.StrokeWidth, nil)
	cv.Stroke()
}

func (r *Rectangle) Bounds() geom.Rect {
	return geom.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

func (r *Rectangle) ContainsPoint(p geom.Point) bool {
	box := r.Bounds()
	if r.Filled {
		return box.Contains(p)
	}
	// outline band: inside the box grown by the tolerance but not inside
	// the box shrunk by it
	if !box.Inset(-Tolerance).Contains(p) {
		return false
	}
	inner := box.Inset(Tolerance)
	if inner.Width <= 0 || inner.Height <= 0 {
		return true
	}
	// strictly inside the shrunk box is more than Tolerance from every edge
	return p.X <= inner.X || p.X >= inner.X+inner.Width ||
		p.Y <= inner.Y || p.Y >= inner.Y+inner.Height
}

func (r *Rectangle) Move(dx, dy float64) { r.move(dx, dy) }

func (r *Rectangle) Serialize() Record {
	rec := r.record(KindRectangle)
	rec["width"] = r.Width
	rec["height"] = r.Height
	rec["filled"] = r.Filled
	rec["fillColor"] = r.FillColor
	return rec
}

func readRectangle(rec Record) (*Rectangle, error) {
	b, err := readBase(rec)
	if err != nil {
		return nil, err
	}
	w, err := rec.requireNumber("width")
	if err != nil {
		return nil, err
	}
	h, err := rec.requireNumber("height")
	if err != nil {
		return nil, err
	}
	return &Rectangle{
		Base:      b,
		Width:     w,
		Height:    h,
		Filled:    rec.Bool("filled", false),
		FillColor: rec.String("fillColor", ""),
	}, nil
}

// Ellipse is centred on its anchor.
type Ellipse struct {
	Base
	RadiusX   float64
	RadiusY   float64
	Filled    bool
	FillColor string
}

// NewEllipse returns a zero-radius ellipse centred at p.
func NewEllipse(p geom.Point, color string, width float64, filled bool, fill string) *Ellipse {
	return &Ellipse{Base: NewBase(p, color, width), Filled: filled, FillColor: fill}
}

func (e *Ellipse) Type() Kind { return KindEllipse }

func (e *Ellipse) Draw(cv *Canvas) {
	cv.Ellipse(e.Anchor(), e.RadiusX, e.RadiusY)
	if e.Filled {
		cv.FillStyle(e.FillColor)
		cv.FillPreserve()
	}
	cv.StrokeStyle(e.Color, e.StrokeWidth, nil)
	cv.Stroke()
}

func (e *Ellipse) Bounds() geom.Rect {
	return geom.Rect{
		X:      e.X - e.RadiusX,
		Y:      e.Y - e.RadiusY,
		Width:  2 * e.RadiusX,
		Height: 2 * e.RadiusY,
	}
}

func (e *Ellipse) ContainsPoint(p geom.Point) bool {
	if e.RadiusX <= 0 || e.RadiusY <= 0 {
		// collapsed: behaves like a stroke through the centre
		a := geom.Pt(e.X-e.RadiusX, e.Y-e.RadiusY)
		b := geom.Pt(e.X+e.RadiusX, e.Y+e.RadiusY)
		return geom.SegmentDistance(p, a, b) <= Tolerance
	}
	if e.Filled {
		dx := (p.X - e.X) / e.RadiusX
		dy := (p.Y - e.Y) / e.RadiusY
		return dx*dx+dy*dy <= 1
	}
	return geom.PolylineDistance(p, e.outline(), true) <= Tolerance
}

// outlineSegments keeps the chord error well under a pixel for any radius
// a sheet can hold.
const outlineSegments = 256

// outline samples the ellipse boundary as a closed polygon.
func (e *Ellipse) outline() []geom.Point {
	pts := make([]geom.Point, outlineSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / outlineSegments
		pts[i] = geom.Pt(e.X+e.RadiusX*math.Cos(a), e.Y+e.RadiusY*math.Sin(a))
	}
	return pts
}

func (e *Ellipse) Move(dx, dy float64) { e.move(dx, dy) }

func (e *Ellipse) Serialize() Record {
	rec := e.record(KindEllipse)
	rec["radiusX"] = e.RadiusX
	rec["radiusY"] = e.RadiusY
	rec["filled"] = e.Filled
	rec["fillColor"] = e.FillColor
	return rec
}

func readEllipse(rec Record) (*Ellipse, error) {
	b, err := readBase(rec)
	if err != nil {
		return nil, err
	}
	rx, err := rec.requireNumber("radiusX")
	if err != nil {
		return nil, err
	}
	ry, err := rec.requireNumber("radiusY")
	if err != nil {
		return nil, err
	}
	return &Ellipse{
		Base:      b,
		RadiusX:   rx,
		RadiusY:   ry,
		Filled:    rec.Bool("filled", false),
		FillColor: rec.String("fillColor", ""),
	}, nil
}
