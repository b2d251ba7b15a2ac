package object

import (
	"XSheetInk/internal/geom"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// Canvas is the render target handed to Object.Draw. It wraps a layer's gg
// context, shifts every coordinate by the current anchor offset and carries
// the grid mapper connectors resolve against.
type Canvas struct {
	dc     *gg.Context
	mapper *geom.Mapper
	fonts  *Fonts
	offset geom.Point
}

// NewCanvas wraps dc. mapper and fonts may be nil; connectors then draw
// nothing and text falls back to estimated metrics.
func NewCanvas(dc *gg.Context, mapper *geom.Mapper, fonts *Fonts) *Canvas {
	return &Canvas{dc: dc, mapper: mapper, fonts: fonts}
}

// WithOffset returns a copy of cv that translates by d.
func (cv *Canvas) WithOffset(d geom.Point) *Canvas {
	c := *cv
	c.offset = d
	return &c
}

// Context exposes the wrapped gg context.
func (cv *Canvas) Context() *gg.Context { return cv.dc }

// Mapper returns the grid mapper, possibly nil.
func (cv *Canvas) Mapper() *geom.Mapper { return cv.mapper }

// Fonts returns the font registry, possibly nil.
func (cv *Canvas) Fonts() *Fonts { return cv.fonts }

func (cv *Canvas) x(v float64) float64 { return v + cv.offset.X }
func (cv *Canvas) y(v float64) float64 { return v + cv.offset.Y }

// StrokeStyle sets colour, width and dash pattern for the next Stroke.
func (cv *Canvas) StrokeStyle(color string, width float64, dash []float64) {
	cv.dc.SetHexColor(color)
	cv.dc.SetLineWidth(width)
	if len(dash) > 0 {
		cv.dc.SetDash(dash...)
	} else {
		cv.dc.ClearDash()
	}
}

// FillStyle sets the colour for the next Fill.
func (cv *Canvas) FillStyle(color string) {
	cv.dc.SetHexColor(color)
}

func (cv *Canvas) MoveTo(p geom.Point) { cv.dc.MoveTo(cv.x(p.X), cv.y(p.Y)) }
func (cv *Canvas) LineTo(p geom.Point) { cv.dc.LineTo(cv.x(p.X), cv.y(p.Y)) }

func (cv *Canvas) QuadraticTo(c, p geom.Point) {
	cv.dc.QuadraticTo(cv.x(c.X), cv.y(c.Y), cv.x(p.X), cv.y(p.Y))
}

func (cv *Canvas) ClosePath() { cv.dc.ClosePath() }

func (cv *Canvas) Rectangle(r geom.Rect) {
	cv.dc.DrawRectangle(cv.x(r.X), cv.y(r.Y), r.Width, r.Height)
}

func (cv *Canvas) Ellipse(c geom.Point, rx, ry float64) {
	cv.dc.DrawEllipse(cv.x(c.X), cv.y(c.Y), rx, ry)
}

func (cv *Canvas) Circle(c geom.Point, r float64) {
	cv.dc.DrawCircle(cv.x(c.X), cv.y(c.Y), r)
}

// Stroke strokes and clears the current path.
func (cv *Canvas) Stroke() { _ = cv.dc.Stroke() }

// Fill fills and clears the current path.
func (cv *Canvas) Fill() { _ = cv.dc.Fill() }

// FillPreserve fills and keeps the path for a following Stroke.
func (cv *Canvas) FillPreserve() { _ = cv.dc.FillPreserve() }

// Text draws s with its top edge at p. ax is the horizontal anchor: 0 puts
// p at the left edge, 0.5 at the centre and 1 at the right.
func (cv *Canvas) Text(s string, p geom.Point, face text.Face, ax float64, color string) {
	if face == nil {
		return
	}
	cv.dc.SetFont(face)
	cv.dc.SetHexColor(color)
	cv.dc.DrawStringAnchored(s, cv.x(p.X), cv.y(p.Y), ax, 1)
}

// Image draws img scaled into r.
func (cv *Canvas) Image(img *gg.ImageBuf, r geom.Rect) {
	cv.dc.DrawImageEx(img, gg.DrawImageOptions{
		X:         cv.x(r.X),
		Y:         cv.y(r.Y),
		DstWidth:  r.Width,
		DstHeight: r.Height,
	})
}
