package object

import (
	"math"

	"XSheetInk/internal/geom"
)

// SymbolKind selects the timing mark a Symbol draws.
type SymbolKind string

const (
	SymbolAnticipation SymbolKind = "anticipation"
	SymbolImpact       SymbolKind = "impact"
	SymbolKeyframe     SymbolKind = "keyframe"
	SymbolInbetween    SymbolKind = "inbetween"
	SymbolHold         SymbolKind = "hold"
	SymbolDefault      SymbolKind = "default"
)

// SymbolKinds lists every symbol kind.
var SymbolKinds = []SymbolKind{
	SymbolAnticipation, SymbolImpact, SymbolKeyframe,
	SymbolInbetween, SymbolHold, SymbolDefault,
}

// ParseSymbolKind maps s to a kind, falling back to SymbolDefault.
func ParseSymbolKind(s string) SymbolKind {
	for _, k := range SymbolKinds {
		if string(k) == s {
			return k
		}
	}
	return SymbolDefault
}

// symbolRadius is the hit and drawing radius at scale 1.
const symbolRadius = 12.0

// Symbol is a timing mark centred on its anchor. Whatever the glyph, it
// hit-tests as a circle whose radius grows with Scale.
type Symbol struct {
	Base
	SymbolKind SymbolKind
	Scale      float64
}

// NewSymbol returns a symbol centred at p.
func NewSymbol(p geom.Point, kind SymbolKind, scale float64, color string, width float64) *Symbol {
	return &Symbol{Base: NewBase(p, color, width), SymbolKind: kind, Scale: scale}
}

func (s *Symbol) Type() Kind { return KindSymbol }

func (s *Symbol) radius() float64 { return symbolRadius * s.Scale }

func (s *Symbol) Draw(cv *Canvas) {
	c := s.Anchor()
	r := s.radius()
	cv.StrokeStyle(s.Color, s.StrokeWidth, nil)

	switch s.SymbolKind {
	case SymbolKeyframe:
		cv.FillStyle(s.Color)
		cv.Circle(c, r)
		cv.Fill()
	case SymbolInbetween:
		cv.Circle(c, r)
		cv.Stroke()
		cv.MoveTo(geom.Pt(c.X-r, c.Y))
		cv.LineTo(geom.Pt(c.X+r, c.Y))
		cv.Stroke()
	case SymbolAnticipation:
		// chevron pointing back along the timeline
		cv.MoveTo(geom.Pt(c.X+r, c.Y-r))
		cv.LineTo(geom.Pt(c.X-r, c.Y))
		cv.LineTo(geom.Pt(c.X+r, c.Y+r))
		cv.Stroke()
	case SymbolImpact:
		for i := 0; i < 8; i++ {
			a := float64(i) * math.Pi / 4
			cv.MoveTo(geom.Pt(c.X+0.35*r*math.Cos(a), c.Y+0.35*r*math.Sin(a)))
			cv.LineTo(geom.Pt(c.X+r*math.Cos(a), c.Y+r*math.Sin(a)))
		}
		cv.Stroke()
	case SymbolHold:
		cv.FillStyle(s.Color)
		cv.Rectangle(geom.Rect{X: c.X - r, Y: c.Y - r/4, Width: 2 * r, Height: r / 2})
		cv.Fill()
	default:
		cv.Circle(c, r)
		cv.Stroke()
		d := r / math.Sqrt2
		cv.MoveTo(geom.Pt(c.X-d, c.Y-d))
		cv.LineTo(geom.Pt(c.X+d, c.Y+d))
		cv.MoveTo(geom.Pt(c.X+d, c.Y-d))
		cv.LineTo(geom.Pt(c.X-d, c.Y+d))
		cv.Stroke()
	}
}

func (s *Symbol) Bounds() geom.Rect {
	r := s.radius()
	return geom.Rect{X: s.X - r, Y: s.Y - r, Width: 2 * r, Height: 2 * r}
}

func (s *Symbol) ContainsPoint(p geom.Point) bool {
	return math.Hypot(p.X-s.X, p.Y-s.Y) <= s.radius()
}

func (s *Symbol) Move(dx, dy float64) { s.move(dx, dy) }

func (s *Symbol) Serialize() Record {
	r := s.record(KindSymbol)
	r["symbolKind"] = string(s.SymbolKind)
	r["scale"] = s.Scale
	return r
}

func readSymbol(r Record) (*Symbol, error) {
	b, err := readBase(r)
	if err != nil {
		return nil, err
	}
	kind, err := r.requireString("symbolKind")
	if err != nil {
		return nil, err
	}
	return &Symbol{
		Base:       b,
		SymbolKind: ParseSymbolKind(kind),
		Scale:      r.Number("scale", 1),
	}, nil
}
