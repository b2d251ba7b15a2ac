package object

import (
	"XSheetInk/internal/geom"
)

// Alignment places text horizontally relative to its anchor.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// ParseAlignment maps s onto a known alignment, falling back to left.
func ParseAlignment(s string) Alignment {
	switch a := Alignment(s); a {
	case AlignLeft, AlignCenter, AlignRight:
		return a
	}
	return AlignLeft
}

func (a Alignment) anchor() float64 {
	switch a {
	case AlignCenter:
		return 0.5
	case AlignRight:
		return 1
	}
	return 0
}

// Text is a single line of text whose top edge sits at the anchor.
type Text struct {
	Base
	Text       string
	FontSize   float64
	FontFamily string
	Alignment  Alignment

	// metrics measures extents for hit-testing; set by Draw or by the
	// creating tool.
	metrics *Fonts
}

// NewText returns a text object at p.
func NewText(p geom.Point, s string, color string, size float64, family string, align Alignment) *Text {
	return &Text{
		Base:       NewBase(p, color, 0),
		Text:       s,
		FontSize:   size,
		FontFamily: family,
		Alignment:  ParseAlignment(string(align)),
	}
}

func (t *Text) Type() Kind { return KindText }

// UseFonts sets the registry used to measure the text.
func (t *Text) UseFonts(f *Fonts) { t.metrics = f }

func (t *Text) Draw(cv *Canvas) {
	if cv.Fonts() != nil {
		t.metrics = cv.Fonts()
	}
	face := cv.Fonts().Face(t.FontFamily, t.FontSize)
	cv.Text(t.Text, t.Anchor(), face, t.Alignment.anchor(), t.Color)
}

func (t *Text) Bounds() geom.Rect {
	w, h := t.metrics.Measure(t.Text, t.FontFamily, t.FontSize)
	return geom.Rect{
		X:      t.X - w*t.Alignment.anchor(),
		Y:      t.Y,
		Width:  w,
		Height: h,
	}
}

func (t *Text) ContainsPoint(p geom.Point) bool {
	return t.Bounds().Contains(p)
}

func (t *Text) Move(dx, dy float64) { t.move(dx, dy) }

func (t *Text) Serialize() Record {
	r := t.record(KindText)
	r["text"] = t.Text
	r["fontSize"] = t.FontSize
	r["fontFamily"] = t.FontFamily
	r["alignment"] = string(t.Alignment)
	return r
}

func readText(r Record) (*Text, error) {
	b, err := readBase(r)
	if err != nil {
		return nil, err
	}
	s, err := r.requireString("text")
	if err != nil {
		return nil, err
	}
	align := ParseAlignment(r.String("alignment", string(AlignLeft)))
	return &Text{
		Base:       b,
		Text:       s,
		FontSize:   r.Number("fontSize", DefaultFontSize),
		FontFamily: r.String("fontFamily", DefaultFontFamily),
		Alignment:  align,
	}, nil
}
