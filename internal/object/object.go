// Package object implements the annotation variants drawn over the sheet.
//
// The variant set is closed: every Kind listed here has exactly one
// implementation, and Deserialize is the only way to build one from a
// Record. Each variant can paint itself onto a Canvas, report its bounds,
// hit-test a point, move by a delta and serialize to a plain Record.
package object

import (
	"errors"

	"XSheetInk/internal/geom"

	"github.com/google/uuid"
)

// Tolerance is the hit distance, in surface units, around stroked outlines.
const Tolerance = 5.0

// Kind is the variant tag stored in every record under "type".
type Kind string

const (
	KindLine      Kind = "line"
	KindArrow     Kind = "arrow"
	KindRectangle Kind = "rectangle"
	KindEllipse   Kind = "ellipse"
	KindText      Kind = "text"
	KindSymbol    Kind = "symbol"
	KindPath      Kind = "freehandPath"
	KindConnector Kind = "gridSpanningConnector"
	KindImage     Kind = "image"
)

// Kinds lists every variant tag.
var Kinds = []Kind{
	KindLine, KindArrow, KindRectangle, KindEllipse, KindText,
	KindSymbol, KindPath, KindConnector, KindImage,
}

var (
	// ErrUnknownType is returned by Deserialize for an unrecognized tag.
	ErrUnknownType = errors.New("unknown object type")
	// ErrMissingField is returned when a record lacks a field its tag requires.
	ErrMissingField = errors.New("missing required field")
	// ErrBadField is returned when a field is present but unusable.
	ErrBadField = errors.New("invalid field value")
)

// Object is the capability set shared by every variant.
type Object interface {
	Type() Kind
	// Common gives access to the base attributes.
	Common() *Base
	Draw(cv *Canvas)
	Bounds() geom.Rect
	ContainsPoint(p geom.Point) bool
	Move(dx, dy float64)
	Serialize() Record
}

// Base holds the attributes every variant carries.
type Base struct {
	ID          string
	X           float64
	Y           float64
	Color       string
	StrokeWidth float64
	Visible     bool
}

// NewBase returns a visible base anchored at p with a fresh id.
func NewBase(p geom.Point, color string, strokeWidth float64) Base {
	return Base{
		ID:          uuid.NewString(),
		X:           p.X,
		Y:           p.Y,
		Color:       color,
		StrokeWidth: strokeWidth,
		Visible:     true,
	}
}

func (b *Base) Common() *Base { return b }

// Anchor returns the base position.
func (b *Base) Anchor() geom.Point { return geom.Pt(b.X, b.Y) }

func (b *Base) move(dx, dy float64) {
	b.X += dx
	b.Y += dy
}

func (b *Base) record(k Kind) Record {
	return Record{
		"type":        string(k),
		"id":          b.ID,
		"x":           b.X,
		"y":           b.Y,
		"color":       b.Color,
		"strokeWidth": b.StrokeWidth,
		"visible":     b.Visible,
	}
}

func readBase(r Record) (Base, error) {
	x, err := r.requireNumber("x")
	if err != nil {
		return Base{}, err
	}
	y, err := r.requireNumber("y")
	if err != nil {
		return Base{}, err
	}
	b := Base{
		ID:          r.String("id", ""),
		X:           x,
		Y:           y,
		Color:       r.String("color", DefaultColor),
		StrokeWidth: r.Number("strokeWidth", DefaultStrokeWidth),
		Visible:     r.Bool("visible", true),
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return b, nil
}

// Defaults applied when optional record fields are absent.
const (
	DefaultColor         = "#000000"
	DefaultStrokeWidth   = 2.0
	DefaultArrowheadSize = 10.0
	DefaultFontSize      = 16.0
	DefaultFontFamily    = FamilySans
)
