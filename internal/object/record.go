package object

import (
	"encoding/json"
	"fmt"
	"math"

	"XSheetInk/internal/geom"
)

// Record is the plain form of an object exchanged with save/restore. Values
// are whatever encoding/json produces, so numbers may arrive as float64 or
// json.Number, and lists as []any.
type Record map[string]any

// Kind returns the record's type tag.
func (r Record) Kind() Kind {
	return Kind(r.String("type", ""))
}

func (r Record) number(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

// Number returns the numeric field key, or def when absent or not a number.
func (r Record) Number(key string, def float64) float64 {
	if f, ok := r.number(key); ok {
		return f
	}
	return def
}

func (r Record) requireNumber(key string) (float64, error) {
	f, ok := r.number(key)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	return f, nil
}

func (r Record) requireInt(key string) (int, error) {
	f, err := r.requireNumber(key)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s is not an integer", ErrBadField, key)
	}
	return int(f), nil
}

// String returns the string field key, or def.
func (r Record) String(key, def string) string {
	if s, ok := r[key].(string); ok {
		return s
	}
	return def
}

func (r Record) requireString(key string) (string, error) {
	s, ok := r[key].(string)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	return s, nil
}

// Bool returns the boolean field key, or def.
func (r Record) Bool(key string, def bool) bool {
	if b, ok := r[key].(bool); ok {
		return b
	}
	return def
}

// Numbers reads a list of numbers such as a dash pattern. Non-numeric
// entries are dropped.
func (r Record) Numbers(key string) []float64 {
	var out []float64
	switch v := r[key].(type) {
	case []float64:
		out = append(out, v...)
	case []any:
		for _, e := range v {
			if f, ok := (Record{"v": e}).number("v"); ok {
				out = append(out, f)
			}
		}
	}
	return out
}

func (r Record) requirePoints(key string) ([]geom.Point, error) {
	raw, ok := r[key].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	pts := make([]geom.Point, 0, len(raw))
	for i, e := range raw {
		m, ok := e.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: not a point", key, i)
		}
		pr := Record(m)
		x, err := pr.requireNumber("x")
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		y, err := pr.requireNumber("y")
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		pts = append(pts, geom.Pt(x, y))
	}
	return pts, nil
}

func pointsValue(pts []geom.Point) []any {
	out := make([]any, len(pts))
	for i, p := range pts {
		out[i] = map[string]any{"x": p.X, "y": p.Y}
	}
	return out
}

func numbersValue(v []float64) []any {
	out := make([]any, len(v))
	for i, f := range v {
		out[i] = f
	}
	return out
}
