package tool

import "XSheetInk/internal/object"

// Settings is the shared tool configuration. UI controls write it; the
// active tool reads it when a gesture starts and never keeps a copy.
type Settings struct {
	Color         string            `mapstructure:"color"`
	StrokeWidth   float64           `mapstructure:"stroke_width"`
	Fill          bool              `mapstructure:"fill"`
	FillColor     string            `mapstructure:"fill_color"`
	FontSize      float64           `mapstructure:"font_size"`
	FontFamily    string            `mapstructure:"font_family"`
	TextAlignment object.Alignment  `mapstructure:"text_alignment"`
	SymbolKind    object.SymbolKind `mapstructure:"symbol_kind"`
	SymbolScale   float64           `mapstructure:"symbol_scale"`
	DashPattern   []float64         `mapstructure:"dash_pattern"`
	ArrowheadSize float64           `mapstructure:"arrowhead_size"`
	Smoothing     bool              `mapstructure:"smoothing"`
}

// DefaultSettings returns the settings a fresh engine starts with.
func DefaultSettings() Settings {
	return Settings{
		Color:         "#000000",
		StrokeWidth:   2,
		FillColor:     "#ffff00",
		FontSize:      object.DefaultFontSize,
		FontFamily:    object.DefaultFontFamily,
		TextAlignment: object.AlignLeft,
		SymbolKind:    object.SymbolKeyframe,
		SymbolScale:   1,
		ArrowheadSize: object.DefaultArrowheadSize,
		Smoothing:     true,
	}
}

func (s *Settings) dash() []float64 {
	if len(s.DashPattern) == 0 {
		return nil
	}
	return append([]float64(nil), s.DashPattern...)
}
