package tool

import "XSheetInk/internal/object"

// TextParams is what the text prompt collects.
type TextParams struct {
	Text      string
	FontSize  float64
	Alignment object.Alignment
}

// SymbolParams is what the symbol prompt collects.
type SymbolParams struct {
	Kind  object.SymbolKind
	Scale float64
}

// ImageParams is what the image prompt collects.
type ImageParams struct {
	Src    string
	Width  float64
	Height float64
}

// Prompter asks the user for the parameters of a placed object. Each
// method shows its dialog and returns at once; done runs later with
// ok=false when the user cancels.
type Prompter interface {
	PromptText(defaults TextParams, done func(TextParams, bool))
	PromptSymbol(defaults SymbolParams, done func(SymbolParams, bool))
	PromptImage(defaults ImageParams, done func(ImageParams, bool))
}
