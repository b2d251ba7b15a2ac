package ui

import (
	"strconv"
	"strings"

	"XSheetInk/internal/object"
	"XSheetInk/internal/tool"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// dialogPrompter collects placement parameters with modal forms.
type dialogPrompter struct {
	win fyne.Window
}

var _ tool.Prompter = (*dialogPrompter)(nil)

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// parseFloat reads a number typed into a form, falling back to def.
func parseFloat(s string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return f
}

func (p *dialogPrompter) PromptText(d tool.TextParams, done func(tool.TextParams, bool)) {
	text := widget.NewEntry()
	text.SetPlaceHolder("hold, cue, dialogue...")
	size := widget.NewEntry()
	size.SetText(formatFloat(d.FontSize))
	align := widget.NewSelect([]string{
		string(object.AlignLeft), string(object.AlignCenter), string(object.AlignRight),
	}, nil)
	align.SetSelected(string(d.Alignment))

	items := []*widget.FormItem{
		widget.NewFormItem("Text", text),
		widget.NewFormItem("Size", size),
		widget.NewFormItem("Align", align),
	}
	dialog.ShowForm("Add text", "Add", "Cancel", items, func(ok bool) {
		if !ok {
			done(tool.TextParams{}, false)
			return
		}
		done(tool.TextParams{
			Text:      text.Text,
			FontSize:  parseFloat(size.Text, d.FontSize),
			Alignment: object.Alignment(align.Selected),
		}, true)
	}, p.win)
}

func (p *dialogPrompter) PromptSymbol(d tool.SymbolParams, done func(tool.SymbolParams, bool)) {
	kinds := make([]string, len(object.SymbolKinds))
	for i, k := range object.SymbolKinds {
		kinds[i] = string(k)
	}
	kind := widget.NewSelect(kinds, nil)
	kind.SetSelected(string(d.Kind))
	scale := widget.NewSlider(0.5, 4)
	scale.Step = 0.25
	scale.SetValue(d.Scale)

	items := []*widget.FormItem{
		widget.NewFormItem("Symbol", kind),
		widget.NewFormItem("Scale", scale),
	}
	dialog.ShowForm("Add timing symbol", "Add", "Cancel", items, func(ok bool) {
		if !ok {
			done(tool.SymbolParams{}, false)
			return
		}
		done(tool.SymbolParams{Kind: object.SymbolKind(kind.Selected), Scale: scale.Value}, true)
	}, p.win)
}

func (p *dialogPrompter) PromptImage(d tool.ImageParams, done func(tool.ImageParams, bool)) {
	src := widget.NewEntry()
	src.SetText(d.Src)
	browse := widget.NewButton("Browse...", func() {
		fd := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err != nil || r == nil {
				return
			}
			src.SetText(r.URI().Path())
			_ = r.Close()
		}, p.win)
		fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg"}))
		fd.Show()
	})
	width := widget.NewEntry()
	width.SetText(formatFloat(d.Width))
	height := widget.NewEntry()
	height.SetText(formatFloat(d.Height))

	items := []*widget.FormItem{
		widget.NewFormItem("File", container.NewBorder(nil, nil, nil, browse, src)),
		widget.NewFormItem("Width", width),
		widget.NewFormItem("Height", height),
	}
	dialog.ShowForm("Place image", "Place", "Cancel", items, func(ok bool) {
		if !ok {
			done(tool.ImageParams{}, false)
			return
		}
		done(tool.ImageParams{
			Src:    strings.TrimSpace(src.Text),
			Width:  parseFloat(width.Text, d.Width),
			Height: parseFloat(height.Text, d.Height),
		}, true)
	}, p.win)
}
