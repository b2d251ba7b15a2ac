package tool

import (
	"strings"

	"XSheetInk/internal/geom"
	"XSheetInk/internal/object"
)

// Default size of a placed image when the prompt leaves it blank.
const (
	DefaultImageWidth  = 160
	DefaultImageHeight = 120
)

// placeTool drops one object at the click point once its prompt is
// confirmed. A confirmation arriving after the tool was switched away is
// ignored.
type placeTool struct {
	base
	gen int
	ask func(t *placeTool, at geom.Point, gen int)
}

func (t *placeTool) Activate(env *Env) bool {
	t.base.Activate(env)
	if env.Prompt == nil {
		t.log.Warn("no prompter available")
		return false
	}
	return true
}

func (t *placeTool) Deactivate() { t.gen++ }

func (t *placeTool) PointerDown(ev Event) {
	t.gen++
	t.ask(t, ev.Surface, t.gen)
}

func (t *placeTool) live(gen int) bool { return gen == t.gen }

func (t *placeTool) commit(obj object.Object) {
	t.env.Store.AddObject(obj)
	t.log.Debug("object placed", "type", string(obj.Type()), "id", obj.Common().ID)
}

func newTextTool() *placeTool {
	return &placeTool{
		base: newBase(KindText),
		ask: func(t *placeTool, at geom.Point, gen int) {
			set := t.env.Settings
			defaults := TextParams{FontSize: set.FontSize, Alignment: set.TextAlignment}
			t.env.Prompt.PromptText(defaults, func(p TextParams, ok bool) {
				if !ok || !t.live(gen) || strings.TrimSpace(p.Text) == "" {
					return
				}
				size := p.FontSize
				if size <= 0 {
					size = set.FontSize
				}
				align := p.Alignment
				if align == "" {
					align = set.TextAlignment
				}
				t.commit(object.NewText(at, p.Text, set.Color, size, set.FontFamily, align))
			})
		},
	}
}

func newSymbolTool() *placeTool {
	return &placeTool{
		base: newBase(KindSymbol),
		ask: func(t *placeTool, at geom.Point, gen int) {
			set := t.env.Settings
			defaults := SymbolParams{Kind: set.SymbolKind, Scale: set.SymbolScale}
			t.env.Prompt.PromptSymbol(defaults, func(p SymbolParams, ok bool) {
				if !ok || !t.live(gen) {
					return
				}
				scale := p.Scale
				if scale <= 0 {
					scale = 1
				}
				kind := object.ParseSymbolKind(string(p.Kind))
				t.commit(object.NewSymbol(at, kind, scale, set.Color, set.StrokeWidth))
			})
		},
	}
}

func newImageTool() *placeTool {
	return &placeTool{
		base: newBase(KindImage),
		ask: func(t *placeTool, at geom.Point, gen int) {
			defaults := ImageParams{Width: DefaultImageWidth, Height: DefaultImageHeight}
			t.env.Prompt.PromptImage(defaults, func(p ImageParams, ok bool) {
				if !ok || !t.live(gen) || p.Src == "" {
					return
				}
				if p.Width <= 0 {
					p.Width = DefaultImageWidth
				}
				if p.Height <= 0 {
					p.Height = DefaultImageHeight
				}
				im := object.NewImage(at, p.Src, p.Width, p.Height)
				t.commit(im)
				t.env.loadImage(im)
			})
		},
	}
}

func (e *Env) loadImage(im *object.Image) {
	load := e.LoadImage
	if load == nil {
		load = object.LoadImageFile
	}
	im.Load(load, e.RequestRedraw)
}
