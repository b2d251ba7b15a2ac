// Package engine ties the layer stack, the tools and the sheet grid
// together behind the surface the host application drives.
//
// An Engine is owned by one goroutine, normally the UI thread. The only
// call that may come from elsewhere is RequestRedraw.
package engine

import (
	"log/slog"
	"sync/atomic"

	"XSheetInk/internal/geom"
	"XSheetInk/internal/layer"
	"XSheetInk/internal/logging"
	"XSheetInk/internal/object"
	"XSheetInk/internal/persist"
	"XSheetInk/internal/tool"
)

// DefaultSurface is the surface size used when there is no grid to align
// with.
var DefaultSurface = geom.Rect{Width: 800, Height: 600}

// Engine is the annotation layer over an exposure sheet.
type Engine struct {
	mapper   *geom.Mapper
	fonts    *object.Fonts
	store    *layer.Store
	settings *tool.Settings
	env      *tool.Env
	tools    *tool.Registry

	requester     func()
	pending       atomic.Bool
	relayoutLater bool

	log *slog.Logger
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	settings  tool.Settings
	prompt    tool.Prompter
	loader    object.ImageLoader
	requester func()
	logger    *slog.Logger
	surface   geom.Rect
}

// WithSettings seeds the tool settings.
func WithSettings(s tool.Settings) Option {
	return func(o *options) { o.settings = s }
}

// WithPrompter supplies the dialogs the text, symbol and image tools need.
func WithPrompter(p tool.Prompter) Option {
	return func(o *options) { o.prompt = p }
}

// WithImageLoader replaces the file loader used for image objects.
func WithImageLoader(l object.ImageLoader) Option {
	return func(o *options) { o.loader = l }
}

// WithRedrawRequester sets the hook RequestRedraw calls. The hook may run
// on any goroutine and must arrange for FlushRedraw to run on the owner's.
func WithRedrawRequester(fn func()) Option {
	return func(o *options) { o.requester = fn }
}

// WithLogger sets the engine's logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithSurface sets the surface size for an engine without a grid.
func WithSurface(r geom.Rect) Option {
	return func(o *options) { o.surface = r }
}

// New returns an engine over g with the two default layers and the select
// tool active. g may be nil; connectors are then unavailable.
func New(g geom.Grid, opts ...Option) *Engine {
	o := options{
		settings: tool.DefaultSettings(),
		surface:  DefaultSurface,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.For("engine")
	}

	e := &Engine{
		mapper:    geom.NewMapper(g),
		fonts:     object.NewFonts(),
		requester: o.requester,
		log:       o.logger,
	}
	bounds := o.surface
	if g != nil {
		bounds = g.Bounds()
	}
	settings := o.settings
	e.settings = &settings
	e.store = layer.NewStore(bounds, e.mapper, e.fonts)
	e.env = &tool.Env{
		Store:         e.store,
		Settings:      e.settings,
		Mapper:        e.mapper,
		Prompt:        o.prompt,
		LoadImage:     o.loader,
		RequestRedraw: e.RequestRedraw,
	}
	e.tools = tool.NewRegistry(e.env)
	_ = e.tools.Activate(tool.KindSelect)
	e.log.Info("engine ready", "width", bounds.Width, "height", bounds.Height, "grid", g != nil)
	return e
}

// Store returns the layer stack.
func (e *Engine) Store() *layer.Store { return e.store }

// Settings returns the shared tool settings. Callers mutate it in place;
// tools read it when a gesture starts.
func (e *Engine) Settings() *tool.Settings { return e.settings }

// Mapper returns the screen to surface mapper.
func (e *Engine) Mapper() *geom.Mapper { return e.mapper }

// Fonts returns the font registry used for text.
func (e *Engine) Fonts() *object.Fonts { return e.fonts }

// SetPrompter replaces the dialogs used by the placing tools. The active
// tool is re-activated so it picks the change up.
func (e *Engine) SetPrompter(p tool.Prompter) {
	e.env.Prompt = p
	if t := e.tools.Active(); t != nil {
		_ = e.tools.Activate(t.Kind())
	}
}

// OnRepaint registers fn to run after each layer repaint.
func (e *Engine) OnRepaint(fn func(layer int)) { e.store.OnRepaint = fn }

// SetTool activates the tool k, rolling back any gesture in progress.
func (e *Engine) SetTool(k tool.Kind) error {
	return e.tools.Activate(k)
}

// Tool returns the active tool's kind.
func (e *Engine) Tool() tool.Kind {
	if t := e.tools.Active(); t != nil {
		return t.Kind()
	}
	return ""
}

func (e *Engine) event(screen geom.Point, mods tool.Modifiers) tool.Event {
	return tool.Event{Screen: screen, Surface: e.mapper.ToSurfaceSpace(screen), Mods: mods}
}

// PointerDown starts a gesture at a screen position.
func (e *Engine) PointerDown(screen geom.Point, mods tool.Modifiers) {
	e.tools.PointerDown(e.event(screen, mods))
}

// PointerMove continues the gesture in progress, if any.
func (e *Engine) PointerMove(screen geom.Point, mods tool.Modifiers) {
	e.tools.PointerMove(e.event(screen, mods))
}

// PointerUp ends the gesture in progress, if any.
func (e *Engine) PointerUp(screen geom.Point, mods tool.Modifiers) {
	e.tools.PointerUp(e.event(screen, mods))
}

// KeyDown routes a key press to the active tool and reports whether it
// was used.
func (e *Engine) KeyDown(k tool.Key, mods tool.Modifiers) bool {
	return e.tools.KeyDown(k, mods)
}

// GridChanged realigns the surfaces with the grid and repaints. While the
// engine is re-anchored for export the resize waits for RestoreAnchor.
func (e *Engine) GridChanged() {
	if e.store.Anchored() {
		e.relayoutLater = true
		return
	}
	bounds := e.mapper.Align()
	if e.mapper.Grid == nil {
		bounds = e.store.Bounds()
	}
	e.store.Relayout(bounds)
	e.store.RedrawAll()
}

// RedrawAll repaints every layer.
func (e *Engine) RedrawAll() { e.store.RedrawAll() }

// RequestRedraw asks for a full repaint from any goroutine. Requests made
// before the next FlushRedraw collapse into one.
func (e *Engine) RequestRedraw() {
	if !e.pending.CompareAndSwap(false, true) {
		return
	}
	if e.requester != nil {
		e.requester()
	}
}

// FlushRedraw performs the repaint asked for by RequestRedraw, if any, and
// reports whether it did.
func (e *Engine) FlushRedraw() bool {
	if !e.pending.Swap(false) {
		return false
	}
	e.store.RedrawAll()
	return true
}

// Reanchor moves the surfaces into frame, the export document's page in
// screen space, and repaints.
func (e *Engine) Reanchor(frame geom.Rect) {
	e.store.Reanchor(frame)
	e.store.RedrawAll()
}

// RestoreAnchor undoes Reanchor and repaints, applying any grid change
// that arrived in between.
func (e *Engine) RestoreAnchor() {
	e.store.RestoreAnchor()
	if e.relayoutLater {
		e.relayoutLater = false
		e.GridChanged()
		return
	}
	e.store.RedrawAll()
}

// Clear drops every object on every layer.
func (e *Engine) Clear() { e.store.Clear() }

// ExportState snapshots the layers as plain records.
func (e *Engine) ExportState() persist.State {
	return persist.Export(e.store)
}

// ImportState replaces the layers with st. The active tool is reset first
// so no gesture points into a replaced layer; connectors are resolved so
// they hit-test before the next draw, and image loads are started.
func (e *Engine) ImportState(st persist.State) persist.Report {
	active := tool.KindSelect
	if t := e.tools.Active(); t != nil {
		active = t.Kind()
	}
	e.tools.Deactivate()
	rep := persist.Import(e.store, st)
	e.prepare()
	_ = e.tools.Activate(active)
	return rep
}

func (e *Engine) prepare() {
	load := e.env.LoadImage
	if load == nil {
		load = object.LoadImageFile
	}
	for _, l := range e.store.Layers() {
		for _, o := range l.Objects {
			switch obj := o.(type) {
			case *object.Connector:
				obj.Resolve(e.mapper)
			case *object.Text:
				obj.UseFonts(e.fonts)
			case *object.Image:
				obj.Load(load, e.RequestRedraw)
			}
		}
	}
}
