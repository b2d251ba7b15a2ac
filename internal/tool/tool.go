// Package tool turns pointer and keyboard gestures into object creation,
// mutation and removal. Each tool is a small state machine; the Registry
// keeps exactly one of them active.
package tool

import (
	"fmt"
	"log/slog"

	"XSheetInk/internal/geom"
	"XSheetInk/internal/layer"
	"XSheetInk/internal/logging"
	"XSheetInk/internal/object"
)

// Kind names a tool.
type Kind string

const (
	KindSelect    Kind = "select"
	KindPen       Kind = "pen"
	KindLine      Kind = "line"
	KindArrow     Kind = "arrow"
	KindRectangle Kind = "rectangle"
	KindEllipse   Kind = "ellipse"
	KindText      Kind = "text"
	KindImage     Kind = "image"
	KindSymbol    Kind = "symbol"
	KindConnector Kind = "connector"
	KindEraser    Kind = "eraser"
)

// Kinds lists every tool in toolbar order.
var Kinds = []Kind{
	KindSelect, KindPen, KindLine, KindArrow, KindRectangle, KindEllipse,
	KindText, KindImage, KindSymbol, KindConnector, KindEraser,
}

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
)

// Key names the keys tools react to.
type Key string

const (
	KeyDelete    Key = "Delete"
	KeyBackspace Key = "BackSpace"
	KeyLeft      Key = "Left"
	KeyRight     Key = "Right"
	KeyUp        Key = "Up"
	KeyDown      Key = "Down"
)

// Event is one pointer sample. Screen is where the pointer is in screen
// space, Surface the same position mapped onto the layer surfaces.
type Event struct {
	Screen  geom.Point
	Surface geom.Point
	Mods    Modifiers
}

// Env is what a tool works against. The Registry shares one Env across
// all tools.
type Env struct {
	Store    *layer.Store
	Settings *Settings
	Mapper   *geom.Mapper
	Prompt   Prompter
	// LoadImage fetches image pixels; nil means object.LoadImageFile.
	LoadImage object.ImageLoader
	// RequestRedraw asks the host for a repaint from any goroutine.
	RequestRedraw func()
}

func (e *Env) grid() geom.Grid {
	if e.Mapper == nil {
		return nil
	}
	return e.Mapper.Grid
}

// Tool is one interaction state machine.
type Tool interface {
	Kind() Kind
	// Activate wires the tool to env. It reports false when a collaborator
	// the tool needs is missing.
	Activate(env *Env) bool
	// Deactivate unwires the tool and removes any object still being drawn.
	Deactivate()
	PointerDown(ev Event)
	PointerMove(ev Event)
	PointerUp(ev Event)
	// KeyDown reports whether the key was consumed.
	KeyDown(k Key, mods Modifiers) bool
}

// state is the position of a tool's state machine.
type state int

const (
	idle state = iota
	drawing
	dragging
)

func (s state) String() string {
	switch s {
	case drawing:
		return "drawing"
	case dragging:
		return "dragging"
	}
	return "idle"
}

// base supplies no-op handlers for tools that ignore some events.
type base struct {
	kind Kind
	env  *Env
	log  *slog.Logger
}

func newBase(k Kind) base {
	return base{kind: k}
}

func (b *base) Kind() Kind { return b.kind }

func (b *base) Activate(env *Env) bool {
	b.env = env
	b.log = logging.For("tool").With("tool", string(b.kind))
	return true
}

func (b *base) Deactivate()                 {}
func (b *base) PointerDown(Event)           {}
func (b *base) PointerMove(Event)           {}
func (b *base) PointerUp(Event)             {}
func (b *base) KeyDown(Key, Modifiers) bool { return false }

// inert stands in for a tool whose activation failed.
type inert struct{ base }

// Registry owns the tools and routes events to the active one. Once a
// tool receives PointerDown it keeps receiving moves until PointerUp, even
// if the pointer leaves the surface.
type Registry struct {
	env      *Env
	tools    map[Kind]Tool
	active   Tool
	captured bool
	log      *slog.Logger
}

// NewRegistry returns a registry holding every built-in tool with none
// active.
func NewRegistry(env *Env) *Registry {
	r := &Registry{
		env:   env,
		tools: make(map[Kind]Tool),
		log:   logging.For("tools"),
	}
	for _, t := range []Tool{
		newSelect(),
		newPen(),
		newLineTool(),
		newArrowTool(),
		newRectangleTool(),
		newEllipseTool(),
		newTextTool(),
		newImageTool(),
		newSymbolTool(),
		newConnectorTool(),
		newEraser(),
	} {
		r.tools[t.Kind()] = t
	}
	return r
}

// Env returns the shared environment.
func (r *Registry) Env() *Env { return r.env }

// Activate deactivates the current tool, rolling back any gesture in
// progress, and makes k active. A tool whose collaborators are missing is
// replaced by an inert one.
func (r *Registry) Activate(k Kind) error {
	t, ok := r.tools[k]
	if !ok {
		return fmt.Errorf("unknown tool %q", k)
	}
	if r.active != nil {
		r.active.Deactivate()
	}
	r.captured = false
	if !t.Activate(r.env) {
		r.log.Warn("tool unavailable, falling back to inert", "tool", string(k))
		in := &inert{base: newBase(k)}
		in.Activate(r.env)
		r.active = in
		return nil
	}
	r.active = t
	r.log.Debug("tool activated", "tool", string(k))
	return nil
}

// Active returns the active tool, or nil before the first Activate.
func (r *Registry) Active() Tool { return r.active }

// Deactivate leaves no tool active.
func (r *Registry) Deactivate() {
	if r.active != nil {
		r.active.Deactivate()
	}
	r.active = nil
	r.captured = false
}

// Captured reports whether a gesture is in progress.
func (r *Registry) Captured() bool { return r.captured }

func (r *Registry) PointerDown(ev Event) {
	if r.active == nil {
		return
	}
	r.captured = true
	r.active.PointerDown(ev)
}

func (r *Registry) PointerMove(ev Event) {
	if r.active == nil || !r.captured {
		return
	}
	r.active.PointerMove(ev)
}

func (r *Registry) PointerUp(ev Event) {
	if r.active == nil || !r.captured {
		return
	}
	r.captured = false
	r.active.PointerUp(ev)
}

func (r *Registry) KeyDown(k Key, mods Modifiers) bool {
	if r.active == nil {
		return false
	}
	return r.active.KeyDown(k, mods)
}
