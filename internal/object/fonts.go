package object

import (
	"XSheetInk/internal/logging"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Font families understood by the text variant. Anything else renders in
// FamilySans.
const (
	FamilySans   = "sans"
	FamilyMono   = "mono"
	FamilyBold   = "bold"
	FamilyItalic = "italic"
)

var familyData = map[string][]byte{
	FamilySans:   goregular.TTF,
	FamilyMono:   gomono.TTF,
	FamilyBold:   gobold.TTF,
	FamilyItalic: goitalic.TTF,
}

type faceKey struct {
	family string
	size   float64
}

// Fonts parses the bundled Go fonts on first use and caches one face per
// family and size. It is not safe for concurrent use; the engine owns it on
// the UI goroutine.
type Fonts struct {
	sources map[string]*text.FontSource
	faces   map[faceKey]text.Face
}

// NewFonts returns an empty registry.
func NewFonts() *Fonts {
	return &Fonts{
		sources: make(map[string]*text.FontSource),
		faces:   make(map[faceKey]text.Face),
	}
}

// Face returns the face for family at size, or nil when the font could not
// be parsed.
func (f *Fonts) Face(family string, size float64) text.Face {
	if f == nil {
		return nil
	}
	if _, ok := familyData[family]; !ok {
		family = FamilySans
	}
	key := faceKey{family, size}
	if face, ok := f.faces[key]; ok {
		return face
	}
	src, ok := f.sources[family]
	if !ok {
		var err error
		src, err = text.NewFontSource(familyData[family])
		if err != nil {
			logging.For("fonts").Warn("font parse failed", "family", family, "err", err)
			return nil
		}
		f.sources[family] = src
	}
	face := src.Face(size)
	f.faces[key] = face
	return face
}

// Measure returns the advance width and line height of s. Without a usable
// face it estimates from the size so hit-testing still has a box.
func (f *Fonts) Measure(s, family string, size float64) (w, h float64) {
	if face := f.Face(family, size); face != nil {
		return text.Measure(s, face)
	}
	return 0.6 * size * float64(len([]rune(s))), size
}
