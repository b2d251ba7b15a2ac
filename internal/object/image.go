package object

import (
	"sync"
	"sync/atomic"

	"XSheetInk/internal/geom"
	"XSheetInk/internal/logging"

	"github.com/gogpu/gg"
)

// ImageLoader fetches the pixels behind an image source.
type ImageLoader func(src string) (*gg.ImageBuf, error)

// LoadImageFile is the default loader; src is a PNG, JPEG or WebP path.
func LoadImageFile(src string) (*gg.ImageBuf, error) {
	return gg.LoadImage(src)
}

// Image is a picture placed with its top-left at the anchor. Until its
// pixels arrive it draws a placeholder frame of the same size.
type Image struct {
	Base
	Src    string
	Width  float64
	Height float64

	once   sync.Once
	pixels atomic.Pointer[gg.ImageBuf]
	failed atomic.Bool
}

// NewImage returns an unloaded image at p.
func NewImage(p geom.Point, src string, width, height float64) *Image {
	return &Image{Base: NewBase(p, DefaultColor, 1), Src: src, Width: width, Height: height}
}

func (im *Image) Type() Kind { return KindImage }

// Load starts fetching the pixels in the background, once. done is called
// from the loading goroutine after the pixels (or the failure) are recorded;
// it must only request a redraw, never paint.
func (im *Image) Load(load ImageLoader, done func()) {
	im.once.Do(func() {
		go func() {
			buf, err := load(im.Src)
			if err != nil {
				logging.For("image").Warn("image load failed", "src", im.Src, "err", err)
				im.failed.Store(true)
			} else {
				im.pixels.Store(buf)
			}
			if done != nil {
				done()
			}
		}()
	})
}

// Loaded reports whether the pixels are available.
func (im *Image) Loaded() bool { return im.pixels.Load() != nil }

// Failed reports whether loading gave up.
func (im *Image) Failed() bool { return im.failed.Load() }

func (im *Image) Draw(cv *Canvas) {
	box := im.Bounds()
	if buf := im.pixels.Load(); buf != nil {
		cv.Image(buf, box)
		return
	}
	color := "#999999"
	if im.Failed() {
		color = "#cc3333"
	}
	cv.StrokeStyle(color, 1, []float64{4, 4})
	cv.Rectangle(box)
	cv.Stroke()
	cv.StrokeStyle(color, 1, nil)
	cv.MoveTo(geom.Pt(box.X, box.Y))
	cv.LineTo(geom.Pt(box.X+box.Width, box.Y+box.Height))
	cv.MoveTo(geom.Pt(box.X+box.Width, box.Y))
	cv.LineTo(geom.Pt(box.X, box.Y+box.Height))
	cv.Stroke()
}

func (im *Image) Bounds() geom.Rect {
	return geom.Rect{X: im.X, Y: im.Y, Width: im.Width, Height: im.Height}
}

func (im *Image) ContainsPoint(p geom.Point) bool {
	return im.Bounds().Contains(p)
}

func (im *Image) Move(dx, dy float64) { im.move(dx, dy) }

func (im *Image) Serialize() Record {
	r := im.record(KindImage)
	r["src"] = im.Src
	r["width"] = im.Width
	r["height"] = im.Height
	return r
}

func readImage(r Record) (*Image, error) {
	b, err := readBase(r)
	if err != nil {
		return nil, err
	}
	src, err := r.requireString("src")
	if err != nil {
		return nil, err
	}
	return &Image{
		Base:   b,
		Src:    src,
		Width:  r.Number("width", 0),
		Height: r.Number("height", 0),
	}, nil
}
