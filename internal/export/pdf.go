// Package export renders the sheet and its annotation layers to PDF.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"XSheetInk/internal/engine"
	"XSheetInk/internal/geom"
	"XSheetInk/internal/logging"

	"github.com/jung-kurt/gofpdf"
)

// Options controls the page the sheet is placed on.
type Options struct {
	Orientation string
	PageSize    string
	// Margin is the distance in mm from the page corner to the sheet.
	Margin float64
	// PixelsPerMM is the raster resolution of the annotation layers.
	PixelsPerMM float64
	Title       string
}

// DefaultOptions returns a portrait A4 page at roughly 100 dpi.
func DefaultOptions() Options {
	return Options{
		Orientation: "P",
		PageSize:    "A4",
		Margin:      10,
		PixelsPerMM: 4,
		Title:       "Exposure sheet",
	}
}

// PDF writes the export to path.
func PDF(path string, e *engine.Engine, opts Options) error {
	pdf, err := render(e, opts)
	if err != nil {
		return err
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf %s: %w", path, err)
	}
	return nil
}

// Write renders the export into w.
func Write(w io.Writer, e *engine.Engine, opts Options) error {
	pdf, err := render(e, opts)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func render(e *engine.Engine, opts Options) (*gofpdf.Fpdf, error) {
	log := logging.For("export")
	if opts.PixelsPerMM <= 0 {
		opts.PixelsPerMM = DefaultOptions().PixelsPerMM
	}
	scale := opts.PixelsPerMM

	pdf := gofpdf.New(opts.Orientation, "mm", opts.PageSize, "")
	pdf.SetTitle(opts.Title, true)
	pdf.SetCreator("XSheetInk", true)
	pdf.AddPage()
	pw, ph := pdf.GetPageSize()

	// the page, expressed in screen space, with the sheet at the margin
	origin := e.Mapper().Origin()
	frame := geom.Rect{
		X:      origin.X - opts.Margin*scale,
		Y:      origin.Y - opts.Margin*scale,
		Width:  pw * scale,
		Height: ph * scale,
	}
	if g := e.Mapper().Grid; g != nil {
		drawSheet(pdf, g, frame, scale)
	}

	e.Reanchor(frame)
	defer e.RestoreAnchor()

	placed := 0
	for i, l := range e.Store().Layers() {
		if !l.Visible {
			continue
		}
		var buf bytes.Buffer
		if err := l.Target().EncodePNG(&buf); err != nil {
			return nil, fmt.Errorf("encode layer %d: %w", i, err)
		}
		name := "layer-" + strconv.Itoa(i)
		opt := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opt, &buf)
		pdf.ImageOptions(name, 0, 0, pw, ph, false, opt, 0, "")
		placed++
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	log.Info("pdf rendered", "layers", placed, "page", opts.PageSize)
	return pdf, nil
}

// drawSheet rules every cell of g onto the page and numbers the frames.
func drawSheet(pdf *gofpdf.Fpdf, g geom.Grid, frame geom.Rect, scale float64) {
	toPage := func(r geom.Rect) (x, y, w, h float64) {
		return (r.X - frame.X) / scale, (r.Y - frame.Y) / scale, r.Width / scale, r.Height / scale
	}

	pdf.SetDrawColor(160, 160, 160)
	pdf.SetLineWidth(0.1)
	pdf.SetFont("Helvetica", "", 5)
	pdf.SetTextColor(90, 90, 90)
	for f := 1; ; f++ {
		first, ok := g.CellRect(f, 0)
		if !ok {
			break
		}
		for c := 0; ; c++ {
			r, ok := g.CellRect(f, c)
			if !ok {
				break
			}
			x, y, w, h := toPage(r)
			pdf.Rect(x, y, w, h, "D")
		}
		x, y, _, h := toPage(first)
		pdf.Text(x-4, y+h*0.75, strconv.Itoa(f))
	}

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.3)
	x, y, w, h := toPage(g.Bounds())
	pdf.Rect(x, y, w, h, "D")
}
