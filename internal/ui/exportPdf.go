package ui

import (
	"XSheetInk/internal/export"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// ExportPDF asks for a destination and writes the sheet with its
// annotations there.
func ExportPDF(win fyne.Window, board *BoardWidget) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if writer == nil {
			return
		}
		defer func() {
			if err := writer.Close(); err != nil {
				board.log.Error("closing export", "err", err)
			}
		}()

		err = export.Write(writer, board.Engine(), export.DefaultOptions())
		board.Refresh()
		if err != nil {
			board.log.Error("export failed", "uri", writer.URI().String(), "err", err)
			board.SetStatus("Export failed")
			dialog.ShowError(err, win)
			return
		}
		board.SetStatus("Exported " + writer.URI().Name())
	}, win)
	d.SetFileName("sheet.pdf")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	d.Show()
}
