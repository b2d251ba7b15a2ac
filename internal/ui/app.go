package ui

import (
	"XSheetInk/internal/config"
	"XSheetInk/internal/engine"
	"XSheetInk/internal/logging"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// NewBoard builds the engine over a sheet described by cfg and wraps it in
// a board. Redraw requests from image loads are marshalled onto the UI
// thread with fyne.Do.
func NewBoard(cfg config.Config, win fyne.Window) *BoardWidget {
	sheet := newSheet(cfg.Sheet)
	var e *engine.Engine
	e = engine.New(sheet,
		engine.WithSettings(cfg.Settings),
		engine.WithPrompter(&dialogPrompter{win: win}),
		engine.WithRedrawRequester(func() {
			fyne.Do(func() { e.FlushRedraw() })
		}),
	)
	return NewBoardWidget(e, sheet)
}

func newMainMenu(win fyne.Window, board *BoardWidget) *fyne.MainMenu {
	jsonFilter := storage.NewExtensionFileFilter([]string{".json"})
	open := fyne.NewMenuItem("Open...", func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err != nil {
				dialog.ShowError(err, win)
				return
			}
			if r != nil {
				board.LoadFromFile(r)
			}
		}, win)
		d.SetFilter(jsonFilter)
		d.Show()
	})
	save := fyne.NewMenuItem("Save...", func() {
		d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
			if err != nil {
				dialog.ShowError(err, win)
				return
			}
			if w != nil {
				board.SaveToFile(w)
			}
		}, win)
		d.SetFileName("annotations.json")
		d.SetFilter(jsonFilter)
		d.Show()
	})
	exportPDF := fyne.NewMenuItem("Export PDF...", func() { ExportPDF(win, board) })
	clearAll := fyne.NewMenuItem("Clear all", func() {
		dialog.ShowConfirm("Clear all", "Remove every annotation on every layer?", func(ok bool) {
			if ok {
				board.Clear()
			}
		}, win)
	})
	return fyne.NewMainMenu(
		fyne.NewMenu("File", open, save, fyne.NewMenuItemSeparator(), exportPDF, fyne.NewMenuItemSeparator(), clearAll),
	)
}

func RunApp(cfg config.Config) {
	log := logging.For("ui")
	myApp := app.New()
	myWindow := myApp.NewWindow("XSheetInk")
	myWindow.Resize(fyne.NewSize(1024, 768))

	// Create the interactive board widget
	board := NewBoard(cfg, myWindow)

	// Create the toolbar and pass it a reference to the board
	toolbar := NewToolbar(board)

	// Set up the main layout
	content := container.NewBorder(toolbar, board.StatusBar(), nil, nil, container.NewScroll(board))

	myWindow.SetMainMenu(newMainMenu(myWindow, board))
	myWindow.SetContent(content)
	myWindow.SetOnClosed(func() {
		cfg.Settings = *board.Engine().Settings()
		cfg.Sheet.Frames = board.Frames()
		if err := config.Save(cfg); err != nil {
			log.Warn("saving settings", "err", err)
		}
	})
	myWindow.ShowAndRun()
}
