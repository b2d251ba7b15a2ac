package main

import (
	"log"
	"log/slog"
	"os"

	"XSheetInk/internal/config"
	"XSheetInk/internal/logging"
	"XSheetInk/internal/ui"
)

func newLogger(c config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: logging.ParseLevel(c.Level)}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logging.SetLogger(newLogger(cfg.Log))
	logging.Logger().Info("starting", "config", config.Path(), "frames", cfg.Sheet.Frames, "columns", cfg.Sheet.Columns)

	ui.RunApp(cfg)
}
