package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"XSheetInk/internal/tool"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Settings tool.Settings `mapstructure:"settings"`
	Sheet    SheetConfig   `mapstructure:"sheet"`
	Log      LogConfig     `mapstructure:"log"`
}

// SheetConfig describes the exposure sheet the desktop shell lays out.
type SheetConfig struct {
	Frames     int     `mapstructure:"frames"`
	Columns    int     `mapstructure:"columns"`
	CellWidth  float64 `mapstructure:"cell_width"`
	CellHeight float64 `mapstructure:"cell_height"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Path returns the config file location. XSHEETINK_CONFIG overrides the
// default under ~/.config.
func Path() string {
	if p := os.Getenv("XSHEETINK_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "xsheetink", "config.toml")
}

func setDefaults(v *viper.Viper) {
	d := tool.DefaultSettings()
	v.SetDefault("settings.color", d.Color)
	v.SetDefault("settings.stroke_width", d.StrokeWidth)
	v.SetDefault("settings.fill", d.Fill)
	v.SetDefault("settings.fill_color", d.FillColor)
	v.SetDefault("settings.font_size", d.FontSize)
	v.SetDefault("settings.font_family", d.FontFamily)
	v.SetDefault("settings.text_alignment", string(d.TextAlignment))
	v.SetDefault("settings.symbol_kind", string(d.SymbolKind))
	v.SetDefault("settings.symbol_scale", d.SymbolScale)
	v.SetDefault("settings.dash_pattern", []float64{})
	v.SetDefault("settings.arrowhead_size", d.ArrowheadSize)
	v.SetDefault("settings.smoothing", d.Smoothing)

	v.SetDefault("sheet.frames", 48)
	v.SetDefault("sheet.columns", 6)
	v.SetDefault("sheet.cell_width", 64.0)
	v.SetDefault("sheet.cell_height", 18.0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads configuration from file and env. Env var overrides use prefix
// XSHEETINK_, with dots in keys replaced by underscores.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("XSHEETINK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing file just means defaults
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects values the engine cannot work with.
func (c Config) Validate() error {
	switch {
	case c.Settings.StrokeWidth <= 0:
		return fmt.Errorf("%w: settings.stroke_width must be positive", ErrInvalid)
	case c.Settings.FontSize <= 0:
		return fmt.Errorf("%w: settings.font_size must be positive", ErrInvalid)
	case c.Sheet.Frames < 1 || c.Sheet.Columns < 1:
		return fmt.Errorf("%w: sheet needs at least one frame and one column", ErrInvalid)
	case c.Sheet.CellWidth <= 0 || c.Sheet.CellHeight <= 0:
		return fmt.Errorf("%w: sheet cell size must be positive", ErrInvalid)
	}
	return nil
}

// Save writes cfg to Path, creating the config directory if needed. The
// desktop shell calls it to remember the last tool settings.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	s := cfg.Settings
	dash := s.DashPattern
	if dash == nil {
		dash = []float64{}
	}
	v := viper.New()
	v.SetConfigType("toml")
	v.Set("settings.color", s.Color)
	v.Set("settings.stroke_width", s.StrokeWidth)
	v.Set("settings.fill", s.Fill)
	v.Set("settings.fill_color", s.FillColor)
	v.Set("settings.font_size", s.FontSize)
	v.Set("settings.font_family", s.FontFamily)
	v.Set("settings.text_alignment", string(s.TextAlignment))
	v.Set("settings.symbol_kind", string(s.SymbolKind))
	v.Set("settings.symbol_scale", s.SymbolScale)
	v.Set("settings.dash_pattern", dash)
	v.Set("settings.arrowhead_size", s.ArrowheadSize)
	v.Set("settings.smoothing", s.Smoothing)
	v.Set("sheet.frames", cfg.Sheet.Frames)
	v.Set("sheet.columns", cfg.Sheet.Columns)
	v.Set("sheet.cell_width", cfg.Sheet.CellWidth)
	v.Set("sheet.cell_height", cfg.Sheet.CellHeight)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
