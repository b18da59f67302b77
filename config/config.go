// Package config loads the editor settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"box-editor/editor"
	"box-editor/logger"
	"box-editor/scene"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger   logger.Config          `toml:"logger"`
	History  HistoryConfig          `toml:"history"`
	Stacking editor.StackingOptions `toml:"stacking"`
	Draw     DrawConfig             `toml:"draw"`
	Textures []scene.CatalogEntry   `toml:"textures"`

	// Keys present in the file that no field took. Load cannot log them
	// because the logger is configured from the result.
	Undecoded []string `toml:"-"`
	// Path the settings were read from; empty when defaults were used.
	Source string `toml:"-"`
}

// HistoryConfig bounds the undo stack.
type HistoryConfig struct {
	MaxDepth int `toml:"max_depth"` // 0 = unlimited
}

// DrawConfig holds the draw tool settings.
type DrawConfig struct {
	InitialHeight float32 `toml:"initial_height"`
	MinSize       float32 `toml:"min_size"`
}

// Default creates a Config with default values.
func Default() *Config {
	return &Config{
		Logger: logger.Config{
			Level: DefaultLogLevel,
		},
		History: HistoryConfig{
			MaxDepth: editor.DefaultMaxHistory,
		},
		Stacking: editor.DefaultStackingOptions(),
		Draw: DrawConfig{
			InitialHeight: editor.DefaultInitialHeight,
			MinSize:       editor.DefaultMinSize,
		},
	}
}

// DefaultPath returns the per-user config file location, or "" when the
// platform has no config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// Load reads the file at path over the defaults. A missing file is not an
// error. Invalid values are reset to their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		cfg.validate()
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
		cfg.validate()
		return cfg, nil
	}
	if err != nil {
		return Default(), fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	for _, key := range md.Undecoded() {
		cfg.Undecoded = append(cfg.Undecoded, key.String())
	}
	cfg.Source = path
	cfg.validate()
	return cfg, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := Default()

	if c.Logger.Level == "" {
		c.Logger.Level = defaults.Logger.Level
	}
	if c.History.MaxDepth < 0 {
		c.History.MaxDepth = defaults.History.MaxDepth
	}
	if c.Stacking.Tolerance <= 0 {
		c.Stacking.Tolerance = defaults.Stacking.Tolerance
	}
	if c.Stacking.OverlapEpsilon <= 0 {
		c.Stacking.OverlapEpsilon = defaults.Stacking.OverlapEpsilon
	}
	if c.Stacking.CellSize <= 0 {
		c.Stacking.CellSize = defaults.Stacking.CellSize
	}
	if c.Draw.InitialHeight <= 0 {
		c.Draw.InitialHeight = defaults.Draw.InitialHeight
	}
	if c.Draw.MinSize <= 0 {
		c.Draw.MinSize = defaults.Draw.MinSize
	}
}

// EditorOptions converts the settings into editor options.
func (c *Config) EditorOptions() editor.Options {
	return editor.Options{
		MaxHistory:    c.History.MaxDepth,
		Stacking:      c.Stacking,
		InitialHeight: c.Draw.InitialHeight,
		MinSize:       c.Draw.MinSize,
	}
}

// Catalog builds the material catalog from the [[textures]] entries.
// Relative texture paths are resolved against the config file directory.
func (c *Config) Catalog() (*scene.Catalog, error) {
	entries := make([]scene.CatalogEntry, len(c.Textures))
	copy(entries, c.Textures)
	if c.Source != "" {
		base := filepath.Dir(c.Source)
		for i := range entries {
			if entries[i].Path != "" && !filepath.IsAbs(entries[i].Path) {
				entries[i].Path = filepath.Join(base, entries[i].Path)
			}
		}
	}
	cat, err := scene.NewCatalog(entries)
	if err != nil {
		return nil, fmt.Errorf("config textures: %w", err)
	}
	return cat, nil
}
