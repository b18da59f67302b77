package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"box-editor/editor"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Empty(t, cfg.Source)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, editor.DefaultMaxHistory, cfg.History.MaxDepth)
	assert.Zero(t, cfg.History.MaxDepth, "history is unlimited unless configured")
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[logger]
level = "debug"

[history]
max_depth = 50

[stacking]
tolerance = 0.1

[draw]
min_size = 0.25

[[textures]]
name = "oak"
path = "textures/oak.png"
color = [0.6, 0.4, 0.2, 1.0]
price = 12.5

[[textures]]
name = "white"
price = 1

[unknown]
setting = true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 50, cfg.History.MaxDepth)
	assert.Equal(t, float32(0.1), cfg.Stacking.Tolerance)
	assert.Equal(t, float32(editor.DefaultOverlapEpsilon), cfg.Stacking.OverlapEpsilon)
	assert.Equal(t, float32(0.25), cfg.Draw.MinSize)
	assert.Equal(t, float32(editor.DefaultInitialHeight), cfg.Draw.InitialHeight)
	require.Len(t, cfg.Textures, 2)
	assert.Equal(t, [4]float32{0.6, 0.4, 0.2, 1}, cfg.Textures[0].Color)
	assert.Equal(t, 12.5, cfg.Textures[0].Price)
	assert.Contains(t, cfg.Undecoded, "unknown.setting")
	assert.Equal(t, path, cfg.Source)

	cat, err := cfg.Catalog()
	require.NoError(t, err)
	oak, ok := cat.Lookup("oak")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "textures", "oak.png"), oak.Path)

	opts := cfg.EditorOptions()
	assert.Equal(t, 50, opts.MaxHistory)
	assert.Equal(t, float32(0.25), opts.MinSize)
}

func TestLoadResetsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
[logger]
level = ""

[history]
max_depth = -3

[stacking]
tolerance = -1
cell_size = 0
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	d := Default()
	assert.Equal(t, d.Logger.Level, cfg.Logger.Level)
	assert.Equal(t, d.History.MaxDepth, cfg.History.MaxDepth)
	assert.Equal(t, d.Stacking, cfg.Stacking)
}

func TestLoadParseError(t *testing.T) {
	_, err := Load(writeConfig(t, "[history\nmax_depth = 1"))
	assert.Error(t, err)
}

func TestCatalogRejectsDuplicates(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[[textures]]
name = "oak"
[[textures]]
name = "OAK"
`))
	require.NoError(t, err)
	_, err = cfg.Catalog()
	assert.Error(t, err)
}

func TestFlagOverrides(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	var f Flags
	f.DefineFlags(fs)
	require.NoError(t, fs.Parse([]string{"-loglevel", "warn", "-max-history", "25", "-config", "x.toml"}))

	cfg := Default()
	f.ApplyOverrides(cfg)
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.Equal(t, 25, cfg.History.MaxDepth)
	assert.Equal(t, "", cfg.Logger.FilePath)
	assert.Equal(t, "x.toml", f.Path())
}
