// Command demo runs a scripted, headless editing session: it stacks boxes,
// extrudes the base, walks the history back and forth and exports the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"box-editor/config"
	"box-editor/editor"
	bio "box-editor/io"
	"box-editor/logger"
	"box-editor/math"
	"box-editor/scene"
)

// demoTextures is used when the config file defines no catalog.
var demoTextures = []scene.CatalogEntry{
	{Name: "oak", Color: [4]float32{0.6, 0.4, 0.2, 1}, Price: 12.5},
	{Name: "steel", Color: [4]float32{0.7, 0.72, 0.75, 1}, Price: 30},
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "demo: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var flags config.Flags
	flags.DefineFlags(flag.CommandLine)
	gltfPath := flag.String("gltf", "", "Write the final scene as glTF (.gltf or .glb)")
	objPath := flag.String("obj", "", "Write the final scene as Wavefront OBJ")
	layoutPath := flag.String("layout", "", "Save the final layout as JSON")
	importPath := flag.String("load", "", "Import a saved layout before the scripted session")
	flag.Parse()

	cfg, err := config.Load(flags.Path())
	if err != nil {
		return err
	}
	flags.ApplyOverrides(cfg)

	closeLog, err := logger.Setup(cfg.Logger)
	if err != nil {
		return err
	}
	defer closeLog()
	if len(cfg.Undecoded) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", cfg.Source, cfg.Undecoded)
	}
	if cfg.Source != "" {
		logger.Infof("Loaded configuration from: %s", cfg.Source)
	}
	if len(cfg.Textures) == 0 {
		cfg.Textures = demoTextures
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		return err
	}

	opts := cfg.EditorOptions()
	opts.PriceHook = func(total float64) { logger.Debugf("price total %.2f", total) }
	e := editor.NewEditor(opts, scene.NewTextureLoader(catalog))

	panel := &StatusPanel{}
	e.History.Subscribe(func(ev editor.Event) {
		panel.Refresh(e, ev)
		panel.WriteTo(os.Stdout)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if *importPath != "" {
		if err := importLayout(ctx, e, *importPath); err != nil {
			return err
		}
	}
	if err := script(ctx, e); err != nil {
		return err
	}

	boxes := e.Scene.Objects()
	if *gltfPath != "" {
		if err := bio.ExportGLTF(*gltfPath, boxes); err != nil {
			return err
		}
		logger.Infof("Wrote %s", *gltfPath)
	}
	if *objPath != "" {
		if err := bio.ExportOBJ(*objPath, boxes); err != nil {
			return err
		}
		logger.Infof("Wrote %s", *objPath)
	}
	if *layoutPath != "" {
		if err := bio.SaveLayout(*layoutPath, bio.NewLayout("demo", boxes)); err != nil {
			return err
		}
		logger.Infof("Wrote %s", *layoutPath)
	}
	return nil
}

func importLayout(ctx context.Context, e *editor.Editor, path string) error {
	layout, err := bio.LoadLayout(path)
	if err != nil {
		return err
	}
	specs, err := layout.Specs(ctx, e.Textures)
	if err != nil {
		return err
	}
	_, err = e.Import(specs)
	return err
}

// script draws a base, drops a crate onto it, raises the base and then
// steps the history back and forth.
func script(ctx context.Context, e *editor.Editor) error {
	base, err := e.DrawBox("base", math.Vec3{X: -1, Z: -1}, math.Vec3{X: 1, Z: 1}, 0)
	if err != nil {
		return err
	}
	grow, err := e.BeginExtrude(base, editor.FaceTop)
	if err != nil {
		return err
	}
	if err := grow.Update(0.98); err != nil {
		grow.Cancel()
		return err
	}
	if _, err := grow.End(); err != nil {
		return err
	}

	crate, err := e.DrawBox("crate", math.Vec3{X: 3, Z: -0.4}, math.Vec3{X: 3.8, Z: 0.4}, 0)
	if err != nil {
		return err
	}
	if _, err := e.ApplyTextureAll(ctx, crate, "oak"); err != nil {
		return err
	}

	move, err := e.BeginMove(crate)
	if err != nil {
		return err
	}
	if err := move.Update(math.Vec3{X: 0.2, Z: 0}); err != nil {
		move.Cancel()
		return err
	}
	if _, err := move.End(); err != nil {
		return err
	}

	// The crate is discovered on top of the base and rides up with it.
	raise, err := e.BeginExtrude(base, editor.FaceTop)
	if err != nil {
		return err
	}
	if err := raise.Update(0.5); err != nil {
		raise.Cancel()
		return err
	}
	if _, err := raise.End(); err != nil {
		return err
	}
	if _, err := e.Rotate(base, 0.3); err != nil {
		return err
	}

	for i := 0; i < 2; i++ {
		e.Undo()
	}
	for i := 0; i < 2; i++ {
		e.Redo()
	}
	logger.Infof("Session finished: %d boxes, total %.2f", e.Scene.Len(), e.Price())
	return nil
}
