package scene

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"box-editor/logger"
)

// TextureLoader turns catalog names into ready-to-apply materials. Image
// decoding can be slow, so concurrent requests for the same name share one
// load and finished materials are cached for the session.
type TextureLoader struct {
	catalog *Catalog
	read    func(path string) (*Texture, error)

	group singleflight.Group
	mu    sync.Mutex
	cache map[string]*Material
}

// NewTextureLoader creates a loader reading image files with LoadTexture.
func NewTextureLoader(catalog *Catalog) *TextureLoader {
	return &TextureLoader{
		catalog: catalog,
		read:    LoadTexture,
		cache:   make(map[string]*Material),
	}
}

// Load resolves name to a material, waiting for the image to finish loading.
// If ctx is done first, Load returns ctx.Err() and the caller must not build
// a command; the shared load keeps running and fills the cache.
func (l *TextureLoader) Load(ctx context.Context, name string) (*Material, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entry, ok := l.catalog.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownTexture)
	}
	key := strings.ToLower(entry.Name)

	l.mu.Lock()
	if m, ok := l.cache[key]; ok {
		l.mu.Unlock()
		return m, nil
	}
	l.mu.Unlock()

	ch := l.group.DoChan(key, func() (any, error) {
		m, err := l.build(entry)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.cache[key] = m
		l.mu.Unlock()
		return m, nil
	})

	select {
	case <-ctx.Done():
		logger.Debugf("TextureLoader: load of %q abandoned: %v", entry.Name, ctx.Err())
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			logger.Debugf("TextureLoader: shared in-flight load of %q", entry.Name)
		}
		return res.Val.(*Material), nil
	}
}

func (l *TextureLoader) build(entry CatalogEntry) (*Material, error) {
	albedo := entry.albedo()
	var tex *Texture
	if entry.Path == "" {
		tex = NewSolidTexture(entry.Name,
			uint8(albedo.R*255), uint8(albedo.G*255), uint8(albedo.B*255), uint8(albedo.A*255))
	} else {
		var err error
		tex, err = l.read(entry.Path)
		if err != nil {
			return nil, fmt.Errorf("load texture %q: %w", entry.Name, err)
		}
	}
	logger.Debugf("TextureLoader: loaded %q (%dx%d)", entry.Name, tex.Width, tex.Height)
	return NewMaterial(entry.Name, albedo, tex, entry.Price), nil
}
