package asset

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/gravity2d/render"
)

// Releaser is implemented by textures holding backend resources
type Releaser interface {
	Release()
}

// Loader produces a texture on first load
type Loader func() (render.Texture, error)

// Registry caches textures by name
// A missing name resolves to a nil texture, which renderers treat as nothing to draw
type Registry struct {
	mu       sync.RWMutex
	textures map[string]render.Texture
	logger   *zap.Logger
}

// NewRegistry creates an empty registry; a nil logger disables logging
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		textures: make(map[string]render.Texture),
		logger:   logger,
	}
}

// Register stores tex under name, releasing any texture it replaces
func (r *Registry) Register(name string, tex render.Texture) error {
	if name == "" {
		return errors.New("asset: empty texture name")
	}
	if tex == nil {
		return errors.Errorf("asset: nil texture for %q", name)
	}

	r.mu.Lock()
	old := r.textures[name]
	r.textures[name] = tex
	r.mu.Unlock()

	if old != nil && old != tex {
		release(old)
	}
	r.logger.Debug("texture registered", zap.String("name", name))
	return nil
}

// Load returns the cached texture for name, or runs load and caches its result
// A failed load caches nothing
func (r *Registry) Load(name string, load Loader) (render.Texture, error) {
	if tex := r.Get(name); tex != nil {
		return tex, nil
	}
	if load == nil {
		return nil, errors.Errorf("asset: no loader for %q", name)
	}

	tex, err := load()
	if err != nil {
		r.logger.Warn("texture load failed", zap.String("name", name), zap.Error(err))
		return nil, errors.Wrapf(err, "asset: load %q", name)
	}
	if tex == nil {
		return nil, errors.Errorf("asset: loader for %q returned no texture", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Lost a race with another loader, keep the first
	if cached, ok := r.textures[name]; ok {
		release(tex)
		return cached, nil
	}
	r.textures[name] = tex
	r.logger.Debug("texture loaded", zap.String("name", name))
	return tex, nil
}

// Get returns the texture for name, nil when absent
func (r *Registry) Get(name string) render.Texture {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.textures[name]
}

// Unload releases and forgets one texture
func (r *Registry) Unload(name string) {
	r.mu.Lock()
	tex, ok := r.textures[name]
	delete(r.textures, name)
	r.mu.Unlock()

	if ok {
		release(tex)
		r.logger.Debug("texture unloaded", zap.String("name", name))
	}
}

// UnloadAll releases and forgets every texture
func (r *Registry) UnloadAll() {
	r.mu.Lock()
	all := r.textures
	r.textures = make(map[string]render.Texture)
	r.mu.Unlock()

	for _, tex := range all {
		release(tex)
	}
	r.logger.Debug("all textures unloaded", zap.Int("count", len(all)))
}

// Len returns the number of cached textures
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.textures)
}

// Names returns cached names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.textures))
	for name := range r.textures {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

func release(tex render.Texture) {
	if rel, ok := tex.(Releaser); ok {
		rel.Release()
	}
}
