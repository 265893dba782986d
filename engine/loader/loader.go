// Package loader imports triangle meshes from glTF 2.0 (.gltf and .glb) files into models.
// Only geometry is read: POSITION, NORMAL and COLOR_0. Missing normals are generated.
package loader

import (
	"fmt"
	"io"
	"maps"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	material model.Material
	color    [3]float32

	modelCache map[string]model.Model
}

// Loader imports mesh files and caches the resulting models by path or name.
type Loader interface {
	// Load imports a .gltf or .glb file. A model already cached under path is returned as is.
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - model.Model: the loaded and cached model
	//   - error: error if loading fails
	Load(path string) (model.Model, error)

	// LoadReader imports a model from a reader and caches it under name.
	//
	// Parameters:
	//   - name: the cache key and fallback model name
	//   - r: the reader providing model data
	//   - isGLB: true if the reader provides GLB binary data
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader, isGLB bool) (model.Model, error)

	// Get retrieves a cached model by name. Returns nil if not found.
	Get(name string) model.Model

	// Models returns a copy of the model cache.
	Models() map[string]model.Model
}

var _ Loader = &loader{}

// NewLoader creates a Loader. Imported models are tagged model.MaterialObject and vertices
// without COLOR_0 are white unless options say otherwise.
//
// Parameters:
//   - options: functional options applied to the loader
//
// Returns:
//   - Loader: the new loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		material:   model.MaterialObject,
		color:      [3]float32{1, 1, 1},
		modelCache: make(map[string]model.Model),
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *loader) Load(path string) (model.Model, error) {
	if m := l.Get(path); m != nil {
		return m, nil
	}

	var p gltfParser
	if err := p.parseFile(path); err != nil {
		return nil, fmt.Errorf("loader: %s: %w", path, err)
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m, err := l.build(&p, base)
	if err != nil {
		return nil, fmt.Errorf("loader: %s: %w", path, err)
	}

	common.Logger().Debug("model loaded", "path", path, "name", m.Name(), "triangles", m.IndexCount()/3)
	return l.store(path, m), nil
}

func (l *loader) LoadReader(name string, r io.Reader, isGLB bool) (model.Model, error) {
	var p gltfParser
	if err := p.parseReader(r, isGLB); err != nil {
		return nil, fmt.Errorf("loader: %s: %w", name, err)
	}
	m, err := l.build(&p, name)
	if err != nil {
		return nil, fmt.Errorf("loader: %s: %w", name, err)
	}
	return l.store(name, m), nil
}

func (l *loader) build(p *gltfParser, fallbackName string) (model.Model, error) {
	mesh, err := extractMeshes(p, l.color)
	if err != nil {
		return nil, err
	}
	return model.NewModel(
		model.WithName(common.Coalesce(mesh.name, fallbackName)),
		model.WithVertices(mesh.vertices...),
		model.WithIndices(mesh.indices...),
		model.WithMaterial(l.material),
	), nil
}

// store caches m under key unless another load got there first, and returns the cached model.
func (l *loader) store(key string, m model.Model) model.Model {
	l.mu.Lock()
	defer l.mu.Unlock()
	if cached, ok := l.modelCache[key]; ok {
		return cached
	}
	l.modelCache[key] = m
	return m
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return maps.Clone(l.modelCache)
}
