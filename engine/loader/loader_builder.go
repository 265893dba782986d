package loader

import (
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithMaterial is an option builder that sets the material tag given to imported models.
//
// Parameters:
//   - material: the material tag
//
// Returns:
//   - LoaderBuilderOption: a function that applies the material option to a loader
func WithMaterial(material model.Material) LoaderBuilderOption {
	return func(l *loader) {
		l.material = material
	}
}

// WithDefaultColor sets the albedo of vertices that carry no COLOR_0.
func WithDefaultColor(r, g, b float32) LoaderBuilderOption {
	return func(l *loader) {
		l.color = [3]float32{r, g, b}
	}
}

// WithModel is an option builder that pre-populates the model cache with a model.
//
// Parameters:
//   - key: the cache key for the model
//   - model: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, model model.Model) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[key] = model
	}
}
