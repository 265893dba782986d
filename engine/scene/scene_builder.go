package scene

import (
	"github.com/Carmen-Shannon/oxy-forward/engine/game_object"
	"github.com/Carmen-Shannon/oxy-forward/engine/raster"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithObjects adds initial objects to the scene.
// Objects without IDs will be assigned new IDs.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			s.register(obj)
		}
	}
}

// WithWorkers sets the number of goroutines the default rasterizer shades with.
// Ignored when WithRasterizer is given. Defaults to the dispatcher's own default.
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		s.workers = max(n, 1)
	}
}

// WithRasterizer replaces the rasterizer used by RenderCPU.
func WithRasterizer(r raster.Rasterizer) SceneBuilderOption {
	return func(s *scene) {
		s.rasterizer = r
	}
}

// WithCullingDisabled disables frustum culling in RenderCPU. By default objects whose
// bounding sphere lies outside the camera frustum are skipped.
//
// Parameters:
//   - disabled: true to draw every enabled object
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCullingDisabled(disabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.cullingDisabled = disabled
	}
}
