package raster

import "github.com/Carmen-Shannon/oxy-forward/engine/shading"

// RasterizerOption is a functional option for configuring a Rasterizer.
type RasterizerOption func(*rasterizer)

// WithDispatcher sets the dispatcher that evaluates both stages.
//
// Parameters:
//   - d: the dispatcher to use
//
// Returns:
//   - RasterizerOption: functional option to set the dispatcher
func WithDispatcher(d shading.Dispatcher) RasterizerOption {
	return func(r *rasterizer) {
		r.dispatcher = d
	}
}

// WithCullMode sets which faces are discarded.
//
// Parameters:
//   - mode: the cull mode
//
// Returns:
//   - RasterizerOption: functional option to set the cull mode
func WithCullMode(mode CullMode) RasterizerOption {
	return func(r *rasterizer) {
		r.cullMode = mode
	}
}
