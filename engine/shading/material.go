package shading

import (
	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
)

// Ground grid parameters.
const (
	GroundGridScale float32 = 2.0  // grid lines per world unit; the pattern repeats every 0.5 units
	GroundLineWidth float32 = 0.05 // smoothstep band, in grid-cell units, around each line
)

var (
	// GroundBaseColor is the albedo at the center of a grid cell.
	GroundBaseColor = common.V3(0.30, 0.60, 0.30)
	// GroundLineColor is the albedo on a grid line.
	GroundLineColor = common.V3(0.18, 0.38, 0.18)
)

// ClassifyColor applies the vertex-color heuristic: green above 0.4 and red below 0.3
// is ground. The result depends only on the color.
//
// Parameters:
//   - color: interpolated vertex color
//
// Returns:
//   - model.Material: MaterialGround or MaterialObject
func ClassifyColor(color common.Vec3) model.Material {
	if color[1] > 0.4 && color[0] < 0.3 {
		return model.MaterialGround
	}
	return model.MaterialObject
}

// GroundAlbedo evaluates the procedural grid at a world position. Only X and Z are used.
// Grid lines sit at multiples of 1/GroundGridScale on both axes.
//
// Parameters:
//   - world: fragment world-space position
//
// Returns:
//   - common.Vec3: GroundLineColor on a line, GroundBaseColor at a cell center, blended between
func GroundAlbedo(world common.Vec3) common.Vec3 {
	fx := common.Fract(world[0] * GroundGridScale)
	fz := common.Fract(world[2] * GroundGridScale)
	dx := min(fx, 1-fx)
	dz := min(fz, 1-fz)
	line := 1 - common.Smoothstep(0, GroundLineWidth, min(dx, dz))
	return GroundBaseColor.Mix(GroundLineColor, line)
}

// MaterialFunc returns the albedo and specular multiplier for one fragment.
type MaterialFunc func(cfg *Config, in *Interpolants) (albedo common.Vec3, specularScale float32)

// materials is the dispatch table consulted by the fragment stage.
var materials = map[model.Material]MaterialFunc{
	model.MaterialObject: func(_ *Config, in *Interpolants) (common.Vec3, float32) {
		return in.Color, 1
	},
	model.MaterialGround: func(cfg *Config, in *Interpolants) (common.Vec3, float32) {
		return GroundAlbedo(in.WorldPosition), cfg.GroundSpecularScale
	},
}

// ResolveMaterial picks the material for a fragment according to cfg.MaterialSelection.
// Unknown tags fall back to MaterialObject.
//
// Parameters:
//   - cfg: the stage configuration
//   - draw: the per-draw uniform carrying the material tag
//   - color: interpolated vertex color
//
// Returns:
//   - model.Material: the material to shade with
func ResolveMaterial(cfg *Config, draw *model.GPUDrawUniform, color common.Vec3) model.Material {
	switch cfg.MaterialSelection {
	case MaterialSelectionColorHeuristic:
		return ClassifyColor(color)
	case MaterialSelectionTagged:
		m := model.Material(draw.Material)
		if _, ok := materials[m]; ok {
			return m
		}
	}
	return model.MaterialObject
}
