package shader

import (
	_ "embed"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
	"github.com/Carmen-Shannon/oxy-forward/engine/shading"
)

// ForwardTemplate is the annotated WGSL template of the forward shading stage.
//
//go:embed assets/forward.wgsl
var ForwardTemplate string

// Entry points of the generated module.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// ConfigOptions translates a shading configuration into pre-processor flags and constants.
//
// Parameters:
//   - cfg: the stage configuration
//
// Returns:
//   - []PreProcessorOption: options for NewPreProcessor
func ConfigOptions(cfg shading.Config) []PreProcessorOption {
	heuristic := cfg.MaterialSelection == shading.MaterialSelectionColorHeuristic
	tagged := cfg.MaterialSelection == shading.MaterialSelectionTagged

	return []PreProcessorOption{
		WithFlag(FlagBlinn, cfg.SpecularModel == shading.SpecularBlinn),
		WithFlag(FlagPhong, cfg.SpecularModel == shading.SpecularPhong),
		WithFlag(FlagViewCamera, cfg.ViewSource == shading.ViewSourceCamera),
		WithFlag(FlagViewFixed, cfg.ViewSource == shading.ViewSourceFixed),
		WithFlag(FlagMaterialHeuristic, heuristic),
		WithFlag(FlagMaterialTagged, tagged),
		WithFlag(FlagGroundMaterial, heuristic || tagged),
		WithFlag(FlagShadowHook, cfg.ShadowHook),
		WithFlag(FlagNormalInverseTranspose, cfg.NormalTransport == shading.NormalTransportInverseTranspose),

		WithConst(ConstDiffuseFloor, "f32", formatFloat(cfg.DiffuseFloor)),
		WithConst(ConstShininess, "f32", formatFloat(cfg.Shininess)),
		WithConst(ConstGroundSpecularScale, "f32", formatFloat(cfg.GroundSpecularScale)),
		WithConst(ConstFallbackViewDir, "vec3<f32>", formatVec3(cfg.FallbackViewDir)),
		WithConst(ConstGroundGridScale, "f32", formatFloat(shading.GroundGridScale)),
		WithConst(ConstGroundLineWidth, "f32", formatFloat(shading.GroundLineWidth)),
		WithConst(ConstGroundBaseColor, "vec3<f32>", formatVec3(shading.GroundBaseColor)),
		WithConst(ConstGroundLineColor, "vec3<f32>", formatVec3(shading.GroundLineColor)),
		WithConst(ConstGroundTag, "u32", fmt.Sprintf("%du", uint32(model.MaterialGround))),
	}
}

// Generate expands the forward template for cfg.
//
// Parameters:
//   - cfg: the stage configuration
//
// Returns:
//   - string: WGSL source with vs_main and fs_main entry points
//   - error: the validation error of cfg, or a template expansion error
func Generate(cfg shading.Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	src, err := NewPreProcessor(ConfigOptions(cfg)...).Process(ForwardTemplate)
	if err != nil {
		return "", fmt.Errorf("shader: expanding forward template: %w", err)
	}
	common.Logger().Debug("generated forward shader",
		"specular", cfg.SpecularModel,
		"view", cfg.ViewSource,
		"material", cfg.MaterialSelection,
		"bytes", len(src))
	return src, nil
}

// formatFloat renders v as a WGSL f32 literal. Non-finite values have no literal form
// and render as an expression that fails compilation.
func formatFloat(v float32) string {
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return "(0.0 / 0.0)"
	}
	s := strconv.FormatFloat(float64(v), 'g', -1, 32)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func formatVec3(v common.Vec3) string {
	return fmt.Sprintf("vec3<f32>(%s, %s, %s)", formatFloat(v[0]), formatFloat(v[1]), formatFloat(v[2]))
}
