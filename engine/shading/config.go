package shading

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-forward/common"
)

// ErrInvalidConfig is returned by Config.Validate for out-of-range or unknown options.
var ErrInvalidConfig = errors.New("shading: invalid config")

// SpecularModel selects the highlight formulation.
type SpecularModel string

const (
	// SpecularBlinn uses the half vector: pow(max(N·H, 0), shininess).
	SpecularBlinn SpecularModel = "blinn"
	// SpecularPhong uses the reflected light: pow(max(V·reflect(-L, N), 0), shininess).
	SpecularPhong SpecularModel = "phong"
)

// ViewSource selects where the view direction comes from.
type ViewSource string

const (
	// ViewSourceCamera uses normalize(camera.view_position - world_position).
	ViewSourceCamera ViewSource = "camera"
	// ViewSourceFixed uses Config.FallbackViewDir for every fragment.
	ViewSourceFixed ViewSource = "fixed"
)

// MaterialSelection selects how a fragment's material is decided.
type MaterialSelection string

const (
	// MaterialSelectionNone shades every fragment as an object.
	MaterialSelectionNone MaterialSelection = "none"
	// MaterialSelectionColorHeuristic classifies by vertex color (see ClassifyColor).
	MaterialSelectionColorHeuristic MaterialSelection = "color"
	// MaterialSelectionTagged uses the per-draw material tag.
	MaterialSelectionTagged MaterialSelection = "tagged"
)

// NormalTransport selects the matrix that carries normals into world space.
type NormalTransport string

const (
	// NormalTransportModelBasis uses the upper-left 3x3 of the model matrix. Normals skew
	// under non-uniform scale.
	NormalTransportModelBasis NormalTransport = "model_basis"
	// NormalTransportInverseTranspose uses the inverse-transpose of the upper-left 3x3.
	NormalTransportInverseTranspose NormalTransport = "inverse_transpose"
)

// Config selects the features of the forward shading stage. The same value drives the
// CPU stages in this package and the WGSL generated by the shader package.
type Config struct {
	SpecularModel       SpecularModel     `yaml:"specular_model"`
	DiffuseFloor        float32           `yaml:"diffuse_floor"`
	ViewSource          ViewSource        `yaml:"view_source"`
	FallbackViewDir     common.Vec3       `yaml:"fallback_view_dir"`
	MaterialSelection   MaterialSelection `yaml:"material_selection"`
	ShadowHook          bool              `yaml:"shadow_hook"`
	NormalTransport     NormalTransport   `yaml:"normal_transport"`
	Shininess           float32           `yaml:"shininess"`
	GroundSpecularScale float32           `yaml:"ground_specular_scale"`
}

// ConfigOption is a functional option applied on top of DefaultConfig.
type ConfigOption func(*Config)

// DefaultConfig returns the basic stage: Blinn highlight, no diffuse floor, camera view
// direction, no material selection, shadow hook on, model-basis normals, shininess 32.
func DefaultConfig() Config {
	return Config{
		SpecularModel:       SpecularBlinn,
		DiffuseFloor:        0,
		ViewSource:          ViewSourceCamera,
		FallbackViewDir:     common.V3(0, 0, 1),
		MaterialSelection:   MaterialSelectionNone,
		ShadowHook:          true,
		NormalTransport:     NormalTransportModelBasis,
		Shininess:           32,
		GroundSpecularScale: 0.2,
	}
}

// NewConfig builds a Config from DefaultConfig and the given options.
//
// Parameters:
//   - options: functional options applied in order
//
// Returns:
//   - Config: the resulting configuration (not validated)
func NewConfig(options ...ConfigOption) Config {
	c := DefaultConfig()
	for _, option := range options {
		option(&c)
	}
	return c
}

// WithSpecularModel selects the highlight formulation.
func WithSpecularModel(m SpecularModel) ConfigOption {
	return func(c *Config) { c.SpecularModel = m }
}

// WithDiffuseFloor sets the lower clamp of N·L; 0.3 keeps back faces visibly lit.
func WithDiffuseFloor(floor float32) ConfigOption {
	return func(c *Config) { c.DiffuseFloor = floor }
}

// WithViewSource selects the view direction source.
func WithViewSource(v ViewSource) ConfigOption {
	return func(c *Config) { c.ViewSource = v }
}

// WithFallbackViewDir sets the view direction used by ViewSourceFixed.
func WithFallbackViewDir(dir common.Vec3) ConfigOption {
	return func(c *Config) { c.FallbackViewDir = dir }
}

// WithMaterialSelection selects how materials are resolved.
func WithMaterialSelection(m MaterialSelection) ConfigOption {
	return func(c *Config) { c.MaterialSelection = m }
}

// WithShadowHook toggles computation of the light-space position interpolant.
func WithShadowHook(enabled bool) ConfigOption {
	return func(c *Config) { c.ShadowHook = enabled }
}

// WithNormalTransport selects the normal matrix.
func WithNormalTransport(n NormalTransport) ConfigOption {
	return func(c *Config) { c.NormalTransport = n }
}

// WithShininess sets the specular exponent.
func WithShininess(s float32) ConfigOption {
	return func(c *Config) { c.Shininess = s }
}

// WithGroundSpecularScale sets the highlight multiplier applied to ground fragments.
func WithGroundSpecularScale(s float32) ConfigOption {
	return func(c *Config) { c.GroundSpecularScale = s }
}

// Preset names a configuration that reproduces one observed shader variant.
type Preset string

const (
	// PresetBasic has no diffuse floor, no material selection and a fixed view direction.
	PresetBasic Preset = "basic"
	// PresetLit adds the camera view direction and a 0.3 diffuse floor.
	PresetLit Preset = "lit"
	// PresetGround adds the ground material selected by the color heuristic.
	PresetGround Preset = "ground"
)

// PresetConfig returns the configuration for a named preset.
//
// Parameters:
//   - p: the preset name
//
// Returns:
//   - Config: the preset configuration
//   - error: ErrInvalidConfig if the preset is unknown
func PresetConfig(p Preset) (Config, error) {
	switch p {
	case PresetBasic:
		return NewConfig(WithViewSource(ViewSourceFixed), WithShadowHook(false)), nil
	case PresetLit:
		return NewConfig(WithDiffuseFloor(0.3)), nil
	case PresetGround:
		return NewConfig(
			WithDiffuseFloor(0.3),
			WithMaterialSelection(MaterialSelectionColorHeuristic),
		), nil
	default:
		return Config{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, p)
	}
}

// Validate reports the first invalid option.
//
// Returns:
//   - error: nil, or an error wrapping ErrInvalidConfig
func (c Config) Validate() error {
	switch c.SpecularModel {
	case SpecularBlinn, SpecularPhong:
	default:
		return fmt.Errorf("%w: specular model %q", ErrInvalidConfig, c.SpecularModel)
	}
	switch c.ViewSource {
	case ViewSourceCamera, ViewSourceFixed:
	default:
		return fmt.Errorf("%w: view source %q", ErrInvalidConfig, c.ViewSource)
	}
	switch c.MaterialSelection {
	case MaterialSelectionNone, MaterialSelectionColorHeuristic, MaterialSelectionTagged:
	default:
		return fmt.Errorf("%w: material selection %q", ErrInvalidConfig, c.MaterialSelection)
	}
	switch c.NormalTransport {
	case NormalTransportModelBasis, NormalTransportInverseTranspose:
	default:
		return fmt.Errorf("%w: normal transport %q", ErrInvalidConfig, c.NormalTransport)
	}
	if c.DiffuseFloor < 0 || c.DiffuseFloor > 1 {
		return fmt.Errorf("%w: diffuse floor %v outside [0, 1]", ErrInvalidConfig, c.DiffuseFloor)
	}
	if c.Shininess < 0 {
		return fmt.Errorf("%w: negative shininess %v", ErrInvalidConfig, c.Shininess)
	}
	if c.GroundSpecularScale < 0 {
		return fmt.Errorf("%w: negative ground specular scale %v", ErrInvalidConfig, c.GroundSpecularScale)
	}
	if c.ViewSource == ViewSourceFixed && c.FallbackViewDir.Dot(c.FallbackViewDir) == 0 {
		return fmt.Errorf("%w: zero fallback view direction", ErrInvalidConfig)
	}
	return nil
}
