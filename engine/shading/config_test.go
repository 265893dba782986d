package shading

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, SpecularBlinn, cfg.SpecularModel)
	assert.Equal(t, float32(0), cfg.DiffuseFloor)
	assert.Equal(t, ViewSourceCamera, cfg.ViewSource)
	assert.Equal(t, MaterialSelectionNone, cfg.MaterialSelection)
	assert.Equal(t, NormalTransportModelBasis, cfg.NormalTransport)
	assert.True(t, cfg.ShadowHook)
	assert.Equal(t, float32(32), cfg.Shininess)
	assert.Equal(t, float32(0.2), cfg.GroundSpecularScale)
}

func TestPresetConfig(t *testing.T) {
	tests := []struct {
		preset Preset
		floor  float32
		view   ViewSource
		sel    MaterialSelection
	}{
		{PresetBasic, 0, ViewSourceFixed, MaterialSelectionNone},
		{PresetLit, 0.3, ViewSourceCamera, MaterialSelectionNone},
		{PresetGround, 0.3, ViewSourceCamera, MaterialSelectionColorHeuristic},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg, err := PresetConfig(tt.preset)
			require.NoError(t, err)
			require.NoError(t, cfg.Validate())
			assert.Equal(t, tt.floor, cfg.DiffuseFloor)
			assert.Equal(t, tt.view, cfg.ViewSource)
			assert.Equal(t, tt.sel, cfg.MaterialSelection)
		})
	}

	_, err := PresetConfig("neon")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		opt  ConfigOption
	}{
		{"specular model", WithSpecularModel("cook-torrance")},
		{"view source", WithViewSource("eye")},
		{"material selection", WithMaterialSelection("random")},
		{"normal transport", WithNormalTransport("none")},
		{"negative floor", WithDiffuseFloor(-0.1)},
		{"floor above one", WithDiffuseFloor(1.5)},
		{"negative shininess", WithShininess(-1)},
		{"negative ground scale", WithGroundSpecularScale(-0.2)},
		{"zero fixed view", func(c *Config) {
			c.ViewSource = ViewSourceFixed
			c.FallbackViewDir = common.Vec3{}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(tt.opt)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestNewConfigAppliesOptionsInOrder(t *testing.T) {
	cfg := NewConfig(WithShininess(8), WithShininess(64), WithNormalTransport(NormalTransportInverseTranspose))
	assert.Equal(t, float32(64), cfg.Shininess)
	assert.Equal(t, NormalTransportInverseTranspose, cfg.NormalTransport)
	// A zero camera fallback is allowed because it is never read.
	cfg.FallbackViewDir = common.Vec3{}
	assert.NoError(t, cfg.Validate())
}
