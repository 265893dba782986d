package light

import "github.com/Carmen-Shannon/oxy-forward/common"

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition sets the world-space position of the light.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = common.V3(x, y, z)
	}
}

// WithColor sets the RGB intensity of the light.
//
// Parameters:
//   - r, g, b: color components
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = common.V3(r, g, b)
	}
}

// WithCoefficients sets the per-term scale factors.
//
// Parameters:
//   - ambient: constant floor term
//   - diffuse: angle-of-incidence term
//   - specular: highlight term
//
// Returns:
//   - LightBuilderOption: a function that applies the coefficients to a lightImpl
func WithCoefficients(ambient, diffuse, specular float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.ambient, l.diffuse, l.specular = ambient, diffuse, specular
	}
}

// WithLightSpaceMatrix sets the reserved shadow-pass transform.
func WithLightSpaceMatrix(m [16]float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.lightSpaceMatrix = m
	}
}
