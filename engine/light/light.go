package light

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-forward/common"
)

type lightImpl struct {
	mu *sync.Mutex

	position common.Vec3
	color    common.Vec3

	ambient  float32
	diffuse  float32
	specular float32

	lightSpaceMatrix [16]float32
}

// Light is the single point light of a frame. Each lighting term has its own
// coefficient; the color scales all three.
type Light interface {
	// Position returns the world-space light position.
	Position() common.Vec3

	// Color returns the RGB intensity.
	Color() common.Vec3

	// Coefficients returns the ambient, diffuse and specular scale factors.
	//
	// Returns:
	//   - ambient, diffuse, specular: per-term coefficients
	Coefficients() (ambient, diffuse, specular float32)

	// LightSpaceMatrix returns the reserved shadow-pass transform (column-major).
	LightSpaceMatrix() [16]float32

	// SetPosition moves the light.
	SetPosition(p common.Vec3)

	// SetColor sets the RGB intensity.
	SetColor(c common.Vec3)

	// SetCoefficients sets the ambient, diffuse and specular scale factors.
	SetCoefficients(ambient, diffuse, specular float32)

	// SetLightSpaceMatrix replaces the reserved shadow-pass transform.
	SetLightSpaceMatrix(m [16]float32)

	// Uniform snapshots the light into its GPU representation.
	//
	// Returns:
	//   - GPULightUniform: the packed light parameters
	Uniform() GPULightUniform
}

var _ Light = &lightImpl{}

// NewLight creates a white point light at (5, 5, 5) with ambient 0.3, diffuse 1.2,
// specular 0.8 and an identity light-space matrix.
//
// Parameters:
//   - opts: functional options to configure the light
//
// Returns:
//   - Light: the newly created light
func NewLight(opts ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:               &sync.Mutex{},
		position:         common.V3(5, 5, 5),
		color:            common.V3(1, 1, 1),
		ambient:          0.3,
		diffuse:          1.2,
		specular:         0.8,
		lightSpaceMatrix: common.Identity4(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Position() common.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.position
}

func (l *lightImpl) Color() common.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

func (l *lightImpl) Coefficients() (ambient, diffuse, specular float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ambient, l.diffuse, l.specular
}

func (l *lightImpl) LightSpaceMatrix() [16]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lightSpaceMatrix
}

func (l *lightImpl) SetPosition(p common.Vec3) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = p
}

func (l *lightImpl) SetColor(c common.Vec3) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.color = c
}

func (l *lightImpl) SetCoefficients(ambient, diffuse, specular float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ambient, l.diffuse, l.specular = ambient, diffuse, specular
}

func (l *lightImpl) SetLightSpaceMatrix(m [16]float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lightSpaceMatrix = m
}

func (l *lightImpl) Uniform() GPULightUniform {
	l.mu.Lock()
	defer l.mu.Unlock()
	return GPULightUniform{
		Position:         l.position,
		Color:            l.color,
		Ambient:          l.ambient,
		Diffuse:          l.diffuse,
		Specular:         l.specular,
		LightSpaceMatrix: l.lightSpaceMatrix,
	}
}
