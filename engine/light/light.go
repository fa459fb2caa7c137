package light

import (
	"github.com/chewxy/math32"
)

var _ DirectionalLight = &directionalLightImpl{}

type directionalLightImpl struct {
	direction  [3]float32
	color      [3]float32
	intensity  float32
	halfExtent float32
	near       float32
	far        float32
	bias       float32
	biasScale  float32
	resolution int
}

// DirectionalLight models a sun-style light source with parallel rays. It has
// no position; only a direction. It is the sole shadow caster: its orthographic
// frustum drives the shadow depth pass.
type DirectionalLight interface {
	// Direction returns the normalized direction the light points.
	//
	// Returns:
	//   - [3]float32: unit direction from light toward the scene
	Direction() [3]float32

	// Color returns the light's RGB color.
	//
	// Returns:
	//   - [3]float32: RGB color components in [0, 1]
	Color() [3]float32

	// Intensity returns the scalar intensity multiplier.
	//
	// Returns:
	//   - float32: the intensity
	Intensity() float32

	// ShadowData builds the full shadow parameters for the current frame,
	// centering the orthographic shadow frustum on the given world-space point
	// (typically the camera position).
	//
	// Parameters:
	//   - centerX, centerY, centerZ: world-space center of the shadow frustum
	//
	// Returns:
	//   - GPUShadowData: view-projection and bias parameters ready for upload
	ShadowData(centerX, centerY, centerZ float32) GPUShadowData

	// ShadowUniform builds the vertex-stage shadow uniform for the current
	// frame. Convenience wrapper over ShadowData(...).Uniform().
	//
	// Parameters:
	//   - centerX, centerY, centerZ: world-space center of the shadow frustum
	//
	// Returns:
	//   - GPUShadowUniform: the light view-projection uniform
	ShadowUniform(centerX, centerY, centerZ float32) GPUShadowUniform

	// SetDirection updates the light direction. The input is normalized; a
	// zero vector is ignored.
	//
	// Parameters:
	//   - x, y, z: the new direction components
	SetDirection(x, y, z float32)
}

// NewDirectionalLight creates a directional light with the provided options
// applied over the defaults: direction (0.5, -1, 0.3) normalized, white color,
// intensity 1.0, and the package shadow defaults for the frustum and biases.
//
// Parameters:
//   - opts: optional configuration functions
//
// Returns:
//   - DirectionalLight: the configured light
func NewDirectionalLight(opts ...DirectionalLightBuilderOption) DirectionalLight {
	l := &directionalLightImpl{
		direction:  normalize3(0.5, -1, 0.3),
		color:      [3]float32{1, 1, 1},
		intensity:  1.0,
		halfExtent: DefaultShadowHalfExtent,
		near:       DefaultShadowNear,
		far:        DefaultShadowFar,
		bias:       DefaultShadowBias,
		biasScale:  DefaultShadowNormalBiasScale,
		resolution: ShadowMapResolution,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *directionalLightImpl) Direction() [3]float32 {
	return l.direction
}

func (l *directionalLightImpl) Color() [3]float32 {
	return l.color
}

func (l *directionalLightImpl) Intensity() float32 {
	return l.intensity
}

func (l *directionalLightImpl) ShadowData(centerX, centerY, centerZ float32) GPUShadowData {
	var data GPUShadowData
	data.ComputeDirectionalLightVP(l.direction, centerX, centerY, centerZ, l.halfExtent, l.near, l.far)
	texel := 1.0 / float32(l.resolution)
	data.TexelSize = [2]float32{texel, texel}
	data.Bias = l.bias
	data.ComputeNormalBias(l.halfExtent, l.biasScale, l.resolution)
	return data
}

func (l *directionalLightImpl) ShadowUniform(centerX, centerY, centerZ float32) GPUShadowUniform {
	data := l.ShadowData(centerX, centerY, centerZ)
	return data.Uniform()
}

func (l *directionalLightImpl) SetDirection(x, y, z float32) {
	if x == 0 && y == 0 && z == 0 {
		return
	}
	l.direction = normalize3(x, y, z)
}

func normalize3(x, y, z float32) [3]float32 {
	length := math32.Sqrt(x*x + y*y + z*z)
	if length == 0 {
		return [3]float32{0, -1, 0}
	}
	return [3]float32{x / length, y / length, z / length}
}
