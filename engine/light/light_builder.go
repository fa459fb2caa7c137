package light

// DirectionalLightBuilderOption is a functional option used to configure a
// DirectionalLight during construction.
type DirectionalLightBuilderOption func(*directionalLightImpl)

// WithDirection sets the light direction. The input is normalized.
//
// Parameters:
//   - x, y, z: direction components (from light toward the scene)
//
// Returns:
//   - DirectionalLightBuilderOption: a function that sets the direction for this light
func WithDirection(x, y, z float32) DirectionalLightBuilderOption {
	return func(l *directionalLightImpl) {
		l.direction = normalize3(x, y, z)
	}
}

// WithColor sets the light's RGB color.
//
// Parameters:
//   - r, g, b: color components in [0, 1]
//
// Returns:
//   - DirectionalLightBuilderOption: a function that sets the color for this light
func WithColor(r, g, b float32) DirectionalLightBuilderOption {
	return func(l *directionalLightImpl) {
		l.color = [3]float32{r, g, b}
	}
}

// WithIntensity sets the scalar intensity multiplier.
//
// Parameters:
//   - intensity: the intensity
//
// Returns:
//   - DirectionalLightBuilderOption: a function that sets the intensity for this light
func WithIntensity(intensity float32) DirectionalLightBuilderOption {
	return func(l *directionalLightImpl) {
		l.intensity = intensity
	}
}

// WithShadowExtent sets the orthographic half-extent of the shadow frustum.
//
// Parameters:
//   - halfExtent: half-size in world units
//
// Returns:
//   - DirectionalLightBuilderOption: a function that sets the frustum extent for this light
func WithShadowExtent(halfExtent float32) DirectionalLightBuilderOption {
	return func(l *directionalLightImpl) {
		l.halfExtent = halfExtent
	}
}

// WithShadowClipPlanes sets the near and far planes of the shadow projection.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - DirectionalLightBuilderOption: a function that sets the shadow clip planes for this light
func WithShadowClipPlanes(near, far float32) DirectionalLightBuilderOption {
	return func(l *directionalLightImpl) {
		l.near = near
		l.far = far
	}
}

// WithShadowBias sets the constant depth bias and the normal-offset bias scale.
//
// Parameters:
//   - bias: constant depth comparison bias
//   - normalBiasScale: multiplier on the per-texel world size
//
// Returns:
//   - DirectionalLightBuilderOption: a function that sets the shadow biases for this light
func WithShadowBias(bias, normalBiasScale float32) DirectionalLightBuilderOption {
	return func(l *directionalLightImpl) {
		l.bias = bias
		l.biasScale = normalBiasScale
	}
}

// WithShadowMapResolution sets the shadow map resolution in texels.
//
// Parameters:
//   - resolution: width and height of the square shadow map
//
// Returns:
//   - DirectionalLightBuilderOption: a function that sets the resolution for this light
func WithShadowMapResolution(resolution int) DirectionalLightBuilderOption {
	return func(l *directionalLightImpl) {
		if resolution > 0 {
			l.resolution = resolution
		}
	}
}
