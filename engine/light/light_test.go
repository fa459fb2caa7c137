package light

import (
	"testing"

	"github.com/quarry-engine/quarry/common"
	"github.com/stretchr/testify/assert"
)

func TestNewDirectionalLightDefaults(t *testing.T) {
	l := NewDirectionalLight()

	dir := l.Direction()
	length := dir[0]*dir[0] + dir[1]*dir[1] + dir[2]*dir[2]
	assert.InDelta(t, 1.0, length, 1e-5)
	assert.Less(t, dir[1], float32(0), "default sun points downward")
	assert.Equal(t, [3]float32{1, 1, 1}, l.Color())
	assert.Equal(t, float32(1), l.Intensity())
}

func TestSetDirectionNormalizes(t *testing.T) {
	l := NewDirectionalLight()
	l.SetDirection(0, -10, 0)
	assert.Equal(t, [3]float32{0, -1, 0}, l.Direction())

	// A zero vector is ignored.
	l.SetDirection(0, 0, 0)
	assert.Equal(t, [3]float32{0, -1, 0}, l.Direction())
}

func TestShadowDataFrustumCoversCenter(t *testing.T) {
	l := NewDirectionalLight()
	data := l.ShadowData(5, 0, -3)

	// The frustum center projects into the depth volume, away from both planes.
	p := common.Mul4Vec4(data.LightVP[:], [4]float32{5, 0, -3, 1})
	depth := p[2] / p[3]
	assert.Greater(t, depth, float32(0))
	assert.Less(t, depth, float32(1))
	assert.InDelta(t, 0.0, p[0], 1e-3, "center lies on the frustum axis")
	assert.InDelta(t, 0.0, p[1], 1e-3)
}

func TestShadowDataBiasParameters(t *testing.T) {
	l := NewDirectionalLight(
		WithShadowExtent(40),
		WithShadowBias(0.001, 3.0),
		WithShadowMapResolution(2048),
	)
	data := l.ShadowData(0, 0, 0)

	assert.Equal(t, float32(0.001), data.Bias)
	assert.InDelta(t, 1.0/2048.0, data.TexelSize[0], 1e-9)
	assert.InDelta(t, 1.0/2048.0, data.TexelSize[1], 1e-9)
	// texel world size 2*40/2048 scaled by 3.
	assert.InDelta(t, 2.0*40.0/2048.0*3.0, data.NormalBias, 1e-6)
}

func TestVerticalLightUsesStableUpVector(t *testing.T) {
	l := NewDirectionalLight(WithDirection(0, -1, 0))
	data := l.ShadowData(0, 0, 0)

	// Straight-down light must still produce a usable matrix: a point offset
	// on X stays inside the frustum horizontally.
	p := common.Mul4Vec4(data.LightVP[:], [4]float32{10, 0, 0, 1})
	assert.Less(t, math32Abs(p[0]), float32(1))
	assert.False(t, isNaN32(p[0]))
}

func TestShadowUniformMatchesShadowData(t *testing.T) {
	l := NewDirectionalLight()
	data := l.ShadowData(1, 2, 3)
	uniform := l.ShadowUniform(1, 2, 3)
	assert.Equal(t, data.LightVP, uniform.LightVP)
}

func TestShadowDataMarshalLayout(t *testing.T) {
	l := NewDirectionalLight()
	data := l.ShadowData(0, 0, 0)

	buf := data.Marshal()
	assert.Len(t, buf, 80)
	assert.Equal(t, 80, data.Size())

	uniform := data.Uniform()
	assert.Len(t, uniform.Marshal(), 64)
	assert.Equal(t, 64, uniform.Size())
}

func math32Abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

func isNaN32(f float32) bool {
	return f != f
}
