package meshstage

import (
	"testing"

	"github.com/quarry-engine/quarry/common"
	"github.com/quarry-engine/quarry/engine/model"
	"github.com/quarry-engine/quarry/engine/skinning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildInstance(posX, posY, posZ, rotX, rotY, rotZ, scaleX, scaleY, scaleZ float32) model.GPUInstanceTransform {
	var m [16]float32
	common.BuildModelMatrix(m[:], posX, posY, posZ, rotX, rotY, rotZ, scaleX, scaleY, scaleZ)
	return model.NewGPUInstanceTransform(m)
}

func identityPalette() *skinning.JointPalette {
	p := &skinning.JointPalette{}
	p.SetIdentity()
	return p
}

func TestMainPassIdentityInstancePassesThrough(t *testing.T) {
	pass := NewMainPass()
	instance := buildInstance(0, 0, 0, 0, 0, 0, 1, 1, 1)

	v := model.GPUVertex{
		Position: [3]float32{1, 2, 3},
		Normal:   [3]float32{0, 1, 0},
		UV:       [2]float32{0.25, 0.75},
	}
	out := pass.TransformRigid(v, instance)

	assert.Equal(t, [4]float32{1, 2, 3, 1}, out.WorldPosition)
	assert.Equal(t, [4]float32{1, 2, 3, 1}, out.ClipPosition)
	assert.InDelta(t, 0.0, out.WorldNormal[0], 1e-6)
	assert.InDelta(t, 1.0, out.WorldNormal[1], 1e-6)
	assert.InDelta(t, 0.0, out.WorldNormal[2], 1e-6)
	assert.Equal(t, [2]float32{0.25, 0.75}, out.UV)
}

func TestMainPassWorldPositionIsModelTimesPosition(t *testing.T) {
	pass := NewMainPass()

	// translate(1,0,0) * scale(2): position (1,0,0) scales to (2,0,0) then
	// translates to (3,0,0).
	instance := buildInstance(1, 0, 0, 0, 0, 0, 2, 2, 2)
	v := model.GPUVertex{Position: [3]float32{1, 0, 0}}

	out := pass.TransformRigid(v, instance)
	assert.InDelta(t, 3.0, out.WorldPosition[0], 1e-5)
	assert.InDelta(t, 0.0, out.WorldPosition[1], 1e-5)
	assert.InDelta(t, 0.0, out.WorldPosition[2], 1e-5)
	assert.InDelta(t, 1.0, out.WorldPosition[3], 1e-5)
}

func TestMainPassNormalUsesInverseTranspose(t *testing.T) {
	pass := NewMainPass()

	// Non-uniform scale (2,1,1). The inverse-transpose maps an X normal to
	// (0.5, 0, 0); transforming by the model matrix directly would give 2.
	instance := buildInstance(0, 0, 0, 0, 0, 0, 2, 1, 1)
	v := model.GPUVertex{Normal: [3]float32{1, 0, 0}}

	out := pass.TransformRigid(v, instance)
	assert.InDelta(t, 0.5, out.WorldNormal[0], 1e-5)
	assert.InDelta(t, 0.0, out.WorldNormal[1], 1e-5)
	assert.InDelta(t, 0.0, out.WorldNormal[2], 1e-5)
}

func TestMainPassTangentUsesModelMatrixNotInverseTranspose(t *testing.T) {
	pass := NewMainPass()

	instance := buildInstance(0, 0, 0, 0, 0, 0, 2, 1, 1)
	v := model.GPUTangentVertex{
		GPUVertex: model.GPUVertex{Normal: [3]float32{1, 0, 0}},
		Tangent:   [4]float32{1, 0, 0, -1},
	}

	out := pass.TransformRigidTangent(v, instance)
	// Tangent scales with the model matrix while the normal shrinks by the
	// inverse-transpose. Handedness passes through untouched.
	assert.InDelta(t, 2.0, out.WorldTangent[0], 1e-5)
	assert.Equal(t, float32(-1), out.WorldTangent[3])
	assert.InDelta(t, 0.5, out.WorldNormal[0], 1e-5)
}

func TestMainPassTangentTranslationInvariant(t *testing.T) {
	pass := NewMainPass()

	instance := buildInstance(10, 20, 30, 0, 0, 0, 1, 1, 1)
	v := model.GPUTangentVertex{Tangent: [4]float32{0, 0, 1, 1}}

	out := pass.TransformRigidTangent(v, instance)
	// Directions ignore translation: only the upper 3x3 applies.
	assert.InDelta(t, 0.0, out.WorldTangent[0], 1e-6)
	assert.InDelta(t, 0.0, out.WorldTangent[1], 1e-6)
	assert.InDelta(t, 1.0, out.WorldTangent[2], 1e-6)
}

func TestMainPassClipPositionUsesViewProjection(t *testing.T) {
	var view, proj, viewProj [16]float32
	common.LookAt(view[:], 0, 0, 10, 0, 0, 0, 0, 1, 0)
	common.Perspective(proj[:], 1.0472, 16.0/9.0, 0.1, 100)
	common.Mul4(viewProj[:], proj[:], view[:])

	pass := NewMainPass(WithViewProjection(viewProj))
	instance := buildInstance(0, 0, 0, 0, 0, 0, 1, 1, 1)
	v := model.GPUVertex{Position: [3]float32{1, 2, 3}}

	out := pass.TransformRigid(v, instance)
	expected := common.Mul4Vec4(viewProj[:], [4]float32{1, 2, 3, 1})
	assert.InDelta(t, expected[0], out.ClipPosition[0], 1e-5)
	assert.InDelta(t, expected[1], out.ClipPosition[1], 1e-5)
	assert.InDelta(t, expected[2], out.ClipPosition[2], 1e-5)
	assert.InDelta(t, expected[3], out.ClipPosition[3], 1e-5)
}

func TestMainPassSkinnedUsesJointMatrixAlone(t *testing.T) {
	pass := NewMainPass()

	palette := identityPalette()
	palette.Joints[2] = translationMatrix(0, 5, 0)

	v := model.GPUSkinnedVertex{
		GPUVertex:    model.GPUVertex{Position: [3]float32{1, 0, 0}, Normal: [3]float32{0, 0, 1}},
		JointIndices: [4]uint32{2, 0, 0, 0},
		JointWeights: [4]float32{1, 0, 0, 0},
	}

	out := pass.TransformSkinned(v, palette)
	assert.InDelta(t, 1.0, out.WorldPosition[0], 1e-5)
	assert.InDelta(t, 5.0, out.WorldPosition[1], 1e-5)
	assert.InDelta(t, 0.0, out.WorldPosition[2], 1e-5)
}

func TestMainPassSkinnedNormalIsUnitLength(t *testing.T) {
	pass := NewMainPass()

	palette := identityPalette()
	palette.Joints[0] = scaleMatrix(4)

	v := model.GPUSkinnedVertex{
		GPUVertex:    model.GPUVertex{Normal: [3]float32{0, 1, 0}},
		JointWeights: [4]float32{1, 0, 0, 0},
	}

	out := pass.TransformSkinned(v, palette)
	length := out.WorldNormal[0]*out.WorldNormal[0] + out.WorldNormal[1]*out.WorldNormal[1] + out.WorldNormal[2]*out.WorldNormal[2]
	assert.InDelta(t, 1.0, length, 1e-5)
}

func TestMainPassSkinnedTangentCarriesHandedness(t *testing.T) {
	pass := NewMainPass()

	palette := identityPalette()
	v := model.GPUSkinnedTangentVertex{
		GPUTangentVertex: model.GPUTangentVertex{
			GPUVertex: model.GPUVertex{Position: [3]float32{0, 0, 0}},
			Tangent:   [4]float32{0, 1, 0, -1},
		},
		JointWeights: [4]float32{1, 0, 0, 0},
	}

	out := pass.TransformSkinnedTangent(v, palette)
	assert.Equal(t, float32(-1), out.WorldTangent[3])
	assert.InDelta(t, 1.0, out.WorldTangent[1], 1e-5)
}

func TestMainPassCustomResolver(t *testing.T) {
	pass := NewMainPass(WithResolver(skinning.NewLinearBlendResolver()))
	require.NotNil(t, pass)

	out := pass.TransformSkinned(model.GPUSkinnedVertex{
		GPUVertex:    model.GPUVertex{Position: [3]float32{1, 1, 1}},
		JointWeights: [4]float32{1, 0, 0, 0},
	}, identityPalette())
	assert.Equal(t, [4]float32{1, 1, 1, 1}, out.WorldPosition)
}

func translationMatrix(x, y, z float32) [16]float32 {
	var m [16]float32
	common.Identity(m[:])
	m[12], m[13], m[14] = x, y, z
	return m
}

func scaleMatrix(s float32) [16]float32 {
	var m [16]float32
	m[0], m[5], m[10], m[15] = s, s, s, 1
	return m
}
