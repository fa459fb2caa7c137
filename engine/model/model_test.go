package model

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/quarry-engine/quarry/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexLayoutStrides(t *testing.T) {
	cases := []struct {
		skinned  bool
		tangents bool
		stride   uint64
		attrs    int
	}{
		{false, false, 32, 3},
		{false, true, 48, 4},
		{true, false, 64, 5},
		{true, true, 80, 6},
	}
	for _, tc := range cases {
		layout := VertexLayout(tc.skinned, tc.tangents)
		assert.Equal(t, tc.stride, layout.ArrayStride)
		assert.Len(t, layout.Attributes, tc.attrs)
		assert.Equal(t, wgpu.VertexStepModeVertex, layout.StepMode)
	}
}

func TestVertexLayoutStrideMatchesStructSize(t *testing.T) {
	v := GPUVertex{}
	tv := GPUTangentVertex{}
	sv := GPUSkinnedVertex{}
	stv := GPUSkinnedTangentVertex{}

	assert.Equal(t, v.Size(), int(VertexLayout(false, false).ArrayStride))
	assert.Equal(t, tv.Size(), int(VertexLayout(false, true).ArrayStride))
	assert.Equal(t, sv.Size(), int(VertexLayout(true, false).ArrayStride))
	assert.Equal(t, stv.Size(), int(VertexLayout(true, true).ArrayStride))
}

func TestVertexLayoutLocationsAreStable(t *testing.T) {
	// Tangent stays at location 3 and joints at 4-5 regardless of which
	// attributes the layout omits.
	full := VertexLayout(true, true)
	locs := map[uint32]wgpu.VertexFormat{}
	for _, a := range full.Attributes {
		locs[a.ShaderLocation] = a.Format
	}
	assert.Equal(t, wgpu.VertexFormatFloat32x3, locs[LocationPosition])
	assert.Equal(t, wgpu.VertexFormatFloat32x3, locs[LocationNormal])
	assert.Equal(t, wgpu.VertexFormatFloat32x2, locs[LocationUV])
	assert.Equal(t, wgpu.VertexFormatFloat32x4, locs[LocationTangent])
	assert.Equal(t, wgpu.VertexFormatUint32x4, locs[LocationJointIndices])
	assert.Equal(t, wgpu.VertexFormatFloat32x4, locs[LocationJointWeights])

	skinnedOnly := VertexLayout(true, false)
	for _, a := range skinnedOnly.Attributes {
		assert.NotEqual(t, uint32(LocationTangent), a.ShaderLocation)
	}
	jointIdx := skinnedOnly.Attributes[3]
	assert.Equal(t, uint32(LocationJointIndices), jointIdx.ShaderLocation)
	assert.Equal(t, uint64(32), jointIdx.Offset, "joints pack directly after uv without tangent")
}

func TestInstanceLayoutCoversLocations6To13(t *testing.T) {
	layout := InstanceLayout()
	assert.Equal(t, uint64(128), layout.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeInstance, layout.StepMode)
	require.Len(t, layout.Attributes, 8)

	for i, a := range layout.Attributes {
		assert.Equal(t, uint32(LocationInstanceBase+i), a.ShaderLocation)
		assert.Equal(t, uint64(i*16), a.Offset)
		assert.Equal(t, wgpu.VertexFormatFloat32x4, a.Format)
	}
}

func TestNewGPUInstanceTransformDerivesInverseTranspose(t *testing.T) {
	var m [16]float32
	common.BuildModelMatrix(m[:], 1, 2, 3, 0, 0, 0, 2, 1, 1)

	inst := NewGPUInstanceTransform(m)
	assert.Equal(t, m, inst.Model())

	it := inst.InverseTranspose()
	// Non-uniform scale 2 on X inverts to 0.5 in the normal matrix.
	assert.InDelta(t, 0.5, it[0], 1e-6)
	assert.InDelta(t, 1.0, it[5], 1e-6)
	assert.InDelta(t, 1.0, it[10], 1e-6)
}

func TestNewGPUInstanceTransformSingularMatrix(t *testing.T) {
	inst := NewGPUInstanceTransform([16]float32{}) // zero matrix is singular
	assert.Equal(t, [16]float32{}, inst.InverseTranspose())
}

func TestMarshalSizes(t *testing.T) {
	v := GPUVertex{}
	assert.Len(t, v.Marshal(), 32)

	tv := GPUTangentVertex{}
	assert.Len(t, tv.Marshal(), 48)

	sv := GPUSkinnedVertex{}
	assert.Len(t, sv.Marshal(), 64)

	stv := GPUSkinnedTangentVertex{}
	assert.Len(t, stv.Marshal(), 80)

	inst := GPUInstanceTransform{}
	assert.Len(t, inst.Marshal(), 128)
	assert.Equal(t, 128, inst.Size())

	md := GPUModelData{}
	assert.Len(t, md.Marshal(), 64)
}

func TestSkinnedVertexMarshalOffsets(t *testing.T) {
	sv := GPUSkinnedVertex{
		JointIndices: [4]uint32{7, 0, 0, 0},
		JointWeights: [4]float32{1, 0, 0, 0},
	}
	buf := sv.Marshal()
	// Joint indices start at byte 32 (after position/normal/uv).
	assert.Equal(t, byte(7), buf[32])
	// Weight 1.0 at byte 48: little-endian 00 00 80 3f.
	assert.Equal(t, byte(0x80), buf[50])
	assert.Equal(t, byte(0x3f), buf[51])
}
