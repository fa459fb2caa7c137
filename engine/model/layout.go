package model

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Shader locations for the per-vertex and per-instance attribute streams.
// Locations 0-2 are always present; 3 appears with the tangent layout, 4-5
// with the skinned layout, and 6-13 carry the instance transform columns.
const (
	LocationPosition     = 0
	LocationNormal       = 1
	LocationUV           = 2
	LocationTangent      = 3
	LocationJointIndices = 4
	LocationJointWeights = 5
	LocationInstanceBase = 6
)

// VertexLayout builds the wgpu vertex buffer layout for the requested
// attribute configuration. The stride and attribute set match the GPUVertex,
// GPUTangentVertex, GPUSkinnedVertex, and GPUSkinnedTangentVertex structs
// exactly; a buffer marshaled from those structs binds against the returned
// layout without padding adjustments.
//
// Parameters:
//   - skinned: include joint index/weight attributes at locations 4-5
//   - tangents: include the tangent attribute at location 3
//
// Returns:
//   - wgpu.VertexBufferLayout: the per-vertex buffer layout
func VertexLayout(skinned, tangents bool) wgpu.VertexBufferLayout {
	attrs := []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: LocationPosition},
		{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: LocationNormal},
		{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: LocationUV},
	}
	offset := uint64(32)

	if tangents {
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         wgpu.VertexFormatFloat32x4,
			Offset:         offset,
			ShaderLocation: LocationTangent,
		})
		offset += 16
	}

	if skinned {
		attrs = append(attrs,
			wgpu.VertexAttribute{
				Format:         wgpu.VertexFormatUint32x4,
				Offset:         offset,
				ShaderLocation: LocationJointIndices,
			},
			wgpu.VertexAttribute{
				Format:         wgpu.VertexFormatFloat32x4,
				Offset:         offset + 16,
				ShaderLocation: LocationJointWeights,
			},
		)
		offset += 32
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}
}

// InstanceLayout builds the wgpu vertex buffer layout for the per-instance
// transform stream: eight vec4 columns (model matrix then inverse-transpose)
// advancing once per instance at shader locations 6-13. Matches
// GPUInstanceTransform exactly.
//
// Returns:
//   - wgpu.VertexBufferLayout: the per-instance buffer layout
func InstanceLayout() wgpu.VertexBufferLayout {
	attrs := make([]wgpu.VertexAttribute, 8)
	for i := range attrs {
		attrs[i] = wgpu.VertexAttribute{
			Format:         wgpu.VertexFormatFloat32x4,
			Offset:         uint64(i) * 16,
			ShaderLocation: uint32(LocationInstanceBase + i),
		}
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: 128,
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes:  attrs,
	}
}
