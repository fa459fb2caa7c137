// Package meshstage implements the CPU-side vertex transform stage: the exact
// position, normal, and tangent math the pass shaders perform on the GPU. The
// renderer uses it to pre-transform dynamic geometry and the tests use it as
// the reference for the shader templates, so both sides of the vertex contract
// share one definition.
package meshstage

// TransformedVertex is the main pass vertex output for meshes without tangents.
// Field meaning matches the shader's VertexOutput struct.
type TransformedVertex struct {
	// ClipPosition is the vertex position in clip space (view_proj * world).
	ClipPosition [4]float32

	// WorldPosition is the homogeneous world-space position (model * position, w = 1).
	WorldPosition [4]float32

	// WorldNormal is the world-space normal. Rigid transforms carry the raw
	// normal-matrix product; skinned transforms are unit length.
	WorldNormal [3]float32

	// UV is the texture coordinate, passed through unchanged.
	UV [2]float32
}

// TransformedTangentVertex is the main pass vertex output for meshes with
// tangents. Embeds TransformedVertex and adds the world-space tangent.
type TransformedTangentVertex struct {
	TransformedVertex

	// WorldTangent is the world-space tangent direction with the original
	// handedness sign in w.
	WorldTangent [4]float32
}

// DepthVertex is the shadow pass vertex output: clip position in the light's
// projective space, nothing else.
type DepthVertex struct {
	// ClipPosition is the vertex position in light clip space.
	ClipPosition [4]float32
}
