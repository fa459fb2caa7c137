package shader

import (
	_ "embed"
)

// MeshTemplateSource is the main pass vertex/fragment WGSL template. It carries
// #ifdef toggles for both features and must be specialized before compilation.
//
//go:embed assets/mesh.wgsl
var MeshTemplateSource string

// DepthTemplateSource is the shadow depth pass WGSL template.
//
//go:embed assets/depth.wgsl
var DepthTemplateSource string

// MeshShaderKey is the cache key prefix for main pass shader variants.
const MeshShaderKey = "mesh"

// DepthShaderKey is the cache key prefix for shadow depth pass shader variants.
const DepthShaderKey = "depth"

// NewMeshShader specializes the main pass template into one shader variant.
//
// Parameters:
//   - shaderType: ShaderTypeVertex or ShaderTypeFragment
//   - features: the compile-time feature set for this variant
//
// Returns:
//   - Shader: the specialized main pass shader
//   - error: an error if specialization or validation fails
func NewMeshShader(shaderType ShaderType, features FeatureSet) (Shader, error) {
	return NewShader(MeshShaderKey, shaderType, MeshTemplateSource, features)
}

// NewDepthShader specializes the shadow depth pass template into one shader variant.
//
// Parameters:
//   - shaderType: ShaderTypeVertex or ShaderTypeFragment
//   - features: the compile-time feature set for this variant
//
// Returns:
//   - Shader: the specialized depth pass shader
//   - error: an error if specialization or validation fails
func NewDepthShader(shaderType ShaderType, features FeatureSet) (Shader, error) {
	return NewShader(DepthShaderKey, shaderType, DepthTemplateSource, features)
}

// AllFeatureSets returns every valid combination of the compile-time toggles, in a
// fixed order. Used to warm pipeline caches and to verify that each template branch
// compiles.
//
// Returns:
//   - []FeatureSet: the four feature combinations
func AllFeatureSets() []FeatureSet {
	return []FeatureSet{
		NewFeatureSet(),
		NewFeatureSet(FeatureSkinned),
		NewFeatureSet(FeatureVertexTangents),
		NewFeatureSet(FeatureSkinned, FeatureVertexTangents),
	}
}
