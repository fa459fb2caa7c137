package shader

import (
	"fmt"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func featureSetName(fs FeatureSet) string {
	name := "rigid"
	if fs[FeatureSkinned] {
		name = "skinned"
	}
	if fs[FeatureVertexTangents] {
		name += "_tangents"
	}
	return name
}

func TestMeshShaderCompilesForAllFeatureSets(t *testing.T) {
	for _, fs := range AllFeatureSets() {
		t.Run(featureSetName(fs), func(t *testing.T) {
			s, err := NewMeshShader(ShaderTypeVertex, fs)
			require.NoError(t, err)
			assert.Equal(t, "vs_main", s.EntryPoint())
			assert.NotEmpty(t, s.VertexLayouts())
			assert.NotEmpty(t, s.Source())
		})
	}
}

func TestDepthShaderCompilesForAllFeatureSets(t *testing.T) {
	for _, fs := range AllFeatureSets() {
		t.Run(featureSetName(fs), func(t *testing.T) {
			s, err := NewDepthShader(ShaderTypeVertex, fs)
			require.NoError(t, err)
			assert.Equal(t, "vs_main", s.EntryPoint())
			assert.NotEmpty(t, s.Source())
		})
	}
}

func TestMeshShaderFragmentEntryPoint(t *testing.T) {
	s, err := NewMeshShader(ShaderTypeFragment, NewFeatureSet())
	require.NoError(t, err)
	assert.Equal(t, "fs_main", s.EntryPoint())
}

func TestMeshShaderSkinnedOmitsInstanceInput(t *testing.T) {
	skinned, err := NewMeshShader(ShaderTypeVertex, NewFeatureSet(FeatureSkinned))
	require.NoError(t, err)
	assert.NotContains(t, skinned.Source(), "InstanceInput")
	assert.Contains(t, skinned.Source(), "joint_palette")

	rigid, err := NewMeshShader(ShaderTypeVertex, NewFeatureSet())
	require.NoError(t, err)
	assert.Contains(t, rigid.Source(), "InstanceInput")
	assert.NotContains(t, rigid.Source(), "joint_palette")
}

func TestMeshShaderTangentOutput(t *testing.T) {
	withTangents, err := NewMeshShader(ShaderTypeVertex, NewFeatureSet(FeatureVertexTangents))
	require.NoError(t, err)
	assert.Contains(t, withTangents.Source(), "world_tangent")

	without, err := NewMeshShader(ShaderTypeVertex, NewFeatureSet())
	require.NoError(t, err)
	assert.NotContains(t, without.Source(), "world_tangent")
}

func TestDepthShaderBaseModelSelection(t *testing.T) {
	skinned, err := NewDepthShader(ShaderTypeVertex, NewFeatureSet(FeatureSkinned))
	require.NoError(t, err)
	assert.Contains(t, skinned.Source(), "skin_model")
	assert.NotContains(t, skinned.Source(), "ModelData")

	rigid, err := NewDepthShader(ShaderTypeVertex, NewFeatureSet())
	require.NoError(t, err)
	assert.Contains(t, rigid.Source(), "ModelData")
	assert.NotContains(t, rigid.Source(), "skin_model")
}

func TestShaderVariantKeysAreDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for _, fs := range AllFeatureSets() {
		s, err := NewMeshShader(ShaderTypeVertex, fs)
		require.NoError(t, err)
		assert.False(t, seen[s.Key()], fmt.Sprintf("duplicate variant key %q", s.Key()))
		seen[s.Key()] = true
	}
}

func TestShaderDeclarationsCarryBindGroups(t *testing.T) {
	s, err := NewDepthShader(ShaderTypeVertex, NewFeatureSet())
	require.NoError(t, err)

	decls := s.Declarations()
	require.Len(t, decls, 2)
	assert.Equal(t, AnnotationTypeBindingGroup, decls[0].Type)
	assert.Equal(t, 0, *decls[0].Group)
	assert.Equal(t, 1, *decls[1].Group)
	assert.Equal(t, "shadow", s.BindGroupVarName(0, 0))
	assert.Equal(t, "model_data", s.BindGroupVarName(1, 0))
}

func TestMeshShaderShadowSamplingBindings(t *testing.T) {
	s, err := NewMeshShader(ShaderTypeFragment, NewFeatureSet())
	require.NoError(t, err)

	group0 := s.BindGroupLayoutDescriptor(0)
	require.Len(t, group0.Entries, 4)

	camera := group0.Entries[0]
	assert.Equal(t, wgpu.BufferBindingTypeUniform, camera.Buffer.Type)
	assert.Equal(t, uint64(80), camera.Buffer.MinBindingSize)

	shadowData := group0.Entries[1]
	assert.Equal(t, wgpu.BufferBindingTypeUniform, shadowData.Buffer.Type)
	assert.Equal(t, uint64(80), shadowData.Buffer.MinBindingSize)

	shadowMap := group0.Entries[2]
	assert.Equal(t, wgpu.TextureSampleTypeDepth, shadowMap.Texture.SampleType)
	assert.Equal(t, wgpu.TextureViewDimension2D, shadowMap.Texture.ViewDimension)
	assert.False(t, shadowMap.Texture.Multisampled)

	shadowSampler := group0.Entries[3]
	assert.Equal(t, wgpu.SamplerBindingTypeComparison, shadowSampler.Sampler.Type)

	assert.Equal(t, "shadow_map", s.BindGroupVarName(0, 2))
	assert.Equal(t, "shadow_sampler", s.BindGroupVarName(0, 3))
}

func TestMeshShaderBaseColorBindings(t *testing.T) {
	s, err := NewMeshShader(ShaderTypeFragment, NewFeatureSet())
	require.NoError(t, err)

	group2 := s.BindGroupLayoutDescriptor(2)
	require.Len(t, group2.Entries, 2)

	tex := group2.Entries[0]
	assert.Equal(t, wgpu.TextureSampleTypeFloat, tex.Texture.SampleType)
	assert.Equal(t, wgpu.TextureViewDimension2D, tex.Texture.ViewDimension)

	sampler := group2.Entries[1]
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, sampler.Sampler.Type)
}

func TestPreProcessorGeneratesBindingDeclaration(t *testing.T) {
	pp := NewPreProcessor()
	src := "//@quarry:include camera\n//@quarry:group 0 0 storage_uniform camera camera"

	out, err := pp.Process(src)
	require.NoError(t, err)
	assert.Contains(t, out, "struct CameraUniform")
	assert.Contains(t, out, "@group(0) @binding(0) var<uniform> camera: CameraUniform;")
	require.Len(t, pp.Declarations(), 1)
}

func TestPreProcessorRejectsUnknownStructType(t *testing.T) {
	pp := NewPreProcessor()
	_, err := pp.Process("//@quarry:include nonsense")
	assert.Error(t, err)
}

func TestParseAnnotationRejectsMalformedGroup(t *testing.T) {
	_, err := parseAnnotation("//@quarry:group zero 0 storage_uniform camera camera", 1)
	assert.Error(t, err)

	_, err = parseAnnotation("//@quarry:group 0 0 bad_space camera camera", 1)
	assert.Error(t, err)

	a, err := parseAnnotation("plain wgsl line", 1)
	require.NoError(t, err)
	assert.Nil(t, a)
}
