package shader

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/naga"
)

// ShaderType identifies whether a shader is a vertex or fragment shader.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment shader type, used for fragment processing in pair with a vertex shader.
	ShaderTypeFragment
)

// shader is the implementation of the Shader interface.
// It holds all of the persistent shader data required for pipeline creation and buffer binding.
type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	features                   FeatureSet
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	vertexLayouts              map[int][]wgpu.VertexBufferLayout
	entryPoint                 string
	module                     *wgpu.ShaderModuleDescriptor

	pp PreProcessor
}

// Shader defines the interface for a specialized and parsed WGSL shader variant. It
// exposes the variant's unique key, source code, entry point, bind group layout
// descriptors, vertex buffer layouts, and pre-processor declarations needed for
// pipeline creation and resource wiring.
type Shader interface {
	// Key retrieves the unique identifier for this shader variant, used for caching
	// and lookups. The key incorporates the enabled features so each variant of a
	// template caches independently.
	//
	// Returns:
	//   - string: the shader variant's unique key
	Key() string

	// Source retrieves the fully specialized and pre-processed WGSL source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader variant
	Source() string

	// Features returns the compile-time feature set this variant was specialized with.
	//
	// Returns:
	//   - FeatureSet: the enabled features
	Features() FeatureSet

	// BindGroupLayoutDescriptor retrieves the bind group layout descriptor for a specific group index.
	//
	// Parameters:
	//   - bindingKey: the group index identifying the bind group layout descriptor
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor associated with the key, or an empty descriptor if not set
	BindGroupLayoutDescriptor(bindingKey int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors retrieves all parsed bind group layout descriptors.
	// These are the CPU-side descriptors extracted from the shader source which can be
	// used by the pipeline layer to create the actual wgpu.BindGroupLayout GPU objects.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName retrieves the variable name for a given group and binding index, if it exists.
	// This is used for tracking resource usage and debugging.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - string: the variable name associated with the group and binding, or an empty string if not found
	BindGroupVarName(group, binding int) string

	// VertexLayout retrieves the vertex buffer layout for a specific key.
	//
	// Parameters:
	//   - key: the integer key identifying the vertex layout
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the vertex buffer layout associated with the key, or nil if not set
	VertexLayout(key int) []wgpu.VertexBufferLayout

	// VertexLayouts retrieves all vertex buffer layouts parsed from this shader variant.
	//
	// Returns:
	//   - map[int][]wgpu.VertexBufferLayout: a map of keys to their corresponding vertex buffer layouts
	VertexLayouts() map[int][]wgpu.VertexBufferLayout

	// EntryPoint returns the entry point name for this shader.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	EntryPoint() string

	// Module returns the wgpu.ShaderModuleDescriptor for this shader variant, built during NewShader.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the shader module descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor

	// ShaderType returns the type of the shader (vertex or fragment).
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType

	// Declarations returns the list of parsed annotations from the shader source that
	// represent resource bindings. The pipeline layer uses these to match bind groups
	// to GPU buffers during setup.
	//
	// Returns:
	//   - []Annotation: bind group declarations parsed from the shader source
	Declarations() []Annotation
}

var _ Shader = &shader{}

// NewShader specializes a WGSL template against a feature set, pre-processes the
// resulting source, validates it, and parses layout metadata appropriate for the
// shader type. Vertex shaders get vertex buffer layouts parsed. All shader types
// get bind group layout descriptors parsed.
//
// The template is first run through Specialize to resolve #ifdef blocks, then through
// the annotation pre-processor, and finally handed to the naga compiler as a
// validation gate: a template branch that only breaks under a particular feature
// combination fails here, at variant construction, instead of at device submission.
//
// Parameters:
//   - key: a unique identifier for the shader template, used for caching and lookups
//   - shaderType: the type of shader (vertex or fragment), used for parsing and pipeline setup
//   - template: the raw WGSL template source containing #ifdef directives and @quarry: annotations
//   - features: the compile-time feature set to specialize with
//
// Returns:
//   - Shader: the specialized shader variant
//   - error: an error if specialization, pre-processing, or validation fails
func NewShader(key string, shaderType ShaderType, template string, features FeatureSet) (Shader, error) {
	if template == "" {
		return nil, fmt.Errorf("shader %s: empty template source", key)
	}
	s := &shader{
		key:                        variantKey(key, features),
		shaderType:                 shaderType,
		features:                   features,
		bindGroupLayoutDescriptors: make(map[int]wgpu.BindGroupLayoutDescriptor),
		bindingVarNames:            make(map[int]map[int]string),
		vertexLayouts:              make(map[int][]wgpu.VertexBufferLayout),
		pp:                         NewPreProcessor(),
	}
	if err := s.parseSource(template); err != nil {
		return nil, err
	}
	return s, nil
}

// variantKey derives the cache key for one feature combination of a template.
// Features are appended in a fixed order so equal sets always produce equal keys.
func variantKey(key string, features FeatureSet) string {
	for _, f := range []Feature{FeatureSkinned, FeatureVertexTangents} {
		if features[f] {
			key += "+" + string(f)
		}
	}
	return key
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) Features() FeatureSet {
	return s.features
}

func (s *shader) VertexLayout(key int) []wgpu.VertexBufferLayout {
	return s.vertexLayouts[key]
}

func (s *shader) VertexLayouts() map[int][]wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) BindGroupLayoutDescriptor(bindingKey int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[bindingKey]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	if s.bindingVarNames[group] == nil {
		return ""
	}
	return s.bindingVarNames[group][binding]
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) Declarations() []Annotation {
	return s.pp.Declarations()
}

// parseSource runs the full specialization pipeline: resolve #ifdef blocks, process
// @quarry: annotations, validate the result through naga, build the shader module
// descriptor, and extract entry point and layout metadata.
func (s *shader) parseSource(template string) error {
	specialized, err := Specialize(template, s.features)
	if err != nil {
		return fmt.Errorf("shader %s: specialize: %w", s.key, err)
	}
	s.source, err = s.pp.Process(specialized)
	if err != nil {
		return fmt.Errorf("shader %s: pre-process: %w", s.key, err)
	}
	if _, err := naga.Compile(s.source); err != nil {
		return fmt.Errorf("shader %s: validate: %w", s.key, err)
	}
	s.module = &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
	s.entryPoint = parseEntryPoint(s.source, s.shaderType)
	if s.entryPoint == "" {
		return fmt.Errorf("shader %s: no entry point found for shader type %d", s.key, s.shaderType)
	}
	if s.shaderType == ShaderTypeVertex {
		s.vertexLayouts = parseVertexLayouts(s.source)
	}
	var visibility wgpu.ShaderStage
	switch s.shaderType {
	case ShaderTypeVertex:
		visibility = wgpu.ShaderStageVertex
	case ShaderTypeFragment:
		visibility = wgpu.ShaderStageFragment
	default:
		visibility = wgpu.ShaderStageNone
	}
	s.bindGroupLayoutDescriptors, s.bindingVarNames = parseBindGroupLayouts(s.source, visibility)
	return nil
}
