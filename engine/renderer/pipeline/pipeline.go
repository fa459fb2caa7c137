package pipeline

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/quarry-engine/quarry/engine/light"
	"github.com/quarry-engine/quarry/engine/model"
	"github.com/quarry-engine/quarry/engine/renderer/shader"
)

// pipeline is the implementation of the Pipeline interface.
// It holds the underlying WebGPU render pipeline object and related data.
type pipeline struct {
	// stageKey identifies the pass and vertex layout toggles this pipeline was built for.
	stageKey StageKey

	// the following shader references are used for pipeline creation and buffer binding,
	// they are required to be set before initializing a pipeline.

	vertexShader, fragmentShader shader.Shader

	// vertexBufferLayouts are the per-vertex and per-instance buffer layouts in
	// slot order, derived from the stage key.
	vertexBufferLayouts []wgpu.VertexBufferLayout

	// renderPipeline is the underlying WebGPU pipeline once created on a device, nil until then.
	renderPipeline *wgpu.RenderPipeline

	// The following properties configure the pipeline during creation and can be
	// toggled/set with the builder options.

	depthTestEnabled    bool
	depthWriteEnabled   bool
	depthBias           int32
	depthBiasSlopeScale float32
	blendEnabled        bool
	cullMode            wgpu.CullMode
	topology            wgpu.PrimitiveTopology
	frontFace           wgpu.FrontFace
	writeMask           wgpu.ColorWriteMask
	blendState          *wgpu.BlendState
}

// Pipeline defines the interface for one render pipeline variant. It holds the
// specialized shader pair, the vertex buffer layouts matching the variant's
// toggles, and all configuration state required for pipeline creation including
// depth, blend, cull, and topology settings.
type Pipeline interface {
	// Key returns the StageKey this pipeline was built for.
	//
	// Returns:
	//   - StageKey: the pass and toggle combination
	Key() StageKey

	// PipelineKey returns the unique string key for this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader retrieves the shader associated with the specified type if it exists, nil otherwise.
	//
	// Parameters:
	//   - shaderType: the type of shader to retrieve (vertex or fragment)
	//
	// Returns:
	//   - shader.Shader: the shader associated with the specified type, or nil if not set
	Shader(shaderType shader.ShaderType) shader.Shader

	// VertexBufferLayouts returns the per-vertex and per-instance buffer layouts
	// in slot order for this variant.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the vertex buffer layouts
	VertexBufferLayouts() []wgpu.VertexBufferLayout

	// Pipeline returns the underlying WebGPU render pipeline, or nil if it has
	// not been created on a device yet.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the underlying pipeline object
	Pipeline() *wgpu.RenderPipeline

	// DepthTestEnabled returns whether depth testing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth testing is enabled, false otherwise
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether depth writing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth writing is enabled, false otherwise
	DepthWriteEnabled() bool

	// DepthBias returns the depth bias value configured for this pipeline.
	//
	// Returns:
	//   - int32: the depth bias value for this pipeline
	DepthBias() int32

	// DepthBiasSlopeScale returns the depth bias slope scale configured for this pipeline.
	//
	// Returns:
	//   - float32: the depth bias slope scale for this pipeline
	DepthBiasSlopeScale() float32

	// BlendEnabled returns whether blending is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if blending is enabled, false otherwise
	BlendEnabled() bool

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode for this pipeline
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology for this pipeline
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order for this pipeline
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask configured for this pipeline.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the color write mask for this pipeline
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state configured for this pipeline.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state for this pipeline, or nil if blending is not enabled
	BlendState() *wgpu.BlendState

	// SetRenderPipeline sets the underlying WebGPU render pipeline after device creation.
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)
}

var _ Pipeline = &pipeline{}

// NewStagePipeline creates the render pipeline variant for one StageKey. It
// specializes the pass template into vertex and fragment shaders, derives the
// vertex buffer layouts from the key's toggles, applies pass-appropriate
// defaults, and validates that the shader variant and the layouts agree.
//
// Main pass defaults: depth test and write enabled, back-face culling, full
// color writes. Shadow pass defaults: depth-only (color writes masked off),
// front-face culling to reduce peter-panning, and a depth bias to reduce acne.
//
// A mismatch between the key's toggles and the shader's consumed attribute
// locations is a construction-time error, never a deferred GPU error.
//
// Parameters:
//   - key: the pass and toggle combination to build
//   - opts: optional overrides applied after pass defaults
//
// Returns:
//   - Pipeline: the configured pipeline variant
//   - error: an error if shader specialization or layout validation fails
func NewStagePipeline(key StageKey, opts ...PipelineBuilderOption) (Pipeline, error) {
	features := key.Features()

	var vs, fs shader.Shader
	var err error
	switch key.Pass {
	case PassMain:
		vs, err = shader.NewMeshShader(shader.ShaderTypeVertex, features)
		if err == nil {
			fs, err = shader.NewMeshShader(shader.ShaderTypeFragment, features)
		}
	case PassShadow:
		vs, err = shader.NewDepthShader(shader.ShaderTypeVertex, features)
		if err == nil {
			fs, err = shader.NewDepthShader(shader.ShaderTypeFragment, features)
		}
	default:
		return nil, fmt.Errorf("pipeline %s: unknown pass type %d", key, key.Pass)
	}
	if err != nil {
		return nil, fmt.Errorf("pipeline %s: %w", key, err)
	}

	p := &pipeline{
		stageKey:            key,
		vertexShader:        vs,
		fragmentShader:      fs,
		vertexBufferLayouts: stageVertexBufferLayouts(key),
		depthTestEnabled:    true,
		depthWriteEnabled:   true,
		blendEnabled:        false,
		cullMode:            wgpu.CullModeBack,
		topology:            wgpu.PrimitiveTopologyTriangleList,
		frontFace:           wgpu.FrontFaceCCW,
		writeMask:           wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	if key.Pass == PassShadow {
		p.writeMask = wgpu.ColorWriteMaskNone
		p.cullMode = wgpu.CullModeFront
		bias := light.DefaultShadowBias * 1e5
		p.depthBias = int32(bias)
		p.depthBiasSlopeScale = 2.0
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := validateStageLayouts(key, vs, p.vertexBufferLayouts); err != nil {
		return nil, fmt.Errorf("pipeline %s: %w", key, err)
	}
	return p, nil
}

// stageVertexBufferLayouts derives the vertex buffer layouts for a stage variant.
// Slot 0 is always the per-vertex buffer matching the key's toggles. Slot 1 is
// the per-instance transform buffer for every variant except the skinned main
// pass, whose model matrix comes entirely from the joint palette.
func stageVertexBufferLayouts(key StageKey) []wgpu.VertexBufferLayout {
	layouts := []wgpu.VertexBufferLayout{model.VertexLayout(key.Skinned, key.Tangents)}
	if key.Pass == PassShadow || !key.Skinned {
		layouts = append(layouts, model.InstanceLayout())
	}
	return layouts
}

// validateStageLayouts checks that every vertex attribute location the shader
// variant consumes is provided by exactly one of the pipeline's vertex buffer
// layouts. A shader location with no backing attribute means the toggles and
// the layouts disagree.
func validateStageLayouts(key StageKey, vs shader.Shader, layouts []wgpu.VertexBufferLayout) error {
	provided := make(map[uint32]bool)
	for _, layout := range layouts {
		for _, attr := range layout.Attributes {
			if provided[attr.ShaderLocation] {
				return fmt.Errorf("duplicate vertex attribute at location %d", attr.ShaderLocation)
			}
			provided[attr.ShaderLocation] = true
		}
	}

	for _, shaderLayouts := range vs.VertexLayouts() {
		for _, layout := range shaderLayouts {
			for _, attr := range layout.Attributes {
				if !provided[attr.ShaderLocation] {
					return fmt.Errorf("shader consumes vertex attribute at location %d which no buffer layout provides (skinned=%t tangents=%t)",
						attr.ShaderLocation, key.Skinned, key.Tangents)
				}
			}
		}
	}
	return nil
}

func (p *pipeline) Key() StageKey {
	return p.stageKey
}

func (p *pipeline) PipelineKey() string {
	return p.stageKey.String()
}

func (p *pipeline) Pipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) VertexBufferLayouts() []wgpu.VertexBufferLayout {
	return p.vertexBufferLayouts
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) DepthBias() int32 {
	return p.depthBias
}

func (p *pipeline) DepthBiasSlopeScale() float32 {
	return p.depthBiasSlopeScale
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}
