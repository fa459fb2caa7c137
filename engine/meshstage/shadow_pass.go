package meshstage

import (
	"github.com/quarry-engine/quarry/common"
	"github.com/quarry-engine/quarry/engine/model"
	"github.com/quarry-engine/quarry/engine/skinning"
)

var _ ShadowPass = &shadowPassImpl{}

type shadowPassImpl struct {
	lightVP   [16]float32
	meshModel [16]float32
	resolver  skinning.Resolver
}

// ShadowPass performs the shadow depth pass vertex transform. One instance is
// built per frame from the directional light's view-projection matrix.
//
// Unlike the main pass, both variants compose the per-instance transform with a
// base model matrix: the shared mesh model uniform for rigid meshes, or the
// blended joint matrix for skinned meshes. The instance matrix multiplies from
// the left, so instancing offsets apply after the base transform.
type ShadowPass interface {
	// TransformRigid transforms one static vertex into light clip space using
	// the instance transform composed with the shared mesh model matrix.
	//
	// Parameters:
	//   - v: the model-space vertex
	//   - instance: the per-instance transform
	//
	// Returns:
	//   - DepthVertex: the light clip-space position
	TransformRigid(v model.GPUVertex, instance model.GPUInstanceTransform) DepthVertex

	// TransformSkinned transforms one skinned vertex into light clip space using
	// the instance transform composed with the blended joint matrix.
	//
	// Parameters:
	//   - v: the model-space vertex with joint influences
	//   - instance: the per-instance transform
	//   - palette: the composed joint matrices for the mesh's current pose
	//
	// Returns:
	//   - DepthVertex: the light clip-space position
	TransformSkinned(v model.GPUSkinnedVertex, instance model.GPUInstanceTransform, palette *skinning.JointPalette) DepthVertex

	// FragmentColor returns the constant color the depth pass fragment shader
	// emits for targets that require a color attachment. Depth targets ignore it.
	//
	// Returns:
	//   - [4]float32: the placeholder fragment color
	FragmentColor() [4]float32
}

// NewShadowPass creates a shadow pass transform with the provided options
// applied over the defaults: identity light view-projection, identity mesh
// model matrix, and the linear blend resolver.
//
// Parameters:
//   - opts: optional configuration functions
//
// Returns:
//   - ShadowPass: the configured shadow pass transform
func NewShadowPass(opts ...ShadowPassOption) ShadowPass {
	p := &shadowPassImpl{
		resolver: skinning.NewLinearBlendResolver(),
	}
	common.Identity(p.lightVP[:])
	common.Identity(p.meshModel[:])
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *shadowPassImpl) TransformRigid(v model.GPUVertex, instance model.GPUInstanceTransform) DepthVertex {
	inst := instance.Model()

	var composed [16]float32
	common.Mul4(composed[:], inst[:], p.meshModel[:])

	world := common.Mul4Vec4(composed[:], [4]float32{v.Position[0], v.Position[1], v.Position[2], 1})
	return DepthVertex{ClipPosition: common.Mul4Vec4(p.lightVP[:], world)}
}

func (p *shadowPassImpl) TransformSkinned(v model.GPUSkinnedVertex, instance model.GPUInstanceTransform, palette *skinning.JointPalette) DepthVertex {
	st := p.resolver.Resolve(v.JointIndices, v.JointWeights, palette)
	inst := instance.Model()

	var composed [16]float32
	common.Mul4(composed[:], inst[:], st.Matrix[:])

	world := common.Mul4Vec4(composed[:], [4]float32{v.Position[0], v.Position[1], v.Position[2], 1})
	return DepthVertex{ClipPosition: common.Mul4Vec4(p.lightVP[:], world)}
}

func (p *shadowPassImpl) FragmentColor() [4]float32 {
	return [4]float32{1, 1, 1, 1}
}

// ShadowPassOption is a functional option used to configure a ShadowPass during construction.
type ShadowPassOption func(*shadowPassImpl)

// WithLightViewProjection sets the directional light view-projection matrix for this frame.
//
// Parameters:
//   - lightVP: the column-major light view-projection matrix
//
// Returns:
//   - ShadowPassOption: a function that sets the light view-projection for this pass
func WithLightViewProjection(lightVP [16]float32) ShadowPassOption {
	return func(p *shadowPassImpl) {
		p.lightVP = lightVP
	}
}

// WithMeshModel sets the shared mesh model matrix used as the rigid base transform.
//
// Parameters:
//   - data: the mesh model uniform
//
// Returns:
//   - ShadowPassOption: a function that sets the mesh model matrix for this pass
func WithMeshModel(data model.GPUModelData) ShadowPassOption {
	return func(p *shadowPassImpl) {
		p.meshModel = data.Model
	}
}

// WithShadowResolver sets the skinning resolver used for skinned vertices.
//
// Parameters:
//   - r: the resolver to blend joint influences with
//
// Returns:
//   - ShadowPassOption: a function that sets the resolver for this pass
func WithShadowResolver(r skinning.Resolver) ShadowPassOption {
	return func(p *shadowPassImpl) {
		if r != nil {
			p.resolver = r
		}
	}
}
