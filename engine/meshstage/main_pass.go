package meshstage

import (
	"github.com/quarry-engine/quarry/common"
	"github.com/quarry-engine/quarry/engine/model"
	"github.com/quarry-engine/quarry/engine/skinning"
)

var _ MainPass = &mainPassImpl{}

type mainPassImpl struct {
	viewProj [16]float32
	resolver skinning.Resolver
}

// MainPass performs the forward geometry pass vertex transform. One instance is
// built per frame from the camera's view-projection matrix; its methods mirror
// the four vertex layout variants of the main pass shader.
//
// Rigid variants take the per-instance transform: the model matrix and its
// pre-computed inverse-transpose arrive as instance data, matching the
// per-instance vertex buffer. Skinned variants take the joint palette instead;
// the blended joint matrix fully replaces the model matrix, so skinned draws
// ignore instance transforms in this pass.
type MainPass interface {
	// TransformRigid transforms one static vertex by the instance transform.
	//
	// Parameters:
	//   - v: the model-space vertex
	//   - instance: the per-instance model matrix and inverse-transpose
	//
	// Returns:
	//   - TransformedVertex: clip position, world position, world normal, and UV
	TransformRigid(v model.GPUVertex, instance model.GPUInstanceTransform) TransformedVertex

	// TransformRigidTangent transforms one static tangent-carrying vertex by the
	// instance transform. The tangent direction uses the model matrix's upper 3x3
	// and the handedness sign passes through unchanged.
	//
	// Parameters:
	//   - v: the model-space vertex with tangent
	//   - instance: the per-instance model matrix and inverse-transpose
	//
	// Returns:
	//   - TransformedTangentVertex: the transformed vertex plus world tangent
	TransformRigidTangent(v model.GPUTangentVertex, instance model.GPUInstanceTransform) TransformedTangentVertex

	// TransformSkinned transforms one skinned vertex against the joint palette.
	// The blended joint matrix stands in for the model matrix and the resulting
	// normal is unit length.
	//
	// Parameters:
	//   - v: the model-space vertex with joint influences
	//   - palette: the composed joint matrices for the mesh's current pose
	//
	// Returns:
	//   - TransformedVertex: clip position, world position, world normal, and UV
	TransformSkinned(v model.GPUSkinnedVertex, palette *skinning.JointPalette) TransformedVertex

	// TransformSkinnedTangent transforms one skinned tangent-carrying vertex
	// against the joint palette.
	//
	// Parameters:
	//   - v: the model-space vertex with joint influences and tangent
	//   - palette: the composed joint matrices for the mesh's current pose
	//
	// Returns:
	//   - TransformedTangentVertex: the transformed vertex plus world tangent
	TransformSkinnedTangent(v model.GPUSkinnedTangentVertex, palette *skinning.JointPalette) TransformedTangentVertex
}

// NewMainPass creates a main pass transform with the provided options applied
// over the defaults: identity view-projection and the linear blend resolver.
//
// Parameters:
//   - opts: optional configuration functions
//
// Returns:
//   - MainPass: the configured main pass transform
func NewMainPass(opts ...MainPassOption) MainPass {
	p := &mainPassImpl{
		resolver: skinning.NewLinearBlendResolver(),
	}
	common.Identity(p.viewProj[:])
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *mainPassImpl) TransformRigid(v model.GPUVertex, instance model.GPUInstanceTransform) TransformedVertex {
	m := instance.Model()
	it := instance.InverseTranspose()

	world := common.Mul4Vec4(m[:], [4]float32{v.Position[0], v.Position[1], v.Position[2], 1})
	normalMatrix := common.Mat3FromMat4(it[:])

	return TransformedVertex{
		ClipPosition:  common.Mul4Vec4(p.viewProj[:], world),
		WorldPosition: world,
		WorldNormal:   common.Mul3Vec3(normalMatrix[:], v.Normal),
		UV:            v.UV,
	}
}

func (p *mainPassImpl) TransformRigidTangent(v model.GPUTangentVertex, instance model.GPUInstanceTransform) TransformedTangentVertex {
	out := TransformedTangentVertex{
		TransformedVertex: p.TransformRigid(v.GPUVertex, instance),
	}

	m := instance.Model()
	m3 := common.Mat3FromMat4(m[:])
	dir := common.Mul3Vec3(m3[:], [3]float32{v.Tangent[0], v.Tangent[1], v.Tangent[2]})
	out.WorldTangent = [4]float32{dir[0], dir[1], dir[2], v.Tangent[3]}
	return out
}

func (p *mainPassImpl) TransformSkinned(v model.GPUSkinnedVertex, palette *skinning.JointPalette) TransformedVertex {
	st := p.resolver.Resolve(v.JointIndices, v.JointWeights, palette)

	world := st.TransformPosition(v.Position)
	return TransformedVertex{
		ClipPosition:  common.Mul4Vec4(p.viewProj[:], world),
		WorldPosition: world,
		WorldNormal:   st.TransformNormal(v.Normal),
		UV:            v.UV,
	}
}

func (p *mainPassImpl) TransformSkinnedTangent(v model.GPUSkinnedTangentVertex, palette *skinning.JointPalette) TransformedTangentVertex {
	st := p.resolver.Resolve(v.JointIndices, v.JointWeights, palette)

	world := st.TransformPosition(v.Position)
	return TransformedTangentVertex{
		TransformedVertex: TransformedVertex{
			ClipPosition:  common.Mul4Vec4(p.viewProj[:], world),
			WorldPosition: world,
			WorldNormal:   st.TransformNormal(v.Normal),
			UV:            v.UV,
		},
		WorldTangent: st.TransformTangent(v.Tangent),
	}
}

// MainPassOption is a functional option used to configure a MainPass during construction.
type MainPassOption func(*mainPassImpl)

// WithViewProjection sets the camera view-projection matrix for this frame.
//
// Parameters:
//   - viewProj: the column-major view-projection matrix
//
// Returns:
//   - MainPassOption: a function that sets the view-projection for this pass
func WithViewProjection(viewProj [16]float32) MainPassOption {
	return func(p *mainPassImpl) {
		p.viewProj = viewProj
	}
}

// WithResolver sets the skinning resolver used for skinned vertices.
//
// Parameters:
//   - r: the resolver to blend joint influences with
//
// Returns:
//   - MainPassOption: a function that sets the resolver for this pass
func WithResolver(r skinning.Resolver) MainPassOption {
	return func(p *mainPassImpl) {
		if r != nil {
			p.resolver = r
		}
	}
}
