package skinning

import (
	"github.com/chewxy/math32"
	"github.com/quarry-engine/quarry/common"
)

// SkinTransform is the resolved per-vertex skinning result: the blended joint
// matrix plus its derived normal matrix. It stands in for a rigid model matrix
// wherever one would be used, so skinned and rigid vertices flow through the
// same downstream transform math.
type SkinTransform struct {
	Matrix       [16]float32 // blended joint matrix (column-major)
	NormalMatrix [9]float32  // inverse-transpose of the upper 3x3 of Matrix
}

// TransformPosition applies the skin matrix to a model-space position,
// producing a world-space homogeneous position.
//
// Parameters:
//   - p: model-space position
//
// Returns:
//   - [4]float32: world-space position with w = 1
func (t *SkinTransform) TransformPosition(p [3]float32) [4]float32 {
	return common.Mul4Vec4(t.Matrix[:], [4]float32{p[0], p[1], p[2], 1})
}

// TransformNormal applies the normal matrix to a model-space normal and
// normalizes the result. Blended joint matrices are generally not rigid, so
// the normalization compensates for the scale the blend introduces.
//
// Parameters:
//   - n: model-space normal
//
// Returns:
//   - [3]float32: unit-length world-space normal
func (t *SkinTransform) TransformNormal(n [3]float32) [3]float32 {
	out := common.Mul3Vec3(t.NormalMatrix[:], n)
	length := math32.Sqrt(out[0]*out[0] + out[1]*out[1] + out[2]*out[2])
	if length == 0 {
		return out
	}
	return [3]float32{out[0] / length, out[1] / length, out[2] / length}
}

// TransformTangent applies the upper 3x3 of the skin matrix to a model-space
// tangent's direction, preserving the w component (the bitangent handedness
// sign).
//
// Parameters:
//   - tangent: model-space tangent, w ∈ {-1, +1}
//
// Returns:
//   - [4]float32: world-space tangent direction with the original w
func (t *SkinTransform) TransformTangent(tangent [4]float32) [4]float32 {
	m3 := common.Mat3FromMat4(t.Matrix[:])
	dir := common.Mul3Vec3(m3[:], [3]float32{tangent[0], tangent[1], tangent[2]})
	return [4]float32{dir[0], dir[1], dir[2], tangent[3]}
}

var _ Resolver = &linearBlendResolver{}

type linearBlendResolver struct{}

// Resolver resolves a vertex's joint influences against a joint palette into a
// single blended transform. Implementations must be safe for concurrent use:
// Resolve is called from multiple worker goroutines during batch transforms.
type Resolver interface {
	// Resolve blends the palette matrices selected by the vertex's joint
	// indices, weighted by its joint weights. Joint indices must be below
	// MaxJoints; weights are used as provided and are expected to sum to 1.
	//
	// Parameters:
	//   - indices: the four joint palette indices for this vertex
	//   - weights: the four blend weights, one per index
	//   - palette: the composed joint matrices for the mesh's current pose
	//
	// Returns:
	//   - SkinTransform: the blended matrix and its normal matrix
	Resolve(indices [4]uint32, weights [4]float32, palette *JointPalette) SkinTransform
}

// NewLinearBlendResolver creates a Resolver that performs standard linear
// blend skinning: the weighted sum of the four influencing joint matrices.
//
// Returns:
//   - Resolver: the linear blend resolver
func NewLinearBlendResolver() Resolver {
	return &linearBlendResolver{}
}

func (r *linearBlendResolver) Resolve(indices [4]uint32, weights [4]float32, palette *JointPalette) SkinTransform {
	var out SkinTransform
	for k := 0; k < 4; k++ {
		joint := palette.Joints[indices[k]]
		w := weights[k]
		for i := 0; i < 16; i++ {
			out.Matrix[i] += w * joint[i]
		}
	}
	// The inverse-transpose of the full affine matrix restricted to its upper
	// 3x3 equals the inverse-transpose of the upper 3x3 alone.
	var it [16]float32
	if common.InverseTranspose4(it[:], out.Matrix[:]) {
		out.NormalMatrix = common.Mat3FromMat4(it[:])
	} else {
		// Degenerate blend (all-zero weights or singular pose). Fall back to
		// the raw upper 3x3 rather than propagating NaNs.
		out.NormalMatrix = common.Mat3FromMat4(out.Matrix[:])
	}
	return out
}
