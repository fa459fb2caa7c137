package skinning

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/quarry-engine/quarry/common"
)

// MaxJoints is the maximum number of joints a single skinned mesh may address.
// The joint palette uniform is a fixed-size array of this length; joint indices
// in vertex data must be below this value.
const MaxJoints = 256

// JointPaletteSource is the canonical WGSL definition of the JointPalette struct.
// Matches JointPalette layout exactly (16384 bytes, std140 aligned).
//
//go:embed assets/joint_palette.wgsl
var JointPaletteSource string

// JointPalette is the GPU-aligned uniform holding the skinning matrices for one
// skinned mesh instance. Each entry is the composed joint matrix for the
// current animation pose: joint_world_transform * inverse_bind_matrix.
// Matches the WGSL JointPalette struct layout exactly (see JointPaletteSource).
// Size: 16384 bytes (256 × mat4x4<f32>).
type JointPalette struct {
	Joints [MaxJoints][16]float32 // column-major composed joint matrices
}

// Size returns the size of the JointPalette struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16384)
func (p *JointPalette) Size() int {
	return int(unsafe.Sizeof(*p))
}

// Marshal serializes the JointPalette struct into a byte buffer suitable for
// GPU uniform upload.
//
// Returns:
//   - []byte: 16384-byte buffer ready for GPU upload
func (p *JointPalette) Marshal() []byte {
	buf := make([]byte, p.Size())
	for j := range p.Joints {
		base := j * 64
		for i := 0; i < 16; i++ {
			binary.LittleEndian.PutUint32(buf[base+i*4:base+(i+1)*4], math.Float32bits(p.Joints[j][i]))
		}
	}
	return buf
}

// SetIdentity fills every palette slot with the identity matrix. A palette in
// this state skins vertices to their bind pose.
func (p *JointPalette) SetIdentity() {
	for j := range p.Joints {
		common.Identity(p.Joints[j][:])
	}
}
