package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/quarry-engine/quarry/common"
)

// GPUVertex is the GPU-aligned representation of a single mesh vertex for the
// base attribute layout: position, normal, and texture coordinate.
// Size: 32 bytes (std430 aligned, no padding required).
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Normal   [3]float32 // offset 12: vertex normal, unit length pre-transform (12 bytes)
	UV       [2]float32 // offset 24: UV texture coordinate (8 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, 32)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Normal[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Normal[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Normal[2]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.UV[0]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.UV[1]))
	return buf
}

// GPUTangentVertex extends GPUVertex with a tangent attribute for normal
// mapping. The tangent xyz spans the surface along increasing U; w is the
// handedness sign (+1 or -1) used to reconstruct the bitangent.
// Size: 48 bytes (32 base vertex + 16 tangent, std430 aligned).
type GPUTangentVertex struct {
	GPUVertex            // offset  0: base vertex data (position, normal, uv) — 32 bytes
	Tangent   [4]float32 // offset 32: tangent vector (xyz) + handedness (w) (16 bytes)
}

// Size returns the size of the GPUTangentVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUTangentVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUTangentVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload.
func (g *GPUTangentVertex) Marshal() []byte {
	buf := make([]byte, 48)
	copy(buf, g.GPUVertex.Marshal())
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(g.Tangent[0]))
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(g.Tangent[1]))
	binary.LittleEndian.PutUint32(buf[40:44], math.Float32bits(g.Tangent[2]))
	binary.LittleEndian.PutUint32(buf[44:48], math.Float32bits(g.Tangent[3]))
	return buf
}

// GPUSkinnedVertex extends GPUVertex with per-vertex joint skinning data for
// skeletally deformed meshes.
// Size: 64 bytes (32 base vertex + 32 skinning data, std430 aligned).
type GPUSkinnedVertex struct {
	GPUVertex               // offset  0: base vertex data (position, normal, uv) — 32 bytes
	JointIndices [4]uint32  // offset 32: indices of up to 4 influencing joints (16 bytes)
	JointWeights [4]float32 // offset 48: blend weights for each joint, sum ≈ 1.0 (16 bytes)
}

// Size returns the size of the GPUSkinnedVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUSkinnedVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUSkinnedVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (g *GPUSkinnedVertex) Marshal() []byte {
	buf := make([]byte, 64)
	copy(buf, g.GPUVertex.Marshal())
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint32(buf[32+i*4:], g.JointIndices[i])
		binary.LittleEndian.PutUint32(buf[48+i*4:], math.Float32bits(g.JointWeights[i]))
	}
	return buf
}

// GPUSkinnedTangentVertex carries the full attribute set: base vertex,
// tangent, and joint skinning data. Tangent precedes the joint attributes so
// the shader locations stay stable across layouts (tangent at 3, joints at 4-5).
// Size: 80 bytes (48 tangent vertex + 32 skinning data, std430 aligned).
type GPUSkinnedTangentVertex struct {
	GPUTangentVertex            // offset  0: base vertex + tangent — 48 bytes
	JointIndices     [4]uint32  // offset 48: indices of up to 4 influencing joints (16 bytes)
	JointWeights     [4]float32 // offset 64: blend weights for each joint, sum ≈ 1.0 (16 bytes)
}

// Size returns the size of the GPUSkinnedTangentVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUSkinnedTangentVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUSkinnedTangentVertex struct into a byte buffer suitable
// for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload.
func (g *GPUSkinnedTangentVertex) Marshal() []byte {
	buf := make([]byte, 80)
	copy(buf, g.GPUTangentVertex.Marshal())
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint32(buf[48+i*4:], g.JointIndices[i])
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.JointWeights[i]))
	}
	return buf
}

// GPUInstanceTransform is the per-instance vertex stream record: the model
// matrix and its inverse-transpose, each packed as four vec4 columns. The
// inverse-transpose columns exist so the vertex stage can transport normals
// correctly under non-uniform scale without touching the model matrix.
// Size: 128 bytes (8 × vec4<f32>, std430 aligned, no padding required).
type GPUInstanceTransform struct {
	Model0 [4]float32 // offset   0: model matrix column 0
	Model1 [4]float32 // offset  16: model matrix column 1
	Model2 [4]float32 // offset  32: model matrix column 2
	Model3 [4]float32 // offset  48: model matrix column 3
	IT0    [4]float32 // offset  64: inverse-transpose column 0
	IT1    [4]float32 // offset  80: inverse-transpose column 1
	IT2    [4]float32 // offset  96: inverse-transpose column 2
	IT3    [4]float32 // offset 112: inverse-transpose column 3
}

// NewGPUInstanceTransform builds a GPUInstanceTransform from a model matrix,
// deriving the inverse-transpose columns. A singular model matrix leaves the
// inverse-transpose columns zeroed; the result is degenerate but well-formed,
// matching the unchecked-arithmetic policy of the vertex stage.
//
// Parameters:
//   - m: the 4x4 model (world) matrix, column-major
//
// Returns:
//   - GPUInstanceTransform: the packed instance record
func NewGPUInstanceTransform(m [16]float32) GPUInstanceTransform {
	var it [16]float32
	common.InverseTranspose4(it[:], m[:])
	return GPUInstanceTransform{
		Model0: [4]float32{m[0], m[1], m[2], m[3]},
		Model1: [4]float32{m[4], m[5], m[6], m[7]},
		Model2: [4]float32{m[8], m[9], m[10], m[11]},
		Model3: [4]float32{m[12], m[13], m[14], m[15]},
		IT0:    [4]float32{it[0], it[1], it[2], it[3]},
		IT1:    [4]float32{it[4], it[5], it[6], it[7]},
		IT2:    [4]float32{it[8], it[9], it[10], it[11]},
		IT3:    [4]float32{it[12], it[13], it[14], it[15]},
	}
}

// Model repacks the four model columns into a 4x4 column-major matrix,
// the same reassembly the vertex shader performs from locations 6-9.
//
// Returns:
//   - [16]float32: the model matrix, column-major
func (g *GPUInstanceTransform) Model() [16]float32 {
	return common.Mat4FromColumns(g.Model0, g.Model1, g.Model2, g.Model3)
}

// InverseTranspose repacks the four inverse-transpose columns into a 4x4
// column-major matrix, the reassembly the vertex shader performs from
// locations 10-13.
//
// Returns:
//   - [16]float32: the inverse-transpose of the model matrix, column-major
func (g *GPUInstanceTransform) InverseTranspose() [16]float32 {
	return common.Mat4FromColumns(g.IT0, g.IT1, g.IT2, g.IT3)
}

// Size returns the size of the GPUInstanceTransform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUInstanceTransform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUInstanceTransform struct into a byte buffer suitable
// for GPU upload.
//
// Returns:
//   - []byte: 128-byte buffer ready for GPU upload.
func (g *GPUInstanceTransform) Marshal() []byte {
	buf := make([]byte, 128)
	cols := [][4]float32{g.Model0, g.Model1, g.Model2, g.Model3, g.IT0, g.IT1, g.IT2, g.IT3}
	for c, col := range cols {
		for i := 0; i < 4; i++ {
			binary.LittleEndian.PutUint32(buf[c*16+i*4:], math.Float32bits(col[i]))
		}
	}
	return buf
}

// GPUModelDataSource is the canonical WGSL definition of the ModelData struct
// for the shared per-mesh model matrix uniform.
// Matches GPUModelData layout exactly (64 bytes, std430 aligned).
//
//go:embed assets/model_data.wgsl
var GPUModelDataSource string

// GPUModelData is the GPU-aligned representation of the shared per-mesh model
// matrix uniform. The shadow pass uses it as the base transform for meshes
// without skinning; it is one static value per mesh, not per instance.
// Matches the WGSL ModelData struct layout exactly (see GPUModelDataSource).
// Size: 64 bytes (mat4x4<f32> = 16 × float32, std430 aligned, no padding required).
type GPUModelData struct {
	Model [16]float32 // offset 0: 4×4 mesh-to-world transform matrix (64 bytes)
}

// Size returns the size of the GPUModelData struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUModelData) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUModelData struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (g *GPUModelData) Marshal() []byte {
	buf := make([]byte, 64)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(g.Model[i]))
	}
	return buf
}
