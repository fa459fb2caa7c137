package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/quarry-engine/quarry/common"
)

// GPUShadowUniformSource is the canonical WGSL definition of the ShadowUniform struct.
// Matches GPUShadowUniform layout exactly (64 bytes, std430 aligned).
//
//go:embed assets/shadow_uniform.wgsl
var GPUShadowUniformSource string

// GPUShadowUniform is the GPU-aligned representation of the shadow vertex
// shader uniform containing only the light view-projection matrix.
// Matches the WGSL ShadowUniform struct layout exactly (see GPUShadowUniformSource).
// Size: 64 bytes (mat4x4<f32>).
type GPUShadowUniform struct {
	LightVP [16]float32 // orthographic view-projection from light's perspective
}

// Size returns the size of the GPUShadowUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (u *GPUShadowUniform) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the GPUShadowUniform struct into a byte buffer suitable for
// GPU uniform upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (u *GPUShadowUniform) Marshal() []byte {
	buf := make([]byte, 64)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(u.LightVP[i]))
	}
	return buf
}

// GPUShadowDataSource is the canonical WGSL definition of the ShadowData struct.
// Matches GPUShadowData layout exactly (80 bytes, std430 aligned).
//
//go:embed assets/shadow_data.wgsl
var GPUShadowDataSource string

// GPUShadowData is the GPU-aligned representation of directional shadow data
// consumed by the main pass when sampling the shadow map.
// Size: 80 bytes (std430 / WGSL aligned).
//
// Layout:
//
//	mat4x4<f32> light_vp       (64 bytes, offset 0)
//	vec2<f32>   texel_size     ( 8 bytes, offset 64)
//	f32         bias           ( 4 bytes, offset 72)
//	f32         normal_bias    ( 4 bytes, offset 76)
type GPUShadowData struct {
	LightVP    [16]float32 // orthographic view-projection from light's perspective
	TexelSize  [2]float32  // 1.0 / shadow_map_resolution for PCF offset calculations
	Bias       float32     // depth comparison bias to reduce shadow acne
	NormalBias float32     // world-space normal-offset distance for shadow lookup
}

// Size returns the size of the GPUShadowData struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (s *GPUShadowData) Size() int {
	return int(unsafe.Sizeof(*s))
}

// ComputeDirectionalLightVP builds an orthographic view-projection matrix for a
// directional light's shadow pass and stores it in the receiver's LightVP field.
// The frustum is centered on the provided center position (typically the camera
// position) and aligned to look along the light's direction.
//
// Parameters:
//   - lightDir: normalized direction the light points (from light toward scene)
//   - centerX, centerY, centerZ: world-space center of the shadow frustum
//   - halfExtent: half-size of the orthographic frustum in world units
//   - near: near plane distance
//   - far: far plane distance
func (s *GPUShadowData) ComputeDirectionalLightVP(lightDir [3]float32, centerX, centerY, centerZ, halfExtent, near, far float32) {
	// Position the "eye" behind the center, opposite the light direction,
	// so we look from behind the scene toward the lit area.
	eyeX := centerX - lightDir[0]*far*0.5
	eyeY := centerY - lightDir[1]*far*0.5
	eyeZ := centerZ - lightDir[2]*far*0.5

	// Choose a stable up vector that isn't parallel to the light direction.
	// If the light points nearly straight up or down, use X-axis as up.
	upX, upY, upZ := float32(0), float32(1), float32(0)
	if math32.Abs(lightDir[1]) > 0.99 {
		upX, upY, upZ = 1, 0, 0
	}

	var view [16]float32
	common.LookAt(view[:],
		eyeX, eyeY, eyeZ,
		centerX, centerY, centerZ,
		upX, upY, upZ,
	)

	var proj [16]float32
	common.Orthographic(proj[:], -halfExtent, halfExtent, -halfExtent, halfExtent, near, far)

	common.Mul4(s.LightVP[:], proj[:], view[:])
}

// ComputeNormalBias derives the world-space normal-offset bias from the shadow
// map parameters and stores it in the receiver's NormalBias field. The result is
// the distance (in world units) that fragment positions are shifted along their
// surface normal before projecting into light clip space. This prevents
// self-shadowing on concave geometry.
//
// Parameters:
//   - halfExtent: orthographic frustum half-size in world units
//   - scale: multiplier on the per-texel world size (typically 2.0–4.0)
//   - resolution: shadow map resolution in texels (width and height)
func (s *GPUShadowData) ComputeNormalBias(halfExtent, scale float32, resolution int) {
	texelWorldSize := 2.0 * halfExtent / float32(resolution)
	s.NormalBias = texelWorldSize * scale
}

// Marshal serializes the GPUShadowData struct into a byte buffer suitable for
// GPU uniform upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload
func (s *GPUShadowData) Marshal() []byte {
	buf := make([]byte, 80)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(s.LightVP[i]))
	}
	binary.LittleEndian.PutUint32(buf[64:68], math.Float32bits(s.TexelSize[0]))
	binary.LittleEndian.PutUint32(buf[68:72], math.Float32bits(s.TexelSize[1]))
	binary.LittleEndian.PutUint32(buf[72:76], math.Float32bits(s.Bias))
	binary.LittleEndian.PutUint32(buf[76:80], math.Float32bits(s.NormalBias))
	return buf
}

// Uniform extracts the shadow vertex-stage uniform from the full shadow data.
// The shadow pass vertex shader needs only the light view-projection matrix;
// bias parameters are consumed by the main pass when sampling.
//
// Returns:
//   - GPUShadowUniform: the vertex-stage uniform snapshot
func (s *GPUShadowData) Uniform() GPUShadowUniform {
	return GPUShadowUniform{LightVP: s.LightVP}
}
