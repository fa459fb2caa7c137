package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/quarry-engine/quarry/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCameraDefaults(t *testing.T) {
	cam := NewCamera()
	assert.Equal(t, [3]float32{0, 5, 10}, cam.Position())
	assert.InDelta(t, 1.0472, cam.Fov(), 1e-6)
	assert.InDelta(t, 16.0/9.0, cam.Aspect(), 1e-6)
	assert.Equal(t, float32(0.1), cam.Near())
	assert.Equal(t, float32(1000), cam.Far())
}

func TestViewProjectionCombinesViewAndProjection(t *testing.T) {
	cam := NewCamera(
		WithPosition(0, 0, 10),
		WithTarget(0, 0, 0),
	)

	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()
	var want [16]float32
	common.Mul4(want[:], proj[:], view[:])
	assert.Equal(t, want, cam.ViewProjectionMatrix())
}

func TestTargetProjectsToScreenCenter(t *testing.T) {
	cam := NewCamera(
		WithPosition(3, 4, 12),
		WithTarget(1, -2, 0),
	)

	vp := cam.ViewProjectionMatrix()
	clip := common.Mul4Vec4(vp[:], [4]float32{1, -2, 0, 1})
	assert.InDelta(t, 0.0, clip[0]/clip[3], 1e-5)
	assert.InDelta(t, 0.0, clip[1]/clip[3], 1e-5)

	depth := clip[2] / clip[3]
	assert.Greater(t, depth, float32(0))
	assert.Less(t, depth, float32(1))
}

func TestSettersRecomputeMatrices(t *testing.T) {
	cam := NewCamera()
	before := cam.ViewProjectionMatrix()

	cam.SetPosition(0, 0, 20)
	afterMove := cam.ViewProjectionMatrix()
	assert.NotEqual(t, before, afterMove)

	cam.SetAspect(1.0)
	afterAspect := cam.ViewProjectionMatrix()
	assert.NotEqual(t, afterMove, afterAspect)
	assert.Equal(t, float32(1.0), cam.Aspect())

	cam.SetTarget(5, 0, 0)
	assert.NotEqual(t, afterAspect, cam.ViewProjectionMatrix())
}

func TestUniformSnapshotsCurrentState(t *testing.T) {
	cam := NewCamera(WithPosition(1, 2, 3))
	u := cam.Uniform()

	assert.Equal(t, cam.ViewProjectionMatrix(), u.ViewProj)
	assert.Equal(t, [3]float32{1, 2, 3}, u.CameraPosition)
}

func TestUniformMarshalLayout(t *testing.T) {
	u := GPUCameraUniform{
		CameraPosition: [3]float32{1, 2, 3},
	}
	u.ViewProj[0] = 1

	buf := u.Marshal()
	require.Len(t, buf, 80)
	assert.Equal(t, 80, u.Size())

	// ViewProj[0] at offset 0, position at offset 64.
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[64:68])))
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(buf[68:72])))
	assert.Equal(t, float32(3), math.Float32frombits(binary.LittleEndian.Uint32(buf[72:76])))
}
