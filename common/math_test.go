package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity(t *testing.T) {
	m := make([]float32, 16)
	for i := range m {
		m[i] = 9
	}
	Identity(m)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := float32(0)
			if i == j {
				want = 1
			}
			assert.Equal(t, want, m[i*4+j])
		}
	}
}

func TestMul4IdentityIsNeutral(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	BuildModelMatrix(m[:], 1, 2, 3, 0.3, 0.7, 0.1, 2, 1, 0.5)

	Mul4(out[:], id[:], m[:])
	assertMatInDelta(t, m[:], out[:], 1e-6)

	Mul4(out[:], m[:], id[:])
	assertMatInDelta(t, m[:], out[:], 1e-6)
}

func TestMul4CompositionOrder(t *testing.T) {
	// T * S scales first, then translates: (1,0,0) -> (3,0,0).
	var trans, scale, ts [16]float32
	BuildModelMatrix(trans[:], 1, 0, 0, 0, 0, 0, 1, 1, 1)
	BuildModelMatrix(scale[:], 0, 0, 0, 0, 0, 0, 2, 2, 2)

	Mul4(ts[:], trans[:], scale[:])
	out := Mul4Vec4(ts[:], [4]float32{1, 0, 0, 1})
	assert.InDelta(t, 3.0, out[0], 1e-6)

	// S * T translates first, then scales: (1,0,0) -> (4,0,0).
	var st [16]float32
	Mul4(st[:], scale[:], trans[:])
	out = Mul4Vec4(st[:], [4]float32{1, 0, 0, 1})
	assert.InDelta(t, 4.0, out[0], 1e-6)
}

func TestMul4AliasSafe(t *testing.T) {
	var a, b, want [16]float32
	BuildModelMatrix(a[:], 1, 2, 3, 0.4, 0, 0, 1, 1, 1)
	BuildModelMatrix(b[:], 0, 0, 0, 0, 0.4, 0, 2, 2, 2)
	Mul4(want[:], a[:], b[:])

	Mul4(a[:], a[:], b[:]) // out aliases a
	assertMatInDelta(t, want[:], a[:], 1e-6)
}

func TestInvert4Roundtrip(t *testing.T) {
	var m, inv, out, id [16]float32
	BuildModelMatrix(m[:], 5, -2, 7, 0.2, 1.1, -0.6, 2, 3, 0.5)
	Identity(id[:])

	require.True(t, Invert4(inv[:], m[:]))
	Mul4(out[:], m[:], inv[:])
	assertMatInDelta(t, id[:], out[:], 1e-4)
}

func TestInvert4SingularReturnsFalse(t *testing.T) {
	var m, out [16]float32 // zero matrix
	out[3] = 42
	assert.False(t, Invert4(out[:], m[:]))
	assert.Equal(t, float32(42), out[3], "output untouched on failure")
}

func TestInverseTranspose4NormalUnderNonUniformScale(t *testing.T) {
	var m, it [16]float32
	BuildModelMatrix(m[:], 0, 0, 0, 0, 0, 0, 2, 1, 1)
	require.True(t, InverseTranspose4(it[:], m[:]))

	nm := Mat3FromMat4(it[:])
	n := Mul3Vec3(nm[:], [3]float32{1, 0, 0})
	assert.InDelta(t, 0.5, n[0], 1e-6)
	assert.InDelta(t, 0.0, n[1], 1e-6)
	assert.InDelta(t, 0.0, n[2], 1e-6)
}

func TestInverseTranspose4MatchesUpper3x3Inverse(t *testing.T) {
	// For an affine transform, translation must not affect the normal matrix:
	// the upper 3x3 of the inverse-transpose is identical with and without it.
	var withT, withoutT, itA, itB [16]float32
	BuildModelMatrix(withT[:], 10, 20, 30, 0.5, 0.2, 0.9, 2, 1, 3)
	BuildModelMatrix(withoutT[:], 0, 0, 0, 0.5, 0.2, 0.9, 2, 1, 3)

	require.True(t, InverseTranspose4(itA[:], withT[:]))
	require.True(t, InverseTranspose4(itB[:], withoutT[:]))

	a := Mat3FromMat4(itA[:])
	b := Mat3FromMat4(itB[:])
	for i := range a {
		assert.InDelta(t, b[i], a[i], 1e-5)
	}
}

func TestTranspose4(t *testing.T) {
	var m, out [16]float32
	for i := range m {
		m[i] = float32(i)
	}
	Transpose4(out[:], m[:])
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			assert.Equal(t, m[c*4+r], out[r*4+c])
		}
	}
}

func TestMat4FromColumns(t *testing.T) {
	m := Mat4FromColumns(
		[4]float32{1, 2, 3, 4},
		[4]float32{5, 6, 7, 8},
		[4]float32{9, 10, 11, 12},
		[4]float32{13, 14, 15, 16},
	)
	for i := range m {
		assert.Equal(t, float32(i+1), m[i])
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	var p [16]float32
	Perspective(p[:], 1.0472, 16.0/9.0, 0.1, 100)

	// View space looks down -Z. Near plane maps to depth 0, far plane to 1.
	near := Mul4Vec4(p[:], [4]float32{0, 0, -0.1, 1})
	far := Mul4Vec4(p[:], [4]float32{0, 0, -100, 1})
	assert.InDelta(t, 0.0, near[2]/near[3], 1e-5)
	assert.InDelta(t, 1.0, far[2]/far[3], 1e-4)
}

func TestOrthographicDepthRange(t *testing.T) {
	var p [16]float32
	Orthographic(p[:], -40, 40, -40, 40, 0.1, 200)

	near := Mul4Vec4(p[:], [4]float32{0, 0, -0.1, 1})
	far := Mul4Vec4(p[:], [4]float32{0, 0, -200, 1})
	assert.InDelta(t, 0.0, near[2], 1e-6)
	assert.InDelta(t, 1.0, far[2], 1e-5)

	// Corners of the volume land on the clip-space boundary.
	corner := Mul4Vec4(p[:], [4]float32{40, -40, -0.1, 1})
	assert.InDelta(t, 1.0, corner[0], 1e-6)
	assert.InDelta(t, -1.0, corner[1], 1e-6)
}

func TestLookAtTransformsTargetOntoNegativeZ(t *testing.T) {
	var v [16]float32
	LookAt(v[:], 0, 0, 10, 0, 0, 0, 0, 1, 0)

	origin := Mul4Vec4(v[:], [4]float32{0, 0, 0, 1})
	assert.InDelta(t, 0.0, origin[0], 1e-6)
	assert.InDelta(t, 0.0, origin[1], 1e-6)
	assert.InDelta(t, -10.0, origin[2], 1e-6)

	eye := Mul4Vec4(v[:], [4]float32{0, 0, 10, 1})
	assert.InDelta(t, 0.0, eye[2], 1e-6)
}

func TestBuildModelMatrixScaleAndTranslate(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], 1, 2, 3, 0, 0, 0, 2, 3, 4)

	out := Mul4Vec4(m[:], [4]float32{1, 1, 1, 1})
	assert.InDelta(t, 3.0, out[0], 1e-6)
	assert.InDelta(t, 5.0, out[1], 1e-6)
	assert.InDelta(t, 7.0, out[2], 1e-6)
}

func TestBuildModelMatrixRotationPreservesLength(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], 0, 0, 0, 0.3, 1.2, 0.7, 1, 1, 1)

	out := Mul4Vec4(m[:], [4]float32{1, 0, 0, 1})
	length := out[0]*out[0] + out[1]*out[1] + out[2]*out[2]
	assert.InDelta(t, 1.0, length, 1e-5)
}

func TestSliceToBytes(t *testing.T) {
	data := []float32{1.0}
	buf := SliceToBytes(data)
	require.Len(t, buf, 4)
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, buf)

	assert.Nil(t, SliceToBytes([]float32(nil)))
}

func assertMatInDelta(t *testing.T, want, got []float32, delta float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "element %d", i)
	}
}
