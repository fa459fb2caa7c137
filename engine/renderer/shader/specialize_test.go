package shader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecializeSelectsEnabledBranch(t *testing.T) {
	src := strings.Join([]string{
		"a",
		"#ifdef SKINNED",
		"skinned_line",
		"#else",
		"rigid_line",
		"#endif",
		"b",
	}, "\n")

	out, err := Specialize(src, NewFeatureSet(FeatureSkinned))
	require.NoError(t, err)
	assert.Contains(t, out, "skinned_line")
	assert.NotContains(t, out, "rigid_line")
	assert.NotContains(t, out, "#ifdef")

	out, err = Specialize(src, NewFeatureSet())
	require.NoError(t, err)
	assert.Contains(t, out, "rigid_line")
	assert.NotContains(t, out, "skinned_line")
}

func TestSpecializeIfndef(t *testing.T) {
	src := "#ifndef SKINNED\nrigid_only\n#endif"

	out, err := Specialize(src, NewFeatureSet())
	require.NoError(t, err)
	assert.Contains(t, out, "rigid_only")

	out, err = Specialize(src, NewFeatureSet(FeatureSkinned))
	require.NoError(t, err)
	assert.NotContains(t, out, "rigid_only")
}

func TestSpecializeNestedBlocks(t *testing.T) {
	src := strings.Join([]string{
		"#ifdef SKINNED",
		"#ifdef VERTEX_TANGENTS",
		"both",
		"#else",
		"skinned_only",
		"#endif",
		"#endif",
	}, "\n")

	out, err := Specialize(src, NewFeatureSet(FeatureSkinned, FeatureVertexTangents))
	require.NoError(t, err)
	assert.Contains(t, out, "both")
	assert.NotContains(t, out, "skinned_only")

	out, err = Specialize(src, NewFeatureSet(FeatureSkinned))
	require.NoError(t, err)
	assert.Contains(t, out, "skinned_only")
	assert.NotContains(t, out, "both")

	out, err = Specialize(src, NewFeatureSet(FeatureVertexTangents))
	require.NoError(t, err)
	assert.NotContains(t, out, "both")
	assert.NotContains(t, out, "skinned_only")
}

func TestSpecializeRejectsUnknownDirective(t *testing.T) {
	_, err := Specialize("#ifdfe SKINNED\nx\n#endif", NewFeatureSet())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown directive")
}

func TestSpecializeRejectsUnbalancedBlocks(t *testing.T) {
	_, err := Specialize("#ifdef SKINNED\nx", NewFeatureSet())
	assert.Error(t, err)

	_, err = Specialize("x\n#endif", NewFeatureSet())
	assert.Error(t, err)

	_, err = Specialize("#else\nx", NewFeatureSet())
	assert.Error(t, err)
}

func TestSpecializeRejectsDuplicateElse(t *testing.T) {
	src := "#ifdef SKINNED\na\n#else\nb\n#else\nc\n#endif"
	_, err := Specialize(src, NewFeatureSet())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate #else")
}
