// specialize.go implements compile-time feature toggles for WGSL shader source.
// Shader templates carry #ifdef / #else / #endif directives naming feature flags;
// Specialize resolves them against a set of enabled features, producing one concrete
// shader variant per feature combination. The directives nest, and every branch of
// the template must independently produce valid WGSL since each combination is
// compiled into its own pipeline.
package shader

import (
	"fmt"
	"strings"
)

// Feature names a compile-time shader toggle. Each enabled feature selects the
// #ifdef branches guarded by its name during specialization.
type Feature string

const (
	// FeatureSkinned enables the skinned vertex path: joint indices and weights in
	// the vertex input, and a joint palette blend in place of the rigid model matrix.
	FeatureSkinned Feature = "SKINNED"

	// FeatureVertexTangents enables the tangent vertex attribute and its
	// world-space transform output for normal mapping.
	FeatureVertexTangents Feature = "VERTEX_TANGENTS"
)

// FeatureSet is the set of enabled compile-time toggles for one shader variant.
type FeatureSet map[Feature]bool

// NewFeatureSet builds a FeatureSet from the listed features.
//
// Parameters:
//   - features: the features to enable
//
// Returns:
//   - FeatureSet: the set with each listed feature enabled
func NewFeatureSet(features ...Feature) FeatureSet {
	fs := make(FeatureSet, len(features))
	for _, f := range features {
		fs[f] = true
	}
	return fs
}

// Specialize resolves all #ifdef / #else / #endif directives in a WGSL template
// against the given feature set. Lines inside a disabled branch are dropped;
// directive lines themselves never appear in the output. Directives may nest.
//
// Any other line beginning with '#' is rejected: the directive vocabulary is
// closed, and a typo like #ifdfe must fail loudly rather than leak into the
// WGSL compiler as garbage.
//
// Parameters:
//   - source: the WGSL template text containing directives
//   - features: the enabled feature set for this variant
//
// Returns:
//   - string: the specialized WGSL source
//   - error: an error for unknown directives, unbalanced blocks, or a stray #else
func Specialize(source string, features FeatureSet) (string, error) {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	// Each stack entry records whether its branch is emitting and whether an
	// #else has already been seen for that block.
	type condFrame struct {
		emitting bool
		taken    bool
		seenElse bool
	}
	var stack []condFrame

	emitting := func() bool {
		for _, f := range stack {
			if !f.emitting {
				return false
			}
		}
		return true
	}

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "#") {
			if emitting() {
				out = append(out, line)
			}
			continue
		}

		fields := strings.Fields(trimmed)
		switch fields[0] {
		case "#ifdef":
			if len(fields) != 2 {
				return "", fmt.Errorf("line %d: #ifdef requires exactly one feature name", i+1)
			}
			enabled := features[Feature(fields[1])]
			stack = append(stack, condFrame{emitting: enabled, taken: enabled})
		case "#ifndef":
			if len(fields) != 2 {
				return "", fmt.Errorf("line %d: #ifndef requires exactly one feature name", i+1)
			}
			enabled := !features[Feature(fields[1])]
			stack = append(stack, condFrame{emitting: enabled, taken: enabled})
		case "#else":
			if len(stack) == 0 {
				return "", fmt.Errorf("line %d: #else without matching #ifdef", i+1)
			}
			top := &stack[len(stack)-1]
			if top.seenElse {
				return "", fmt.Errorf("line %d: duplicate #else in conditional block", i+1)
			}
			top.seenElse = true
			top.emitting = !top.taken
		case "#endif":
			if len(stack) == 0 {
				return "", fmt.Errorf("line %d: #endif without matching #ifdef", i+1)
			}
			stack = stack[:len(stack)-1]
		default:
			return "", fmt.Errorf("line %d: unknown directive %q", i+1, fields[0])
		}
	}

	if len(stack) != 0 {
		return "", fmt.Errorf("unterminated conditional block: %d #ifdef without #endif", len(stack))
	}
	return strings.Join(out, "\n"), nil
}
