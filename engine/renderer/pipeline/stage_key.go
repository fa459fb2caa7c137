package pipeline

import (
	"github.com/quarry-engine/quarry/engine/renderer/shader"
)

// PassType identifies which render pass a pipeline serves.
type PassType int

const (
	// PassMain is the forward geometry pass rendering into the color and depth targets.
	PassMain PassType = iota

	// PassShadow is the directional light depth-only pass rendering into the shadow map.
	PassShadow
)

// String returns the pass name used in pipeline cache keys.
func (p PassType) String() string {
	switch p {
	case PassMain:
		return "main"
	case PassShadow:
		return "shadow"
	default:
		return "unknown"
	}
}

// StageKey identifies one concrete pipeline variant: a render pass plus the
// compile-time vertex layout toggles. Two draws with equal StageKeys can share
// a pipeline; unequal keys never can, since their shader variants and vertex
// buffer layouts differ.
type StageKey struct {
	// Pass selects the render pass this pipeline serves.
	Pass PassType

	// Skinned selects the skinned vertex path: joint attributes in the vertex
	// layout and a joint palette bind group in place of the rigid model source.
	Skinned bool

	// Tangents selects the tangent vertex attribute and its world-space output.
	Tangents bool
}

// String returns the cache key for this stage variant, e.g. "main+SKINNED".
//
// Returns:
//   - string: the unique cache key
func (k StageKey) String() string {
	s := k.Pass.String()
	if k.Skinned {
		s += "+" + string(shader.FeatureSkinned)
	}
	if k.Tangents {
		s += "+" + string(shader.FeatureVertexTangents)
	}
	return s
}

// Features converts the stage toggles into the shader feature set used to
// specialize the pass template.
//
// Returns:
//   - shader.FeatureSet: the feature set matching this key's toggles
func (k StageKey) Features() shader.FeatureSet {
	var features []shader.Feature
	if k.Skinned {
		features = append(features, shader.FeatureSkinned)
	}
	if k.Tangents {
		features = append(features, shader.FeatureVertexTangents)
	}
	return shader.NewFeatureSet(features...)
}

// AllStageKeys returns every pipeline variant across both passes, in a fixed
// order. Used to warm the pipeline cache at startup.
//
// Returns:
//   - []StageKey: the eight pass and toggle combinations
func AllStageKeys() []StageKey {
	keys := make([]StageKey, 0, 8)
	for _, pass := range []PassType{PassMain, PassShadow} {
		for _, skinned := range []bool{false, true} {
			for _, tangents := range []bool{false, true} {
				keys = append(keys, StageKey{Pass: pass, Skinned: skinned, Tangents: tangents})
			}
		}
	}
	return keys
}
