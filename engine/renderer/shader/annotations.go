// annotations.go defines the annotation types, argument constants, and parser for the
// Quarry WGSL shader pre-processor. Annotations are single-line WGSL comments prefixed
// with @quarry: that drive automatic struct injection and bind group declaration. The
// parsed results are stored as Annotation values and consumed by the PreProcessor and
// the pipeline layer to wire GPU resources without manual string lookups.
package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// annotationPrefix is the marker that identifies a Quarry annotation within a WGSL
// comment line. Every annotation must appear on a line beginning with "//" followed
// by this prefix.
const annotationPrefix = "@quarry:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
// Each type corresponds to a distinct pre-processor action and produces different
// fields on the resulting Annotation struct.
type AnnotationType string

const (
	// annotationTypeInclude injects the WGSL source of a registered struct definition
	// into the shader at the annotation site. The struct source is embedded from the
	// corresponding Go GPU type's .wgsl asset file. This annotation does not produce
	// a declaration and is consumed entirely during pre-processing.
	//
	// Syntax: //@quarry:include <struct_type>
	//
	// Example: //@quarry:include camera
	annotationTypeInclude AnnotationType = "include"

	// AnnotationTypeBindingGroup generates a WGSL @group/@binding variable declaration
	// and appends an Annotation to the PreProcessor's declarations list. The declaration
	// carries the group index, binding index, and the resolved struct type, enabling the
	// pipeline layer to semantically match bindings to GPU buffers without string lookups.
	//
	// Syntax: //@quarry:group <group> <binding> <address_space> <var_name> <type>
	//
	// Example: //@quarry:group 0 0 storage_uniform camera camera
	AnnotationTypeBindingGroup AnnotationType = "group"
)

// Annotation represents a single parsed @quarry: annotation from a WGSL shader source
// line. It carries the annotation type, its arguments, the source line number, and
// optional group/binding indices. Annotations of type AnnotationTypeBindingGroup are
// appended to the PreProcessor's declarations list for consumption by the pipeline
// layer during resource wiring.
type Annotation struct {
	// Type identifies which annotation was parsed (include or group).
	Type AnnotationType

	// Args holds the annotation's arguments. The contents depend on Type:
	//   - include: [0] = struct type key (e.g. "camera")
	//   - group:   [0] = address space, [1] = var name, [2] = WGSL type key
	Args []AnnotationArg

	// Line is the 1-based line number in the original WGSL source where this annotation
	// was found. Used for error reporting.
	Line int

	// Group is the @group index for group annotations. Nil for include annotations.
	Group *int

	// Binding is the @binding index for group annotations. Nil for include annotations.
	Binding *int
}

// AnnotationArg is a typed string constant used as an argument in annotations.
// Arguments fall into two categories: struct type keys (used with include and group)
// and address space identifiers (used with group).
type AnnotationArg string

// ── Struct type arguments ──────────────────────────────────────────────────────
// These identify registered WGSL struct types. They can appear in @quarry:include
// annotations (to inject the struct source) and in @quarry:group annotations (as the
// type field, optionally wrapped in array<>). Each maps to a Go GPU type with an
// embedded .wgsl asset file.

const (
	// AnnotationArgCamera identifies the CameraUniform struct.
	// Source: engine/camera/assets/camera_uniform.wgsl
	AnnotationArgCamera AnnotationArg = "camera"

	// AnnotationArgModelData identifies the ModelData struct holding the shared mesh model matrix.
	// Source: engine/model/assets/model_data.wgsl
	AnnotationArgModelData AnnotationArg = "model_data"

	// AnnotationArgShadowUniform identifies the ShadowUniform struct for the shadow depth pass.
	// Source: engine/light/assets/shadow_uniform.wgsl
	AnnotationArgShadowUniform AnnotationArg = "shadow_uniform"

	// AnnotationArgShadowData identifies the ShadowData struct the main pass uses
	// when sampling the shadow map.
	// Source: engine/light/assets/shadow_data.wgsl
	AnnotationArgShadowData AnnotationArg = "shadow_data"

	// AnnotationArgJointPalette identifies the JointPalette struct holding composed joint matrices.
	// Source: engine/skinning/assets/joint_palette.wgsl
	AnnotationArgJointPalette AnnotationArg = "joint_palette"
)

// ── Address space arguments ────────────────────────────────────────────────────
// These specify the WGSL variable address space in @quarry:group annotations.
// They map to WGSL var<> declarations.

const (
	// annotationArgStorageTypeUniform maps to var<uniform> in WGSL.
	annotationArgStorageTypeUniform AnnotationArg = "storage_uniform"

	// annotationArgStorageTypeRead maps to var<storage, read> in WGSL.
	annotationArgStorageTypeRead AnnotationArg = "storage_read"

	// annotationArgStorageTypeReadWrite maps to var<storage, read_write> in WGSL.
	annotationArgStorageTypeReadWrite AnnotationArg = "storage_read_write"
)

// validStructTypes lists all AnnotationArg values that are accepted as struct type
// arguments in @quarry:include and @quarry:group annotations. Each entry must have a
// corresponding registryEntry in the PreProcessor's structRegistry.
var validStructTypes = []AnnotationArg{
	AnnotationArgCamera,
	AnnotationArgModelData,
	AnnotationArgShadowUniform,
	AnnotationArgShadowData,
	AnnotationArgJointPalette,
}

// validAddressSpaces lists all AnnotationArg values that are accepted as address
// space arguments in @quarry:group annotations. Each maps to a WGSL var<> declaration.
var validAddressSpaces = []AnnotationArg{
	annotationArgStorageTypeUniform,
	annotationArgStorageTypeRead,
	annotationArgStorageTypeReadWrite,
}

// parseAnnotation attempts to parse a single line of WGSL source as a @quarry: annotation.
// Returns nil with no error for lines that do not contain the annotation prefix. Returns
// a populated Annotation for valid annotations, or an error describing the problem for
// malformed annotations with correct prefix but invalid syntax or unknown arguments.
//
// Parameters:
//   - line: the raw WGSL source line to parse
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	_, after, ok := strings.Cut(trimmed, annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @quarry annotation", lineNum)
	}

	switch args[0] {
	case string(annotationTypeInclude):
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @quarry include annotation requires exactly one argument", lineNum)
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[1])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in @quarry include annotation", lineNum, args[1])
		}
		return &Annotation{
			Type: annotationTypeInclude,
			Args: []AnnotationArg{AnnotationArg(args[1])},
			Line: lineNum,
		}, nil
	case string(AnnotationTypeBindingGroup):
		if len(args) != 6 {
			return nil, fmt.Errorf("line %d: @quarry group annotation requires exactly five arguments (group number, binding number, address space, var name, struct type)", lineNum)
		}
		groupInt, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid group number %q in @quarry group annotation: %v", lineNum, args[1], err)
		}
		bindingInt, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid binding number %q in @quarry group annotation: %v", lineNum, args[2], err)
		}
		if !slices.Contains(validAddressSpaces, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown address space %q in @quarry group annotation", lineNum, args[3])
		}
		typeArg := args[5]
		if inner, ok := strings.CutPrefix(typeArg, "array<"); ok {
			inner = strings.TrimSuffix(inner, ">")
			if !slices.Contains(validStructTypes, AnnotationArg(inner)) {
				return nil, fmt.Errorf("line %d: unknown array element type %q in @quarry group annotation", lineNum, inner)
			}
		} else {
			if !slices.Contains(validStructTypes, AnnotationArg(typeArg)) {
				return nil, fmt.Errorf("line %d: unknown struct type %q in @quarry group annotation", lineNum, typeArg)
			}
		}
		return &Annotation{
			Type:    AnnotationTypeBindingGroup,
			Args:    []AnnotationArg{AnnotationArg(args[3]), AnnotationArg(args[4]), AnnotationArg(args[5])},
			Line:    lineNum,
			Group:   &groupInt,
			Binding: &bindingInt,
		}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown @quarry annotation type %q", lineNum, args[0])
	}
}
