// annotations.go defines the annotation types, argument constants, and parser for the
// Oxy WGSL template pre-processor. Annotations are single-line WGSL comments prefixed
// with @oxy: that drive struct injection, bind group declaration, feature blocks and
// constant emission. The parsed results are stored as Annotation values and consumed
// by the PreProcessor.
package shader

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// annotationPrefix is the marker that identifies an Oxy annotation within a WGSL comment line.
// Every annotation must appear on a line beginning with "//" followed by this prefix.
const annotationPrefix = "@oxy:"

// ErrUnknownAnnotation is returned for malformed annotations, unknown arguments and
// unbalanced feature blocks.
var ErrUnknownAnnotation = errors.New("shader: bad @oxy annotation")

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	// annotationTypeInclude injects the WGSL source of a registered struct definition
	// at the annotation site. The struct source is embedded from the corresponding Go
	// GPU type's .wgsl asset file.
	//
	// Syntax: //@oxy:include <struct_type>
	//
	// Example: //@oxy:include camera
	annotationTypeInclude AnnotationType = "include"

	// AnnotationTypeBindingGroup generates a WGSL @group/@binding variable declaration.
	//
	// Syntax: //@oxy:group <group> <binding> <address_space> <var_name> <type>
	//
	// Example: //@oxy:group 0 0 storage_uniform camera camera
	AnnotationTypeBindingGroup AnnotationType = "group"

	// AnnotationTypeIf opens a feature block kept only when the named flag is set.
	// Blocks nest.
	//
	// Syntax: //@oxy:if <flag>
	AnnotationTypeIf AnnotationType = "if"

	// AnnotationTypeElse flips the innermost open feature block.
	//
	// Syntax: //@oxy:else
	AnnotationTypeElse AnnotationType = "else"

	// AnnotationTypeEndIf closes the innermost open feature block.
	//
	// Syntax: //@oxy:endif
	AnnotationTypeEndIf AnnotationType = "endif"

	// AnnotationTypeConst emits a module-scope WGSL const declaration whose value is
	// supplied to the pre-processor.
	//
	// Syntax: //@oxy:const <name>
	//
	// Example: //@oxy:const shininess  ->  const shininess: f32 = 32.0;
	AnnotationTypeConst AnnotationType = "const"
)

// Annotation represents a single parsed @oxy: annotation from a WGSL source line.
type Annotation struct {
	// Type identifies which annotation was parsed.
	Type AnnotationType

	// Args holds the annotation's arguments. The contents depend on Type:
	//   - include: [0] = struct type key (e.g. "camera")
	//   - group:   [0] = address space, [1] = var name, [2] = WGSL type key
	//   - if:      [0] = feature flag
	//   - const:   [0] = constant name
	//   - else, endif: none
	Args []AnnotationArg

	// Line is the 1-based line number in the template where this annotation was found.
	Line int

	// Group is the @group index for group annotations. Nil otherwise.
	Group *int

	// Binding is the @binding index for group annotations. Nil otherwise.
	Binding *int
}

// AnnotationArg is a typed string constant used as an argument in annotations.
type AnnotationArg string

// ── Struct type arguments ──────────────────────────────────────────────────────
// Each maps to a Go GPU type with an embedded .wgsl asset file.

const (
	// AnnotationArgCamera identifies the CameraUniform struct.
	// Source: engine/camera/assets/camera_uniform.wgsl
	AnnotationArgCamera AnnotationArg = "camera"

	// AnnotationArgTransform identifies the TransformUniform struct.
	// Source: engine/model/assets/transform_uniform.wgsl
	AnnotationArgTransform AnnotationArg = "transform"

	// AnnotationArgLight identifies the LightUniform struct.
	// Source: engine/light/assets/light_uniform.wgsl
	AnnotationArgLight AnnotationArg = "light"

	// AnnotationArgDraw identifies the DrawUniform struct carrying the material tag.
	// Source: engine/model/assets/draw_uniform.wgsl
	AnnotationArgDraw AnnotationArg = "draw"

	// annotationArgVertex identifies the VertexInput struct.
	// Source: engine/model/assets/vertex.wgsl
	annotationArgVertex AnnotationArg = "vertex"
)

// ── Address space arguments ────────────────────────────────────────────────────

const (
	// annotationArgStorageTypeUniform maps to var<uniform> in WGSL.
	annotationArgStorageTypeUniform AnnotationArg = "storage_uniform"

	// annotationArgStorageTypeRead maps to var<storage, read> in WGSL.
	annotationArgStorageTypeRead AnnotationArg = "storage_read"
)

// ── Feature flags ──────────────────────────────────────────────────────────────
// Flags select the blocks of the forward template. FlagsFor derives them from a
// shading.Config.

const (
	FlagBlinn                  AnnotationArg = "blinn"
	FlagPhong                  AnnotationArg = "phong"
	FlagViewCamera             AnnotationArg = "view_camera"
	FlagViewFixed              AnnotationArg = "view_fixed"
	FlagMaterialHeuristic      AnnotationArg = "material_heuristic"
	FlagMaterialTagged         AnnotationArg = "material_tagged"
	FlagGroundMaterial         AnnotationArg = "ground_material" // heuristic or tagged
	FlagShadowHook             AnnotationArg = "shadow_hook"
	FlagNormalInverseTranspose AnnotationArg = "normal_inverse_transpose"
)

// ── Constant names ─────────────────────────────────────────────────────────────

const (
	ConstDiffuseFloor        AnnotationArg = "diffuse_floor"
	ConstShininess           AnnotationArg = "shininess"
	ConstGroundSpecularScale AnnotationArg = "ground_specular_scale"
	ConstFallbackViewDir     AnnotationArg = "fallback_view_dir"
	ConstGroundGridScale     AnnotationArg = "ground_grid_scale"
	ConstGroundLineWidth     AnnotationArg = "ground_line_width"
	ConstGroundBaseColor     AnnotationArg = "ground_base_color"
	ConstGroundLineColor     AnnotationArg = "ground_line_color"
	ConstGroundTag           AnnotationArg = "ground_tag"
)

var validStructTypes = []AnnotationArg{
	AnnotationArgCamera,
	AnnotationArgTransform,
	AnnotationArgLight,
	AnnotationArgDraw,
	annotationArgVertex,
}

var validAddressSpaces = []AnnotationArg{
	annotationArgStorageTypeUniform,
	annotationArgStorageTypeRead,
}

var validFlags = []AnnotationArg{
	FlagBlinn,
	FlagPhong,
	FlagViewCamera,
	FlagViewFixed,
	FlagMaterialHeuristic,
	FlagMaterialTagged,
	FlagGroundMaterial,
	FlagShadowHook,
	FlagNormalInverseTranspose,
}

var validConsts = []AnnotationArg{
	ConstDiffuseFloor,
	ConstShininess,
	ConstGroundSpecularScale,
	ConstFallbackViewDir,
	ConstGroundGridScale,
	ConstGroundLineWidth,
	ConstGroundBaseColor,
	ConstGroundLineColor,
	ConstGroundTag,
}

// parseAnnotation attempts to parse a single line of WGSL source as an @oxy: annotation.
// Returns nil with no error for lines that do not contain the annotation prefix.
//
// Parameters:
//   - line: the raw WGSL source line to parse
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: an error wrapping ErrUnknownAnnotation if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	comment, ok := strings.CutPrefix(trimmed, "//")
	if !ok {
		return nil, nil
	}
	after, ok := strings.CutPrefix(strings.TrimSpace(comment), annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: line %d: empty annotation", ErrUnknownAnnotation, lineNum)
	}

	switch AnnotationType(args[0]) {
	case annotationTypeInclude:
		if len(args) != 2 {
			return nil, fmt.Errorf("%w: line %d: include requires exactly one argument", ErrUnknownAnnotation, lineNum)
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[1])) {
			return nil, fmt.Errorf("%w: line %d: unknown struct type %q", ErrUnknownAnnotation, lineNum, args[1])
		}
		return &Annotation{Type: annotationTypeInclude, Args: []AnnotationArg{AnnotationArg(args[1])}, Line: lineNum}, nil
	case AnnotationTypeBindingGroup:
		if len(args) != 6 {
			return nil, fmt.Errorf("%w: line %d: group requires group, binding, address space, var name and struct type", ErrUnknownAnnotation, lineNum)
		}
		groupInt, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: invalid group number %q", ErrUnknownAnnotation, lineNum, args[1])
		}
		bindingInt, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: invalid binding number %q", ErrUnknownAnnotation, lineNum, args[2])
		}
		if !slices.Contains(validAddressSpaces, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("%w: line %d: unknown address space %q", ErrUnknownAnnotation, lineNum, args[3])
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[5])) {
			return nil, fmt.Errorf("%w: line %d: unknown struct type %q", ErrUnknownAnnotation, lineNum, args[5])
		}
		return &Annotation{
			Type:    AnnotationTypeBindingGroup,
			Args:    []AnnotationArg{AnnotationArg(args[3]), AnnotationArg(args[4]), AnnotationArg(args[5])},
			Line:    lineNum,
			Group:   &groupInt,
			Binding: &bindingInt,
		}, nil
	case AnnotationTypeIf:
		if len(args) != 2 {
			return nil, fmt.Errorf("%w: line %d: if requires exactly one flag", ErrUnknownAnnotation, lineNum)
		}
		if !slices.Contains(validFlags, AnnotationArg(args[1])) {
			return nil, fmt.Errorf("%w: line %d: unknown flag %q", ErrUnknownAnnotation, lineNum, args[1])
		}
		return &Annotation{Type: AnnotationTypeIf, Args: []AnnotationArg{AnnotationArg(args[1])}, Line: lineNum}, nil
	case AnnotationTypeElse, AnnotationTypeEndIf:
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: line %d: %s takes no arguments", ErrUnknownAnnotation, lineNum, args[0])
		}
		return &Annotation{Type: AnnotationType(args[0]), Line: lineNum}, nil
	case AnnotationTypeConst:
		if len(args) != 2 {
			return nil, fmt.Errorf("%w: line %d: const requires exactly one name", ErrUnknownAnnotation, lineNum)
		}
		if !slices.Contains(validConsts, AnnotationArg(args[1])) {
			return nil, fmt.Errorf("%w: line %d: unknown constant %q", ErrUnknownAnnotation, lineNum, args[1])
		}
		return &Annotation{Type: AnnotationTypeConst, Args: []AnnotationArg{AnnotationArg(args[1])}, Line: lineNum}, nil
	default:
		return nil, fmt.Errorf("%w: line %d: unknown annotation type %q", ErrUnknownAnnotation, lineNum, args[0])
	}
}
