// pre_processor.go implements the Oxy WGSL template pre-processor. It scans template
// source for @oxy: annotations, keeps or drops feature blocks according to the enabled
// flags, and replaces the remaining annotations with injected struct source, generated
// binding declarations or constant declarations.
//
// The pre-processor maintains two registries:
//   - structRegistry: maps struct argument keys to embedded WGSL struct sources and their
//     resolved type names. Used by @oxy:include and @oxy:group.
//   - addressSpaceRegistry: maps address space argument keys to WGSL var<> syntax strings.
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-forward/engine/camera"
	"github.com/Carmen-Shannon/oxy-forward/engine/light"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
)

// registryEntry pairs a WGSL struct source string (embedded from a .wgsl asset file)
// with the resolved WGSL type name used in generated @group/@binding declarations.
type registryEntry struct {
	Source string
	Type   string
}

// constEntry is a WGSL const declaration supplied through WithConst.
type constEntry struct {
	wgslType string
	value    string
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	structRegistry       map[AnnotationArg]registryEntry
	addressSpaceRegistry map[AnnotationArg]string
	flags                map[AnnotationArg]bool
	consts               map[AnnotationArg]constEntry

	// declarations accumulates group annotations emitted during a Process call.
	declarations []Annotation
}

// PreProcessor expands an annotated WGSL template into plain WGSL.
type PreProcessor interface {
	// Process expands source. Feature blocks whose flag is unset are dropped along
	// with any annotations inside them. Remaining @oxy:include annotations are replaced
	// with struct source, @oxy:group with @group/@binding declarations and @oxy:const
	// with const declarations.
	//
	// Parameters:
	//   - source: the annotated WGSL template
	//
	// Returns:
	//   - string: plain WGSL with no annotations left
	//   - error: an error wrapping ErrUnknownAnnotation for malformed annotations,
	//     unbalanced blocks or constants with no supplied value
	Process(source string) (string, error)

	// Declarations returns the group annotations emitted by the most recent Process
	// call in source order.
	//
	// Returns:
	//   - []Annotation: the emitted binding declarations
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// PreProcessorOption is a functional option for configuring a PreProcessor.
type PreProcessorOption func(*preProcessor)

// WithFlag enables or disables a feature flag. Unset flags are disabled.
//
// Parameters:
//   - flag: one of the Flag* arguments
//   - enabled: whether blocks guarded by the flag are kept
//
// Returns:
//   - PreProcessorOption: functional option to set the flag
func WithFlag(flag AnnotationArg, enabled bool) PreProcessorOption {
	return func(p *preProcessor) {
		p.flags[flag] = enabled
	}
}

// WithConst supplies the value emitted for an @oxy:const annotation.
//
// Parameters:
//   - name: one of the Const* arguments
//   - wgslType: the declared WGSL type, e.g. "f32"
//   - value: a WGSL expression of that type
//
// Returns:
//   - PreProcessorOption: functional option to set the constant
func WithConst(name AnnotationArg, wgslType, value string) PreProcessorOption {
	return func(p *preProcessor) {
		p.consts[name] = constEntry{wgslType: wgslType, value: value}
	}
}

// NewPreProcessor creates a PreProcessor with the engine's GPU struct types registered.
//
// Parameters:
//   - options: flags and constants for the expansion
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor(options ...PreProcessorOption) PreProcessor {
	p := &preProcessor{
		structRegistry: map[AnnotationArg]registryEntry{
			AnnotationArgCamera:    {Source: camera.GPUCameraUniformSource, Type: "CameraUniform"},
			AnnotationArgTransform: {Source: model.GPUTransformUniformSource, Type: "TransformUniform"},
			AnnotationArgLight:     {Source: light.GPULightUniformSource, Type: "LightUniform"},
			AnnotationArgDraw:      {Source: model.GPUDrawUniformSource, Type: "DrawUniform"},
			annotationArgVertex:    {Source: model.GPUVertexSource, Type: "VertexInput"},
		},
		addressSpaceRegistry: map[AnnotationArg]string{
			annotationArgStorageTypeUniform: "var<uniform>",
			annotationArgStorageTypeRead:    "var<storage, read>",
		},
		flags:  make(map[AnnotationArg]bool),
		consts: make(map[AnnotationArg]constEntry),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// block is one open @oxy:if frame.
type block struct {
	line      int
	enclosing bool // the enclosing scope emits lines
	cond      bool
	inElse    bool
}

func (b block) active() bool {
	return b.enclosing && (b.cond != b.inElse)
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	var stack []block

	emitting := func() bool {
		return len(stack) == 0 || stack[len(stack)-1].active()
	}

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}

		if a == nil {
			if emitting() {
				out = append(out, line)
			}
			continue
		}

		// block structure is tracked even inside dropped blocks so nesting stays balanced
		switch a.Type {
		case AnnotationTypeIf:
			stack = append(stack, block{line: i + 1, enclosing: emitting(), cond: p.flags[a.Args[0]]})
			continue
		case AnnotationTypeElse:
			if len(stack) == 0 {
				return "", fmt.Errorf("%w: line %d: else without if", ErrUnknownAnnotation, i+1)
			}
			top := &stack[len(stack)-1]
			if top.inElse {
				return "", fmt.Errorf("%w: line %d: second else for the if on line %d", ErrUnknownAnnotation, i+1, top.line)
			}
			top.inElse = true
			continue
		case AnnotationTypeEndIf:
			if len(stack) == 0 {
				return "", fmt.Errorf("%w: line %d: endif without if", ErrUnknownAnnotation, i+1)
			}
			stack = stack[:len(stack)-1]
			continue
		}

		if !emitting() {
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			out = append(out, strings.TrimRight(p.structRegistry[a.Args[0]].Source, "\n"))
		case AnnotationTypeBindingGroup:
			addrSpace := p.addressSpaceRegistry[a.Args[0]]
			varName := string(a.Args[1])
			wgslType := p.structRegistry[a.Args[2]].Type
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;", *a.Group, *a.Binding, addrSpace, varName, wgslType))
			p.declarations = append(p.declarations, *a)
		case AnnotationTypeConst:
			c, ok := p.consts[a.Args[0]]
			if !ok {
				return "", fmt.Errorf("%w: line %d: no value supplied for constant %q", ErrUnknownAnnotation, i+1, a.Args[0])
			}
			out = append(out, fmt.Sprintf("const %s: %s = %s;", a.Args[0], c.wgslType, c.value))
		}
	}

	if len(stack) > 0 {
		return "", fmt.Errorf("%w: line %d: if without endif", ErrUnknownAnnotation, stack[len(stack)-1].line)
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}
