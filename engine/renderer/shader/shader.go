package shader

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// shader is the implementation of the Shader interface.
// It holds all of the persistent shader data required for pipeline creation and bind group wiring.
type shader struct {
	key                        string
	source                     string
	vertexEntryPoint           string
	fragmentEntryPoint         string
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	vertexLayouts              map[int][]wgpu.VertexBufferLayout
	module                     *wgpu.ShaderModuleDescriptor
}

// Shader is a parsed WGSL render module holding both a vertex and a fragment entry point.
// It exposes the metadata needed to build a render pipeline: entry points, bind group
// layouts and vertex buffer layouts.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for caching and lookups.
	Key() string

	// Source retrieves the WGSL shader source code.
	Source() string

	// BindGroupLayoutDescriptor retrieves the bind group layout descriptor for a group index.
	//
	// Parameters:
	//   - group: the @group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor, or an empty descriptor if the group is not declared
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors retrieves all parsed bind group layout descriptors keyed by group index.
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName retrieves the variable name for a given group and binding index.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - string: the variable name, or an empty string if not found
	BindGroupVarName(group, binding int) string

	// GroupForVarName finds the group and binding a variable is declared at.
	//
	// Parameters:
	//   - varName: the WGSL variable name, e.g. "camera"
	//
	// Returns:
	//   - int: the group index, or -1
	//   - int: the binding index, or -1
	//   - bool: true if the variable is declared
	GroupForVarName(varName string) (int, int, bool)

	// VertexLayouts retrieves all vertex buffer layouts parsed from vertex input structs.
	VertexLayouts() map[int][]wgpu.VertexBufferLayout

	// VertexEntryPoint returns the @vertex function name.
	VertexEntryPoint() string

	// FragmentEntryPoint returns the @fragment function name.
	FragmentEntryPoint() string

	// Module returns the wgpu.ShaderModuleDescriptor built from the source.
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader parses a WGSL render module. The source must already be expanded (see
// Generate) and declare both a @vertex and a @fragment entry point; anything else is a
// programming error and panics.
//
// Parameters:
//   - key: a unique identifier for the shader, used for caching and as the module label
//   - source: the WGSL source
//
// Returns:
//   - Shader: the parsed shader
func NewShader(key string, source string) Shader {
	if source == "" {
		panic(fmt.Sprintf("shader: %s must have a non-empty source", key))
	}
	s := &shader{
		key:    key,
		source: source,
		module: &wgpu.ShaderModuleDescriptor{
			Label: key,
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
				Code: source,
			},
		},
		vertexEntryPoint:   parseEntryPoint(source, vertexEntryRegex),
		fragmentEntryPoint: parseEntryPoint(source, fragmentEntryRegex),
		vertexLayouts:      parseVertexLayouts(source),
	}
	if s.vertexEntryPoint == "" || s.fragmentEntryPoint == "" {
		panic(fmt.Sprintf("shader: %s must declare both a @vertex and a @fragment entry point", key))
	}
	// every binding is shared by both stages of the forward module
	s.bindGroupLayoutDescriptors, s.bindingVarNames = parseBindGroupLayouts(source, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment)
	return s
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	if s.bindingVarNames[group] == nil {
		return ""
	}
	return s.bindingVarNames[group][binding]
}

func (s *shader) GroupForVarName(varName string) (int, int, bool) {
	for group, bindings := range s.bindingVarNames {
		for binding, name := range bindings {
			if name == varName {
				return group, binding, true
			}
		}
	}
	return -1, -1, false
}

func (s *shader) VertexLayouts() map[int][]wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntryPoint
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntryPoint
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}
