package shader

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-forward/engine/camera"
	"github.com/Carmen-Shannon/oxy-forward/engine/light"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
	"github.com/Carmen-Shannon/oxy-forward/engine/shading"
)

// ErrLayoutMismatch is returned when a WGSL struct and its Go GPU type disagree on size
// or member offsets.
var ErrLayoutMismatch = errors.New("shader: layout mismatch")

// GPUType is implemented by the Go records uploaded to the GPU.
type GPUType interface {
	// Size returns the record size in bytes.
	Size() int
	// Offsets returns the byte offset of each WGSL member in declaration order.
	Offsets() []int
}

// Expectation pairs a WGSL struct name with the Go type that must match it.
type Expectation struct {
	Struct string
	Type   GPUType
}

// ForwardExpectations lists the structs the generated forward shader declares for cfg.
// DrawUniform is only expected when materials are tagged.
//
// Parameters:
//   - cfg: the stage configuration
//
// Returns:
//   - []Expectation: one entry per shared record
func ForwardExpectations(cfg shading.Config) []Expectation {
	exps := []Expectation{
		{Struct: "CameraUniform", Type: &camera.GPUCameraUniform{}},
		{Struct: "TransformUniform", Type: &model.GPUTransformUniform{}},
		{Struct: "LightUniform", Type: &light.GPULightUniform{}},
		{Struct: "VertexInput", Type: &model.GPUVertex{}},
	}
	if cfg.MaterialSelection == shading.MaterialSelectionTagged {
		exps = append(exps, Expectation{Struct: "DrawUniform", Type: &model.GPUDrawUniform{}})
	}
	return exps
}

// ValidateLayout checks that every expected struct is declared in source with the
// size and member offsets of its Go type. Buffer structs follow WGSL host-shareable
// layout rules. Vertex input structs are compared as a packed vertex buffer: the stride
// against Size and the attribute offsets against Offsets.
//
// Parameters:
//   - source: WGSL source
//   - expectations: the structs to check
//
// Returns:
//   - error: nil, or every mismatch joined, each wrapping ErrLayoutMismatch
func ValidateLayout(source string, expectations []Expectation) error {
	structs := parseStructBlocks(stripComments(source))
	known := computeStructSizes(structs)

	var errs []error
	for _, exp := range expectations {
		idx := slices.IndexFunc(structs, func(ps parsedStruct) bool { return ps.name == exp.Struct })
		if idx < 0 {
			errs = append(errs, fmt.Errorf("%w: struct %s not declared", ErrLayoutMismatch, exp.Struct))
			continue
		}
		ps := structs[idx]

		var size uint64
		var offsets []uint64
		if isVertexInputStruct(ps) {
			layout, ok := buildVertexBufferLayout(ps)
			if !ok {
				errs = append(errs, fmt.Errorf("%w: struct %s has a non-vertex attribute type", ErrLayoutMismatch, exp.Struct))
				continue
			}
			size = layout.ArrayStride
			for _, attr := range layout.Attributes {
				offsets = append(offsets, attr.Offset)
			}
		} else {
			layout, fieldOffsets, ok := computeStructLayout(ps, known)
			if !ok {
				errs = append(errs, fmt.Errorf("%w: struct %s has an unresolved member type", ErrLayoutMismatch, exp.Struct))
				continue
			}
			size, offsets = layout.size, fieldOffsets
		}

		if want := uint64(exp.Type.Size()); size != want {
			errs = append(errs, fmt.Errorf("%w: struct %s is %d bytes in WGSL and %d in Go", ErrLayoutMismatch, exp.Struct, size, want))
		}
		wantOffsets := exp.Type.Offsets()
		if len(offsets) != len(wantOffsets) {
			errs = append(errs, fmt.Errorf("%w: struct %s has %d members in WGSL and %d in Go", ErrLayoutMismatch, exp.Struct, len(offsets), len(wantOffsets)))
			continue
		}
		for i, off := range offsets {
			if off != uint64(wantOffsets[i]) {
				errs = append(errs, fmt.Errorf("%w: struct %s member %s at offset %d in WGSL and %d in Go",
					ErrLayoutMismatch, exp.Struct, ps.fields[i].name, off, wantOffsets[i]))
			}
		}
	}
	return errors.Join(errs...)
}
