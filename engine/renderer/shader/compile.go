package shader

import (
	"fmt"

	"github.com/gogpu/naga"
)

// Compile translates WGSL to SPIR-V with naga. It is the offline validity check for
// generated sources; the webgpu backend still consumes the WGSL text.
//
// Parameters:
//   - source: WGSL source
//
// Returns:
//   - []uint32: the SPIR-V words, little-endian
//   - error: the naga diagnostic, if the source is invalid
func Compile(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("shader: failed to compile: %w", err)
	}

	spirv := make([]uint32, len(spirvBytes)/4)
	for i := range spirv {
		spirv[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirv, nil
}
