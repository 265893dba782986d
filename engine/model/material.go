package model

import "fmt"

// Material tags a drawable with the surface model the fragment stage applies to it.
type Material uint32

const (
	// MaterialObject shades with the interpolated vertex color.
	MaterialObject Material = iota
	// MaterialGround replaces the vertex color with a procedural grid and dims the highlight.
	MaterialGround
)

var materialNames = map[Material]string{
	MaterialObject: "object",
	MaterialGround: "ground",
}

func (m Material) String() string {
	if name, ok := materialNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Material(%d)", uint32(m))
}

// ParseMaterial resolves a material by name.
//
// Parameters:
//   - name: "object" or "ground"
//
// Returns:
//   - Material: the matching tag
//   - error: if the name is unknown
func ParseMaterial(name string) (Material, error) {
	for m, n := range materialNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown material %q", name)
}

// MarshalText implements encoding.TextMarshaler so tags read naturally in config files.
func (m Material) MarshalText() ([]byte, error) {
	if _, ok := materialNames[m]; !ok {
		return nil, fmt.Errorf("unknown material %d", uint32(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Material) UnmarshalText(text []byte) error {
	v, err := ParseMaterial(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
