// Package config loads the YAML description of a scene render: stage features, camera,
// light, objects and output size.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/camera"
	"github.com/Carmen-Shannon/oxy-forward/engine/game_object"
	"github.com/Carmen-Shannon/oxy-forward/engine/light"
	"github.com/Carmen-Shannon/oxy-forward/engine/loader"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
	"github.com/Carmen-Shannon/oxy-forward/engine/scene"
	"github.com/Carmen-Shannon/oxy-forward/engine/shading"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid")

// Mesh names accepted in object entries.
const (
	MeshPyramid  = "pyramid"
	MeshGround   = "ground"
	MeshTriangle = "triangle"
	MeshQuad     = "quad"
	MeshGLTF     = "gltf" // loaded from Object.Path
)

// Config describes one scene and how to render it. Keys left out of a file keep the
// values of Default; when a preset is named, the shading block starts from that preset.
type Config struct {
	Version int            `yaml:"version"`
	Preset  shading.Preset `yaml:"preset,omitempty"`
	Shading shading.Config `yaml:"shading"`
	Output  Output         `yaml:"output"`
	Camera  Camera         `yaml:"camera"`
	Light   Light          `yaml:"light"`
	Scene   Scene          `yaml:"scene"`
}

// Output sizes the render target and the frame sequence.
type Output struct {
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Frames  int     `yaml:"frames"`
	FPS     float32 `yaml:"fps"` // scene time step between frames is 1/FPS
	Workers int     `yaml:"workers,omitempty"`
}

type Camera struct {
	Position common.Vec3 `yaml:"position"`
	Yaw      float32     `yaml:"yaw"`
	Pitch    float32     `yaml:"pitch"`
	Fovy     float32     `yaml:"fovy"`
	Near     float32     `yaml:"near"`
	Far      float32     `yaml:"far"`
}

type Light struct {
	Position common.Vec3 `yaml:"position"`
	Color    common.Vec3 `yaml:"color"`
	Ambient  float32     `yaml:"ambient"`
	Diffuse  float32     `yaml:"diffuse"`
	Specular float32     `yaml:"specular"`
}

// Scene lists the objects to draw. With no objects the demo pyramid and ground are used.
type Scene struct {
	Spin    float32  `yaml:"spin"` // demo pyramid Y rotation speed, radians per second
	Culling bool     `yaml:"culling"`
	Objects []Object `yaml:"objects,omitempty"`
}

// Object places one built-in mesh or one glTF file.
type Object struct {
	Mesh          string          `yaml:"mesh"`
	Path          string          `yaml:"path,omitempty"` // gltf only, relative to the config file
	Position      common.Vec3     `yaml:"position"`
	Rotation      common.Vec3     `yaml:"rotation"`
	RotationSpeed common.Vec3     `yaml:"rotation_speed"`
	Scale         *common.Vec3    `yaml:"scale,omitempty"`
	Color         common.Vec3     `yaml:"color"`              // triangle and quad only
	Material      *model.Material `yaml:"material,omitempty"` // overrides the mesh's own tag
	Size          float32         `yaml:"size,omitempty"`     // quad half-size
}

// Default returns the demo scene at 800x600 with the original camera and light.
func Default() Config {
	return Config{
		Version: 1,
		Shading: shading.DefaultConfig(),
		Output: Output{
			Width:  800,
			Height: 600,
			Frames: 1,
			FPS:    30,
		},
		Camera: Camera{
			Position: common.V3(0, 1, 2),
			Yaw:      -90,
			Fovy:     45,
			Near:     0.1,
			Far:      100,
		},
		Light: Light{
			Position: common.V3(5, 5, 5),
			Color:    common.V3(1, 1, 1),
			Ambient:  0.3,
			Diffuse:  1.2,
			Specular: 0.8,
		},
		Scene: Scene{
			Spin:    1,
			Culling: true,
		},
	}
}

func (c *Config) normalize() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Output.Frames == 0 {
		c.Output.Frames = 1
	}
	if c.Output.FPS == 0 {
		c.Output.FPS = 30
	}
	for i := range c.Scene.Objects {
		o := &c.Scene.Objects[i]
		if o.Mesh == MeshQuad {
			o.Size = common.Coalesce(o.Size, 0.5)
		}
	}
}

// Validate reports every invalid field.
//
// Returns:
//   - error: nil, or the problems joined, each wrapping ErrInvalid
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Version != 1 {
		bad("unsupported version %d", c.Version)
	}
	if err := c.Shading.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: shading: %w", ErrInvalid, err))
	}
	if c.Output.Width < 1 || c.Output.Height < 1 {
		bad("output size %dx%d", c.Output.Width, c.Output.Height)
	}
	if c.Output.Frames < 1 {
		bad("frames %d", c.Output.Frames)
	}
	if c.Output.FPS <= 0 {
		bad("fps %v", c.Output.FPS)
	}
	if c.Output.Workers < 0 {
		bad("workers %d", c.Output.Workers)
	}
	if c.Camera.Fovy <= 0 || c.Camera.Fovy >= 180 {
		bad("camera fovy %v", c.Camera.Fovy)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		bad("camera clip planes near %v far %v", c.Camera.Near, c.Camera.Far)
	}
	for i, o := range c.Scene.Objects {
		switch o.Mesh {
		case MeshPyramid, MeshGround, MeshTriangle, MeshQuad:
		case MeshGLTF:
			if o.Path == "" {
				bad("object %d: gltf mesh without path", i)
			}
		default:
			bad("object %d: unknown mesh %q", i, o.Mesh)
		}
		if o.Mesh == MeshQuad && o.Size <= 0 {
			bad("object %d: quad size %v", i, o.Size)
		}
	}
	return errors.Join(errs...)
}

// Parse decodes YAML on top of Default, or on top of the named preset's shading block.
//
// Parameters:
//   - data: YAML document
//
// Returns:
//   - Config: the normalized configuration
//   - error: a decode error, or the Validate error
func Parse(data []byte) (Config, error) {
	var head struct {
		Preset shading.Preset `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}

	c := Default()
	if head.Preset != "" {
		base, err := shading.PresetConfig(head.Preset)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		c.Shading = base
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads and parses a YAML file. Relative object paths are resolved against the
// file's directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	dir := filepath.Dir(path)
	for i := range c.Scene.Objects {
		if o := &c.Scene.Objects[i]; o.Path != "" && !filepath.IsAbs(o.Path) {
			o.Path = filepath.Join(dir, o.Path)
		}
	}
	return c, nil
}

// Encode writes c as YAML with two-space indentation.
func (c Config) Encode(w io.Writer) error {
	c.normalize()
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&c); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return enc.Close()
}

// NewCamera builds the camera for a width x height target.
func (c Config) NewCamera(width, height int) camera.Camera {
	return camera.NewCamera(
		camera.WithPosition(c.Camera.Position),
		camera.WithOrientation(c.Camera.Yaw, c.Camera.Pitch),
		camera.WithFovy(c.Camera.Fovy),
		camera.WithClipPlanes(c.Camera.Near, c.Camera.Far),
		camera.WithSize(width, height),
	)
}

// NewLight builds the point light.
func (c Config) NewLight() light.Light {
	l := c.Light
	return light.NewLight(
		light.WithPosition(l.Position[0], l.Position[1], l.Position[2]),
		light.WithColor(l.Color[0], l.Color[1], l.Color[2]),
		light.WithCoefficients(l.Ambient, l.Diffuse, l.Specular),
	)
}

// NewObjects builds the configured objects, or the demo objects when none are listed.
// glTF files are imported through one loader, so a path listed twice is read once.
//
// Returns:
//   - []game_object.GameObject: the objects in file order
//   - error: the first mesh import error
func (c Config) NewObjects() ([]game_object.GameObject, error) {
	if len(c.Scene.Objects) == 0 {
		return scene.DemoObjects(c.Scene.Spin), nil
	}

	meshes := loader.NewLoader()
	objs := make([]game_object.GameObject, 0, len(c.Scene.Objects))
	for i, o := range c.Scene.Objects {
		material := model.MaterialObject
		if o.Material != nil {
			material = *o.Material
		}

		var mdl model.Model
		switch o.Mesh {
		case MeshPyramid:
			mdl = model.Pyramid()
		case MeshGround:
			mdl = model.GroundPlane()
		case MeshTriangle:
			mdl = model.Triangle(o.Color, material)
		case MeshQuad:
			mdl = model.Quad(o.Size, o.Color, material)
		case MeshGLTF:
			var err error
			if mdl, err = meshes.Load(o.Path); err != nil {
				return nil, fmt.Errorf("config: object %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("%w: object %d: unknown mesh %q", ErrInvalid, i, o.Mesh)
		}
		if o.Material != nil && mdl.Material() != material {
			mdl = model.NewModel(
				model.WithName(mdl.Name()),
				model.WithVertices(mdl.Vertices()...),
				model.WithIndices(mdl.Indices()...),
				model.WithMaterial(material),
			)
		}

		opts := []game_object.GameObjectBuilderOption{
			game_object.WithModel(mdl),
			game_object.WithPosition(o.Position[0], o.Position[1], o.Position[2]),
			game_object.WithRotation(o.Rotation[0], o.Rotation[1], o.Rotation[2]),
			game_object.WithRotationSpeed(o.RotationSpeed[0], o.RotationSpeed[1], o.RotationSpeed[2]),
		}
		if o.Scale != nil {
			opts = append(opts, game_object.WithScale(o.Scale[0], o.Scale[1], o.Scale[2]))
		}
		objs = append(objs, game_object.NewGameObject(opts...))
	}
	return objs, nil
}

// NewScene builds the scene for a width x height target.
//
// Parameters:
//   - name: the scene name
//   - width, height: target size, used for the camera aspect ratio
//   - options: extra scene options, applied after the configured ones
//
// Returns:
//   - scene.Scene: the scene with every configured object registered
//   - error: the NewObjects error
func (c Config) NewScene(name string, width, height int, options ...scene.SceneBuilderOption) (scene.Scene, error) {
	objs, err := c.NewObjects()
	if err != nil {
		return nil, err
	}
	opts := []scene.SceneBuilderOption{
		scene.WithObjects(objs...),
		scene.WithCullingDisabled(!c.Scene.Culling),
	}
	if c.Output.Workers > 0 {
		opts = append(opts, scene.WithWorkers(c.Output.Workers))
	}
	return scene.NewScene(name, c.NewCamera(width, height), c.NewLight(), c.Shading, append(opts, options...)...), nil
}
