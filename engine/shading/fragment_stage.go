package shading

import (
	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
	"github.com/chewxy/math32"
)

// Terms breaks one fragment's lighting into its contributions.
type Terms struct {
	Material model.Material
	Albedo   common.Vec3
	Ambient  common.Vec3 // light.color * ambient
	Diffuse  common.Vec3 // light.color * max(N·L, floor) * diffuse
	Specular common.Vec3 // light.color * highlight * specular * material scale
	Color    common.Vec4 // albedo * (ambient + diffuse) + specular, alpha 1
}

// Shade evaluates the lighting model for one fragment and returns every term.
// A light coincident with the fragment or a zero normal yields NaN components; they are
// not guarded.
//
// Parameters:
//   - cfg: the stage configuration
//   - u: the uniforms bound for the draw
//   - in: the interpolated vertex outputs
//
// Returns:
//   - Terms: the material, albedo, each lighting term and the final color
func Shade(cfg *Config, u *Uniforms, in *Interpolants) Terms {
	normal := in.Normal.Normalize()
	lightColor := common.Vec3(u.Light.Color)
	lightDir := common.Vec3(u.Light.Position).Sub(in.WorldPosition).Normalize()

	var viewDir common.Vec3
	if cfg.ViewSource == ViewSourceCamera {
		viewDir = common.Vec3(u.Camera.ViewPosition).Sub(in.WorldPosition).Normalize()
	} else {
		viewDir = cfg.FallbackViewDir.Normalize()
	}

	mat := ResolveMaterial(cfg, &u.Draw, in.Color)
	albedo, specularScale := materials[mat](cfg, in)

	ambient := lightColor.Scale(u.Light.Ambient)
	diffuse := lightColor.Scale(max(normal.Dot(lightDir), cfg.DiffuseFloor) * u.Light.Diffuse)
	highlight := specularFactor(cfg, normal, lightDir, viewDir)
	specular := lightColor.Scale(highlight * u.Light.Specular * specularScale)

	rgb := albedo.Mul(ambient.Add(diffuse)).Add(specular)
	return Terms{
		Material: mat,
		Albedo:   albedo,
		Ambient:  ambient,
		Diffuse:  diffuse,
		Specular: specular,
		Color:    rgb.Vec4(1),
	}
}

// FragmentStage returns the opaque RGBA color of one fragment.
//
// Parameters:
//   - cfg: the stage configuration
//   - u: the uniforms bound for the draw
//   - in: the interpolated vertex outputs
//
// Returns:
//   - common.Vec4: the fragment color; alpha is always 1
func FragmentStage(cfg *Config, u *Uniforms, in *Interpolants) common.Vec4 {
	return Shade(cfg, u, in).Color
}

func specularFactor(cfg *Config, normal, lightDir, viewDir common.Vec3) float32 {
	var cos float32
	switch cfg.SpecularModel {
	case SpecularPhong:
		reflectDir := lightDir.Negate().Reflect(normal)
		cos = viewDir.Dot(reflectDir)
	default:
		halfway := lightDir.Add(viewDir).Normalize()
		cos = normal.Dot(halfway)
	}
	return math32.Pow(max(cos, 0), cfg.Shininess)
}
