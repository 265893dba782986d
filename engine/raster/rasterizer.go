package raster

import (
	"context"
	"fmt"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
	"github.com/Carmen-Shannon/oxy-forward/engine/shading"
	"github.com/chewxy/math32"
)

// CullMode selects which triangle faces are discarded before rasterization.
type CullMode int

const (
	// CullNone draws both faces.
	CullNone CullMode = iota
	// CullBack discards triangles wound clockwise in normalized device coordinates.
	CullBack
)

// Stats counts what one draw did.
type Stats struct {
	Triangles int // submitted
	Rejected  int // a vertex had w <= 0
	Culled    int // back-facing or zero area
	Fragments int // shaded after the early depth test
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Triangles += o.Triangles
	s.Rejected += o.Rejected
	s.Culled += o.Culled
	s.Fragments += o.Fragments
}

// Rasterizer is the fixed-function stage between VertexStage and FragmentStage. It
// maps clip space to the viewport, tests coverage at pixel centers, interpolates the
// interpolants perspective-correctly and resolves visibility with a Less depth test.
// Triangles with any vertex at w <= 0 are rejected rather than clipped.
type Rasterizer interface {
	// Draw runs one indexed triangle list through both stages into target.
	//
	// Parameters:
	//   - ctx: cancels between dispatch batches
	//   - cfg: the stage configuration
	//   - u: the uniforms bound for the draw
	//   - vertices: object-space vertices
	//   - indices: three per triangle; a trailing partial triangle is ignored
	//   - target: the color and depth target
	//
	// Returns:
	//   - Stats: counters for the draw
	//   - error: ctx.Err() if cancelled, or an out-of-range index. target is untouched on error
	Draw(ctx context.Context, cfg *shading.Config, u *shading.Uniforms, vertices []model.GPUVertex, indices []uint32, target *ColorBuffer) (Stats, error)

	// Dispatcher returns the dispatcher that evaluates the stages.
	Dispatcher() shading.Dispatcher

	// Close stops the default dispatcher. A dispatcher passed in with WithDispatcher
	// belongs to the caller and is left running.
	Close()
}

type rasterizer struct {
	dispatcher     shading.Dispatcher
	ownsDispatcher bool
	cullMode       CullMode
}

var _ Rasterizer = &rasterizer{}

// NewRasterizer creates a Rasterizer. Without WithDispatcher a default dispatcher is created.
//
// Parameters:
//   - options: functional options to configure the rasterizer
//
// Returns:
//   - Rasterizer: the newly created rasterizer
func NewRasterizer(options ...RasterizerOption) Rasterizer {
	r := &rasterizer{cullMode: CullNone}
	for _, option := range options {
		option(r)
	}
	if r.dispatcher == nil {
		r.dispatcher = shading.NewDispatcher()
		r.ownsDispatcher = true
	}
	return r
}

func (r *rasterizer) Close() {
	if r.ownsDispatcher {
		r.dispatcher.Close()
	}
}

func (r *rasterizer) Dispatcher() shading.Dispatcher {
	return r.dispatcher
}

// fragment is one covered pixel that passed the early depth test.
type fragment struct {
	pixel int
	depth float32
}

// screenVertex is a vertex after the perspective divide and viewport transform.
type screenVertex struct {
	x, y, z float32
	invW    float32
}

func (r *rasterizer) Draw(ctx context.Context, cfg *shading.Config, u *shading.Uniforms, vertices []model.GPUVertex, indices []uint32, target *ColorBuffer) (Stats, error) {
	var stats Stats
	for _, idx := range indices {
		if int(idx) >= len(vertices) {
			return stats, fmt.Errorf("raster: index %d out of range for %d vertices", idx, len(vertices))
		}
	}

	outs := make([]shading.Interpolants, len(vertices))
	if err := r.dispatcher.Vertices(ctx, cfg, u, vertices, outs); err != nil {
		return stats, err
	}

	screen := make([]screenVertex, len(outs))
	w, h := float32(target.Width), float32(target.Height)
	for i, o := range outs {
		c := o.ClipPosition
		invW := 1 / c[3]
		screen[i] = screenVertex{
			x:    (c[0]*invW + 1) * 0.5 * w,
			y:    (1 - c[1]*invW) * 0.5 * h,
			z:    c[2] * invW,
			invW: invW,
		}
	}

	// Early depth: a fragment is kept only if it is nearer than everything before it.
	// Writing the kept fragments in order then leaves the nearest one in every pixel,
	// the same result as testing after shading. Depth is tested against pending and only
	// committed to target once every fragment has shaded.
	pending := make(map[int]float32)
	var frags []fragment
	var inputs []shading.Interpolants
	for t := 0; t+2 < len(indices); t += 3 {
		stats.Triangles++
		i0, i1, i2 := indices[t], indices[t+1], indices[t+2]
		c0, c1, c2 := outs[i0].ClipPosition[3], outs[i1].ClipPosition[3], outs[i2].ClipPosition[3]
		if !(c0 > 0 && c1 > 0 && c2 > 0) {
			stats.Rejected++
			continue
		}

		s0, s1, s2 := screen[i0], screen[i1], screen[i2]
		area := edge(s0, s1, s2.x, s2.y)
		// y is flipped, so a counter-clockwise triangle in NDC has negative screen area
		if area == 0 || (r.cullMode == CullBack && area > 0) {
			stats.Culled++
			continue
		}

		minX := max(int(math32.Floor(min(s0.x, s1.x, s2.x))), 0)
		maxX := min(int(math32.Ceil(max(s0.x, s1.x, s2.x))), target.Width-1)
		minY := max(int(math32.Floor(min(s0.y, s1.y, s2.y))), 0)
		maxY := min(int(math32.Ceil(max(s0.y, s1.y, s2.y))), target.Height-1)

		invArea := 1 / area
		for py := minY; py <= maxY; py++ {
			cy := float32(py) + 0.5
			for px := minX; px <= maxX; px++ {
				cx := float32(px) + 0.5
				b0 := edge(s1, s2, cx, cy) * invArea
				b1 := edge(s2, s0, cx, cy) * invArea
				b2 := edge(s0, s1, cx, cy) * invArea
				if b0 < 0 || b1 < 0 || b2 < 0 {
					continue
				}

				z := b0*s0.z + b1*s1.z + b2*s2.z
				if z < 0 || z > 1 {
					continue
				}
				pixel := py*target.Width + px
				nearest, ok := pending[pixel]
				if !ok {
					nearest = target.Depth[pixel]
				}
				if !(z < nearest) {
					continue
				}
				pending[pixel] = z

				in := interpolate(&outs[i0], &outs[i1], &outs[i2], b0*s0.invW, b1*s1.invW, b2*s2.invW)
				in.ClipPosition = common.Vec4{cx, cy, z, b0*s0.invW + b1*s1.invW + b2*s2.invW}
				frags = append(frags, fragment{pixel: pixel, depth: z})
				inputs = append(inputs, in)
			}
		}
	}

	colors := make([]common.Vec4, len(inputs))
	if err := r.dispatcher.Fragments(ctx, cfg, u, inputs, colors); err != nil {
		return stats, err
	}
	for i, f := range frags {
		target.Depth[f.pixel] = f.depth
		target.Color[f.pixel] = colors[i]
	}
	stats.Fragments = len(frags)

	common.Logger().Debug("raster draw",
		"triangles", stats.Triangles,
		"rejected", stats.Rejected,
		"culled", stats.Culled,
		"fragments", stats.Fragments)
	return stats, nil
}

// edge is twice the signed area of (a, b, p).
func edge(a, b screenVertex, px, py float32) float32 {
	return float32((b.x-a.x)*(py-a.y)) - float32((b.y-a.y)*(px-a.x))
}

// interpolate blends the interpolants of three vertices with perspective weights
// pw_i = b_i / w_i, normalized by their sum.
func interpolate(v0, v1, v2 *shading.Interpolants, p0, p1, p2 float32) shading.Interpolants {
	inv := 1 / (p0 + p1 + p2)
	p0, p1, p2 = p0*inv, p1*inv, p2*inv
	return shading.Interpolants{
		Color:              v0.Color.Scale(p0).Add(v1.Color.Scale(p1)).Add(v2.Color.Scale(p2)),
		Normal:             v0.Normal.Scale(p0).Add(v1.Normal.Scale(p1)).Add(v2.Normal.Scale(p2)),
		WorldPosition:      v0.WorldPosition.Scale(p0).Add(v1.WorldPosition.Scale(p1)).Add(v2.WorldPosition.Scale(p2)),
		LightSpacePosition: v0.LightSpacePosition.Scale(p0).Add(v1.LightSpacePosition.Scale(p1)).Add(v2.LightSpacePosition.Scale(p2)),
	}
}
