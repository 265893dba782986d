package raster

import (
	"image"
	"image/color"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/chewxy/math32"
)

// ClearColor is the background the demo scene clears to.
var ClearColor = common.Vec4{0.1, 0.2, 0.3, 1}

// ColorBuffer is a float RGBA render target with an attached depth plane. Row 0 is the
// top of the image.
type ColorBuffer struct {
	Width, Height int
	Color         []common.Vec4
	Depth         []float32
}

// NewColorBuffer allocates a width x height target cleared to ClearColor and depth 1.
//
// Parameters:
//   - width: pixels per row, at least 1
//   - height: rows, at least 1
//
// Returns:
//   - *ColorBuffer: the cleared target
func NewColorBuffer(width, height int) *ColorBuffer {
	if width < 1 || height < 1 {
		panic("raster: color buffer dimensions must be positive")
	}
	b := &ColorBuffer{
		Width:  width,
		Height: height,
		Color:  make([]common.Vec4, width*height),
		Depth:  make([]float32, width*height),
	}
	b.Clear(ClearColor)
	return b
}

// Clear fills the color plane with c and resets depth to 1.
func (b *ColorBuffer) Clear(c common.Vec4) {
	if len(b.Color) == 0 {
		return
	}
	// copy-doubling fill
	b.Color[0] = c
	for i := 1; i < len(b.Color); i *= 2 {
		copy(b.Color[i:], b.Color[:i])
	}
	b.Depth[0] = 1
	for i := 1; i < len(b.Depth); i *= 2 {
		copy(b.Depth[i:], b.Depth[:i])
	}
}

// At returns the color at pixel (x, y).
func (b *ColorBuffer) At(x, y int) common.Vec4 {
	return b.Color[y*b.Width+x]
}

// DepthAt returns the depth at pixel (x, y).
func (b *ColorBuffer) DepthAt(x, y int) float32 {
	return b.Depth[y*b.Width+x]
}

// RGBA converts the color plane to 8-bit sRGB-agnostic RGBA, clamping each channel to
// [0, 1]. NaN channels become 0.
//
// Returns:
//   - *image.RGBA: a new image of the same size
func (b *ColorBuffer) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			c := b.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: toByte(c[0]), G: toByte(c[1]), B: toByte(c[2]), A: toByte(c[3])})
		}
	}
	return img
}

func toByte(v float32) uint8 {
	if math32.IsNaN(v) {
		return 0
	}
	return uint8(common.Clamp(v, 0, 1)*255 + 0.5)
}
