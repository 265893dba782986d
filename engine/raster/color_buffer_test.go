package raster

import (
	"image/color"
	"testing"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestNewColorBuffer(t *testing.T) {
	b := NewColorBuffer(5, 3)

	assert.Len(t, b.Color, 15)
	assert.Len(t, b.Depth, 15)
	for i := range b.Color {
		assert.Equal(t, ClearColor, b.Color[i])
		assert.Equal(t, float32(1), b.Depth[i])
	}

	assert.Panics(t, func() { NewColorBuffer(0, 3) })
	assert.Panics(t, func() { NewColorBuffer(3, -1) })
}

func TestColorBuffer_Clear(t *testing.T) {
	b := NewColorBuffer(7, 7)
	b.Color[20] = common.Vec4{1, 1, 1, 1}
	b.Depth[20] = 0.25

	c := common.Vec4{0, 0.5, 0, 1}
	b.Clear(c)
	for i := range b.Color {
		assert.Equal(t, c, b.Color[i])
		assert.Equal(t, float32(1), b.Depth[i])
	}
}

func TestColorBuffer_RGBA(t *testing.T) {
	b := NewColorBuffer(2, 1)
	b.Color[0] = common.Vec4{-1, 0.5, 2, 1}
	b.Color[1] = common.Vec4{math32.NaN(), 0, 1, 1}

	img := b.RGBA()
	assert.Equal(t, color.RGBA{R: 0, G: 128, B: 255, A: 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 0, G: 0, B: 255, A: 255}, img.RGBAAt(1, 0))
}
