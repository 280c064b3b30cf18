package state

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	black = color.RGBA{A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func TestRasterStartsBlank(t *testing.T) {
	r := NewRaster(64, 48, black, white)
	assert.True(t, r.IsBlank())
	assert.Equal(t, Size{W: 64, H: 48}, r.Size())
}

func TestRasterBeginLeavesMark(t *testing.T) {
	r := NewRaster(64, 64, black, white)
	r.Begin(Point{X: 32, Y: 32}, 10)
	r.End()

	require.False(t, r.IsBlank())
	assert.Equal(t, white, r.Image().RGBAAt(32, 32))
	assert.Equal(t, black, r.Image().RGBAAt(2, 2))
}

func TestRasterLineToDrawsSegment(t *testing.T) {
	r := NewRaster(100, 100, black, white)
	r.Begin(Point{X: 10, Y: 50}, 6)
	r.LineTo(Point{X: 90, Y: 50}, 6)
	r.End()

	img := r.Image()
	for _, x := range []int{20, 50, 80} {
		assert.Equal(t, white, img.RGBAAt(x, 50), "x=%d", x)
	}
	assert.Equal(t, black, img.RGBAAt(50, 10))
	assert.Equal(t, black, img.RGBAAt(50, 90))
}

func TestRasterLineToWithoutBegin(t *testing.T) {
	r := NewRaster(40, 40, black, white)
	r.LineTo(Point{X: 20, Y: 20}, 8)
	assert.Equal(t, white, r.Image().RGBAAt(20, 20))
}

func TestRasterClearRestoresBackground(t *testing.T) {
	r := NewRaster(50, 50, black, white)
	r.Begin(Point{X: 5, Y: 5}, 4)
	r.LineTo(Point{X: 45, Y: 45}, 4)
	r.End()
	require.False(t, r.IsBlank())

	r.Clear()
	assert.True(t, r.IsBlank())
	img := r.Image()
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			if img.RGBAAt(x, y) != black {
				t.Fatalf("pixel (%d,%d) = %v after clear", x, y, img.RGBAAt(x, y))
			}
		}
	}
}

func TestRasterImageIsCopy(t *testing.T) {
	r := NewRaster(10, 10, black, white)
	img := r.Image()
	img.SetRGBA(1, 1, white)
	assert.True(t, r.IsBlank())
}
