package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"DigitPad/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{A: 255})
		}
	}
	return img
}

func TestEncodePNGNativeSize(t *testing.T) {
	data, err := EncodePNG(testImage(280, 280), 0)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 280, 280), img.Bounds())
}

func TestEncodePNGResampled(t *testing.T) {
	data, err := EncodePNG(testImage(280, 280), 28)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 28, 28), img.Bounds())
}

func TestResizeKeepsSolidColor(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	dst := Resize(src, 10, 10)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, dst.RGBAAt(5, 5))
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	err := WritePDF(&buf, Drawing{
		Size:       state.Size{W: 280, H: 280},
		Background: color.Black,
		Ink:        color.White,
		Strokes: []state.Stroke{
			{ID: "a", Points: []state.Point{{X: 10, Y: 10}, {X: 100, Y: 100}, {X: 200, Y: 50}}, Width: 15},
			{ID: "b", Points: []state.Point{{X: 140, Y: 140}}, Width: 15},
		},
		Label: "Predicted 7 (93.3%)",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWritePDFRejectsEmptySize(t *testing.T) {
	err := WritePDF(&bytes.Buffer{}, Drawing{})
	assert.Error(t, err)
}
