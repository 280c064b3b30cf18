package state

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
)

// Raster is the fixed-resolution pixel buffer the user draws onto.
// It is not safe for concurrent use; the pad controller serializes access.
type Raster struct {
	img        *image.RGBA
	dc         *gg.Context
	background color.Color
	ink        color.Color
	last       Point
	open       bool
}

func NewRaster(w, h int, background, ink color.Color) *Raster {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	r := &Raster{
		img:        img,
		dc:         gg.NewContextForRGBA(img),
		background: background,
		ink:        ink,
	}
	r.dc.SetLineCapRound()
	r.dc.SetLineJoinRound()
	r.Clear()
	return r
}

// Clear refills the whole buffer with the background color.
func (r *Raster) Clear() {
	r.dc.SetColor(r.background)
	r.dc.Clear()
	r.open = false
}

// Begin starts a new sub-path at p. A round dot the size of the brush is
// stamped so that a press without movement still leaves a mark.
func (r *Raster) Begin(p Point, width float64) {
	r.dc.SetColor(r.ink)
	r.dc.DrawCircle(p.X, p.Y, width/2)
	r.dc.Fill()
	r.last = p
	r.open = true
}

// LineTo draws a round-capped segment from the previous point to p and
// starts a fresh sub-path at p. Without an open path it behaves like Begin.
func (r *Raster) LineTo(p Point, width float64) {
	if !r.open {
		r.Begin(p, width)
		return
	}
	r.dc.SetColor(r.ink)
	r.dc.SetLineWidth(width)
	r.dc.DrawLine(r.last.X, r.last.Y, p.X, p.Y)
	r.dc.Stroke()
	r.last = p
}

// End closes the current path.
func (r *Raster) End() {
	r.dc.ClearPath()
	r.open = false
}

func (r *Raster) Bounds() image.Rectangle { return r.img.Bounds() }

func (r *Raster) Size() Size {
	b := r.img.Bounds()
	return Size{W: float64(b.Dx()), H: float64(b.Dy())}
}

func (r *Raster) Background() color.Color { return r.background }

func (r *Raster) Ink() color.Color { return r.ink }

// Image returns a copy of the buffer.
func (r *Raster) Image() *image.RGBA {
	out := image.NewRGBA(r.img.Bounds())
	draw.Draw(out, out.Bounds(), r.img, r.img.Bounds().Min, draw.Src)
	return out
}

// CopyTo writes the buffer into dst, which must have the same bounds.
func (r *Raster) CopyTo(dst *image.RGBA) {
	draw.Draw(dst, dst.Bounds(), r.img, r.img.Bounds().Min, draw.Src)
}

// IsBlank reports whether every pixel equals the background color.
func (r *Raster) IsBlank() bool {
	bg := color.RGBAModel.Convert(r.background).(color.RGBA)
	pix := r.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		if pix[i] != bg.R || pix[i+1] != bg.G || pix[i+2] != bg.B || pix[i+3] != bg.A {
			return false
		}
	}
	return true
}
