package export

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"DigitPad/internal/state"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageMargin = 15.0  // mm
	drawArea   = 180.0 // mm, square area the pad is fitted into
)

// Drawing is everything needed to reproduce the pad as vectors.
type Drawing struct {
	Size       state.Size
	Background color.Color
	Ink        color.Color
	Strokes    []state.Stroke
	Label      string // printed under the drawing, e.g. the prediction
}

// WritePDF renders d onto a single A4 page and writes it to w.
func WritePDF(w io.Writer, d Drawing) error {
	if d.Size.W <= 0 || d.Size.H <= 0 {
		return fmt.Errorf("export pdf: empty drawing size %vx%v", d.Size.W, d.Size.H)
	}
	scale := drawArea / max(d.Size.W, d.Size.H)

	p := gofpdf.New("P", "mm", "A4", "")
	p.SetTitle("DigitPad drawing", true)
	p.SetCreationDate(time.Now())
	p.AddPage()

	r, g, b := rgb(d.Background)
	p.SetFillColor(r, g, b)
	p.Rect(pageMargin, pageMargin, d.Size.W*scale, d.Size.H*scale, "F")

	r, g, b = rgb(d.Ink)
	p.SetDrawColor(r, g, b)
	p.SetFillColor(r, g, b)
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	for _, st := range d.Strokes {
		width := st.Width * scale
		p.SetLineWidth(width)
		if len(st.Points) == 1 {
			pt := st.Points[0]
			p.Circle(pageMargin+pt.X*scale, pageMargin+pt.Y*scale, width/2, "F")
			continue
		}
		for i := 1; i < len(st.Points); i++ {
			from, to := st.Points[i-1], st.Points[i]
			p.Line(
				pageMargin+from.X*scale, pageMargin+from.Y*scale,
				pageMargin+to.X*scale, pageMargin+to.Y*scale,
			)
		}
	}

	if d.Label != "" {
		p.SetFont("Helvetica", "", 12)
		p.SetTextColor(0, 0, 0)
		p.Text(pageMargin, pageMargin+d.Size.H*scale+10, d.Label)
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	return nil
}

func rgb(c color.Color) (int, int, int) {
	if c == nil {
		return 0, 0, 0
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return int(n.R), int(n.G), int(n.B)
}
