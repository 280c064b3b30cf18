package ui

import (
	"image"
	"image/color"

	"DigitPad/internal/pad"
	"DigitPad/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

var overlayColor = color.NRGBA{R: 0x9a, G: 0xa0, B: 0xb4, A: 0xff}

// PadWidget shows the raster and forwards pointer and touch input to the
// controller along with the size the pad is currently displayed at.
type PadWidget struct {
	widget.BaseWidget
	ctrl    *pad.Controller
	buffer  *image.RGBA
	image   *canvas.Image
	overlay *canvas.Text

	pressed  bool // primary mouse button is down
	touching bool // first finger is down
}

var _ fyne.Widget = (*PadWidget)(nil)
var _ fyne.Draggable = (*PadWidget)(nil)
var _ desktop.Mouseable = (*PadWidget)(nil)
var _ desktop.Hoverable = (*PadWidget)(nil)
var _ desktop.Cursorable = (*PadWidget)(nil)
var _ mobile.Touchable = (*PadWidget)(nil)

func NewPadWidget(ctrl *pad.Controller) *PadWidget {
	size := ctrl.BufferSize()
	p := &PadWidget{
		ctrl:   ctrl,
		buffer: image.NewRGBA(image.Rect(0, 0, int(size.W), int(size.H))),
	}
	ctrl.CopyImage(p.buffer)

	p.image = canvas.NewImageFromImage(p.buffer)
	p.image.FillMode = canvas.ImageFillStretch
	p.image.ScaleMode = canvas.ImageScaleSmooth
	p.image.SetMinSize(fyne.NewSize(float32(size.W), float32(size.H)))

	p.overlay = canvas.NewText(pad.OverlayText, overlayColor)
	p.overlay.Alignment = fyne.TextAlignCenter
	p.overlay.TextSize = 18

	p.ExtendBaseWidget(p)
	return p
}

// RefreshImage copies the controller's raster onto the screen.
func (p *PadWidget) RefreshImage() {
	p.ctrl.CopyImage(p.buffer)
	p.image.Refresh()
}

// SetOverlayVisible shows or hides the idle hint.
func (p *PadWidget) SetOverlayVisible(visible bool) {
	if visible == p.overlay.Visible() {
		return
	}
	if visible {
		p.overlay.Show()
	} else {
		p.overlay.Hide()
	}
}

func (p *PadWidget) displaySize() state.Size {
	s := p.Size()
	return state.Size{W: float64(s.Width), H: float64(s.Height)}
}

func toPoint(pos fyne.Position) state.Point {
	return state.Point{X: float64(pos.X), Y: float64(pos.Y)}
}

func (p *PadWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	p.pressed = true
	p.ctrl.PointerDown(toPoint(e.Position), p.displaySize())
}

func (p *PadWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	p.pressed = false
	p.ctrl.PointerUp()
}

func (p *PadWidget) MouseIn(*desktop.MouseEvent) {}

func (p *PadWidget) MouseMoved(e *desktop.MouseEvent) {
	if p.pressed {
		p.ctrl.PointerMove(toPoint(e.Position), p.displaySize())
	}
}

func (p *PadWidget) MouseOut() {
	p.pressed = false
	p.ctrl.PointerLeave()
}

// Dragged carries movement for both a held mouse button and a finger.
// Handling it here also keeps an enclosing scroller from panning.
func (p *PadWidget) Dragged(e *fyne.DragEvent) {
	if p.touching {
		p.ctrl.TouchMove(toPoint(e.Position), p.displaySize())
		return
	}
	p.ctrl.PointerMove(toPoint(e.Position), p.displaySize())
}

func (p *PadWidget) DragEnd() {
	if p.touching {
		p.touching = false
		p.ctrl.TouchEnd()
		return
	}
	p.pressed = false
	p.ctrl.PointerUp()
}

// TouchDown only tracks the first finger; later fingers are ignored
// until it lifts.
func (p *PadWidget) TouchDown(e *mobile.TouchEvent) {
	if p.touching {
		return
	}
	p.touching = true
	p.ctrl.TouchStart(toPoint(e.Position), p.displaySize())
}

func (p *PadWidget) TouchUp(*mobile.TouchEvent) {
	if !p.touching {
		return
	}
	p.touching = false
	p.ctrl.TouchEnd()
}

func (p *PadWidget) TouchCancel(e *mobile.TouchEvent) { p.TouchUp(e) }

func (p *PadWidget) Cursor() desktop.Cursor { return desktop.CrosshairCursor }

func (p *PadWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(p.image, container.NewCenter(p.overlay)))
}
