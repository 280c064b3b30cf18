package ui

import (
	"image/color"

	"DigitPad/internal/effects"
	"DigitPad/internal/pad"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
)

var (
	toastInfo  = color.NRGBA{R: 0x4f, G: 0xac, B: 0xfe, A: 0xff}
	toastError = color.NRGBA{R: 0xf5, G: 0x57, B: 0x6c, A: 0xff}
)

const toastWidth = 280

// ToastLayer stacks notifications in the top-right corner, newest last.
type ToastLayer struct {
	list *fyne.Container
	root *fyne.Container
	last []pad.ToastView
}

func NewToastLayer() *ToastLayer {
	t := &ToastLayer{list: container.NewVBox()}
	t.root = container.NewBorder(
		container.NewHBox(layout.NewSpacer(), t.list),
		nil, nil, nil,
	)
	return t
}

func (t *ToastLayer) Object() fyne.CanvasObject { return t.root }

// Apply rebuilds the stack when the set of toasts or their phases change.
func (t *ToastLayer) Apply(toasts []pad.ToastView) {
	if sameToasts(t.last, toasts) {
		return
	}
	t.last = append(t.last[:0], toasts...)

	items := make([]fyne.CanvasObject, 0, len(toasts))
	for _, v := range toasts {
		items = append(items, newToastItem(v))
	}
	t.list.Objects = items
	t.list.Refresh()
}

// Len is the number of toasts currently on screen.
func (t *ToastLayer) Len() int { return len(t.list.Objects) }

func newToastItem(v pad.ToastView) fyne.CanvasObject {
	bg := toastInfo
	if v.Level == effects.LevelError {
		bg = toastError
	}
	bg.A = toastAlpha(v.Phase)

	rect := canvas.NewRectangle(bg)
	rect.CornerRadius = 8
	rect.SetMinSize(fyne.NewSize(toastWidth, 0))

	text := canvas.NewText(v.Message, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: toastAlpha(v.Phase)})
	text.TextStyle = fyne.TextStyle{Bold: true}
	return container.NewStack(rect, container.NewPadded(text))
}

// toastAlpha fades a toast in and out at the ends of its life.
func toastAlpha(p effects.Phase) uint8 {
	switch p {
	case effects.PhaseEnter, effects.PhaseExit:
		return 0x80
	default:
		return 0xff
	}
}

func sameToasts(a, b []pad.ToastView) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
