package ui

import (
	"image/color"
	"time"

	"DigitPad/internal/pad"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	barDelay    = 100 * time.Millisecond
	barDuration = 800 * time.Millisecond
)

var digitColor = color.NRGBA{R: 0x66, G: 0x7e, B: 0xea, A: 0xff}

// ResultsPanel shows the empty, loading, success and failure states.
type ResultsPanel struct {
	icon    *widget.Icon
	title   *widget.Label
	message *widget.Label
	busy    *widget.ProgressBarInfinite
	busyMsg *widget.Label

	digit      *canvas.Text
	caption    *widget.Label
	confLabel  *widget.Label
	bar        *widget.ProgressBar
	confidence *widget.Label

	idle    *fyne.Container
	loading *fyne.Container
	success *fyne.Container
	root    *fyne.Container

	last    pad.ResultsView
	applied bool
	anim    *fyne.Animation
	delay   *time.Timer
	gen     int
}

func NewResultsPanel() *ResultsPanel {
	r := &ResultsPanel{
		icon:       widget.NewIcon(theme.QuestionIcon()),
		title:      widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		message:    widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{}),
		busy:       widget.NewProgressBarInfinite(),
		busyMsg:    widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
		digit:      canvas.NewText("", digitColor),
		caption:    widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{}),
		confLabel:  widget.NewLabelWithStyle("Confidence Score", fyne.TextAlignCenter, fyne.TextStyle{}),
		bar:        widget.NewProgressBar(),
		confidence: widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
	}
	r.message.Wrapping = fyne.TextWrapWord
	r.digit.TextSize = 96
	r.digit.TextStyle = fyne.TextStyle{Bold: true}
	r.digit.Alignment = fyne.TextAlignCenter
	r.bar.Min, r.bar.Max = 0, 100
	r.bar.TextFormatter = func() string { return "" }

	r.idle = container.NewVBox(r.icon, r.title, r.message)
	r.loading = container.NewVBox(r.busy, r.busyMsg)
	r.success = container.NewVBox(r.digit, r.caption, r.confLabel, r.bar, r.confidence)
	r.root = container.NewStack(r.idle, r.loading, r.success)
	return r
}

func (r *ResultsPanel) Object() fyne.CanvasObject {
	return container.NewPadded(r.root)
}

// Apply switches the panel to v. Re-applying the same view is a no-op, so
// the confidence bar only animates once per prediction.
func (r *ResultsPanel) Apply(v pad.ResultsView) {
	if r.applied && v == r.last {
		return
	}
	r.applied = true
	r.last = v
	r.stopBar()

	r.title.SetText(v.Title)
	r.message.SetText(v.Message)
	r.busyMsg.SetText(v.Message)

	switch v.Phase {
	case pad.ResultLoading:
		r.show(r.loading)
		r.busy.Start()
	case pad.ResultSuccess:
		r.busy.Stop()
		r.digit.Text = v.Digit
		r.digit.Refresh()
		r.caption.SetText(v.Title)
		r.confidence.SetText(v.ConfidenceText)
		r.bar.SetValue(0)
		r.show(r.success)
		r.animateBar(v.BarPercent)
	case pad.ResultFailed:
		r.busy.Stop()
		r.icon.SetResource(theme.ErrorIcon())
		r.show(r.idle)
	default:
		r.busy.Stop()
		r.icon.SetResource(theme.QuestionIcon())
		r.show(r.idle)
	}
}

func (r *ResultsPanel) show(active *fyne.Container) {
	for _, c := range []*fyne.Container{r.idle, r.loading, r.success} {
		if c == active {
			c.Show()
		} else {
			c.Hide()
		}
	}
}

// animateBar grows the bar from 0 to target after a short pause so the
// motion is visible.
func (r *ResultsPanel) animateBar(target float64) {
	gen := r.gen
	r.delay = time.AfterFunc(barDelay, func() {
		fyne.Do(func() {
			if gen != r.gen {
				return
			}
			r.anim = fyne.NewAnimation(barDuration, func(f float32) {
				r.bar.SetValue(float64(f) * target)
			})
			r.anim.Curve = fyne.AnimationEaseOut
			r.anim.Start()
		})
	})
}

func (r *ResultsPanel) stopBar() {
	r.gen++
	if r.delay != nil {
		r.delay.Stop()
		r.delay = nil
	}
	if r.anim != nil {
		r.anim.Stop()
		r.anim = nil
	}
}
