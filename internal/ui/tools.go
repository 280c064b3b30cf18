package ui

import (
	"context"
	"math"

	"DigitPad/internal/pad"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Toolbar holds the pad's controls: clear, predict, export and brush size.
type Toolbar struct {
	Clear      *widget.Button
	Predict    *widget.Button
	Export     *widget.Button
	Brush      *widget.Slider
	BrushValue *widget.Label
}

func NewToolbar(ctx context.Context, ctrl *pad.Controller, onExport func()) *Toolbar {
	lo, hi := ctrl.BrushRange()
	size := ctrl.State().BrushSize

	t := &Toolbar{
		Clear:      widget.NewButtonWithIcon("Clear", theme.DeleteIcon(), ctrl.Clear),
		Predict:    widget.NewButtonWithIcon("Predict Digit", theme.ConfirmIcon(), func() { ctrl.Predict(ctx) }),
		Export:     widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), onExport),
		Brush:      widget.NewSlider(float64(lo), float64(hi)),
		BrushValue: widget.NewLabel(pad.BrushLabel(size)),
	}
	t.Predict.Importance = widget.HighImportance
	t.Brush.Step = 1
	t.Brush.SetValue(float64(size))
	t.Brush.OnChanged = func(v float64) {
		ctrl.SetBrushSize(int(math.Round(v)))
	}
	return t
}

// Apply syncs the brush controls with the view.
func (t *Toolbar) Apply(v pad.View) {
	if t.BrushValue.Text != v.BrushLabel {
		t.BrushValue.SetText(v.BrushLabel)
	}
	if int(math.Round(t.Brush.Value)) != v.BrushSize {
		t.Brush.SetValue(float64(v.BrushSize))
	}
}

func (t *Toolbar) Object() fyne.CanvasObject {
	slider := container.New(layout.NewGridWrapLayout(fyne.NewSize(160, 35)), t.Brush)
	return container.NewVBox(
		container.NewHBox(
			widget.NewLabel("Brush Size:"),
			slider,
			t.BrushValue,
			layout.NewSpacer(),
		),
		container.NewGridWithColumns(3, t.Clear, t.Predict, t.Export),
	)
}
