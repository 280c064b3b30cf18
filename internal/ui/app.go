package ui

import (
	"context"
	"time"

	"DigitPad/internal/config"
	"DigitPad/internal/pad"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"
)

const (
	appID     = "io.digitpad.app"
	toastTick = 100 * time.Millisecond
)

// Shell is the main window and everything layered on it.
type Shell struct {
	Window   fyne.Window
	Pad      *PadWidget
	Toolbar  *Toolbar
	Results  *ResultsPanel
	Toasts   *ToastLayer
	Particle *ParticleLayer
	Confetti *ConfettiLayer

	ctrl *pad.Controller
}

// NewShell builds the window for ctrl on a and hooks the controller's
// callbacks up to the widgets.
func NewShell(ctx context.Context, a fyne.App, ctrl *pad.Controller, cfg config.Config, logger *log.Logger) *Shell {
	s := &Shell{
		Window:   a.NewWindow("Digit Pad"),
		Pad:      NewPadWidget(ctrl),
		Results:  NewResultsPanel(),
		Toasts:   NewToastLayer(),
		Particle: NewParticleLayer(cfg.Effects.Particles),
		Confetti: NewConfettiLayer(cfg.Effects.Confetti),
		ctrl:     ctrl,
	}
	s.Toolbar = NewToolbar(ctx, ctrl, func() { showExportDialog(s.Window, ctrl, logger) })
	s.Window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))

	header := widget.NewLabelWithStyle("Draw a digit (0-9)", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	left := container.NewBorder(header, s.Toolbar.Object(), nil, nil, container.NewCenter(s.Pad))
	right := widget.NewCard("Prediction", "", s.Results.Object())
	content := container.NewPadded(container.NewGridWithColumns(2, left, right))

	s.Window.SetContent(container.NewStack(
		s.Particle.Object(),
		content,
		s.Confetti.Object(),
		s.Toasts.Object(),
	))

	ctrl.OnDraw = func() { fyne.Do(s.Pad.RefreshImage) }
	ctrl.OnRender = func(v pad.View) { fyne.Do(func() { s.Apply(v) }) }
	ctrl.OnConfetti = func() { s.Confetti.Burst(ctx) }

	s.Window.Canvas().SetOnTypedRune(func(r rune) {
		ctrl.HandleKey(ctx, pad.Key{Name: string(r)})
	})
	s.Window.Canvas().SetOnTypedKey(func(e *fyne.KeyEvent) {
		switch e.Name {
		case fyne.KeyReturn, fyne.KeyEnter:
			ctrl.HandleKey(ctx, pad.Key{Name: "Enter"})
		}
	})

	s.Apply(ctrl.View())
	return s
}

// Apply pushes v onto every widget. Call it on the UI goroutine.
func (s *Shell) Apply(v pad.View) {
	s.Pad.SetOverlayVisible(v.OverlayVisible)
	s.Toolbar.Apply(v)
	s.Results.Apply(v.Results)
	s.Toasts.Apply(v.Toasts)
}

// watchToasts re-renders while toasts age so they fade and expire
// without any other state change.
func (s *Shell) watchToasts(ctx context.Context) {
	ticker := time.NewTicker(toastTick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			toasts := s.ctrl.View().Toasts
			fyne.Do(func() { s.Toasts.Apply(toasts) })
		}
	}
}

// RunApp opens the window and blocks until it is closed.
func RunApp(ctx context.Context, ctrl *pad.Controller, cfg config.Config, logger *log.Logger) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a := app.NewWithID(appID)
	s := NewShell(ctx, a, ctrl, cfg, logger)
	a.Lifecycle().SetOnStopped(func() {
		cancel()
		s.Confetti.Stop()
	})

	go s.Particle.Run(ctx)
	go s.watchToasts(ctx)
	go func() {
		<-ctx.Done()
		fyne.Do(a.Quit)
	}()

	logger.Debug("window open", "canvas", ctrl.BufferSize())
	s.Window.ShowAndRun()
	ctrl.Wait()
}
