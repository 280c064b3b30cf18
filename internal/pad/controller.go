// Package pad owns the drawing pad's state and turns input events into
// strokes, predictions and view updates. It has no dependency on the GUI
// toolkit, so the whole flow is testable without a window.
package pad

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"
	"sync"
	"time"

	"DigitPad/internal/config"
	"DigitPad/internal/effects"
	"DigitPad/internal/export"
	"DigitPad/internal/predict"
	"DigitPad/internal/state"

	"github.com/charmbracelet/log"
)

const (
	MessageNoDrawing       = "Please draw a digit first!"
	MessagePredictionError = "Error making prediction. Please try again."
	MessageExported        = "Drawing exported"
)

// Options configures a Controller.
type Options struct {
	Width, Height  int
	Background     color.Color
	Ink            color.Color
	Brush          config.Brush
	UploadSize     int     // resample uploads to this square size; 0 sends the raster as is
	CelebrateAbove float64 // confidence percentage that triggers confetti
	Logger         *log.Logger
	Now            func() time.Time
}

// OptionsFromConfig maps a validated config onto controller options.
func OptionsFromConfig(cfg config.Config, logger *log.Logger) Options {
	return Options{
		Width:          cfg.Canvas.Width,
		Height:         cfg.Canvas.Height,
		Background:     cfg.BackgroundColor(),
		Ink:            cfg.InkColor(),
		Brush:          cfg.Brush,
		UploadSize:     cfg.UploadSize,
		CelebrateAbove: cfg.CelebrateAbove,
		Logger:         logger,
	}
}

// Key is a key press as the pad sees it.
type Key struct {
	Name string // "c", "Enter", "Return", ...
	Ctrl bool
	Meta bool
}

// Controller is the single owner of the pad's mutable state. Input
// handlers run on the UI goroutine; prediction responses arrive on their
// own goroutines, so every access goes through mu.
type Controller struct {
	mu      sync.Mutex
	opts    Options
	pad     state.PadState
	raster  *state.Raster
	strokes []state.Stroke
	current *state.Stroke
	results Results

	toasts    *effects.Toasts
	predictor predict.Predictor
	seq       predict.Sequence
	inflight  sync.WaitGroup
	logger    *log.Logger

	// OnDraw is called after the raster changed.
	OnDraw func()
	// OnRender is called with the new view after any visible state changed.
	OnRender func(View)
	// OnConfetti is called when a prediction is confident enough to celebrate.
	OnConfetti func()
}

func NewController(predictor predict.Predictor, opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Background == nil {
		opts.Background = color.Black
	}
	if opts.Ink == nil {
		opts.Ink = color.White
	}
	if opts.Brush == (config.Brush{}) {
		opts.Brush = config.Default().Brush
	}
	return &Controller{
		opts:      opts,
		pad:       state.PadState{BrushSize: opts.Brush.Default},
		raster:    state.NewRaster(opts.Width, opts.Height, opts.Background, opts.Ink),
		toasts:    effects.NewToasts(opts.Now),
		predictor: predictor,
		logger:    opts.Logger,
	}
}

// PointerDown starts a stroke at p, given relative to the pad as
// displayed at size display.
func (c *Controller) PointerDown(p state.Point, display state.Size) { c.begin(p, display) }

func (c *Controller) PointerMove(p state.Point, display state.Size) { c.move(p, display) }

func (c *Controller) PointerUp() { c.end() }

func (c *Controller) PointerLeave() { c.end() }

// TouchStart is PointerDown for the first touch point.
func (c *Controller) TouchStart(p state.Point, display state.Size) { c.begin(p, display) }

func (c *Controller) TouchMove(p state.Point, display state.Size) { c.move(p, display) }

func (c *Controller) TouchEnd() { c.end() }

func (c *Controller) begin(p state.Point, display state.Size) {
	c.mu.Lock()
	if c.pad.IsDrawing {
		c.finishStroke()
	}
	c.pad.IsDrawing = true
	c.pad.HasDrawn = true
	bp := state.ToBuffer(p, display, c.raster.Size())
	width := float64(c.pad.BrushSize)
	c.raster.Begin(bp, width)
	c.current = state.NewStroke(bp, width)
	c.mu.Unlock()

	c.draw()
	c.render()
}

func (c *Controller) move(p state.Point, display state.Size) {
	c.mu.Lock()
	if !c.pad.IsDrawing {
		c.mu.Unlock()
		return
	}
	bp := state.ToBuffer(p, display, c.raster.Size())
	c.raster.LineTo(bp, float64(c.pad.BrushSize))
	if c.current != nil {
		c.current.Points = append(c.current.Points, bp)
	}
	c.mu.Unlock()

	c.draw()
}

func (c *Controller) end() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.pad.IsDrawing {
		return
	}
	c.pad.IsDrawing = false
	c.finishStroke()
}

// finishStroke closes the raster path and commits the current stroke.
// Callers hold mu.
func (c *Controller) finishStroke() {
	c.raster.End()
	if c.current != nil {
		c.strokes = append(c.strokes, *c.current)
		c.current = nil
	}
}

// Clear wipes the drawing, shows the idle overlay, resets the results
// panel and drops any outstanding prediction.
func (c *Controller) Clear() {
	c.mu.Lock()
	c.raster.Clear()
	c.pad.IsDrawing = false
	c.pad.HasDrawn = false
	c.strokes = nil
	c.current = nil
	c.results = Results{Phase: ResultEmpty}
	c.seq.Invalidate()
	c.mu.Unlock()

	c.logger.Debug("canvas cleared")
	c.draw()
	c.render()
}

// SetBrushSize sets the stroke width, clamped to the configured range.
func (c *Controller) SetBrushSize(size int) {
	size = max(c.opts.Brush.Min, min(c.opts.Brush.Max, size))
	c.mu.Lock()
	changed := c.pad.BrushSize != size
	c.pad.BrushSize = size
	c.mu.Unlock()
	if changed {
		c.render()
	}
}

// HandleKey applies the keyboard shortcuts: C clears, Enter predicts when
// something has been drawn.
func (c *Controller) HandleKey(ctx context.Context, k Key) {
	switch {
	case strings.EqualFold(k.Name, "c") && !k.Ctrl && !k.Meta:
		c.Clear()
	case k.Name == "Enter" || k.Name == "Return":
		if c.State().HasDrawn {
			c.Predict(ctx)
		}
	}
}

// Predict submits the drawing for classification. Without a drawing it
// only shows a warning. The request runs on its own goroutine; its
// outcome is rendered unless a newer submission or a clear happened in
// the meantime.
func (c *Controller) Predict(ctx context.Context) {
	c.mu.Lock()
	if !c.pad.HasDrawn {
		c.mu.Unlock()
		c.toasts.Push(effects.LevelWarning, MessageNoDrawing)
		c.render()
		return
	}
	img := c.raster.Image()
	seq := c.seq.Next()
	c.results = Results{Phase: ResultLoading}
	c.mu.Unlock()

	c.logger.Debug("submitting drawing", "seq", seq)
	c.render()

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		res, err := c.submit(ctx, img)
		c.settle(seq, res, err)
	}()
}

func (c *Controller) submit(ctx context.Context, img image.Image) (*predict.Result, error) {
	png, err := export.EncodePNG(img, c.opts.UploadSize)
	if err != nil {
		return nil, err
	}
	return c.predictor.Predict(ctx, png)
}

func (c *Controller) settle(seq uint64, res *predict.Result, err error) {
	c.mu.Lock()
	if !c.seq.IsCurrent(seq) {
		c.mu.Unlock()
		c.logger.Debug("discarding stale prediction", "seq", seq)
		return
	}
	if err != nil {
		c.results = Results{Phase: ResultFailed}
		c.mu.Unlock()
		c.logger.Error("prediction failed", "seq", seq, "err", err)
		c.toasts.Push(effects.LevelError, MessagePredictionError)
		c.render()
		return
	}
	conf := float64(res.Confidence)
	c.results = Results{Phase: ResultSuccess, Digit: string(res.Prediction), Confidence: conf}
	celebrate := conf > c.opts.CelebrateAbove
	c.mu.Unlock()

	c.logger.Info("prediction", "seq", seq, "digit", string(res.Prediction), "confidence", conf)
	c.render()
	if celebrate && c.OnConfetti != nil {
		c.OnConfetti()
	}
}

// Wait blocks until every submitted prediction has settled.
func (c *Controller) Wait() { c.inflight.Wait() }

// Notify shows a toast that did not originate from the pad itself.
func (c *Controller) Notify(level effects.Level, message string) {
	c.toasts.Push(level, message)
	c.render()
}

// State returns a copy of the pad flags.
func (c *Controller) State() state.PadState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pad
}

// View renders the current state.
func (c *Controller) View() View {
	c.mu.Lock()
	snap := Snapshot{Pad: c.pad, Results: c.results}
	c.mu.Unlock()
	snap.Toasts = c.toasts.Active()
	snap.Now = c.opts.Now()
	return Render(snap)
}

// Image returns a copy of the raster.
func (c *Controller) Image() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.raster.Image()
}

// CopyImage writes the raster into dst, which must match the pad size.
func (c *Controller) CopyImage(dst *image.RGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.raster.CopyTo(dst)
}

func (c *Controller) BufferSize() state.Size { return c.raster.Size() }

func (c *Controller) BrushRange() (lo, hi int) { return c.opts.Brush.Min, c.opts.Brush.Max }

// Strokes returns the committed strokes since the last clear.
func (c *Controller) Strokes() []state.Stroke {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]state.Stroke, len(c.strokes))
	copy(out, c.strokes)
	return out
}

// ExportPNG writes the raster at its native resolution.
func (c *Controller) ExportPNG(w io.Writer) error {
	return export.WritePNG(w, c.Image())
}

// ExportPDF writes the strokes as vectors, labelled with the current
// prediction when there is one.
func (c *Controller) ExportPDF(w io.Writer) error {
	c.mu.Lock()
	d := export.Drawing{
		Size:       c.raster.Size(),
		Background: c.raster.Background(),
		Ink:        c.raster.Ink(),
		Strokes:    append([]state.Stroke(nil), c.strokes...),
	}
	if c.results.Phase == ResultSuccess {
		d.Label = fmt.Sprintf("Predicted digit %s (%s)", c.results.Digit, FormatConfidence(c.results.Confidence))
	}
	c.mu.Unlock()
	return export.WritePDF(w, d)
}

func (c *Controller) draw() {
	if c.OnDraw != nil {
		c.OnDraw()
	}
}

func (c *Controller) render() {
	if c.OnRender != nil {
		c.OnRender(c.View())
	}
}
