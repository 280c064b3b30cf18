package ui

import (
	"context"
	"image/color"
	"math/rand/v2"
	"sync"
	"time"

	"DigitPad/internal/effects"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

const (
	particleRadius = 2
	confettiRadius = 5
	particleTick   = 50 * time.Millisecond
)

var particleColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x4d}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// ParticleLayer is the field of dots drifting up behind the content.
type ParticleLayer struct {
	particles []effects.Particle
	dots      []*canvas.Circle
	root      *fyne.Container
}

func NewParticleLayer(n int) *ParticleLayer {
	l := &ParticleLayer{
		particles: effects.Particles(n, newRand()),
		root:      container.NewWithoutLayout(),
	}
	for range l.particles {
		dot := canvas.NewCircle(particleColor)
		dot.Resize(fyne.NewSize(2*particleRadius, 2*particleRadius))
		dot.Hide()
		l.dots = append(l.dots, dot)
		l.root.Add(dot)
	}
	return l
}

func (l *ParticleLayer) Object() fyne.CanvasObject { return l.root }

// Run moves the particles until ctx is cancelled.
func (l *ParticleLayer) Run(ctx context.Context) {
	if len(l.particles) == 0 {
		return
	}
	start := time.Now()
	ticker := time.NewTicker(particleTick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			elapsed := now.Sub(start)
			fyne.Do(func() { l.place(elapsed) })
		}
	}
}

func (l *ParticleLayer) place(elapsed time.Duration) {
	size := l.root.Size()
	for i, p := range l.particles {
		dot := l.dots[i]
		progress := p.Progress(elapsed)
		if progress < 0 {
			dot.Hide()
			continue
		}
		x := float32(p.Left/100) * size.Width
		y := size.Height - float32(progress)*(size.Height+2*particleRadius)
		dot.Move(fyne.NewPos(x-particleRadius, y-particleRadius))
		dot.Show()
	}
	l.root.Refresh()
}

// ConfettiLayer draws confetti bursts from the middle of the window.
// Bursts overlap; each one removes its own pieces when it finishes.
type ConfettiLayer struct {
	n    int
	root *fyne.Container

	mu    sync.Mutex
	anims []*effects.Animation
}

func NewConfettiLayer(n int) *ConfettiLayer {
	return &ConfettiLayer{n: n, root: container.NewWithoutLayout()}
}

func (l *ConfettiLayer) Object() fyne.CanvasObject { return l.root }

// Burst starts a new burst. It is safe to call from any goroutine.
func (l *ConfettiLayer) Burst(ctx context.Context) {
	if l.n == 0 {
		return
	}

	dots := make([]*canvas.Circle, l.n)
	for i := range dots {
		dots[i] = canvas.NewCircle(color.Transparent)
		dots[i].Resize(fyne.NewSize(2*confettiRadius, 2*confettiRadius))
		dots[i].Hide()
	}
	fyne.Do(func() {
		for _, d := range dots {
			l.root.Add(d)
		}
	})

	l.mu.Lock()
	defer l.mu.Unlock()
	l.prune()
	anim := effects.Animate(ctx, effects.NewBurst(l.n, newRand()), effects.FrameInterval, func(pieces []effects.Piece) {
		fyne.Do(func() { l.frame(dots, pieces) })
	})
	l.anims = append(l.anims, anim)
}

// Active is the number of bursts still animating.
func (l *ConfettiLayer) Active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prune()
	return len(l.anims)
}

// prune drops finished animations. Callers hold mu.
func (l *ConfettiLayer) prune() {
	live := l.anims[:0]
	for _, a := range l.anims {
		select {
		case <-a.Done():
		default:
			live = append(live, a)
		}
	}
	clear(l.anims[len(live):])
	l.anims = live
}

// frame positions the surviving pieces. Step drops pieces from the
// front as they fade, so the live pieces fill dots from the start.
func (l *ConfettiLayer) frame(dots []*canvas.Circle, pieces []effects.Piece) {
	if len(pieces) == 0 {
		for _, d := range dots {
			l.root.Remove(d)
		}
		return
	}
	center := l.root.Size()
	cx, cy := center.Width/2, center.Height/2
	for i, d := range dots {
		if i >= len(pieces) {
			d.Hide()
			continue
		}
		p := pieces[i]
		c := p.Color
		c.A = uint8(p.Opacity * 0xff)
		d.FillColor = c
		d.Move(fyne.NewPos(cx+float32(p.X)-confettiRadius, cy+float32(p.Y)-confettiRadius))
		d.Show()
		d.Refresh()
	}
}

// Stop cancels every running burst and waits for them to exit.
func (l *ConfettiLayer) Stop() {
	l.mu.Lock()
	anims := l.anims
	l.anims = nil
	l.mu.Unlock()
	for _, a := range anims {
		a.Stop()
	}
}
