package effects

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func testRand() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

func TestParticlesRanges(t *testing.T) {
	ps := Particles(DefaultParticles, testRand())
	require.Len(t, ps, DefaultParticles)
	for _, p := range ps {
		assert.GreaterOrEqual(t, p.Left, 0.0)
		assert.Less(t, p.Left, 100.0)
		assert.GreaterOrEqual(t, p.Delay, time.Duration(0))
		assert.Less(t, p.Delay, 20*time.Second)
		assert.GreaterOrEqual(t, p.Duration, 15*time.Second)
		assert.Less(t, p.Duration, 25*time.Second)
	}
}

func TestParticleProgress(t *testing.T) {
	p := Particle{Delay: time.Second, Duration: 10 * time.Second}
	assert.Less(t, p.Progress(500*time.Millisecond), 0.0)
	assert.InDelta(t, 0.0, p.Progress(time.Second), 1e-9)
	assert.InDelta(t, 0.5, p.Progress(6*time.Second), 1e-9)
	assert.InDelta(t, 0.5, p.Progress(16*time.Second), 1e-9)
}

func TestBurstRadialSpawn(t *testing.T) {
	b := NewBurst(4, testRand())
	ps := b.Pieces()
	require.Len(t, ps, 4)

	for i, p := range ps {
		angle := math.Atan2(p.VY, p.VX)
		want := 2 * math.Pi * float64(i) / 4
		if want > math.Pi {
			want -= 2 * math.Pi
		}
		assert.InDelta(t, want, angle, 1e-9, "piece %d", i)
		speed := math.Hypot(p.VX, p.VY)
		assert.GreaterOrEqual(t, speed, 5.0)
		assert.Less(t, speed, 10.0)
		assert.Equal(t, 1.0, p.Opacity)
		assert.Contains(t, Palette, p.Color)
	}
}

func TestBurstStepAppliesGravityAndFade(t *testing.T) {
	b := &Burst{pieces: []Piece{{VX: 3, VY: -1, Opacity: 1}}}
	require.Equal(t, 1, b.Step())
	p := b.Pieces()[0]
	assert.Equal(t, 3.0, p.X)
	assert.Equal(t, 1.0, p.Y)
	assert.Equal(t, 6.0, p.Rotation)
	assert.InDelta(t, 0.98, p.Opacity, 1e-9)
}

func TestBurstEventuallyRemoved(t *testing.T) {
	b := NewBurst(DefaultConfetti, testRand())
	steps := 0
	for !b.Done() {
		b.Step()
		steps++
		require.LessOrEqual(t, steps, 51)
	}
	assert.GreaterOrEqual(t, steps, 49)
	assert.Empty(t, b.Pieces())
}

func TestAnimateRunsToCompletion(t *testing.T) {
	defer goleak.VerifyNone(t)

	var mu sync.Mutex
	frames := 0
	last := -1
	a := Animate(context.Background(), NewBurst(10, testRand()), time.Millisecond, func(ps []Piece) {
		mu.Lock()
		defer mu.Unlock()
		frames++
		last = len(ps)
	})

	select {
	case <-a.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("animation did not finish")
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Greater(t, frames, 40)
	assert.Equal(t, 0, last)
}

func TestAnimateStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	a := Animate(context.Background(), NewBurst(10, testRand()), time.Hour, func([]Piece) {})
	a.Stop()
	select {
	case <-a.Done():
	default:
		t.Fatal("Done not closed after Stop")
	}
}

func TestToastsStackAndExpire(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	toasts := NewToasts(func() time.Time { return now })

	first := toasts.Push(LevelWarning, "Please draw a digit first!")
	now = now.Add(time.Second)
	second := toasts.Push(LevelError, "Error making prediction. Please try again.")

	active := toasts.Active()
	require.Len(t, active, 2)
	assert.Equal(t, first.ID, active[0].ID)
	assert.Equal(t, second.ID, active[1].ID)

	now = now.Add(2*time.Second + 100*time.Millisecond)
	assert.Equal(t, PhaseExit, first.Phase(now))
	assert.Equal(t, PhaseShown, second.Phase(now))
	assert.Len(t, toasts.Active(), 2)

	now = now.Add(300 * time.Millisecond)
	active = toasts.Active()
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)

	now = now.Add(5 * time.Second)
	assert.Empty(t, toasts.Active())
}

func TestToastPhases(t *testing.T) {
	created := time.Unix(0, 0)
	toast := Toast{Created: created}
	assert.Equal(t, PhaseEnter, toast.Phase(created))
	assert.Equal(t, PhaseShown, toast.Phase(created.Add(time.Second)))
	assert.Equal(t, PhaseExit, toast.Phase(created.Add(3100*time.Millisecond)))
	assert.Equal(t, PhaseGone, toast.Phase(created.Add(4*time.Second)))
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "info", LevelInfo.String())
	assert.Equal(t, "warning", LevelWarning.String())
	assert.Equal(t, "error", LevelError.String())
}
