package effects

import (
	"context"
	"time"
)

// FrameInterval is roughly one display refresh at 60Hz.
const FrameInterval = time.Second / 60

// Animation drives a Burst frame by frame on its own goroutine.
type Animation struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Animate steps b every interval and hands each frame's pieces to
// onFrame. After the last piece fades out onFrame is called once with an
// empty slice and the goroutine exits. Cancelling ctx or calling Stop ends
// it early.
func Animate(ctx context.Context, b *Burst, interval time.Duration, onFrame func([]Piece)) *Animation {
	if interval <= 0 {
		interval = FrameInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	a := &Animation{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(a.done)
		defer cancel()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		onFrame(b.Pieces())
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if b.Step() == 0 {
					onFrame(nil)
					return
				}
				onFrame(b.Pieces())
			}
		}
	}()
	return a
}

// Stop ends the animation and waits for its goroutine to exit.
func (a *Animation) Stop() {
	a.cancel()
	<-a.done
}

// Done is closed once the animation has finished.
func (a *Animation) Done() <-chan struct{} { return a.done }
