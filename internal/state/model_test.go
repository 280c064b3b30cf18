package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToBufferCorners(t *testing.T) {
	buffer := Size{W: 280, H: 280}
	for _, display := range []Size{{140, 140}, {280, 280}, {560, 420}, {333, 97}} {
		assert.Equal(t, Point{0, 0}, ToBuffer(Point{0, 0}, display, buffer), "display %v", display)
		assert.Equal(t, Point{280, 280}, ToBuffer(Point{display.W, display.H}, display, buffer), "display %v", display)
	}
}

func TestToBufferScalesEachAxis(t *testing.T) {
	got := ToBuffer(Point{X: 50, Y: 25}, Size{W: 100, H: 50}, Size{W: 200, H: 200})
	assert.Equal(t, Point{X: 100, Y: 100}, got)
}

func TestToBufferZeroDisplay(t *testing.T) {
	got := ToBuffer(Point{X: 7, Y: 9}, Size{}, Size{W: 280, H: 280})
	assert.Equal(t, Point{X: 7, Y: 9}, got)
}

func TestNewStroke(t *testing.T) {
	a := NewStroke(Point{1, 2}, 15)
	b := NewStroke(Point{1, 2}, 15)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, []Point{{1, 2}}, a.Points)
	assert.Equal(t, 15.0, a.Width)
}
