package state

import "github.com/google/uuid"

// Point is a position in raster buffer coordinates.
type Point struct{ X, Y float64 }

// Size is a width/height pair, used both for the on-screen pad and the buffer.
type Size struct{ W, H float64 }

// PadState holds the only flags the pad carries between events.
type PadState struct {
	IsDrawing bool // between pointer-down and the matching up/leave
	HasDrawn  bool // a stroke was committed since the last clear
	BrushSize int  // stroke width in buffer pixels
}

// Stroke is one drawing gesture, kept so the drawing can be exported as vectors.
type Stroke struct {
	ID     string  `json:"id"`
	Points []Point `json:"points"`
	Width  float64 `json:"width"`
}

func NewStroke(start Point, width float64) *Stroke {
	return &Stroke{
		ID:     uuid.NewString(),
		Points: []Point{start},
		Width:  width,
	}
}

// ToBuffer translates p, given relative to the displayed pad's top-left
// corner, into buffer coordinates. The buffer may have a different
// resolution from its on-screen size, so each axis is scaled by
// buffer/display. A zero display dimension leaves that axis as is.
func ToBuffer(p Point, display, buffer Size) Point {
	out := p
	if display.W > 0 {
		out.X = p.X * buffer.W / display.W
	}
	if display.H > 0 {
		out.Y = p.Y * buffer.H / display.H
	}
	return out
}
