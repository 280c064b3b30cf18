package effects

import (
	"image/color"
	"math"
	"math/rand/v2"
)

const (
	DefaultConfetti = 50

	confettiMinSpeed = 5.0
	confettiSpread   = 5.0
	confettiGravity  = 2.0
	confettiFade     = 0.02
)

// Palette is the set of confetti colors.
var Palette = []color.NRGBA{
	{R: 0x66, G: 0x7e, B: 0xea, A: 0xff},
	{R: 0x76, G: 0x4b, B: 0xa2, A: 0xff},
	{R: 0xf0, G: 0x93, B: 0xfb, A: 0xff},
	{R: 0xf5, G: 0x57, B: 0x6c, A: 0xff},
	{R: 0x4f, G: 0xac, B: 0xfe, A: 0xff},
	{R: 0x00, G: 0xf2, B: 0xfe, A: 0xff},
}

// Piece is one confetti dot. X and Y are offsets in pixels from the burst
// origin.
type Piece struct {
	X, Y     float64
	VX, VY   float64
	Rotation float64 // degrees
	Opacity  float64
	Color    color.NRGBA
}

// Burst is a set of pieces flying out from a single point.
type Burst struct {
	pieces []Piece
}

// NewBurst spawns n pieces on evenly spaced radial angles, each with a
// random speed and color.
func NewBurst(n int, rng *rand.Rand) *Burst {
	b := &Burst{pieces: make([]Piece, n)}
	for i := range b.pieces {
		angle := 2 * math.Pi * float64(i) / float64(n)
		speed := confettiMinSpeed + rng.Float64()*confettiSpread
		b.pieces[i] = Piece{
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle) * speed,
			Opacity: 1,
			Color:   Palette[rng.IntN(len(Palette))],
		}
	}
	return b
}

// Step advances every piece by one frame and drops the ones that have
// faded out. It returns the number of pieces still visible.
func (b *Burst) Step() int {
	alive := b.pieces[:0]
	for _, p := range b.pieces {
		p.X += p.VX
		p.Y += p.VY + confettiGravity
		p.Opacity -= confettiFade
		p.Rotation = p.X * 2
		if p.Opacity > 0 {
			alive = append(alive, p)
		}
	}
	b.pieces = alive
	return len(b.pieces)
}

// Pieces returns a copy of the visible pieces.
func (b *Burst) Pieces() []Piece {
	out := make([]Piece, len(b.pieces))
	copy(out, b.pieces)
	return out
}

func (b *Burst) Done() bool { return len(b.pieces) == 0 }
