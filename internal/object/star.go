package object

import (
	"image/color"
	"math/rand"

	"github.com/tomz197/neonfield/internal/draw"
)

// Starfield tuning.
const (
	StarCount       = 240
	starRespawnEdge = -8.0
	starEntryOffset = 6.0
	warpMultiplier  = 38.0
	warpStreak      = 90.0
)

var starTints = []color.RGBA{
	{R: 255, G: 255, B: 255, A: 255},
	{R: 200, G: 215, B: 255, A: 255},
	{R: 220, G: 200, B: 255, A: 255},
	{R: 180, G: 230, B: 255, A: 255},
	{R: 255, G: 240, B: 200, A: 255},
}

// Star is a background point drifting left.
type Star struct {
	X, Y    float64
	Speed   float64
	Size    float64
	Opacity float64
	Tint    color.RGBA
}

// Starfield is the home view's parallax backdrop. The arcade view draws
// over a bare background.
type Starfield struct {
	Stars []Star
	rng   *rand.Rand
}

// NewStarfield scatters count stars across the screen.
func NewStarfield(rng *rand.Rand, s Screen, count int) *Starfield {
	f := &Starfield{Stars: make([]Star, count), rng: rng}
	for i := range f.Stars {
		f.spawn(&f.Stars[i], s, false)
	}
	return f
}

func (f *Starfield) spawn(st *Star, s Screen, atRight bool) {
	if atRight {
		st.X = s.Width + starEntryOffset
	} else {
		st.X = f.rng.Float64() * s.Width
	}
	st.Y = f.rng.Float64() * s.Height
	st.Speed = 0.06 + f.rng.Float64()*0.4
	st.Size = 0.3 + f.rng.Float64()*1.6
	st.Opacity = 0.1 + f.rng.Float64()*0.8
	st.Tint = starTints[f.rng.Intn(len(starTints))]
}

// Update drifts every star left, much faster while warping, and re-enters
// stars at the right edge once they leave on the left.
func (f *Starfield) Update(s Screen, warp bool) {
	mul := 1.0
	if warp {
		mul = warpMultiplier
	}
	for i := range f.Stars {
		st := &f.Stars[i]
		st.X -= st.Speed * mul
		if st.X < starRespawnEdge {
			f.spawn(st, s, true)
		}
	}
}

// Draw paints stars as dots, or as horizontal streaks while warping.
func (f *Starfield) Draw(surf Surface, warp bool) {
	for _, st := range f.Stars {
		if warp {
			tail := draw.Point{X: st.X + st.Speed*warpStreak, Y: st.Y}
			surf.Line(tail, draw.Point{X: st.X, Y: st.Y}, withAlpha(st.Tint, st.Opacity*0.8))
			continue
		}
		surf.Dot(draw.Point{X: st.X, Y: st.Y}, st.Size*0.55, withAlpha(st.Tint, st.Opacity))
	}
}

// Nebula is a fixed radial haze. Its centre is given as a fraction of the screen.
type Nebula struct {
	CX, CY float64
	Radius float64
	Color  color.RGBA
}

// Nebulae are painted behind the stars.
var Nebulae = []Nebula{
	{CX: 0.18, CY: 0.25, Radius: 320, Color: color.RGBA{R: 128, G: 0, B: 255, A: 15}},
	{CX: 0.82, CY: 0.70, Radius: 280, Color: color.RGBA{R: 0, G: 100, B: 255, A: 13}},
	{CX: 0.50, CY: 0.50, Radius: 380, Color: color.RGBA{R: 0, G: 180, B: 255, A: 8}},
	{CX: 0.75, CY: 0.15, Radius: 200, Color: color.RGBA{R: 255, G: 45, B: 120, A: 10}},
}

// DrawNebulae paints every nebula scaled to the screen.
func DrawNebulae(surf Surface, s Screen) {
	for _, n := range Nebulae {
		surf.Glow(draw.Point{X: n.CX * s.Width, Y: n.CY * s.Height}, n.Radius, n.Color)
	}
}
