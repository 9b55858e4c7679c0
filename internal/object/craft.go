package object

import (
	"image/color"
	"math"

	"github.com/tomz197/neonfield/internal/draw"
)

// CraftSize is the nose-to-centre length of the player craft.
const CraftSize = 18.0

// Craft is the player ship in the arcade. It moves with the direction keys
// and always points at the pointer.
type Craft struct {
	X, Y  float64
	Angle float64 // Radians, 0 points right

	points [4]draw.Point
}

// NewCraft places a craft at (x, y) facing right.
func NewCraft(x, y float64) *Craft {
	return &Craft{X: x, Y: y}
}

// Move shifts the craft and wraps it to the opposite side once it is more
// than margin past an edge.
func (c *Craft) Move(dx, dy float64, s Screen, margin float64) {
	c.X += dx
	c.Y += dy
	if c.X < -margin {
		c.X = s.Width + margin
	}
	if c.X > s.Width+margin {
		c.X = -margin
	}
	if c.Y < -margin {
		c.Y = s.Height + margin
	}
	if c.Y > s.Height+margin {
		c.Y = -margin
	}
}

// AimAt turns the craft toward (x, y).
func (c *Craft) AimAt(x, y float64) {
	c.Angle = math.Atan2(y-c.Y, x-c.X)
}

// Outline returns the four-point arrowhead hull in world coordinates.
func (c *Craft) Outline() []draw.Point {
	local := [4][2]float64{
		{CraftSize, 0},
		{-CraftSize * 0.65, CraftSize * 0.45},
		{-CraftSize * 0.35, 0},
		{-CraftSize * 0.65, -CraftSize * 0.45},
	}
	sin, cos := math.Sincos(c.Angle)
	for i, v := range local {
		c.points[i] = draw.Point{
			X: c.X + v[0]*cos - v[1]*sin,
			Y: c.Y + v[0]*sin + v[1]*cos,
		}
	}
	return c.points[:]
}

// Draw paints the hull.
func (c *Craft) Draw(s Surface, clr color.RGBA) {
	s.Glow(draw.Point{X: c.X, Y: c.Y}, CraftSize*1.6, withAlpha(clr, 0.12))
	s.Polygon(c.Outline(), clr, withAlpha(clr, 0.1))
}

// DrawAim paints a faint line from the craft to the pointer and a small
// crosshair at the pointer.
func DrawAim(s Surface, c *Craft, px, py float64, clr color.RGBA) {
	s.Line(draw.Point{X: c.X, Y: c.Y}, draw.Point{X: px, Y: py}, withAlpha(clr, 0.08))

	const r, gap = 9.0, 3.0
	cross := withAlpha(clr, 0.7)
	s.Line(draw.Point{X: px - r, Y: py}, draw.Point{X: px - gap, Y: py}, cross)
	s.Line(draw.Point{X: px + gap, Y: py}, draw.Point{X: px + r, Y: py}, cross)
	s.Line(draw.Point{X: px, Y: py - r}, draw.Point{X: px, Y: py - gap}, cross)
	s.Line(draw.Point{X: px, Y: py + gap}, draw.Point{X: px, Y: py + r}, cross)
	s.Dot(draw.Point{X: px, Y: py}, 1.5, clr)
}
