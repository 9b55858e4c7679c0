package object

import (
	"image/color"

	"github.com/tomz197/neonfield/internal/draw"
	"github.com/tomz197/neonfield/internal/physics"
)

// ProjectileRadius is the drawn radius of a projectile head.
const ProjectileRadius = 3.0

// projectileMargin is how far past the screen edge a projectile may fly
// before it is discarded.
const projectileMargin = 10.0

// Projectile is a shot travelling in a straight line.
type Projectile struct {
	X, Y   float64 // Position
	VX, VY float64 // Velocity per frame
	Age    int     // Frames since fired
	MaxAge int     // Frames before it expires
	Alive  bool
}

// NewProjectile fires a projectile from (x, y) toward (tx, ty) at speed.
// A target equal to the origin fires to the right.
func NewProjectile(x, y, tx, ty, speed float64, maxAge int) *Projectile {
	dx, dy := physics.Direction(x, y, tx, ty)
	return &Projectile{
		X:      x,
		Y:      y,
		VX:     dx * speed,
		VY:     dy * speed,
		MaxAge: maxAge,
		Alive:  true,
	}
}

// Update moves the projectile one frame and expires it when it is too old
// or has left the screen.
func (p *Projectile) Update(s Screen) {
	p.X += p.VX
	p.Y += p.VY
	p.Age++
	if p.Age > p.MaxAge || !s.Contains(p.X, p.Y, projectileMargin) {
		p.Alive = false
	}
}

// Draw renders the head and a short trail behind it. trail scales the
// velocity to get the trail length.
func (p *Projectile) Draw(s Surface, clr color.RGBA, trail float64) {
	head := draw.Point{X: p.X, Y: p.Y}
	tail := draw.Point{X: p.X - p.VX*trail, Y: p.Y - p.VY*trail}
	s.Line(head, tail, withAlpha(clr, 0.4))
	s.Dot(head, ProjectileRadius, clr)
}

// CompactProjectiles drops dead projectiles in place.
func CompactProjectiles(ps []*Projectile) []*Projectile {
	out := ps[:0]
	for _, p := range ps {
		if p.Alive {
			out = append(out, p)
		}
	}
	clear(ps[len(out):])
	return out
}
