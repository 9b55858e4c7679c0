package object

import (
	"image/color"
	"math"
	"math/rand"
	"sync"

	"github.com/tomz197/neonfield/internal/draw"
)

// burstPool is a sync.Pool for reusing Burst objects to reduce allocations.
var burstPool = sync.Pool{
	New: func() any {
		return &Burst{}
	},
}

// BurstStyle describes how a scene's explosions look.
type BurstStyle struct {
	Count      int     // Particles per burst
	MinSpeed   float64 // Lower bound of particle speed
	SpeedRange float64 // Added random speed
	Decay      float64 // Life lost per frame
	Spread     float64 // Distance multiplier for particle travel
	MinSize    float64
	SizeRange  float64
	Colors     []color.RGBA
}

// BurstParticle is one fragment of a burst, fixed at creation.
type BurstParticle struct {
	Angle float64
	Speed float64
	Size  float64
	Color color.RGBA
}

// Burst is a fading ring of particles expanding from a point.
type Burst struct {
	X, Y      float64
	Life      float64 // 1 at creation, done at 0
	Decay     float64
	Spread    float64
	Particles []BurstParticle
}

// NewBurst creates a burst at (x, y) from the pool.
func NewBurst(rng *rand.Rand, x, y float64, style BurstStyle) *Burst {
	b := burstPool.Get().(*Burst)
	b.X = x
	b.Y = y
	b.Life = 1
	b.Decay = style.Decay
	b.Spread = style.Spread
	b.Particles = b.Particles[:0]
	for i := 0; i < style.Count; i++ {
		p := BurstParticle{
			Angle: rng.Float64() * 2 * math.Pi,
			Speed: style.MinSpeed + rng.Float64()*style.SpeedRange,
			Size:  style.MinSize + rng.Float64()*style.SizeRange,
		}
		if len(style.Colors) > 0 {
			p.Color = style.Colors[rng.Intn(len(style.Colors))]
		}
		b.Particles = append(b.Particles, p)
	}
	return b
}

// Release returns the burst to the pool for reuse.
// Should be called when the burst is removed from its scene.
func (b *Burst) Release() {
	burstPool.Put(b)
}

// Update fades the burst by one frame.
func (b *Burst) Update() {
	b.Life -= b.Decay
}

// Done reports whether the burst has faded out.
func (b *Burst) Done() bool {
	return b.Life <= 0
}

// ParticlePosition returns where particle i currently is. Particles travel
// outward along their angle as the burst fades.
func (b *Burst) ParticlePosition(i int) (float64, float64) {
	p := b.Particles[i]
	d := p.Speed * (1 - b.Life) * b.Spread
	return b.X + math.Cos(p.Angle)*d, b.Y + math.Sin(p.Angle)*d
}

// Draw paints every particle shrinking and fading with the burst's life.
func (b *Burst) Draw(s Surface) {
	if b.Done() {
		return
	}
	for i, p := range b.Particles {
		x, y := b.ParticlePosition(i)
		s.Dot(draw.Point{X: x, Y: y}, p.Size*b.Life, withAlpha(p.Color, b.Life))
	}
}

// UpdateBursts advances every burst and drops the finished ones, releasing
// them to the pool.
func UpdateBursts(bs []*Burst) []*Burst {
	out := bs[:0]
	for _, b := range bs {
		b.Update()
		if b.Done() {
			b.Release()
			continue
		}
		out = append(out, b)
	}
	clear(bs[len(out):])
	return out
}
