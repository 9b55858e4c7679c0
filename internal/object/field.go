package object

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/tomz197/neonfield/internal/draw"
)

// FieldObject is a destructible polygonal rock drifting across the screen.
type FieldObject struct {
	X, Y          float64   // Position (center)
	VX, VY        float64   // Velocity in units per frame
	Radius        float64   // Hit and draw radius
	Vertices      []float64 // Per-vertex radius multipliers
	Angle         float64   // Current rotation
	RotationSpeed float64   // Radians per frame
	Pulse         float64   // Glow phase
	Alive         bool
	Respawning    bool // Dead and waiting for its respawn timer

	points []draw.Point
}

// FieldStyle controls how a scene paints its field objects.
type FieldStyle struct {
	StrokeAlpha float64
	FillAlpha   float64
	GlowRadius  float64
}

// RandomShape returns per-vertex radius multipliers in [0.6, 1.3) for a
// polygon with minSides plus up to extraSides-1 additional vertices.
func RandomShape(rng *rand.Rand, minSides, extraSides int) []float64 {
	n := minSides
	if extraSides > 0 {
		n += rng.Intn(extraSides)
	}
	verts := make([]float64, n)
	for i := range verts {
		verts[i] = 0.6 + rng.Float64()*0.7
	}
	return verts
}

// Update advances position, rotation and glow phase by one frame.
func (o *FieldObject) Update(pulseStep float64) {
	o.X += o.VX
	o.Y += o.VY
	o.Angle += o.RotationSpeed
	o.Pulse += pulseStep
}

// Outline returns the polygon vertices in world coordinates.
// The returned slice is reused between calls.
func (o *FieldObject) Outline() []draw.Point {
	n := len(o.Vertices)
	if cap(o.points) < n {
		o.points = make([]draw.Point, n)
	}
	o.points = o.points[:n]
	for i, mul := range o.Vertices {
		a := float64(i)/float64(n)*2*math.Pi + o.Angle
		r := o.Radius * mul
		o.points[i] = draw.Point{X: o.X + math.Cos(a)*r, Y: o.Y + math.Sin(a)*r}
	}
	return o.points
}

// Draw paints a live object with its pulsing orange outline.
func (o *FieldObject) Draw(s Surface, style FieldStyle) {
	if !o.Alive || len(o.Vertices) < 3 {
		return
	}
	p := 0.5 + 0.5*math.Sin(o.Pulse)
	stroke := color.RGBA{R: 255, G: uint8(140 + p*60), B: 20}
	if style.GlowRadius > 0 {
		s.Glow(draw.Point{X: o.X, Y: o.Y}, o.Radius*style.GlowRadius, withAlpha(ColorOrange, 0.08+0.06*p))
	}
	s.Polygon(o.Outline(), withAlpha(stroke, style.StrokeAlpha), withAlpha(ColorOrange, style.FillAlpha))
}

// Handle identifies a field slot. Handles from before the last Reset are stale.
type Handle struct {
	Index int
	Gen   uint32
}

// Field is an arena of field objects addressed by Handle.
// Dead objects keep their slot so respawn timers can find them again.
type Field struct {
	objects []*FieldObject
	gen     uint32
}

// NewField creates an empty field.
func NewField() *Field {
	return &Field{}
}

// Add stores o and returns its handle.
func (f *Field) Add(o *FieldObject) Handle {
	f.objects = append(f.objects, o)
	return Handle{Index: len(f.objects) - 1, Gen: f.gen}
}

// Get returns the object behind h, or false if h is stale or out of range.
func (f *Field) Get(h Handle) (*FieldObject, bool) {
	if h.Gen != f.gen || h.Index < 0 || h.Index >= len(f.objects) {
		return nil, false
	}
	return f.objects[h.Index], true
}

// HandleAt returns the current handle of slot i.
func (f *Field) HandleAt(i int) Handle {
	return Handle{Index: i, Gen: f.gen}
}

// At returns the object in slot i.
func (f *Field) At(i int) *FieldObject {
	return f.objects[i]
}

// Len returns the number of slots, live or not.
func (f *Field) Len() int {
	return len(f.objects)
}

// LiveCount returns the number of live objects.
func (f *Field) LiveCount() int {
	n := 0
	for _, o := range f.objects {
		if o.Alive {
			n++
		}
	}
	return n
}

// Kill marks the object dead and waiting for respawn.
func (f *Field) Kill(h Handle) bool {
	o, ok := f.Get(h)
	if !ok || !o.Alive {
		return false
	}
	o.Alive = false
	o.Respawning = true
	return true
}

// Revive re-spawns a dead object in place. It is a no-op for stale handles
// and for objects that are not waiting on a respawn.
func (f *Field) Revive(h Handle, spawn func(*FieldObject)) bool {
	o, ok := f.Get(h)
	if !ok || !o.Respawning {
		return false
	}
	spawn(o)
	o.Alive = true
	o.Respawning = false
	return true
}

// Reset empties the field and invalidates every outstanding handle.
func (f *Field) Reset() {
	clear(f.objects)
	f.objects = f.objects[:0]
	f.gen++
}

// Draw paints every live object.
func (f *Field) Draw(s Surface, style FieldStyle) {
	for _, o := range f.objects {
		o.Draw(s, style)
	}
}
