package object

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/tomz197/neonfield/internal/draw"
)

// recorder is a Surface that counts calls.
type recorder struct {
	polygons, lines, dots, glows int
}

func (r *recorder) Polygon([]draw.Point, color.RGBA, color.RGBA) { r.polygons++ }
func (r *recorder) Line(draw.Point, draw.Point, color.RGBA)      { r.lines++ }
func (r *recorder) Dot(draw.Point, float64, color.RGBA)          { r.dots++ }
func (r *recorder) Glow(draw.Point, float64, color.RGBA)         { r.glows++ }

var testScreen = Screen{Width: 1280, Height: 720}

func TestFieldStaleHandle(t *testing.T) {
	f := NewField()
	h := f.Add(&FieldObject{Alive: true})
	if !f.Kill(h) {
		t.Fatalf("expected kill to succeed")
	}
	f.Reset()
	f.Add(&FieldObject{Alive: true})

	revived := f.Revive(h, func(o *FieldObject) { o.X = 99 })
	if revived {
		t.Fatalf("expected stale handle to be ignored")
	}
	if got := f.At(0).X; got != 0 {
		t.Fatalf("expected new object untouched, got x=%v", got)
	}
}

func TestFieldKillRevive(t *testing.T) {
	f := NewField()
	h := f.Add(&FieldObject{Alive: true})
	f.Add(&FieldObject{Alive: true})

	if f.LiveCount() != 2 {
		t.Fatalf("expected 2 live, got %d", f.LiveCount())
	}
	f.Kill(h)
	if f.Kill(h) {
		t.Fatalf("expected second kill to fail")
	}
	if f.LiveCount() != 1 {
		t.Fatalf("expected 1 live, got %d", f.LiveCount())
	}
	if !f.Revive(h, func(o *FieldObject) { o.X = 5 }) {
		t.Fatalf("expected revive to succeed")
	}
	o, _ := f.Get(h)
	if !o.Alive || o.Respawning || o.X != 5 {
		t.Fatalf("unexpected revived object: %+v", o)
	}
	if f.Revive(h, func(*FieldObject) {}) {
		t.Fatalf("expected revive of a live object to fail")
	}
}

func TestSpawnDriftInterior(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		var o FieldObject
		SpawnDrift(&o, rng, testScreen, false)
		if o.X < 80 || o.X > testScreen.Width-80 || o.Y < 80 || o.Y > testScreen.Height-80 {
			t.Fatalf("interior spawn outside inset: (%v, %v)", o.X, o.Y)
		}
		if o.Radius < 20 || o.Radius >= 50 {
			t.Fatalf("radius out of range: %v", o.Radius)
		}
		if o.VX >= -0.35 {
			t.Fatalf("expected leftward drift, got vx=%v", o.VX)
		}
		if n := len(o.Vertices); n < 7 || n > 10 {
			t.Fatalf("unexpected vertex count %d", n)
		}
		if !o.Alive {
			t.Fatalf("expected spawned object to be alive")
		}
	}
}

func TestSpawnDriftEdge(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		var o FieldObject
		SpawnDrift(&o, rng, testScreen, true)
		right := o.X == testScreen.Width+70
		top := o.Y == -70
		bottom := o.Y == testScreen.Height+70
		if !right && !top && !bottom {
			t.Fatalf("edge spawn not on an entry edge: (%v, %v)", o.X, o.Y)
		}
	}
}

func TestSpawnInboundHeadsInward(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	cx, cy := testScreen.Center()
	for i := 0; i < 200; i++ {
		var o FieldObject
		SpawnInbound(&o, rng, testScreen)
		if testScreen.Contains(o.X, o.Y, 39) {
			t.Fatalf("inbound spawn inside the screen: (%v, %v)", o.X, o.Y)
		}
		before := math.Hypot(cx-o.X, cy-o.Y)
		after := math.Hypot(cx-(o.X+o.VX), cy-(o.Y+o.VY))
		if after >= before {
			t.Fatalf("expected object to approach the centre")
		}
		speed := math.Hypot(o.VX, o.VY)
		if speed < 1 || speed >= 2.4+1e-9 {
			t.Fatalf("speed out of range: %v", speed)
		}
	}
}

func TestProjectileExpires(t *testing.T) {
	p := NewProjectile(640, 360, 640, 0, 0, 5)
	p.VX, p.VY = 0, 0
	for i := 0; i < 5; i++ {
		p.Update(testScreen)
		if !p.Alive {
			t.Fatalf("expired early at frame %d", i+1)
		}
	}
	p.Update(testScreen)
	if p.Alive {
		t.Fatalf("expected projectile to expire after max age")
	}
}

func TestProjectileLeavesScreen(t *testing.T) {
	p := NewProjectile(1285, 100, 2000, 100, 15, 85)
	p.Update(testScreen)
	if p.Alive {
		t.Fatalf("expected projectile past the margin to die, x=%v", p.X)
	}
}

func TestProjectileZeroDirection(t *testing.T) {
	p := NewProjectile(100, 100, 100, 100, 15, 85)
	if p.VX != 15 || p.VY != 0 {
		t.Fatalf("expected rightward fallback, got (%v, %v)", p.VX, p.VY)
	}
}

func TestCompactProjectiles(t *testing.T) {
	ps := []*Projectile{{Alive: true}, {Alive: false}, {Alive: true}}
	ps = CompactProjectiles(ps)
	if len(ps) != 2 {
		t.Fatalf("expected 2 projectiles, got %d", len(ps))
	}
}

func TestBurstLifecycle(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	style := BurstStyle{Count: 18, MinSpeed: 1, SpeedRange: 4, Decay: 0.25, Spread: 30, MinSize: 1, SizeRange: 3, Colors: IdleBurstColors}
	b := NewBurst(rng, 10, 20, style)
	if len(b.Particles) != 18 {
		t.Fatalf("expected 18 particles, got %d", len(b.Particles))
	}
	x, y := b.ParticlePosition(0)
	if x != 10 || y != 20 {
		t.Fatalf("expected particles to start at origin, got (%v, %v)", x, y)
	}

	bs := []*Burst{b}
	for i := 0; i < 3; i++ {
		bs = UpdateBursts(bs)
	}
	if len(bs) != 1 {
		t.Fatalf("expected burst alive after 3 frames")
	}
	bs = UpdateBursts(bs)
	if len(bs) != 0 {
		t.Fatalf("expected burst removed after fading")
	}
}

func TestCraftWrap(t *testing.T) {
	c := NewCraft(0, 360)
	c.Move(-30, 0, testScreen, 24)
	if c.X != testScreen.Width+24 {
		t.Fatalf("expected wrap to right edge, got %v", c.X)
	}
	c.Move(4, 0, testScreen, 24)
	if c.X != -24 {
		t.Fatalf("expected wrap to left edge, got %v", c.X)
	}
}

func TestCraftAim(t *testing.T) {
	c := NewCraft(100, 100)
	c.AimAt(100, 200)
	if math.Abs(c.Angle-math.Pi/2) > 1e-9 {
		t.Fatalf("expected craft to point down, got %v", c.Angle)
	}
	nose := c.Outline()[0]
	if math.Abs(nose.X-100) > 1e-9 || math.Abs(nose.Y-100-CraftSize) > 1e-9 {
		t.Fatalf("unexpected nose position %+v", nose)
	}
}

func TestStarfieldRespawnsAtRight(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	f := NewStarfield(rng, testScreen, 10)
	f.Stars[0].X = -7.9
	f.Stars[0].Speed = 0.2
	f.Update(testScreen, false)
	if f.Stars[0].X != testScreen.Width+6 {
		t.Fatalf("expected star to re-enter at right, got %v", f.Stars[0].X)
	}
}

func TestStarfieldWarpIsFaster(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	f := NewStarfield(rng, testScreen, 1)
	f.Stars[0].X = 1000
	f.Stars[0].Speed = 0.1
	f.Update(testScreen, true)
	if math.Abs(f.Stars[0].X-(1000-3.8)) > 1e-9 {
		t.Fatalf("expected warp drift of 3.8, got x=%v", f.Stars[0].X)
	}

	r := &recorder{}
	f.Draw(r, true)
	if r.lines != 1 || r.dots != 0 {
		t.Fatalf("expected streaks while warping, got %+v", r)
	}
}

func TestFieldDrawSkipsDead(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	f := NewField()
	for i := 0; i < 3; i++ {
		var o FieldObject
		SpawnDrift(&o, rng, testScreen, false)
		f.Add(&o)
	}
	f.Kill(f.HandleAt(1))

	r := &recorder{}
	f.Draw(r, FieldStyle{StrokeAlpha: 0.85, FillAlpha: 0.06})
	if r.polygons != 2 {
		t.Fatalf("expected 2 polygons, got %d", r.polygons)
	}
}

func TestShouldRenderBlink(t *testing.T) {
	if !ShouldRenderBlink(0, 10) {
		t.Fatalf("expected render without protection")
	}
	if ShouldRenderBlink(0.05, 10) == ShouldRenderBlink(0.15, 10) {
		t.Fatalf("expected alternating visibility")
	}
}
