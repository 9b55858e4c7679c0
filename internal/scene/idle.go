package scene

import (
	"github.com/tomz197/neonfield/internal/clock"
	"github.com/tomz197/neonfield/internal/loop/config"
	"github.com/tomz197/neonfield/internal/object"
	"github.com/tomz197/neonfield/internal/physics"
)

var idleBurst = object.BurstStyle{
	Count:      18,
	MinSpeed:   1,
	SpeedRange: 4,
	Decay:      0.032,
	Spread:     30,
	MinSize:    1,
	SizeRange:  3,
	Colors:     object.IdleBurstColors,
}

var idleStyle = object.FieldStyle{StrokeAlpha: 0.85, FillAlpha: 0.06, GlowRadius: 1.6}

// Idle is the ambient field behind the home view. It never ends: its frame
// callback re-requests itself every frame until Stop.
type Idle struct {
	env    Env
	screen object.Screen

	stars       *object.Starfield
	warp        bool
	field       *object.Field
	projectiles []*object.Projectile
	bursts      []*object.Burst

	kills     int
	facts     []string
	factIndex int

	spawner clock.TimerID
	frame   clock.FrameID
	running bool
}

// NewIdle creates an idle scene. facts are handed out one per kill, in order.
func NewIdle(env Env, screen object.Screen, facts []string) *Idle {
	return &Idle{
		env:    env,
		screen: screen,
		stars:  object.NewStarfield(env.Rand, screen, object.StarCount),
		field:  object.NewField(),
		facts:  facts,
	}
}

// Start seeds the initial population and begins spawning and ticking.
// Calling Start on a running scene does nothing.
func (s *Idle) Start() {
	if s.running {
		return
	}
	s.running = true
	for i := 0; i < config.IdleInitialObjects; i++ {
		o := &object.FieldObject{}
		object.SpawnDrift(o, s.env.Rand, s.screen, false)
		s.field.Add(o)
	}
	s.spawner = s.env.Timers.Every(config.IdleSpawnInterval, s.spawnTick)
	s.frame = s.env.Frames.RequestFrame(s.frameTick)
}

// Stop cancels the spawner and the pending frame.
func (s *Idle) Stop() {
	if !s.running {
		return
	}
	s.running = false
	s.env.Timers.Cancel(s.spawner)
	s.env.Frames.CancelFrame(s.frame)
}

func (s *Idle) spawnTick() {
	if s.field.LiveCount() >= config.IdleMaxLive {
		return
	}
	o := &object.FieldObject{}
	object.SpawnDrift(o, s.env.Rand, s.screen, true)
	s.field.Add(o)
}

func (s *Idle) frameTick() {
	s.Tick()
	s.frame = s.env.Frames.RequestFrame(s.frameTick)
}

// SetWarp switches the starfield into or out of warp.
func (s *Idle) SetWarp(on bool) {
	s.warp = on
}

// Warp reports whether the starfield is warping.
func (s *Idle) Warp() bool {
	return s.warp
}

// Tick advances the scene by one frame.
func (s *Idle) Tick() {
	s.stars.Update(s.screen, s.warp)

	s.projectiles = object.CompactProjectiles(s.projectiles)
	for _, p := range s.projectiles {
		p.Update(s.screen)
		if !p.Alive {
			continue
		}
		for i := 0; i < s.field.Len(); i++ {
			o := s.field.At(i)
			if !o.Alive {
				continue
			}
			if physics.PointInCircle(p.X, p.Y, o.X, o.Y, o.Radius*config.IdleHitRadiusScale) {
				p.Alive = false
				s.kill(s.field.HandleAt(i))
				break
			}
		}
	}

	for i := 0; i < s.field.Len(); i++ {
		o := s.field.At(i)
		if !o.Alive {
			continue
		}
		o.Update(config.IdlePulseStep)
		if o.X < -config.IdleOutOfBounds || o.Y < -config.IdleOutOfBounds || o.Y > s.screen.Height+config.IdleOutOfBounds {
			object.SpawnDrift(o, s.env.Rand, s.screen, true)
		}
	}

	s.bursts = object.UpdateBursts(s.bursts)
}

// Click handles a pointer click at (x, y). A click on a live object destroys
// it outright and returns true; otherwise a projectile is fired from the
// screen centre toward the click.
func (s *Idle) Click(x, y float64) bool {
	for i := 0; i < s.field.Len(); i++ {
		o := s.field.At(i)
		if o.Alive && physics.PointInCircle(x, y, o.X, o.Y, o.Radius*config.IdleClickRadiusScale) {
			s.kill(s.field.HandleAt(i))
			return true
		}
	}
	cx, cy := s.screen.Center()
	s.projectiles = append(s.projectiles, object.NewProjectile(cx, cy, x, y, config.IdleProjectileSpeed, config.IdleProjectileMaxAge))
	return false
}

func (s *Idle) kill(h object.Handle) {
	o, ok := s.field.Get(h)
	if !ok || !s.field.Kill(h) {
		return
	}
	s.bursts = append(s.bursts, object.NewBurst(s.env.Rand, o.X, o.Y, idleBurst))
	s.kills++

	var fact string
	if len(s.facts) > 0 {
		fact = s.facts[s.factIndex%len(s.facts)]
		s.factIndex++
	}
	s.env.emit(Event{Type: EventKill, Kills: s.kills, Fact: fact})

	s.env.Timers.After(config.IdleRespawnDelay, func() {
		s.field.Revive(h, func(o *object.FieldObject) {
			object.SpawnDrift(o, s.env.Rand, s.screen, true)
		})
	})
}

// Resize updates the viewport. Objects outside the new bounds come back
// through the normal respawn path.
func (s *Idle) Resize(width, height float64) {
	s.screen = object.Screen{Width: width, Height: height}
}

// Kills returns the number of objects destroyed so far.
func (s *Idle) Kills() int {
	return s.kills
}

// Field exposes the object arena.
func (s *Idle) Field() *object.Field {
	return s.field
}

// Projectiles returns the projectiles in flight.
func (s *Idle) Projectiles() []*object.Projectile {
	return s.projectiles
}

// Bursts returns the active burst effects.
func (s *Idle) Bursts() []*object.Burst {
	return s.bursts
}

// Draw paints nebulae, stars, projectiles, objects and bursts, back to front.
func (s *Idle) Draw(surf object.Surface) {
	object.DrawNebulae(surf, s.screen)
	s.stars.Draw(surf, s.warp)
	for _, p := range s.projectiles {
		if p.Alive {
			p.Draw(surf, object.ColorCyan, config.IdleProjectileTrail)
		}
	}
	s.field.Draw(surf, idleStyle)
	for _, b := range s.bursts {
		b.Draw(surf)
	}
}
