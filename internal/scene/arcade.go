package scene

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tomz197/neonfield/internal/clock"
	"github.com/tomz197/neonfield/internal/loop/config"
	"github.com/tomz197/neonfield/internal/object"
	"github.com/tomz197/neonfield/internal/physics"
)

// State is the arcade run state.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StateWon
	StateDead
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StateWon:
		return "won"
	case StateDead:
		return "dead"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Direction is one of the four movement keys.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
	numDirections
)

var arcadeBurst = object.BurstStyle{
	Count:      14,
	MinSpeed:   1,
	SpeedRange: 3.5,
	Decay:      0.04,
	Spread:     28,
	MinSize:    1,
	SizeRange:  3,
	Colors:     object.ArcadeBurstColors,
}

var arcadeStyle = object.FieldStyle{StrokeAlpha: 0.9, FillAlpha: 0.07, GlowRadius: 1.5}

// HUD holds the formatted arcade readouts.
type HUD struct {
	Lives string
	Timer string
	Hits  string
}

// Arcade is the timed mini-game: survive 30 seconds while shooting inbound
// objects.
type Arcade struct {
	env    Env
	screen object.Screen

	state           State
	lives           int
	hits            int
	timeLeft        int
	invincible      bool
	invincibleUntil time.Duration
	starting        bool
	keys            [numDirections]bool

	craft              *object.Craft
	pointerX, pointerY float64
	field              *object.Field
	projectiles        []*object.Projectile
	bursts             []*object.Burst

	countdown clock.TimerID
	spawner   clock.TimerID
	frame     clock.FrameID
	runTimers map[clock.TimerID]struct{}
}

// NewArcade creates an arcade in the idle state.
func NewArcade(env Env, screen object.Screen) *Arcade {
	cx, cy := screen.Center()
	return &Arcade{
		env:       env,
		screen:    screen,
		craft:     object.NewCraft(cx, cy),
		pointerX:  cx,
		pointerY:  cy,
		field:     object.NewField(),
		runTimers: make(map[clock.TimerID]struct{}),
	}
}

// after schedules a one-shot timer that belongs to the current run.
func (a *Arcade) after(d time.Duration, fn func()) {
	var id clock.TimerID
	id = a.env.Timers.After(d, func() {
		delete(a.runTimers, id)
		fn()
	})
	a.runTimers[id] = struct{}{}
}

// cancelRun drops every timer and frame request belonging to the current run.
func (a *Arcade) cancelRun() {
	a.env.Timers.Cancel(a.countdown)
	a.env.Timers.Cancel(a.spawner)
	a.env.Frames.CancelFrame(a.frame)
	for id := range a.runTimers {
		a.env.Timers.Cancel(id)
	}
	clear(a.runTimers)
	a.countdown, a.spawner, a.frame = 0, 0, 0
}

// Start begins a fresh run from any state. Starting twice in a row leaves
// the same state as starting once.
func (a *Arcade) Start() {
	a.cancelRun()
	a.field.Reset()

	a.state = StatePlaying
	a.lives = config.ArcadeLives
	a.hits = 0
	a.timeLeft = config.ArcadeDurationSeconds
	a.invincible = false
	a.invincibleUntil = 0
	a.starting = true
	a.keys = [numDirections]bool{}

	cx, cy := a.screen.Center()
	a.craft.X, a.craft.Y, a.craft.Angle = cx, cy, 0

	for i := 0; i < config.ArcadeInitialObjects; i++ {
		a.field.Add(a.newInbound())
	}
	for _, b := range a.bursts {
		b.Release()
	}
	a.projectiles = a.projectiles[:0]
	a.bursts = a.bursts[:0]

	a.after(config.ArcadeGracePeriod, func() { a.starting = false })
	a.countdown = a.env.Timers.Every(config.ArcadeCountdownInterval, a.countdownTick)
	a.spawner = a.env.Timers.Every(config.ArcadeSpawnInterval, a.spawnTick)
	a.frame = a.env.Frames.RequestFrame(a.frameTick)

	a.env.emit(Event{Type: EventArcadeStarted})
}

// End stops the run and moves to result. Ending with StateIdle is an exit.
func (a *Arcade) End(result State) {
	a.cancelRun()
	a.state = result
	if result != StateIdle {
		a.env.emit(Event{Type: EventArcadeEnded, Result: result, Hits: a.hits})
	}
}

// Exit abandons the run and returns to idle.
func (a *Arcade) Exit() {
	a.End(StateIdle)
}

func (a *Arcade) newInbound() *object.FieldObject {
	o := &object.FieldObject{}
	object.SpawnInbound(o, a.env.Rand, a.screen)
	return o
}

func (a *Arcade) countdownTick() {
	a.timeLeft--
	if a.timeLeft <= 0 {
		a.End(StateWon)
	}
}

func (a *Arcade) spawnTick() {
	if a.state == StatePlaying && a.field.LiveCount() < config.ArcadeMaxLive {
		a.field.Add(a.newInbound())
	}
}

func (a *Arcade) frameTick() {
	a.frame = 0
	if a.state != StatePlaying {
		return
	}
	a.tick()
	if a.state == StatePlaying {
		a.frame = a.env.Frames.RequestFrame(a.frameTick)
	}
}

// tick runs one frame of the run. It returns early when the craft loses its
// last life.
func (a *Arcade) tick() {
	var dx, dy float64
	if a.keys[DirUp] {
		dy -= config.CraftSpeed
	}
	if a.keys[DirDown] {
		dy += config.CraftSpeed
	}
	if a.keys[DirLeft] {
		dx -= config.CraftSpeed
	}
	if a.keys[DirRight] {
		dx += config.CraftSpeed
	}
	a.craft.Move(dx, dy, a.screen, config.CraftWrapMargin)
	a.craft.AimAt(a.pointerX, a.pointerY)

	a.projectiles = object.CompactProjectiles(a.projectiles)
	for _, p := range a.projectiles {
		p.Update(a.screen)
		if !p.Alive {
			continue
		}
		for i := 0; i < a.field.Len(); i++ {
			o := a.field.At(i)
			if !o.Alive {
				continue
			}
			if physics.PointInCircle(p.X, p.Y, o.X, o.Y, o.Radius*config.ArcadeHitRadiusScale) {
				p.Alive = false
				a.hits++
				a.destroy(a.field.HandleAt(i), o.X, o.Y, config.ArcadeShotRespawnDelay)
				break
			}
		}
	}

	for i := 0; i < a.field.Len(); i++ {
		o := a.field.At(i)
		if !o.Alive {
			continue
		}
		o.Update(config.ArcadePulseStep)
		if !a.screen.Contains(o.X, o.Y, config.ArcadeOutOfBounds) {
			object.SpawnInbound(o, a.env.Rand, a.screen)
		}
		if a.invincible || a.starting {
			continue
		}
		if physics.CirclesOverlap(a.craft.X, a.craft.Y, config.CraftHitPadding, o.X, o.Y, o.Radius) {
			a.destroy(a.field.HandleAt(i), a.craft.X, a.craft.Y, config.ArcadeCrashRespawnDelay)
			a.lives--
			a.invincible = true
			a.invincibleUntil = a.env.Timers.Now() + config.ArcadeInvincibility
			a.after(config.ArcadeInvincibility, func() { a.invincible = false })
			a.env.emit(Event{Type: EventLifeLost, Lives: a.lives})
			if a.lives <= 0 {
				a.End(StateDead)
				return
			}
		}
	}

	a.bursts = object.UpdateBursts(a.bursts)
}

// destroy kills the object behind h, puts a burst at (bx, by) and schedules
// its respawn.
func (a *Arcade) destroy(h object.Handle, bx, by float64, respawn time.Duration) {
	if !a.field.Kill(h) {
		return
	}
	a.bursts = append(a.bursts, object.NewBurst(a.env.Rand, bx, by, arcadeBurst))
	a.after(respawn, func() {
		a.field.Revive(h, func(o *object.FieldObject) {
			object.SpawnInbound(o, a.env.Rand, a.screen)
		})
	})
}

// Fire shoots one projectile along the craft's facing. Ignored unless playing.
func (a *Arcade) Fire() {
	if a.state != StatePlaying {
		return
	}
	c := a.craft
	tx, ty := c.X+math.Cos(c.Angle), c.Y+math.Sin(c.Angle)
	a.projectiles = append(a.projectiles, object.NewProjectile(c.X, c.Y, tx, ty, config.ArcadeProjectileSpeed, config.ArcadeProjectileMaxAge))
}

// PointerMove records the pointer position the craft aims at.
func (a *Arcade) PointerMove(x, y float64) {
	a.pointerX, a.pointerY = x, y
}

// SetKey records a direction key press or release.
func (a *Arcade) SetKey(d Direction, down bool) {
	if d < 0 || d >= numDirections {
		return
	}
	a.keys[d] = down
}

// Resize updates the viewport.
func (a *Arcade) Resize(width, height float64) {
	a.screen = object.Screen{Width: width, Height: height}
}

// State returns the current run state.
func (a *Arcade) State() State { return a.state }

// Lives returns the remaining lives.
func (a *Arcade) Lives() int { return a.lives }

// Hits returns the objects shot this run.
func (a *Arcade) Hits() int { return a.hits }

// TimeLeft returns the seconds remaining.
func (a *Arcade) TimeLeft() int { return a.timeLeft }

// Invincible reports whether the craft is in its post-hit window.
func (a *Arcade) Invincible() bool { return a.invincible }

// Starting reports whether the start grace window is active.
func (a *Arcade) Starting() bool { return a.starting }

// Craft returns the player craft.
func (a *Arcade) Craft() *object.Craft { return a.craft }

// Field exposes the object arena.
func (a *Arcade) Field() *object.Field { return a.field }

// Projectiles returns the projectiles in flight.
func (a *Arcade) Projectiles() []*object.Projectile { return a.projectiles }

// Bursts returns the active burst effects.
func (a *Arcade) Bursts() []*object.Burst { return a.bursts }

// HUD formats lives, countdown and hits for display.
func (a *Arcade) HUD() HUD {
	lives := "☆"
	if a.lives > 0 {
		lives = strings.TrimSpace(strings.Repeat("♥ ", a.lives))
	}
	return HUD{
		Lives: lives,
		Timer: fmt.Sprintf("%02d", a.timeLeft),
		Hits:  fmt.Sprintf("HITS: %d", a.hits),
	}
}

// Draw paints the run. Nothing is drawn outside of play.
func (a *Arcade) Draw(surf object.Surface) {
	if a.state != StatePlaying {
		return
	}
	object.DrawAim(surf, a.craft, a.pointerX, a.pointerY, object.ColorNeon)
	for _, p := range a.projectiles {
		if p.Alive {
			p.Draw(surf, object.ColorNeon, config.ArcadeProjectileTrail)
		}
	}
	a.field.Draw(surf, arcadeStyle)
	for _, b := range a.bursts {
		b.Draw(surf)
	}

	var remaining float64
	if a.invincible {
		remaining = (a.invincibleUntil - a.env.Timers.Now()).Seconds()
	}
	if object.ShouldRenderBlink(remaining, config.PlayerBlinkFrequency) {
		a.craft.Draw(surf, object.ColorNeon)
	}
}
