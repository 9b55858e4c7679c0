package loop

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/neonfield/internal/clock"
	"github.com/tomz197/neonfield/internal/loop/config"
	"github.com/tomz197/neonfield/internal/object"
	"github.com/tomz197/neonfield/internal/scene"
)

// View is the screen the controller is showing.
type View int

const (
	ViewHome View = iota
	ViewArcade
)

func (v View) String() string {
	if v == ViewArcade {
		return "arcade"
	}
	return "home"
}

// Options configures a Controller.
type Options struct {
	Width, Height float64
	Rand          *rand.Rand // Defaults to a time-seeded source
	Facts         []string   // Defaults to scene.DefaultFacts
	Logger        *log.Logger
}

// Controller owns both scenes for one viewer and decides which receives input.
type Controller struct {
	driver *Driver
	events chan scene.Event
	logger *log.Logger

	screen object.Screen
	idle   *scene.Idle
	arcade *scene.Arcade

	view          View
	arcadeActive  bool // Set as soon as navigation toward the arcade begins
	transitioning bool
	canShoot      bool

	notice      string
	noticeTimer clock.TimerID
	resumeTimer clock.TimerID
}

// NewController creates a controller showing the home view and starts the
// idle scene.
func NewController(opts Options) *Controller {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	facts := opts.Facts
	if facts == nil {
		facts = scene.DefaultFacts
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = config.DefaultViewWidth, config.DefaultViewHeight
	}

	c := &Controller{
		driver:   NewDriver(),
		events:   make(chan scene.Event, 64),
		logger:   logger,
		screen:   object.Screen{Width: width, Height: height},
		canShoot: true,
	}
	env := scene.Env{
		Timers: c.driver.Timers,
		Frames: c.driver.Frames,
		Rand:   rng,
		Events: c.events,
	}
	c.idle = scene.NewIdle(env, c.screen, facts)
	c.arcade = scene.NewArcade(env, c.screen)
	c.idle.Start()
	return c
}

// Step advances the simulation by delta and handles the resulting events.
func (c *Controller) Step(delta time.Duration) {
	c.driver.Step(delta)
	c.drainEvents()
}

func (c *Controller) drainEvents() {
	for {
		select {
		case ev := <-c.events:
			c.handleEvent(ev)
		default:
			return
		}
	}
}

func (c *Controller) handleEvent(ev scene.Event) {
	switch ev.Type {
	case scene.EventKill:
		c.logger.Debug("object destroyed", "kills", ev.Kills)
		c.showNotice(ev.Fact)
	case scene.EventArcadeStarted:
		c.logger.Info("arcade run started")
	case scene.EventArcadeEnded:
		c.logger.Info("arcade run ended", "result", ev.Result, "hits", ev.Hits)
	case scene.EventLifeLost:
		c.logger.Debug("life lost", "lives", ev.Lives)
	}
}

// showNotice displays text for the notice duration. Suppressed while the
// arcade is active.
func (c *Controller) showNotice(text string) {
	if c.arcadeActive || text == "" {
		return
	}
	c.notice = text
	c.driver.Timers.Cancel(c.noticeTimer)
	c.noticeTimer = c.driver.Timers.After(config.NoticeDuration, func() {
		c.notice = ""
		c.noticeTimer = 0
	})
}

// Navigate switches views. The starfield warps straight away, the view swaps
// after a short delay and idle shooting resumes a little later. Leaving the
// arcade abandons any run in progress.
func (c *Controller) Navigate(to View) {
	if to == c.view || c.transitioning {
		return
	}
	c.logger.Debug("navigating", "from", c.view, "to", to)
	if c.view == ViewArcade {
		c.arcade.Exit()
	}
	c.arcadeActive = to == ViewArcade
	if c.arcadeActive {
		c.clearNotice()
	}
	c.canShoot = false
	c.transitioning = true
	c.idle.SetWarp(true)
	c.driver.Timers.Cancel(c.resumeTimer)

	c.driver.Timers.After(config.WarpSwapDelay, func() {
		c.view = to
		c.transitioning = false
		c.idle.SetWarp(false)
		c.resumeTimer = c.driver.Timers.After(config.ShootResumeDelay, func() {
			c.canShoot = true
			c.resumeTimer = 0
		})
	})
}

func (c *Controller) clearNotice() {
	c.notice = ""
	c.driver.Timers.Cancel(c.noticeTimer)
	c.noticeTimer = 0
}

// Click handles a pointer click in logical coordinates.
func (c *Controller) Click(x, y float64) {
	if c.view == ViewArcade && !c.transitioning {
		c.arcade.PointerMove(x, y)
		c.arcade.Fire()
		return
	}
	if !c.canShoot || c.arcadeActive || c.transitioning {
		return
	}
	c.idle.Click(x, y)
}

// PointerMove records the pointer position for aiming.
func (c *Controller) PointerMove(x, y float64) {
	c.arcade.PointerMove(x, y)
}

// SetKey forwards a direction key to the arcade.
func (c *Controller) SetKey(d scene.Direction, down bool) {
	c.arcade.SetKey(d, down)
}

// Fire shoots in the arcade when a run is active.
func (c *Controller) Fire() {
	if c.view == ViewArcade {
		c.arcade.Fire()
	}
}

// Confirm starts, retries or replays an arcade run, and opens the arcade
// from the home view.
func (c *Controller) Confirm() {
	if c.transitioning {
		return
	}
	if c.view == ViewHome {
		c.Navigate(ViewArcade)
		return
	}
	if c.arcade.State() != scene.StatePlaying {
		c.arcade.Start()
	}
}

// Back returns to the home view.
func (c *Controller) Back() {
	c.Navigate(ViewHome)
}

// Toggle switches to the other view.
func (c *Controller) Toggle() {
	if c.view == ViewHome {
		c.Navigate(ViewArcade)
	} else {
		c.Navigate(ViewHome)
	}
}

// Resize updates the viewport of both scenes.
func (c *Controller) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == c.screen.Width && height == c.screen.Height {
		return
	}
	c.screen = object.Screen{Width: width, Height: height}
	c.idle.Resize(width, height)
	c.arcade.Resize(width, height)
}

// Close stops every scene timer. The controller must not be stepped afterwards.
func (c *Controller) Close() {
	c.arcade.Exit()
	c.idle.Stop()
}

// Draw paints the current view.
func (c *Controller) Draw(surf object.Surface) {
	if c.view == ViewArcade {
		c.arcade.Draw(surf)
		return
	}
	c.idle.Draw(surf)
}

// View returns the view on screen.
func (c *Controller) View() View { return c.view }

// Transitioning reports whether a view switch is in progress.
func (c *Controller) Transitioning() bool { return c.transitioning }

// CanShoot reports whether idle clicks are accepted.
func (c *Controller) CanShoot() bool { return c.canShoot }

// Notice returns the notification text, or "" when none is showing.
func (c *Controller) Notice() string { return c.notice }

// Kills returns the idle kill count.
func (c *Controller) Kills() int { return c.idle.Kills() }

// Arcade returns the arcade scene.
func (c *Controller) Arcade() *scene.Arcade { return c.arcade }

// Idle returns the idle scene.
func (c *Controller) Idle() *scene.Idle { return c.idle }

// Screen returns the logical viewport.
func (c *Controller) Screen() object.Screen { return c.screen }

// Now returns the controller's timeline position.
func (c *Controller) Now() time.Duration { return c.driver.Now() }
