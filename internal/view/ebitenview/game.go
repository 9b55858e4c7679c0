// Package ebitenview shows the scenes in a desktop window.
package ebitenview

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/neonfield/internal/loop"
	"github.com/tomz197/neonfield/internal/loop/config"
	"github.com/tomz197/neonfield/internal/object"
	"github.com/tomz197/neonfield/internal/scene"
)

// Options configures the window game.
type Options struct {
	Facts  []string
	Rand   *rand.Rand
	Logger *log.Logger
}

// Game implements ebiten.Game around a scene controller.
type Game struct {
	ctrl    *loop.Controller
	surface surface
}

var _ ebiten.Game = (*Game)(nil)

// New creates the game at the default window size. Layout resizes it.
func New(opts Options) *Game {
	return &Game{
		ctrl: loop.NewController(loop.Options{
			Width:  config.DefaultViewWidth,
			Height: config.DefaultViewHeight,
			Rand:   opts.Rand,
			Facts:  opts.Facts,
			Logger: opts.Logger,
		}),
	}
}

// Update reads input and advances the scenes by one tick.
func (g *Game) Update() error {
	in := readFrame()
	if in.quit {
		g.ctrl.Close()
		return ebiten.Termination
	}
	in.apply(g.ctrl)
	g.ctrl.Step(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

// Draw paints the current view and the text overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(object.ColorBackdrop)
	g.surface.dst = screen
	g.ctrl.Draw(&g.surface)

	w := screen.Bounds().Dx()
	for i, line := range hudLines(g.ctrl) {
		ebitenutil.DebugPrintAt(screen, line.text, line.x(w), 8+i*16)
	}
}

// Layout keeps one logical unit per pixel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.ctrl.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// frameInput is one tick of window input.
type frameInput struct {
	quit, home, arcade, toggle, back, confirm bool
	fire                                      bool
	up, down, left, right                     bool
	pointerX, pointerY                        float64
	click                                     bool
}

func readFrame() frameInput {
	mx, my := ebiten.CursorPosition()
	return frameInput{
		quit:     inpututil.IsKeyJustPressed(ebiten.KeyQ),
		home:     inpututil.IsKeyJustPressed(ebiten.KeyDigit1),
		arcade:   inpututil.IsKeyJustPressed(ebiten.KeyDigit2),
		toggle:   inpututil.IsKeyJustPressed(ebiten.KeyTab),
		back:     inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		confirm:  inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		fire:     inpututil.IsKeyJustPressed(ebiten.KeySpace),
		up:       ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		down:     ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		left:     ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		right:    ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		pointerX: float64(mx),
		pointerY: float64(my),
		click:    inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}
}

// apply routes one tick of input to the controller.
func (in frameInput) apply(c *loop.Controller) {
	switch {
	case in.home:
		c.Navigate(loop.ViewHome)
	case in.arcade:
		c.Navigate(loop.ViewArcade)
	case in.toggle:
		c.Toggle()
	case in.back:
		c.Back()
	}
	if in.confirm {
		c.Confirm()
	}
	c.SetKey(scene.DirUp, in.up)
	c.SetKey(scene.DirDown, in.down)
	c.SetKey(scene.DirLeft, in.left)
	c.SetKey(scene.DirRight, in.right)
	c.PointerMove(in.pointerX, in.pointerY)
	if in.click {
		c.Click(in.pointerX, in.pointerY)
	}
	if in.fire {
		c.Fire()
	}
}

// hudLine is a line of overlay text, left or right aligned.
type hudLine struct {
	text  string
	right bool
}

// debugCharWidth is the width of ebitenutil's debug font.
const debugCharWidth = 6

func (l hudLine) x(screenWidth int) int {
	if l.right {
		return screenWidth - len(l.text)*debugCharWidth - 8
	}
	return 8
}

// debugGlyphs maps HUD symbols onto ASCII the debug font can draw.
var debugGlyphs = strings.NewReplacer("♥", "<3", "☆", "x")

// hudLines returns the overlay text for the current view.
func hudLines(c *loop.Controller) []hudLine {
	if c.Transitioning() {
		return nil
	}
	if c.View() == loop.ViewHome {
		lines := []hudLine{
			{text: "NEONFIELD"},
			{text: fmt.Sprintf("Destroyed: %d", c.Kills()), right: true},
			{text: "click: shoot   2/tab: arcade   q: quit"},
		}
		if n := c.Notice(); n != "" {
			lines = append(lines, hudLine{text: n})
		}
		return lines
	}

	a := c.Arcade()
	switch a.State() {
	case scene.StatePlaying:
		hud := a.HUD()
		return []hudLine{
			{text: debugGlyphs.Replace(hud.Lives) + "   " + hud.Timer},
			{text: hud.Hits, right: true},
		}
	case scene.StateWon:
		return []hudLine{{text: fmt.Sprintf("YOU SURVIVED   hits: %d   enter: again   esc: home", a.Hits())}}
	case scene.StateDead:
		return []hudLine{{text: fmt.Sprintf("SHIP DESTROYED   %ds left   hits: %d   enter: again   esc: home", a.TimeLeft(), a.Hits())}}
	default:
		return []hudLine{{text: fmt.Sprintf("ARCADE: survive %d seconds   wasd: move   mouse/space: shoot   enter: start", config.ArcadeDurationSeconds)}}
	}
}
