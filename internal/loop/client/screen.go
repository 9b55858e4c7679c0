package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/neonfield/internal/loop"
	"github.com/tomz197/neonfield/internal/loop/config"
	"github.com/tomz197/neonfield/internal/scene"
)

// overlay identifies which set of text elements is drawn over the canvas.
type overlay int

const (
	overlayHome overlay = iota
	overlayArcadeIdle
	overlayPlaying
	overlayWon
	overlayDead
	overlayTransition
	overlayInactive
	overlayShutdown
)

// styles holds the lipgloss styles bound to this client's renderer.
type styles struct {
	title  lipgloss.Style
	subtle lipgloss.Style
	hud    lipgloss.Style
	accent lipgloss.Style
	danger lipgloss.Style
	notice lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffc800")),
		subtle: r.NewStyle().Foreground(lipgloss.Color("#7a6a9a")),
		hud:    r.NewStyle().Foreground(lipgloss.Color("#00ffe0")),
		accent: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff3c8c")),
		danger: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff6a00")),
		notice: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#ff3c8c")).
			Foreground(lipgloss.Color("#f0e6ff")).
			Padding(0, 1),
	}
}

// currentOverlay picks the overlay for this frame.
func (c *Client) currentOverlay() overlay {
	switch {
	case c.state.shuttingDown:
		return overlayShutdown
	case c.state.isInactive:
		return overlayInactive
	case c.ctrl.Transitioning():
		return overlayTransition
	case c.ctrl.View() == loop.ViewHome:
		return overlayHome
	}
	switch c.ctrl.Arcade().State() {
	case scene.StatePlaying:
		return overlayPlaying
	case scene.StateWon:
		return overlayWon
	case scene.StateDead:
		return overlayDead
	default:
		return overlayArcadeIdle
	}
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On overlay transitions, do a full terminal clear so text from the
	// previous overlay doesn't persist on screen.
	current := c.currentOverlay()
	if current != c.state.prevOverlay {
		c.chunkWriter.Clear()
		c.state.prevOverlay = current
	}

	c.canvas.Clear()
	if current != overlayShutdown {
		c.ctrl.Draw(c.canvas)
	}

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawUI(current)

	return c.chunkWriter.Flush()
}

// drawUI draws the text overlay on top of the rendered canvas.
func (c *Client) drawUI(o overlay) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	switch o {
	case overlayShutdown:
		c.drawShutdownScreen(centerX, centerY)
	case overlayInactive:
		c.drawInactivityScreen(centerX, centerY)
	case overlayHome:
		c.drawHomeHUD(termWidth, termHeight)
	case overlayArcadeIdle:
		c.drawArcadeStart(centerX, centerY)
	case overlayPlaying:
		c.drawPlayingHUD(termWidth, termHeight)
	case overlayWon, overlayDead:
		c.drawArcadeResult(centerX, centerY, o == overlayWon)
	}
}

// drawHomeHUD draws the ambient view's counters, help line and notice.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawHomeHUD(termWidth, termHeight int) {
	s := c.styles
	c.chunkWriter.Text(2, 1, s.title.Render("NEONFIELD"))

	stats := c.hub.Stats()
	kills := s.hud.Render(fmt.Sprintf("Destroyed: %-6d", c.ctrl.Kills()))
	c.chunkWriter.Text(termWidth-lipgloss.Width(kills)-1, 1, kills)

	pilots := s.subtle.Render(fmt.Sprintf("Pilots online: %-4d", stats.Sessions))
	c.chunkWriter.Text(termWidth-lipgloss.Width(pilots)-1, termHeight, pilots)

	help := s.subtle.Render("click: shoot   2/tab: arcade   q: quit")
	c.chunkWriter.Text(2, termHeight, help)

	if notice := c.ctrl.Notice(); notice != "" {
		maxWidth := min(termWidth-6, 60)
		if maxWidth < 10 {
			return
		}
		box := s.notice.Width(maxWidth).Render(notice)
		c.chunkWriter.Block((termWidth-lipgloss.Width(box))/2+1, termHeight-lipgloss.Height(box)-1, box)
	}
}

// drawArcadeStart draws the arcade title and controls.
func (c *Client) drawArcadeStart(centerX, centerY int) {
	s := c.styles
	titleArt := []string{
		` _  _ ___ ___  _  _    ___ _   _   ___ _  _ `,
		`| \| | __/ _ \| \| |  | _ \ | | | / __| || |`,
		`| .  | _| (_) | .  |  |  _/ |_| |_\__ \ __ |`,
		`|_|\_|___\___/|_|\_|  |_|  \___/(_)___/_||_|`,
	}
	top := centerY - 7
	c.chunkWriter.Block(centerX-lipgloss.Width(titleArt[0])/2, top, s.title.Render(strings.Join(titleArt, "\n")))

	c.chunkWriter.Centered(centerX, top+len(titleArt)+1,
		s.subtle.Render(fmt.Sprintf("~ survive %d seconds ~", config.ArcadeDurationSeconds)))

	controls := []string{
		"W A S D / arrows . . Move",
		"Mouse  . . . . . . . Aim",
		"Click / SPACE  . . . Shoot",
		"ESC / 1  . . . . . . Home",
	}
	for i, line := range controls {
		c.chunkWriter.Centered(centerX, top+len(titleArt)+3+i, line)
	}

	// Blinking start prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		c.chunkWriter.Centered(centerX, top+len(titleArt)+len(controls)+4, s.accent.Render(">>  Press ENTER to Start  <<"))
	}
}

// drawPlayingHUD draws lives, countdown and hit counter.
func (c *Client) drawPlayingHUD(termWidth, termHeight int) {
	s := c.styles
	hud := c.ctrl.Arcade().HUD()
	c.chunkWriter.Text(2, 1, s.accent.Render(fmt.Sprintf("%-6s", hud.Lives)))

	timer := s.title.Render(hud.Timer)
	c.chunkWriter.Text(termWidth/2-lipgloss.Width(timer)/2, 1, timer)

	hits := s.hud.Render(fmt.Sprintf("%-10s", hud.Hits))
	c.chunkWriter.Text(termWidth-lipgloss.Width(hits)-1, 1, hits)

	if c.ctrl.Arcade().Starting() {
		c.chunkWriter.Centered(termWidth/2, termHeight/2, s.subtle.Render("get ready"))
	}
}

// drawArcadeResult draws the won or dead screen.
func (c *Client) drawArcadeResult(centerX, centerY int, won bool) {
	s := c.styles
	a := c.ctrl.Arcade()
	if won {
		c.chunkWriter.Centered(centerX, centerY-2, s.title.Render("YOU SURVIVED"))
	} else {
		c.chunkWriter.Centered(centerX, centerY-2, s.danger.Render("SHIP DESTROYED"))
		c.chunkWriter.Centered(centerX, centerY-1, s.subtle.Render(fmt.Sprintf("%d seconds left on the clock", a.TimeLeft())))
	}
	c.chunkWriter.Centered(centerX, centerY+1, s.hud.Render(fmt.Sprintf("Hits: %d", a.Hits())))
	c.chunkWriter.Centered(centerX, centerY+3, "Press ENTER to play again, ESC for home")
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	s := c.styles
	c.chunkWriter.Centered(centerX, centerY-2, s.danger.Render("INACTIVITY WARNING"))

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	c.chunkWriter.Centered(centerX, centerY, msg)
	c.chunkWriter.Centered(centerX, centerY+2, s.subtle.Render("Press any key to continue"))
}

// drawShutdownScreen draws the server shutdown notice.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	s := c.styles
	c.chunkWriter.Centered(centerX, centerY-2, s.danger.Render("SERVER SHUTTING DOWN"))

	msg := fmt.Sprintf("Disconnecting in %d seconds...", int(c.state.shutdownTimer)+1)
	c.chunkWriter.Centered(centerX, centerY, fmt.Sprintf("%-32s", msg))
	c.chunkWriter.Centered(centerX, centerY+2, "Thanks for flying!")
}
