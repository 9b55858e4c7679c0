// Package client runs one viewer's scene in a terminal: it reads keys and
// mouse reports, steps the controller and renders the canvas plus text
// overlays.
package client

import (
	"bufio"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/tomz197/neonfield/internal/draw"
	"github.com/tomz197/neonfield/internal/input"
	"github.com/tomz197/neonfield/internal/loop"
	"github.com/tomz197/neonfield/internal/loop/config"
	"github.com/tomz197/neonfield/internal/loop/server"
	"github.com/tomz197/neonfield/internal/scene"
)

// Client handles rendering and input for a single connection.
type Client struct {
	hub          server.Hub
	handle       *server.ClientHandle
	state        *ClientState
	ctrl         *loop.Controller
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	styles       styles
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Facts        []string
	Rand         *rand.Rand
	Logger       *log.Logger
	// ColorProfile defaults to 256 colours. Sessions without a local tty
	// can't be detected, so callers pick the profile.
	ColorProfile *termenv.Profile
}

// NewClient creates a new client registered with the given hub.
func NewClient(hub server.Hub, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	profile := termenv.ANSI256
	if opts.ColorProfile != nil {
		profile = *opts.ColorProfile
	}

	handle := hub.RegisterClient(opts.Username)
	state := NewClientState()
	state.termSizeFunc = termSizeFunc

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, err := termSizeFunc()
	if err != nil {
		termWidth, termHeight = 80, 24
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	logicalWidth, logicalHeight := logicalSize(renderWidth, renderHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, logicalWidth, logicalHeight)
	canvas.SetColorProfile(profile)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, canvas)

	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(profile)

	ctrl := loop.NewController(loop.Options{
		Width:  logicalWidth,
		Height: logicalHeight,
		Rand:   opts.Rand,
		Facts:  opts.Facts,
		Logger: logger.With("user", opts.Username),
	})

	return &Client{
		hub:          hub,
		handle:       handle,
		state:        state,
		ctrl:         ctrl,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		styles:       newStyles(renderer),
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		logger:       logger,
	}
}

// logicalSize maps a render area in cells to the logical viewport.
func logicalSize(cols, rows int) (float64, float64) {
	return float64(cols * config.UnitsPerSubPixel), float64(rows * 2 * config.UnitsPerSubPixel)
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.EnterPlayMode(c.writer)
	defer draw.ExitPlayMode(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = min(frameStart.Sub(lastTime), config.MaxFrameDelta)
		lastTime = frameStart

		// Process input
		c.processInput()

		// Check for server events
		c.processServerEvents()

		// Handle screen resize
		c.updateScreen()

		if c.state.shuttingDown {
			c.updateShutdownState()
		}

		// Advance the scenes
		c.ctrl.Step(c.state.delta)
		c.reportKills()

		// Draw frame
		if err := c.drawFrame(); err != nil {
			c.ctrl.Close()
			c.hub.UnregisterClient(c.handle.ID)
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}

	c.ctrl.Close()
	c.hub.UnregisterClient(c.handle.ID)

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and routes it to the controller.
func (c *Client) processInput() {
	in := input.ReadInput(c.inputStream)

	if in.Active() {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive session", "user", c.username)
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if in.Quit {
		c.state.Running = false
		return
	}
	if c.state.shuttingDown {
		return
	}

	c.applyInput(in)
}

// applyInput maps one frame of input onto the controller.
func (c *Client) applyInput(in input.Input) {
	switch {
	case in.Number == 1:
		c.ctrl.Navigate(loop.ViewHome)
	case in.Number == 2:
		c.ctrl.Navigate(loop.ViewArcade)
	case in.Tab:
		c.ctrl.Toggle()
	case in.Escape:
		c.ctrl.Back()
	}
	if in.Enter {
		prev := c.ctrl.Arcade().State()
		c.ctrl.Confirm()
		if prev != scene.StatePlaying && c.ctrl.Arcade().State() == scene.StatePlaying {
			// A key held while pressing enter shouldn't carry into the run
			input.ResetKeyInput(c.inputStream)
			in.Up, in.Down, in.Left, in.Right = false, false, false, false
		}
	}

	c.ctrl.SetKey(scene.DirUp, in.Up)
	c.ctrl.SetKey(scene.DirDown, in.Down)
	c.ctrl.SetKey(scene.DirLeft, in.Left)
	c.ctrl.SetKey(scene.DirRight, in.Right)

	if in.Pointer != nil {
		x, y := c.canvas.TerminalToLogical(in.Pointer.Col, in.Pointer.Row)
		c.ctrl.PointerMove(x, y)
	}
	for _, click := range in.Clicks {
		if click.Button != input.ButtonLeft {
			continue
		}
		x, y := c.canvas.TerminalToLogical(click.Col, click.Row)
		c.ctrl.Click(x, y)
	}
	for i := 0; i < in.Fire; i++ {
		c.ctrl.Fire()
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				c.state.shuttingDown = true
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
				c.ctrl.Back()
			}
		default:
			return
		}
	}
}

// reportKills forwards a changed kill count to the hub.
func (c *Client) reportKills() {
	if kills := c.ctrl.Kills(); kills != c.state.reportedKills {
		c.state.reportedKills = kills
		c.hub.ReportKills(c.handle.ID, kills)
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)

	w, h := logicalSize(renderWidth, renderHeight)
	c.canvas.SetLogicalSize(w, h)
	c.ctrl.Resize(w, h)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if renderWidth > config.MaxTermWidth {
		renderWidth = config.MaxTermWidth
	}
	if renderHeight > config.MaxTermHeight {
		renderHeight = config.MaxTermHeight
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
