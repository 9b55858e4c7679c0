package client

import (
	"time"

	"github.com/tomz197/neonfield/internal/draw"
)

// ClientState holds per-connection state that lives outside the scenes.
type ClientState struct {
	termSizeFunc  draw.TermSizeFunc // Function to get terminal size
	Running       bool              // Client loop running
	delta         time.Duration     // Frame delta time
	shuttingDown  bool              // Server announced shutdown
	shutdownTimer float64           // Countdown before auto-disconnect on shutdown
	isInactive    bool              // Whether the client is in inactive warning state
	prevOverlay   overlay           // Overlay drawn last frame
	reportedKills int               // Kill count last reported to the hub
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Running: true,
	}
}
