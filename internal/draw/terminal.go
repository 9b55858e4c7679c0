package draw

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ChunkWriter collects one frame of terminal output: the canvas diff plus any
// text overlays written on top of it. Overlay positions are canvas-relative and
// pick up the canvas offset, and every overlay cell is marked dirty on the
// canvas so the next frame repaints whatever the text covered.
type ChunkWriter struct {
	canvas *Canvas
	frame  strings.Builder
	out    *bufio.Writer
}

// NewChunkWriter returns a ChunkWriter that overlays text on canvas and sends
// frames to w.
func NewChunkWriter(w io.Writer, canvas *Canvas) *ChunkWriter {
	return &ChunkWriter{canvas: canvas, out: bufio.NewWriterSize(w, 8192)}
}

// Write appends raw bytes to the frame. Canvas.Render writes through it.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.frame.Write(p)
}

// Clear queues a full terminal clear and forces the canvas to repaint.
func (cw *ChunkWriter) Clear() {
	ClearScreen(&cw.frame)
	cw.canvas.ForceRedraw()
}

// Text writes a single line at the 1-based canvas cell (col, row) and returns
// its display width. Rows outside the canvas are dropped.
func (cw *ChunkWriter) Text(col, row int, text string) int {
	if row < 1 || row > cw.canvas.TerminalHeight() {
		return 0
	}
	if col < 1 {
		col = 1
	}
	fmt.Fprintf(&cw.frame, "\033[%d;%dH%s", row+cw.canvas.OffsetRow(), col+cw.canvas.OffsetCol(), text)
	width := lipgloss.Width(text)
	cw.canvas.MarkTextDirty(col, row, width)
	return width
}

// Centered writes text horizontally centered on centerX.
func (cw *ChunkWriter) Centered(centerX, row int, text string) {
	cw.Text(centerX-lipgloss.Width(text)/2, row, text)
}

// Block writes a multi-line lipgloss block with its top-left corner at
// (col, row). Each line keeps its own escape sequences.
func (cw *ChunkWriter) Block(col, row int, block string) {
	for i, line := range strings.Split(block, "\n") {
		cw.Text(col, row+i, line)
	}
}

// Flush sends the frame to the terminal in maxChunkSize pieces.
func (cw *ChunkWriter) Flush() error {
	data := cw.frame.String()
	cw.frame.Reset()
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.out.WriteString(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return cw.out.Flush()
}

var _ io.Writer = (*ChunkWriter)(nil)

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and homes the cursor.
func ClearScreen(w io.Writer) {
	io.WriteString(w, "\033[H\033[2J")
}

// EnterPlayMode hides the cursor and turns on any-motion mouse tracking with
// SGR coordinates, so clicks and pointer moves arrive as ESC [ < b ; x ; y M.
func EnterPlayMode(w io.Writer) {
	io.WriteString(w, "\033[?25l\033[?1003h\033[?1006h")
}

// ExitPlayMode undoes EnterPlayMode.
func ExitPlayMode(w io.Writer) {
	io.WriteString(w, "\033[?1006l\033[?1003l\033[?25h")
}
