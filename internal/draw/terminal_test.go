package draw

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestChunkWriterTextFollowsCanvasOffset(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.SetOffset(2, 3)
	c.Render(io.Discard)

	var out bytes.Buffer
	cw := NewChunkWriter(&out, c)
	if w := cw.Text(1, 1, "hi"); w != 2 {
		t.Fatalf("expected width 2, got %d", w)
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "\033[4;3Hhi" {
		t.Fatalf("unexpected overlay bytes %q", got)
	}

	var repaint bytes.Buffer
	c.Render(&repaint)
	if got := repaint.String(); got != "\033[4;3H \033[4;4H " {
		t.Fatalf("expected the text cells to be repainted, got %q", got)
	}
}

func TestChunkWriterDropsRowsOutsideCanvas(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	var out bytes.Buffer
	cw := NewChunkWriter(&out, c)

	if w := cw.Text(1, 0, "x"); w != 0 {
		t.Fatalf("row 0 should be dropped, got width %d", w)
	}
	if w := cw.Text(1, 6, "x"); w != 0 {
		t.Fatalf("row past the canvas should be dropped, got width %d", w)
	}
	cw.Flush()
	if out.Len() != 0 {
		t.Fatalf("expected nothing written, got %q", out.String())
	}
}

func TestChunkWriterBlockAndCentered(t *testing.T) {
	c := NewScaledCanvas(20, 5, 20, 10)
	var out bytes.Buffer
	cw := NewChunkWriter(&out, c)

	cw.Block(-3, 2, "ab\ncd")
	cw.Centered(10, 5, "four")
	cw.Flush()

	want := "\033[2;1Hab\033[3;1Hcd\033[5;8Hfour"
	if got := out.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestChunkWriterFlushSendsWholeFrameOnce(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	var out bytes.Buffer
	cw := NewChunkWriter(&out, c)

	big := strings.Repeat("x", maxChunkSize*3+7)
	cw.Write([]byte(big))
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if out.String() != big {
		t.Fatalf("expected %d bytes, got %d", len(big), out.Len())
	}

	out.Reset()
	cw.Flush()
	if out.Len() != 0 {
		t.Fatalf("second flush should be empty, got %d bytes", out.Len())
	}
}

func TestChunkWriterClearForcesRepaint(t *testing.T) {
	c := NewScaledCanvas(2, 1, 2, 2)
	c.Render(io.Discard)

	var out bytes.Buffer
	cw := NewChunkWriter(&out, c)
	cw.Clear()
	c.Render(cw)
	cw.Flush()

	if got := out.String(); got != "\033[H\033[2J\033[1;1H \033[1;2H " {
		t.Fatalf("unexpected frame %q", got)
	}
}

func TestPlayModeSequences(t *testing.T) {
	var out bytes.Buffer
	EnterPlayMode(&out)
	if !strings.Contains(out.String(), "\033[?25l") || !strings.Contains(out.String(), "\033[?1006h") {
		t.Fatalf("enter should hide the cursor and enable SGR mouse, got %q", out.String())
	}
	out.Reset()
	ExitPlayMode(&out)
	if !strings.Contains(out.String(), "\033[?25h") || !strings.Contains(out.String(), "\033[?1003l") {
		t.Fatalf("exit should restore the cursor and mouse, got %q", out.String())
	}
}
