package draw

import (
	"bytes"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

var orange = color.RGBA{R: 255, G: 140, B: 20, A: 255}

func TestPolygonOutlineAndFill(t *testing.T) {
	c := NewScaledCanvas(40, 20, 400, 400) // 10 logical units per pixel
	square := []Point{{100, 100}, {300, 100}, {300, 300}, {100, 300}}

	c.Polygon(square, orange, color.RGBA{})
	if !c.isSet(100, 100) {
		t.Fatal("outline corner not drawn")
	}
	if c.isSet(200, 200) {
		t.Fatal("unfilled polygon has interior pixels")
	}

	c.Clear()
	c.Polygon(square, orange, color.RGBA{R: 255, G: 107, A: 15})
	if !c.isSet(200, 200) {
		t.Fatal("filled polygon interior not drawn")
	}
}

func TestDotAndLine(t *testing.T) {
	c := NewScaledCanvas(100, 50, 100, 100)
	c.Dot(Point{X: 50, Y: 50}, 0.3, orange)
	if !c.isSet(50, 50) {
		t.Fatal("sub-pixel dot not drawn")
	}

	c.Line(Point{X: 0, Y: 10}, Point{X: 99, Y: 10}, orange)
	for x := 0.0; x < 99; x += 10 {
		if !c.isSet(x, 10) {
			t.Fatalf("line missing pixel at x=%v", x)
		}
	}
}

func TestGlowLeavesDrawnPixelsAlone(t *testing.T) {
	c := NewScaledCanvas(80, 40, 80, 80)
	c.Dot(Point{X: 40, Y: 40}, 0.2, orange)
	before := c.pixelAt(40, 40)

	c.Glow(Point{X: 40, Y: 40}, 30, color.RGBA{R: 128, B: 255, A: 255})
	if got := c.pixelAt(40, 40); got != before {
		t.Fatalf("glow overwrote drawn pixel: %d -> %d", before, got)
	}

	lit := 0
	for _, p := range c.pixels {
		if p != 0 {
			lit++
		}
	}
	if lit < 2 {
		t.Fatalf("glow drew nothing (lit=%d)", lit)
	}
}

func TestRenderEmitsColouredHalfBlocks(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.setFloat(2, 2, orange)
	c.setFloat(2, 3, color.RGBA{B: 255, A: 255})

	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()
	if !strings.Contains(out, string(BlockUpperHalf)) {
		t.Fatalf("expected split cell to use upper half block, got %q", out)
	}
	if !strings.Contains(out, "38;5;") || !strings.Contains(out, "48;5;") {
		t.Fatalf("expected 256-colour fg and bg sequences, got %q", out)
	}
}

func TestRenderAsciiProfileHasNoColour(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.SetColorProfile(termenv.Ascii)
	c.setFloat(1, 1, orange)

	var buf bytes.Buffer
	c.Render(&buf)
	if strings.Contains(buf.String(), "38;5;") {
		t.Fatalf("ascii profile emitted colour: %q", buf.String())
	}
}

func TestRenderOnlyWritesChanges(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.setFloat(4, 4, orange)

	var buf bytes.Buffer
	c.Render(&buf)
	buf.Reset()
	c.Render(&buf)
	if buf.Len() != 0 {
		t.Fatalf("expected unchanged frame to write nothing, got %q", buf.String())
	}

	c.Clear()
	c.Render(&buf)
	if got := buf.String(); got != "\033[3;5H " {
		t.Fatalf("expected the cleared cell to be blanked, got %q", got)
	}

	buf.Reset()
	c.MarkTextDirty(1, 1, 2)
	c.Render(&buf)
	if got := buf.String(); got != "\033[1;1H \033[1;2H " {
		t.Fatalf("expected text cells repainted, got %q", got)
	}
}

func TestTerminalToLogicalRoundTrip(t *testing.T) {
	c := NewScaledCanvas(160, 45, 1280, 720)
	c.SetOffset(3, 2)

	x, y := c.TerminalToLogical(3+81, 2+23)
	col, row := c.LogicalToTerminal(x, y)
	if col != 81 || row != 23 {
		t.Fatalf("round trip = (%d,%d), want (81,23)", col, row)
	}
	if math.Abs(x-640) > 1e-9 {
		t.Fatalf("x = %v, want 640", x)
	}
}
