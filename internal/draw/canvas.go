package draw

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/muesli/termenv"
)

// Canvas is a colour drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int      // Actual terminal columns
	termHeight     int      // Actual terminal rows
	subPixelHeight int      // termHeight * 2
	pixels         []uint16 // Flat slice: [y * termWidth + x] - palette index, 0 if empty
	shown          []uint32 // Per cell: what the terminal currently shows (top<<16 | bottom)

	// Scaling from logical to pixel coordinates
	logicalWidth  float64 // Target/logical width
	logicalHeight float64 // Target/logical height
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Colour palette. Index 0 is reserved for "no pixel".
	profile  termenv.Profile
	palette  []paletteEntry
	colorIdx map[color.RGBA]uint16

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder // Buffer for batching render output
	scaledBuf       []Point         // Reusable buffer for fillPolygon scaled points
	intersectionBuf []float64       // Reusable buffer for scanline intersections
}

// paletteEntry caches the SGR parameters for one terminal colour.
type paletteEntry struct {
	fg string
	bg string
}

// minShade keeps very translucent colours visible on a black terminal.
const minShade = 0.2

// NewCanvas creates a canvas for the given terminal dimensions.
// The canvas has 2x vertical resolution (height*2 sub-pixels).
// No scaling is applied (1:1 mapping).
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		profile:       termenv.ANSI256,
		palette:       []paletteEntry{{}},
		colorIdx:      make(map[color.RGBA]uint16),
	}
	c.Resize(termWidth, termHeight)
	return c
}

// SetColorProfile changes the terminal colour profile used to encode pixels.
func (c *Canvas) SetColorProfile(p termenv.Profile) {
	c.profile = p
	c.palette = c.palette[:1]
	clear(c.colorIdx)
	c.Clear()
	c.ForceRedraw()
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	subPixelHeight := termHeight * 2

	// Reallocate if size changed
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]uint16, subPixelHeight*termWidth)
		c.shown = make([]uint32, termWidth*termHeight)
		c.ForceRedraw()
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.updateScale()
}

// SetLogicalSize changes the logical coordinate space mapped onto the terminal.
func (c *Canvas) SetLogicalSize(width, height float64) {
	c.logicalWidth = width
	c.logicalHeight = height
	c.updateScale()
}

func (c *Canvas) updateScale() {
	if c.logicalWidth > 0 {
		c.scaleX = float64(c.termWidth) / c.logicalWidth
	}
	if c.logicalHeight > 0 {
		c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
	}
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// unknownCell marks a cell whose on-screen content is not known.
const unknownCell = ^uint32(0)

// ForceRedraw makes the next Render repaint every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	for i := range c.shown {
		c.shown[i] = unknownCell
	}
}

// MarkTextDirty records that text was written over n cells starting at the
// 1-based canvas position (col, row), so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := col - 1; x < col-1+n; x++ {
		if x >= 0 && x < c.termWidth {
			c.shown[r*c.termWidth+x] = unknownCell
		}
	}
}

// colorIndex returns the palette index for clr, registering it on first use.
// Alpha is folded into the colour since the terminal background is black.
func (c *Canvas) colorIndex(clr color.RGBA) uint16 {
	if idx, ok := c.colorIdx[clr]; ok {
		return idx
	}

	shade := minShade + (1-minShade)*float64(clr.A)/255
	hex := fmt.Sprintf("#%02x%02x%02x",
		uint8(float64(clr.R)*shade),
		uint8(float64(clr.G)*shade),
		uint8(float64(clr.B)*shade),
	)
	tc := c.profile.Color(hex)
	entry := paletteEntry{}
	if tc != nil {
		entry.fg = tc.Sequence(false)
		entry.bg = tc.Sequence(true)
	}

	idx := uint16(len(c.palette))
	c.palette = append(c.palette, entry)
	c.colorIdx[clr] = idx
	return idx
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, idx uint16) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = idx
	}
}

// pixelAt returns the palette index at terminal pixel coordinates, 0 if unset.
func (c *Canvas) pixelAt(x, y int) uint16 {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		return c.pixels[y*c.termWidth+x]
	}
	return 0
}

// isSet reports whether the pixel covering logical coordinates (x, y) is drawn.
func (c *Canvas) isSet(x, y float64) bool {
	return c.pixelAt(int(math.Round(x*c.scaleX)), int(math.Round(y*c.scaleY))) != 0
}

// setFloat sets a pixel using float logical coordinates (applies scaling).
func (c *Canvas) setFloat(x, y float64, clr color.RGBA) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	c.setPixel(px, py, c.colorIndex(clr))
}

// Line draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) Line(p1, p2 Point, clr color.RGBA) {
	c.drawLine(p1, p2, c.colorIndex(clr))
}

func (c *Canvas) drawLine(p1, p2 Point, idx uint16) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, idx)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// Polygon draws a closed polygon outline in stroke. A fill colour with
// non-zero alpha also fills the interior using a scanline pass.
func (c *Canvas) Polygon(points []Point, stroke, fill color.RGBA) {
	if len(points) < 3 {
		return
	}

	if fill.A > 0 {
		c.fillPolygon(points, c.colorIndex(fill))
	}

	idx := c.colorIndex(stroke)
	n := len(points)
	for i := 0; i < n; i++ {
		c.drawLine(points[i], points[(i+1)%n], idx)
	}
}

// fillPolygon fills a polygon using scanline algorithm.
// Works in pixel space for proper scaling.
func (c *Canvas) fillPolygon(points []Point, idx uint16) {
	// Reuse or grow scaled points buffer
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	for i, p := range points {
		scaled[i] = Point{
			X: p.X * c.scaleX,
			Y: p.Y * c.scaleY,
		}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	yStart := int(math.Floor(minY))
	yEnd := int(math.Ceil(maxY))

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]

		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				x := p1.X + t*(p2.X-p1.X)
				intersections = append(intersections, x)
			}
		}

		// Store back in case it grew
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i]))
			xEnd := int(math.Floor(intersections[i+1]))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, idx)
			}
		}
	}
}

// Dot draws a filled circle. Radii smaller than a pixel draw a single pixel.
func (c *Canvas) Dot(center Point, radius float64, clr color.RGBA) {
	idx := c.colorIndex(clr)
	cx := center.X * c.scaleX
	cy := center.Y * c.scaleY
	rx := radius * c.scaleX
	ry := radius * c.scaleY

	if rx < 1 && ry < 1 {
		c.setPixel(int(math.Round(cx)), int(math.Round(cy)), idx)
		return
	}

	for y := int(math.Floor(cy - ry)); y <= int(math.Ceil(cy+ry)); y++ {
		for x := int(math.Floor(cx - rx)); x <= int(math.Ceil(cx+rx)); x++ {
			nx := (float64(x) - cx) / rx
			ny := (float64(y) - cy) / ry
			if nx*nx+ny*ny <= 1 {
				c.setPixel(x, y, idx)
			}
		}
	}
}

// Glow paints a soft radial haze behind whatever is drawn later.
// Density falls off linearly from the centre; only empty pixels are touched.
func (c *Canvas) Glow(center Point, radius float64, clr color.RGBA) {
	if radius <= 0 || clr.A == 0 {
		return
	}
	cx := center.X * c.scaleX
	cy := center.Y * c.scaleY
	rx := radius * c.scaleX
	ry := radius * c.scaleY
	if rx <= 0 || ry <= 0 {
		return
	}

	idx := c.colorIndex(color.RGBA{R: clr.R, G: clr.G, B: clr.B, A: 0})
	density := float64(clr.A) / 255

	for y := int(math.Floor(cy - ry)); y <= int(math.Ceil(cy+ry)); y++ {
		for x := int(math.Floor(cx - rx)); x <= int(math.Ceil(cx+rx)); x++ {
			nx := (float64(x) - cx) / rx
			ny := (float64(y) - cy) / ry
			d := math.Sqrt(nx*nx + ny*ny)
			if d >= 1 || c.pixelAt(x, y) != 0 {
				continue
			}
			if ditherValue(x, y) < (1-d)*density {
				c.setPixel(x, y, idx)
			}
		}
	}
}

// ditherValue returns a stable pseudo-random value in [0,1) for a pixel.
func ditherValue(x, y int) float64 {
	h := uint32(x)*73856093 ^ uint32(y)*19349663
	h ^= h >> 13
	h *= 0x5bd1e995
	h ^= h >> 15
	return float64(h%1000) / 1000
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the canvas to the writer using coloured half-block characters.
// A cell with two different colours draws the upper half in the foreground
// colour over the lower half in the background colour. Only cells that changed
// since the previous Render are written; cells that became empty are blanked.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 4)

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := (row*2 + 1) * c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]
			cell := uint32(top)<<16 | uint32(bottom)
			idx := row*c.termWidth + col
			if c.shown[idx] == cell {
				continue
			}
			c.shown[idx] = cell

			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1+c.offsetRow, col+1+c.offsetCol)

			switch {
			case top == 0 && bottom == 0:
				c.renderBuf.WriteByte(' ')
			case top != 0 && bottom != 0 && top != bottom:
				c.writeCell(c.palette[top].fg, c.palette[bottom].bg, BlockUpperHalf)
			case top != 0 && bottom != 0:
				c.writeCell(c.palette[top].fg, "", BlockFull)
			case top != 0:
				c.writeCell(c.palette[top].fg, "", BlockUpperHalf)
			default:
				c.writeCell(c.palette[bottom].fg, "", BlockLowerHalf)
			}
		}
	}

	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

func (c *Canvas) writeCell(fg, bg string, ch rune) {
	if fg != "" || bg != "" {
		c.renderBuf.WriteString("\033[")
		c.renderBuf.WriteString(fg)
		if fg != "" && bg != "" {
			c.renderBuf.WriteByte(';')
		}
		c.renderBuf.WriteString(bg)
		c.renderBuf.WriteByte('m')
	}
	c.renderBuf.WriteRune(ch)
	if fg != "" || bg != "" {
		c.renderBuf.WriteString("\033[0m")
	}
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder

	if hasV {
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, strings.Repeat("─", c.termWidth))
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, strings.Repeat("─", c.termWidth))
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, strings.Repeat("─", c.termWidth))
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, strings.Repeat("─", c.termWidth))
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	io.WriteString(w, buf.String())
}

// LogicalWidth returns the logical width (target resolution).
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height (target resolution).
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to 1-based canvas position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}

// TerminalToLogical converts a 1-based absolute terminal cell (as reported by
// mouse events) to logical coordinates. It is the inverse of LogicalToTerminal
// once the canvas offset is applied.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64) {
	px := float64(col - 1 - c.offsetCol)
	py := float64((row - 1 - c.offsetRow) * 2)
	if c.scaleX > 0 {
		x = px / c.scaleX
	}
	if c.scaleY > 0 {
		y = py / c.scaleY
	}
	return x, y
}
