// Package object defines the moving entities shared by the idle scene and
// the arcade: field objects, projectiles, burst effects, the player craft
// and the background starfield.
package object

import (
	"image/color"

	"github.com/tomz197/neonfield/internal/draw"
)

// Surface is anything entities can paint themselves onto.
// The terminal canvas and the desktop window both implement it.
type Surface interface {
	// Polygon draws a closed outline; a fill with non-zero alpha fills the interior.
	Polygon(points []draw.Point, stroke, fill color.RGBA)
	Line(p1, p2 draw.Point, clr color.RGBA)
	Dot(center draw.Point, radius float64, clr color.RGBA)
	// Glow paints a soft radial haze that later drawing sits on top of.
	Glow(center draw.Point, radius float64, clr color.RGBA)
}

// Screen represents the viewport dimensions in logical units.
type Screen struct {
	Width  float64
	Height float64
}

// Center returns the middle of the screen.
func (s Screen) Center() (float64, float64) {
	return s.Width / 2, s.Height / 2
}

// Contains reports whether (x, y) lies inside the screen grown by margin on every side.
func (s Screen) Contains(x, y, margin float64) bool {
	return x >= -margin && x <= s.Width+margin && y >= -margin && y <= s.Height+margin
}

// ShouldRenderBlink returns true if an object with remaining protection/invincibility
// time should be rendered this frame (for blinking effect).
// Returns true always if remainingTime <= 0 (no protection).
func ShouldRenderBlink(remainingTime float64, frequency float64) bool {
	if remainingTime <= 0 {
		return true
	}
	// Blink based on frequency (e.g., 5.0 = 5Hz, 10.0 = 10Hz)
	phase := int(remainingTime * frequency)
	return phase%2 != 0
}

// withAlpha returns clr with its alpha channel replaced by a (0..1).
func withAlpha(clr color.RGBA, a float64) color.RGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	clr.A = uint8(a * 255)
	return clr
}
