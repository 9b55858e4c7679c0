package object

import "image/color"

// Neon palette shared by both scenes.
var (
	ColorAmber    = color.RGBA{R: 255, G: 184, B: 0, A: 255}
	ColorOrange   = color.RGBA{R: 255, G: 107, B: 0, A: 255}
	ColorPink     = color.RGBA{R: 255, G: 45, B: 120, A: 255}
	ColorCyan     = color.RGBA{R: 0, G: 229, B: 255, A: 255}
	ColorNeon     = color.RGBA{R: 57, G: 255, B: 20, A: 255}
	ColorBackdrop = color.RGBA{R: 6, G: 2, B: 21, A: 242}
)

// Burst colour sets. The idle scene uses a cyan accent, the arcade a green one.
var (
	IdleBurstColors   = []color.RGBA{ColorAmber, ColorOrange, ColorPink, ColorCyan}
	ArcadeBurstColors = []color.RGBA{ColorAmber, ColorOrange, ColorPink, ColorNeon}
)
