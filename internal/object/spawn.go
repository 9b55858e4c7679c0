package object

import (
	"math"
	"math/rand"
)

// Drift spawn parameters for the idle scene.
const (
	driftEdgeOffset  = 70.0
	driftInsetMargin = 80.0
	driftMinRadius   = 20.0
	driftRadiusRange = 30.0
	driftMinSpeedX   = 0.35
	driftSpeedXRange = 1.3
	driftSpeedYRange = 0.9
	driftSpinRange   = 0.022
	driftMinSides    = 7
	driftExtraSides  = 4
)

// Inbound spawn parameters for the arcade.
const (
	inboundEdgeOffset  = 40.0
	inboundAimJitter   = 200.0
	inboundMinSpeed    = 1.0
	inboundSpeedRange  = 1.4
	inboundMinRadius   = 16.0
	inboundRadiusRange = 22.0
	inboundSpinRange   = 0.04
	inboundMinSides    = 6
	inboundExtraSides  = 4
)

// SpawnDrift (re)initialises o as an idle drifter. With fromEdge it enters
// just beyond the right, top or bottom edge; otherwise it is placed inside
// the screen away from the borders. Drifters always travel leftwards.
func SpawnDrift(o *FieldObject, rng *rand.Rand, s Screen, fromEdge bool) {
	if fromEdge {
		switch rng.Intn(3) {
		case 0:
			o.X = s.Width + driftEdgeOffset
			o.Y = rng.Float64() * s.Height
		case 1:
			o.X = rng.Float64() * s.Width
			o.Y = -driftEdgeOffset
		default:
			o.X = rng.Float64() * s.Width
			o.Y = s.Height + driftEdgeOffset
		}
	} else {
		o.X = driftInsetMargin + rng.Float64()*(s.Width-2*driftInsetMargin)
		o.Y = driftInsetMargin + rng.Float64()*(s.Height-2*driftInsetMargin)
	}
	o.Radius = driftMinRadius + rng.Float64()*driftRadiusRange
	o.VX = -driftMinSpeedX - rng.Float64()*driftSpeedXRange
	o.VY = (rng.Float64() - 0.5) * driftSpeedYRange
	o.Angle = rng.Float64() * 2 * math.Pi
	o.RotationSpeed = (rng.Float64() - 0.5) * driftSpinRange
	o.Vertices = RandomShape(rng, driftMinSides, driftExtraSides)
	o.Pulse = rng.Float64() * 2 * math.Pi
	o.Alive = true
	o.Respawning = false
}

// SpawnInbound (re)initialises o just outside a random edge, heading roughly
// toward the middle of the screen.
func SpawnInbound(o *FieldObject, rng *rand.Rand, s Screen) {
	switch rng.Intn(4) {
	case 0:
		o.X, o.Y = rng.Float64()*s.Width, -inboundEdgeOffset
	case 1:
		o.X, o.Y = s.Width+inboundEdgeOffset, rng.Float64()*s.Height
	case 2:
		o.X, o.Y = rng.Float64()*s.Width, s.Height+inboundEdgeOffset
	default:
		o.X, o.Y = -inboundEdgeOffset, rng.Float64()*s.Height
	}
	cx, cy := s.Center()
	tx := cx + (rng.Float64()-0.5)*inboundAimJitter
	ty := cy + (rng.Float64()-0.5)*inboundAimJitter
	heading := math.Atan2(ty-o.Y, tx-o.X)
	speed := inboundMinSpeed + rng.Float64()*inboundSpeedRange
	o.VX = math.Cos(heading) * speed
	o.VY = math.Sin(heading) * speed
	o.Radius = inboundMinRadius + rng.Float64()*inboundRadiusRange
	o.Angle = rng.Float64() * 2 * math.Pi
	o.RotationSpeed = (rng.Float64() - 0.5) * inboundSpinRange
	o.Vertices = RandomShape(rng, inboundMinSides, inboundExtraSides)
	o.Pulse = rng.Float64() * 2 * math.Pi
	o.Alive = true
	o.Respawning = false
}
