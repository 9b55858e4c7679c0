// Package physics provides collision detection and distance utilities.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point lies strictly inside radius of a target position.
// A point exactly on the boundary is a miss.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	if radius <= 0 {
		return false
	}
	return DistanceSquared(px, py, cx, cy) < radius*radius
}

// CirclesOverlap checks if two circles overlap.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// Direction returns the unit vector pointing from (fromX, fromY) to (toX, toY).
// Coincident points yield (1, 0) so callers never divide by zero.
func Direction(fromX, fromY, toX, toY float64) (float64, float64) {
	dx := toX - fromX
	dy := toY - fromY
	d := math.Sqrt(dx*dx + dy*dy)
	if d == 0 {
		return 1, 0
	}
	return dx / d, dy / d
}
