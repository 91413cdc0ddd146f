// Package core provides fundamental types and utilities for the arena platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect represents an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectAround returns the cell rectangle covered by a sprite of size w x h
// centred at (cx, cy). Centre coordinates are continuous, so a 1x1 sprite
// centred at (3.5, 2.5) covers exactly cell (3, 2).
func RectAround(cx, cy float64, w, h int) Rect {
	x := int(math.Floor(cx - float64(w)/2 + 0.5))
	y := int(math.Floor(cy - float64(h)/2 + 0.5))
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Overlaps reports whether two boxes given by centre and full extents
// overlap on every axis. Touching edges do not count as overlap.
func Overlaps(centerA, sizeA, centerB, sizeB []float64) bool {
	n := min(len(centerA), len(centerB))
	for i := range n {
		reach := (sizeA[i] + sizeB[i]) / 2
		if math.Abs(centerA[i]-centerB[i]) >= reach {
			return false
		}
	}
	return n > 0
}
