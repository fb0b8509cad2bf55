// Package core provides the terminal-independent drawing primitives for the
// scene view. It has no Bubble Tea dependency so drawing stays testable.
package core

import "math"

// Rect is an axis-aligned area in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
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

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Inset shrinks the rectangle by n cells on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: max(r.W-2*n, 0), H: max(r.H-2*n, 0)}
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Projection maps scene coordinates (X right, Y up) to screen cells
// (column right, row down).
type Projection struct {
	OriginX int     // column of scene X = 0
	OriginY int     // row of scene Y = 0
	ScaleX  float64 // columns per scene unit
	ScaleY  float64 // rows per scene unit
}

// Project returns the cell for a scene position.
func (p Projection) Project(x, y float64) (col, row int) {
	col = p.OriginX + int(math.Round(x*p.ScaleX))
	row = p.OriginY - int(math.Round(y*p.ScaleY))
	return col, row
}

// FitProjection builds a projection that places scene X in
// [-halfWidth, halfWidth] across area and scene Y in [0, height] from the
// bottom row of area to its top row.
func FitProjection(area Rect, halfWidth, height float64) Projection {
	p := Projection{
		OriginX: area.X + area.W/2,
		OriginY: area.Bottom() - 1,
	}
	if halfWidth > 0 {
		p.ScaleX = float64(area.W/2-1) / halfWidth
	}
	if height > 0 {
		p.ScaleY = float64(area.H-1) / height
	}
	return p
}
