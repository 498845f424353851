// Package core provides fundamental types and utilities for the game platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect represents an axis-aligned bounding box in screen cells.
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

// Vec2 is a position or displacement in world units.
// One world unit maps to one terminal cell; y grows downward.
type Vec2 struct {
	X, Y float64
}

// V creates a vector.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Cell returns the screen cell containing v.
func (v Vec2) Cell() (int, int) {
	return int(math.Floor(v.X)), int(math.Floor(v.Y))
}

// Box is an axis-aligned bounding box in world units.
// Pos is the top-left corner.
type Box struct {
	Pos  Vec2
	W, H float64
}

// NewBox creates a box from its top-left corner and size.
func NewBox(x, y, w, h float64) Box {
	return Box{Pos: Vec2{X: x, Y: y}, W: w, H: h}
}

// BoxAround creates a box of the given size centered on c.
func BoxAround(c Vec2, w, h float64) Box {
	return Box{Pos: Vec2{X: c.X - w/2, Y: c.Y - h/2}, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.Pos.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Pos.Y + b.H
}

// Center returns the center point of the box.
func (b Box) Center() Vec2 {
	return Vec2{X: b.Pos.X + b.W/2, Y: b.Pos.Y + b.H/2}
}

// Intersects returns true if the boxes overlap with positive area.
// Touching edges do not count as overlap.
func (b Box) Intersects(o Box) bool {
	if b.Pos.X >= o.Right() || o.Pos.X >= b.Right() {
		return false
	}
	if b.Pos.Y >= o.Bottom() || o.Pos.Y >= b.Bottom() {
		return false
	}
	return true
}

// Contains returns true if p lies inside the box (right/bottom edges exclusive).
func (b Box) Contains(p Vec2) bool {
	return p.X >= b.Pos.X && p.X < b.Right() && p.Y >= b.Pos.Y && p.Y < b.Bottom()
}

// Rect converts the box to the screen cells it covers.
func (b Box) Rect() Rect {
	x0, y0 := int(math.Floor(b.Pos.X)), int(math.Floor(b.Pos.Y))
	x1, y1 := int(math.Ceil(b.Right())), int(math.Ceil(b.Bottom()))
	return NewRect(x0, y0, x1-x0, y1-y0)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
